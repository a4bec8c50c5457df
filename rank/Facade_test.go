package rank

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ropebwt/rb3go/seq"
)

type fakeDict struct {
	acc [seq.AlphabetSize + 1]uint64
}

func (f *fakeDict) Rank1(k uint64) (seq.Symbol, [seq.AlphabetSize]uint64) {
	return seq.A, [seq.AlphabetSize]uint64{}
}

func (f *fakeDict) Rank2(k, l uint64) ([seq.AlphabetSize]uint64, [seq.AlphabetSize]uint64) {
	return [seq.AlphabetSize]uint64{}, [seq.AlphabetSize]uint64{}
}

func (f *fakeDict) Acc() [seq.AlphabetSize + 1]uint64 {
	return f.acc
}

func (f *fakeDict) Len() uint64 {
	return f.acc[seq.AlphabetSize]
}

func TestFacadeDispatchesToActiveBackend(t *testing.T) {
	delta := &fakeDict{acc: [seq.AlphabetSize + 1]uint64{0, 1, 2, 3, 4, 5, 10}}
	rope := &fakeDict{acc: [seq.AlphabetSize + 1]uint64{0, 9, 9, 9, 9, 9, 9}}

	df := NewDeltaFacade(delta)
	require.Equal(t, KindDelta, df.Kind())
	require.Equal(t, uint64(10), df.Len())

	rf := NewRopeFacade(rope)
	require.Equal(t, KindRope, rf.Kind())
	require.Equal(t, uint64(9), rf.Len())
}

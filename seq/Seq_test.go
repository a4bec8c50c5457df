package seq

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSymbolRoundTrip(t *testing.T) {
	for _, c := range []byte{'A', 'C', 'G', 'T'} {
		s := FromChar(c)
		require.True(t, s.Valid())
		require.Equal(t, c, s.Char())
	}
}

func TestSymbolAmbiguityCollapsesToN(t *testing.T) {
	for _, c := range []byte{'R', 'Y', 'K', 'M', 'n', 'X'} {
		require.Equal(t, N, FromChar(c), "byte %q should collapse to N", c)
	}
}

func TestComplement(t *testing.T) {
	require.Equal(t, T, A.Complement())
	require.Equal(t, A, T.Complement())
	require.Equal(t, G, C.Complement())
	require.Equal(t, C, G.Complement())
	require.Equal(t, N, N.Complement())
	require.Equal(t, Sentinel, Sentinel.Complement())
}

func TestSeqReverseComplement(t *testing.T) {
	s := Seq{A, C, G, T}
	rc := s.ReverseComplement()
	require.Equal(t, Seq{A, C, G, T}, rc) // revcomp(ACGT) == ACGT
}

func TestFromFASTA(t *testing.T) {
	in := ">chr1 test\nACGTN\n>chr2\nTTTT\n"
	batch, err := FromFASTA(strings.NewReader(in), false)
	require.NoError(t, err)
	require.Len(t, batch.Records, 2)
	require.Equal(t, "chr1", batch.Records[0].Name)
	require.Equal(t, Seq{A, C, G, T, N, Sentinel}, batch.Entries[0])
	require.Equal(t, Seq{T, T, T, T, Sentinel}, batch.Entries[1])
}

func TestFromFASTAStrandSymmetric(t *testing.T) {
	in := ">chr1\nACGT\n"
	batch, err := FromFASTA(strings.NewReader(in), true)
	require.NoError(t, err)
	require.Len(t, batch.Records, 1)
	require.Len(t, batch.Entries, 2)
	require.Equal(t, Seq{A, C, G, T, Sentinel}, batch.Entries[0])
	require.Equal(t, Seq{A, C, G, T, Sentinel}, batch.Entries[1]) // revcomp(ACGT)=ACGT
}

func TestBatchConcat(t *testing.T) {
	b := Batch{Entries: []Seq{{A, C, Sentinel}, {G, T, Sentinel}}}
	require.Equal(t, 6, b.TotalLen())
	require.Equal(t, 2, b.NumSeqs())
	require.Equal(t, Seq{A, C, Sentinel, G, T, Sentinel}, b.Concat())
}

package rope

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ropebwt/rb3go/rank"
	"github.com/ropebwt/rb3go/seq"
)

// TestTreeInsertMatchesSequentialModel builds a single class tree by
// repeated Insert calls and checks LocalRank1 against a plain Go slice
// built the same way.
func TestTreeInsertMatchesSequentialModel(t *testing.T) {
	tree := NewTree(4, 3) // tiny thresholds to force splits quickly

	var model []seq.Symbol

	inserts := []struct {
		pos    uint64
		sym    seq.Symbol
		length uint64
	}{
		{0, seq.A, 5},
		{5, seq.C, 3},
		{2, seq.G, 2},
		{0, seq.T, 1},
		{4, seq.N, 6},
		{10, seq.A, 4},
	}

	for _, ins := range inserts {
		tree.Insert(ins.pos, ins.sym, ins.length)

		tail := append([]seq.Symbol(nil), model[ins.pos:]...)
		model = append(model[:ins.pos:ins.pos], make([]seq.Symbol, ins.length)...)
		for i := range model[ins.pos:] {
			model[int(ins.pos)+i] = ins.sym
		}
		model = append(model, tail...)

		require.Equal(t, uint64(len(model)), tree.Len())

		for k := uint64(0); k < uint64(len(model)); k++ {
			wantOcc := bruteLocalRank(model, k)
			sym, occ := tree.LocalRank1(k)
			require.Equal(t, model[k], sym, "k=%d", k)
			require.Equal(t, wantOcc, occ, "k=%d", k)
		}
	}
}

func bruteLocalRank(model []seq.Symbol, k uint64) [seq.AlphabetSize]uint64 {
	var occ [seq.AlphabetSize]uint64
	for i := uint64(0); i < k; i++ {
		occ[model[i]]++
	}
	return occ
}

func TestRopeEmptyAndLen(t *testing.T) {
	r := New(4, 3)
	require.True(t, r.Empty())
	require.Equal(t, uint64(0), r.Len())

	r.Insert(int(seq.A), 0, seq.C, 3)
	require.False(t, r.Empty())
	require.Equal(t, uint64(3), r.Len())
}

// TestRopeAccMatchesPerClassTotals builds small per-class runs directly
// and checks Acc() reflects each class's tree length in order.
func TestRopeAccMatchesPerClassTotals(t *testing.T) {
	r := New(8, 8)

	r.Insert(int(seq.Sentinel), 0, seq.Sentinel, 2)
	r.Insert(int(seq.A), 0, seq.C, 5)
	r.Insert(int(seq.C), 0, seq.G, 1)
	r.Insert(int(seq.G), 0, seq.T, 9)
	r.Insert(int(seq.T), 0, seq.N, 4)
	r.Insert(int(seq.N), 0, seq.A, 7)

	acc := r.Acc()
	require.Equal(t, [seq.AlphabetSize + 1]uint64{0, 2, 7, 8, 17, 21, 28}, acc)
	require.Equal(t, uint64(28), r.Len())
}

func TestRopeRank1AcrossClasses(t *testing.T) {
	r := New(8, 8)
	r.Insert(int(seq.Sentinel), 0, seq.Sentinel, 2)
	r.Insert(int(seq.A), 0, seq.C, 5)
	r.Insert(int(seq.C), 0, seq.G, 3)

	// position 0: start of class Sentinel's tree.
	sym, occ := r.Rank1(0)
	require.Equal(t, seq.Sentinel, sym)
	require.Equal(t, [seq.AlphabetSize]uint64{}, occ)

	// position 2: start of class A's tree, after both Sentinel occurrences.
	sym, occ = r.Rank1(2)
	require.Equal(t, seq.C, sym)
	require.Equal(t, [seq.AlphabetSize]uint64{0, 0, 0, 0, 0, 0}, occ)

	// position 7: start of class C's tree, after Sentinel(2)+A-class(5).
	sym, occ = r.Rank1(7)
	require.Equal(t, seq.G, sym)
	want := [seq.AlphabetSize]uint64{}
	want[seq.Sentinel] = 2
	want[seq.C] = 5
	require.Equal(t, want, occ)
}

func TestTreeRunsMatchesInsertedRunsAcrossSplits(t *testing.T) {
	tree := NewTree(4, 3)
	tree.Insert(0, seq.A, 5)
	tree.Insert(5, seq.C, 3)
	tree.Insert(2, seq.G, 2)
	tree.Insert(0, seq.T, 1)

	runs := tree.Runs()

	var total uint64
	for _, r := range runs {
		total += r.Len
	}
	require.Equal(t, tree.Len(), total)

	// Runs() must reconstruct the exact same symbol sequence LocalRank1
	// reports position-by-position.
	pos := uint64(0)
	for _, r := range runs {
		for i := uint64(0); i < r.Len; i++ {
			sym, _ := tree.LocalRank1(pos)
			require.Equal(t, r.Sym, sym, "pos=%d", pos)
			pos++
		}
	}
}

func TestRopeClassLenAndRuns(t *testing.T) {
	r := New(4, 3)
	require.Equal(t, uint64(0), r.ClassLen(int(seq.A)))

	r.Insert(int(seq.A), 0, seq.C, 5)
	r.Insert(int(seq.A), 5, seq.G, 2)

	require.Equal(t, uint64(7), r.ClassLen(int(seq.A)))
	require.Equal(t, []rank.Run{{Sym: seq.C, Len: 5}, {Sym: seq.G, Len: 2}}, r.Runs(int(seq.A)))
	require.Equal(t, uint64(0), r.ClassLen(int(seq.C)))
}

func TestRopeRank2MatchesTwoRank1(t *testing.T) {
	r := New(8, 8)
	r.Insert(int(seq.Sentinel), 0, seq.Sentinel, 2)
	r.Insert(int(seq.A), 0, seq.C, 5)
	r.Insert(int(seq.C), 0, seq.G, 3)

	_, want0 := r.Rank1(1)
	_, want1 := r.Rank1(6)
	got0, got1 := r.Rank2(1, 6)
	require.Equal(t, want0, got0)
	require.Equal(t, want1, got1)
}

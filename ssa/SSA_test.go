package ssa

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ropebwt/rb3go/fmindex"
	"github.com/ropebwt/rb3go/rank"
	"github.com/ropebwt/rb3go/rank/rld"
	"github.com/ropebwt/rb3go/sais"
	"github.com/ropebwt/rb3go/seq"
)

// buildMultiIndex concatenates strs (each implicitly $-terminated) into one
// text and builds an fmindex.Index over it the same way construct's
// suffix-array stage does, returning the text and its suffix array too so
// tests can compute a brute-force (seqID, pos) oracle independent of ssa.
func buildMultiIndex(t *testing.T, strs ...string) (*fmindex.Index, seq.Seq, []int32) {
	t.Helper()

	var text seq.Seq
	for _, s := range strs {
		for i := 0; i < len(s); i++ {
			text = append(text, seq.FromChar(s[i]))
		}
		text = append(text, seq.Sentinel)
	}

	sa := sais.Build6(text)
	require.Len(t, sa, len(text))

	n := len(text)
	var runs []rank.Run
	for i := 0; i < n; i++ {
		pos := int(sa[i]) - 1
		if pos < 0 {
			pos += n
		}
		sym := text[pos]
		if len(runs) > 0 && runs[len(runs)-1].Sym == sym {
			runs[len(runs)-1].Len++
		} else {
			runs = append(runs, rank.Run{Sym: sym, Len: 1})
		}
	}

	d, err := rld.Build(runs, 4, 8)
	require.NoError(t, err)

	return fmindex.Open(rank.NewDeltaFacade(d)), text, sa
}

// oracle computes, from the brute-force suffix array, a function mapping
// any row index to the (seqID, pos) ssa.Lookup is expected to report: seqID
// is defined as the sorted rank of the owning string's own sentinel row
// among all m sentinel rows (the same definition ssa.Generate uses), pos is
// the 0-based offset of the row's suffix within its owning string.
func oracle(t *testing.T, strs []string, text seq.Seq, sa []int32) func(row int) (seqID uint32, pos uint64) {
	t.Helper()

	starts := make([]int, len(strs))
	off := 0
	for i, s := range strs {
		starts[i] = off
		off += len(s) + 1
	}

	stringOf := func(absPos int) (idx, localPos int) {
		for i := len(starts) - 1; i >= 0; i-- {
			if absPos >= starts[i] {
				return i, absPos - starts[i]
			}
		}
		t.Fatalf("position %d not in any string", absPos)
		return 0, 0
	}

	m := len(strs)
	rankOfString := make([]int, m)
	for row := 0; row < m; row++ {
		idx, _ := stringOf(int(sa[row]))
		rankOfString[idx] = row
	}

	return func(row int) (uint32, uint64) {
		idx, localPos := stringOf(int(sa[row]))
		return uint32(rankOfString[idx]), uint64(localPos)
	}
}

func TestSSALookupMatchesOracle(t *testing.T) {
	strs := []string{"ACGTACGT", "GATTACA", "TTAGCAT", "ACGTTGCANNGG"}
	idx, text, sa := buildMultiIndex(t, strs...)
	want := oracle(t, strs, text, sa)

	s := Generate(idx, 2)

	for row := 0; row < len(text); row++ {
		wantSeq, wantPos := want(row)
		gotPos, gotSeq := s.Lookup(idx, uint64(row))
		require.Equal(t, wantSeq, gotSeq, "row=%d", row)
		require.Equal(t, wantPos, gotPos, "row=%d", row)
	}
}

func TestSSALookupVariousShifts(t *testing.T) {
	strs := []string{"ACGTACGTACGT", "GATTACAGATTACA", "TTAGCATTTAGCAT"}
	idx, text, sa := buildMultiIndex(t, strs...)
	want := oracle(t, strs, text, sa)

	for _, shift := range []uint32{0, 1, 3, 6} {
		s := Generate(idx, shift)
		for row := 0; row < len(text); row++ {
			wantSeq, wantPos := want(row)
			gotPos, gotSeq := s.Lookup(idx, uint64(row))
			require.Equal(t, wantSeq, gotSeq, "shift=%d row=%d", shift, row)
			require.Equal(t, wantPos, gotPos, "shift=%d row=%d", shift, row)
		}
	}
}

func TestSSASampleAgreesWithLookup(t *testing.T) {
	strs := []string{"ACGTACGT", "GATTACA", "TTAGCAT"}
	idx, text, _ := buildMultiIndex(t, strs...)
	s := Generate(idx, 2)

	for row := 0; row < len(text); row++ {
		steps, ok := s.Sample(idx, uint64(row))
		if !ok {
			continue
		}
		wantPos, _ := s.Lookup(idx, uint64(row))
		require.Equal(t, wantPos, uint64(steps), "row=%d", row)
	}
}

func TestSSALocateAllMatchesOracleForBackwardSearch(t *testing.T) {
	strs := []string{"ACGTACGT", "GATTACA", "TTAGCAT", "ACGTTGCA"}
	idx, text, sa := buildMultiIndex(t, strs...)
	want := oracle(t, strs, text, sa)
	s := Generate(idx, 2)

	pattern := seq.Seq{seq.A, seq.C, seq.G, seq.T}
	bi := idx.BackwardSearch(pattern)
	require.Greater(t, bi.Size, uint64(0))

	hits := LocateAll(idx, bi.X0, bi.X0+bi.Size, 1000)
	require.Len(t, hits, int(bi.Size))

	wantHits := make([]Hit, 0, bi.Size)
	for row := bi.X0; row < bi.X0+bi.Size; row++ {
		seqID, pos := want(int(row))
		wantHits = append(wantHits, Hit{SeqID: seqID, Pos: pos})
	}

	sortHits := func(hs []Hit) {
		sort.Slice(hs, func(i, j int) bool {
			if hs[i].SeqID != hs[j].SeqID {
				return hs[i].SeqID < hs[j].SeqID
			}
			return hs[i].Pos < hs[j].Pos
		})
	}
	sortHits(hits)
	sortHits(wantHits)

	require.Equal(t, wantHits, hits)
}

func TestSSALocateAllRespectsMaxSA(t *testing.T) {
	strs := []string{"ACGTACGT", "GATTACA", "TTAGCAT", "ACGTTGCA"}
	idx, _, _ := buildMultiIndex(t, strs...)

	pattern := seq.Seq{seq.A}
	bi := idx.BackwardSearch(pattern)
	require.Greater(t, bi.Size, uint64(2))

	hits := LocateAll(idx, bi.X0, bi.X0+bi.Size, 2)
	require.Len(t, hits, 2)
}

func TestSSALocateAllEmptyRange(t *testing.T) {
	idx, _, _ := buildMultiIndex(t, "ACGT")
	hits := LocateAll(idx, 5, 5, 10)
	require.Nil(t, hits)
}

func TestSSAGenerateEmptyIndex(t *testing.T) {
	idx, _, _ := buildMultiIndex(t, "")
	s := Generate(idx, 2)
	require.Len(t, s.R2I, 1)
}

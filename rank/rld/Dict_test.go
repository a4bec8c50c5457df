package rld

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ropebwt/rb3go/rank"
	"github.com/ropebwt/rb3go/seq"
)

// bruteForce computes the same Rank1/Rank2 semantics directly from the run
// list, with no superblock indexing, as an oracle for Dict's decode path.
type bruteForce struct {
	syms []seq.Symbol // expanded run-length symbol stream
}

func newBruteForce(runs []rank.Run) *bruteForce {
	b := &bruteForce{}
	for _, r := range runs {
		for i := uint64(0); i < r.Len; i++ {
			b.syms = append(b.syms, r.Sym)
		}
	}
	return b
}

func (b *bruteForce) rank(k uint64) [seq.AlphabetSize]uint64 {
	var occ [seq.AlphabetSize]uint64
	for i := uint64(0); i < k && i < uint64(len(b.syms)); i++ {
		occ[b.syms[i]]++
	}
	return occ
}

func sampleRuns() []rank.Run {
	return []rank.Run{
		{Sym: seq.Sentinel, Len: 3},
		{Sym: seq.A, Len: 7},
		{Sym: seq.C, Len: 1},
		{Sym: seq.G, Len: 128},
		{Sym: seq.T, Len: 2},
		{Sym: seq.N, Len: 5},
		{Sym: seq.A, Len: 1000},
		{Sym: seq.G, Len: 1},
		{Sym: seq.C, Len: 64},
	}
}

func TestBuildRank1MatchesBruteForce(t *testing.T) {
	runs := sampleRuns()
	oracle := newBruteForce(runs)

	d, err := Build(runs, 4, 3) // small superblockLen to exercise multiple blocks
	require.NoError(t, err)
	require.Equal(t, uint64(len(oracle.syms)), d.Len())

	for _, k := range []uint64{0, 1, 2, 3, 10, 11, 139, 140, 147, 1147, 1211, d.Len() - 1} {
		want := oracle.rank(k)
		_, got := d.Rank1(k)
		require.Equal(t, want, got, "k=%d", k)
	}
}

func TestRank2MatchesTwoRank1Calls(t *testing.T) {
	runs := sampleRuns()
	d, err := Build(runs, 4, 5)
	require.NoError(t, err)

	pairs := [][2]uint64{
		{0, 1},
		{5, 140},
		{140, 5},
		{0, d.Len()},
		{200, 200},
		{3, 1211},
	}

	for _, p := range pairs {
		_, wantLo := d.Rank1(p[0])
		_, wantHi := d.Rank1(p[1])
		gotLo, gotHi := d.Rank2(p[0], p[1])
		require.Equal(t, wantLo, gotLo, "pair=%v lo", p)
		require.Equal(t, wantHi, gotHi, "pair=%v hi", p)
	}
}

func TestAccMatchesTotals(t *testing.T) {
	runs := sampleRuns()
	d, err := Build(runs, 4, 512)
	require.NoError(t, err)

	var want [seq.AlphabetSize + 1]uint64
	for _, r := range runs {
		want[r.Sym+1] += r.Len
	}
	for c := 0; c < seq.AlphabetSize; c++ {
		want[c+1] += want[c]
	}

	require.Equal(t, want, d.Acc())
}

func TestWriteFileAndOpenRoundTrip(t *testing.T) {
	runs := sampleRuns()
	d, err := Build(runs, 4, 4)
	require.NoError(t, err)

	dir := t.TempDir()
	path := filepath.Join(dir, "test.fmd")
	require.NoError(t, WriteFile(path, d))

	loaded, err := Open(path)
	require.NoError(t, err)
	defer loaded.Close()

	require.Equal(t, d.Acc(), loaded.Acc())
	require.Equal(t, d.Len(), loaded.Len())

	oracle := newBruteForce(runs)
	for _, k := range []uint64{0, 11, 140, 1147, loaded.Len() - 1} {
		want := oracle.rank(k)
		_, got := loaded.Rank1(k)
		require.Equal(t, want, got, "k=%d", k)
	}
}

func TestPickLogBasePrefersSmallerEncodingForUniformLongRuns(t *testing.T) {
	runs := make([]rank.Run, 50)
	for i := range runs {
		runs[i] = rank.Run{Sym: seq.A, Len: 300}
	}

	logBase := PickLogBase(runs)
	require.Greater(t, logBase, uint(0))

	// A logBase of 0 (pure unary) should cost strictly more bits than the
	// picked value for runs this long.
	var zeroBits, pickedBits uint64
	for _, r := range runs {
		zeroBits += bitsForLength(r.Len, 0)
		pickedBits += bitsForLength(r.Len, logBase)
	}
	require.Less(t, pickedBits, zeroBits)
}

func TestRunsRoundTripsAcrossSuperblockBoundaries(t *testing.T) {
	runs := sampleRuns()
	d, err := Build(runs, 4, 3) // small superblockLen so runs span several superblocks
	require.NoError(t, err)

	got, err := d.Runs()
	require.NoError(t, err)
	require.Equal(t, runs, got)
}

func TestOpenRejectsBadMagic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.fmd")
	require.NoError(t, os.WriteFile(path, []byte{'X', 'X', 'X', 'X', 0, 0, 0, 0}, 0644))

	_, err := Open(path)
	require.Error(t, err)
}

package names

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTablePutAllAndLookup(t *testing.T) {
	dir := t.TempDir()
	tbl, err := Create(filepath.Join(dir, "names.db"))
	require.NoError(t, err)
	defer tbl.Close()

	records := []Record{
		{SeqID: 0, Name: "read1", Length: 8},
		{SeqID: 1, Name: "read2", Length: 7},
		{SeqID: 2, Name: "read3", Length: 12},
	}
	require.NoError(t, tbl.PutAll(records))

	for _, r := range records {
		name, length, ok, err := tbl.Lookup(r.SeqID)
		require.NoError(t, err)
		require.True(t, ok)
		require.Equal(t, r.Name, name)
		require.Equal(t, r.Length, length)
	}

	_, _, ok, err := tbl.Lookup(99)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestTableAllReturnsAscendingSeqID(t *testing.T) {
	dir := t.TempDir()
	tbl, err := Create(filepath.Join(dir, "names.db"))
	require.NoError(t, err)
	defer tbl.Close()

	records := []Record{
		{SeqID: 5, Name: "e", Length: 1},
		{SeqID: 1, Name: "a", Length: 2},
		{SeqID: 3, Name: "c", Length: 3},
	}
	require.NoError(t, tbl.PutAll(records))

	got, err := tbl.All()
	require.NoError(t, err)
	require.Len(t, got, 3)
	require.Equal(t, uint64(1), got[0].SeqID)
	require.Equal(t, uint64(3), got[1].SeqID)
	require.Equal(t, uint64(5), got[2].SeqID)
}

func TestTableReopenPreservesData(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "names.db")

	tbl, err := Create(path)
	require.NoError(t, err)
	require.NoError(t, tbl.PutAll([]Record{{SeqID: 0, Name: "only", Length: 4}}))
	require.NoError(t, tbl.Close())

	reopened, err := Open(path)
	require.NoError(t, err)
	defer reopened.Close()

	name, length, ok, err := reopened.Lookup(0)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "only", name)
	require.Equal(t, 4, length)
}

func TestByIDOrdersBySequenceID(t *testing.T) {
	require.Equal(t, 0, ByID(encodeKey(7), encodeKey(7)))
	require.Equal(t, -1, ByID(encodeKey(1), encodeKey(2)))
	require.Equal(t, 1, ByID(encodeKey(9), encodeKey(2)))
}

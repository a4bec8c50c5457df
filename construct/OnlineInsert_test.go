package construct

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ropebwt/rb3go/convert"
	"github.com/ropebwt/rb3go/rank/rope"
)

func TestOnlineInsertMatchesBruteForceBWT(t *testing.T) {
	batch := mkBatch("ACGTACGT", "GATTACA", "TTAGCAT")

	r := rope.New(4, 4)
	OnlineInsert(r, batch.Entries, SortInput)

	want := bruteBWT(batch)
	got := convert.FMRToPlain(r)
	require.ElementsMatch(t, want, got)
	require.Equal(t, len(want), len(got))
}

func TestOnlineInsertSortOrdersPreserveContent(t *testing.T) {
	batch := mkBatch("ACGTACGT", "GATTACA", "TTAGCAT", "ACGTTGCA")
	want := bruteBWT(batch)

	for _, order := range []SortOrder{SortInput, SortRLO, SortRCLO} {
		r := rope.New(4, 4)
		OnlineInsert(r, batch.Entries, order)
		got := convert.FMRToPlain(r)
		require.ElementsMatch(t, want, got, "order=%v", order)
		require.Equal(t, len(want), len(got), "order=%v", order)
	}
}

func TestOnlineInsertEmptyEntries(t *testing.T) {
	r := rope.New(4, 4)
	OnlineInsert(r, nil, SortInput)
	require.True(t, r.Empty())
}

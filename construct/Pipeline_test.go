package construct

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	rb3go "github.com/ropebwt/rb3go"
	"github.com/ropebwt/rb3go/convert"
	"github.com/ropebwt/rb3go/seq"
)

type recordingListener struct {
	types []int
}

func (l *recordingListener) ProcessEvent(evt *rb3go.Event) {
	l.types = append(l.types, evt.Type())
}

func TestPipelineRunMatchesBruteForceBWT(t *testing.T) {
	cfg := Config{Threads: 2, BlockLen: 4, MaxNodes: 4}
	p := NewPipeline(cfg)

	lst := &recordingListener{}
	p.AddListener(lst)

	batch1 := mkBatch("ACGTACGT", "GATTACA")
	batch2 := mkBatch("TTAGCAT")

	require.NoError(t, p.Run(context.Background(), []seq.Batch{batch1, batch2}))

	var combined seq.Batch
	combined.Entries = append(combined.Entries, batch1.Entries...)
	combined.Entries = append(combined.Entries, batch2.Entries...)

	want := bruteBWT(combined)
	got := convert.FMRToPlain(p.Rope)
	require.ElementsMatch(t, want, got)
	require.Equal(t, len(want), len(got))

	require.Contains(t, lst.types, rb3go.EvtBatchStart)
	require.Contains(t, lst.types, rb3go.EvtBatchEnd)
	require.Contains(t, lst.types, rb3go.EvtMergeStart)
	require.Contains(t, lst.types, rb3go.EvtMergeEnd)
}

func TestPipelineRunEmptyBatchList(t *testing.T) {
	cfg := Config{BlockLen: 4, MaxNodes: 4}
	p := NewPipeline(cfg)

	require.NoError(t, p.Run(context.Background(), nil))
	require.True(t, p.Rope.Empty())
}

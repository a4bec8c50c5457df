/*
Copyright 2011-2025 Frederic Langlet
Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
you may obtain a copy of the License at

                http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package construct

import (
	"context"
	"sync"
	"time"

	rb3go "github.com/ropebwt/rb3go"
	"github.com/ropebwt/rb3go/hash"
	"github.com/ropebwt/rb3go/rank/rope"
	"github.com/ropebwt/rb3go/seq"
)

// Pipeline streams FASTA batches through stage S (suffix-array each batch
// into a partial BWT) and stage M (merge the partial BWT into the main
// rope), never holding more than one batch's partial BWT in flight at a
// time. Grounded on the teacher's fileCompressWorker/tasks/results/cancel
// channel shape (app/BlockCompressor.go), narrowed from "N worker
// goroutines pulling from a shared task queue" to "one stage-S goroutine
// feeding one stage-M goroutine through a single-slot mailbox", since
// stage M must apply merges in batch order and stage S gains nothing from
// running more than one batch ahead.
type Pipeline struct {
	cfg  Config
	Rope *rope.Rope

	stageIn chan seq.Batch
	partial chan PartialBWT
	cancel  chan struct{}

	errOnce  sync.Once
	firstErr error

	listeners []rb3go.Listener
}

// NewPipeline creates a Pipeline with a fresh, empty rope sized by cfg.
func NewPipeline(cfg Config) *Pipeline {
	return &Pipeline{
		cfg:     cfg,
		Rope:    cfg.newRope(),
		stageIn: make(chan seq.Batch),
		partial: make(chan PartialBWT, 1),
		cancel:  make(chan struct{}),
	}
}

// AddListener registers a progress listener, kanzi-style.
func (p *Pipeline) AddListener(l rb3go.Listener) {
	p.listeners = append(p.listeners, l)
}

func (p *Pipeline) emit(evt *rb3go.Event) {
	for _, l := range p.listeners {
		l.ProcessEvent(evt)
	}
}

func (p *Pipeline) fail(err error) {
	p.errOnce.Do(func() {
		p.firstErr = err
		close(p.cancel)
	})
}

// Run feeds every batch through stage S then stage M, in order, and
// returns the first error encountered by either stage (nil if all batches
// merged cleanly). Safe to call at most once per Pipeline.
func (p *Pipeline) Run(ctx context.Context, batches []seq.Batch) error {
	go p.feed(batches)
	go p.runStageS()
	p.runStageM(ctx)
	return p.firstErr
}

// feed pushes batches into stage S one at a time, stopping early if the
// pipeline has already failed.
func (p *Pipeline) feed(batches []seq.Batch) {
	defer close(p.stageIn)

	for _, b := range batches {
		select {
		case p.stageIn <- b:
		case <-p.cancel:
			return
		}
	}
}

// runStageS is the suffix-array stage: one goroutine, at most one partial
// BWT ever buffered ahead of stage M.
func (p *Pipeline) runStageS() {
	defer close(p.partial)

	id := 0
	for b := range p.stageIn {
		select {
		case <-p.cancel:
			return
		default:
		}

		p.emit(rb3go.NewEvent(rb3go.EvtBatchStart, id, int64(b.TotalLen()), 0, rb3go.EvtHashNone, time.Time{}))
		pb := buildPartialBWT(b)
		p.emit(rb3go.NewEvent(rb3go.EvtBatchEnd, id, int64(len(pb.Symbols)), partialBWTChecksum(pb), rb3go.EvtHash64Bits, time.Time{}))

		select {
		case p.partial <- pb:
		case <-p.cancel:
			return
		}
		id++
	}
}

// runStageM is the merge stage: applies each partial BWT to the main rope
// in the order stage S produced them, latching the first error via fail so
// both stages unwind promptly.
func (p *Pipeline) runStageM(ctx context.Context) {
	id := 0
	for pb := range p.partial {
		checksum := partialBWTChecksum(pb)
		p.emit(rb3go.NewEvent(rb3go.EvtMergeStart, id, int64(len(pb.Symbols)), checksum, rb3go.EvtHash64Bits, time.Time{}))

		if err := mergeInto(ctx, p.cfg, p.Rope, pb); err != nil {
			p.fail(err)
			break
		}

		p.emit(rb3go.NewEvent(rb3go.EvtMergeEnd, id, int64(len(pb.Symbols)), checksum, rb3go.EvtHash64Bits, time.Time{}))
		id++
	}

	// Drain any partial stage S may still try to push so its goroutine,
	// once it notices cancel, doesn't block forever on a full channel.
	for range p.partial {
	}
}

// partialBWTChecksum hashes a partial BWT's symbol content, the per-batch
// integrity value carried on EvtBatchEnd/EvtMergeStart/EvtMergeEnd so a
// listener can confirm stage M merged the same bytes stage S produced.
func partialBWTChecksum(pb PartialBWT) uint64 {
	buf := make([]byte, len(pb.Symbols))
	for i, s := range pb.Symbols {
		buf[i] = byte(s)
	}
	h, _ := hash.NewXXHash64(0)
	return h.Hash(buf)
}

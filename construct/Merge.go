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

	"github.com/ropebwt/rb3go/convert"
	"github.com/ropebwt/rb3go/internal"
	"github.com/ropebwt/rb3go/rank/rld"
	"github.com/ropebwt/rb3go/rank/rope"
	"github.com/ropebwt/rb3go/seq"
)

// mergeTarget is one trace result: the row in the main rope a partial
// BWT's row p LF-maps to (ka), and the symbol the partial BWT carries at
// that row. Grounded on rb3_fmi_merge's packed uint64 (ka<<6 | sym<<3 |
// last_c); last_c is dropped since worker_mgins never reads it back.
type mergeTarget struct {
	ka  uint64
	sym seq.Symbol
}

// traceChain follows one partial-BWT row's LF-mapping chain through both
// the partial dictionary (fb) and the main rope until it reaches a
// sentinel row, recording one mergeTarget per row visited along the way.
// Grounded on rb3_mg_rank1/rb3_mg_rank in original_source/fm-index.c: ka
// starts at aca[1] (the main rope's row count through the sentinel
// class, i.e. the first non-sentinel row), kb at p; each step ranks kb in
// fb to learn the next symbol and occurrence count, stores the result
// indexed by kb itself (no separate slot bookkeeping needed), then
// LF-maps both kb (in fb) and ka (in main) to their next rows.
func traceChain(main *rope.Rope, fb *rld.Dict, aca, acb [seq.AlphabetSize + 1]uint64, p uint64, results []mergeTarget) {
	ka := aca[1]
	kb := p

	for {
		sym, ob := fb.Rank1(kb)
		results[kb] = mergeTarget{ka: ka, sym: sym}

		if sym == seq.Sentinel {
			return
		}

		kb = acb[sym] + ob[sym]

		_, oa := main.Rank1(ka)
		ka = aca[sym] + oa[sym]
	}
}

// applyMerge inserts every traced row into the main rope, in F-sorted
// (class, then within-class row) order, the order rb3_fmi_merge's
// worker_mgins loop inserts in. aca and acb are the snapshots taken
// before any insertion in this round began; main's row counts shift as
// insertions proceed, so every target position is expressed relative to
// those frozen snapshots rather than recomputed against the live rope.
func applyMerge(main *rope.Rope, aca, acb [seq.AlphabetSize + 1]uint64, results []mergeTarget) {
	for c := 0; c < seq.AlphabetSize; c++ {
		for i := acb[c]; i < acb[c+1]; i++ {
			t := results[i]
			localPos := (t.ka - aca[c]) + (i - acb[c])
			main.Insert(c, localPos, t.sym, 1)
		}
	}
}

// mergeInto folds one batch's partial BWT into the main rope. An empty
// rope is seeded directly (there is nothing to LF-trace against yet);
// otherwise the partial BWT is built into a standalone FMD dictionary and
// every one of its rows is traced through both indexes in parallel (trace
// reads are side-effect-free on main, so disjoint starting rows can run
// concurrently), then applied to main sequentially in F-order.
func mergeInto(ctx context.Context, cfg Config, main *rope.Rope, partial PartialBWT) error {
	if main.Empty() {
		convert.SeedFMR(main, partial.Symbols)
		return nil
	}

	runs := partial.Runs()
	fb, err := rld.Build(runs, rld.PickLogBase(runs), rld.DefaultSuperblockLen)
	if err != nil {
		return err
	}
	defer fb.Close()

	aca := main.Acc()
	acb := fb.Acc()

	results := make([]mergeTarget, len(partial.Symbols))

	err = internal.ParallelFor(ctx, int(acb[1]), cfg.threads(), func(lo, hi, _ int) error {
		for p := lo; p < hi; p++ {
			traceChain(main, fb, aca, acb, uint64(p), results)
		}
		return nil
	})
	if err != nil {
		return err
	}

	applyMerge(main, aca, acb, results)
	return nil
}

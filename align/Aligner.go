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

package align

import (
	"sort"

	"github.com/ropebwt/rb3go/fmindex"
	"github.com/ropebwt/rb3go/qdawg"
	"github.com/ropebwt/rb3go/seq"
	"github.com/ropebwt/rb3go/smem"
)

// Aligner runs the DP described in spec.md §4.8 over a reference index for
// one query's DAWG at a time.
type Aligner struct {
	idx  *fmindex.Index
	opts Options
}

// New builds an Aligner against idx with opts.
func New(idx *fmindex.Index, opts Options) *Aligner {
	return &Aligner{idx: idx, opts: opts}
}

// nonSentinelAlphabet is the symbol set the DP ever extends the
// reference interval by; the sentinel never occurs mid-sequence so it is
// never a valid diagonal, insertion-target, or deletion base.
var nonSentinelAlphabet = [5]seq.Symbol{seq.A, seq.C, seq.G, seq.T, seq.N}

// Align runs the DP over query's DAWG and returns the best alignment (or
// bucketed edit-distance summary, in ModeHapDiv) per a.opts.Mode. Returns
// nil if the optional SMEM pre-filter rules the query out, or if nothing
// scores at or above MinSc.
func (a *Aligner) Align(query seq.Seq, dawg *qdawg.DAWG) *Result {
	if a.opts.MinMemLen > a.opts.EndLen {
		hits := smem.Classic(a.idx, query, a.opts.MinOcc, a.opts.MinMemLen)
		if len(hits) == 0 {
			return nil
		}
	}

	nodes := dawg.EnumerateNodes()
	rows := make([][]Cell, len(nodes))

	acc := a.idx.Acc()
	root := Cell{H: 0, Interval: fmindex.BiInterval{X0: 0, X1: 0, Size: acc[seq.AlphabetSize]}}
	rows[qdawg.Root] = []Cell{root}

	var best Cell
	bestRow := qdawg.Root
	haveBest := false

	for t := 1; t < len(nodes); t++ {
		row := a.computeRow(nodes, rows, t)
		a.propagateDeletions(&row)
		rows[t] = row

		for _, c := range row {
			if !haveBest || c.H > best.H {
				best, bestRow, haveBest = c, t, true
			}
		}
	}

	switch a.opts.Mode {
	case ModeLocal:
		if !haveBest || best.H < a.opts.MinSc {
			return nil
		}
		return a.backtrack(dawg, rows, bestRow, best)
	case ModeE2E:
		return a.finishE2E(dawg, rows, nodes)
	case ModeHapDiv:
		return a.finishHapDiv(rows, nodes)
	default:
		return nil
	}
}

// computeRow fills node t's row from its DAWG predecessors' finalized
// rows: a diagonal (match/mismatch) candidate per alphabet symbol whose
// reference child interval is non-empty, plus an affine-gap insertion
// candidate that advances the query without advancing the reference.
func (a *Aligner) computeRow(nodes []qdawg.Node, rows [][]Cell, t int) []Cell {
	node := nodes[t]
	top := newTopN(a.opts.NBest)

	threshold := a.pruneThreshold(rows, node.Pred)

	for _, p := range node.Pred {
		prow := rows[p]
		for col, pc := range prow {
			if pc.H < threshold {
				continue
			}

			for _, x := range nonSentinelAlphabet {
				child := a.idx.Extend(pc.Interval, x, true)
				if child.Size == 0 {
					continue
				}
				matches := x == node.Sym
				if !matches && pc.QLen+1 < a.opts.EndLen {
					continue
				}
				delta := a.opts.Match
				if !matches {
					delta = -a.opts.Mismatch
				}
				top.Add(Cell{
					H:        pc.H + delta,
					Interval: child,
					RLen:     pc.RLen + 1,
					QLen:     pc.QLen + 1,
					HFrom:    OriginH,
					HFromRow: uint32(p),
					HFromCol: uint32(col),
					FFromID:  -1,
					RefSym:   x,
				})
			}

			e := pc.E
			if h := pc.H - a.opts.GapOpen; h > e {
				e = h
			}
			e -= a.opts.GapExt
			if e > 0 {
				top.Add(Cell{
					H:        e,
					E:        e,
					Interval: pc.Interval,
					RLen:     pc.RLen,
					QLen:     pc.QLen + 1,
					HFrom:    OriginE,
					EFrom:    uint32(col),
					HFromRow: uint32(p),
					FFromID:  -1,
				})
			}
		}
	}

	return top.Cells()
}

// pruneThreshold computes the cheap cross-predecessor cutoff from spec
// §4.8 step 1: when more than one predecessor feeds this node and their
// combined cell count exceeds NBest, take the NBest-th largest incoming
// H and subtract the most generous single-step penalty a cell could
// still recover from.
func (a *Aligner) pruneThreshold(rows [][]Cell, preds []qdawg.NodeID) int32 {
	if len(preds) <= 1 || a.opts.NBest <= 0 {
		return minInt32
	}

	var hs []int32
	for _, p := range preds {
		for _, c := range rows[p] {
			hs = append(hs, c.H)
		}
	}
	if len(hs) <= a.opts.NBest {
		return minInt32
	}

	sort.Slice(hs, func(i, j int) bool { return hs[i] > hs[j] })
	penalty := a.opts.Mismatch
	if a.opts.GapOpen+a.opts.GapExt > penalty {
		penalty = a.opts.GapOpen + a.opts.GapExt
	}
	return hs[a.opts.NBest-1] - penalty
}

const minInt32 = -1 << 31

// propagateDeletions runs the F-register fixpoint from spec §4.8 step 2:
// once a row's top-N is known, repeatedly probe each placed cell's
// reference interval one symbol further (consuming a reference base
// without consuming a query symbol) and feed the surviving children back
// into the same row, until no new cell is added or an iteration cap is
// hit (deletion runs are bounded by the reference interval shrinking to
// empty, but the cap guards against a degenerate all-N index).
func (a *Aligner) propagateDeletions(row *[]Cell) {
	top := newTopN(a.opts.NBest)
	for _, c := range *row {
		top.Add(c)
	}

	const maxRounds = 64
	frontier := append([]Cell{}, *row...)

	for round := 0; round < maxRounds && len(frontier) > 0; round++ {
		var next []Cell
		for _, pc := range frontier {
			// FFromID names pc's own stable id in top, not its current
			// position; top keeps reordering (Add's append, evictWorst's
			// heap rebuild) as later candidates in this same round are
			// inserted, so a captured position would go stale before
			// backtrack ever reads it back. If pc has since been evicted
			// from top, the fallback from DESIGN.md's Open Question 1
			// applies: -1, no resolvable origin.
			fFromID := int32(-1)
			if id, ok := top.IDFor(pc.Interval); ok {
				fFromID = id
			}

			for _, x := range nonSentinelAlphabet {
				child := a.idx.Extend(pc.Interval, x, true)
				if child.Size == 0 {
					continue
				}
				f := pc.F
				if h := pc.H - a.opts.GapOpen; h > f {
					f = h
				}
				f -= a.opts.GapExt
				if f <= 0 {
					continue
				}
				cand := Cell{
					H:        f,
					F:        f,
					Interval: child,
					RLen:     pc.RLen + 1,
					QLen:     pc.QLen,
					HFrom:    OriginF,
					FFromID:  fFromID,
					RefSym:   x,
				}
				id := top.Add(cand)
				// Only keep propagating from this candidate if it actually
				// won its interval's slot; a lower-scoring duplicate that
				// lost to an existing cell can't originate further
				// improvements.
				cand.ID = id
				if stored, ok := top.CellByID(id); ok && stored == cand {
					next = append(next, cand)
				}
			}
		}
		frontier = next
	}

	*row = top.Cells()
}

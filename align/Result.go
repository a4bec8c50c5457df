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
	"github.com/ropebwt/rb3go/fmindex"
	"github.com/ropebwt/rb3go/qdawg"
	"github.com/ropebwt/rb3go/seq"
)

// CigarOp is one run of a CIGAR string: '=' match, 'X' mismatch,
// 'I' insertion (extra query base), 'D' deletion (extra reference base).
type CigarOp struct {
	Op  byte
	Len int
}

// Result is one reported alignment: its score, CIGAR, the reference
// bases it covers, the bi-interval at its endpoint (for locating via an
// ssa.SSA), and the query offsets the query's DAWG attributes to that
// endpoint. AltCount records how many other end-to-end candidates also
// qualified in ModeE2E/ModeHapDiv beyond the one reported (spec.md §4.8's
// "keep every... cell" is summarized down to the best one here rather
// than returned as a list, a deliberate simplification of the reporting
// surface, not of the scoring itself).
type Result struct {
	Score        int32
	Mode         Mode
	Cigar        []CigarOp
	RefSeq       seq.Seq
	Interval     fmindex.BiInterval
	QueryOffsets []uint32
	AltCount     int

	HapDivCounts    [5]int
	MaxEditDistance int
}

// backtrack walks a chosen cell's H/E/F backpointers from its row back to
// the root, producing the CIGAR, matched reference bases, and the set of
// query start offsets the query's DAWG attributes to the endpoint node.
func (a *Aligner) backtrack(dawg *qdawg.DAWG, rows [][]Cell, nodeID int, cell Cell) *Result {
	nodes := dawg.EnumerateNodes()

	var rawOps []CigarOp
	var refBytes seq.Seq

	curNodeID := nodeID
	cur := cell
	for curNodeID != int(qdawg.Root) {
		switch cur.HFrom {
		case OriginH:
			op := byte('=')
			if cur.RefSym != nodes[curNodeID].Sym {
				op = 'X'
			}
			rawOps = append(rawOps, CigarOp{Op: op, Len: 1})
			refBytes = append(refBytes, cur.RefSym)
			row, col := cur.HFromRow, cur.HFromCol
			curNodeID = int(row)
			cur = rows[row][col]
		case OriginE:
			rawOps = append(rawOps, CigarOp{Op: 'I', Len: 1})
			row, col := cur.HFromRow, cur.EFrom
			curNodeID = int(row)
			cur = rows[row][col]
		case OriginF:
			rawOps = append(rawOps, CigarOp{Op: 'D', Len: 1})
			refBytes = append(refBytes, cur.RefSym)
			if next, ok := findCellByID(rows[curNodeID], cur.FFromID); ok {
				cur = next
			} else {
				// No resolvable F origin: either DESIGN.md Open Question
				// 1's fallback (-1, F never resolved to a concrete
				// origin) or the named cell was evicted from its row's
				// topN before this row was finalized. Either way, stop
				// the walk here rather than guess.
				curNodeID = int(qdawg.Root)
			}
		}
	}

	// The DAWG and the reference interval are both extended by prepending,
	// so walking back from the endpoint to the root already visits query
	// and reference bases left to right: rawOps and refBytes need no
	// reversal.

	cache, _ := qdawg.NewNavCache(len(nodes) + 1)
	var offsets []uint32
	for _, d := range dawg.NodeDepths(qdawg.NodeID(nodeID), cache) {
		if d <= uint32(cell.QLen) {
			continue
		}
		offsets = append(offsets, d-cell.QLen)
	}

	return &Result{
		Score:        cell.H,
		Mode:         a.opts.Mode,
		Cigar:        runLength(rawOps),
		RefSeq:       refBytes,
		Interval:     cell.Interval,
		QueryOffsets: offsets,
	}
}

// findCellByID scans row for the cell with the given stable id. Rows are
// bounded by NBest (a few dozen cells at most), so a linear scan is cheap
// and, unlike a slice position, correct regardless of how many times the
// row's topN reordered cells between id's capture and this lookup.
func findCellByID(row []Cell, id int32) (Cell, bool) {
	if id < 0 {
		return Cell{}, false
	}
	for _, c := range row {
		if c.ID == id {
			return c, true
		}
	}
	return Cell{}, false
}

func reverseOps(a []CigarOp) {
	for i, j := 0, len(a)-1; i < j; i, j = i+1, j-1 {
		a[i], a[j] = a[j], a[i]
	}
}

func reverseSyms(a seq.Seq) {
	for i, j := 0, len(a)-1; i < j; i, j = i+1, j-1 {
		a[i], a[j] = a[j], a[i]
	}
}

func runLength(ops []CigarOp) []CigarOp {
	var out []CigarOp
	for _, op := range ops {
		if len(out) > 0 && out[len(out)-1].Op == op.Op {
			out[len(out)-1].Len += op.Len
			continue
		}
		out = append(out, op)
	}
	return out
}

// finishE2E collects every H-originated cell across all rows whose QLen
// equals the largest QLen reached by any cell (a merged DAWG node has no
// single well-defined row depth, so depth is taken from the cells), applies
// MinSc/E2EDrop, and backtracks from the best survivor. The query length
// itself is not consulted: when no cell consumed the whole query, the
// longest partial paths are the ones reported.
func (a *Aligner) finishE2E(dawg *qdawg.DAWG, rows [][]Cell, nodes []qdawg.Node) *Result {
	qualifying := a.e2eCandidates(rows)
	if len(qualifying) == 0 {
		return nil
	}

	bestIdx := 0
	for i, c := range qualifying {
		if c.cell.H > qualifying[bestIdx].cell.H {
			bestIdx = i
		}
	}

	r := a.backtrack(dawg, rows, qualifying[bestIdx].node, qualifying[bestIdx].cell)
	if r != nil {
		r.AltCount = len(qualifying) - 1
	}
	return r
}

type endCell struct {
	node int
	cell Cell
}

// e2eCandidates returns every H-originated, full-length cell passing
// MinSc and E2EDrop.
func (a *Aligner) e2eCandidates(rows [][]Cell) []endCell {
	var qlen uint32
	for _, row := range rows {
		for _, c := range row {
			if c.QLen > qlen {
				qlen = c.QLen
			}
		}
	}

	var all []endCell
	best := int32(minInt32)
	for nid, row := range rows {
		for _, c := range row {
			if c.HFrom != OriginH || c.QLen != qlen {
				continue
			}
			if c.H > best {
				best = c.H
			}
			all = append(all, endCell{node: nid, cell: c})
		}
	}

	var kept []endCell
	for _, ec := range all {
		if ec.cell.H < a.opts.MinSc {
			continue
		}
		if a.opts.E2EDrop > 0 && best-ec.cell.H > a.opts.E2EDrop {
			continue
		}
		kept = append(kept, ec)
	}
	return kept
}

// finishHapDiv runs the same full-length candidate selection as
// finishE2E, but reports an edit-distance histogram instead of a CIGAR:
// for each qualifying cell, the number of 'X'/'I'/'D' ops its backtrack
// produces buckets into Counts[min(ed,4)], and the largest edit distance
// seen is reported separately.
func (a *Aligner) finishHapDiv(rows [][]Cell, nodes []qdawg.Node) *Result {
	qualifying := a.e2eCandidates(rows)
	if len(qualifying) == 0 {
		return nil
	}

	d := &qdawg.DAWG{Nodes: nodes}
	r := &Result{Mode: ModeHapDiv}

	for _, ec := range qualifying {
		full := a.backtrack(d, rows, ec.node, ec.cell)
		ed := 0
		for _, op := range full.Cigar {
			if op.Op != '=' {
				ed += op.Len
			}
		}
		bucket := ed
		if bucket > 4 {
			bucket = 4
		}
		r.HapDivCounts[bucket]++
		if ed > r.MaxEditDistance {
			r.MaxEditDistance = ed
		}
		if ec.cell.H > r.Score {
			r.Score = ec.cell.H
		}
	}

	return r
}

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

// Package align implements the local/end-to-end gapped aligner: dynamic
// programming over (DAWG node x FM-index bi-interval) with affine gap
// scoring, top-N pruning, and backtrack to a CIGAR.
package align

import (
	"github.com/ropebwt/rb3go/fmindex"
	"github.com/ropebwt/rb3go/seq"
)

// Origin names which register a cell's H score came from.
type Origin int

const (
	OriginH Origin = iota
	OriginE
	OriginF
)

// Cell is one placed DP cell: a reference bi-interval reached by some
// path through the query's DAWG, with affine-gap registers and explicit
// backpointers. Named fields replace the teacher's packed-integer
// backpointer tricks per the decision to keep the DP row plainly
// inspectable (spec.md §9's "use an explicit struct with named fields").
type Cell struct {
	H, E, F    int32
	Interval   fmindex.BiInterval
	RLen, QLen uint32

	HFrom              Origin
	HFromRow, HFromCol uint32

	EFrom uint32

	// FFromID is the stable id (topN.Add's monotonic counter, not a slice
	// position) of the cell this cell's F register was propagated from, or
	// -1 when F was never resolved to a concrete origin (see DESIGN.md's
	// Open Question 1: the fallback is reproduced exactly as documented
	// rather than invented). A row is rebuilt (and reordered) by topN more
	// than once after a deletion candidate captures its parent's identity,
	// so that identity must survive reordering; backtrack resolves it back
	// to a cell by scanning the finalized row for a matching ID rather than
	// indexing into it directly.
	FFromID int32

	// ID is this cell's stable identity within the topN it was added to,
	// assigned by topN.Add and preserved across topN.evictWorst's
	// heap-driven reordering of its backing slice. Cells built directly
	// (e.g. the DAWG root) outside of a topN carry the zero value, which
	// coincides with topN's first id — but the root is never the target of
	// an FFromID backpointer, so the ambiguity is harmless.
	ID int32

	// RefSym is the reference base consumed reaching this cell via a
	// diagonal (H) or deletion (F) step; undefined for an insertion (E)
	// cell, which consumes no reference base. Not named in spec.md's Cell
	// sketch, but needed to render CIGAR '='/'X' tokens and the matched
	// reference bases during backtrack without re-deriving them from the
	// bi-interval alone.
	RefSym seq.Symbol
}

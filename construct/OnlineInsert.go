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
	"sort"

	"github.com/ropebwt/rb3go/rank/rope"
	"github.com/ropebwt/rb3go/seq"
)

// SortOrder controls the order OnlineInsert feeds strings into the rope
// before inserting them, one at a time. Named after the build command's
// -s/-r flags (MR_SO_RLO/MR_SO_RCLO in the teacher's mrope dependency):
// insertion order changes the rope's intermediate node shape and therefore
// its construction speed, never the final indexed content.
type SortOrder int

const (
	// SortInput inserts strings in the order they were read (MR_SO_IO).
	SortInput SortOrder = iota
	// SortRLO sorts strings by reverse lexicographic order before
	// insertion (MR_SO_RLO), tending to group strings with shared
	// suffixes so their insert positions cluster and the rope stays
	// shallow.
	SortRLO
	// SortRCLO sorts by reverse-complement lexicographic order
	// (MR_SO_RCLO), the same clustering benefit for strand-symmetric
	// batches where a string's useful neighbor is its own reverse
	// complement rather than another forward read.
	SortRCLO
)

// OnlineInsert builds (or extends) a rope by inserting each of entries'
// $-terminated strings one character at a time, back to front — the
// ropebwt2 "-2" construction path, an alternative to the suffix-array
// batch-and-merge pipeline (Pipeline) that trades throughput for not
// needing a second copy of the batch's text in memory as a suffix array.
//
// Grounded on ropebwt2's row-by-row insertion algorithm: the row for the
// new string's sentinel suffix is appended to the end of the $-class
// (every string's $ compares equal, so a newly inserted string's sentinel
// naturally sorts after every existing one) with the last real symbol as
// its BWT symbol; then, walking the string from last real symbol to first,
// the row for each longer suffix is inserted where the LF-mapping of the
// previous row places it, holding the character before it (or $ for the
// whole string).
func OnlineInsert(r *rope.Rope, entries []seq.Seq, order SortOrder) {
	sorted := sortEntries(entries, order)
	for _, s := range sorted {
		insertOne(r, s)
	}
}

func sortEntries(entries []seq.Seq, order SortOrder) []seq.Seq {
	out := make([]seq.Seq, len(entries))
	copy(out, entries)

	switch order {
	case SortRLO:
		sort.Slice(out, func(i, j int) bool { return lessReversed(out[i], out[j]) })
	case SortRCLO:
		sort.Slice(out, func(i, j int) bool {
			return lessReversed(out[i].ReverseComplement(), out[j].ReverseComplement())
		})
	}

	return out
}

// lessReversed compares two symbol strings as if read back to front,
// without allocating a reversed copy of either.
func lessReversed(a, b seq.Seq) bool {
	for i, j := len(a)-1, len(b)-1; i >= 0 && j >= 0; i, j = i-1, j-1 {
		if a[i] != b[j] {
			return a[i] < b[j]
		}
	}
	return len(a) < len(b)
}

// insertOne inserts a single $-terminated string into r, row by row.
func insertOne(r *rope.Rope, s seq.Seq) {
	if len(s) == 0 {
		return
	}

	// k is the global row of the row being added, class/local its F class
	// and rank within that class; the row's L symbol is the character
	// preceding its suffix (s[i]), or $ for the row of the whole string.
	k := r.ClassLen(int(seq.Sentinel))
	class, local := int(seq.Sentinel), k

	for i := len(s) - 2; i >= -1; i-- {
		c := seq.Sentinel
		if i >= 0 {
			c = s[i]
		}
		r.Insert(class, local, c, 1)
		if i < 0 {
			break
		}
		_, occ := r.Rank1(k)
		acc := r.Acc()
		k = acc[c] + occ[c]
		class, local = int(c), occ[c]
	}
}

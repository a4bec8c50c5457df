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

package rope

import (
	"github.com/ropebwt/rb3go/rank"
	"github.com/ropebwt/rb3go/seq"
)

// Rope is the mutable FMR rank dictionary: six trees, one per F-column
// symbol class c, where tree_c holds the actual (last-column) symbol of
// every BWT row whose first column is c. Because the BWT's F and L
// columns share the same symbol multiset, tree_c's length equals the
// total occurrences of symbol c in the indexed text — so the trees'
// cumulative lengths double as the standard FM-index C[] table (Acc()).
type Rope struct {
	trees    [seq.AlphabetSize]*Tree
	blockLen int
	maxNodes int
}

// New creates an empty six-tree rope. blockLen/maxNodes <= 0 fall back to
// the package defaults.
func New(blockLen, maxNodes int) *Rope {
	r := &Rope{blockLen: blockLen, maxNodes: maxNodes}
	for c := range r.trees {
		r.trees[c] = NewTree(blockLen, maxNodes)
	}
	return r
}

// Empty reports whether the rope holds no symbols yet — construct's stage
// M uses this to decide whether to seed the rope from the first partial
// BWT rather than merge into it.
func (r *Rope) Empty() bool {
	return r.Len() == 0
}

// Insert splices runLength copies of symbol into tree treeClass at local
// position rankInClass, per spec's Insert(tree_c, rank_in_class, symbol,
// run_length) operation.
func (r *Rope) Insert(treeClass int, rankInClass uint64, symbol seq.Symbol, runLength uint64) {
	r.trees[treeClass].Insert(rankInClass, symbol, runLength)
}

// ClassLen returns the number of symbols currently stored in tree c,
// equivalently the total occurrences of symbol c in the indexed text so
// far. construct.OnlineInsert uses this to find the local rank a new
// sentinel row should be appended at.
func (r *Rope) ClassLen(c int) uint64 {
	return r.trees[c].Len()
}

// Runs returns tree c's run list (see Tree.Runs), the per-class slice
// convert's FMR->FMD/FMR->plain converters concatenate in class order.
func (r *Rope) Runs(c int) []rank.Run {
	return r.trees[c].Runs()
}

// classFor returns the F-column class owning global BWT position k, and
// k translated into that class's local position.
func (r *Rope) classFor(k uint64) (class int, local uint64) {
	acc := uint64(0)
	for c := 0; c < seq.AlphabetSize; c++ {
		l := r.trees[c].Len()
		if k < acc+l {
			return c, k - acc
		}
		acc += l
	}
	return seq.AlphabetSize - 1, r.trees[seq.AlphabetSize-1].Len()
}

// Rank1 implements rank.Dict.
func (r *Rope) Rank1(k uint64) (seq.Symbol, [seq.AlphabetSize]uint64) {
	if k >= r.Len() {
		return seq.Sentinel, r.classTotals(seq.AlphabetSize)
	}

	class, local := r.classFor(k)
	sym, localOcc := r.trees[class].LocalRank1(local)

	occ := r.classTotals(class)
	for s := 0; s < seq.AlphabetSize; s++ {
		occ[s] += localOcc[s]
	}
	return sym, occ
}

// Rank2 implements rank.Dict. Unlike rld's forward-only superblock decode,
// tree descent is O(log n) regardless of position, so there is no
// performance reason to share one pass between the two queries: two
// independent Rank1 calls are simpler and equally cheap.
func (r *Rope) Rank2(k, l uint64) ([seq.AlphabetSize]uint64, [seq.AlphabetSize]uint64) {
	_, occK := r.Rank1(k)
	_, occL := r.Rank1(l)
	return occK, occL
}

// classTotals sums the full symbol counts of every tree strictly before
// upTo (upTo == seq.AlphabetSize sums all six).
func (r *Rope) classTotals(upTo int) [seq.AlphabetSize]uint64 {
	var occ [seq.AlphabetSize]uint64
	for c := 0; c < upTo; c++ {
		cnt := r.trees[c].Counts()
		for s := 0; s < seq.AlphabetSize; s++ {
			occ[s] += cnt[s]
		}
	}
	return occ
}

// Acc implements rank.Dict: the cumulative table built from each tree's
// total length doubles as the FM-index C[] array.
func (r *Rope) Acc() [seq.AlphabetSize + 1]uint64 {
	var acc [seq.AlphabetSize + 1]uint64
	for c := 0; c < seq.AlphabetSize; c++ {
		acc[c+1] = acc[c] + r.trees[c].Len()
	}
	return acc
}

// Len implements rank.Dict.
func (r *Rope) Len() uint64 {
	acc := r.Acc()
	return acc[seq.AlphabetSize]
}

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
	"container/heap"

	"github.com/ropebwt/rb3go/fmindex"
)

// topN keeps the n best cells (by H) for one DAWG node's row, deduplicated
// by reference bi-interval: two candidates pinned to the same (lo,hi) keep
// only the higher-scoring one. Same bounded-heap-plus-dedup-map shape as
// ssa.LocateAll's intervalHeap and qdawg's merge-by-interval map.
//
// Every cell Add places is assigned a stable id (nextID), independent of
// its position in cells. evictWorst (and Add's own append) are free to
// reorder or shrink cells at will; byID is kept in lockstep so a caller
// that captured an id before a later Add/evictWorst can still resolve it
// afterwards via IDFor/CellByID, which a raw slice position could not
// survive.
type topN struct {
	n      int
	cells  []Cell
	index  map[fmindex.BiInterval]int // bi-interval -> position in cells
	byID   map[int32]int              // id -> position in cells
	nextID int32
}

func newTopN(n int) *topN {
	return &topN{
		n:     n,
		index: make(map[fmindex.BiInterval]int),
		byID:  make(map[int32]int),
	}
}

// Add inserts c, replacing any existing cell at the same interval if c
// scores higher, then evicts the worst cell if the row exceeds n. Returns
// c's own new id if c's interval was not yet present (even when the
// eviction that follows removes c itself), otherwise the incumbent's id,
// which c inherits if it won the replacement.
func (t *topN) Add(c Cell) int32 {
	if pos, ok := t.index[c.Interval]; ok {
		if c.H > t.cells[pos].H {
			c.ID = t.cells[pos].ID
			t.cells[pos] = c
		}
		return t.cells[pos].ID
	}

	id := t.nextID
	t.nextID++
	c.ID = id

	t.cells = append(t.cells, c)
	pos := len(t.cells) - 1
	t.index[c.Interval] = pos
	t.byID[id] = pos

	if t.n > 0 && len(t.cells) > t.n {
		t.evictWorst()
	}
	return id
}

// evictWorst removes the single lowest-H cell via a one-shot heap build;
// rows are small (bounded by n), so this stays cheap without needing to
// maintain a persistent heap invariant across every Add. heap.Init/Pop
// reorder surviving cells as a side effect of the sift, so index and byID
// are rebuilt wholesale from the post-pop slice rather than patched.
func (t *topN) evictWorst() {
	h := cellHeap(t.cells)
	heap.Init(&h)
	worst := heap.Pop(&h).(Cell)
	delete(t.index, worst.Interval)
	delete(t.byID, worst.ID)

	t.cells = []Cell(h)
	for i, c := range t.cells {
		t.index[c.Interval] = i
		t.byID[c.ID] = i
	}
}

// IDFor returns the stable id of the cell currently occupying iv, if any.
func (t *topN) IDFor(iv fmindex.BiInterval) (int32, bool) {
	pos, ok := t.index[iv]
	if !ok {
		return 0, false
	}
	return t.cells[pos].ID, true
}

// CellByID resolves id back to a cell regardless of how many evictions or
// reinsertions have reshuffled cells since id was captured, as long as the
// cell it names hasn't itself been evicted.
func (t *topN) CellByID(id int32) (Cell, bool) {
	pos, ok := t.byID[id]
	if !ok {
		return Cell{}, false
	}
	return t.cells[pos], true
}

// Cells returns the row's surviving cells, in no particular order.
func (t *topN) Cells() []Cell {
	return t.cells
}

type cellHeap []Cell

func (h cellHeap) Len() int            { return len(h) }
func (h cellHeap) Less(i, j int) bool  { return h[i].H < h[j].H }
func (h cellHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *cellHeap) Push(x interface{}) { *h = append(*h, x.(Cell)) }
func (h *cellHeap) Pop() interface{} {
	old := *h
	n := len(old)
	v := old[n-1]
	*h = old[:n-1]
	return v
}

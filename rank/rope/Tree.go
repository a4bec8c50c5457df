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
	"github.com/ropebwt/rb3go/internal"
	"github.com/ropebwt/rb3go/rank"
	"github.com/ropebwt/rb3go/seq"
)

// Tree is one of the six per-class B+-trees. Insert-time splits are
// propagated upward by return value (the usual way to grow a B-tree
// without parent pointers): insertRec mutates the subtree it's handed in
// place and, if it had to split, hands back a sibling node's arena index
// plus that sibling's aggregate length/counts.
type Tree struct {
	arena    *internal.Arena[ropeNode]
	root     int
	blockLen int
	maxNodes int
	length   uint64
	counts   [seq.AlphabetSize]uint64
}

// NewTree creates an empty tree. blockLen/maxNodes <= 0 fall back to the
// package defaults.
func NewTree(blockLen, maxNodes int) *Tree {
	if blockLen <= 0 {
		blockLen = DefaultBlockLen
	}
	if maxNodes <= 0 {
		maxNodes = DefaultMaxNodes
	}

	arena := internal.NewArena[ropeNode](64)
	root := arena.Alloc()
	*arena.Get(root) = ropeNode{leaf: true}

	return &Tree{arena: arena, root: root, blockLen: blockLen, maxNodes: maxNodes}
}

// Len reports the number of symbols this tree holds.
func (t *Tree) Len() uint64 { return t.length }

// Counts reports the total occurrences of each symbol across the whole
// tree.
func (t *Tree) Counts() [seq.AlphabetSize]uint64 { return t.counts }

// Insert splices runLength copies of symbol into the tree at local
// position pos (0 <= pos <= t.Len()), descending to the covering leaf,
// splitting leaves/internal nodes that overflow their block_len/max_nodes
// bound, and growing a new root if the split reaches the top.
func (t *Tree) Insert(pos uint64, symbol seq.Symbol, runLength uint64) {
	sibling, leftLen, leftCnt, rightLen, rightCnt := t.insertRec(t.root, pos, symbol, runLength)

	if sibling >= 0 {
		newRoot := t.arena.Alloc()
		*t.arena.Get(newRoot) = ropeNode{
			children: []int{t.root, sibling},
			childLen: []uint64{leftLen, rightLen},
			childCnt: [][seq.AlphabetSize]uint64{leftCnt, rightCnt},
		}
		t.root = newRoot
	}

	t.length += runLength
	t.counts[symbol] += runLength
}

// insertRec inserts into the subtree rooted at nodeIdx and returns the
// arena index of a new right sibling (-1 if no split occurred) plus the
// aggregate (length, per-symbol counts) of the left part (the original
// nodeIdx, mutated in place) and, when a split did occur, of the right
// sibling.
func (t *Tree) insertRec(nodeIdx int, pos uint64, symbol seq.Symbol, runLength uint64) (sibling int, leftLen uint64, leftCnt [seq.AlphabetSize]uint64, rightLen uint64, rightCnt [seq.AlphabetSize]uint64) {
	node := t.arena.Get(nodeIdx)

	if node.leaf {
		spliceRun(node, pos, symbol, runLength)

		if len(node.runs) <= t.blockLen {
			l, c := sumRuns(node.runs)
			return -1, l, c, 0, [seq.AlphabetSize]uint64{}
		}

		mid := len(node.runs) / 2
		rightRuns := append([]rank.Run(nil), node.runs[mid:]...)
		node.runs = node.runs[:mid:mid]

		rightIdx := t.arena.Alloc()
		*t.arena.Get(rightIdx) = ropeNode{leaf: true, runs: rightRuns}

		l, c := sumRuns(t.arena.Get(nodeIdx).runs)
		rl, rc := sumRuns(rightRuns)
		return rightIdx, l, c, rl, rc
	}

	i, local := childAt(node, pos)

	childSib, childLeftLen, childLeftCnt, childRightLen, childRightCnt := t.insertRec(node.children[i], local, symbol, runLength)

	node.childLen[i] = childLeftLen
	node.childCnt[i] = childLeftCnt

	if childSib >= 0 {
		node.children = insertAt(node.children, i+1, childSib)
		node.childLen = insertAtU64(node.childLen, i+1, childRightLen)
		node.childCnt = insertAtCnt(node.childCnt, i+1, childRightCnt)
	}

	if len(node.children) <= t.maxNodes {
		l, c := sumChildren(node)
		return -1, l, c, 0, [seq.AlphabetSize]uint64{}
	}

	mid := len(node.children) / 2
	right := &ropeNode{
		children: append([]int(nil), node.children[mid:]...),
		childLen: append([]uint64(nil), node.childLen[mid:]...),
		childCnt: append([][seq.AlphabetSize]uint64(nil), node.childCnt[mid:]...),
	}
	node.children = node.children[:mid:mid]
	node.childLen = node.childLen[:mid:mid]
	node.childCnt = node.childCnt[:mid:mid]

	rightIdx := t.arena.Alloc()
	*t.arena.Get(rightIdx) = *right

	l, c := sumChildren(t.arena.Get(nodeIdx))
	rl, rc := sumChildren(right)
	return rightIdx, l, c, rl, rc
}

// Runs returns the tree's full run list in position order, merging the
// boundary runs of adjacent leaves when they share a symbol (a tree split
// never merges runs, so a run that was whole before a split can end up as
// two adjacent same-symbol runs in sibling leaves). Used by convert to
// re-express an FMR rope as FMD or plain symbols.
func (t *Tree) Runs() []rank.Run {
	var out []rank.Run
	t.collectRuns(t.root, &out)
	return out
}

func (t *Tree) collectRuns(nodeIdx int, out *[]rank.Run) {
	node := t.arena.Get(nodeIdx)

	if node.leaf {
		for _, r := range node.runs {
			if n := len(*out); n > 0 && (*out)[n-1].Sym == r.Sym {
				(*out)[n-1].Len += r.Len
			} else {
				*out = append(*out, r)
			}
		}
		return
	}

	for _, child := range node.children {
		t.collectRuns(child, out)
	}
}

// LocalRank1 returns the symbol at local position pos within this tree
// and occ[c], the count of symbol c across local positions [0, pos).
func (t *Tree) LocalRank1(pos uint64) (seq.Symbol, [seq.AlphabetSize]uint64) {
	return t.rank1Rec(t.root, pos)
}

func (t *Tree) rank1Rec(nodeIdx int, pos uint64) (seq.Symbol, [seq.AlphabetSize]uint64) {
	node := t.arena.Get(nodeIdx)

	if node.leaf {
		var occ [seq.AlphabetSize]uint64
		p := uint64(0)
		for _, r := range node.runs {
			if p+r.Len > pos {
				occ[r.Sym] += pos - p
				return r.Sym, occ
			}
			occ[r.Sym] += r.Len
			p += r.Len
		}
		return seq.Sentinel, occ
	}

	var occ [seq.AlphabetSize]uint64
	p := uint64(0)
	for i, clen := range node.childLen {
		if p+clen > pos {
			sym, childOcc := t.rank1Rec(node.children[i], pos-p)
			for c := 0; c < seq.AlphabetSize; c++ {
				occ[c] += childOcc[c]
			}
			return sym, occ
		}
		cnt := node.childCnt[i]
		for c := 0; c < seq.AlphabetSize; c++ {
			occ[c] += cnt[c]
		}
		p += clen
	}

	return seq.Sentinel, occ
}

// spliceRun inserts runLength copies of symbol at local position pos
// within a leaf's run list, merging into an adjacent run of the same
// symbol where possible and splitting a straddled run otherwise.
func spliceRun(node *ropeNode, pos uint64, symbol seq.Symbol, runLength uint64) {
	p := uint64(0)

	for i, r := range node.runs {
		if pos == p {
			if i > 0 && node.runs[i-1].Sym == symbol {
				node.runs[i-1].Len += runLength
				return
			}
			if r.Sym == symbol {
				node.runs[i].Len += runLength
				return
			}
			node.runs = insertRunAt(node.runs, i, rank.Run{Sym: symbol, Len: runLength})
			return
		}

		if pos < p+r.Len {
			if r.Sym == symbol {
				node.runs[i].Len += runLength
				return
			}
			// split r at pos into [p, pos) and [pos, p+r.Len)
			head := rank.Run{Sym: r.Sym, Len: pos - p}
			tail := rank.Run{Sym: r.Sym, Len: r.Len - (pos - p)}
			replacement := []rank.Run{head, {Sym: symbol, Len: runLength}, tail}
			node.runs = replaceRunAt(node.runs, i, replacement)
			return
		}

		p += r.Len
	}

	// pos == total length: append, merging with the trailing run if possible.
	if n := len(node.runs); n > 0 && node.runs[n-1].Sym == symbol {
		node.runs[n-1].Len += runLength
		return
	}
	node.runs = append(node.runs, rank.Run{Sym: symbol, Len: runLength})
}

func insertRunAt(runs []rank.Run, i int, r rank.Run) []rank.Run {
	runs = append(runs, rank.Run{})
	copy(runs[i+1:], runs[i:])
	runs[i] = r
	return runs
}

func replaceRunAt(runs []rank.Run, i int, repl []rank.Run) []rank.Run {
	out := make([]rank.Run, 0, len(runs)-1+len(repl))
	out = append(out, runs[:i]...)
	out = append(out, repl...)
	out = append(out, runs[i+1:]...)
	return out
}

func sumRuns(runs []rank.Run) (uint64, [seq.AlphabetSize]uint64) {
	var l uint64
	var c [seq.AlphabetSize]uint64
	for _, r := range runs {
		l += r.Len
		c[r.Sym] += r.Len
	}
	return l, c
}

func sumChildren(node *ropeNode) (uint64, [seq.AlphabetSize]uint64) {
	var l uint64
	var c [seq.AlphabetSize]uint64
	for i := range node.childLen {
		l += node.childLen[i]
		for s := 0; s < seq.AlphabetSize; s++ {
			c[s] += node.childCnt[i][s]
		}
	}
	return l, c
}

// childAt returns the index of the child covering local position pos and
// pos translated into that child's own local coordinate space.
func childAt(node *ropeNode, pos uint64) (int, uint64) {
	p := uint64(0)
	for i, clen := range node.childLen {
		if i == len(node.childLen)-1 || pos < p+clen {
			return i, pos - p
		}
		p += clen
	}
	return 0, pos
}

func insertAt(s []int, i, v int) []int {
	s = append(s, 0)
	copy(s[i+1:], s[i:])
	s[i] = v
	return s
}

func insertAtU64(s []uint64, i int, v uint64) []uint64 {
	s = append(s, 0)
	copy(s[i+1:], s[i:])
	s[i] = v
	return s
}

func insertAtCnt(s [][seq.AlphabetSize]uint64, i int, v [seq.AlphabetSize]uint64) [][seq.AlphabetSize]uint64 {
	s = append(s, [seq.AlphabetSize]uint64{})
	copy(s[i+1:], s[i:])
	s[i] = v
	return s
}

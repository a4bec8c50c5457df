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

// Package qdawg builds a small, disposable index over a single query
// string: a 16-bit-alphabet suffix array and BWT give O(1)-amortized
// backward-search rank, and repeatedly extending left from the empty
// string enumerates every distinct substring of the query as a directed
// acyclic word graph (DAWG) — one node per distinct BWT interval, edges
// labeled by the extending symbol, topologically ordered so every node's
// predecessors already exist by the time it's created.
package qdawg

import (
	"github.com/ropebwt/rb3go/sais"
	"github.com/ropebwt/rb3go/seq"
)

// NodeID indexes DAWG.Nodes. The root (the empty string) is always 0.
type NodeID uint32

// Node is one DAWG state: the trailing symbol that reaches it and the
// (possibly many) predecessor states that reach it via that same symbol.
// lo/hi is the node's BWT interval over the query's mini-index — the key
// distinct intervals are merged on, giving the DAWG its "word graph"
// shape instead of a plain suffix trie.
type Node struct {
	Sym    seq.Symbol
	Lo, Hi uint32
	Pred   []NodeID
}

// DAWG is the query-side substring automaton: Nodes is already in
// topological order (a node is only appended once every symbol reaching
// it from an existing node has been discovered), so a linear scan over
// Nodes visits predecessors before successors.
type DAWG struct {
	Nodes []Node
}

// Root is the id of the empty-string node every DAWG starts from.
const Root NodeID = 0

// EnumerateNodes returns the DAWG's nodes in topological order.
func (d *DAWG) EnumerateNodes() []Node {
	return d.Nodes
}

const blockSize = 16

// miniIndex is the query's own tiny FM-index: a 32-bit BWT (stored as
// seq.Symbol, one byte each — the "32-bit" in spec prose refers to the
// position/rank arithmetic, not a packed symbol width) plus occurrence
// checkpoints every 16 rows, giving O(1) amortized rank by scanning at
// most 15 rows past the nearest checkpoint.
type miniIndex struct {
	bwt         []seq.Symbol
	checkpoints [][seq.AlphabetSize]uint32
	acc         [seq.AlphabetSize + 1]uint64
}

func buildMiniIndex(query seq.Seq) *miniIndex {
	n := len(query) + 1
	text := make(seq.Seq, n)
	copy(text, query)
	text[n-1] = seq.Sentinel

	codes := make([]uint16, n)
	for i, s := range text {
		codes[i] = uint16(s)
	}
	sa := sais.Build16(codes)

	bwt := make([]seq.Symbol, n)
	for i := 0; i < n; i++ {
		pos := int(sa[i]) - 1
		if pos < 0 {
			pos += n
		}
		bwt[i] = text[pos]
	}

	nBlocks := (n + blockSize - 1) / blockSize
	checkpoints := make([][seq.AlphabetSize]uint32, nBlocks+1)
	for b := 1; b <= nBlocks; b++ {
		checkpoints[b] = checkpoints[b-1]
		start := (b - 1) * blockSize
		end := start + blockSize
		if end > n {
			end = n
		}
		for i := start; i < end; i++ {
			checkpoints[b][bwt[i]]++
		}
	}

	var acc [seq.AlphabetSize + 1]uint64
	for c := 0; c < seq.AlphabetSize; c++ {
		acc[c+1] = acc[c] + uint64(checkpoints[nBlocks][c])
	}

	return &miniIndex{bwt: bwt, checkpoints: checkpoints, acc: acc}
}

// rank counts occurrences of c in bwt[0:k].
func (m *miniIndex) rank(c seq.Symbol, k uint32) uint32 {
	block := k / blockSize
	n := m.checkpoints[block][c]
	for i := block * blockSize; i < k; i++ {
		if m.bwt[i] == c {
			n++
		}
	}
	return n
}

// extend performs one backward-search step: given the interval of some
// substring w, returns the interval of c+w.
func (m *miniIndex) extend(lo, hi uint32, c seq.Symbol) (uint32, uint32) {
	newLo := uint32(m.acc[c]) + m.rank(c, lo)
	newHi := uint32(m.acc[c]) + m.rank(c, hi)
	return newLo, newHi
}

// Build constructs the DAWG of every distinct substring of query.
// Extension only ever prepends A/C/G/T/N — the appended sentinel never
// occurs inside a real query substring, so it is excluded from
// extension even though it occupies a row of the mini-index.
func Build(query seq.Seq) *DAWG {
	mi := buildMiniIndex(query)
	n := uint32(len(query) + 1)

	d := &DAWG{Nodes: []Node{{Sym: seq.Sentinel, Lo: 0, Hi: n}}}
	type key struct{ lo, hi uint32 }
	seen := map[key]NodeID{{0, n}: Root}

	queue := []NodeID{Root}
	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		parent := d.Nodes[p]

		for c := seq.Symbol(1); c < seq.AlphabetSize; c++ {
			lo, hi := mi.extend(parent.Lo, parent.Hi, c)
			if hi <= lo {
				continue
			}
			k := key{lo, hi}
			if id, ok := seen[k]; ok {
				d.Nodes[id].Pred = append(d.Nodes[id].Pred, p)
				continue
			}
			id := NodeID(len(d.Nodes))
			d.Nodes = append(d.Nodes, Node{Sym: c, Lo: lo, Hi: hi, Pred: []NodeID{p}})
			seen[k] = id
			queue = append(queue, id)
		}
	}

	return d
}

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

// Package ssa is the sampled suffix array: a sparse table letting a matched
// FM-index row resolve to (sequence id, position within that sequence)
// without reconstructing the whole text, by walking at most stride LF-steps
// before hitting either a recorded sample or a sequence's own sentinel row.
package ssa

import (
	"container/heap"

	"github.com/ropebwt/rb3go/fmindex"
	"github.com/ropebwt/rb3go/seq"
)

// SSA is the sampled suffix array over an already-built index. R2I maps a
// sentinel row (one of the first m rows, m the number of indexed sequences)
// to the sequence id reached by LF-walking back to it; Arr holds one packed
// entry per sampled row, (distanceFromSeqStart<<MS | seqID). SS is the
// sampling shift (stride = 1<<SS), MS the number of low bits Arr reserves
// for the sequence id.
type SSA struct {
	R2I []uint64
	Arr []uint64
	SS  uint32
	MS  uint32
}

// bitsFor returns the number of bits needed to hold values in [0, n).
func bitsFor(n uint64) uint32 {
	if n <= 1 {
		return 1
	}
	b := uint32(0)
	for (uint64(1) << b) < n {
		b++
	}
	return b
}

// Generate builds an SSA over idx, sampling every 1<<shift rows beyond the
// sentinel block. Grounded on original_source/ssa.c's rb3_ssa_gen/ssa_gen1:
// for each sequence's sentinel row, walk LF-mapping backward through the
// text it encodes, recording a packed sample whenever the walk lands on a
// row aligned to the sampling stride, and recording the sequence id against
// the row the walk finally returns to (its own sentinel) when it isn't.
func Generate(idx *fmindex.Index, shift uint32) *SSA {
	acc := idx.Acc()
	m := acc[1]
	total := acc[seq.AlphabetSize]

	s := &SSA{SS: shift, MS: bitsFor(m)}
	s.R2I = make([]uint64, m)

	var nSamples uint64
	if total > m {
		stride := uint64(1) << shift
		nSamples = (total - m + stride - 1) / stride
	}
	s.Arr = make([]uint64, nSamples)

	mask := (uint64(1) << shift) - 1

	type hit struct {
		x uint64
		l uint64
	}

	for seqID := uint64(0); seqID < m; seqID++ {
		k := seqID
		var l uint64
		var hits []hit

		for {
			l++
			sym, occ := idx.Rank1(k)
			k = acc[sym] + occ[sym]

			if sym == seq.Sentinel {
				s.R2I[k] = seqID
				break
			}

			if ((k - acc[1]) & mask) == 0 {
				hits = append(hits, hit{x: (k - acc[1]) >> shift, l: l})
			}
		}

		totalLen := l - 1
		for _, h := range hits {
			offset := totalLen - h.l
			s.Arr[h.x] = offset<<s.MS | seqID
		}
	}

	return s
}

// Sample reports the distance-from-sequence-start recorded for row k (the
// packed sample with its sequence-id bits shifted out), if k falls on a
// sampled position. ok is false for rows the
// sampling stride skipped, or outside the sampled (non-sentinel) range.
func (s *SSA) Sample(idx *fmindex.Index, k uint64) (steps uint32, ok bool) {
	acc := idx.Acc()
	if k < acc[1] {
		return 0, false
	}

	mask := (uint64(1) << s.SS) - 1
	if ((k - acc[1]) & mask) != 0 {
		return 0, false
	}

	x := (k - acc[1]) >> s.SS
	if x >= uint64(len(s.Arr)) {
		return 0, false
	}

	return uint32(s.Arr[x] >> s.MS), true
}

// Lookup resolves row k to its (position within sequence, sequence id),
// walking LF-mapping one step at a time until it lands on a sampled row or
// reaches a sequence's own sentinel, grounded on rb3_ssa's query loop.
// A row k at or beyond the BWT length has no answer and returns (0, 0).
func (s *SSA) Lookup(idx *fmindex.Index, k uint64) (pos uint64, seqID uint32) {
	acc := idx.Acc()
	if k >= acc[seq.AlphabetSize] {
		return 0, 0
	}
	mask := (uint64(1) << s.SS) - 1
	seqMask := (uint64(1) << s.MS) - 1

	var steps uint64
	for {
		if k >= acc[1] && ((k-acc[1])&mask) == 0 {
			x := (k - acc[1]) >> s.SS
			if x < uint64(len(s.Arr)) {
				packed := s.Arr[x]
				return steps + (packed >> s.MS), uint32(packed & seqMask)
			}
		}

		sym, occ := idx.Rank1(k)
		nextK := acc[sym] + occ[sym]

		if sym == seq.Sentinel {
			return steps, uint32(s.R2I[nextK])
		}

		k = nextK
		steps++
	}
}

// Hit is one resolved occurrence: the sequence it falls in and the 0-based
// offset of the match's first character within that sequence.
type Hit struct {
	SeqID uint32
	Pos   uint64
}

// intervalHeap is a container/heap priority queue of row ranges ordered by
// remaining width, smallest first: expanding the smallest pending range
// first keeps the number of outstanding ranges (and therefore peak memory)
// bounded while still visiting every row reachable from the original range.
type intervalHeap []rowRange

type rowRange struct {
	off    uint64
	lo, hi uint64
}

func (h intervalHeap) Len() int { return len(h) }
func (h intervalHeap) Less(i, j int) bool {
	return (h[i].hi - h[i].lo) < (h[j].hi - h[j].lo)
}
func (h intervalHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *intervalHeap) Push(x any) {
	*h = append(*h, x.(rowRange))
}

func (h *intervalHeap) Pop() any {
	old := *h
	n := len(old)
	v := old[n-1]
	*h = old[:n-1]
	return v
}

// LocateAll resolves every row in [lo, hi) to a Hit, up to maxSA results.
// Grounded on rb3_ssa_multi's interval-splitting scan (ssa_add_intv):
// rather than walking each row's own LF chain independently, it batches a
// whole pending range into a single Rank2 call, immediately emits any rows
// that land on a sentinel, and re-queues the per-symbol sub-ranges of the
// rest — always expanding the smallest pending range first so work scales
// with the number of rows actually emitted rather than the matched range's
// width.
func LocateAll(idx *fmindex.Index, lo, hi uint64, maxSA int) []Hit {
	if maxSA <= 0 || lo >= hi {
		return nil
	}

	acc := idx.Acc()

	h := &intervalHeap{{off: 0, lo: lo, hi: hi}}
	heap.Init(h)

	var hits []Hit
	for h.Len() > 0 && len(hits) < maxSA {
		iv := heap.Pop(h).(rowRange)

		occLo, occHi := idx.Rank2(iv.lo, iv.hi)

		for row := occLo[seq.Sentinel]; row < occHi[seq.Sentinel] && len(hits) < maxSA; row++ {
			hits = append(hits, Hit{SeqID: uint32(row), Pos: iv.off})
		}

		for c := seq.Symbol(1); c < seq.AlphabetSize && len(hits) < maxSA; c++ {
			subLo := acc[c] + occLo[c]
			subHi := acc[c] + occHi[c]
			if subLo < subHi {
				heap.Push(h, rowRange{off: iv.off + 1, lo: subLo, hi: subHi})
			}
		}
	}

	return hits
}

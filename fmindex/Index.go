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

// Package fmindex is the FM-index façade: one rank.Facade plus bidirectional
// bi-interval extension, the operation both exact backward search and SMEM
// scanning are built from.
package fmindex

import (
	"errors"

	"github.com/ropebwt/rb3go/rank"
	"github.com/ropebwt/rb3go/seq"
)

// ErrAsymmetricIndex is returned by RequireSymmetric when the index holds
// only one strand of its input collection.
var ErrAsymmetricIndex = errors.New("fmindex: index does not contain both strands")

// BiInterval is a bidirectional FM-index interval: X0 anchors the forward
// (text) coordinate, X1 the paired coordinate on the implicit
// reverse-complement strand, Size is shared by both.
type BiInterval struct {
	X0, X1 uint64
	Size   uint64
}

// complementOrder lists the six symbols in order of their complement's
// natural rank ($ < A < C < G < T < N): {$, T, G, C, A, N}. Bi-interval
// extension must walk the paired coordinate's per-symbol sub-intervals in
// this order, because on the reverse-complement strand a base's neighbors
// are sorted by what it complements to, not by its own symbol value.
var complementOrder = [seq.AlphabetSize]seq.Symbol{
	seq.Sentinel, seq.T, seq.G, seq.C, seq.A, seq.N,
}

// Index wraps the shared rank dictionary façade (either backend) with the
// bi-interval operations the rest of the module queries through.
type Index struct {
	f *rank.Facade
}

// Open wraps an already-built rank facade.
func Open(f *rank.Facade) *Index {
	return &Index{f: f}
}

// Acc exposes the underlying façade's cumulative symbol table.
func (idx *Index) Acc() [seq.AlphabetSize + 1]uint64 {
	return idx.f.Acc()
}

// Len returns the indexed text length.
func (idx *Index) Len() uint64 {
	return idx.f.Len()
}

// Rank1 exposes the underlying façade's single-row rank query: the symbol
// at row k (the L-column entry) and the occurrence count of every symbol
// strictly before k. The primitive ssa's sample generation and lookup walk
// one LF-mapping step at a time with (rb3_fmi_rank1a in the teacher's own
// terms).
func (idx *Index) Rank1(k uint64) (seq.Symbol, [seq.AlphabetSize]uint64) {
	return idx.f.Rank1(k)
}

// Rank2 exposes the underlying façade's paired rank query, the same
// primitive Extend's extendAll uses, reused directly by ssa's interval
// expansion (rb3_ssa_multi's rb3_fmi_rank2a).
func (idx *Index) Rank2(k, l uint64) ([seq.AlphabetSize]uint64, [seq.AlphabetSize]uint64) {
	return idx.f.Rank2(k, l)
}

// RequireSymmetric reports ErrAsymmetricIndex unless the index's A/T and
// C/G occurrence counts match, the signature a strand-symmetric collection
// (every forward record's reverse complement also indexed) leaves in Acc:
// each base occurs exactly as often as its complement across the whole
// text. SMEM and hapdiv queries call this before scanning either strand,
// since a one-strand index makes a both-strands query meaningless rather
// than merely incomplete.
func (idx *Index) RequireSymmetric() error {
	acc := idx.Acc()
	countA := acc[seq.A+1] - acc[seq.A]
	countT := acc[seq.T+1] - acc[seq.T]
	countC := acc[seq.C+1] - acc[seq.C]
	countG := acc[seq.G+1] - acc[seq.G]
	if countA != countT || countC != countG {
		return ErrAsymmetricIndex
	}
	return nil
}

// InitInterval returns the full bi-interval for symbol c: the block of
// sorted rows beginning with c.
func (idx *Index) InitInterval(c seq.Symbol) BiInterval {
	acc := idx.f.Acc()
	return BiInterval{X0: acc[c], X1: acc[c], Size: acc[c+1] - acc[c]}
}

// BackwardSearch performs exact-match backward search for pattern (scanned
// right to left, the classic FM-index algorithm): returns the bi-interval
// of all occurrences, or a zero-size interval if pattern doesn't occur.
func (idx *Index) BackwardSearch(pattern seq.Seq) BiInterval {
	if len(pattern) == 0 {
		acc := idx.f.Acc()
		return BiInterval{X0: 0, X1: 0, Size: acc[seq.AlphabetSize]}
	}

	bi := idx.InitInterval(pattern[len(pattern)-1])
	for i := len(pattern) - 2; i >= 0 && bi.Size > 0; i-- {
		bi = idx.Extend(bi, pattern[i], true)
	}
	return bi
}

// Extend implements the bidirectional extension: from bi (a match of some
// substring), returns the bi-interval for the same substring with c
// appended (isBack == false) or prepended (isBack == true). A single Rank2
// call over [anchor, anchor+bi.Size) yields every symbol's sub-interval at
// once; extendAll computes all six and Extend selects c's.
func (idx *Index) Extend(bi BiInterval, c seq.Symbol, isBack bool) BiInterval {
	return idx.extendAll(bi, isBack)[c]
}

// extendAll returns the six sub-intervals bi splits into when extended by
// every symbol of the alphabet, grounded on the ropebwt3 rb3_fmd_extend
// algorithm: the anchor coordinate (x1 for forward extension, x0 for
// backward) advances via one Rank2 call; the paired coordinate advances by
// the cumulative size of symbols earlier in complementOrder.
func (idx *Index) extendAll(bi BiInterval, isBack bool) [seq.AlphabetSize]BiInterval {
	anchorIsX1 := !isBack
	var anchor uint64
	if anchorIsX1 {
		anchor = bi.X1
	} else {
		anchor = bi.X0
	}

	occLo, occHi := idx.f.Rank2(anchor, anchor+bi.Size)
	acc := idx.f.Acc()

	var out [seq.AlphabetSize]BiInterval
	var ext [seq.AlphabetSize]uint64

	for c := 0; c < seq.AlphabetSize; c++ {
		newAnchor := acc[c] + occLo[c]
		ext[c] = occHi[c] - occLo[c]
		if anchorIsX1 {
			out[c].X1 = newAnchor
		} else {
			out[c].X0 = newAnchor
		}
		out[c].Size = ext[c]
	}

	// Paired coordinate: carried from bi for complementOrder[0], then each
	// subsequent symbol in complementOrder starts where the previous one's
	// sub-interval ends.
	pairedFromBi := bi.X1
	if anchorIsX1 {
		pairedFromBi = bi.X0
	}

	prev := complementOrder[0]
	if anchorIsX1 {
		out[prev].X0 = pairedFromBi
	} else {
		out[prev].X1 = pairedFromBi
	}

	for i := 1; i < seq.AlphabetSize; i++ {
		cur := complementOrder[i]
		if anchorIsX1 {
			out[cur].X0 = out[prev].X0 + ext[prev]
		} else {
			out[cur].X1 = out[prev].X1 + ext[prev]
		}
		prev = cur
	}

	return out
}

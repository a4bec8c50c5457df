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

// Package convert streams BWT data between the module's four
// representations — plain symbol array, FMR (rope), FMD (rld), and BRE
// (the on-disk run codec) — without ever materializing more than one
// block of the source in memory beyond what the destination format itself
// requires. Grounded on the teacher's encoding-conversion family
// (rb3_enc_plain2fmr / rb3_enc_fmd2fmr / rb3_enc_fmr2fmd in
// original_source/fm-index.c): each converts by walking the source
// sequentially and feeding runs to the destination's own natural
// construction path (RLE append for rld.Build, per-class Insert for
// rope.Insert).
package convert

import (
	"io"

	"github.com/ropebwt/rb3go/bre"
	"github.com/ropebwt/rb3go/rank"
	"github.com/ropebwt/rb3go/rank/rld"
	"github.com/ropebwt/rb3go/rank/rope"
	"github.com/ropebwt/rb3go/seq"
)

// PlainToFMR builds a rope directly from a plain (uncompressed) BWT
// symbol array already in F-sorted row order. Each of the six classes is
// RLE-encoded from its own contiguous sub-range of bwt (bounds from a
// single counting pass), so no run is ever built spanning two classes —
// the same per-class-loop trick the teacher's worker_p2fmr uses to avoid
// a separate boundary-splitting pass.
func PlainToFMR(bwt []seq.Symbol, blockLen, maxNodes int) *rope.Rope {
	r := rope.New(blockLen, maxNodes)
	SeedFMR(r, bwt)
	return r
}

// SeedFMR populates an empty rope directly from a plain (uncompressed) BWT
// symbol array already in F-sorted row order, the same per-class-loop
// trick PlainToFMR uses, exposed separately so a caller already holding an
// empty rope (the construction pipeline's first batch) doesn't need to
// build and discard a second one.
func SeedFMR(r *rope.Rope, bwt []seq.Symbol) {
	var counts [seq.AlphabetSize]uint64
	for _, s := range bwt {
		counts[s]++
	}

	var acc [seq.AlphabetSize + 1]uint64
	for c := 0; c < seq.AlphabetSize; c++ {
		acc[c+1] = acc[c] + counts[c]
	}

	for c := 0; c < seq.AlphabetSize; c++ {
		localPos := uint64(0)
		off := acc[c]
		end := acc[c+1]

		var runSym seq.Symbol
		var runLen uint64

		for i := off; i < end; i++ {
			s := bwt[i]
			if runLen > 0 && s == runSym {
				runLen++
				continue
			}
			if runLen > 0 {
				r.Insert(c, localPos, runSym, runLen)
				localPos += runLen
			}
			runSym, runLen = s, 1
		}
		if runLen > 0 {
			r.Insert(c, localPos, runSym, runLen)
		}
	}
}

// FMRToPlain expands a rope back into a flat, F-sorted plain symbol
// array, concatenating each class's runs in class order.
func FMRToPlain(r *rope.Rope) []seq.Symbol {
	out := make([]seq.Symbol, 0, r.Len())
	for c := 0; c < seq.AlphabetSize; c++ {
		for _, run := range r.Runs(c) {
			for i := uint64(0); i < run.Len; i++ {
				out = append(out, run.Sym)
			}
		}
	}
	return out
}

// FMRToFMD re-encodes a rope's six class run lists, concatenated in class
// order, into an immutable rld.Dict.
func FMRToFMD(r *rope.Rope, logBase uint, superblockLen int) (*rld.Dict, error) {
	var runs []rank.Run
	for c := 0; c < seq.AlphabetSize; c++ {
		runs = append(runs, r.Runs(c)...)
	}
	return rld.Build(runs, logBase, superblockLen)
}

// FMDToFMR decodes an rld.Dict's full run list and re-inserts it into a
// fresh rope, splitting any run that straddles a symbol-class boundary
// (derived from the dict's own Acc() table) before inserting, since a
// rope's per-class Insert operates on one class at a time and cannot
// accept a run spanning two.
func FMDToFMR(d *rld.Dict, blockLen, maxNodes int) (*rope.Rope, error) {
	runs, err := d.Runs()
	if err != nil {
		return nil, err
	}

	r := rope.New(blockLen, maxNodes)
	insertSplitAtBoundaries(r, runs, d.Acc())
	return r, nil
}

// insertSplitAtBoundaries inserts a plain-position-ordered run list into
// r, splitting any run that straddles one of acc's class boundaries into
// per-class pieces first (a rope's Insert always targets one class).
func insertSplitAtBoundaries(r *rope.Rope, runs []rank.Run, acc [seq.AlphabetSize + 1]uint64) {
	pos := uint64(0)
	class := 0
	var localPos [seq.AlphabetSize]uint64

	for _, run := range runs {
		remaining := run.Len
		for remaining > 0 {
			for class < seq.AlphabetSize-1 && pos >= acc[class+1] {
				class++
			}
			avail := acc[class+1] - pos
			chunk := remaining
			if chunk > avail {
				chunk = avail
			}

			r.Insert(class, localPos[class], run.Sym, chunk)
			localPos[class] += chunk
			pos += chunk
			remaining -= chunk
		}
	}
}

// FMRToBRE streams a rope's run list out through a bre.Writer, class by
// class (the same class-concatenated order FMRToFMD uses), so the BRE
// file's record order matches FMD's position order.
func FMRToBRE(r *rope.Rope, w io.Writer) error {
	bw, err := bre.NewWriter(w, bre.Header{})
	if err != nil {
		return err
	}

	for c := 0; c < seq.AlphabetSize; c++ {
		for _, run := range r.Runs(c) {
			if err := bw.WriteRun(run.Sym, run.Len); err != nil {
				return err
			}
		}
	}

	return bw.Close()
}

// BREToFMR reads a BRE stream and re-inserts its runs into a fresh rope,
// splitting class-straddling runs the same way FMDToFMR does — a BRE
// file's records are in plain F-sorted position order, identical to
// FMD's, so the boundary can only be known from the record stream's own
// split points, not a header field; BREToFMR recomputes it by reading the
// whole run list first with a counting pass.
func BREToFMR(r io.Reader, blockLen, maxNodes int) (*rope.Rope, error) {
	br, err := bre.NewReader(r)
	if err != nil {
		return nil, err
	}

	var runs []rank.Run
	var acc [seq.AlphabetSize + 1]uint64

	for {
		sym, length, err := br.ReadRun()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		runs = append(runs, rank.Run{Sym: sym, Len: length})
		acc[sym+1] += length
	}

	for c := 0; c < seq.AlphabetSize; c++ {
		acc[c+1] += acc[c]
	}

	rp := rope.New(blockLen, maxNodes)
	insertSplitAtBoundaries(rp, runs, acc)
	return rp, nil
}

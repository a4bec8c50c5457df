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

package rld

import (
	"bytes"
	"io"
	"sort"

	"github.com/ropebwt/rb3go/bitstream"
	"github.com/ropebwt/rb3go/rank"
	"github.com/ropebwt/rb3go/seq"
)

// superblock is a sparse index entry: the byte offset of the run that
// starts this superblock's byte-aligned region, plus the cumulative
// position and per-symbol counts accumulated by every run before it.
type superblock struct {
	byteOffset int
	basePos    uint64
	baseAcc    [seq.AlphabetSize]uint64
}

// Dict is the immutable delta-coded rank dictionary. Once built (or
// mmap-loaded, see Open), it is read-only: spec.md's Non-goal on FMD
// mutation.
type Dict struct {
	data        []byte
	superblocks []superblock
	acc         [seq.AlphabetSize + 1]uint64
	totalLen    uint64
	logBase     uint
	superLen    int
	// closer releases the mmap backing data, if this Dict was Open()'d
	// from a file rather than Build() from runs in memory.
	closer io.Closer
}

// Acc implements rank.Dict.
func (d *Dict) Acc() [seq.AlphabetSize + 1]uint64 {
	return d.acc
}

// Len implements rank.Dict.
func (d *Dict) Len() uint64 {
	return d.totalLen
}

// Close releases any mmap backing this Dict. Safe to call on a Dict built
// in memory (no-op).
func (d *Dict) Close() error {
	if d.closer != nil {
		return d.closer.Close()
	}
	return nil
}

// superblockFor returns the index of the last superblock whose basePos is
// <= k (the superblock covering position k).
func (d *Dict) superblockFor(k uint64) int {
	i := sort.Search(len(d.superblocks), func(i int) bool {
		return d.superblocks[i].basePos > k
	})
	return i - 1
}

// closedNopReader lets bitstream.NewDefaultInputBitStream consume a byte
// slice without requiring a real file handle.
type closedNopReader struct {
	*bytes.Reader
}

func (closedNopReader) Close() error { return nil }

func newReaderAt(data []byte, offset int) *closedNopReader {
	return &closedNopReader{bytes.NewReader(data[offset:])}
}

// Rank1 implements rank.Dict.
func (d *Dict) Rank1(k uint64) (seq.Symbol, [seq.AlphabetSize]uint64) {
	if k >= d.totalLen {
		return seq.Sentinel, d.acc3(seq.AlphabetSize) // full counts, out of range
	}

	sb := d.superblocks[d.superblockFor(k)]
	occ := sb.baseAcc
	pos := sb.basePos

	r := newReaderAt(d.data, sb.byteOffset)
	ibs, _ := bitstream.NewDefaultInputBitStream(r, 1024)

	for {
		sym := seq.Symbol(ibs.ReadBits(symbolBits))
		length := readLength(ibs, d.logBase)

		if pos+length > k {
			occ[sym] += k - pos
			return sym, occ
		}

		occ[sym] += length
		pos += length
	}
}

// acc3 is a helper returning a snapshot of the whole-dict acc table cut
// down to the per-symbol array shape (used only for the out-of-range path).
func (d *Dict) acc3(_ int) [seq.AlphabetSize]uint64 {
	var out [seq.AlphabetSize]uint64
	for c := 0; c < seq.AlphabetSize; c++ {
		out[c] = d.acc[c+1] - d.acc[c]
	}
	return out
}

// Rank2 implements rank.Dict: decodes the run stream once from the lower
// of the two positions, snapshotting occupancy counts as it crosses each
// requested position, so no byte of the underlying stream is read twice.
func (d *Dict) Rank2(k, l uint64) ([seq.AlphabetSize]uint64, [seq.AlphabetSize]uint64) {
	lo, hi := k, l
	swapped := false
	if lo > hi {
		lo, hi = hi, lo
		swapped = true
	}

	sb := d.superblocks[d.superblockFor(lo)]
	occ := sb.baseAcc
	pos := sb.basePos

	r := newReaderAt(d.data, sb.byteOffset)
	ibs, _ := bitstream.NewDefaultInputBitStream(r, 1024)

	var occLo, occHi [seq.AlphabetSize]uint64
	gotLo := false

	for {
		if !gotLo && pos >= lo {
			occLo = occ
			gotLo = true
		}

		if pos >= hi {
			occHi = occ
			break
		}

		if pos >= d.totalLen {
			occHi = occ
			break
		}

		sym := seq.Symbol(ibs.ReadBits(symbolBits))
		length := readLength(ibs, d.logBase)

		if !gotLo && pos+length > lo {
			occLo = occ
			occLo[sym] += lo - pos
			gotLo = true
		}

		if pos+length > hi {
			occHi = occ
			occHi[sym] += hi - pos
			occ[sym] += length
			pos += length
			break
		}

		occ[sym] += length
		pos += length
	}

	if !gotLo {
		occLo = occ
	}

	if swapped {
		return occHi, occLo
	}
	return occLo, occHi
}

// Runs decodes the whole run stream back into a []rank.Run, adjacent runs
// split across a superblock boundary at Build time are rejoined since
// Build never splits a run itself (only the byte-aligned region changes,
// not the logical run list). Used by convert to re-express an FMD
// dictionary as FMR (rope) or plain symbols.
func (d *Dict) Runs() ([]rank.Run, error) {
	var out []rank.Run

	for i, sb := range d.superblocks {
		bound := d.totalLen
		if i+1 < len(d.superblocks) {
			bound = d.superblocks[i+1].basePos
		}

		r := newReaderAt(d.data, sb.byteOffset)
		ibs, err := bitstream.NewDefaultInputBitStream(r, 1024)
		if err != nil {
			return nil, err
		}

		pos := sb.basePos
		for pos < bound {
			sym := seq.Symbol(ibs.ReadBits(symbolBits))
			length := readLength(ibs, d.logBase)

			if n := len(out); n > 0 && out[n-1].Sym == sym {
				out[n-1].Len += length
			} else {
				out = append(out, rank.Run{Sym: sym, Len: length})
			}

			pos += length
		}
	}

	return out, nil
}

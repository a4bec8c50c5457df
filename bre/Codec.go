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

// Package bre is the BRE ("block run-encoding") file codec: a streaming,
// O(1)-memory-beyond-one-record format for a (symbol, run_length) list,
// the wire format convert's FMR<->BRE converters read and write. Grounded
// on the teacher's bitstream package for bit-packed record I/O and
// internal/Magic.go for the magic-check idiom.
package bre

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/ropebwt/rb3go/bitstream"
	"github.com/ropebwt/rb3go/internal"
	"github.com/ropebwt/rb3go/seq"
)

const (
	headerLen = 24

	bPerSym = 3  // ceil(log2(seq.AlphabetSize)): fixed, this module's only alphabet
	bPerRun = 32 // run length field width per physical record

	maxRunChunk = uint64(1)<<bPerRun - 1

	// AType/MType are carried from the original format's generalized
	// header (it supports more than one alphabet/model combination); this
	// module only ever writes the fixed DNA alphabet and plain run-length
	// model, so both are always zero.
	ATypeDNA = 0
	MTypeRun = 0
)

var (
	ErrInconsistentFooter = errors.New("bre: footer totals do not match the decoded record stream")
	ErrTruncated          = errors.New("bre: truncated stream")
)

// Header is the fixed 24-byte BRE header plus optional trailing aux bytes.
type Header struct {
	AType        byte
	MType        byte
	AlphabetSize uint64
	Aux          []byte
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }

type nopReadCloser struct{ io.Reader }

func (nopReadCloser) Close() error { return nil }

// Writer streams (symbol, run_length) records out in BRE's bit-packed
// record format, splitting any run longer than maxRunChunk into several
// same-symbol physical records.
type Writer struct {
	w      io.Writer
	obs    *bitstream.DefaultOutputBitStream
	header Header

	nRec, nSym, nRun uint64
}

// NewWriter writes header and returns a Writer ready for WriteRun calls.
func NewWriter(w io.Writer, header Header) (*Writer, error) {
	if header.AlphabetSize == 0 {
		header.AlphabetSize = seq.AlphabetSize
	}

	buf := make([]byte, headerLen)
	copy(buf[0:4], internal.MagicBRE[:])
	buf[4] = bPerSym
	buf[5] = bPerRun
	buf[6] = header.AType
	buf[7] = header.MType
	binary.LittleEndian.PutUint64(buf[8:16], header.AlphabetSize)
	binary.LittleEndian.PutUint64(buf[16:24], uint64(len(header.Aux)))

	if _, err := w.Write(buf); err != nil {
		return nil, err
	}
	if len(header.Aux) > 0 {
		if _, err := w.Write(header.Aux); err != nil {
			return nil, err
		}
	}

	obs, err := bitstream.NewDefaultOutputBitStream(nopWriteCloser{w}, 4096)
	if err != nil {
		return nil, err
	}

	return &Writer{w: w, obs: obs, header: header}, nil
}

// WriteRun emits one logical run, split across ceil(length/maxRunChunk)
// physical records if it exceeds the per-record field width.
func (bw *Writer) WriteRun(sym seq.Symbol, length uint64) error {
	if length == 0 {
		return nil
	}

	bw.nRun++

	for length > 0 {
		chunk := length
		if chunk > maxRunChunk {
			chunk = maxRunChunk
		}

		bw.obs.WriteBits(uint64(sym), bPerSym)
		bw.obs.WriteBits(chunk, bPerRun)
		bw.nRec++
		bw.nSym += chunk
		length -= chunk
	}

	return nil
}

// Close writes the zero/zero terminator record and the three u64 footer
// totals (all through the same bit stream as the body, so no byte-
// alignment hazard arises from switching to raw writes mid-stream), then
// flushes the underlying stream.
func (bw *Writer) Close() error {
	bw.obs.WriteBits(0, bPerSym)
	bw.obs.WriteBits(0, bPerRun)
	bw.obs.WriteBits(bw.nRec, 64)
	bw.obs.WriteBits(bw.nSym, 64)
	bw.obs.WriteBits(bw.nRun, 64)
	return bw.obs.Close()
}

type record struct {
	sym    seq.Symbol
	length uint64
}

// Reader streams coalesced (symbol, run_length) records back out of a BRE
// stream, re-joining the physical records a long run was split into.
type Reader struct {
	r   io.Reader
	ibs *bitstream.DefaultInputBitStream

	Header Header

	pending *record

	recCount, symCount, runCount uint64
}

// NewReader reads and validates the header, returning a Reader positioned
// at the start of the record body.
func NewReader(r io.Reader) (*Reader, error) {
	buf := make([]byte, headerLen)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, ErrTruncated
	}

	if err := internal.CheckMagic(buf, internal.MagicBRE); err != nil {
		return nil, err
	}
	if buf[4] != bPerSym || buf[5] != bPerRun {
		return nil, fmt.Errorf("bre: unsupported field widths b_per_sym=%d b_per_run=%d", buf[4], buf[5])
	}

	h := Header{
		AType:        buf[6],
		MType:        buf[7],
		AlphabetSize: binary.LittleEndian.Uint64(buf[8:16]),
	}

	lAux := binary.LittleEndian.Uint64(buf[16:24])
	if lAux > 0 {
		h.Aux = make([]byte, lAux)
		if _, err := io.ReadFull(r, h.Aux); err != nil {
			return nil, ErrTruncated
		}
	}

	ibs, err := bitstream.NewDefaultInputBitStream(nopReadCloser{r}, 4096)
	if err != nil {
		return nil, err
	}

	return &Reader{r: r, ibs: ibs, Header: h}, nil
}

func (br *Reader) readRecord() record {
	sym := seq.Symbol(br.ibs.ReadBits(bPerSym))
	length := br.ibs.ReadBits(bPerRun)
	return record{sym: sym, length: length}
}

// ReadRun returns the next coalesced run. It returns io.EOF once the
// terminator record is consumed and the footer totals have been checked
// against what was actually decoded (ErrInconsistentFooter otherwise). A
// stream that runs out of bytes mid-record surfaces as ErrTruncated rather
// than the underlying bit stream's panic.
func (br *Reader) ReadRun() (sym seq.Symbol, length uint64, err error) {
	defer func() {
		if r := recover(); r != nil {
			sym, length, err = 0, 0, ErrTruncated
		}
	}()

	var rec record
	if br.pending != nil {
		rec = *br.pending
		br.pending = nil
	} else {
		rec = br.readRecord()
	}

	if rec.length == 0 {
		return 0, 0, br.readFooter()
	}

	br.recCount++
	br.symCount += rec.length
	sym := rec.sym
	total := rec.length

	for rec.length == maxRunChunk {
		next := br.readRecord()
		if next.length == 0 || next.sym != sym {
			br.pending = &next
			break
		}
		br.recCount++
		br.symCount += next.length
		total += next.length
		rec = next
	}

	br.runCount++
	return sym, total, nil
}

func (br *Reader) readFooter() error {
	nRec := br.ibs.ReadBits(64)
	nSym := br.ibs.ReadBits(64)
	nRun := br.ibs.ReadBits(64)

	if err := br.ibs.Close(); err != nil {
		return err
	}

	if nRec != br.recCount || nSym != br.symCount || nRun != br.runCount {
		return ErrInconsistentFooter
	}

	return io.EOF
}

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
	"bufio"
	"encoding/binary"
	"fmt"
	"os"

	"github.com/edsrzf/mmap-go"

	"github.com/ropebwt/rb3go/internal"
	"github.com/ropebwt/rb3go/seq"
)

// superblockWidth is the on-disk size, in bytes, of one superblock table
// entry: byteOffset (uint64) + basePos (uint64) + baseAcc ([6]uint64).
const superblockWidth = 8 + 8 + seq.AlphabetSize*8

// WriteFile persists d in the FMD file format: a magic-tagged header
// carrying the logBase/superblock parameters and the acc table, the sparse
// superblock index, then the raw Rice/Golomb-coded run bytes.
func WriteFile(path string, d *Dict) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)

	if _, err := w.Write(internal.MagicFMD[:]); err != nil {
		return err
	}

	var hdr [8]byte
	hdr[0] = byte(d.logBase)
	binary.LittleEndian.PutUint32(hdr[4:8], uint32(d.superLen))
	if _, err := w.Write(hdr[:]); err != nil {
		return err
	}

	var u64 [8]byte
	binary.LittleEndian.PutUint64(u64[:], d.totalLen)
	if _, err := w.Write(u64[:]); err != nil {
		return err
	}

	for _, a := range d.acc {
		binary.LittleEndian.PutUint64(u64[:], a)
		if _, err := w.Write(u64[:]); err != nil {
			return err
		}
	}

	var u32 [4]byte
	binary.LittleEndian.PutUint32(u32[:], uint32(len(d.superblocks)))
	if _, err := w.Write(u32[:]); err != nil {
		return err
	}

	for _, sb := range d.superblocks {
		binary.LittleEndian.PutUint64(u64[:], uint64(sb.byteOffset))
		if _, err := w.Write(u64[:]); err != nil {
			return err
		}
		binary.LittleEndian.PutUint64(u64[:], sb.basePos)
		if _, err := w.Write(u64[:]); err != nil {
			return err
		}
		for _, a := range sb.baseAcc {
			binary.LittleEndian.PutUint64(u64[:], a)
			if _, err := w.Write(u64[:]); err != nil {
				return err
			}
		}
	}

	if _, err := w.Write(d.data); err != nil {
		return err
	}

	return w.Flush()
}

// Open mmaps path read-only and returns a Dict backed directly by the
// mapped run bytes: no copy of the (potentially multi-gigabyte) run stream
// is made, matching the construction pipeline's requirement that a built
// index be queryable without fully materializing it in the Go heap.
func Open(path string) (*Dict, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		return nil, err
	}

	d, err := parseHeader([]byte(m))
	if err != nil {
		m.Unmap()
		return nil, err
	}
	d.closer = &mmapCloser{m: m}

	return d, nil
}

type mmapCloser struct {
	m mmap.MMap
}

func (c *mmapCloser) Close() error { return c.m.Unmap() }

func parseHeader(buf []byte) (*Dict, error) {
	if err := internal.CheckMagic(buf, internal.MagicFMD); err != nil {
		return nil, err
	}
	off := 4

	if len(buf) < off+8 {
		return nil, fmt.Errorf("truncated FMD header")
	}
	logBase := uint(buf[off])
	superLen := int(binary.LittleEndian.Uint32(buf[off+4 : off+8]))
	off += 8

	d := &Dict{logBase: logBase, superLen: superLen}

	if len(buf) < off+8 {
		return nil, fmt.Errorf("truncated FMD header: totalLen")
	}
	d.totalLen = binary.LittleEndian.Uint64(buf[off : off+8])
	off += 8

	for c := 0; c <= seq.AlphabetSize; c++ {
		if len(buf) < off+8 {
			return nil, fmt.Errorf("truncated FMD header: acc")
		}
		d.acc[c] = binary.LittleEndian.Uint64(buf[off : off+8])
		off += 8
	}

	if len(buf) < off+4 {
		return nil, fmt.Errorf("truncated FMD header: superblock count")
	}
	n := int(binary.LittleEndian.Uint32(buf[off : off+4]))
	off += 4

	d.superblocks = make([]superblock, n)
	for i := 0; i < n; i++ {
		if len(buf) < off+superblockWidth {
			return nil, fmt.Errorf("truncated FMD header: superblock %d", i)
		}
		sb := superblock{}
		sb.byteOffset = int(binary.LittleEndian.Uint64(buf[off : off+8]))
		off += 8
		sb.basePos = binary.LittleEndian.Uint64(buf[off : off+8])
		off += 8
		for c := 0; c < seq.AlphabetSize; c++ {
			sb.baseAcc[c] = binary.LittleEndian.Uint64(buf[off : off+8])
			off += 8
		}
		d.superblocks[i] = sb
	}

	d.data = buf[off:]

	return d, nil
}

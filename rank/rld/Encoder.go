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

	"github.com/ropebwt/rb3go/bitstream"
	"github.com/ropebwt/rb3go/rank"
	"github.com/ropebwt/rb3go/seq"
)

// DefaultSuperblockLen is the number of runs each superblock index entry
// covers; spec.md §4.1 leaves the exact sparsity as a tuning knob, 512
// balances index size against forward-decode cost for typical run-length
// distributions in real pan-genome BWTs.
const DefaultSuperblockLen = 512

const symbolBits = 3 // ceil(log2(seq.AlphabetSize))

// byteSink adapts a bytes.Buffer to io.WriteCloser so bitstream.DefaultOutputBitStream
// can target an in-memory buffer for each superblock's byte-aligned region.
type byteSink struct {
	buf bytes.Buffer
}

func (b *byteSink) Write(p []byte) (int, error) { return b.buf.Write(p) }
func (b *byteSink) Close() error                 { return nil }

// Build encodes runs into a Dict. logBase is the Rice parameter (the
// teacher's "cbits"); superblockLen is the number of runs indexed per
// sparse superblock entry.
func Build(runs []rank.Run, logBase uint, superblockLen int) (*Dict, error) {
	if superblockLen <= 0 {
		superblockLen = DefaultSuperblockLen
	}

	d := &Dict{logBase: logBase, superLen: superblockLen}

	var data []byte
	var basePos uint64
	var baseAcc [seq.AlphabetSize]uint64

	for start := 0; start < len(runs); start += superblockLen {
		end := start + superblockLen
		if end > len(runs) {
			end = len(runs)
		}

		sink := &byteSink{}
		obs, err := bitstream.NewDefaultOutputBitStream(sink, 1024)
		if err != nil {
			return nil, err
		}

		d.superblocks = append(d.superblocks, superblock{
			byteOffset: len(data),
			basePos:    basePos,
			baseAcc:    baseAcc,
		})

		for _, r := range runs[start:end] {
			obs.WriteBits(uint64(r.Sym), symbolBits)
			writeLength(obs, r.Len, logBase)
			baseAcc[r.Sym] += r.Len
			basePos += r.Len
		}

		if err := obs.Close(); err != nil {
			return nil, err
		}

		data = append(data, sink.buf.Bytes()...)
	}

	d.data = data
	d.totalLen = basePos

	d.acc[0] = 0
	for c := 0; c < seq.AlphabetSize; c++ {
		d.acc[c+1] = d.acc[c] + baseAcc[c]
	}

	return d, nil
}

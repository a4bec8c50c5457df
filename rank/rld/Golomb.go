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

// Package rld is the immutable delta-coded rank dictionary (the "FMD"
// variant): BWT runs are Rice/Golomb coded into a bit stream indexed by a
// sparse superblock table, and the whole thing is mmap-loadable once built.
package rld

import (
	"github.com/ropebwt/rb3go"
	"github.com/ropebwt/rb3go/rank"
)

// writeLength Rice/Golomb-codes a run length (>= 1) as magnitude = length-1:
// a unary-terminated quotient (magnitude>>logBase zero bits then a 1 bit)
// followed by logBase binary remainder bits. Generalizes the teacher's
// entropy.RiceGolombEncoder.EncodeByte bit layout (unary quotient + binary
// remainder) from a byte-width magnitude to an unbounded uint64 one, since
// FMD run lengths routinely exceed 255 (a construction batch can be 1e8
// bases long).
func writeLength(bs rb3go.OutputBitStream, length uint64, logBase uint) {
	magnitude := length - 1
	q := magnitude >> logBase

	for i := uint64(0); i < q; i++ {
		bs.WriteBit(0)
	}
	bs.WriteBit(1)

	if logBase > 0 {
		bs.WriteBits(magnitude&((uint64(1)<<logBase)-1), logBase)
	}
}

// readLength decodes a value written by writeLength.
func readLength(bs rb3go.InputBitStream, logBase uint) uint64 {
	var q uint64
	for bs.ReadBit() == 0 {
		q++
	}

	var rem uint64
	if logBase > 0 {
		rem = bs.ReadBits(logBase)
	}

	return (q<<logBase | rem) + 1
}

// bitsForLength estimates the encoded width (in bits) of length under
// logBase; PickLogBase sums it over every run to choose one logBase for
// the whole dictionary.
func bitsForLength(length uint64, logBase uint) uint64 {
	magnitude := length - 1
	return (magnitude >> logBase) + 1 + uint64(logBase)
}

// PickLogBase scans a candidate set of logBase values (0..31) and returns
// the one minimizing the total encoded size of runs, the construction
// pipeline's default whenever the caller doesn't pin a specific Rice
// parameter.
func PickLogBase(runs []rank.Run) uint {
	best := uint(0)
	var bestBits uint64 = ^uint64(0)

	for logBase := uint(0); logBase < 32; logBase++ {
		var total uint64
		for _, r := range runs {
			total += bitsForLength(r.Len, logBase)
		}
		if total < bestBits {
			bestBits = total
			best = logBase
		}
	}

	return best
}

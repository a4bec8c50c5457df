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

package smem

import (
	"github.com/ropebwt/rb3go/fmindex"
	"github.com/ropebwt/rb3go/seq"
)

// Algo selects which MEM-finding algorithm Find runs.
type Algo int

const (
	AlgoClassic Algo = iota
	AlgoGreedy
)

// Find dispatches to Classic or Greedy by algo.
func Find(idx *fmindex.Index, query seq.Seq, algo Algo, minOcc uint64, minLen uint32) []Hit {
	if algo == AlgoGreedy {
		return Greedy(idx, query, minOcc, minLen)
	}
	return Classic(idx, query, minOcc, minLen)
}

// Greedy finds MEM-like hits faster than Classic at the cost of sometimes
// missing a shorter, non-maximal match: a minimum-length backward probe
// establishes a seed via exact backward search, which is then greedily
// extended forward as far as the interval stays ≥ minOcc before emitting
// and resuming from the end of the emitted hit. The reference ropebwt3's
// own greedy finder (rb3_fmd_gmem, invoked by its match subcommand's -g
// flag) isn't present in the retained reference sources, so this follows
// spec.md §4.9's "minimum-length backward probe, emit, resume" description
// directly using the same Extend primitive Classic is built from.
func Greedy(idx *fmindex.Index, query seq.Seq, minOcc uint64, minLen uint32) []Hit {
	var mem []Hit
	n := len(query)

	for x := 0; x+int(minLen) <= n; {
		seed := query[x : x+int(minLen)]
		bi := idx.BackwardSearch(seed)
		if bi.Size < minOcc {
			x++
			continue
		}

		end := x + int(minLen)
		cur := bi
		for end < n {
			c := query[end].Complement()
			next := idx.Extend(cur, c, false)
			if next.Size < minOcc {
				break
			}
			cur = next
			end++
		}

		mem = append(mem, Hit{Start: uint32(x), End: uint32(end), Interval: cur})
		x = end
	}

	return mem
}

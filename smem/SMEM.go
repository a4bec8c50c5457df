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

// Package smem finds super-maximal exact matches (SMEMs) between a query
// and an indexed collection: substrings of the query that match somewhere
// in the index and cannot be extended in either direction without either
// leaving the index or dropping below a minimum occurrence count, and that
// are not contained in any other such match starting at an earlier query
// position.
package smem

import (
	"github.com/ropebwt/rb3go/fmindex"
	"github.com/ropebwt/rb3go/seq"
)

// Hit is one SMEM: the query's [Start, End) half-open range (0-based) and
// the bi-interval of its occurrences in the index.
type Hit struct {
	Start, End uint32
	Interval   fmindex.BiInterval
}

// seedInterval pairs a bi-interval reached during extension with the query
// end position it was tagged with when first recorded — the teacher's
// packed rb3_sai_t.info field, kept as a separate field since Go has no
// need to bit-pack it into the interval itself.
type seedInterval struct {
	bi  fmindex.BiInterval
	end uint32
}

// Classic finds every SMEM of query via repeated forward-then-backward
// extension starting from every position the previous round's matches
// didn't already cover, ground-truthed against
// original_source/fm-index.c's rb3_fmd_smem/rb3_fmd_smem1.
func Classic(idx *fmindex.Index, query seq.Seq, minOcc uint64, minLen uint32) []Hit {
	var mem []Hit
	x := 0
	for x < len(query) {
		var next int
		next, mem = smem1(idx, query, minOcc, minLen, x, mem)
		x = next
	}
	return mem
}

// smem1 is one call of rb3_fmd_smem1: starting from query position x,
// extends forward as far as possible while tracking every distinct
// bi-interval size encountered along the way, then re-extends each of
// those backward from x, emitting a Hit whenever an interval can no longer
// be extended backward (by a real symbol or by reaching the query's own
// start) and is long enough and not contained in the previous Hit this
// call already emitted. Returns the next query position the forward phase
// reached (where the next call should resume) and mem with any new Hits
// appended.
func smem1(idx *fmindex.Index, query seq.Seq, minOcc uint64, minLen uint32, x int, mem []Hit) (int, []Hit) {
	n := len(query)

	ik := idx.InitInterval(query[x])
	if ik.Size == 0 {
		return x + 1, mem
	}

	end := x + 1
	var curr []seedInterval

	i := x + 1
	broke := false
	for ; i < n; i++ {
		c := query[i].Complement()
		ok := idx.Extend(ik, c, false)
		if ok.Size != ik.Size {
			curr = append(curr, seedInterval{bi: ik, end: uint32(end)})
			if ok.Size < minOcc {
				broke = true
				break
			}
		}
		ik = ok
		end = i + 1
	}
	if !broke && i == n {
		curr = append(curr, seedInterval{bi: ik, end: uint32(end)})
	}

	// Reverse: curr was built in increasing end order, so curr[0] after
	// reversal holds the furthest forward reach — the return value callers
	// resume scanning from.
	reverseSeeds(curr)
	ret := int(curr[0].end)

	prev := curr
	curr = nil

	oldLen := len(mem)

	for i := x - 1; i >= -1; i-- {
		var c seq.Symbol
		sentinel := i < 0
		if !sentinel {
			c = query[i]
		}

		curr = curr[:0]
		for _, p := range prev {
			ok := idx.Extend(p.bi, c, true)
			if sentinel || ok.Size < minOcc {
				if len(curr) == 0 && int(p.end)-i-1 >= int(minLen) &&
					(len(mem) == oldLen || uint32(i+1) < mem[len(mem)-1].Start) {
					mem = append(mem, Hit{Start: uint32(i + 1), End: p.end, Interval: p.bi})
				}
			} else if len(curr) == 0 || ok.Size != curr[len(curr)-1].bi.Size {
				curr = append(curr, seedInterval{bi: ok, end: p.end})
			}
		}

		if len(curr) == 0 {
			break
		}
		prev, curr = curr, prev
	}

	reverseHits(mem[oldLen:])
	return ret, mem
}

func reverseSeeds(a []seedInterval) {
	for i, j := 0, len(a)-1; i < j; i, j = i+1, j-1 {
		a[i], a[j] = a[j], a[i]
	}
}

func reverseHits(a []Hit) {
	for i, j := 0, len(a)-1; i < j; i, j = i+1, j-1 {
		a[i], a[j] = a[j], a[i]
	}
}

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

package sais

import (
	"sort"

	"github.com/ropebwt/rb3go/seq"
)

// Build6 builds the suffix array of a 6-symbol text (text batches over the
// {$,A,C,G,T,N} alphabet, see package seq). text must already be
// $-terminated; the returned array has len(text) entries and sa[i] is the
// starting position of the i-th lexicographically smallest suffix.
func Build6(text seq.Seq) []int32 {
	n := len(text)
	if n == 0 {
		return nil
	}

	data := make([]int, n)
	for i, s := range text {
		data[i] = int(s)
	}

	sa := make([]int, n)
	computeSuffixArray(data, sa, 0, n, seq.AlphabetSize, false)

	out := make([]int32, n)
	for i, v := range sa {
		out[i] = int32(v)
	}
	return out
}

// Build16 builds the suffix array of a 16-bit symbol string: the query's
// lightweight BWT alphabet (qdawg), where each distinct query substring
// character is remapped to a dense code before indexing so the alphabet
// size k stays proportional to the number of distinct symbols actually
// used rather than the full 65536-entry range.
func Build16(text []uint16) []int32 {
	n := len(text)
	if n == 0 {
		return nil
	}

	// Dense-remap the alphabet: k = number of distinct symbols + 1 keeps
	// computeSuffixArray's O(k) bucket scans proportional to actual use
	// instead of always paying for 65536 buckets.
	seen := make(map[uint16]struct{}, 64)
	for _, c := range text {
		seen[c] = struct{}{}
	}

	codes := make([]uint16, 0, len(seen))
	for c := range seen {
		codes = append(codes, c)
	}
	sort.Slice(codes, func(i, j int) bool { return codes[i] < codes[j] })

	remap := make(map[uint16]int, len(codes))
	for i, c := range codes {
		remap[c] = i + 1 // reserve 0 for nothing; every input code, 0 included, maps to 1 or above
	}

	data := make([]int, n)
	for i, c := range text {
		data[i] = remap[c]
	}

	k := len(codes) + 1
	sa := make([]int, n)
	computeSuffixArray(data, sa, 0, n, k, false)

	out := make([]int32, n)
	for i, v := range sa {
		out[i] = int32(v)
	}
	return out
}

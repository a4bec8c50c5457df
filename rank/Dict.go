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

// Package rank defines the shared rank-dictionary contract implemented by
// the two interchangeable BWT backends (rank/rld, the immutable delta-coded
// FMD, and rank/rope, the mutable FMR rope-of-trees) plus a sealed-sum
// Facade that lets fmindex talk to either one through a single concrete
// type.
package rank

import "github.com/ropebwt/rb3go/seq"

// Dict is the contract both rank-dictionary variants satisfy.
type Dict interface {
	// Rank1 returns the symbol occupying BWT position k (or seq.Sentinel's
	// zero value if k is out of range) and occ[c], the number of
	// occurrences of symbol c in positions [0, k).
	Rank1(k uint64) (sym seq.Symbol, occ [seq.AlphabetSize]uint64)

	// Rank2 returns occK and occL, the rank vectors for both k and l. The
	// rld backend answers both in a single decoding pass; the rope backend
	// makes two Rank1 calls.
	Rank2(k, l uint64) (occK, occL [seq.AlphabetSize]uint64)

	// Acc returns the prefix-sum table: Acc()[c+1]-Acc()[c] is the total
	// count of symbol c across the whole indexed text, Acc()[6] is the
	// text length.
	Acc() [seq.AlphabetSize + 1]uint64

	// Len returns the total number of BWT positions (== Acc()[6]).
	Len() uint64
}

// Run is one (symbol, run_length) pair — the unit both rld and rope store
// the BWT as. Shared so construct/convert can hand runs to either backend.
type Run struct {
	Sym seq.Symbol
	Len uint64
}

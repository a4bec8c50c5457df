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

package rank

import "github.com/ropebwt/rb3go/seq"

// Kind selects which concrete rank dictionary a Facade wraps.
type Kind int

const (
	KindDelta Kind = iota // rank/rld: immutable delta-coded FMD
	KindRope               // rank/rope: mutable six-tree FMR
)

// Facade is the sealed sum the rest of the module talks to: a Kind tag
// plus the wrapped Dict. The backend is chosen once, at wrap time, by the
// two constructors below (grounded on the teacher's transform/Factory.go
// dispatch-by-constant pattern: there New(ctx, functionType) switching on
// BWT_TYPE / LZ_TYPE / ...); each method then checks the tag and calls the
// chosen backend through the Dict interface.
type Facade struct {
	kind  Kind
	delta Dict // set when kind == KindDelta
	rope  Dict // set when kind == KindRope
}

// NewDeltaFacade wraps an immutable delta-coded dictionary.
func NewDeltaFacade(d Dict) *Facade {
	return &Facade{kind: KindDelta, delta: d}
}

// NewRopeFacade wraps a mutable rope dictionary.
func NewRopeFacade(d Dict) *Facade {
	return &Facade{kind: KindRope, rope: d}
}

// Kind reports which backend this facade wraps.
func (f *Facade) Kind() Kind {
	return f.kind
}

func (f *Facade) active() Dict {
	if f.kind == KindDelta {
		return f.delta
	}
	return f.rope
}

// Rank1 dispatches to the active backend.
func (f *Facade) Rank1(k uint64) (seq.Symbol, [seq.AlphabetSize]uint64) {
	return f.active().Rank1(k)
}

// Rank2 dispatches to the active backend.
func (f *Facade) Rank2(k, l uint64) ([seq.AlphabetSize]uint64, [seq.AlphabetSize]uint64) {
	return f.active().Rank2(k, l)
}

// Acc dispatches to the active backend.
func (f *Facade) Acc() [seq.AlphabetSize + 1]uint64 {
	return f.active().Acc()
}

// Len dispatches to the active backend.
func (f *Facade) Len() uint64 {
	return f.active().Len()
}

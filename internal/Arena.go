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

package internal

// Arena is a per-goroutine bump allocator for fixed-size scratch values,
// used by rank/rope (tree nodes, referenced by index rather than pointer
// per the rope's arena-plus-index design), its only user. Reset empties
// it without releasing the backing storage.
type Arena[T any] struct {
	items []T
	zero  T
}

// NewArena creates an Arena with the given initial capacity.
func NewArena[T any](capacity int) *Arena[T] {
	return &Arena[T]{items: make([]T, 0, capacity)}
}

// Alloc appends a new zero-valued T to the arena and returns its index.
func (a *Arena[T]) Alloc() int {
	a.items = append(a.items, a.zero)
	return len(a.items) - 1
}

// Get returns a pointer to the item at idx so callers can mutate in place.
func (a *Arena[T]) Get(idx int) *T {
	return &a.items[idx]
}

// Len returns the number of items currently allocated.
func (a *Arena[T]) Len() int {
	return len(a.items)
}

// Reset clears the arena for reuse without releasing the backing array.
func (a *Arena[T]) Reset() {
	a.items = a.items[:0]
}

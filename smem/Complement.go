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

package smem

import "sort"

// Gap is a maximal stretch of query positions not covered by any Hit.
type Gap struct {
	Start, End uint32
}

// Complement returns every maximal gap of length >= gapMin left uncovered
// by hits over [0, qlen), per spec.md §4.9's "caller receives the
// complement" option.
func Complement(hits []Hit, qlen uint32, gapMin uint32) []Gap {
	sorted := make([]Hit, len(hits))
	copy(sorted, hits)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Start < sorted[j].Start })

	var gaps []Gap
	cursor := uint32(0)

	for _, h := range sorted {
		if h.Start > cursor {
			if h.Start-cursor >= gapMin {
				gaps = append(gaps, Gap{Start: cursor, End: h.Start})
			}
		}
		if h.End > cursor {
			cursor = h.End
		}
	}

	if qlen > cursor && qlen-cursor >= gapMin {
		gaps = append(gaps, Gap{Start: cursor, End: qlen})
	}

	return gaps
}

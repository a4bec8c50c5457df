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

// Package hapdiv computes haplotype-diversity statistics over sliding
// k-mer windows of a query, by running the aligner's haplotype-diversity
// mode window by window and summarizing its edit-distance buckets.
package hapdiv

// Window is one k-mer slice of a query: the half-open range [Start, End).
type Window struct {
	Start, End uint32
}

// Windows computes the sliding k-mer windows over a query of length qlen,
// window length k and step w: ⌈(qlen-k)/w⌉+1 windows starting at
// 0, w, 2w, ..., each of length k (the last window's End is clamped to
// qlen if qlen isn't an exact multiple of w past the first window). Per
// spec.md's literal scenario: qlen=200, k=101, w=50 yields exactly 3
// windows.
func Windows(qlen, k, w int) []Window {
	if k <= 0 || w <= 0 || qlen < k {
		return nil
	}

	n := (qlen-k+w-1)/w + 1
	out := make([]Window, 0, n)
	for i := 0; i < n; i++ {
		start := i * w
		end := start + k
		if end > qlen {
			end = qlen
		}
		out = append(out, Window{Start: uint32(start), End: uint32(end)})
	}
	return out
}

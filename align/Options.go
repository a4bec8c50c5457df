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

// Mode selects the aligner's termination and reporting rule.
type Mode int

const (
	// ModeLocal tracks the best-scoring cell across every row and
	// backtracks from it once the DAWG traversal completes.
	ModeLocal Mode = iota
	// ModeE2E only considers H-originated cells, in any row, whose QLen
	// equals the largest QLen reached by any cell, keeping those at or
	// above MinSc and not dropped by E2EDrop.
	ModeE2E
	// ModeHapDiv is ModeE2E's termination rule but reports edit-distance
	// bucket counts instead of CIGARs.
	ModeHapDiv
)

// Options configures one alignment run. Field names and defaults mirror
// rb3_swopt_t (original_source/align.h) and its rb3_swopt_init/
// rb3_mopt_init defaults, per DESIGN.md's Open Question 2 decision.
type Options struct {
	Mode Mode

	NBest  int
	MinSc  int32
	EndLen uint32

	Match, Mismatch int32
	GapOpen, GapExt int32

	// MinMemLen/MinOcc gate an optional SMEM pre-filter: when MinMemLen >
	// EndLen, the aligner asks the SMEM engine whether the query has any
	// sufficiently long exact match before running the DP at all.
	MinMemLen uint32
	MinOcc    uint64

	// E2EDrop discards end-to-end hits scored more than this many points
	// below the best; 0 (the default) disables the cap.
	E2EDrop int32
}

// DefaultOptions returns the defaults read from rb3_swopt_init/
// rb3_mopt_init in original_source/bwa-sw.c and search.c.
func DefaultOptions() Options {
	return Options{
		Mode:      ModeLocal,
		NBest:     25,
		MinSc:     30,
		EndLen:    1,
		Match:     1,
		Mismatch:  3,
		GapOpen:   5,
		GapExt:    2,
		MinMemLen: 19,
		MinOcc:    1,
		E2EDrop:   0,
	}
}

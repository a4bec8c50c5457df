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

// Package construct builds the mutable FMR rope by streaming batches of
// FASTA input through a two-stage pipeline (stage S: suffix-array the
// batch into a partial BWT; stage M: merge the partial BWT into the main
// rope), or, as an alternative path, by inserting one string at a time
// directly into the rope (OnlineInsert, ropebwt2's original algorithm).
// Grounded on the teacher's app/BlockCompressor.go worker-pool shape,
// generalized from "N independent compress jobs" to "stage S hands stage
// M one batch at a time, never more than one batch ahead".
package construct

import "github.com/ropebwt/rb3go/rank/rope"

// Config is the typed replacement for the teacher's map[string]any
// transform.New context argument: every tunable the pipeline and its
// rope/rld backends need, collected in one place instead of threaded
// through as separate parameters.
type Config struct {
	// Threads bounds the number of concurrent merge workers (stage M's
	// parallel-for over the partial batch's starting ranks). <= 0 means 1.
	Threads int

	// BlockLen and MaxNodes size a rope's leaf/internal node capacity
	// (rope.DefaultBlockLen/DefaultMaxNodes when <= 0).
	BlockLen int
	MaxNodes int

	// LogBase is a Rice/Golomb parameter carried for callers that convert
	// the rope to FMD themselves (0: pick one with rld.PickLogBase). The
	// pipeline does not read it; its merge stage picks its own logBase
	// with rld.PickLogBase.
	LogBase uint

	// SampleRate is the SSA suffix-array-sample stride (spec §4.9's "ss");
	// carried here so a caller building an SSA alongside the index doesn't
	// need a second config type.
	SampleRate uint32

	// ReverseComplement records whether the input is strand-symmetric, each
	// record followed by its reverse complement (spec.md §3). The pipeline
	// does not read it: Run takes already-parsed batches, and the reverse
	// strands are added, or not, by seq.FromFASTA's rc argument.
	ReverseComplement bool
}

func (c Config) threads() int {
	if c.Threads <= 0 {
		return 1
	}
	return c.Threads
}

func (c Config) newRope() *rope.Rope {
	return rope.New(c.BlockLen, c.MaxNodes)
}

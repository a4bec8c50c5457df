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

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// ParallelFor splits [0, n) into 'workers' contiguous chunks and runs fn on
// each chunk concurrently, one goroutine per chunk. Worker index w always
// gets the same chunk across repeated calls with the same (n, workers) pair,
// so callers can keep a per-worker Arena alive between invocations (the
// thread-local scratch discipline described for the construction pipeline).
//
// This generalizes the teacher's per-job chunk split (transform/BWT.go,
// ComputeJobsPerTask in Global.go) from "divide one block among N compression
// jobs" to "divide one batch among N query/merge workers".
func ParallelFor(ctx context.Context, n, workers int, fn func(lo, hi, worker int) error) error {
	if n <= 0 {
		return nil
	}

	if workers <= 0 {
		workers = 1
	}

	if workers > n {
		workers = n
	}

	sizes := make([]uint, workers)
	sizes, err := ComputeJobsPerTask(sizes, uint(n), uint(workers))

	if err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	lo := 0

	for w := 0; w < workers; w++ {
		w := w
		hi := lo + int(sizes[w])

		if hi > lo {
			loC, hiC := lo, hi

			g.Go(func() error {
				select {
				case <-gctx.Done():
					return gctx.Err()
				default:
				}

				return fn(loC, hiC, w)
			})
		}

		lo = hi
	}

	return g.Wait()
}

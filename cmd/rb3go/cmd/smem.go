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

package cmd

import (
	"bufio"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ropebwt/rb3go/seq"
	"github.com/ropebwt/rb3go/smem"
)

// newSMEMCmd reports every super-maximal exact match of each query against
// the index, one line per hit: name, query start, query end, interval
// size.
func newSMEMCmd() *cobra.Command {
	var idxPath string
	var minOcc uint64
	var minLen uint32
	var old bool

	c := &cobra.Command{
		Use:   "smem <queries.fa>",
		Short: "Find super-maximal exact matches between queries and the index",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if idxPath == "" {
				return fmt.Errorf("smem: --idx is required")
			}
			idx, closeIdx, err := openIndex(idxPath)
			if err != nil {
				return fmt.Errorf("smem: opening index: %w", err)
			}
			defer closeIdx()

			if err := idx.RequireSymmetric(); err != nil {
				return fmt.Errorf("smem: %w", err)
			}

			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("smem: opening %s: %w", args[0], err)
			}
			defer f.Close()

			batch, err := seq.FromFASTA(f, false)
			if err != nil {
				return fmt.Errorf("smem: parsing %s: %w", args[0], err)
			}

			w := bufio.NewWriter(os.Stdout)
			defer w.Flush()

			for _, r := range batch.Records {
				var hits []smem.Hit
				if old {
					hits = smem.Greedy(idx, r.Bases, minOcc, minLen)
				} else {
					hits = smem.Classic(idx, r.Bases, minOcc, minLen)
				}
				for _, h := range hits {
					if _, err := fmt.Fprintf(w, "%s\t%d\t%d\t%d\n", r.Name, h.Start, h.End, h.Interval.Size); err != nil {
						return err
					}
				}
			}
			return nil
		},
	}

	c.Flags().StringVar(&idxPath, "idx", "", "path to the .fmd index")
	c.Flags().Uint64Var(&minOcc, "min-occ", 1, "minimum interval size")
	c.Flags().Uint32Var(&minLen, "min-len", 0, "minimum SMEM length")
	c.Flags().BoolVar(&old, "old-mem", false, "use the original (non-SMEM-filtered) MEM algorithm")

	return c
}

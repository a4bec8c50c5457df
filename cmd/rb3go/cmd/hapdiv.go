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

	"github.com/ropebwt/rb3go/align"
	"github.com/ropebwt/rb3go/hapdiv"
	"github.com/ropebwt/rb3go/seq"
)

// newHapDivCmd reports haplotype-diversity statistics for every sliding
// k-mer window of each query: how many alignments qualified, the worst
// edit distance among them, and the edit-distance-bucketed allele counts.
func newHapDivCmd() *cobra.Command {
	var idxPath string
	var k, step int
	var showDiversity bool
	opts := align.DefaultOptions()
	opts.Mode = align.ModeHapDiv

	c := &cobra.Command{
		Use:   "hapdiv <queries.fa>",
		Short: "Report haplotype diversity over sliding k-mer windows",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if idxPath == "" {
				return fmt.Errorf("hapdiv: --idx is required")
			}
			idx, closeIdx, err := openIndex(idxPath)
			if err != nil {
				return fmt.Errorf("hapdiv: opening index: %w", err)
			}
			defer closeIdx()

			if err := idx.RequireSymmetric(); err != nil {
				return fmt.Errorf("hapdiv: %w", err)
			}

			a := align.New(idx, opts)

			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("hapdiv: opening %s: %w", args[0], err)
			}
			defer f.Close()

			batch, err := seq.FromFASTA(f, false)
			if err != nil {
				return fmt.Errorf("hapdiv: parsing %s: %w", args[0], err)
			}

			w := bufio.NewWriter(os.Stdout)
			defer w.Flush()

			for _, r := range batch.Records {
				for _, win := range hapdiv.Windows(r.Length, k, step) {
					s := hapdiv.Summarize(a, r.Bases, win)
					if _, err := fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%d\t%d\t%d\t%d\t%d\t%d",
						r.Name, s.Start, s.End, s.NAl, s.MaxED,
						s.Counts[0], s.Counts[1], s.Counts[2], s.Counts[3], s.Counts[4]); err != nil {
						return err
					}
					if showDiversity {
						if _, err := fmt.Fprintf(w, "\t%.4f", s.Diversity); err != nil {
							return err
						}
					}
					if _, err := fmt.Fprintln(w); err != nil {
						return err
					}
				}
			}
			return nil
		},
	}

	c.Flags().StringVar(&idxPath, "idx", "", "path to the .fmd index")
	c.Flags().IntVar(&k, "k", 101, "k-mer window length")
	c.Flags().IntVar(&step, "w", 50, "window step size")
	c.Flags().BoolVar(&showDiversity, "diversity", false, "append a trailing Shannon-entropy diversity column")
	c.Flags().IntVar(&opts.NBest, "best", opts.NBest, "max cells kept per DAWG node")
	c.Flags().Int32Var(&opts.MinSc, "min-sc", opts.MinSc, "minimum alignment score")

	return c
}

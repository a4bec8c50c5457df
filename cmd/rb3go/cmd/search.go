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

	"github.com/ropebwt/rb3go/fmindex"
	"github.com/ropebwt/rb3go/seq"
)

// newSearchCmd performs exact-match backward search, extending one symbol
// at a time from the query's right end and stopping the moment the
// bi-interval empties, the same early-exit backward search
// fmindex.Index.BackwardSearch performs in one shot but walked here a
// step at a time so the longest still-matching suffix can be reported.
func newSearchCmd() *cobra.Command {
	var idxPath string

	c := &cobra.Command{
		Use:   "search <queries.fa>",
		Short: "Report the longest matching suffix and its interval size for each query",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if idxPath == "" {
				return fmt.Errorf("search: --idx is required")
			}
			idx, closeIdx, err := openIndex(idxPath)
			if err != nil {
				return fmt.Errorf("search: opening index: %w", err)
			}
			defer closeIdx()

			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("search: opening %s: %w", args[0], err)
			}
			defer f.Close()

			batch, err := seq.FromFASTA(f, false)
			if err != nil {
				return fmt.Errorf("search: parsing %s: %w", args[0], err)
			}

			w := bufio.NewWriter(os.Stdout)
			defer w.Flush()

			for _, r := range batch.Records {
				start, size := longestMatchingSuffix(idx, r.Bases)
				if _, err := fmt.Fprintf(w, "%s\t%d\t%d\t%d\n", r.Name, start, len(r.Bases), size); err != nil {
					return err
				}
			}
			return nil
		},
	}

	c.Flags().StringVar(&idxPath, "idx", "", "path to the .fmd index")

	return c
}

// longestMatchingSuffix walks pattern backward one symbol at a time,
// returning the earliest offset still present in the index (start) and the
// bi-interval size at that point. If the full pattern matches, start is 0.
func longestMatchingSuffix(idx *fmindex.Index, pattern seq.Seq) (start int, size uint64) {
	n := len(pattern)
	if n == 0 {
		return 0, idx.Len()
	}

	bi := idx.InitInterval(pattern[n-1])
	i := n - 1
	for i > 0 && bi.Size > 0 {
		next := idx.Extend(bi, pattern[i-1], true)
		if next.Size == 0 {
			break
		}
		bi = next
		i--
	}
	return i, bi.Size
}

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

	"github.com/ropebwt/rb3go/names"
)

// newViewCmd prints basic index statistics: total indexed length, the
// cumulative per-symbol Acc table, and (when a names table is given) every
// recorded sequence's id, name, and length.
func newViewCmd() *cobra.Command {
	var idxPath, namesPath string

	c := &cobra.Command{
		Use:   "view",
		Short: "Print index statistics and the names table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if idxPath == "" {
				return fmt.Errorf("view: --idx is required")
			}
			idx, closeIdx, err := openIndex(idxPath)
			if err != nil {
				return fmt.Errorf("view: opening index: %w", err)
			}
			defer closeIdx()

			w := bufio.NewWriter(os.Stdout)
			defer w.Flush()

			acc := idx.Acc()
			fmt.Fprintf(w, "length\t%d\n", idx.Len())
			fmt.Fprintf(w, "acc\t%v\n", acc)

			if namesPath != "" {
				table, err := names.Open(namesPath)
				if err != nil {
					return fmt.Errorf("view: opening names table: %w", err)
				}
				defer table.Close()

				records, err := table.All()
				if err != nil {
					return fmt.Errorf("view: reading names table: %w", err)
				}
				for _, r := range records {
					fmt.Fprintf(w, "seq\t%d\t%s\t%d\n", r.SeqID, r.Name, r.Length)
				}
			}
			return nil
		},
	}

	c.Flags().StringVar(&idxPath, "idx", "", "path to the .fmd index")
	c.Flags().StringVar(&namesPath, "names", "", "path to the names table (optional)")

	return c
}

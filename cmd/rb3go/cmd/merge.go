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
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/ropebwt/rb3go/convert"
	"github.com/ropebwt/rb3go/rank"
	"github.com/ropebwt/rb3go/rank/rld"
	"github.com/ropebwt/rb3go/seq"
)

// newMergeCmd combines two FMD indexes into one. It decodes both back to
// their plain symbol strings and re-encodes the concatenation, rather than
// threading the two dictionaries through construct.Pipeline's partial-BWT
// merge stage, since that stage is wired to seq.Batch/FASTA input only
// (buildPartialBWT is unexported); see DESIGN.md for why this was accepted
// instead of exporting a second merge entry point.
func newMergeCmd() *cobra.Command {
	var out string
	var logBase uint
	var superblockLen, blockLen, maxNodes int

	c := &cobra.Command{
		Use:   "merge <a.fmd> <b.fmd>",
		Short: "Merge two FMD indexes into one",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if out == "" {
				return fmt.Errorf("merge: --out is required")
			}

			var allSyms []seq.Symbol
			for _, path := range args {
				d, err := rld.Open(path)
				if err != nil {
					return fmt.Errorf("merge: opening %s: %w", path, err)
				}
				r, err := convert.FMDToFMR(d, blockLen, maxNodes)
				closeErr := d.Close()
				if err != nil {
					return fmt.Errorf("merge: decoding %s: %w", path, err)
				}
				if closeErr != nil {
					return fmt.Errorf("merge: closing %s: %w", path, closeErr)
				}
				allSyms = append(allSyms, convert.FMRToPlain(r)...)
				slog.Debug("merged input", slog.String("path", path), slog.Int("symbols", len(allSyms)))
			}

			merged := convert.PlainToFMR(allSyms, blockLen, maxNodes)

			if logBase == 0 {
				var runs []rank.Run
				for class := 0; class < seq.AlphabetSize; class++ {
					runs = append(runs, merged.Runs(class)...)
				}
				logBase = rld.PickLogBase(runs)
			}

			dict, err := convert.FMRToFMD(merged, logBase, superblockLen)
			if err != nil {
				return fmt.Errorf("merge: encoding merged FMD: %w", err)
			}
			defer dict.Close()

			if err := rld.WriteFile(out, dict); err != nil {
				return fmt.Errorf("merge: writing %s: %w", out, err)
			}

			slog.Info("merge complete", slog.String("out", out))
			return nil
		},
	}

	c.Flags().StringVar(&out, "out", "", "output .fmd path")
	c.Flags().UintVar(&logBase, "log-base", 0, "Rice/Golomb log base (0: pick automatically)")
	c.Flags().IntVar(&superblockLen, "superblock-len", 1024, "FMD superblock length")
	c.Flags().IntVar(&blockLen, "block-len", 0, "rope leaf block length (0: rope.DefaultBlockLen)")
	c.Flags().IntVar(&maxNodes, "max-nodes", 0, "rope internal node fan-out (0: rope.DefaultMaxNodes)")

	return c
}

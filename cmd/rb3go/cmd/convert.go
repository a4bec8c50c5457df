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

	"github.com/ropebwt/rb3go/convert"
	"github.com/ropebwt/rb3go/rank"
	"github.com/ropebwt/rb3go/rank/rld"
	"github.com/ropebwt/rb3go/rank/rope"
	"github.com/ropebwt/rb3go/seq"
)

// newConvertCmd re-encodes an index between its plain symbol form, the
// mutable FMR rope, the run-length-packed BRE wire format, and the
// immutable FMD dictionary, pivoting through an in-memory rope.
func newConvertCmd() *cobra.Command {
	var from, to string
	var blockLen, maxNodes int
	var logBase uint
	var superblockLen int

	c := &cobra.Command{
		Use:   "convert <in> <out>",
		Short: "Convert between plain, bre, and fmd index representations",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if from == "" || to == "" {
				return fmt.Errorf("convert: --from and --to are required (plain|bre|fmd)")
			}

			r, err := readRope(args[0], from, blockLen, maxNodes)
			if err != nil {
				return fmt.Errorf("convert: reading %s: %w", args[0], err)
			}

			return writeRope(args[1], to, r, logBase, superblockLen)
		},
	}

	c.Flags().StringVar(&from, "from", "", "input format: plain|bre|fmd")
	c.Flags().StringVar(&to, "to", "", "output format: plain|bre|fmd")
	c.Flags().IntVar(&blockLen, "block-len", 0, "rope leaf block length (0: rope.DefaultBlockLen)")
	c.Flags().IntVar(&maxNodes, "max-nodes", 0, "rope internal node fan-out (0: rope.DefaultMaxNodes)")
	c.Flags().UintVar(&logBase, "log-base", 0, "Rice/Golomb log base for fmd output (0: pick automatically)")
	c.Flags().IntVar(&superblockLen, "superblock-len", 1024, "FMD superblock length")

	return c
}

func readRope(path, format string, blockLen, maxNodes int) (*rope.Rope, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	switch format {
	case "plain":
		syms, err := readPlainSymbols(f)
		if err != nil {
			return nil, err
		}
		return convert.PlainToFMR(syms, blockLen, maxNodes), nil
	case "bre":
		return convert.BREToFMR(f, blockLen, maxNodes)
	case "fmd":
		d, err := rld.Open(path)
		if err != nil {
			return nil, err
		}
		defer d.Close()
		return convert.FMDToFMR(d, blockLen, maxNodes)
	default:
		return nil, fmt.Errorf("unknown format %q", format)
	}
}

func writeRope(path, format string, r *rope.Rope, logBase uint, superblockLen int) error {
	switch format {
	case "plain":
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer f.Close()
		return writePlainSymbols(bufio.NewWriter(f), convert.FMRToPlain(r))
	case "bre":
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer f.Close()
		return convert.FMRToBRE(r, f)
	case "fmd":
		if logBase == 0 {
			logBase = rld.PickLogBase(allClassRuns(r))
		}
		d, err := convert.FMRToFMD(r, logBase, superblockLen)
		if err != nil {
			return err
		}
		defer d.Close()
		return rld.WriteFile(path, d)
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}

func allClassRuns(r *rope.Rope) (out []rank.Run) {
	for c := 0; c < seq.AlphabetSize; c++ {
		for _, run := range r.Runs(c) {
			out = append(out, run)
		}
	}
	return out
}

func readPlainSymbols(f *os.File) ([]seq.Symbol, error) {
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 1<<20), 1<<30)
	var out []seq.Symbol
	for scanner.Scan() {
		line := scanner.Bytes()
		for _, b := range line {
			out = append(out, seq.FromChar(b))
		}
		out = append(out, seq.Sentinel)
	}
	return out, scanner.Err()
}

func writePlainSymbols(w *bufio.Writer, syms []seq.Symbol) error {
	for _, s := range syms {
		if s == seq.Sentinel {
			if err := w.WriteByte('\n'); err != nil {
				return err
			}
			continue
		}
		if err := w.WriteByte(byte(s.String()[0])); err != nil {
			return err
		}
	}
	return w.Flush()
}

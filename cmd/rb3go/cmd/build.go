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
	"os"

	"github.com/gofrs/flock"
	"github.com/spf13/cobra"

	"github.com/ropebwt/rb3go/construct"
	"github.com/ropebwt/rb3go/convert"
	"github.com/ropebwt/rb3go/fmindex"
	"github.com/ropebwt/rb3go/internal"
	"github.com/ropebwt/rb3go/names"
	"github.com/ropebwt/rb3go/rank"
	"github.com/ropebwt/rb3go/rank/rld"
	"github.com/ropebwt/rb3go/seq"
	"github.com/ropebwt/rb3go/ssa"
)

// newBuildCmd builds an FMD index plus names table from one or more FASTA
// inputs, via construct.Pipeline (stage S: per-file partial BWT, stage M:
// merge into the rope) and convert.FMRToFMD to flush to the immutable
// on-disk dictionary.
func newBuildCmd() *cobra.Command {
	var out string
	var recursive bool
	var rc bool
	var logBase uint
	var superblockLen int
	var blockLen, maxNodes int

	c := &cobra.Command{
		Use:   "build <path>...",
		Short: "Build an FMD index from FASTA input files or directories",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if out == "" {
				return fmt.Errorf("build: --out is required")
			}

			lock := flock.New(out + ".lock")
			locked, err := lock.TryLock()
			if err != nil {
				return fmt.Errorf("build: acquiring write lock: %w", err)
			}
			if !locked {
				return fmt.Errorf("build: %s.lock is held by another process", out)
			}
			defer lock.Unlock()

			var files []internal.FileData
			for _, target := range args {
				files, err = internal.CreateFileList(target, files, recursive, true)
				if err != nil {
					return fmt.Errorf("build: discovering inputs: %w", err)
				}
			}
			if len(files) == 0 {
				return fmt.Errorf("build: no input files found")
			}

			var batches []seq.Batch
			var records []seq.Record
			for _, fd := range files {
				f, err := os.Open(fd.FullPath)
				if err != nil {
					return fmt.Errorf("build: opening %s: %w", fd.FullPath, err)
				}
				b, err := seq.FromFASTA(f, rc)
				f.Close()
				if err != nil {
					return fmt.Errorf("build: parsing %s: %w", fd.FullPath, err)
				}
				slog.Debug("ingested batch", slog.String("path", fd.FullPath), slog.Int("records", b.NumSeqs()))
				batches = append(batches, b)
				records = append(records, b.Records...)
			}

			cfg := construct.Config{
				Threads:           flagThreads,
				BlockLen:          blockLen,
				MaxNodes:          maxNodes,
				ReverseComplement: rc,
			}
			p := construct.NewPipeline(cfg)
			if err := p.Run(cmd.Context(), batches); err != nil {
				return fmt.Errorf("build: constructing index: %w", err)
			}

			if logBase == 0 {
				var runs []rank.Run
				for class := 0; class < seq.AlphabetSize; class++ {
					runs = append(runs, p.Rope.Runs(class)...)
				}
				logBase = rld.PickLogBase(runs)
			}

			dict, err := convert.FMRToFMD(p.Rope, logBase, superblockLen)
			if err != nil {
				return fmt.Errorf("build: encoding FMD: %w", err)
			}
			defer dict.Close()

			if err := rld.WriteFile(out+".fmd", dict); err != nil {
				return fmt.Errorf("build: writing %s.fmd: %w", out, err)
			}

			idx := fmindex.Open(rank.NewDeltaFacade(dict))
			if err := writeNames(idx, out+".names", records); err != nil {
				return fmt.Errorf("build: writing names table: %w", err)
			}

			slog.Info("build complete", slog.String("out", out), slog.Int("sequences", len(records)))
			return nil
		},
	}

	c.Flags().StringVar(&out, "out", "", "output path prefix (writes <out>.fmd and <out>.names)")
	c.Flags().BoolVar(&recursive, "recursive", false, "recurse into directory inputs")
	c.Flags().BoolVar(&rc, "rc", false, "append each record's reverse complement (strand-symmetric index)")
	c.Flags().UintVar(&logBase, "log-base", 0, "Rice/Golomb log base (0: pick automatically)")
	c.Flags().IntVar(&superblockLen, "superblock-len", 1024, "FMD superblock length")
	c.Flags().IntVar(&blockLen, "block-len", 0, "rope leaf block length (0: rope.DefaultBlockLen)")
	c.Flags().IntVar(&maxNodes, "max-nodes", 0, "rope internal node fan-out (0: rope.DefaultMaxNodes)")

	return c
}

// writeNames resolves each record's ssa sequence id by backward-searching
// its own bases and picking the occurrence that starts at offset 0 within
// its sequence (i.e. the whole record, not a substring match inside some
// other record), then persists the name/length table keyed by that id.
// Two distinct input records with byte-identical sequences are
// indistinguishable this way; the table then holds whichever one
// ssa.LocateAll happens to report first, a known limitation rather than an
// oversight.
func writeNames(idx *fmindex.Index, path string, records []seq.Record) error {
	table, err := names.Create(path)
	if err != nil {
		return err
	}
	defer table.Close()

	var out []names.Record
	for _, r := range records {
		if len(r.Bases) == 0 {
			continue
		}
		bi := idx.BackwardSearch(r.Bases)
		if bi.Size == 0 {
			continue
		}

		hits := ssa.LocateAll(idx, bi.X0, bi.X0+bi.Size, 64)
		for _, h := range hits {
			if h.Pos == 0 {
				out = append(out, names.Record{SeqID: uint64(h.SeqID), Name: r.Name, Length: r.Length})
				break
			}
		}
	}

	return table.PutAll(out)
}

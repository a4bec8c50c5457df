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
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ropebwt/rb3go/align"
	"github.com/ropebwt/rb3go/fmindex"
	"github.com/ropebwt/rb3go/names"
	"github.com/ropebwt/rb3go/qdawg"
	"github.com/ropebwt/rb3go/seq"
	"github.com/ropebwt/rb3go/ssa"
)

// newAlignCmd locally or end-to-end gapped-aligns each query against the
// index via its DAWG, emitting one PAF-like record per reported alignment.
func newAlignCmd() *cobra.Command {
	var idxPath, namesPath string
	var e2e bool
	var writeUnmapped bool
	var writeRefSeq bool
	opts := align.DefaultOptions()

	c := &cobra.Command{
		Use:   "align <queries.fa>",
		Short: "Locally or end-to-end align queries against the index",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if idxPath == "" {
				return fmt.Errorf("align: --idx is required")
			}
			idx, closeIdx, err := openIndex(idxPath)
			if err != nil {
				return fmt.Errorf("align: opening index: %w", err)
			}
			defer closeIdx()

			var table *names.Table
			if namesPath != "" {
				table, err = names.Open(namesPath)
				if err != nil {
					return fmt.Errorf("align: opening names table: %w", err)
				}
				defer table.Close()
			}

			if e2e {
				opts.Mode = align.ModeE2E
			}
			a := align.New(idx, opts)

			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("align: opening %s: %w", args[0], err)
			}
			defer f.Close()

			batch, err := seq.FromFASTA(f, false)
			if err != nil {
				return fmt.Errorf("align: parsing %s: %w", args[0], err)
			}

			w := bufio.NewWriter(os.Stdout)
			defer w.Flush()

			for _, r := range batch.Records {
				dawg := qdawg.Build(r.Bases)
				res := a.Align(r.Bases, dawg)
				if res == nil {
					if writeUnmapped {
						fmt.Fprintf(w, "%s\t%d\t*\t*\t*\t*\t*\t*\t*\t*\t*\t0\n", r.Name, r.Length)
					}
					continue
				}
				if err := writeAlignRecord(w, idx, table, r, res, writeRefSeq); err != nil {
					return err
				}
			}
			return nil
		},
	}

	c.Flags().StringVar(&idxPath, "idx", "", "path to the .fmd index")
	c.Flags().StringVar(&namesPath, "names", "", "path to the names table (optional; falls back to numeric ref ids)")
	c.Flags().BoolVar(&e2e, "e2e", false, "end-to-end mode instead of local")
	c.Flags().BoolVar(&writeUnmapped, "unmapped", false, "emit a starred record for unmapped queries")
	c.Flags().BoolVar(&writeRefSeq, "seq", false, "append the rs:Z: reference-bases tag")
	c.Flags().IntVar(&opts.NBest, "best", opts.NBest, "max cells kept per DAWG node")
	c.Flags().Int32Var(&opts.MinSc, "min-sc", opts.MinSc, "minimum alignment score")
	c.Flags().Int32Var(&opts.Match, "match", opts.Match, "match score")
	c.Flags().Int32Var(&opts.Mismatch, "mismatch", opts.Mismatch, "mismatch penalty")
	c.Flags().Int32Var(&opts.GapOpen, "gap-open", opts.GapOpen, "gap open penalty")
	c.Flags().Int32Var(&opts.GapExt, "gap-ext", opts.GapExt, "gap extension penalty")
	c.Flags().UintVar((*uint)(&opts.EndLen), "end-len", uint(opts.EndLen), "required exact match length at alignment end")
	c.Flags().Uint64Var(&opts.MinOcc, "min-occ", opts.MinOcc, "minimum interval size for the SMEM pre-filter")
	c.Flags().UintVar((*uint)(&opts.MinMemLen), "min-mem-len", uint(opts.MinMemLen), "minimum MEM length to initiate alignment")

	return c
}

// writeAlignRecord resolves res's reference placement via ssa.LocateAll and
// writes one PAF-like line: name, qlen, qstart, qend, strand, ref, reflen,
// rstart, rend, matches, blocklen, mapq(0), then the AS/qh/rh/cg[/rs] tags.
func writeAlignRecord(w *bufio.Writer, idx *fmindex.Index, table *names.Table, r seq.Record, res *align.Result, writeRefSeq bool) error {
	qstart, qend := queryRange(res)
	matches, blockLen := cigarStats(res.Cigar)

	refName := "*"
	refLen := int64(-1)
	rstart, rend := int64(-1), int64(-1)
	if res.Interval.Size > 0 {
		hits := ssa.LocateAll(idx, res.Interval.X0, res.Interval.X0+res.Interval.Size, 1)
		if len(hits) > 0 {
			h := hits[0]
			rstart = int64(h.Pos)
			rend = rstart + int64(blockLen)
			refName = strconv.FormatUint(uint64(h.SeqID), 10)
			if table != nil {
				if name, length, ok, _ := table.Lookup(uint64(h.SeqID)); ok {
					refName = name
					refLen = int64(length)
				}
			}
		}
	}

	var cigar strings.Builder
	for _, op := range res.Cigar {
		fmt.Fprintf(&cigar, "%d%c", op.Len, op.Op)
	}

	_, err := fmt.Fprintf(w, "%s\t%d\t%d\t%d\t+\t%s\t%d\t%d\t%d\t%d\t%d\t0\tAS:i:%d\tqh:i:0\trh:i:%d\tcg:Z:%s",
		r.Name, r.Length, qstart, qend, refName, refLen, rstart, rend, matches, blockLen,
		res.Score, res.AltCount, cigar.String())
	if err != nil {
		return err
	}
	if writeRefSeq {
		if _, err := fmt.Fprintf(w, "\trs:Z:%s", seqString(res.RefSeq)); err != nil {
			return err
		}
	}
	_, err = fmt.Fprintln(w)
	return err
}

func seqString(s seq.Seq) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, sym := range s {
		b.WriteString(sym.String())
	}
	return b.String()
}

func queryRange(res *align.Result) (start, end int) {
	if len(res.QueryOffsets) == 0 {
		return 0, 0
	}
	start = int(res.QueryOffsets[0])
	qlen := 0
	for _, op := range res.Cigar {
		if op.Op == '=' || op.Op == 'X' || op.Op == 'I' {
			qlen += op.Len
		}
	}
	return start, start + qlen
}

func cigarStats(ops []align.CigarOp) (matches, blockLen int) {
	for _, op := range ops {
		blockLen += op.Len
		if op.Op == '=' {
			matches += op.Len
		}
	}
	return matches, blockLen
}

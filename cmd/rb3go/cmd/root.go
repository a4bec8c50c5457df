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

// Package cmd provides the rb3go CLI's subcommands, grounded on amanmcp's
// cmd/amanmcp/cmd layout (one file per subcommand, a NewRootCmd
// constructor, persistent flags threaded through package-level state)
// rather than re-deriving the teacher's hand-rolled app/Kanzi.go flag
// parser, since a thin command dispatcher is explicitly out of scope for
// this module's core.
package cmd

import (
	"log/slog"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/ropebwt/rb3go/fmindex"
	"github.com/ropebwt/rb3go/internal/rlog"
	"github.com/ropebwt/rb3go/rank"
	"github.com/ropebwt/rb3go/rank/rld"
)

var (
	flagDebug   bool
	flagThreads int
	logger      *slog.Logger
)

// NewRootCmd builds the rb3go root command and wires every subcommand.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "rb3go",
		Short:         "Compressed FM-index engine over multi-string DNA collections",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger = rlog.New(rlog.Config{
				Debug: flagDebug,
				JSON:  !isatty.IsTerminal(os.Stderr.Fd()),
			})
			slog.SetDefault(logger)
		},
	}

	root.PersistentFlags().BoolVar(&flagDebug, "debug", false, "enable debug logging")
	root.PersistentFlags().IntVar(&flagThreads, "threads", 0, "worker count for construction/merge (<=0 means 1)")

	root.AddCommand(newBuildCmd())
	root.AddCommand(newSearchCmd())
	root.AddCommand(newSMEMCmd())
	root.AddCommand(newAlignCmd())
	root.AddCommand(newHapDivCmd())
	root.AddCommand(newConvertCmd())
	root.AddCommand(newMergeCmd())
	root.AddCommand(newViewCmd())

	return root
}

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().Execute()
}

// openIndex mmaps the FMD dictionary at path and wraps it in an Index,
// returning a close function that must be called once the caller is done
// querying it.
func openIndex(path string) (*fmindex.Index, func() error, error) {
	d, err := rld.Open(path)
	if err != nil {
		return nil, nil, err
	}
	return fmindex.Open(rank.NewDeltaFacade(d)), d.Close, nil
}

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

// Package rlog configures the CLI's structured logger: a single
// log/slog.Logger writing to stderr, text-formatted for a human terminal
// or JSON for a pipe, grounded on amanmcp's internal/logging package (its
// Config/Setup shape, narrowed from "rotating debug log file plus
// optional stderr mirror" to "one stderr stream, since rb3go is a
// one-shot CLI rather than a long-lived MCP server").
package rlog

import (
	"log/slog"
	"os"
)

// Config selects the logger's verbosity and encoding.
type Config struct {
	// Debug lowers the minimum level to slog.LevelDebug (slog.LevelInfo
	// otherwise).
	Debug bool
	// JSON selects slog.NewJSONHandler over slog.NewTextHandler; the CLI
	// sets this when stderr isn't a terminal (see isatty in cmd/root.go).
	JSON bool
}

// New builds a logger per cfg, writing to stderr.
func New(cfg Config) *slog.Logger {
	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if cfg.JSON {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}

	return slog.New(handler)
}

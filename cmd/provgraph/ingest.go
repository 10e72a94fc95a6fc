// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Provgraph Contributors

package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/provgraph-dev/provgraph/internal/ingest"
	"github.com/provgraph-dev/provgraph/internal/store"
	_ "github.com/provgraph-dev/provgraph/internal/store/sqlite"
	pgerr "github.com/provgraph-dev/provgraph/pkg/errors"
)

func newIngestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ingest [file]",
		Short: "Ingest a newline-delimited JSON audit event stream",
		Long:  "Read audit events from a file (or stdin when omitted) and load the decoded provenance graph into the store.",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runIngest,
	}
}

func runIngest(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	var src io.Reader = cmd.InOrStdin()
	if len(args) == 1 {
		f, err := os.Open(args[0])
		if err != nil {
			return pgerr.Wrapf(err, pgerr.CodeCLIInputInvalid, "opening audit stream %s", args[0])
		}
		defer f.Close() //nolint:errcheck // read-only file
		src = f
	}

	st, err := store.Open(cfg.Storage.Arguments)
	if err != nil {
		return err
	}
	defer func() {
		if err := st.Close(); err != nil {
			slog.Error("closing store", "error", err)
		}
	}()

	var filters ingest.Chain
	if len(cfg.Ingest.VertexTypes) > 0 || len(cfg.Ingest.EdgeTypes) > 0 {
		filters = ingest.Chain{ingest.NewTypeFilter(cfg.Ingest.VertexTypes, cfg.Ingest.EdgeTypes)}
	}

	reporter := ingest.NewReporter(st, ingest.ReporterConfig{
		CacheBytes:    cfg.Ingest.CacheBytes,
		ProgressEvery: cfg.Ingest.ProgressEvery,
		Filters:       filters,
	})

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := reporter.Run(ctx, src); err != nil {
		return err
	}

	stats := reporter.Stats()
	_, err = fmt.Fprintf(cmd.OutOrStdout(),
		"ingested %d vertices and %d edges from %d lines (%d malformed, %d filtered, %d dropped edges)\n",
		stats.Vertices, stats.Edges, stats.LinesRead, stats.Malformed, stats.Filtered, stats.DroppedEdges)
	return err
}

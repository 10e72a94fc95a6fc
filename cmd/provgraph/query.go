// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Provgraph Contributors

package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/provgraph-dev/provgraph/internal/core"
	"github.com/provgraph-dev/provgraph/internal/store"
	_ "github.com/provgraph-dev/provgraph/internal/store/sqlite"
	pgerr "github.com/provgraph-dev/provgraph/pkg/errors"
)

func newQueryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "query",
		Short: "Run one-shot queries against a graph store",
	}

	cmd.AddCommand(
		newQueryVerticesCmd(),
		newQueryEdgesCmd(),
		newQueryLineageCmd(),
		newQueryPathsCmd(),
	)

	return cmd
}

func newQueryVerticesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "vertices <key:value>",
		Short: "List vertices matching an annotation expression",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, func(st store.Storage) (*core.Graph, error) {
				return st.GetVertices(cmd.Context(), args[0])
			})
		},
	}
}

func newQueryEdgesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edges",
		Short: "Fetch the edges between two vertices",
		RunE:  runQueryEdges,
	}

	cmd.Flags().Int64("src-id", -1, "source vertex id")
	cmd.Flags().Int64("dst-id", -1, "destination vertex id")
	cmd.Flags().String("src", "", "source predicate (key:value)")
	cmd.Flags().String("dst", "", "destination predicate (key:value)")

	return cmd
}

func runQueryEdges(cmd *cobra.Command, _ []string) error {
	srcID, _ := cmd.Flags().GetInt64("src-id")
	dstID, _ := cmd.Flags().GetInt64("dst-id")
	src, _ := cmd.Flags().GetString("src")
	dst, _ := cmd.Flags().GetString("dst")

	switch {
	case srcID >= 0 && dstID >= 0:
		return withStore(cmd, func(st store.Storage) (*core.Graph, error) {
			return st.GetEdgesByID(cmd.Context(), srcID, dstID)
		})
	case src != "" && dst != "":
		srcKey, srcValue, okSrc := strings.Cut(src, ":")
		dstKey, dstValue, okDst := strings.Cut(dst, ":")
		if !okSrc || !okDst {
			return pgerr.New(pgerr.CodeCLIInputInvalid, "predicates must be key:value expressions")
		}
		return withStore(cmd, func(st store.Storage) (*core.Graph, error) {
			return st.GetEdges(cmd.Context(), srcKey, srcValue, dstKey, dstValue)
		})
	default:
		return pgerr.New(pgerr.CodeCLIInputInvalid, "either --src-id/--dst-id or --src/--dst are required")
	}
}

func newQueryLineageCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lineage",
		Short: "Expand the bounded lineage of a vertex",
		RunE:  runQueryLineage,
	}

	cmd.Flags().Int64("src", -1, "source vertex id (required)")
	cmd.Flags().Int("depth", 5, "maximum expansion rounds")
	cmd.Flags().String("direction", "descendants", "traversal direction (ancestors or descendants)")
	cmd.Flags().Int64("terminate", -1, "vertex id excluded from the expansion")
	_ = cmd.MarkFlagRequired("src")

	return cmd
}

func runQueryLineage(cmd *cobra.Command, _ []string) error {
	src, _ := cmd.Flags().GetInt64("src")
	depth, _ := cmd.Flags().GetInt("depth")
	terminate, _ := cmd.Flags().GetInt64("terminate")
	rawDirection, _ := cmd.Flags().GetString("direction")

	direction, err := core.ParseDirection(rawDirection)
	if err != nil {
		return pgerr.Wrap(err, pgerr.CodeCLIInputInvalid, "invalid --direction")
	}

	return withStore(cmd, func(st store.Storage) (*core.Graph, error) {
		return st.GetLineage(cmd.Context(), src, depth, direction, terminate)
	})
}

func newQueryPathsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "paths",
		Short: "Enumerate bounded simple paths between two vertices",
		RunE:  runQueryPaths,
	}

	cmd.Flags().Int64("src", -1, "source vertex id (required)")
	cmd.Flags().Int64("dst", -1, "destination vertex id (required)")
	cmd.Flags().Int("max-length", 5, "maximum path length in edges")
	_ = cmd.MarkFlagRequired("src")
	_ = cmd.MarkFlagRequired("dst")

	return cmd
}

func runQueryPaths(cmd *cobra.Command, _ []string) error {
	src, _ := cmd.Flags().GetInt64("src")
	dst, _ := cmd.Flags().GetInt64("dst")
	maxLength, _ := cmd.Flags().GetInt("max-length")

	return withStore(cmd, func(st store.Storage) (*core.Graph, error) {
		return st.GetAllPaths(cmd.Context(), src, dst, maxLength)
	})
}

// withStore opens the configured store, runs one query, and prints the
// resulting graph as indented JSON.
func withStore(cmd *cobra.Command, query func(store.Storage) (*core.Graph, error)) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
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

	g, err := query(st)
	if err != nil {
		return err
	}

	rendered, err := json.MarshalIndent(g, "", "  ")
	if err != nil {
		return pgerr.Wrap(err, pgerr.CodeCLISetupFailure, "rendering graph")
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(rendered))
	return err
}

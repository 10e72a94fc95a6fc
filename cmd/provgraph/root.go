// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Provgraph Contributors

package main

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/provgraph-dev/provgraph/internal/config"
	pgerr "github.com/provgraph-dev/provgraph/pkg/errors"
)

// NewRootCmd creates the root provgraph command with all subcommands
// registered.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "provgraph",
		Short:         "provgraph — provenance graph store",
		Long:          "Provgraph stores streaming provenance graphs in a relational backend and answers lineage and path queries over them.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringP("config", "c", "", "path to config file")
	root.PersistentFlags().String("storage", "", "storage connection arguments (driver url username password)")
	root.PersistentFlags().BoolP("verbose", "v", false, "enable verbose output")

	root.AddCommand(
		newVersionCmd(),
		newServeCmd(),
		newIngestCmd(),
		newQueryCmd(),
	)

	return root
}

// loadConfig resolves the config file (flag, discovery, or bootstrap),
// loads it, and applies the persistent flag overrides. Flag > env >
// file > defaults.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, pgerr.Wrap(err, pgerr.CodeCLISetupFailure, "reading config flag")
	}
	if path == "" {
		path = discoverConfig()
	}

	config.WarnInsecurePermissions(path)

	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	if storage, _ := cmd.Flags().GetString("storage"); storage != "" {
		cfg.Storage.Arguments = storage
	}
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		cfg.Verbose = true
	}
	if cfg.Verbose {
		slog.SetLogLoggerLevel(slog.LevelDebug)
	}

	return cfg, nil
}

// discoverConfig looks for provgraph.yaml in the standard locations,
// bootstrapping a default one when none exists. Empty means run on
// defaults only.
func discoverConfig() string {
	candidates := []string{"provgraph.yaml"}
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, ".config", "provgraph", "provgraph.yaml"))
	}
	candidates = append(candidates, "/etc/provgraph/provgraph.yaml")

	for _, candidate := range candidates {
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return config.BootstrapConfig()
}

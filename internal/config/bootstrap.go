// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Provgraph Contributors

package config

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	pgerr "github.com/provgraph-dev/provgraph/pkg/errors"
)

const bootstrapHeader = `# provgraph configuration.
# Values here are overridden by PROVGRAPH_* environment variables.
`

// defaultConfigDocument is the YAML shape of the bootstrap file. Field
// names mirror the mapstructure keys in Config.
type defaultConfigDocument struct {
	Storage struct {
		Arguments string `yaml:"arguments"`
	} `yaml:"storage"`
	Server struct {
		Listen      string   `yaml:"listen"`
		CORSOrigins []string `yaml:"cors_origins"`
	} `yaml:"server"`
	Ingest struct {
		CacheBytes    int      `yaml:"cache_bytes"`
		ProgressEvery int      `yaml:"progress_every"`
		VertexTypes   []string `yaml:"vertex_types"`
		EdgeTypes     []string `yaml:"edge_types"`
	} `yaml:"ingest"`
	Verbose bool `yaml:"verbose"`
}

// DefaultConfigYAML renders the default configuration as YAML.
func DefaultConfigYAML() ([]byte, error) {
	var doc defaultConfigDocument
	doc.Server.Listen = "127.0.0.1:18700"

	var buf bytes.Buffer
	buf.WriteString(bootstrapHeader)
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&doc); err != nil {
		return nil, pgerr.Errorf(pgerr.CodeConfigLoadReadFailure, "rendering default config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, pgerr.Errorf(pgerr.CodeConfigLoadReadFailure, "rendering default config: %w", err)
	}
	return buf.Bytes(), nil
}

// DefaultConfigPath returns ~/.config/provgraph/provgraph.yaml.
func DefaultConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", pgerr.Errorf(pgerr.CodeConfigLoadReadFailure, "resolving home directory: %w", err)
	}
	return filepath.Join(home, ".config", "provgraph", "provgraph.yaml"), nil
}

// BootstrapConfig writes the default config to path if it does not
// already exist. Returns the path written, or empty string if the file
// already existed or an error occurred (non-fatal, logged and skipped).
func BootstrapConfig() string {
	cfgPath, err := DefaultConfigPath()
	if err != nil {
		slog.Debug("skipping config bootstrap", "error", err)
		return ""
	}

	if _, err := os.Stat(cfgPath); err == nil {
		return "" // already exists
	}

	rendered, err := DefaultConfigYAML()
	if err != nil {
		slog.Debug("skipping config bootstrap: cannot render default config", "error", err)
		return ""
	}

	dir := filepath.Dir(cfgPath)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		slog.Debug("skipping config bootstrap: cannot create directory", "path", dir, "error", err)
		return ""
	}

	if err := os.WriteFile(cfgPath, rendered, 0o600); err != nil {
		slog.Debug("skipping config bootstrap: cannot write config", "path", cfgPath, "error", err)
		return ""
	}

	slog.Info("created default config", "path", cfgPath)
	return cfgPath
}

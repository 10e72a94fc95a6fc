// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Provgraph Contributors

package config

import (
	"errors"
	"net"
	"strconv"
	"strings"

	"github.com/spf13/viper"

	pgerr "github.com/provgraph-dev/provgraph/pkg/errors"
)

// Config is the top-level provgraph configuration.
type Config struct {
	Storage StorageConfig `mapstructure:"storage"`
	Server  ServerConfig  `mapstructure:"server"`
	Ingest  IngestConfig  `mapstructure:"ingest"`
	Verbose bool          `mapstructure:"verbose"`
}

// StorageConfig selects and parameterizes the storage backend.
type StorageConfig struct {
	// Arguments is the connection token string: up to four
	// whitespace-separated tokens "driver url username password", where
	// "default" or "null" select the built-in fallback for a position.
	// Empty means all defaults.
	Arguments string `mapstructure:"arguments"`
}

// ServerConfig controls the HTTP query API.
type ServerConfig struct {
	Listen      string   `mapstructure:"listen"`
	CORSOrigins []string `mapstructure:"cors_origins"`
}

// IngestConfig controls the audit-stream reporter.
type IngestConfig struct {
	CacheBytes    int      `mapstructure:"cache_bytes"`
	ProgressEvery int      `mapstructure:"progress_every"`
	VertexTypes   []string `mapstructure:"vertex_types"`
	EdgeTypes     []string `mapstructure:"edge_types"`
}

// Load reads configuration from the given path (or defaults) with
// environment variable overrides (prefix PROVGRAPH_).
func Load(path string) (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("storage.arguments", "")
	v.SetDefault("server.listen", "127.0.0.1:18700")
	v.SetDefault("ingest.cache_bytes", 0)
	v.SetDefault("ingest.progress_every", 0)
	v.SetDefault("verbose", false)

	// Environment
	v.SetEnvPrefix("PROVGRAPH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// File
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, pgerr.Errorf(pgerr.CodeConfigLoadReadFailure, "reading config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, pgerr.Errorf(pgerr.CodeConfigValidateInvalidValue, "unmarshalling config: %w", err)
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, pgerr.Errorf(pgerr.CodeConfigValidateInvalidValue, "validating config: %w", errors.Join(errs...))
	}

	return &cfg, nil
}

// Validate checks the configuration for logical errors. It returns all
// validation errors found rather than stopping at the first one.
func (c *Config) Validate() []error {
	var errs []error

	errs = append(errs, c.validateStorage()...)
	errs = append(errs, c.validateServer()...)
	errs = append(errs, c.validateIngest()...)

	return errs
}

func (c *Config) validateStorage() []error {
	var errs []error

	if tokens := strings.Fields(c.Storage.Arguments); len(tokens) != 0 && len(tokens) != 4 {
		errs = append(errs, pgerr.Errorf(pgerr.CodeConfigValidateInvalidValue,
			"config: storage.arguments must be empty or exactly four tokens (driver url username password), got %d",
			len(tokens),
		))
	}

	return errs
}

func (c *Config) validateServer() []error {
	var errs []error

	if c.Server.Listen == "" {
		errs = append(errs, pgerr.Errorf(pgerr.CodeConfigValidateInvalidValue, "config: server.listen must not be empty"))
		return errs
	}

	_, portStr, err := net.SplitHostPort(c.Server.Listen)
	if err != nil {
		errs = append(errs, pgerr.Errorf(pgerr.CodeConfigValidateInvalidValue,
			"config: server.listen must be a valid host:port address, got %q: %w",
			c.Server.Listen, err,
		))
		return errs
	}

	port, err := strconv.Atoi(portStr)
	if err != nil {
		errs = append(errs, pgerr.Errorf(pgerr.CodeConfigValidateInvalidValue,
			"config: server.listen port must be a number, got %q",
			portStr,
		))
	} else if port < 0 || port > 65535 {
		errs = append(errs, pgerr.Errorf(pgerr.CodeConfigValidateInvalidValue,
			"config: server.listen port must be between 0 and 65535, got %d",
			port,
		))
	}

	return errs
}

func (c *Config) validateIngest() []error {
	var errs []error

	if c.Ingest.CacheBytes < 0 {
		errs = append(errs, pgerr.Errorf(pgerr.CodeConfigValidateInvalidValue,
			"config: ingest.cache_bytes must not be negative, got %d",
			c.Ingest.CacheBytes,
		))
	}

	if c.Ingest.ProgressEvery < 0 {
		errs = append(errs, pgerr.Errorf(pgerr.CodeConfigValidateInvalidValue,
			"config: ingest.progress_every must not be negative, got %d",
			c.Ingest.ProgressEvery,
		))
	}

	return errs
}

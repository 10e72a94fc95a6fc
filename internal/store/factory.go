// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Provgraph Contributors

package store

import (
	"strings"
	"sync"

	pgerr "github.com/provgraph-dev/provgraph/pkg/errors"
)

// Built-in defaults selected by the "default"/"null" connection tokens.
const (
	DefaultDriver = "sqlite3"
	DefaultURL    = "/tmp/provgraph.db"
)

// ConnectionArgs carries the parsed connection tokens for a backend.
// Username and Password are empty for backends that do not use them.
type ConnectionArgs struct {
	URL      string
	Username string
	Password string
}

// Opener constructs a Storage from parsed connection arguments.
type Opener func(args ConnectionArgs) (Storage, error)

var (
	backendsMu sync.RWMutex
	backends   = make(map[string]Opener)
)

// RegisterBackend registers a storage backend under a driver name.
// Typically called from an init() in the backend package.
func RegisterBackend(driver string, open Opener) {
	backendsMu.Lock()
	defer backendsMu.Unlock()
	backends[strings.ToLower(driver)] = open
}

// ParseArguments splits the space-separated connection string
// "{driver} {url} {username} {password}". Each token may be the literal
// "default" or "null" to select the built-in default; an empty string
// selects defaults for all four.
func ParseArguments(arguments string) (string, ConnectionArgs, error) {
	tokens := strings.Fields(arguments)
	if len(tokens) == 0 {
		tokens = []string{"default", "default", "null", "null"}
	}
	if len(tokens) != 4 {
		return "", ConnectionArgs{}, pgerr.Errorf(pgerr.CodeConfigValidateInvalidValue,
			"connection arguments: want 4 tokens {driver url username password}, got %d", len(tokens))
	}

	pick := func(token, fallback string) string {
		if strings.EqualFold(token, "default") || strings.EqualFold(token, "null") {
			return fallback
		}
		return token
	}

	driver := strings.ToLower(pick(tokens[0], DefaultDriver))
	args := ConnectionArgs{
		URL:      pick(tokens[1], DefaultURL),
		Username: pick(tokens[2], ""),
		Password: pick(tokens[3], ""),
	}
	return driver, args, nil
}

// Open parses the connection arguments and opens the selected backend.
func Open(arguments string) (Storage, error) {
	driver, args, err := ParseArguments(arguments)
	if err != nil {
		return nil, err
	}

	backendsMu.RLock()
	open, ok := backends[driver]
	backendsMu.RUnlock()
	if !ok {
		return nil, pgerr.Errorf(pgerr.CodeStoreBackendUnsupported, "unsupported storage driver %q", driver)
	}

	return open(args)
}

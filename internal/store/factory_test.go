// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Provgraph Contributors

package store_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/provgraph-dev/provgraph/internal/store"
	pgerr "github.com/provgraph-dev/provgraph/pkg/errors"
)

func TestParseArguments(t *testing.T) {
	tests := []struct {
		name       string
		arguments  string
		wantDriver string
		wantArgs   store.ConnectionArgs
		wantErr    bool
	}{
		{
			name:       "all defaults spelled out",
			arguments:  "default default null null",
			wantDriver: store.DefaultDriver,
			wantArgs:   store.ConnectionArgs{URL: store.DefaultURL},
		},
		{
			name:       "empty string selects all defaults",
			arguments:  "",
			wantDriver: store.DefaultDriver,
			wantArgs:   store.ConnectionArgs{URL: store.DefaultURL},
		},
		{
			name:       "explicit tokens",
			arguments:  "sqlite3 /var/lib/prov/graph.db audit secret",
			wantDriver: "sqlite3",
			wantArgs:   store.ConnectionArgs{URL: "/var/lib/prov/graph.db", Username: "audit", Password: "secret"},
		},
		{
			name:       "driver name lowered, default/null interchangeable",
			arguments:  "SQLITE3 null DEFAULT null",
			wantDriver: "sqlite3",
			wantArgs:   store.ConnectionArgs{URL: store.DefaultURL},
		},
		{
			name:      "too few tokens",
			arguments: "sqlite3 /tmp/x.db",
			wantErr:   true,
		},
		{
			name:      "too many tokens",
			arguments: "a b c d e",
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			driver, args, err := store.ParseArguments(tt.arguments)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, pgerr.IsInvalidInput(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantDriver, driver)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestOpenUnsupportedDriver(t *testing.T) {
	_, err := store.Open("sybase default null null")
	require.Error(t, err)
	assert.True(t, pgerr.HasCode(err, pgerr.CodeStoreBackendUnsupported))
}

func TestRegisteredBackendIsUsed(t *testing.T) {
	opened := false
	store.RegisterBackend("fake", func(args store.ConnectionArgs) (store.Storage, error) {
		opened = true
		assert.Equal(t, "/somewhere.db", args.URL)
		return nil, nil
	})

	_, err := store.Open("fake /somewhere.db null null")
	require.NoError(t, err)
	assert.True(t, opened)
}

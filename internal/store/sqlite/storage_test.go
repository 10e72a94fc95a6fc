// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Provgraph Contributors

package sqlite_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/provgraph-dev/provgraph/internal/store"
	"github.com/provgraph-dev/provgraph/internal/store/sqlite"
)

func TestNewCreatesDatabase(t *testing.T) {
	path := testDBPath(t, "fresh")

	st, err := sqlite.New(store.ConnectionArgs{URL: path})
	require.NoError(t, err)
	require.NoError(t, st.Close())

	// Reopening an existing database must not fail on the base DDL.
	st, err = sqlite.New(store.ConnectionArgs{URL: path})
	require.NoError(t, err)
	require.NoError(t, st.Close())
}

func TestNewInvalidPath(t *testing.T) {
	_, err := sqlite.New(store.ConnectionArgs{URL: "/nonexistent-dir/provgraph/graph.db"})
	require.Error(t, err)
}

func TestOpenThroughRegistry(t *testing.T) {
	path := testDBPath(t, "registry")

	st, err := store.Open("sqlite3 " + path + " default default")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	require.True(t, st.PutVertex(context.Background(), newProcess("4")))
	g, err := st.GetVertices(context.Background(), "pid:4")
	require.NoError(t, err)
	assert.Equal(t, 1, g.VertexCount())
}

func TestPersistenceAcrossReopen(t *testing.T) {
	path := testDBPath(t, "persist")
	ctx := context.Background()

	first, err := newStoreAt(path)
	require.NoError(t, err)
	insertChain(t, first, "1", "2", "3")
	require.NoError(t, first.Close())

	second, err := newStoreAt(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = second.Close() })

	// Data, schema, and traversability all survive the reopen.
	ids := map[string]int64{
		"1": vertexID(t, second, "pid:1"),
		"3": vertexID(t, second, "pid:3"),
	}
	g, err := second.GetAllPaths(ctx, ids["1"], ids["3"], 2)
	require.NoError(t, err)
	assert.Equal(t, 3, g.VertexCount())
	assert.Equal(t, 2, g.EdgeCount())
}

func TestCloseWithoutWrites(t *testing.T) {
	st, err := newStoreAt(testDBPath(t, "close"))
	require.NoError(t, err)
	require.NoError(t, st.Close())
}

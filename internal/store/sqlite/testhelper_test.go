// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Provgraph Contributors

package sqlite_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/provgraph-dev/provgraph/internal/core"
	"github.com/provgraph-dev/provgraph/internal/store"
	"github.com/provgraph-dev/provgraph/internal/store/sqlite"
)

// testDir creates a temp directory for a test and returns it.
func testDir(t *testing.T) string {
	t.Helper()
	dir, err := os.MkdirTemp("", "provgraph-test-*")
	require.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(dir) })
	return dir
}

// testDBPath returns a temp SQLite database path.
func testDBPath(t *testing.T, name string) string {
	t.Helper()
	return filepath.Join(testDir(t), name+".db")
}

// newTestStore opens a fresh store on a temp database.
func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()
	st, err := sqlite.New(store.ConnectionArgs{URL: testDBPath(t, "graph")})
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	return st
}

// newStoreAt opens a store on an explicit database path, without
// registering cleanup. Callers manage Close themselves.
func newStoreAt(path string) (*sqlite.Store, error) {
	return sqlite.New(store.ConnectionArgs{URL: path})
}

// newProcess builds a Process vertex with a pid annotation.
func newProcess(pid string) *core.Vertex {
	v := core.NewVertex("Process")
	v.AddAnnotation("pid", pid)
	return v
}

// insertChain inserts Process vertices for each pid, connected in order
// by WasTriggeredBy edges (pids[0] -> pids[1] -> ...), and returns the
// assigned vertex identifiers keyed by pid.
func insertChain(t *testing.T, st *sqlite.Store, pids ...string) map[string]int64 {
	t.Helper()
	ctx := context.Background()

	var prev *core.Vertex
	for _, pid := range pids {
		v := newProcess(pid)
		require.True(t, st.PutVertex(ctx, v))
		if prev != nil {
			require.True(t, st.PutEdge(ctx, core.NewEdge("WasTriggeredBy", prev, v)))
		}
		prev = v
	}

	ids := make(map[string]int64, len(pids))
	for _, pid := range pids {
		ids[pid] = vertexID(t, st, "pid:"+pid)
	}
	return ids
}

// vertexID resolves the store identifier of the single vertex matching
// the expression.
func vertexID(t *testing.T, st *sqlite.Store, expression string) int64 {
	t.Helper()
	g, err := st.GetVertices(context.Background(), expression)
	require.NoError(t, err)
	require.Equal(t, 1, g.VertexCount(), "expression %q must match exactly one vertex", expression)
	id, ok := g.Vertices()[0].ID()
	require.True(t, ok)
	return id
}

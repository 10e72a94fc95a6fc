// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Provgraph Contributors

package sqlite_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/provgraph-dev/provgraph/internal/core"
	"github.com/provgraph-dev/provgraph/internal/store"
	pgerr "github.com/provgraph-dev/provgraph/pkg/errors"
)

func TestGetVerticesInvalidExpression(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	tests := []string{"nocolon", "!!!:value"}
	for _, expr := range tests {
		t.Run(expr, func(t *testing.T) {
			_, err := st.GetVertices(ctx, expr)
			require.Error(t, err)
			assert.ErrorIs(t, err, store.ErrInvalidInput)
			assert.True(t, pgerr.IsInvalidInput(err))
		})
	}
}

func TestGetVerticesNoMatch(t *testing.T) {
	st := newTestStore(t)
	insertChain(t, st, "1")

	g, err := st.GetVertices(context.Background(), "pid:999")
	require.NoError(t, err)
	assert.Equal(t, 0, g.VertexCount())
}

func TestGetVerticesMultipleMatches(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	for _, name := range []string{"sshd", "cron"} {
		v := core.NewVertex("Process")
		v.AddAnnotation("os", "linux")
		v.AddAnnotation("name", name)
		require.True(t, st.PutVertex(ctx, v))
	}

	g, err := st.GetVertices(ctx, "os:linux")
	require.NoError(t, err)
	assert.Equal(t, 2, g.VertexCount())
}

func TestGetVertexByIDNotFound(t *testing.T) {
	st := newTestStore(t)

	_, err := st.GetVertexByID(context.Background(), 17)
	require.Error(t, err)
	assert.ErrorIs(t, err, store.ErrNotFound)
	assert.True(t, pgerr.IsNotFound(err))
}

func TestGetVertexByHash(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	v := newProcess("4")
	require.True(t, st.PutVertex(ctx, v))

	got, err := st.GetVertexByHash(ctx, v.ContentHash())
	require.NoError(t, err)
	assert.Equal(t, "4", got.Annotation("pid"))

	_, err = st.GetVertexByHash(ctx, v.ContentHash()+1)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestGetVertexByHashCollisionLowestIDWins(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	// Identical content twice: two rows, one hash. The point lookup
	// must break the tie deterministically on the lowest identifier.
	require.True(t, st.PutVertex(ctx, newProcess("4")))
	require.True(t, st.PutVertex(ctx, newProcess("4")))

	got, err := st.GetVertexByHash(ctx, newProcess("4").ContentHash())
	require.NoError(t, err)
	id, ok := got.ID()
	require.True(t, ok)
	assert.Equal(t, int64(1), id)
}

func TestGetEdgesUnresolvedPredicate(t *testing.T) {
	st := newTestStore(t)
	insertChain(t, st, "1", "2")

	_, err := st.GetEdges(context.Background(), "pid", "999", "pid", "2")
	require.Error(t, err)
	assert.ErrorIs(t, err, store.ErrNotFound)

	_, err = st.GetEdges(context.Background(), "pid", "1", "pid", "999")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestGetEdgesReturnsEndpointsAndEdges(t *testing.T) {
	st := newTestStore(t)
	ids := insertChain(t, st, "1", "2", "3")

	g, err := st.GetEdgesByID(context.Background(), ids["1"], ids["2"])
	require.NoError(t, err)
	assert.Equal(t, 2, g.VertexCount())
	assert.Equal(t, 1, g.EdgeCount())

	// Both endpoint vertices are resolvable by identifier after commit.
	_, ok := g.VertexByID(ids["1"])
	assert.True(t, ok)
	_, ok = g.VertexByID(ids["2"])
	assert.True(t, ok)
}

func TestGetEdgesNoConnectingEdge(t *testing.T) {
	st := newTestStore(t)
	ids := insertChain(t, st, "1", "2", "3")

	// Vertices 1 and 3 exist but are not directly connected: the result
	// still carries both endpoints, with an empty edge set.
	g, err := st.GetEdgesByID(context.Background(), ids["1"], ids["3"])
	require.NoError(t, err)
	assert.Equal(t, 2, g.VertexCount())
	assert.Equal(t, 0, g.EdgeCount())
}

func TestGetEdgesAmbiguousPredicateLowestIDWins(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	// Two distinct vertices share os:linux; the predicate must resolve
	// to the one inserted first (lowest vertexId).
	a := core.NewVertex("Process")
	a.AddAnnotation("os", "linux")
	a.AddAnnotation("pid", "1")
	b := core.NewVertex("Process")
	b.AddAnnotation("os", "linux")
	b.AddAnnotation("pid", "2")
	require.True(t, st.PutVertex(ctx, a))
	require.True(t, st.PutVertex(ctx, b))
	require.True(t, st.PutEdge(ctx, core.NewEdge("WasTriggeredBy", a, b)))

	g, err := st.GetEdges(ctx, "os", "linux", "pid", "2")
	require.NoError(t, err)
	require.Equal(t, 1, g.EdgeCount())
	assert.Equal(t, a.Identity(), g.Edges()[0].SourceHash())
}

func TestWritesVisibleToReadsWithoutExplicitFlush(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	require.True(t, st.PutVertex(ctx, newProcess("4")))

	// Reads establish their own consistency point.
	g, err := st.GetVertices(ctx, "pid:4")
	require.NoError(t, err)
	assert.Equal(t, 1, g.VertexCount())
}

func TestCloseFlushesPendingWrites(t *testing.T) {
	path := testDBPath(t, "flush")
	ctx := context.Background()

	first, err := newStoreAt(path)
	require.NoError(t, err)
	require.True(t, first.PutVertex(ctx, newProcess("4")))
	require.NoError(t, first.Close())

	second, err := newStoreAt(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = second.Close() })

	g, err := second.GetVertices(ctx, "pid:4")
	require.NoError(t, err)
	assert.Equal(t, 1, g.VertexCount())
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Provgraph Contributors

package ingest_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/provgraph-dev/provgraph/internal/core"
	"github.com/provgraph-dev/provgraph/internal/ingest"
)

func TestVertexCacheRoundTrip(t *testing.T) {
	c := ingest.NewVertexCache(0)
	id := uuid.New()

	v := core.NewVertex("Process")
	v.AddAnnotation("pid", "4")
	require.NoError(t, c.Put(id, v))

	got, ok := c.Get(id)
	require.True(t, ok)
	assert.Equal(t, "Process", got.Type())
	assert.Equal(t, "4", got.Annotation("pid"))
	assert.Equal(t, v.ContentHash(), got.ContentHash())
}

func TestVertexCacheMiss(t *testing.T) {
	c := ingest.NewVertexCache(0)

	_, ok := c.Get(uuid.New())
	assert.False(t, ok)
}

func TestVertexCacheOverwrite(t *testing.T) {
	c := ingest.NewVertexCache(0)
	id := uuid.New()

	first := core.NewVertex("Process")
	first.AddAnnotation("pid", "4")
	require.NoError(t, c.Put(id, first))

	second := core.NewVertex("Process")
	second.AddAnnotation("pid", "5")
	require.NoError(t, c.Put(id, second))

	got, ok := c.Get(id)
	require.True(t, ok)
	assert.Equal(t, "5", got.Annotation("pid"))
}

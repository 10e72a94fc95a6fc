// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Provgraph Contributors

package core_test

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/provgraph-dev/provgraph/internal/core"
)

func TestContentHashStability(t *testing.T) {
	v1 := core.NewVertex("Process")
	v1.AddAnnotation("pid", "4")
	v1.AddAnnotation("name", "sshd")

	// Same content, different insertion order.
	v2 := core.NewVertex("Process")
	v2.AddAnnotation("name", "sshd")
	v2.AddAnnotation("pid", "4")

	assert.Equal(t, v1.ContentHash(), v2.ContentHash())

	v3 := core.NewVertex("Process")
	v3.AddAnnotation("pid", "5")
	v3.AddAnnotation("name", "sshd")
	assert.NotEqual(t, v1.ContentHash(), v3.ContentHash())
}

func TestContentHashIgnoresReservedKeys(t *testing.T) {
	v := core.NewVertex("Artifact")
	v.AddAnnotation("path", "/etc/passwd")
	before := v.ContentHash()

	// Store-assigned annotations appear after retrieval; the content
	// digest must not move.
	v.AddAnnotation(core.IDKey, "17")
	v.AddAnnotation(core.HashKey, strconv.FormatInt(before, 10))

	assert.Equal(t, before, v.ContentHash())
}

func TestIdentityPrefersStoredHash(t *testing.T) {
	v := core.NewVertex("Artifact")
	v.AddAnnotation("path", "/tmp/x")
	require.Equal(t, v.ContentHash(), v.Identity())

	v.AddAnnotation(core.HashKey, "12345")
	assert.Equal(t, int64(12345), v.Identity())
}

func TestVertexID(t *testing.T) {
	v := core.NewVertex("Process")
	_, ok := v.ID()
	assert.False(t, ok)

	v.AddAnnotation(core.IDKey, "42")
	id, ok := v.ID()
	require.True(t, ok)
	assert.Equal(t, int64(42), id)

	v.AddAnnotation(core.IDKey, "not-a-number")
	_, ok = v.ID()
	assert.False(t, ok)
}

func TestAnnotationsReturnsCopy(t *testing.T) {
	v := core.NewVertex("Process")
	v.AddAnnotation("pid", "4")

	m := v.Annotations()
	m["pid"] = "999"
	assert.Equal(t, "4", v.Annotation("pid"))
}

func TestVertexFromAnnotations(t *testing.T) {
	src := map[string]string{"type": "Process", "pid": "4"}
	v := core.VertexFromAnnotations(src)
	src["pid"] = "changed"

	assert.Equal(t, "Process", v.Type())
	assert.Equal(t, "4", v.Annotation("pid"))
}

func TestEdgeHashCoversEndpoints(t *testing.T) {
	a := core.NewVertex("Process")
	a.AddAnnotation("pid", "1")
	b := core.NewVertex("Process")
	b.AddAnnotation("pid", "2")

	e1 := core.NewEdge("WasTriggeredBy", a, b)
	e2 := core.NewEdge("WasTriggeredBy", a, b)
	assert.Equal(t, e1.ContentHash(), e2.ContentHash())
	assert.Equal(t, a.Identity(), e1.SourceHash())
	assert.Equal(t, b.Identity(), e1.DestinationHash())

	// Reversing the endpoints is a different edge.
	e3 := core.NewEdge("WasTriggeredBy", b, a)
	assert.NotEqual(t, e1.ContentHash(), e3.ContentHash())
}

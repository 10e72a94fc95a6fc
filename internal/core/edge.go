// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Provgraph Contributors

package core

import "strconv"

// Edge is a directed provenance edge. Endpoints are referenced by vertex
// content hash, not by live vertex pointers, so an edge rehydrated from
// storage needs no vertex objects in memory to be complete.
type Edge struct {
	annotations map[string]string
	srcHash     int64
	dstHash     int64
}

// NewEdge creates an edge from src to dst, capturing both endpoint
// hashes at construction time.
func NewEdge(edgeType string, src, dst *Vertex) *Edge {
	return EdgeBetweenHashes(edgeType, src.Identity(), dst.Identity())
}

// EdgeBetweenHashes creates an edge between two vertices known only by
// their content hashes.
func EdgeBetweenHashes(edgeType string, srcHash, dstHash int64) *Edge {
	e := &Edge{
		annotations: make(map[string]string),
		srcHash:     srcHash,
		dstHash:     dstHash,
	}
	if edgeType != "" {
		e.annotations[TypeKey] = edgeType
	}
	return e
}

// Type returns the edge type tag.
func (e *Edge) Type() string {
	return e.annotations[TypeKey]
}

// AddAnnotation sets a single annotation. Empty keys are ignored.
func (e *Edge) AddAnnotation(key, value string) {
	if key == "" {
		return
	}
	e.annotations[key] = value
}

// Annotation returns the value for key, or the empty string if absent.
func (e *Edge) Annotation(key string) string {
	return e.annotations[key]
}

// Annotations returns a copy of the annotation map.
func (e *Edge) Annotations() map[string]string {
	out := make(map[string]string, len(e.annotations))
	for k, val := range e.annotations {
		out[k] = val
	}
	return out
}

// SourceHash returns the content hash of the source vertex.
func (e *Edge) SourceHash() int64 {
	return e.srcHash
}

// DestinationHash returns the content hash of the destination vertex.
func (e *Edge) DestinationHash() int64 {
	return e.dstHash
}

// ContentHash computes the content digest over the type tag, the
// non-reserved annotations, and both endpoint hashes.
func (e *Edge) ContentHash() int64 {
	return contentHash(e.Type(), e.annotations, e.srcHash, e.dstHash)
}

// Identity returns the hash the store knows this edge by, preferring the
// persisted hash annotation when the edge was rehydrated from storage.
func (e *Edge) Identity() int64 {
	if raw, ok := e.annotations[HashKey]; ok {
		if h, err := strconv.ParseInt(raw, 10, 64); err == nil {
			return h
		}
	}
	return e.ContentHash()
}

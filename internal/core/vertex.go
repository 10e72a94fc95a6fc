// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Provgraph Contributors

package core

import "strconv"

// Reserved annotation keys. These are assigned by the store and must not
// be supplied by producers; insertion skips them when widening the schema.
const (
	TypeKey            = "type"
	IDKey              = "vertexId"
	HashKey            = "hash"
	SourceHashKey      = "srcVertexHash"
	DestinationHashKey = "dstVertexHash"
)

// Vertex is a provenance graph node: a type tag plus a flat map of
// string-valued annotations. The store adds the vertexId and hash
// annotations after insertion; until then a vertex is identified purely
// by its content hash.
type Vertex struct {
	annotations map[string]string
}

// NewVertex creates a vertex with the given type tag and no annotations.
func NewVertex(vertexType string) *Vertex {
	v := &Vertex{annotations: make(map[string]string)}
	if vertexType != "" {
		v.annotations[TypeKey] = vertexType
	}
	return v
}

// VertexFromAnnotations creates a vertex from a pre-built annotation map.
// The map is copied; the caller keeps ownership of its argument.
func VertexFromAnnotations(annotations map[string]string) *Vertex {
	v := &Vertex{annotations: make(map[string]string, len(annotations))}
	for k, val := range annotations {
		v.annotations[k] = val
	}
	return v
}

// Type returns the vertex type tag.
func (v *Vertex) Type() string {
	return v.annotations[TypeKey]
}

// AddAnnotation sets a single annotation. Empty keys are ignored.
func (v *Vertex) AddAnnotation(key, value string) {
	if key == "" {
		return
	}
	v.annotations[key] = value
}

// Annotation returns the value for key, or the empty string if absent.
func (v *Vertex) Annotation(key string) string {
	return v.annotations[key]
}

// Annotations returns a copy of the annotation map.
func (v *Vertex) Annotations() map[string]string {
	out := make(map[string]string, len(v.annotations))
	for k, val := range v.annotations {
		out[k] = val
	}
	return out
}

// ID returns the store-assigned vertex identifier, if present.
func (v *Vertex) ID() (int64, bool) {
	raw, ok := v.annotations[IDKey]
	if !ok {
		return 0, false
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

// ContentHash computes the content digest over the type tag and all
// non-reserved annotations. Identical content always yields the same
// value, across processes and runs.
func (v *Vertex) ContentHash() int64 {
	return contentHash(v.Type(), v.annotations)
}

// Identity returns the hash the store knows this vertex by: the persisted
// hash annotation when the vertex was rehydrated from storage, the
// computed content hash otherwise.
func (v *Vertex) Identity() int64 {
	if raw, ok := v.annotations[HashKey]; ok {
		if h, err := strconv.ParseInt(raw, 10, 64); err == nil {
			return h
		}
	}
	return v.ContentHash()
}

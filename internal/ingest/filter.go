// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Provgraph Contributors

package ingest

import "github.com/provgraph-dev/provgraph/internal/core"

// Filter interposes between a reporter and storage, deciding per entity
// whether it reaches the store. Filters are stateful: an edge decision
// may depend on what the filter saw earlier on the stream.
type Filter interface {
	AdmitVertex(v *core.Vertex) bool
	AdmitEdge(e *core.Edge) bool
}

// Chain applies filters in order; the first rejection wins.
type Chain []Filter

func (c Chain) AdmitVertex(v *core.Vertex) bool {
	for _, f := range c {
		if !f.AdmitVertex(v) {
			return false
		}
	}
	return true
}

func (c Chain) AdmitEdge(e *core.Edge) bool {
	for _, f := range c {
		if !f.AdmitEdge(e) {
			return false
		}
	}
	return true
}

// TypeFilter admits only configured vertex and edge types. It tracks
// the identities of admitted vertices so that an edge is dropped when
// either endpoint was filtered out, keeping the stored graph closed
// under edge endpoints.
type TypeFilter struct {
	vertexTypes map[string]struct{}
	edgeTypes   map[string]struct{}
	admitted    map[int64]struct{}
}

// NewTypeFilter builds a filter from allow-lists of type tags. An empty
// (or nil) list admits every type on that side.
func NewTypeFilter(vertexTypes, edgeTypes []string) *TypeFilter {
	return &TypeFilter{
		vertexTypes: typeSet(vertexTypes),
		edgeTypes:   typeSet(edgeTypes),
		admitted:    make(map[int64]struct{}),
	}
}

func (f *TypeFilter) AdmitVertex(v *core.Vertex) bool {
	if v == nil {
		return false
	}
	if f.vertexTypes != nil {
		if _, ok := f.vertexTypes[v.Type()]; !ok {
			return false
		}
	}
	f.admitted[v.Identity()] = struct{}{}
	return true
}

func (f *TypeFilter) AdmitEdge(e *core.Edge) bool {
	if e == nil {
		return false
	}
	if f.edgeTypes != nil {
		if _, ok := f.edgeTypes[e.Type()]; !ok {
			return false
		}
	}
	if _, ok := f.admitted[e.SourceHash()]; !ok {
		return false
	}
	if _, ok := f.admitted[e.DestinationHash()]; !ok {
		return false
	}
	return true
}

func typeSet(types []string) map[string]struct{} {
	if len(types) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(types))
	for _, t := range types {
		set[t] = struct{}{}
	}
	return set
}

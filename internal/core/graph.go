// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Provgraph Contributors

package core

import "sort"

// Graph is an in-memory set of vertices and edges. Vertices are unique
// by identity hash, edges by edge identity. Edges may be added whose
// endpoints are absent from the same graph; the two sets are not
// co-validated. CommitIndex must run before the graph is consumed.
type Graph struct {
	vertices map[int64]*Vertex
	edges    map[int64]*Edge

	// byID is built by CommitIndex from the vertexId annotations.
	byID map[int64]*Vertex
}

// NewGraph creates an empty graph.
func NewGraph() *Graph {
	return &Graph{
		vertices: make(map[int64]*Vertex),
		edges:    make(map[int64]*Edge),
	}
}

// PutVertex adds a vertex. When two distinct contents collide on the
// same identity hash, the first one added wins.
func (g *Graph) PutVertex(v *Vertex) {
	if v == nil {
		return
	}
	id := v.Identity()
	if _, ok := g.vertices[id]; !ok {
		g.vertices[id] = v
	}
}

// PutEdge adds an edge, first-added-wins on identity collision.
func (g *Graph) PutEdge(e *Edge) {
	if e == nil {
		return
	}
	id := e.Identity()
	if _, ok := g.edges[id]; !ok {
		g.edges[id] = e
	}
}

// VertexCount returns the number of distinct vertices.
func (g *Graph) VertexCount() int {
	return len(g.vertices)
}

// EdgeCount returns the number of distinct edges.
func (g *Graph) EdgeCount() int {
	return len(g.edges)
}

// Vertices returns the vertex set in deterministic (identity hash) order.
func (g *Graph) Vertices() []*Vertex {
	out := make([]*Vertex, 0, len(g.vertices))
	for _, v := range g.vertices {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Identity() < out[j].Identity() })
	return out
}

// Edges returns the edge set in deterministic (identity hash) order.
func (g *Graph) Edges() []*Edge {
	out := make([]*Edge, 0, len(g.edges))
	for _, e := range g.edges {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Identity() < out[j].Identity() })
	return out
}

// HasVertex reports whether a vertex with the given identity hash is present.
func (g *Graph) HasVertex(hash int64) bool {
	_, ok := g.vertices[hash]
	return ok
}

// Union composes two graphs into a new one holding the set union of both
// vertex sets and both edge sets. Either argument may be nil.
func Union(a, b *Graph) *Graph {
	out := NewGraph()
	for _, g := range []*Graph{a, b} {
		if g == nil {
			continue
		}
		for id, v := range g.vertices {
			if _, ok := out.vertices[id]; !ok {
				out.vertices[id] = v
			}
		}
		for id, e := range g.edges {
			if _, ok := out.edges[id]; !ok {
				out.edges[id] = e
			}
		}
	}
	return out
}

// CommitIndex finalizes the graph for read access, building the
// vertexId lookup index. It must be called after the last mutation and
// before VertexByID.
func (g *Graph) CommitIndex() {
	g.byID = make(map[int64]*Vertex, len(g.vertices))
	for _, v := range g.vertices {
		if id, ok := v.ID(); ok {
			g.byID[id] = v
		}
	}
}

// VertexByID returns the vertex carrying the given store identifier.
// Only valid after CommitIndex.
func (g *Graph) VertexByID(id int64) (*Vertex, bool) {
	v, ok := g.byID[id]
	return v, ok
}

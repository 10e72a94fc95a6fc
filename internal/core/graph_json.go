// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Provgraph Contributors

package core

import (
	"encoding/json"
	"strconv"
)

// MarshalJSON renders the graph in its wire form: vertices and edges as
// flat annotation maps, with edge endpoint hashes materialized as
// annotations. Both lists are ordered by identity hash.
func (g *Graph) MarshalJSON() ([]byte, error) {
	out := struct {
		Vertices []map[string]string `json:"vertices"`
		Edges    []map[string]string `json:"edges"`
	}{
		Vertices: make([]map[string]string, 0, g.VertexCount()),
		Edges:    make([]map[string]string, 0, g.EdgeCount()),
	}
	for _, v := range g.Vertices() {
		out.Vertices = append(out.Vertices, v.Annotations())
	}
	for _, e := range g.Edges() {
		annotations := e.Annotations()
		annotations[SourceHashKey] = strconv.FormatInt(e.SourceHash(), 10)
		annotations[DestinationHashKey] = strconv.FormatInt(e.DestinationHash(), 10)
		out.Edges = append(out.Edges, annotations)
	}
	return json.Marshal(out)
}

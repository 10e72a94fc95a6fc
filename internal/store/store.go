// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Provgraph Contributors

package store

import (
	"context"

	"github.com/provgraph-dev/provgraph/internal/core"
)

// Storage is a provenance graph store: a single-writer sink for vertices
// and edges plus the lineage/path query surface over the persisted graph.
//
// Implementations are not internally synchronized. Insertion and reads
// must be serialized by the caller; every read operation establishes its
// own consistency point (pending writes become visible) before executing.
type Storage interface {
	// PutVertex persists a vertex, assigning it the next sequential
	// identifier. Insertion is fire-and-forget: failures are logged, not
	// returned, and a true result does not guarantee durability.
	PutVertex(ctx context.Context, v *core.Vertex) bool

	// PutEdge persists an edge along with both endpoint hashes captured
	// at insertion time. Same weak durability contract as PutVertex.
	PutEdge(ctx context.Context, e *core.Edge) bool

	// GetVertices returns the graph of all vertices matching a single
	// "key:value" equality expression.
	GetVertices(ctx context.Context, expression string) (*core.Graph, error)

	// GetVertexByID returns the vertex with the given store identifier,
	// or an error wrapping ErrNotFound.
	GetVertexByID(ctx context.Context, id int64) (*core.Vertex, error)

	// GetVertexByHash returns the first vertex with the given content
	// hash, or an error wrapping ErrNotFound.
	GetVertexByHash(ctx context.Context, hash int64) (*core.Vertex, error)

	// GetEdges resolves one vertex per endpoint predicate (lowest
	// vertexId wins when a predicate is ambiguous) and returns both
	// endpoints plus every edge connecting them, matched on the
	// persisted endpoint hashes.
	GetEdges(ctx context.Context, srcKey, srcValue, dstKey, dstValue string) (*core.Graph, error)

	// GetEdgesByID is GetEdges keyed on the reserved vertexId annotation.
	GetEdgesByID(ctx context.Context, srcID, dstID int64) (*core.Graph, error)

	// GetNeighborVertexIDs returns the identifiers of the vertices
	// directly connected to id in the given direction, resolved through
	// hash-based edge endpoints.
	GetNeighborVertexIDs(ctx context.Context, id int64, direction core.Direction) ([]int64, error)

	// GetLineage expands the neighborhood of srcID for up to maxDepth
	// dequeue rounds in one direction, skipping terminatingID entirely.
	GetLineage(ctx context.Context, srcID int64, maxDepth int, direction core.Direction, terminatingID int64) (*core.Graph, error)

	// GetAllPaths enumerates every simple path from srcID to dstID of at
	// most maxPathLength edges and returns their union. An empty graph
	// means no path was found.
	GetAllPaths(ctx context.Context, srcID, dstID int64, maxPathLength int) (*core.Graph, error)

	// Close flushes pending writes and releases the underlying connection.
	Close() error
}

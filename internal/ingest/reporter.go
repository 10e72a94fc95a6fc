// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Provgraph Contributors

package ingest

import (
	"context"

	"github.com/provgraph-dev/provgraph/internal/core"
)

// Sink receives the vertices and edges a reporter produces. A storage
// backend satisfies it directly; the boolean return mirrors the store's
// fire-and-forget insertion contract.
type Sink interface {
	PutVertex(ctx context.Context, v *core.Vertex) bool
	PutEdge(ctx context.Context, e *core.Edge) bool
}

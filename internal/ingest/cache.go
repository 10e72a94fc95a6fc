// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Provgraph Contributors

package ingest

import (
	"encoding/json"

	"github.com/coocood/freecache"
	"github.com/google/uuid"

	"github.com/provgraph-dev/provgraph/internal/core"
	pgerr "github.com/provgraph-dev/provgraph/pkg/errors"
)

// DefaultCacheBytes is the default capacity of the vertex-resolution
// cache. Eviction under pressure degrades edge resolution (evicted
// endpoints make later edges unresolvable), so size this to the
// expected number of live entities.
const DefaultCacheBytes = 64 * 1024 * 1024

// VertexCache maps producer-side event identifiers to the vertices
// already seen on the stream. It is a bounded byte cache: a miss means
// either "never seen" or "evicted", and both are treated as unresolved.
type VertexCache struct {
	cache *freecache.Cache
}

// NewVertexCache creates a cache holding up to sizeBytes of encoded
// vertices. Non-positive sizes fall back to DefaultCacheBytes.
func NewVertexCache(sizeBytes int) *VertexCache {
	if sizeBytes <= 0 {
		sizeBytes = DefaultCacheBytes
	}
	return &VertexCache{cache: freecache.NewCache(sizeBytes)}
}

// Put records the vertex under the event identifier.
func (c *VertexCache) Put(id uuid.UUID, v *core.Vertex) error {
	encoded, err := json.Marshal(v.Annotations())
	if err != nil {
		return pgerr.Wrap(err, pgerr.CodeIngestCacheFailure, "encoding cached vertex")
	}
	if err := c.cache.Set(id[:], encoded, 0); err != nil {
		return pgerr.Wrap(err, pgerr.CodeIngestCacheFailure, "caching vertex",
			pgerr.Field("event_id", id.String()))
	}
	return nil
}

// Get resolves an event identifier to its vertex. The second return is
// false when the identifier was never cached or has been evicted.
func (c *VertexCache) Get(id uuid.UUID) (*core.Vertex, bool) {
	encoded, err := c.cache.Get(id[:])
	if err != nil {
		return nil, false
	}
	var annotations map[string]string
	if err := json.Unmarshal(encoded, &annotations); err != nil {
		return nil, false
	}
	return core.VertexFromAnnotations(annotations), true
}

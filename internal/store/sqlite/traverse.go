// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Provgraph Contributors

package sqlite

import (
	"context"
	"fmt"

	"github.com/provgraph-dev/provgraph/internal/core"
	"github.com/provgraph-dev/provgraph/internal/store"
	pgerr "github.com/provgraph-dev/provgraph/pkg/errors"
)

// GetNeighborVertexIDs returns the identifiers of the vertices directly
// connected to id in the given direction. Connectivity is resolved
// purely through content hashes: vertex -> hash -> edge endpoint hashes
// -> other endpoint hash -> vertex. The sequential vertexId is local to
// this store and never used as a join key.
func (s *Store) GetNeighborVertexIDs(ctx context.Context, id int64, direction core.Direction) ([]int64, error) {
	v, err := s.GetVertexByID(ctx, id)
	if err != nil {
		return nil, err
	}

	var matchCol, selectCol string
	switch direction {
	case core.DirectionDescendants:
		matchCol, selectCol = "srcVertexHash", "dstVertexHash"
	case core.DirectionAncestors:
		matchCol, selectCol = "dstVertexHash", "srcVertexHash"
	default:
		return nil, pgerr.Wrapf(store.ErrInvalidInput, pgerr.CodeStoreQueryInvalid,
			"unknown traversal direction %q", direction)
	}

	q := fmt.Sprintf(
		"SELECT vertexId FROM %s WHERE hash IN (SELECT %s FROM %s WHERE %s = ?) ORDER BY vertexId ASC",
		vertexTable, selectCol, edgeTable, matchCol)

	rows, err := s.db.QueryContext(ctx, q, v.Identity())
	if err != nil {
		return nil, pgerr.Wrap(err, pgerr.CodeStoreDatabaseFailure, "querying neighbors",
			pgerr.FieldVertexID(id))
	}
	defer rows.Close() //nolint:errcheck // error on read-path close is not actionable

	var neighbors []int64
	for rows.Next() {
		var nID int64
		if err := rows.Scan(&nID); err != nil {
			return nil, pgerr.Wrap(err, pgerr.CodeStoreDatabaseFailure, "scanning neighbor id")
		}
		neighbors = append(neighbors, nID)
	}
	if err := rows.Err(); err != nil {
		return nil, pgerr.Wrap(err, pgerr.CodeStoreDatabaseFailure, "iterating neighbor ids")
	}
	return neighbors, nil
}

// GetLineage expands the neighborhood of srcID in one direction,
// assembling the visited subgraph. maxDepth bounds the number of
// dequeue rounds, not the graph-theoretic depth: each round consumes
// exactly one vertex from the FIFO queue and enqueues all of its
// admitted neighbors. A neighbor equal to terminatingID is skipped
// entirely. There is no visited-set: cycles cause repeated work, and
// maxDepth is the only termination bound.
func (s *Store) GetLineage(ctx context.Context, srcID int64, maxDepth int, direction core.Direction, terminatingID int64) (*core.Graph, error) {
	src, err := s.GetVertexByID(ctx, srcID)
	if err != nil {
		return nil, err
	}

	result := core.NewGraph()
	if maxDepth == 0 {
		result.PutVertex(src)
		result.CommitIndex()
		return result, nil
	}

	queue := []*core.Vertex{src}
	for depth := 0; depth < maxDepth && len(queue) > 0; depth++ {
		node := queue[0]
		queue = queue[1:]
		result.PutVertex(node)

		nodeID, ok := node.ID()
		if !ok {
			return nil, pgerr.Errorf(pgerr.CodeStoreDatabaseFailure,
				"lineage vertex missing its identifier annotation")
		}

		neighbors, err := s.GetNeighborVertexIDs(ctx, nodeID, direction)
		if err != nil {
			return nil, err
		}
		for _, nID := range neighbors {
			if nID == terminatingID {
				continue
			}
			neighbor, err := s.GetVertexByID(ctx, nID)
			if err != nil {
				return nil, err
			}
			result.PutVertex(neighbor)

			var edges *core.Graph
			if direction == core.DirectionAncestors {
				edges, err = s.GetEdgesByID(ctx, nID, nodeID)
			} else {
				edges, err = s.GetEdgesByID(ctx, nodeID, nID)
			}
			if err != nil {
				return nil, err
			}
			result = core.Union(result, edges)
			queue = append(queue, neighbor)
		}
	}

	result.CommitIndex()
	return result, nil
}

// GetAllPaths enumerates every simple path from srcID to dstID of at
// most maxPathLength edges, descendant-ward, and returns the union of
// all per-path graphs. The search is an explicit-backtracking DFS whose
// cost is exponential in the number of paths; it is meant for small
// bounded explorations. An empty graph is the only "no path" signal.
func (s *Store) GetAllPaths(ctx context.Context, srcID, dstID int64, maxPathLength int) (*core.Graph, error) {
	if err := s.sync(); err != nil {
		return nil, err
	}

	visited := make(map[int64]struct{})
	path := make([]int64, 0, maxPathLength+1)
	var paths []*core.Graph
	if err := s.findPaths(ctx, srcID, dstID, maxPathLength, visited, &path, &paths); err != nil {
		return nil, err
	}

	result := core.NewGraph()
	for _, p := range paths {
		result = core.Union(result, p)
	}
	result.CommitIndex()
	return result, nil
}

func (s *Store) findPaths(ctx context.Context, current, dst int64, maxLen int, visited map[int64]struct{}, path *[]int64, paths *[]*core.Graph) error {
	// Budget check before entering: a path of n edges holds n+1 vertices.
	if len(*path) > maxLen {
		return nil
	}

	visited[current] = struct{}{}
	*path = append(*path, current)
	defer func() {
		// Backtrack so sibling branches may revisit this vertex.
		*path = (*path)[:len(*path)-1]
		delete(visited, current)
	}()

	if current == dst {
		pathGraph, err := s.materializePath(ctx, *path)
		if err != nil {
			return err
		}
		*paths = append(*paths, pathGraph)
		return nil
	}

	neighbors, err := s.GetNeighborVertexIDs(ctx, current, core.DirectionDescendants)
	if err != nil {
		return err
	}
	for _, nID := range neighbors {
		if _, seen := visited[nID]; seen {
			continue
		}
		if err := s.findPaths(ctx, nID, dst, maxLen, visited, path, paths); err != nil {
			return err
		}
	}
	return nil
}

// materializePath turns a completed vertexId path into a graph by
// unioning the connecting edges of each consecutive pair.
func (s *Store) materializePath(ctx context.Context, path []int64) (*core.Graph, error) {
	g := core.NewGraph()

	first, err := s.GetVertexByID(ctx, path[0])
	if err != nil {
		return nil, err
	}
	g.PutVertex(first)

	for i := 1; i < len(path); i++ {
		edges, err := s.GetEdgesByID(ctx, path[i-1], path[i])
		if err != nil {
			return nil, err
		}
		g = core.Union(g, edges)
	}
	return g, nil
}

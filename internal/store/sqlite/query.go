// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Provgraph Contributors

package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"github.com/provgraph-dev/provgraph/internal/core"
	"github.com/provgraph-dev/provgraph/internal/store"
	pgerr "github.com/provgraph-dev/provgraph/pkg/errors"
)

// GetVertices returns the graph of all vertices matching a single
// "key:value" equality expression. Matching rows are rehydrated with
// their stored vertexId and hash restored as annotations; absent or
// empty column values do not become annotations.
func (s *Store) GetVertices(ctx context.Context, expression string) (*core.Graph, error) {
	if err := s.sync(); err != nil {
		return nil, err
	}

	col, value, err := parseExpression(expression)
	if err != nil {
		return nil, err
	}

	q := fmt.Sprintf("SELECT * FROM %s WHERE %q = ?", vertexTable, col)
	rows, err := s.db.QueryContext(ctx, q, value)
	if err != nil {
		return nil, pgerr.Wrapf(err, pgerr.CodeStoreDatabaseFailure, "querying vertices by %s", col)
	}
	defer rows.Close() //nolint:errcheck // error on read-path close is not actionable

	graph := core.NewGraph()
	for rows.Next() {
		v, err := scanVertex(rows)
		if err != nil {
			return nil, err
		}
		graph.PutVertex(v)
	}
	if err := rows.Err(); err != nil {
		return nil, pgerr.Wrap(err, pgerr.CodeStoreDatabaseFailure, "iterating vertex rows")
	}

	graph.CommitIndex()
	return graph, nil
}

// GetVertexByID returns the vertex with the given store identifier.
func (s *Store) GetVertexByID(ctx context.Context, id int64) (*core.Vertex, error) {
	if err := s.sync(); err != nil {
		return nil, err
	}
	q := fmt.Sprintf("SELECT * FROM %s WHERE vertexId = ? LIMIT 1", vertexTable)
	return s.oneVertex(ctx, q, id)
}

// GetVertexByHash returns the vertex with the given content hash. When
// distinct contents collide on one hash, the lowest vertexId wins.
func (s *Store) GetVertexByHash(ctx context.Context, hash int64) (*core.Vertex, error) {
	if err := s.sync(); err != nil {
		return nil, err
	}
	q := fmt.Sprintf("SELECT * FROM %s WHERE hash = ? ORDER BY vertexId ASC LIMIT 1", vertexTable)
	return s.oneVertex(ctx, q, hash)
}

// GetEdges resolves one vertex per endpoint predicate and returns a
// graph holding both endpoints plus every edge whose persisted endpoint
// hashes match theirs. An ambiguous predicate resolves to the matching
// vertex with the lowest vertexId.
func (s *Store) GetEdges(ctx context.Context, srcKey, srcValue, dstKey, dstValue string) (*core.Graph, error) {
	if err := s.sync(); err != nil {
		return nil, err
	}

	src, err := s.firstVertexMatching(ctx, srcKey, srcValue)
	if err != nil {
		return nil, err
	}
	dst, err := s.firstVertexMatching(ctx, dstKey, dstValue)
	if err != nil {
		return nil, err
	}

	graph := core.NewGraph()
	graph.PutVertex(src)
	graph.PutVertex(dst)

	q := fmt.Sprintf("SELECT * FROM %s WHERE srcVertexHash = ? AND dstVertexHash = ?", edgeTable)
	rows, err := s.db.QueryContext(ctx, q, src.Identity(), dst.Identity())
	if err != nil {
		return nil, pgerr.Wrap(err, pgerr.CodeStoreDatabaseFailure, "querying edges by endpoint hashes")
	}
	defer rows.Close() //nolint:errcheck // error on read-path close is not actionable

	for rows.Next() {
		e, err := scanEdge(rows)
		if err != nil {
			return nil, err
		}
		graph.PutEdge(e)
	}
	if err := rows.Err(); err != nil {
		return nil, pgerr.Wrap(err, pgerr.CodeStoreDatabaseFailure, "iterating edge rows")
	}

	graph.CommitIndex()
	return graph, nil
}

// GetEdgesByID is GetEdges keyed on the reserved vertexId annotation.
func (s *Store) GetEdgesByID(ctx context.Context, srcID, dstID int64) (*core.Graph, error) {
	return s.GetEdges(ctx,
		core.IDKey, strconv.FormatInt(srcID, 10),
		core.IDKey, strconv.FormatInt(dstID, 10))
}

// firstVertexMatching resolves a single endpoint predicate, lowest
// vertexId first.
func (s *Store) firstVertexMatching(ctx context.Context, key, value string) (*core.Vertex, error) {
	col := sanitizeColumn(key)
	if col == "" {
		return nil, pgerr.Wrapf(store.ErrInvalidInput, pgerr.CodeStoreQueryInvalid,
			"predicate key %q sanitizes to nothing", key)
	}
	q := fmt.Sprintf("SELECT * FROM %s WHERE %q = ? ORDER BY vertexId ASC LIMIT 1", vertexTable, col)
	return s.oneVertex(ctx, q, value)
}

func (s *Store) oneVertex(ctx context.Context, query string, arg any) (*core.Vertex, error) {
	rows, err := s.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, pgerr.Wrap(err, pgerr.CodeStoreDatabaseFailure, "querying vertex")
	}
	defer rows.Close() //nolint:errcheck // error on read-path close is not actionable

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, pgerr.Wrap(err, pgerr.CodeStoreDatabaseFailure, "querying vertex")
		}
		return nil, pgerr.Wrapf(store.ErrNotFound, pgerr.CodeStoreVertexNotFound, "vertex %v", arg)
	}
	return scanVertex(rows)
}

// parseExpression splits a "key:value" equality expression and
// sanitizes the key into a usable column name.
func parseExpression(expression string) (col, value string, err error) {
	key, value, ok := strings.Cut(expression, ":")
	if !ok {
		return "", "", pgerr.Wrapf(store.ErrInvalidInput, pgerr.CodeStoreQueryInvalid,
			"expression %q: want key:value", expression)
	}
	col = sanitizeColumn(key)
	if col == "" {
		return "", "", pgerr.Wrapf(store.ErrInvalidInput, pgerr.CodeStoreQueryInvalid,
			"expression key %q sanitizes to nothing", key)
	}
	return col, value, nil
}

// scanVertex rehydrates the current row into a vertex. Every non-empty
// column becomes an annotation; vertexId and hash are stringified.
func scanVertex(rows *sql.Rows) (*core.Vertex, error) {
	annotations, err := scanAnnotations(rows)
	if err != nil {
		return nil, err
	}
	return core.VertexFromAnnotations(annotations), nil
}

// scanEdge rehydrates the current row into an edge, wiring the endpoint
// hashes from the persisted srcVertexHash/dstVertexHash columns.
func scanEdge(rows *sql.Rows) (*core.Edge, error) {
	annotations, err := scanAnnotations(rows)
	if err != nil {
		return nil, err
	}

	srcHash, err := strconv.ParseInt(annotations[core.SourceHashKey], 10, 64)
	if err != nil {
		return nil, pgerr.Wrap(err, pgerr.CodeStoreDatabaseFailure, "parsing edge srcVertexHash")
	}
	dstHash, err := strconv.ParseInt(annotations[core.DestinationHashKey], 10, 64)
	if err != nil {
		return nil, pgerr.Wrap(err, pgerr.CodeStoreDatabaseFailure, "parsing edge dstVertexHash")
	}

	e := core.EdgeBetweenHashes(annotations[core.TypeKey], srcHash, dstHash)
	for k, v := range annotations {
		e.AddAnnotation(k, v)
	}
	return e, nil
}

func scanAnnotations(rows *sql.Rows) (map[string]string, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, pgerr.Wrap(err, pgerr.CodeStoreDatabaseFailure, "reading row columns")
	}

	vals := make([]sql.NullString, len(cols))
	ptrs := make([]any, len(cols))
	for i := range vals {
		ptrs[i] = &vals[i]
	}
	if err := rows.Scan(ptrs...); err != nil {
		return nil, pgerr.Wrap(err, pgerr.CodeStoreDatabaseFailure, "scanning row")
	}

	annotations := make(map[string]string, len(cols))
	for i, col := range cols {
		if vals[i].Valid && vals[i].String != "" {
			annotations[col] = vals[i].String
		}
	}
	return annotations, nil
}

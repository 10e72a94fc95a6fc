// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Provgraph Contributors

package sqlite

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/provgraph-dev/provgraph/internal/core"
)

// PutVertex persists a vertex, widening the vertex table for any
// annotation key not seen before. Insertion is fire-and-forget: every
// failure past argument validation is logged and the call still reports
// success, so durability is observable only through the log.
func (s *Store) PutVertex(ctx context.Context, v *core.Vertex) bool {
	if v == nil {
		return false
	}

	cols := []string{"type", "hash"}
	args := []any{v.Type(), v.Identity()}

	for _, key := range annotationKeys(v.Annotations()) {
		col, ok := s.usableColumn(vertexTable, key)
		if !ok {
			continue
		}
		if err := s.ensureColumn(vertexTable, col); err != nil {
			s.logger.Error("widening vertex schema failed, dropping record",
				"key", key, "error", err)
			return true
		}
		cols = append(cols, col)
		args = append(args, sanitizeValue(v.Annotation(key)))
	}

	s.insertRow(ctx, vertexTable, cols, args)
	return true
}

// PutEdge persists an edge together with both endpoint hashes captured
// at insertion time. Same weak durability contract as PutVertex.
func (s *Store) PutEdge(ctx context.Context, e *core.Edge) bool {
	if e == nil {
		return false
	}

	cols := []string{"type", "hash", "srcVertexHash", "dstVertexHash"}
	args := []any{e.Type(), e.Identity(), e.SourceHash(), e.DestinationHash()}

	for _, key := range annotationKeys(e.Annotations()) {
		col, ok := s.usableColumn(edgeTable, key)
		if !ok {
			continue
		}
		if err := s.ensureColumn(edgeTable, col); err != nil {
			s.logger.Error("widening edge schema failed, dropping record",
				"key", key, "error", err)
			return true
		}
		cols = append(cols, col)
		args = append(args, sanitizeValue(e.Annotation(key)))
	}

	s.insertRow(ctx, edgeTable, cols, args)
	return true
}

// usableColumn sanitizes an annotation key and rejects keys that vanish
// under sanitization or collide with a fixed column.
func (s *Store) usableColumn(table, key string) (string, bool) {
	col := sanitizeColumn(key)
	if col == "" || reservedColumn(col) {
		s.logger.Warn("skipping unusable annotation key", "table", table, "key", key)
		return "", false
	}
	return col, true
}

func (s *Store) insertRow(ctx context.Context, table string, cols []string, args []any) {
	quoted := make([]string, len(cols))
	placeholders := make([]string, len(cols))
	for i, c := range cols {
		quoted[i] = fmt.Sprintf("%q", c)
		placeholders[i] = "?"
	}
	stmt := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		table, strings.Join(quoted, ", "), strings.Join(placeholders, ", "))

	tx, err := s.writer()
	if err != nil {
		s.logger.Error("starting write batch failed, dropping record", "table", table, "error", err)
		return
	}
	if _, err := tx.ExecContext(ctx, stmt, args...); err != nil {
		s.logger.Error("inserting row failed", "table", table, "error", err)
	}
}

// annotationKeys returns the non-reserved annotation keys in sorted
// order, for deterministic column ordering.
func annotationKeys(annotations map[string]string) []string {
	keys := make([]string, 0, len(annotations))
	for k := range annotations {
		switch k {
		case core.TypeKey, core.IDKey, core.HashKey, core.SourceHashKey, core.DestinationHashKey:
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

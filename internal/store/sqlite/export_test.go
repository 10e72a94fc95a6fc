// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Provgraph Contributors

package sqlite

// Exported for white-box tests in the sqlite_test package.

var (
	SanitizeColumn    = sanitizeColumn
	SanitizeValue     = sanitizeValue
	ReservedColumn    = reservedColumn
	IsDuplicateColumn = isDuplicateColumn
)

// EnsureColumn exposes schema widening for idempotence tests.
func (s *Store) EnsureColumn(table, column string) error {
	return s.ensureColumn(table, column)
}

// RegisteredColumns returns the number of annotation columns registered
// in process memory for a table.
func (s *Store) RegisteredColumns(table string) int {
	return len(s.registry(table))
}

const (
	VertexTable = vertexTable
	EdgeTable   = edgeTable
)

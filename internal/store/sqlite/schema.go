// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Provgraph Contributors

package sqlite

import (
	"fmt"
	"regexp"
	"strings"

	pgerr "github.com/provgraph-dev/provgraph/pkg/errors"
)

var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9]+`)

// sanitizeColumn strips every non-alphanumeric character from an
// annotation key. Keys originate from untrusted upstream event data and
// are interpolated into schema-altering statements, so only the stripped
// form is ever used as an identifier.
func sanitizeColumn(key string) string {
	return nonAlphanumeric.ReplaceAllString(key, "")
}

// sanitizeValue neutralizes single quotes in an annotation value before
// it is persisted.
func sanitizeValue(value string) string {
	return strings.ReplaceAll(value, "'", `"`)
}

// reservedColumn reports whether a sanitized key collides with one of
// the fixed columns and therefore cannot be used for an annotation.
func reservedColumn(column string) bool {
	switch strings.ToLower(column) {
	case "vertexid", "type", "hash", "srcvertexhash", "dstvertexhash":
		return true
	}
	return false
}

func (s *Store) registry(table string) map[string]struct{} {
	if table == edgeTable {
		return s.edgeColumns
	}
	return s.vertexColumns
}

// ensureColumn materializes a sanitized annotation key as a TEXT column
// on the given table. Idempotent: a key already registered in process
// memory is a no-op, and a "duplicate column name" error from SQLite
// (stale registry, e.g. a reopened database) is treated as success and
// registered locally. Any other failure means the caller must not
// persist the record that carried this key.
func (s *Store) ensureColumn(table, column string) error {
	reg := s.registry(table)
	if _, ok := reg[column]; ok {
		return nil
	}

	tx, err := s.writer()
	if err != nil {
		return err
	}

	stmt := fmt.Sprintf("ALTER TABLE %s ADD COLUMN %q TEXT", table, column)
	if _, err := tx.Exec(stmt); err != nil && !isDuplicateColumn(err) {
		return pgerr.Wrap(err, pgerr.CodeStoreSchemaAlterFailure, "adding column",
			pgerr.FieldTable(table), pgerr.FieldColumn(column))
	}

	reg[column] = struct{}{}
	return nil
}

func isDuplicateColumn(err error) bool {
	return err != nil && strings.Contains(err.Error(), "duplicate column name")
}

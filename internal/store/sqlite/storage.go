// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Provgraph Contributors

package sqlite

import (
	"database/sql"
	"log/slog"

	_ "github.com/mattn/go-sqlite3"

	"github.com/provgraph-dev/provgraph/internal/store"
	pgerr "github.com/provgraph-dev/provgraph/pkg/errors"
)

// Compile-time interface check.
var _ store.Storage = (*Store)(nil)

const (
	vertexTable = "vertex"
	edgeTable   = "edge"
)

// Store implements store.Storage backed by a single SQLite database.
//
// Writes accumulate in one open transaction; sync commits it, and every
// read operation syncs first so pending writes are visible. The store is
// single-writer and not safe for concurrent use: the column registries
// and the write transaction are mutated without locking, so callers must
// serialize all access.
type Store struct {
	db     *sql.DB
	tx     *sql.Tx // open write batch; nil when everything is flushed
	logger *slog.Logger

	// Annotation keys already materialized as columns, per table.
	// Seeded empty at open; grown monotonically for the store lifetime.
	vertexColumns map[string]struct{}
	edgeColumns   map[string]struct{}
}

// New opens (or creates) the SQLite database at args.URL and initialises
// the vertex and edge tables. Username and password are accepted for
// interface symmetry with server-based backends and ignored.
func New(args store.ConnectionArgs) (*Store, error) {
	db, err := sql.Open("sqlite3", args.URL+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, pgerr.Wrapf(err, pgerr.CodeStoreInitFailure, "opening graph db %s", args.URL)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, pgerr.Wrapf(err, pgerr.CodeStoreInitFailure, "pinging graph db %s", args.URL)
	}

	if err := migrate(db); err != nil {
		_ = db.Close()
		return nil, pgerr.Wrapf(err, pgerr.CodeStoreInitFailure, "migrating graph db %s", args.URL)
	}

	return &Store{
		db:            db,
		logger:        slog.Default(),
		vertexColumns: make(map[string]struct{}),
		edgeColumns:   make(map[string]struct{}),
	}, nil
}

func migrate(db *sql.DB) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS vertex (
	vertexId INTEGER PRIMARY KEY AUTOINCREMENT,
	type     TEXT NOT NULL,
	hash     INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_vertex_hash ON vertex(hash);

CREATE TABLE IF NOT EXISTS edge (
	vertexId      INTEGER PRIMARY KEY AUTOINCREMENT,
	type          TEXT NOT NULL,
	hash          INTEGER NOT NULL,
	srcVertexHash INTEGER NOT NULL,
	dstVertexHash INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_edge_src ON edge(srcVertexHash);
CREATE INDEX IF NOT EXISTS idx_edge_dst ON edge(dstVertexHash);
`
	_, err := db.Exec(ddl)
	return err
}

// writer returns the open write transaction, starting one if needed.
func (s *Store) writer() (*sql.Tx, error) {
	if s.tx != nil {
		return s.tx, nil
	}
	tx, err := s.db.Begin()
	if err != nil {
		return nil, pgerr.Wrap(err, pgerr.CodeStoreDatabaseFailure, "beginning write batch")
	}
	s.tx = tx
	return tx, nil
}

// sync is the consistency point: it commits the pending write batch so
// every row inserted so far is visible to subsequent reads. Reads call
// it first; with no pending writes it is a no-op.
func (s *Store) sync() error {
	if s.tx == nil {
		return nil
	}
	err := s.tx.Commit()
	s.tx = nil
	if err != nil {
		return pgerr.Wrap(err, pgerr.CodeStoreDatabaseFailure, "committing write batch")
	}
	return nil
}

// Close flushes pending writes and releases the database connection.
func (s *Store) Close() error {
	syncErr := s.sync()
	closeErr := s.db.Close()
	if syncErr != nil {
		return pgerr.Wrap(syncErr, pgerr.CodeStoreShutdownFailure, "flushing on shutdown")
	}
	if closeErr != nil {
		return pgerr.Wrap(closeErr, pgerr.CodeStoreShutdownFailure, "closing graph db")
	}
	return nil
}

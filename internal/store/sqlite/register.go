// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Provgraph Contributors

package sqlite

import "github.com/provgraph-dev/provgraph/internal/store"

func init() {
	store.RegisterBackend("sqlite3", func(args store.ConnectionArgs) (store.Storage, error) {
		return New(args)
	})
}

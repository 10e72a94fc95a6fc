// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Provgraph Contributors

package core

import (
	"encoding/binary"
	"hash/fnv"
	"sort"
)

// contentHash digests a type tag, the sorted non-reserved annotation
// entries, and any extra integer components (edge endpoint hashes) into
// a single int64. FNV-64a keeps the digest stable across processes; it
// is a dedup signal and a join key, not a collision-free identity.
func contentHash(typeTag string, annotations map[string]string, extra ...int64) int64 {
	keys := make([]string, 0, len(annotations))
	for k := range annotations {
		if reservedKey(k) {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	h := fnv.New64a()
	h.Write([]byte(typeTag))
	h.Write([]byte{0})
	for _, k := range keys {
		h.Write([]byte(k))
		h.Write([]byte{0})
		h.Write([]byte(annotations[k]))
		h.Write([]byte{0})
	}
	var buf [8]byte
	for _, x := range extra {
		binary.LittleEndian.PutUint64(buf[:], uint64(x))
		h.Write(buf[:])
	}
	return int64(h.Sum64())
}

// reservedKey reports whether key is store-assigned and therefore
// excluded from content hashing; hashing them would make the digest of a
// rehydrated entity diverge from the digest computed at insertion.
func reservedKey(key string) bool {
	switch key {
	case TypeKey, IDKey, HashKey, SourceHashKey, DestinationHashKey:
		return true
	}
	return false
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Provgraph Contributors

package core

import (
	"fmt"
	"strings"
)

// Direction selects which edge orientation a traversal follows. For an
// edge A->B, B is a descendant neighbor of A and A is an ancestor
// neighbor of B.
type Direction string

const (
	DirectionAncestors   Direction = "ancestors"
	DirectionDescendants Direction = "descendants"
)

// ParseDirection resolves a direction from any non-empty prefix of
// "ancestors" or "descendants", case-insensitively ("a", "anc", "desc").
func ParseDirection(s string) (Direction, error) {
	in := strings.ToLower(strings.TrimSpace(s))
	if in == "" {
		return "", fmt.Errorf("empty traversal direction")
	}
	switch {
	case strings.HasPrefix(string(DirectionAncestors), in):
		return DirectionAncestors, nil
	case strings.HasPrefix(string(DirectionDescendants), in):
		return DirectionDescendants, nil
	}
	return "", fmt.Errorf("unknown traversal direction %q", s)
}

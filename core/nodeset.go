// SPDX-License-Identifier: MIT

package core

import "sort"

// NodeSet is a set of vertex IDs. The zero value is not usable; use NewNodeSet.
type NodeSet map[string]struct{}

// NewNodeSet returns a set holding ids.
func NewNodeSet(ids ...string) NodeSet {
	s := make(NodeSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}

	return s
}

// Add inserts id and reports whether it was absent before.
func (s NodeSet) Add(id string) bool {
	if _, ok := s[id]; ok {
		return false
	}
	s[id] = struct{}{}

	return true
}

// Has reports membership.
func (s NodeSet) Has(id string) bool {
	_, ok := s[id]

	return ok
}

// Len returns the number of members.
func (s NodeSet) Len() int { return len(s) }

// Sorted returns the members in ascending order.
func (s NodeSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for id := range s {
		out = append(out, id)
	}
	sort.Strings(out)

	return out
}

// Clone returns an independent copy.
func (s NodeSet) Clone() NodeSet {
	out := make(NodeSet, len(s))
	for id := range s {
		out[id] = struct{}{}
	}

	return out
}

// Copyright (c) 2026 Vanlife. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package van owns the rentable van catalogue.

Architecture:

  - Model: [Van] and its [Type] enum, shared with the web frontend's API client.
  - Repository: read-only access to core.van (vans are never mutated through the API).
  - Service: resolves stored image references to browser-loadable URLs.
  - Handler: public catalogue routes and host-scoped listing routes.
*/
package van

import "slices"

// # Van Types

// Type classifies a van. The set is closed.
type Type string

const (
	TypeSimple Type = "simple"
	TypeLuxury Type = "luxury"
	TypeRugged Type = "rugged"
)

// Types returns every van type in display order.
func Types() []Type {
	return []Type{TypeSimple, TypeLuxury, TypeRugged}
}

// ParseType validates s as a [Type].
func ParseType(s string) (Type, bool) {
	t := Type(s)
	return t, t.Valid()
}

// Valid reports whether t is one of the known types.
func (t Type) Valid() bool {
	return slices.Contains(Types(), t)
}

// # Entity

// Van is a read-only snapshot of a catalogue entry.
type Van struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Price       int    `json:"price"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl"`
	Type        Type   `json:"type"`
	HostID      string `json:"hostId"`
}

// Copyright (c) 2026 Vanlife. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package filter binds the van list's type filter to the URL query string.

The query string is the only source of truth: [Read] derives the criteria
from it and [Set] produces the query for a new criterion. [Apply] narrows an
already-fetched collection in memory; it never triggers a fetch, which is
only correct because the catalogue endpoint always returns every van.
*/
package filter

import (
	"net/url"

	"github.com/taibuivan/vanlife/internal/van"
	"github.com/taibuivan/vanlife/pkg/slice"
)

// Param is the query parameter carrying the selected type.
const Param = "type"

// AllLabel names the unfiltered view.
const AllLabel = "all"

// Criteria is the effective filter. A nil Type means "all".
type Criteria struct {
	Type *van.Type
}

// All reports whether no type is selected.
func (c Criteria) All() bool {
	return c.Type == nil
}

// Label returns the selected type or "all".
func (c Criteria) Label() string {
	return Label(c.Type)
}

// Label returns t as a string, or "all" when t is nil.
func Label(t *van.Type) string {
	if t == nil {
		return AllLabel
	}
	return string(*t)
}

// Read parses query into [Criteria]. A missing or unknown type means "all".
func Read(query url.Values) Criteria {
	t, ok := van.ParseType(query.Get(Param))
	if !ok {
		return Criteria{}
	}
	return Criteria{Type: &t}
}

// Set returns a copy of query with the type parameter set to t, or removed
// when t is nil. Other parameters are preserved.
func Set(query url.Values, t *van.Type) url.Values {
	next := url.Values{}
	for key, values := range query {
		next[key] = append([]string(nil), values...)
	}

	if t == nil {
		next.Del(Param)
	} else {
		next.Set(Param, string(*t))
	}
	return next
}

// Apply returns the vans matching criteria, preserving order. "All" returns
// the full collection.
func Apply(vans []van.Van, criteria Criteria) []van.Van {
	if criteria.All() {
		return vans
	}
	return slice.Filter(vans, func(v van.Van) bool {
		return v.Type == *criteria.Type
	})
}

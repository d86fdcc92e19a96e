// Copyright (c) 2026 Vanlife. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package van

import "context"

// Repository defines the data access contract for the catalogue.
type Repository interface {
	// ListVans returns every van ordered by id. It never filters.
	ListVans(context context.Context) ([]*Van, error)

	// GetVan returns a single van or a NOT_FOUND error.
	GetVan(context context.Context, id string) (*Van, error)

	// ListHostVans returns the vans owned by hostID ordered by id.
	ListHostVans(context context.Context, hostID string) ([]*Van, error)

	// GetHostVan returns a van only if hostID owns it.
	GetHostVan(context context.Context, hostID, id string) (*Van, error)
}

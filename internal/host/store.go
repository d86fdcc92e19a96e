// Copyright (c) 2026 Vanlife. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package host

import "context"

// Repository defines the data access contract for host dashboards.
type Repository interface {
	// ListTransactions returns hostID's payouts, newest first.
	ListTransactions(context context.Context, hostID string) ([]*Transaction, error)

	// ListReviews returns hostID's reviews, newest first.
	ListReviews(context context.Context, hostID string) ([]*Review, error)
}

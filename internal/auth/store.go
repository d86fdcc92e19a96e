// Copyright (c) 2026 Vanlife. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import "context"

// UserRepository defines persistence operations for host accounts.
type UserRepository interface {
	// FindByEmail returns the account registered under email, or NOT_FOUND.
	FindByEmail(ctx context.Context, email string) (*User, error)
}

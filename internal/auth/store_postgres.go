// Copyright (c) 2026 Vanlife. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/vanlife/internal/platform/database/schema"
	"github.com/taibuivan/vanlife/internal/platform/dberr"
)

// PostgresUserRepository implements [UserRepository] using pgxpool.
type PostgresUserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository constructs a new [PostgresUserRepository].
func NewUserRepository(pool *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{pool: pool}
}

// FindByEmail retrieves an account by its unique email address.
//
// Emails are compared case-insensitively.
func (repository *PostgresUserRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	account := schema.UsersAccount
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s
		FROM %s
		WHERE lower(%s) = lower($1);
	`,
		account.ID, account.Email, account.Name, account.PasswordHash, account.CreatedAt,
		account.Table,
		account.Email,
	)

	user := &User{}
	err := repository.pool.QueryRow(ctx, query, email).Scan(
		&user.ID,
		&user.Email,
		&user.Name,
		&user.PasswordHash,
		&user.CreatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "User", "find_user_by_email")
	}

	return user, nil
}

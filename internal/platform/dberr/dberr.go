// Copyright (c) 2026 Vanlife. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package dberr turns pgx failures into [apperr.AppError] values for the
// repositories.
package dberr

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/taibuivan/vanlife/internal/platform/apperr"
)

// Wrap classifies err from action on resource:
//
//   - no rows: NotFound ("Van not found")
//   - deadline, cancellation, lost connection: ServiceUnavailable
//   - anything else: Internal, with action in the logged cause
func Wrap(err error, resource, action string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return apperr.NotFound(resource)
	}

	cause := fmt.Errorf("%s: %w", action, err)

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return apperr.ServiceUnavailable(cause)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) &&
		(pgErr.Code == pgerrcode.QueryCanceled || pgerrcode.IsConnectionException(pgErr.Code)) {
		return apperr.ServiceUnavailable(cause)
	}

	return apperr.Internal(cause)
}

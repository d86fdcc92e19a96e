// Copyright (c) 2026 Vanlife. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package host

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/vanlife/internal/platform/database/schema"
	"github.com/taibuivan/vanlife/internal/platform/dberr"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (repository *PostgresRepository) ListTransactions(context context.Context, hostID string) ([]*Transaction, error) {
	tx := schema.HostTransaction
	query := fmt.Sprintf(`
		SELECT %s, %s, %s
		FROM %s
		WHERE %s = $1
		ORDER BY %s DESC, %s DESC;
	`,
		tx.ID, tx.Amount, tx.OccurredAt,
		tx.Table,
		tx.HostID,
		tx.OccurredAt, tx.ID,
	)

	rows, err := repository.db.Query(context, query, hostID)
	if err != nil {
		return nil, dberr.Wrap(err, "Transaction", "list_transactions")
	}
	defer rows.Close()

	transactions := make([]*Transaction, 0)
	for rows.Next() {
		t := &Transaction{}
		if err := rows.Scan(&t.ID, &t.Amount, &t.Date); err != nil {
			return nil, dberr.Wrap(err, "Transaction", "scan_transaction")
		}
		transactions = append(transactions, t)
	}

	return transactions, dberr.Wrap(rows.Err(), "Transaction", "iterate_transactions")
}

func (repository *PostgresRepository) ListReviews(context context.Context, hostID string) ([]*Review, error) {
	review := schema.HostReview
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1
		ORDER BY %s DESC, %s DESC;
	`,
		review.ID, review.Rating, review.Name, review.Text, review.OccurredAt,
		review.Table,
		review.HostID,
		review.OccurredAt, review.ID,
	)

	rows, err := repository.db.Query(context, query, hostID)
	if err != nil {
		return nil, dberr.Wrap(err, "Review", "list_reviews")
	}
	defer rows.Close()

	reviews := make([]*Review, 0)
	for rows.Next() {
		r := &Review{}
		if err := rows.Scan(&r.ID, &r.Rating, &r.Name, &r.Text, &r.Date); err != nil {
			return nil, dberr.Wrap(err, "Review", "scan_review")
		}
		reviews = append(reviews, r)
	}

	return reviews, dberr.Wrap(rows.Err(), "Review", "iterate_reviews")
}

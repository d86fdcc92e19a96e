// Copyright (c) 2026 Vanlife. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package host

import (
	"context"
	"log/slog"
	"math"

	"github.com/taibuivan/vanlife/pkg/slice"
)

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// Income returns hostID's payouts and their sum.
func (service *Service) Income(context context.Context, hostID string) (*Income, error) {
	transactions, err := service.repo.ListTransactions(context, hostID)
	if err != nil {
		return nil, err
	}

	total := slice.Reduce(transactions, 0, func(sum int, t *Transaction) int {
		return sum + t.Amount
	})

	return &Income{Total: total, Transactions: transactions}, nil
}

// Reviews returns hostID's reviews with the average rating and a per-star breakdown.
func (service *Service) Reviews(context context.Context, hostID string) (*ReviewSummary, error) {
	reviews, err := service.repo.ListReviews(context, hostID)
	if err != nil {
		return nil, err
	}

	return Summarize(reviews), nil
}

// Summarize aggregates reviews. The average is rounded to one decimal place;
// an empty set averages to zero.
func Summarize(reviews []*Review) *ReviewSummary {
	counts := make(map[int]int, 5)
	sum := slice.Reduce(reviews, 0, func(acc int, r *Review) int {
		counts[r.Rating]++
		return acc + r.Rating
	})

	summary := &ReviewSummary{Count: len(reviews), Reviews: reviews}
	if summary.Count > 0 {
		summary.Average = math.Round(float64(sum)/float64(summary.Count)*10) / 10
	}

	for stars := 5; stars >= 1; stars-- {
		entry := RatingCount{Stars: stars, Count: counts[stars]}
		if summary.Count > 0 {
			entry.Percent = int(math.Round(float64(entry.Count) * 100 / float64(summary.Count)))
		}
		summary.Breakdown = append(summary.Breakdown, entry)
	}

	return summary
}

// Copyright (c) 2026 Vanlife. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package host serves a host's income and review dashboards.
package host

import "time"

// Transaction is a single rental payout.
type Transaction struct {
	ID     int64     `json:"id"`
	Amount int       `json:"amount"`
	Date   time.Time `json:"date"`
}

// Income is a host's payout history with its total.
type Income struct {
	Total        int            `json:"total"`
	Transactions []*Transaction `json:"transactions"`
}

// Review is a renter's review of a host.
type Review struct {
	ID     int64     `json:"id"`
	Rating int       `json:"rating"`
	Name   string    `json:"name"`
	Text   string    `json:"text"`
	Date   time.Time `json:"date"`
}

// RatingCount is the share of reviews with a given star rating.
type RatingCount struct {
	Stars   int `json:"stars"`
	Count   int `json:"count"`
	Percent int `json:"percent"`
}

// ReviewSummary aggregates a host's reviews.
type ReviewSummary struct {
	Average   float64       `json:"average"`
	Count     int           `json:"count"`
	Breakdown []RatingCount `json:"breakdown"`
	Reviews   []*Review     `json:"reviews"`
}

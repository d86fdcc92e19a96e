// Copyright (c) 2026 Vanlife. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package host_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/vanlife/internal/host"
	"github.com/taibuivan/vanlife/internal/platform/ctxutil"
	"github.com/taibuivan/vanlife/internal/platform/sec"
)

type memoryRepository struct {
	transactions map[string][]*host.Transaction
	reviews      map[string][]*host.Review
}

func (repository *memoryRepository) ListTransactions(_ context.Context, hostID string) ([]*host.Transaction, error) {
	return repository.transactions[hostID], nil
}

func (repository *memoryRepository) ListReviews(_ context.Context, hostID string) ([]*host.Review, error) {
	return repository.reviews[hostID], nil
}

func fixture() *memoryRepository {
	return &memoryRepository{
		transactions: map[string][]*host.Transaction{
			"123": {{ID: 1, Amount: 720}, {ID: 2, Amount: 560}, {ID: 3, Amount: 980}},
		},
		reviews: map[string][]*host.Review{
			"123": {{ID: 1, Rating: 5, Name: "Elliot"}, {ID: 2, Rating: 5, Name: "Sandy"}, {ID: 3, Rating: 4, Name: "Ann"}},
		},
	}
}

func TestService_Income_Totals(t *testing.T) {
	service := host.NewService(fixture(), slog.Default())

	income, err := service.Income(context.Background(), "123")
	require.NoError(t, err)
	assert.Equal(t, 2260, income.Total)
	assert.Len(t, income.Transactions, 3)

	empty, err := service.Income(context.Background(), "999")
	require.NoError(t, err)
	assert.Zero(t, empty.Total)
}

func TestSummarize(t *testing.T) {
	summary := host.Summarize(fixture().reviews["123"])

	assert.Equal(t, 3, summary.Count)
	assert.InDelta(t, 4.7, summary.Average, 0.001)
	require.Len(t, summary.Breakdown, 5)
	assert.Equal(t, host.RatingCount{Stars: 5, Count: 2, Percent: 67}, summary.Breakdown[0])
	assert.Equal(t, host.RatingCount{Stars: 4, Count: 1, Percent: 33}, summary.Breakdown[1])
	assert.Equal(t, host.RatingCount{Stars: 1, Count: 0, Percent: 0}, summary.Breakdown[4])
}

func TestSummarize_Empty(t *testing.T) {
	summary := host.Summarize(nil)

	assert.Zero(t, summary.Count)
	assert.Zero(t, summary.Average)
	assert.Len(t, summary.Breakdown, 5)
}

func TestHandler_RequiresToken(t *testing.T) {
	router := chi.NewRouter()
	host.NewHandler(host.NewService(fixture(), slog.Default())).RegisterRoutes(router)

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/income", nil))
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)

	request := httptest.NewRequest(http.MethodGet, "/income", nil)
	request = request.WithContext(ctxutil.WithHost(request.Context(), &sec.HostClaims{RegisteredClaims: jwt.RegisteredClaims{Subject: "123"}}))
	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, request)
	require.Equal(t, http.StatusOK, recorder.Code)

	var body struct {
		Data host.Income `json:"data"`
	}
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&body))
	assert.Equal(t, 2260, body.Data.Total)
}

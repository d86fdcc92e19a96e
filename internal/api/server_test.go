// Copyright (c) 2026 Vanlife. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package api_test

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/vanlife/internal/api"
	"github.com/taibuivan/vanlife/internal/auth"
	"github.com/taibuivan/vanlife/internal/host"
	"github.com/taibuivan/vanlife/internal/platform/apperr"
	"github.com/taibuivan/vanlife/internal/platform/config"
	"github.com/taibuivan/vanlife/internal/platform/constants"
	"github.com/taibuivan/vanlife/internal/platform/sec"
	"github.com/taibuivan/vanlife/internal/van"
)

// # Fakes

type vanRepo struct{ vans []*van.Van }

func (repository vanRepo) ListVans(context.Context) ([]*van.Van, error) { return repository.vans, nil }

func (repository vanRepo) GetVan(_ context.Context, id string) (*van.Van, error) {
	for _, v := range repository.vans {
		if v.ID == id {
			return v, nil
		}
	}
	return nil, apperr.NotFound("Van")
}

func (repository vanRepo) ListHostVans(_ context.Context, hostID string) ([]*van.Van, error) {
	out := make([]*van.Van, 0)
	for _, v := range repository.vans {
		if v.HostID == hostID {
			out = append(out, v)
		}
	}
	return out, nil
}

func (repository vanRepo) GetHostVan(ctx context.Context, hostID, id string) (*van.Van, error) {
	v, err := repository.GetVan(ctx, id)
	if err != nil || v.HostID != hostID {
		return nil, apperr.NotFound("Van")
	}
	return v, nil
}

type userRepo struct{ user *auth.User }

func (repository userRepo) FindByEmail(_ context.Context, email string) (*auth.User, error) {
	if email != repository.user.Email {
		return nil, apperr.NotFound("User")
	}
	return repository.user, nil
}

type hostRepo struct{}

func (hostRepo) ListTransactions(context.Context, string) ([]*host.Transaction, error) {
	return []*host.Transaction{{ID: 1, Amount: 720}, {ID: 2, Amount: 560}}, nil
}

func (hostRepo) ListReviews(context.Context, string) ([]*host.Review, error) {
	return []*host.Review{{ID: 1, Rating: 5}}, nil
}

// # Fixture

func newServer(t *testing.T, checks []api.HealthCheck) http.Handler {
	t.Helper()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	tokens := sec.NewTokenServiceFromKey(key, &key.PublicKey, constants.AuthIssuer)

	hash, err := sec.HashPassword("p123")
	require.NoError(t, err)

	logger := slog.Default()
	vans := vanRepo{vans: []*van.Van{
		{ID: "1", Name: "Modest Explorer", Price: 60, Type: van.TypeSimple, HostID: "123"},
		{ID: "2", Name: "Beach Bum", Price: 80, Type: van.TypeRugged, HostID: "123"},
		{ID: "3", Name: "Reliable Red", Price: 100, Type: van.TypeLuxury, HostID: "456"},
	}}

	liveness, readiness := api.NewHealthHandlers(checks, logger)
	handlers := api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Auth: auth.NewHandler(auth.NewService(
			userRepo{user: &auth.User{ID: "123", Email: "b@b.com", Name: "Bob", PasswordHash: hash}},
			tokens, constants.AccessTokenTTL, logger,
		)),
		Van:  van.NewHandler(van.NewService(vans, nil, logger)),
		Host: host.NewHandler(host.NewService(hostRepo{}, logger)),
	}

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	cfg := &config.Config{ServerPort: "0", Environment: "development"}
	return api.NewServer(ctx, cfg, logger, tokens, handlers).Handler()
}

func do(t *testing.T, handler http.Handler, method, path, body, token string) *httptest.ResponseRecorder {
	t.Helper()

	var request *http.Request
	if body != "" {
		request = httptest.NewRequest(method, path, strings.NewReader(body))
	} else {
		request = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		request.Header.Set(constants.HeaderAuthorization, "Bearer "+token)
	}

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	return recorder
}

// # Tests

func TestServer_PublicCatalogue(t *testing.T) {
	server := newServer(t, nil)

	recorder := do(t, server, http.MethodGet, "/api/v1/vans", "", "")
	require.Equal(t, http.StatusOK, recorder.Code)

	var list struct {
		Data []van.Van `json:"data"`
	}
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&list))
	assert.Len(t, list.Data, 3)

	recorder = do(t, server, http.MethodGet, "/api/v1/vans/9", "", "")
	assert.Equal(t, http.StatusNotFound, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "Van not found")
}

/*
TestServer_LoginThenHostRoutes verifies a token issued by POST /login opens
the host endpoints and scopes them to the logged-in host.
*/
func TestServer_LoginThenHostRoutes(t *testing.T) {
	server := newServer(t, nil)

	recorder := do(t, server, http.MethodGet, "/api/v1/host/vans", "", "")
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)

	recorder = do(t, server, http.MethodPost, "/api/v1/login", `{"email":"b@b.com","password":"p123"}`, "")
	require.Equal(t, http.StatusOK, recorder.Code)

	var login struct {
		Data auth.LoginSession `json:"data"`
	}
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&login))
	require.NotEmpty(t, login.Data.Token)

	recorder = do(t, server, http.MethodGet, "/api/v1/host/vans", "", login.Data.Token)
	require.Equal(t, http.StatusOK, recorder.Code)
	var owned struct {
		Data []van.Van `json:"data"`
	}
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&owned))
	assert.Len(t, owned.Data, 2)

	recorder = do(t, server, http.MethodGet, "/api/v1/host/vans/3", "", login.Data.Token)
	assert.Equal(t, http.StatusNotFound, recorder.Code)

	recorder = do(t, server, http.MethodGet, "/api/v1/host/income", "", login.Data.Token)
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"total":1280`)

	recorder = do(t, server, http.MethodGet, "/api/v1/host/reviews", "", "garbage")
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestServer_LoginFailure(t *testing.T) {
	recorder := do(t, newServer(t, nil), http.MethodPost, "/api/v1/login", `{"email":"a@b.com","password":"bad"}`, "")

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	assert.JSONEq(t, `{"error":"No user with those credentials found!","code":"UNAUTHORIZED"}`, recorder.Body.String())
}

func TestServer_HealthAndReadiness(t *testing.T) {
	healthy := newServer(t, []api.HealthCheck{{Name: "postgres", Check: func(context.Context) error { return nil }}})

	assert.Equal(t, http.StatusOK, do(t, healthy, http.MethodGet, "/health", "", "").Code)
	recorder := do(t, healthy, http.MethodGet, "/ready", "", "")
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"status":"ready"`)

	degraded := newServer(t, []api.HealthCheck{{Name: "redis", Check: func(context.Context) error { return errors.New("refused") }}})
	recorder = do(t, degraded, http.MethodGet, "/ready", "", "")
	assert.Equal(t, http.StatusServiceUnavailable, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"status":"degraded"`)
}

func TestServer_Metrics(t *testing.T) {
	server := newServer(t, nil)
	do(t, server, http.MethodGet, "/api/v1/vans", "", "")

	recorder := do(t, server, http.MethodGet, "/metrics", "", "")
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "vanlife_http_requests_total")
}

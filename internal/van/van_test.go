// Copyright (c) 2026 Vanlife. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package van_test

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/vanlife/internal/platform/apperr"
	"github.com/taibuivan/vanlife/internal/platform/ctxutil"
	"github.com/taibuivan/vanlife/internal/platform/sec"
	"github.com/taibuivan/vanlife/internal/van"
)

// memoryRepository serves a fixed catalogue.
type memoryRepository struct {
	vans []*van.Van
}

func (repository *memoryRepository) ListVans(context.Context) ([]*van.Van, error) {
	return repository.vans, nil
}

func (repository *memoryRepository) GetVan(_ context.Context, id string) (*van.Van, error) {
	for _, v := range repository.vans {
		if v.ID == id {
			return v, nil
		}
	}
	return nil, apperr.NotFound("Van")
}

func (repository *memoryRepository) ListHostVans(_ context.Context, hostID string) ([]*van.Van, error) {
	var out []*van.Van
	for _, v := range repository.vans {
		if v.HostID == hostID {
			out = append(out, v)
		}
	}
	return out, nil
}

func (repository *memoryRepository) GetHostVan(ctx context.Context, hostID, id string) (*van.Van, error) {
	v, err := repository.GetVan(ctx, id)
	if err != nil || v.HostID != hostID {
		return nil, apperr.NotFound("Van")
	}
	return v, nil
}

type prefixResolver struct{ err error }

func (resolver prefixResolver) ImageURL(_ context.Context, ref string) (string, error) {
	return "https://img/" + ref, resolver.err
}

func catalogue() *memoryRepository {
	return &memoryRepository{vans: []*van.Van{
		{ID: "1", Name: "Modest Explorer", Price: 60, Type: van.TypeSimple, ImageURL: "vans/1.png", HostID: "123"},
		{ID: "2", Name: "Beach Bum", Price: 80, Type: van.TypeRugged, ImageURL: "vans/2.png", HostID: "123"},
		{ID: "3", Name: "Reliable Red", Price: 100, Type: van.TypeLuxury, ImageURL: "vans/3.png", HostID: "456"},
	}}
}

func TestParseType(t *testing.T) {
	for _, s := range []string{"simple", "luxury", "rugged"} {
		typ, ok := van.ParseType(s)
		assert.True(t, ok)
		assert.Equal(t, van.Type(s), typ)
	}

	_, ok := van.ParseType("Rugged")
	assert.False(t, ok)
	_, ok = van.ParseType("")
	assert.False(t, ok)
}

/*
TestService_ListVans_UnfilteredAndResolved verifies the catalogue is returned
whole, in order, with image references resolved on copies.
*/
func TestService_ListVans_UnfilteredAndResolved(t *testing.T) {
	repo := catalogue()
	service := van.NewService(repo, prefixResolver{}, slog.Default())

	vans, err := service.ListVans(context.Background())
	require.NoError(t, err)

	require.Len(t, vans, 3)
	assert.Equal(t, []string{"1", "2", "3"}, []string{vans[0].ID, vans[1].ID, vans[2].ID})
	assert.Equal(t, "https://img/vans/1.png", vans[0].ImageURL)
	assert.Equal(t, "vans/1.png", repo.vans[0].ImageURL)
}

func TestService_ResolveFailureIsReported(t *testing.T) {
	service := van.NewService(catalogue(), prefixResolver{err: errors.New("s3 down")}, slog.Default())

	_, err := service.GetVan(context.Background(), "1")
	assert.ErrorContains(t, err, "s3 down")
}

func TestHandler_GetVan_NotFound(t *testing.T) {
	handler := van.NewHandler(van.NewService(catalogue(), nil, slog.Default()))

	recorder := httptest.NewRecorder()
	handler.Routes().ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/9", nil))

	assert.Equal(t, http.StatusNotFound, recorder.Code)
	assert.JSONEq(t, `{"error":"Van not found","code":"NOT_FOUND"}`, recorder.Body.String())
}

func TestHandler_ListVans_Envelope(t *testing.T) {
	handler := van.NewHandler(van.NewService(catalogue(), nil, slog.Default()))

	recorder := httptest.NewRecorder()
	handler.Routes().ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, recorder.Code)

	var body struct {
		Data []van.Van `json:"data"`
	}
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&body))
	assert.Len(t, body.Data, 3)
	assert.Equal(t, van.TypeRugged, body.Data[1].Type)
}

/*
TestHandler_HostRoutes_ScopedToToken verifies a host only sees its own vans
and anonymous requests are refused.
*/
func TestHandler_HostRoutes_ScopedToToken(t *testing.T) {
	handler := van.NewHandler(van.NewService(catalogue(), nil, slog.Default()))
	routes := handler.HostRoutes()

	asHost := func(path string) *http.Request {
		request := httptest.NewRequest(http.MethodGet, path, nil)
		ctx := ctxutil.WithHost(request.Context(), &sec.HostClaims{RegisteredClaims: jwt.RegisteredClaims{Subject: "123"}})
		return request.WithContext(ctx)
	}

	recorder := httptest.NewRecorder()
	routes.ServeHTTP(recorder, asHost("/"))
	require.Equal(t, http.StatusOK, recorder.Code)
	var body struct {
		Data []van.Van `json:"data"`
	}
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&body))
	assert.Len(t, body.Data, 2)

	recorder = httptest.NewRecorder()
	routes.ServeHTTP(recorder, asHost("/3"))
	assert.Equal(t, http.StatusNotFound, recorder.Code)

	recorder = httptest.NewRecorder()
	routes.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

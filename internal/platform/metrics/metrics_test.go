// Copyright (c) 2026 Vanlife. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package metrics_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/vanlife/internal/platform/metrics"
)

/*
TestInstrument_UsesRoutePattern verifies ids do not leak into label values.
*/
func TestInstrument_UsesRoutePattern(t *testing.T) {
	router := chi.NewRouter()
	router.Use(metrics.Instrument("test"))
	router.Get("/vans/{id}", func(writer http.ResponseWriter, _ *http.Request) {
		writer.WriteHeader(http.StatusNotFound)
	})

	before := testutil.ToFloat64(metrics.HTTPRequestsTotal.WithLabelValues("test", "/vans/{id}", "404"))

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/vans/9", nil))
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/vans/10", nil))

	after := testutil.ToFloat64(metrics.HTTPRequestsTotal.WithLabelValues("test", "/vans/{id}", "404"))
	assert.Equal(t, before+2, after)
}

// Copyright (c) 2026 Vanlife. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/taibuivan/vanlife/internal/platform/constants"
	"github.com/taibuivan/vanlife/internal/platform/respond"
)

// probeTimeout bounds each dependency probe behind /ready.
const probeTimeout = 2 * time.Second

// HealthCheck probes one backing service (postgres, redis).
type HealthCheck struct {
	Name  string
	Check func(ctx context.Context) error
}

type probeResult struct {
	Name  string `json:"name"`
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

// NewHealthHandlers returns the /health and /ready handlers.
//
// /health only proves the process serves HTTP. /ready runs every check
// concurrently and answers 503 "degraded" when any of them fails.
func NewHealthHandlers(checks []HealthCheck, logger *slog.Logger) (liveness, readiness http.HandlerFunc) {
	liveness = func(writer http.ResponseWriter, _ *http.Request) {
		respond.OK(writer, map[string]string{constants.FieldStatus: "ok"})
	}

	readiness = func(writer http.ResponseWriter, request *http.Request) {
		results := probe(request.Context(), checks)

		status, code := "ready", http.StatusOK
		for _, result := range results {
			if !result.OK {
				status, code = "degraded", http.StatusServiceUnavailable
				logger.Error("readiness_check_failed", slog.String("dependency", result.Name), slog.String("error", result.Error))
			}
		}

		respond.JSON(writer, code, map[string]any{
			constants.FieldData: map[string]any{
				constants.FieldStatus: status,
				constants.FieldChecks: results,
			},
		})
	}

	return liveness, readiness
}

// probe runs checks in parallel; results keep the order of checks.
func probe(ctx context.Context, checks []HealthCheck) []probeResult {
	results := make([]probeResult, len(checks))

	var group errgroup.Group
	for i, check := range checks {
		group.Go(func() error {
			checkCtx, cancel := context.WithTimeout(ctx, probeTimeout)
			defer cancel()

			results[i] = probeResult{Name: check.Name, OK: true}
			if err := check.Check(checkCtx); err != nil {
				results[i].OK = false
				results[i].Error = err.Error()
			}
			return nil
		})
	}
	_ = group.Wait()

	return results
}

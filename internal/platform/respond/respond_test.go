// Copyright (c) 2026 Vanlife. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package respond_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/vanlife/internal/platform/apperr"
	"github.com/taibuivan/vanlife/internal/platform/respond"
)

func TestOK_Envelope(t *testing.T) {
	recorder := httptest.NewRecorder()
	respond.OK(recorder, map[string]string{"id": "1"})

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "application/json; charset=utf-8", recorder.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"data":{"id":"1"}}`, recorder.Body.String())
}

func TestError_Envelope(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		body   string
	}{
		{"not_found", apperr.NotFound("Van"), http.StatusNotFound, `{"error":"Van not found","code":"NOT_FOUND"}`},
		{"bad_credentials", apperr.Unauthorized("No user with those credentials found!"), http.StatusUnauthorized, `{"error":"No user with those credentials found!","code":"UNAUTHORIZED"}`},
		{"plain_error", errors.New("dial tcp: refused"), http.StatusInternalServerError, `{"error":"An unexpected error occurred","code":"INTERNAL_ERROR"}`},
		{"validation", apperr.ValidationError("Validation failed", apperr.FieldError{Field: "email", Message: "This field is required"}), http.StatusBadRequest,
			`{"error":"Validation failed","code":"VALIDATION_ERROR","details":[{"field":"email","message":"This field is required"}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := httptest.NewRecorder()
			respond.Error(recorder, httptest.NewRequest(http.MethodGet, "/", nil), tt.err)

			assert.Equal(t, tt.status, recorder.Code)
			assert.JSONEq(t, tt.body, recorder.Body.String())

			var envelope respond.ErrorEnvelope
			require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
		})
	}
}

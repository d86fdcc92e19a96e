// Copyright (c) 2026 Vanlife. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package apperr_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/vanlife/internal/platform/apperr"
)

func TestConstructors(t *testing.T) {
	tests := []struct {
		name    string
		err     *apperr.AppError
		code    string
		status  int
		message string
	}{
		{"not_found", apperr.NotFound("Van"), apperr.CodeNotFound, http.StatusNotFound, "Van not found"},
		{"unauthorized", apperr.Unauthorized("No user with those credentials found!"), apperr.CodeUnauthorized, http.StatusUnauthorized, "No user with those credentials found!"},
		{"validation", apperr.ValidationError("Validation failed"), apperr.CodeValidation, http.StatusBadRequest, "Validation failed"},
		{"rate_limited", apperr.RateLimited(3), apperr.CodeRateLimited, http.StatusTooManyRequests, "Too many requests. Try again in 3s."},
		{"unavailable", apperr.ServiceUnavailable(nil), apperr.CodeServiceUnavailable, http.StatusServiceUnavailable, "The van service is temporarily unavailable"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.err.Code)
			assert.Equal(t, tt.status, tt.err.HTTPStatus)
			assert.Equal(t, tt.message, tt.err.Error())
		})
	}
}

func TestAs_WrappedChain(t *testing.T) {
	wrapped := fmt.Errorf("auth: %w", apperr.Unauthorized("No user with those credentials found!"))

	appErr := apperr.As(wrapped)
	require.NotNil(t, appErr)
	assert.True(t, apperr.HasCode(wrapped, apperr.CodeUnauthorized))
	assert.False(t, apperr.HasCode(wrapped, apperr.CodeNotFound))
	assert.Nil(t, apperr.As(errors.New("plain")))
}

func TestInternal_KeepsCauseServerSide(t *testing.T) {
	cause := errors.New("relation core.van does not exist")
	err := apperr.Internal(cause)

	assert.Equal(t, "An unexpected error occurred", err.Error())
	assert.ErrorIs(t, err, cause)
}

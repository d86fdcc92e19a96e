// Copyright (c) 2026 Vanlife. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package requestutil reads what the van API handlers need from a request:
path parameters, JSON bodies and the authenticated host.
*/
package requestutil

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/vanlife/internal/platform/apperr"
	"github.com/taibuivan/vanlife/internal/platform/ctxutil"
	"github.com/taibuivan/vanlife/internal/platform/validate"
)

// maxBodyBytes bounds JSON request bodies; the only one is the login payload.
const maxBodyBytes = 64 << 10

// DecodeJSON decodes a single JSON object into target. Unknown fields and
// oversized bodies are rejected with [validate.ErrInvalidJSON].
func DecodeJSON(request *http.Request, target any) error {
	decoder := json.NewDecoder(http.MaxBytesReader(nil, request.Body, maxBodyBytes))
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(target); err != nil {
		return validate.ErrInvalidJSON
	}
	return nil
}

// Param returns the chi path parameter name.
func Param(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}

// HostID returns the id of the host whose token authenticated the request.
func HostID(request *http.Request) (string, error) {
	claims := ctxutil.GetHost(request.Context())
	if claims == nil {
		return "", apperr.Unauthorized("Authentication required")
	}
	return claims.HostID(), nil
}

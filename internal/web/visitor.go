// Copyright (c) 2026 Vanlife. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package web

import (
	"net/http"

	"github.com/taibuivan/vanlife/internal/platform/constants"
	"github.com/taibuivan/vanlife/internal/platform/ctxutil"
	"github.com/taibuivan/vanlife/pkg/uuid"
)

// Visitor identifies the browser behind each request.
//
// The id lives in a long-lived HttpOnly cookie and keys the visitor's
// session flag and navigation state. A missing or malformed cookie is
// replaced with a fresh UUIDv7.
func Visitor(secure bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			visitorID := ""
			if cookie, err := request.Cookie(constants.VisitorCookieName); err == nil && uuid.Valid(cookie.Value) {
				visitorID = cookie.Value
			}

			if visitorID == "" {
				visitorID = uuid.New()
				http.SetCookie(writer, &http.Cookie{
					Name:     constants.VisitorCookieName,
					Value:    visitorID,
					Path:     "/",
					MaxAge:   int(constants.VisitorCookieMaxAge.Seconds()),
					HttpOnly: true,
					Secure:   secure,
					SameSite: http.SameSiteLaxMode,
				})
			}

			ctx := ctxutil.WithVisitor(request.Context(), visitorID)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

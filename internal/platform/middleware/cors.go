// Copyright (c) 2026 Vanlife. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/taibuivan/vanlife/internal/platform/constants"
)

// siteDomain is the production domain; it and its subdomains are always allowed.
const siteDomain = "vanlife.app"

// AppConfig is the part of the configuration CORS depends on.
type AppConfig interface {
	IsDevelopment() bool
}

// CORS answers cross-origin requests from the Vanlife site, from the
// comma-separated extraOrigins, and from anywhere in development.
// Preflight requests end here with 204.
func CORS(cfg AppConfig, extraOrigins string) func(http.Handler) http.Handler {
	extra := map[string]bool{}
	for _, origin := range strings.Split(extraOrigins, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			extra[origin] = true
		}
	}

	allowed := func(origin string) bool {
		if cfg.IsDevelopment() || extra[origin] {
			return true
		}
		parsed, err := url.Parse(origin)
		if err != nil || parsed.Scheme != "https" {
			return false
		}
		host := parsed.Hostname()
		return host == siteDomain || strings.HasSuffix(host, "."+siteDomain)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			origin := request.Header.Get(constants.HeaderOrigin)
			if origin == "" {
				next.ServeHTTP(writer, request)
				return
			}

			header := writer.Header()
			header.Add("Vary", constants.HeaderOrigin)

			if allowed(origin) {
				header.Set("Access-Control-Allow-Origin", origin)
				header.Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
				header.Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Request-ID")
				header.Set("Access-Control-Expose-Headers", "X-Request-ID")
				header.Set("Access-Control-Max-Age", "300")
			}

			if request.Method == http.MethodOptions && request.Header.Get("Access-Control-Request-Method") != "" {
				writer.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(writer, request)
		})
	}
}

// Copyright (c) 2026 Vanlife. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package web

import (
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/taibuivan/vanlife/internal/nav"
	"github.com/taibuivan/vanlife/internal/platform/ctxutil"
	"github.com/taibuivan/vanlife/internal/van"
)

/*
navigate handles POST /navigate.

It records the list the visitor is leaving (its query string and selected
type) as navigation state and redirects to the local path "to". The state
is consumed by the next page that reads it and never appears in the URL.

Form:
  - to: absolute local path, e.g. /vans/1
  - search: the list's query string, with or without the leading "?"
  - type: the selected van type, empty for all
*/
func (handler *Handler) navigate(writer http.ResponseWriter, request *http.Request) {
	ctx := request.Context()

	if err := request.ParseForm(); err != nil {
		http.Error(writer, "invalid form", http.StatusBadRequest)
		return
	}

	to := request.PostForm.Get("to")
	if !localPath(to) {
		http.Error(writer, "invalid destination", http.StatusBadRequest)
		return
	}

	state := nav.State{Search: cleanSearch(request.PostForm.Get("search"))}
	if t, ok := van.ParseType(request.PostForm.Get("type")); ok {
		state.Type = string(t)
	}

	if err := handler.navigation.Put(ctx, ctxutil.GetVisitor(ctx), state); err != nil {
		ctxutil.GetLogger(ctx).WarnContext(ctx, "nav_state_write_failed", slog.Any("error", err))
	}

	http.Redirect(writer, request, to, http.StatusSeeOther)
}

// cleanSearch keeps the list's query string as it was, provided it parses.
// A malformed one is dropped so the back link falls back to the full list.
func cleanSearch(raw string) string {
	query := strings.TrimPrefix(raw, "?")
	if query == "" {
		return ""
	}
	if _, err := url.ParseQuery(query); err != nil {
		return ""
	}
	return "?" + query
}

// Copyright (c) 2026 Vanlife. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/taibuivan/vanlife/internal/platform/ctxutil"
)

//go:embed templates/*.html
var templateFS embed.FS

// Page names. Each is parsed together with the shared layouts.
const (
	pageHome          = "home.html"
	pageAbout         = "about.html"
	pageVans          = "vans.html"
	pageVanDetail     = "van_detail.html"
	pageLogin         = "login.html"
	pageHostDashboard = "host_dashboard.html"
	pageHostIncome    = "host_income.html"
	pageHostReviews   = "host_reviews.html"
	pageHostVans      = "host_vans.html"
	pageHostVanDetail = "host_van_detail.html"
	pageNotFound      = "not_found.html"
	pageError         = "error.html"
	pageLoading       = "loading.html"
)

var layouts = []string{"templates/layout.html", "templates/host_layout.html"}

var (
	printer = message.NewPrinter(language.English)
	titler  = cases.Title(language.English)
)

// templateFuncs are available to every page.
var templateFuncs = template.FuncMap{
	// money renders whole dollars with grouping: 2260 -> "$2,260".
	"money": func(amount int) string { return printer.Sprintf("$%d", amount) },
	// rating renders an average with one decimal: 4.666 -> "4.7".
	"rating": func(value float64) string { return printer.Sprintf("%.1f", value) },
	"date":   func(t time.Time) string { return t.Format("1/2/06") },
	"title":  func(s string) string { return titler.String(s) },
}

// renderer holds one parsed template set per page.
type renderer struct {
	pages map[string]*template.Template
}

func newRenderer() (*renderer, error) {
	names := []string{
		pageHome, pageAbout, pageVans, pageVanDetail, pageLogin,
		pageHostDashboard, pageHostIncome, pageHostReviews, pageHostVans, pageHostVanDetail,
		pageNotFound, pageError, pageLoading,
	}

	pages := make(map[string]*template.Template, len(names))
	for _, name := range names {
		files := append(append([]string{}, layouts...), "templates/"+name)
		tmpl, err := template.New(name).Funcs(templateFuncs).ParseFS(templateFS, files...)
		if err != nil {
			return nil, fmt.Errorf("web: parse %s: %w", name, err)
		}
		pages[name] = tmpl
	}

	return &renderer{pages: pages}, nil
}

// view is the data every page template receives.
type view struct {
	Title    string
	LoggedIn bool
	// Section and HostSection highlight the active navigation links.
	Section     string
	HostSection string
	Data        any
}

// render executes page into a buffer first so a template failure never
// leaves a half-written response.
func (r *renderer) render(writer http.ResponseWriter, request *http.Request, status int, page string, data view) {
	tmpl, ok := r.pages[page]
	if !ok {
		http.Error(writer, "unknown page "+page, http.StatusInternalServerError)
		return
	}

	var buffer bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buffer, "layout", data); err != nil {
		ctxutil.GetLogger(request.Context()).ErrorContext(request.Context(), "template_render_failed",
			slog.String("page", page),
			slog.Any("error", err),
		)
		http.Error(writer, "There was an error: could not render page", http.StatusInternalServerError)
		return
	}

	writer.Header().Set("Content-Type", "text/html; charset=utf-8")
	writer.WriteHeader(status)
	_, _ = buffer.WriteTo(writer)
}

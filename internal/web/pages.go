// Copyright (c) 2026 Vanlife. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package web

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"

	"github.com/taibuivan/vanlife/internal/client"
	"github.com/taibuivan/vanlife/internal/filter"
	"github.com/taibuivan/vanlife/internal/host"
	"github.com/taibuivan/vanlife/internal/nav"
	"github.com/taibuivan/vanlife/internal/platform/constants"
	"github.com/taibuivan/vanlife/internal/platform/ctxutil"
	"github.com/taibuivan/vanlife/internal/resource"
	"github.com/taibuivan/vanlife/internal/session"
	"github.com/taibuivan/vanlife/internal/van"
)

// API is everything the frontend asks of the van service. [*client.Client]
// satisfies it.
type API interface {
	Authenticator
	GetVans(ctx context.Context) ([]van.Van, error)
	GetVan(ctx context.Context, id string) (van.Van, error)
	GetHostVans(ctx context.Context, token string) ([]van.Van, error)
	GetHostVan(ctx context.Context, token, id string) (van.Van, error)
	GetHostIncome(ctx context.Context, token string) (host.Income, error)
	GetHostReviews(ctx context.Context, token string) (host.ReviewSummary, error)
}

// Options tunes page behavior.
type Options struct {
	// DefaultHostPath is the login destination when none was recorded.
	DefaultHostPath string
	// CookieSecure marks the token cookie as HTTPS-only.
	CookieSecure bool
	// RenderWait caps the wait for page data. Zero waits until it settles.
	RenderWait time.Duration
}

// Handler renders every page of the frontend.
type Handler struct {
	api        API
	sessions   session.Provider
	navigation nav.Store
	logins     *loginFlows
	pages      *renderer
	options    Options
}

// NewHandler parses the templates and builds the page handlers.
func NewHandler(api API, sessions session.Provider, navigation nav.Store, options Options) (*Handler, error) {
	pages, err := newRenderer()
	if err != nil {
		return nil, err
	}

	if options.DefaultHostPath == "" {
		options.DefaultHostPath = "/host"
	}

	return &Handler{
		api:        api,
		sessions:   sessions,
		navigation: navigation,
		logins:     newLoginFlows(api, sessions),
		pages:      pages,
		options:    options,
	}, nil
}

// frame is the page chrome around the content region.
type frame struct {
	title       string
	section     string
	hostSection string
}

func (handler *Handler) view(request *http.Request, chrome frame, data any) view {
	ctx := request.Context()

	loggedIn, err := handler.sessions.For(ctxutil.GetVisitor(ctx)).Get(ctx)
	if err != nil {
		ctxutil.GetLogger(ctx).WarnContext(ctx, "session_read_failed", slog.Any("error", err))
	}

	return view{
		Title:       chrome.title,
		LoggedIn:    loggedIn,
		Section:     chrome.section,
		HostSection: chrome.hostSection,
		Data:        data,
	}
}

// # Data Loading

// outcome is what a page fetch rendered on its own.
type outcome int

const (
	loaded  outcome = iota // nothing rendered; the page renders the data
	pending                // the loading view was rendered
	failed                 // an error page or a login redirect was written
)

// load drives res for key and waits for it to settle. It renders the
// loading or error view itself and returns ok only on success.
func load[K comparable, T any](handler *Handler, writer http.ResponseWriter, request *http.Request, chrome frame, res *resource.Resource[K, T], key K) (T, bool) {
	data, result := fetch(handler, writer, request, chrome, res, key)
	return data, result == loaded
}

func fetch[K comparable, T any](handler *Handler, writer http.ResponseWriter, request *http.Request, chrome frame, res *resource.Resource[K, T], key K) (T, outcome) {
	ctx := request.Context()
	logger := ctxutil.GetLogger(ctx)

	cancel := res.Subscribe(func(state resource.State[K, T]) {
		logger.DebugContext(ctx, "resource_state_changed", slog.String("status", string(state.Status)))
	})
	defer cancel()

	res.Load(ctx, key)

	waitCtx := ctx
	if handler.options.RenderWait > 0 {
		var stop context.CancelFunc
		waitCtx, stop = context.WithTimeout(ctx, handler.options.RenderWait)
		defer stop()
	}

	var zero T

	state, err := res.Wait(waitCtx)
	if err != nil {
		if ctx.Err() != nil {
			return zero, failed
		}
		handler.pages.render(writer, request, http.StatusOK, pageLoading, handler.view(request, chrome, nil))
		return zero, pending
	}

	if state.Status == resource.StatusError {
		logger.InfoContext(ctx, "page_data_failed", slog.String("reason", describe(state.Err)))
		if errors.Is(state.Err, client.ErrUnauthorized) {
			handler.expireSession(writer, request)
			return zero, failed
		}
		handler.pages.render(writer, request, statusFor(state.Err), pageError, handler.view(request, chrome, state.Message()))
		return zero, failed
	}

	return state.Data, loaded
}

func describe(err error) string {
	var apiErr *client.Error
	if errors.As(err, &apiErr) {
		return apiErr.String()
	}
	return err.Error()
}

// statusFor maps an API failure onto the status of the rendered error page.
// Unauthorized never gets here: it sends the visitor back to the login page.
func statusFor(err error) int {
	switch {
	case errors.Is(err, client.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusBadGateway
	}
}

// # Public Pages

func (handler *Handler) home(writer http.ResponseWriter, request *http.Request) {
	handler.pages.render(writer, request, http.StatusOK, pageHome, handler.view(request, frame{}, nil))
}

func (handler *Handler) about(writer http.ResponseWriter, request *http.Request) {
	handler.pages.render(writer, request, http.StatusOK, pageAbout, handler.view(request, frame{title: "About", section: "about"}, nil))
}

func (handler *Handler) notFound(writer http.ResponseWriter, request *http.Request) {
	handler.pages.render(writer, request, http.StatusNotFound, pageNotFound, handler.view(request, frame{title: "Not found"}, nil))
}

// filterLink is one type button on the van list.
type filterLink struct {
	Href     string
	Type     string
	Selected bool
}

type vansData struct {
	Filters   []filterLink
	Filtered  bool
	ClearHref string
	// Search and Type travel to the detail page as navigation state.
	Search string
	Type   string
	Vans   []van.Van
}

/*
vans handles GET /vans.

The whole catalogue is fetched and narrowed here by the "type" query
parameter; the parameter is the single source of truth for the selection.
*/
func (handler *Handler) vans(writer http.ResponseWriter, request *http.Request) {
	chrome := frame{title: "Vans", section: "vans"}

	catalogue := resource.New("vans", func(ctx context.Context, _ struct{}) ([]van.Van, error) {
		return handler.api.GetVans(ctx)
	})

	all, ok := load(handler, writer, request, chrome, catalogue, struct{}{})
	if !ok {
		return
	}

	query := request.URL.Query()
	criteria := filter.Read(query)

	data := vansData{
		Filtered:  !criteria.All(),
		ClearHref: vansHref(filter.Set(query, nil).Encode()),
		Search:    searchOf(request.URL.RawQuery),
		Vans:      filter.Apply(all, criteria),
	}
	if !criteria.All() {
		data.Type = criteria.Label()
	}

	for _, t := range van.Types() {
		data.Filters = append(data.Filters, filterLink{
			Href:     vansHref(filter.Set(query, &t).Encode()),
			Type:     string(t),
			Selected: criteria.Type != nil && *criteria.Type == t,
		})
	}

	handler.pages.render(writer, request, http.StatusOK, pageVans, handler.view(request, chrome, data))
}

func vansHref(encoded string) string {
	return "/vans" + searchOf(encoded)
}

func searchOf(encoded string) string {
	if encoded == "" {
		return ""
	}
	return "?" + encoded
}

type vanDetailData struct {
	BackHref  string
	BackLabel string
	Van       van.Van
}

/*
vanDetail handles GET /vans/{id}.

The back link restores the list exactly as it was left: it reads the
navigation state recorded by POST /navigate, and falls back to the unfiltered
list when there is none.
*/
func (handler *Handler) vanDetail(writer http.ResponseWriter, request *http.Request) {
	ctx := request.Context()
	logger := ctxutil.GetLogger(ctx)
	visitorID := ctxutil.GetVisitor(ctx)
	chrome := frame{title: "Van", section: "vans"}

	state, _, err := handler.navigation.Take(ctx, visitorID)
	if err != nil {
		logger.WarnContext(ctx, "nav_state_read_failed", slog.Any("error", err))
	}

	detail := resource.New("van", func(ctx context.Context, id string) (van.Van, error) {
		return handler.api.GetVan(ctx, id)
	})

	v, result := fetch(handler, writer, request, chrome, detail, chi.URLParam(request, "id"))
	switch result {
	case pending:
		// The loading view refreshes into this page, which reads the state again.
		if !state.IsZero() {
			if err := handler.navigation.Put(ctx, visitorID, state); err != nil {
				logger.WarnContext(ctx, "nav_state_write_failed", slog.Any("error", err))
			}
		}
		return
	case failed:
		return
	}

	data := vanDetailData{BackHref: "/vans" + state.Search, BackLabel: filter.AllLabel, Van: v}
	if state.Type != "" {
		data.BackLabel = state.Type
	}

	chrome.title = v.Name
	handler.pages.render(writer, request, http.StatusOK, pageVanDetail, handler.view(request, chrome, data))
}

// # Host Pages

func hostToken(request *http.Request) string {
	cookie, err := request.Cookie(constants.TokenCookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}

type dashboardData struct {
	Income  host.Income
	Reviews host.ReviewSummary
	Vans    []van.Van
}

// hostDashboard handles GET /host. Its three sources are fetched concurrently.
func (handler *Handler) hostDashboard(writer http.ResponseWriter, request *http.Request) {
	chrome := frame{title: "Host", section: "host", hostSection: "dashboard"}

	dashboard := resource.New("host_dashboard", func(ctx context.Context, token string) (dashboardData, error) {
		var data dashboardData
		group, groupCtx := errgroup.WithContext(ctx)

		group.Go(func() (err error) {
			data.Income, err = handler.api.GetHostIncome(groupCtx, token)
			return err
		})
		group.Go(func() (err error) {
			data.Reviews, err = handler.api.GetHostReviews(groupCtx, token)
			return err
		})
		group.Go(func() (err error) {
			data.Vans, err = handler.api.GetHostVans(groupCtx, token)
			return err
		})

		if err := group.Wait(); err != nil {
			return dashboardData{}, err
		}
		return data, nil
	})

	data, ok := load(handler, writer, request, chrome, dashboard, hostToken(request))
	if !ok {
		return
	}

	handler.pages.render(writer, request, http.StatusOK, pageHostDashboard, handler.view(request, chrome, data))
}

func (handler *Handler) hostIncome(writer http.ResponseWriter, request *http.Request) {
	chrome := frame{title: "Income", section: "host", hostSection: "income"}

	income := resource.New("host_income", handler.api.GetHostIncome)

	data, ok := load(handler, writer, request, chrome, income, hostToken(request))
	if !ok {
		return
	}

	handler.pages.render(writer, request, http.StatusOK, pageHostIncome, handler.view(request, chrome, data))
}

func (handler *Handler) hostReviews(writer http.ResponseWriter, request *http.Request) {
	chrome := frame{title: "Reviews", section: "host", hostSection: "reviews"}

	reviews := resource.New("host_reviews", handler.api.GetHostReviews)

	data, ok := load(handler, writer, request, chrome, reviews, hostToken(request))
	if !ok {
		return
	}

	handler.pages.render(writer, request, http.StatusOK, pageHostReviews, handler.view(request, chrome, data))
}

func (handler *Handler) hostVans(writer http.ResponseWriter, request *http.Request) {
	chrome := frame{title: "Your vans", section: "host", hostSection: "vans"}

	vans := resource.New("host_vans", handler.api.GetHostVans)

	data, ok := load(handler, writer, request, chrome, vans, hostToken(request))
	if !ok {
		return
	}

	handler.pages.render(writer, request, http.StatusOK, pageHostVans, handler.view(request, chrome, data))
}

// Host van detail tabs.
const (
	tabInfo    = "info"
	tabPricing = "pricing"
	tabPhotos  = "photos"
)

type hostVanDetailData struct {
	Van van.Van
	Tab string
}

// hostVanKey identifies one of the host's vans under one token.
type hostVanKey struct {
	token string
	id    string
}

// hostVanDetail renders GET /host/vans/{id} and its pricing and photos tabs.
func (handler *Handler) hostVanDetail(tab string) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		chrome := frame{title: "Your van", section: "host", hostSection: "vans"}

		detail := resource.New("host_van", func(ctx context.Context, key hostVanKey) (van.Van, error) {
			return handler.api.GetHostVan(ctx, key.token, key.id)
		})

		key := hostVanKey{token: hostToken(request), id: chi.URLParam(request, "id")}
		v, ok := load(handler, writer, request, chrome, detail, key)
		if !ok {
			return
		}

		chrome.title = v.Name
		data := hostVanDetailData{Van: v, Tab: tab}
		handler.pages.render(writer, request, http.StatusOK, pageHostVanDetail, handler.view(request, chrome, data))
	}
}

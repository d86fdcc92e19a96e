// Copyright (c) 2026 Vanlife. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package van

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/vanlife/internal/platform/middleware"
	requestutil "github.com/taibuivan/vanlife/internal/platform/request"
	"github.com/taibuivan/vanlife/internal/platform/respond"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the public catalogue routes.
//
// # Endpoints
//   - GET /      : every van, unfiltered
//   - GET /{id}  : a single van
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Get("/", handler.listVans)
	router.Get("/{id}", handler.getVan)
	return router
}

// HostRoutes returns the routes scoped to the authenticated host's own vans.
func (handler *Handler) HostRoutes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireAuth)
	router.Get("/", handler.listHostVans)
	router.Get("/{id}", handler.getHostVan)
	return router
}

func (handler *Handler) listVans(writer http.ResponseWriter, request *http.Request) {
	vans, err := handler.service.ListVans(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, vans)
}

func (handler *Handler) getVan(writer http.ResponseWriter, request *http.Request) {
	v, err := handler.service.GetVan(request.Context(), requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, v)
}

func (handler *Handler) listHostVans(writer http.ResponseWriter, request *http.Request) {
	hostID, err := requestutil.HostID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	vans, err := handler.service.ListHostVans(request.Context(), hostID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, vans)
}

func (handler *Handler) getHostVan(writer http.ResponseWriter, request *http.Request) {
	hostID, err := requestutil.HostID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	v, err := handler.service.GetHostVan(request.Context(), hostID, requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, v)
}

// Copyright (c) 2026 Vanlife. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package host

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

// RegisterRoutes mounts the dashboard routes on router. Both require a host token.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.With(middleware.RequireAuth).Get("/income", handler.getIncome)
	router.With(middleware.RequireAuth).Get("/reviews", handler.getReviews)
}

func (handler *Handler) getIncome(writer http.ResponseWriter, request *http.Request) {
	hostID, err := requestutil.HostID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	income, err := handler.service.Income(request.Context(), hostID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, income)
}

func (handler *Handler) getReviews(writer http.ResponseWriter, request *http.Request) {
	hostID, err := requestutil.HostID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	summary, err := handler.service.Reviews(request.Context(), hostID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, summary)
}

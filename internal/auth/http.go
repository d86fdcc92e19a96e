// Copyright (c) 2026 Vanlife. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/vanlife/internal/platform/request"
	"github.com/taibuivan/vanlife/internal/platform/respond"
	"github.com/taibuivan/vanlife/internal/platform/validate"
)

// bcrypt ignores everything past 72 bytes, so longer passwords are refused.
const (
	maxEmailLength    = 254
	maxPasswordLength = 72
)

// Handler serves POST /login.
type Handler struct {
	service *Service
}

// NewHandler returns a [Handler] backed by service.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes mounts the login endpoint under the caller's prefix.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Post("/login", handler.login)
	return router
}

type credentialsBody struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (body credentialsBody) validate() error {
	validator := &validate.Validator{}
	validator.Required("email", body.Email).MaxLen("email", body.Email, maxEmailLength)
	validator.Required("password", body.Password).MaxLen("password", body.Password, maxPasswordLength)
	return validator.Err()
}

/*
login handles POST /api/v1/login.

	200 {"data": {"token": "...", "user": {"id", "email", "name"}}}
	400 VALIDATION_ERROR when a field is missing or too long
	401 UNAUTHORIZED "No user with those credentials found!"
*/
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	var body credentialsBody
	if err := requestutil.DecodeJSON(request, &body); err != nil {
		respond.Error(writer, request, err)
		return
	}
	if err := body.validate(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	session, err := handler.service.Login(request.Context(), LoginInput(body))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, session)
}

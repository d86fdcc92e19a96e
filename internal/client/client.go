// Copyright (c) 2026 Vanlife. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package client is the web frontend's gateway to the van API.

Every method returns either decoded data or an [*Error] whose Kind tells the
caller what went wrong and whose Message can be shown as-is.

# Contract

[Client.GetVans] always returns the full, unfiltered catalogue. The van list
narrows it in memory and never asks the API to filter.
*/
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/taibuivan/vanlife/internal/host"
	"github.com/taibuivan/vanlife/internal/platform/apperr"
	"github.com/taibuivan/vanlife/internal/platform/constants"
	"github.com/taibuivan/vanlife/internal/platform/ctxutil"
	"github.com/taibuivan/vanlife/internal/van"
)

// Client calls the van API over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a client for the API rooted at baseURL (e.g.
// http://localhost:8080/api/v1). A zero timeout leaves calls unbounded.
func New(baseURL string, timeout time.Duration) *Client {
	return NewWithHTTPClient(baseURL, &http.Client{Timeout: timeout})
}

// NewWithHTTPClient creates a client on a caller-supplied [http.Client].
func NewWithHTTPClient(baseURL string, httpClient *http.Client) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

// Credentials is a login attempt.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Account is the public profile of a logged-in host.
type Account struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// LoginResult is the payload of a successful login.
type LoginResult struct {
	Token string  `json:"token"`
	User  Account `json:"user"`
}

// # Catalogue

// GetVans returns every van, unfiltered, in catalogue order.
func (c *Client) GetVans(ctx context.Context) ([]van.Van, error) {
	var vans []van.Van
	err := c.do(ctx, http.MethodGet, "/vans", "", nil, &vans, "Failed to fetch vans")
	return vans, err
}

// GetVan returns a single van or an error of kind NotFound.
func (c *Client) GetVan(ctx context.Context, id string) (van.Van, error) {
	var v van.Van
	err := c.do(ctx, http.MethodGet, "/vans/"+url.PathEscape(id), "", nil, &v, "Failed to fetch van")
	return v, err
}

// # Authentication

// LoginUser exchanges credentials for a host token. Bad credentials yield
// an Unauthorized error carrying the API's message.
func (c *Client) LoginUser(ctx context.Context, credentials Credentials) (LoginResult, error) {
	var result LoginResult
	err := c.do(ctx, http.MethodPost, "/login", "", credentials, &result, "Failed to log in")
	return result, err
}

// # Host

func (c *Client) GetHostVans(ctx context.Context, token string) ([]van.Van, error) {
	var vans []van.Van
	err := c.do(ctx, http.MethodGet, "/host/vans", token, nil, &vans, "Failed to fetch vans")
	return vans, err
}

func (c *Client) GetHostVan(ctx context.Context, token, id string) (van.Van, error) {
	var v van.Van
	err := c.do(ctx, http.MethodGet, "/host/vans/"+url.PathEscape(id), token, nil, &v, "Failed to fetch van")
	return v, err
}

func (c *Client) GetHostIncome(ctx context.Context, token string) (host.Income, error) {
	var income host.Income
	err := c.do(ctx, http.MethodGet, "/host/income", token, nil, &income, "Failed to fetch income")
	return income, err
}

func (c *Client) GetHostReviews(ctx context.Context, token string) (host.ReviewSummary, error) {
	var summary host.ReviewSummary
	err := c.do(ctx, http.MethodGet, "/host/reviews", token, nil, &summary, "Failed to fetch reviews")
	return summary, err
}

// # Transport

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error string          `json:"error"`
	Code  string          `json:"code"`
}

// do performs one request and decodes the data envelope into out.
// fallback is the visitor-facing message when the API supplies none.
func (c *Client) do(ctx context.Context, method, path, token string, body, out any, fallback string) error {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return &Error{Kind: KindUnexpected, Message: fallback, Cause: err}
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	request, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return &Error{Kind: KindUnexpected, Message: fallback, Cause: err}
	}
	request.Header.Set("Accept", "application/json")
	if body != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		request.Header.Set(constants.HeaderAuthorization, "Bearer "+token)
	}
	if requestID := ctxutil.GetRequestID(ctx); requestID != "" {
		request.Header.Set(constants.HeaderXRequestID, requestID)
	}

	response, err := c.httpClient.Do(request)
	if err != nil {
		return &Error{
			Kind:    KindNetworkFailure,
			Message: fallback + ": the van service could not be reached",
			Cause:   err,
		}
	}
	defer response.Body.Close()

	var decoded envelope
	decodeErr := json.NewDecoder(response.Body).Decode(&decoded)

	if response.StatusCode < 200 || response.StatusCode > 299 {
		return classify(response.StatusCode, decoded, fallback)
	}
	if decodeErr != nil {
		return &Error{Kind: KindUnexpected, Message: fallback, Status: response.StatusCode, Cause: decodeErr}
	}
	if err := json.Unmarshal(decoded.Data, out); err != nil {
		return &Error{Kind: KindUnexpected, Message: fallback, Status: response.StatusCode, Cause: err}
	}
	return nil
}

func classify(status int, decoded envelope, fallback string) *Error {
	message := decoded.Error
	if message == "" {
		message = fallback
	}

	kind := KindUnexpected
	switch {
	case status == http.StatusNotFound || decoded.Code == apperr.CodeNotFound:
		kind = KindNotFound
	case status == http.StatusUnauthorized || decoded.Code == apperr.CodeUnauthorized:
		kind = KindUnauthorized
	}

	return &Error{
		Kind:    kind,
		Message: message,
		Status:  status,
		Code:    decoded.Code,
		Cause:   fmt.Errorf("client: %d %s", status, http.StatusText(status)),
	}
}

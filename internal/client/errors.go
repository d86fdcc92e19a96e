// Copyright (c) 2026 Vanlife. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package client

import "fmt"

// Kind classifies a failed API call.
type Kind string

const (
	// KindNetworkFailure means the request never produced a response.
	KindNetworkFailure Kind = "network_failure"
	// KindNotFound means the requested record does not exist.
	KindNotFound Kind = "not_found"
	// KindUnauthorized means bad credentials or a missing or expired token.
	KindUnauthorized Kind = "unauthorized"
	// KindUnexpected covers every other failure.
	KindUnexpected Kind = "unexpected"
)

// Sentinels for errors.Is. Only Kind is compared.
var (
	ErrNetworkFailure = &Error{Kind: KindNetworkFailure}
	ErrNotFound       = &Error{Kind: KindNotFound}
	ErrUnauthorized   = &Error{Kind: KindUnauthorized}
	ErrUnexpected     = &Error{Kind: KindUnexpected}
)

// Error is returned by every [Client] method on failure.
type Error struct {
	Kind Kind
	// Message is safe to render to a visitor.
	Message string
	// Status is the HTTP status, or 0 for network failures.
	Status int
	// Code is the API error code, when the response carried one.
	Code  string
	Cause error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches any *Error of the same Kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// String includes the diagnostic details that Error keeps out of views.
func (e *Error) String() string {
	return fmt.Sprintf("%s (kind=%s status=%d code=%s cause=%v)", e.Message, e.Kind, e.Status, e.Code, e.Cause)
}

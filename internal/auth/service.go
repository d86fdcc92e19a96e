// Copyright (c) 2026 Vanlife. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/taibuivan/vanlife/internal/platform/apperr"
	"github.com/taibuivan/vanlife/internal/platform/sec"
)

// ErrBadCredentials is returned for any unknown email or wrong password.
// The message is shown verbatim on the login form.
var ErrBadCredentials = apperr.Unauthorized("No user with those credentials found!")

// TokenProvider defines the contract for issuing access tokens.
type TokenProvider interface {
	GenerateAccessToken(userID, email string, timeToLive time.Duration) (string, error)
}

// Service implements the host login use case.
type Service struct {
	userRepository UserRepository
	tokenProvider  TokenProvider
	tokenTTL       time.Duration
	logger         *slog.Logger
}

// NewService constructs a new [Service].
func NewService(userRepo UserRepository, tokenProv TokenProvider, tokenTTL time.Duration, logger *slog.Logger) *Service {
	return &Service{
		userRepository: userRepo,
		tokenProvider:  tokenProv,
		tokenTTL:       tokenTTL,
		logger:         logger,
	}
}

// LoginInput defines credentials for an authentication attempt.
type LoginInput struct {
	Email    string
	Password string
}

// LoginSession is the payload returned on a successful login.
type LoginSession struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

/*
Login validates credentials and issues an access token.

Returns:
  - *LoginSession: token plus the public account profile
  - error: [ErrBadCredentials] for unknown email or wrong password,
    otherwise a storage or signing failure
*/
func (service *Service) Login(context context.Context, input LoginInput) (*LoginSession, error) {
	email := strings.TrimSpace(input.Email)

	// Unknown email and wrong password share one message so accounts cannot be probed.
	user, err := service.userRepository.FindByEmail(context, email)
	if err != nil {
		if apperr.HasCode(err, apperr.CodeNotFound) {
			return nil, ErrBadCredentials
		}
		return nil, err
	}

	if !sec.PasswordMatches(user.PasswordHash, input.Password) {
		return nil, ErrBadCredentials
	}

	token, err := service.tokenProvider.GenerateAccessToken(user.ID, user.Email, service.tokenTTL)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("auth: token generation failed: %w", err))
	}

	service.logger.InfoContext(context, "host_logged_in", slog.String("user_id", user.ID))

	return &LoginSession{Token: token, User: user}, nil
}

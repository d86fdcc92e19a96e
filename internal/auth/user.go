// Copyright (c) 2026 Vanlife. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package auth implements host login for the van API.

Architecture:

  - Service: verifies credentials (bcrypt) and issues an RS256 access token.
  - Repository: looks up host accounts in users.account.
  - Handler: POST /login, the only unauthenticated write endpoint.

Hosts are provisioned by migrations; there is no self-service registration.
*/
package auth

import "time"

// User is a host account.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"-"`
}

// Copyright (c) 2026 Vanlife. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package sec holds the van API's credential handling: bcrypt password
// checks at login and the RS256 access tokens that scope host endpoints.
//
// The auth service signs tokens through [auth.TokenProvider]; the
// authentication middleware verifies them through [middleware.TokenVerifier].
package sec

import (
	"crypto/rsa"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// clockSkew is tolerated on exp/iat between the API replicas.
const clockSkew = 30 * time.Second

// HostClaims is the payload of a host access token. The subject is the host id.
type HostClaims struct {
	jwt.RegisteredClaims

	Email string `json:"email"`
}

// HostID returns the id of the host the token was issued to.
func (claims *HostClaims) HostID() string {
	return claims.Subject
}

// TokenService signs and verifies host access tokens.
type TokenService struct {
	signingKey *rsa.PrivateKey
	verifyKey  *rsa.PublicKey
	issuer     string
}

// NewTokenService loads a PEM key pair from disk. The public key must belong
// to the private key.
func NewTokenService(privateKeyPath, publicKeyPath, issuer string) (*TokenService, error) {
	signingKey, err := readPEM(privateKeyPath, jwt.ParseRSAPrivateKeyFromPEM)
	if err != nil {
		return nil, err
	}

	verifyKey, err := readPEM(publicKeyPath, jwt.ParseRSAPublicKeyFromPEM)
	if err != nil {
		return nil, err
	}

	if !signingKey.PublicKey.Equal(verifyKey) {
		return nil, errors.New("sec: public key does not match private key")
	}

	return NewTokenServiceFromKey(signingKey, verifyKey, issuer), nil
}

func readPEM[K any](path string, parse func([]byte) (K, error)) (K, error) {
	var zero K

	data, err := os.ReadFile(path)
	if err != nil {
		return zero, fmt.Errorf("sec: read key %s: %w", path, err)
	}

	key, err := parse(data)
	if err != nil {
		return zero, fmt.Errorf("sec: parse key %s: %w", path, err)
	}
	return key, nil
}

// NewTokenServiceFromKey builds a [TokenService] from parsed keys.
func NewTokenServiceFromKey(signingKey *rsa.PrivateKey, verifyKey *rsa.PublicKey, issuer string) *TokenService {
	return &TokenService{signingKey: signingKey, verifyKey: verifyKey, issuer: issuer}
}

// GenerateAccessToken issues a token for hostID valid for timeToLive.
func (service *TokenService) GenerateAccessToken(hostID, email string, timeToLive time.Duration) (string, error) {
	now := time.Now()

	token := jwt.NewWithClaims(jwt.SigningMethodRS256, HostClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   hostID,
			Issuer:    service.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(timeToLive)),
		},
		Email: email,
	})

	signed, err := token.SignedString(service.signingKey)
	if err != nil {
		return "", fmt.Errorf("sec: sign token: %w", err)
	}
	return signed, nil
}

// VerifyToken checks signature, algorithm, issuer and expiry, and requires a subject.
func (service *TokenService) VerifyToken(raw string) (*HostClaims, error) {
	claims := &HostClaims{}

	_, err := jwt.ParseWithClaims(raw, claims,
		func(*jwt.Token) (any, error) { return service.verifyKey, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}),
		jwt.WithIssuer(service.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(clockSkew),
	)
	if err != nil {
		return nil, fmt.Errorf("sec: invalid token: %w", err)
	}

	if claims.HostID() == "" {
		return nil, errors.New("sec: token has no subject")
	}
	return claims, nil
}

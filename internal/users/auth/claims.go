// Copyright (c) 2026 Backoffice. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenInfo is what the console can tell about the stored token without
// asking the backend.
type TokenInfo struct {
	Subject   string
	ExpiresAt time.Time
}

// Expired reports whether the token's exp claim is at or before now.
// A token without exp never reports expired.
func (t *TokenInfo) Expired(now time.Time) bool {
	return !t.ExpiresAt.IsZero() && !now.Before(t.ExpiresAt)
}

/*
TokenClaims decodes the stored token's claims without verifying its signature.

Description: The signing key belongs to the backend, so the result is for
display only and must never drive an authorization decision.

Returns:
  - *TokenInfo: Subject and expiry
  - bool: false if no token is stored or it is not a JWT
*/
func (service *Service) TokenClaims(ctx context.Context) (*TokenInfo, bool) {
	token, ok := service.tokens.Read(ctx)
	if !ok {
		return nil, false
	}
	return ParseTokenInfo(token)
}

// ParseTokenInfo extracts subject and expiry from an unverified JWT.
func ParseTokenInfo(token string) (*TokenInfo, bool) {
	claims := &jwt.RegisteredClaims{}

	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, false
	}

	info := &TokenInfo{Subject: claims.Subject}
	if claims.ExpiresAt != nil {
		info.ExpiresAt = claims.ExpiresAt.Time
	}

	return info, true
}

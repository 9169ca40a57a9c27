// Package services contains application services for the fintrack client:
// account management around the login flow, expense/revenue data access,
// and user profile operations.
package services

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/fintrack/fintrack-cli/internal/client/api"
	"github.com/fintrack/fintrack-cli/internal/client/token"
)

// AuthService covers the authentication operations that live outside the
// interactive login flow: registration, password recovery, session
// inspection and logout.
type AuthService interface {
	Register(ctx context.Context, username string, password []byte, email string) error
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, email, resetCode string, newPassword []byte) error
	IsLoggedIn() bool
	Logout()
	SessionClaims() (*SessionClaims, error)
}

// SessionClaims is what the client can read out of its own bearer token.
// The signature is not verified here; the token is opaque to the client
// and only the backend judges its validity.
type SessionClaims struct {
	Subject   string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

type authService struct {
	api    api.AuthAPI
	tokens token.Store
}

// NewAuthService constructs an AuthService bound to the given API client
// and token store.
func NewAuthService(authAPI api.AuthAPI, tokens token.Store) AuthService {
	return &authService{api: authAPI, tokens: tokens}
}

func (a *authService) Register(ctx context.Context, username string, password []byte, email string) error {
	if err := a.api.Register(ctx, username, password, email); err != nil {
		return fmt.Errorf("register: %w", err)
	}
	return nil
}

func (a *authService) ForgotPassword(ctx context.Context, email string) error {
	if err := a.api.ForgotPassword(ctx, email); err != nil {
		return fmt.Errorf("forgot password: %w", err)
	}
	return nil
}

func (a *authService) ResetPassword(ctx context.Context, email, resetCode string, newPassword []byte) error {
	if err := a.api.ResetPassword(ctx, email, resetCode, newPassword); err != nil {
		return fmt.Errorf("reset password: %w", err)
	}
	return nil
}

func (a *authService) IsLoggedIn() bool {
	_, ok := a.tokens.Get()
	return ok
}

// Logout drops the session credential. Idempotent.
func (a *authService) Logout() {
	a.tokens.Clear()
}

// SessionClaims decodes the stored token's claims without verification,
// for display purposes only (whoami).
func (a *authService) SessionClaims() (*SessionClaims, error) {
	raw, ok := a.tokens.Get()
	if !ok {
		return nil, api.ErrUnauthorized
	}

	parsed, _, err := jwt.NewParser().ParseUnverified(raw, jwt.MapClaims{})
	if err != nil {
		return nil, fmt.Errorf("decoding token claims: %w", err)
	}

	claims := &SessionClaims{}
	if sub, err := parsed.Claims.GetSubject(); err == nil {
		claims.Subject = sub
	}
	if iat, err := parsed.Claims.GetIssuedAt(); err == nil && iat != nil {
		claims.IssuedAt = iat.Time
	}
	if exp, err := parsed.Claims.GetExpirationTime(); err == nil && exp != nil {
		claims.ExpiresAt = exp.Time
	}
	return claims, nil
}

package api

import (
	"context"
	"net/http"

	"github.com/zahabco/gold-dashboard/models"
)

// AuthService wraps the /auth endpoints. Beyond forwarding the anti-forgery
// token on mutations, no authentication state is kept client-side; the
// session lives in the cookie jar.
type AuthService struct {
	client *Client
}

func NewAuthService(client *Client) *AuthService {
	return &AuthService{client: client}
}

// CSRF primes the cookie jar with a fresh anti-forgery token and returns it.
func (s *AuthService) CSRF(ctx context.Context) (string, error) {
	payload, err := s.client.Get(ctx, "/auth/csrf", nil)
	if err != nil {
		return "", err
	}

	var data struct {
		Token string `json:"csrf_token"`
	}
	if err := unwrap(payload, &data); err != nil {
		return "", err
	}
	return data.Token, nil
}

// Session returns the current session, if any.
func (s *AuthService) Session(ctx context.Context) (models.Session, error) {
	var session models.Session
	payload, err := s.client.Get(ctx, "/auth/session", nil)
	if err != nil {
		return session, err
	}
	err = unwrap(payload, &session)
	return session, err
}

// Login authenticates and stores the session cookie in the jar.
func (s *AuthService) Login(ctx context.Context, credentials models.Credentials) (models.Session, error) {
	var session models.Session
	payload, err := s.client.Post(ctx, "/auth/login", credentials)
	if err != nil {
		return session, err
	}
	err = unwrap(payload, &session)
	return session, err
}

// Logout ends the current session.
func (s *AuthService) Logout(ctx context.Context) error {
	payload, err := s.client.Post(ctx, "/auth/logout", nil)
	if err != nil {
		return err
	}
	return unwrap(payload, nil)
}

// ChangePassword updates the current user's password.
func (s *AuthService) ChangePassword(ctx context.Context, change models.PasswordChange) error {
	payload, err := s.client.Post(ctx, "/auth/change-password", change)
	if err != nil {
		return err
	}
	return unwrap(payload, nil)
}

// Refresh extends the current session through the retry pipeline; the server
// treats it as idempotent.
func (s *AuthService) Refresh(ctx context.Context) (models.Session, error) {
	var session models.Session
	payload, err := s.client.RequestWithRetry(ctx, http.MethodPost, "/auth/refresh", nil, nil)
	if err != nil {
		return session, err
	}
	err = unwrap(payload, &session)
	return session, err
}

package api

import (
	"context"
	"net/http"

	"github.com/zahabco/gold-dashboard/models"
)

// UserService wraps the /users management endpoints.
type UserService struct {
	client *Client
}

func NewUserService(client *Client) *UserService {
	return &UserService{client: client}
}

// List returns all managed accounts.
func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	payload, err := s.client.RequestWithRetry(ctx, http.MethodGet, "/users", nil, nil)
	if err != nil {
		return nil, err
	}

	var users []models.User
	if err := unwrap(payload, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// Get returns one account.
func (s *UserService) Get(ctx context.Context, id string) (models.User, error) {
	var user models.User
	payload, err := s.client.RequestWithRetry(ctx, http.MethodGet, "/users/"+id, nil, nil)
	if err != nil {
		return user, err
	}
	err = unwrap(payload, &user)
	return user, err
}

// Create adds an account.
func (s *UserService) Create(ctx context.Context, input models.UserInput) (models.User, error) {
	var user models.User
	payload, err := s.client.Post(ctx, "/users", input)
	if err != nil {
		return user, err
	}
	err = unwrap(payload, &user)
	return user, err
}

// Update replaces an account.
func (s *UserService) Update(ctx context.Context, id string, input models.UserInput) (models.User, error) {
	var user models.User
	payload, err := s.client.Put(ctx, "/users/"+id, input)
	if err != nil {
		return user, err
	}
	err = unwrap(payload, &user)
	return user, err
}

// Delete removes an account.
func (s *UserService) Delete(ctx context.Context, id string) error {
	payload, err := s.client.Delete(ctx, "/users/"+id)
	if err != nil {
		return err
	}
	return unwrap(payload, nil)
}

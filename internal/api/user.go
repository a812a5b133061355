package api

import (
	"context"

	"chaching/internal/transport"
)

// CreateUserPayload is the body of a signup request.
type CreateUserPayload struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserService shapes user requests. Signup is public; signup does not
// auto-authenticate, a fresh login is required afterwards.
type UserService struct {
	client Client
}

func NewUserService(client Client) *UserService {
	return &UserService{client: client}
}

// Create signs up a new user.
func (s *UserService) Create(ctx context.Context, payload CreateUserPayload) (*Envelope[*User], error) {
	var env Envelope[*User]
	if err := s.client.Post(ctx, "/users", payload, &env, transport.Public()); err != nil {
		return nil, err
	}
	return &env, nil
}

// Current fetches the authenticated user.
func (s *UserService) Current(ctx context.Context) (*Envelope[*User], error) {
	var env Envelope[*User]
	if err := s.client.Get(ctx, "/users/current", nil, &env); err != nil {
		return nil, err
	}
	return &env, nil
}

package api

import (
	"context"

	"chaching/internal/transport"
)

// LoginPayload carries credentials to the token endpoint.
type LoginPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse carries the opaque bearer token issued on success.
type LoginResponse struct {
	AuthToken string `json:"auth_token"`
}

// AuthService authenticates against the public token endpoint. Requests are
// public: no Authorization header and never an unauthorized notification,
// even on a 401 (avoids redirect loops during login itself).
type AuthService struct {
	client Client
}

func NewAuthService(client Client) *AuthService {
	return &AuthService{client: client}
}

// Login exchanges credentials for a bearer token.
func (s *AuthService) Login(ctx context.Context, payload LoginPayload) (*Envelope[LoginResponse], error) {
	var env Envelope[LoginResponse]
	if err := s.client.Post(ctx, "/tokens/authenticate", payload, &env, transport.Public()); err != nil {
		return nil, err
	}
	return &env, nil
}

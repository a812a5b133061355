package session

import (
	"context"
	"errors"

	"chaching/internal/api"
	"chaching/internal/log"
	"chaching/internal/messaging"
	"chaching/internal/query"
)

// Routes the manager navigates to after auth transitions.
const (
	RouteHome  = "/"
	RouteLogin = "/login"
)

// Navigator moves the UI between views. The session layer owns every
// auth-driven redirect so the HTTP layer has no navigation dependency.
type Navigator interface {
	NavigateTo(route string)
}

// Manager drives the auth lifecycle: it persists tokens, clears the query
// cache on identity changes and is the single subscriber of the
// unauthorized notification.
type Manager struct {
	auth   *api.AuthService
	users  *api.UserService
	store  *Store
	query  *query.Client
	nav    Navigator
	logger *log.Logger
}

func NewManager(auth *api.AuthService, users *api.UserService, store *Store, q *query.Client, nav Navigator, logger *log.Logger) *Manager {
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	return &Manager{
		auth:   auth,
		users:  users,
		store:  store,
		query:  q,
		nav:    nav,
		logger: logger.WithComponent(log.ComponentSession),
	}
}

// Bind subscribes the manager to the unauthorized notification: the token
// is cleared and the user is silently redirected to login. The redirect
// itself is the signal; no error banner.
func (m *Manager) Bind(bus *messaging.Bus) {
	bus.SubscribeUnauthorized(func() {
		ctx := context.Background()
		if err := m.store.ClearToken(ctx); err != nil {
			m.logger.Error("Clearing token after unauthorized failed",
				log.FieldError, err.Error())
		}
		m.query.Clear()
		m.nav.NavigateTo(RouteLogin)
	})
}

// Login exchanges credentials for a token, persists it, drops the whole
// cache so every reader refetches under the new identity, and navigates
// home.
func (m *Manager) Login(ctx context.Context, email, password string) error {
	env, err := m.auth.Login(ctx, api.LoginPayload{Email: email, Password: password})
	if err != nil {
		return err
	}
	if env.Data.AuthToken == "" {
		return errors.New("login response carried no token")
	}

	if err := m.store.SetToken(ctx, env.Data.AuthToken); err != nil {
		return err
	}

	m.query.Clear()
	m.nav.NavigateTo(RouteHome)
	m.logger.InfoContext(ctx, "Logged in", log.FieldOperation, log.OpLogin)
	return nil
}

// Logout removes the persisted token, clears the cache and navigates to
// login. Idempotent: logging out with no active session is not an error.
func (m *Manager) Logout(ctx context.Context) error {
	if err := m.store.ClearToken(ctx); err != nil {
		return err
	}

	m.query.Clear()
	m.nav.NavigateTo(RouteLogin)
	m.logger.InfoContext(ctx, "Logged out", log.FieldOperation, log.OpLogout)
	return nil
}

// SignUp creates a user against the public signup endpoint. Signup does not
// auto-authenticate: the cache is cleared and the user is sent to login.
func (m *Manager) SignUp(ctx context.Context, payload api.CreateUserPayload) (*api.Envelope[*api.User], error) {
	env, err := m.users.Create(ctx, payload)
	if err != nil {
		return nil, err
	}

	m.query.Clear()
	m.nav.NavigateTo(RouteLogin)
	m.logger.InfoContext(ctx, "Signed up", log.FieldOperation, log.OpSignUp)
	return env, nil
}

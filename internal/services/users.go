package services

import (
	"context"

	"chaching/internal/api"
	"chaching/internal/core"
	"chaching/internal/query"
)

// Users exposes the authenticated-user read.
type Users struct {
	svc   *api.UserService
	query *query.Client
}

func NewUsers(svc *api.UserService, q *query.Client) *Users {
	return &Users{svc: svc, query: q}
}

// Current returns the authenticated user, served from cache when fresh.
func (u *Users) Current(ctx context.Context) (core.User, error) {
	return query.FetchAs(ctx, u.query, query.Key(query.ResourceCurrentUser), func(ctx context.Context) (core.User, error) {
		env, err := u.svc.Current(ctx)
		if err != nil {
			return core.User{}, err
		}
		if env.Data == nil {
			return core.User{}, nil
		}
		return core.UserFromAPI(env.Data), nil
	})
}

package api

import (
	"context"
	"net/url"

	"chaching/internal/transport"
)

// Client is the HTTP request surface the resource services are composed on.
// Implemented by *transport.Client; substituted in tests.
type Client interface {
	Get(ctx context.Context, endpoint string, query url.Values, out any, opts ...transport.RequestOption) error
	Post(ctx context.Context, endpoint string, payload any, out any, opts ...transport.RequestOption) error
	Put(ctx context.Context, endpoint string, payload any, out any, opts ...transport.RequestOption) error
}

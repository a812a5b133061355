// Package transport is the single point of request construction against the
// remote backend: it attaches headers and the bearer token, unwraps the
// response envelope's error signal, maps failures to a typed Error and
// raises the process-wide unauthorized notification on 401.
package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"chaching/internal/log"
	"chaching/internal/messaging"
)

// TokenSource yields the current bearer token. An empty token with a nil
// error means no active session.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// RequestOption adjusts a single request.
type RequestOption func(*requestOptions)

type requestOptions struct {
	public bool
}

// Public marks a request as unauthenticated: no Authorization header is
// attached and a 401 never raises the unauthorized notification.
func Public() RequestOption {
	return func(o *requestOptions) {
		o.public = true
	}
}

// Client issues requests against the backend.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
	bus     *messaging.Bus
	logger  *log.Logger
}

// Config carries the client's collaborators and settings.
type Config struct {
	BaseURL string
	Timeout time.Duration
	Tokens  TokenSource
	Bus     *messaging.Bus
	Logger  *log.Logger
}

func NewClient(cfg Config) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}

	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    &http.Client{Timeout: cfg.Timeout},
		tokens:  cfg.Tokens,
		bus:     cfg.Bus,
		logger:  logger.WithComponent(log.ComponentTransport),
	}
}

// Get issues a GET request and decodes the envelope into out.
func (c *Client) Get(ctx context.Context, endpoint string, query url.Values, out any, opts ...RequestOption) error {
	return c.do(ctx, http.MethodGet, endpoint, query, nil, out, opts...)
}

// Post issues a POST request with a JSON body and decodes the envelope into out.
func (c *Client) Post(ctx context.Context, endpoint string, payload any, out any, opts ...RequestOption) error {
	return c.do(ctx, http.MethodPost, endpoint, nil, payload, out, opts...)
}

// Put issues a PUT request with a JSON body and decodes the envelope into out.
func (c *Client) Put(ctx context.Context, endpoint string, payload any, out any, opts ...RequestOption) error {
	return c.do(ctx, http.MethodPut, endpoint, nil, payload, out, opts...)
}

// envelopeProbe extracts only the envelope's error signal; the full payload
// is decoded into the caller's typed envelope afterwards.
type envelopeProbe struct {
	Error string `json:"error"`
}

func (c *Client) do(ctx context.Context, method, endpoint string, query url.Values, payload any, out any, opts ...RequestOption) error {
	var options requestOptions
	for _, opt := range opts {
		opt(&options)
	}

	requestID := uuid.NewString()
	start := time.Now()

	target := c.baseURL + endpoint
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return &Error{Message: fmt.Sprintf("encode request body: %v", err), StatusCode: StatusNone}
		}
		body = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return &Error{Message: fmt.Sprintf("build request: %v", err), StatusCode: StatusNone}
	}
	req.Header.Set("Content-Type", "application/json")

	if !options.public && c.tokens != nil {
		token, err := c.tokens.Token(ctx)
		if err != nil {
			c.logger.WarnContext(ctx, "Reading session token failed",
				log.FieldRequestID, requestID, log.FieldError, err.Error())
		} else if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		// Timeout and connectivity loss look identical to callers.
		c.logRequest(ctx, requestID, method, endpoint, query, options.public, StatusNone, start, false)
		return &Error{Message: fmt.Sprintf("request failed: %v", err), StatusCode: StatusNone}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		c.logRequest(ctx, requestID, method, endpoint, query, options.public, StatusNone, start, false)
		return &Error{Message: fmt.Sprintf("read response body: %v", err), StatusCode: StatusNone}
	}

	var probe envelopeProbe
	if len(raw) > 0 {
		// A malformed body on an otherwise failed response must not mask
		// the HTTP status, so the probe error is advisory only.
		_ = json.Unmarshal(raw, &probe)
	}

	success := resp.StatusCode >= 200 && resp.StatusCode < 300 && probe.Error == ""
	c.logRequest(ctx, requestID, method, endpoint, query, options.public, resp.StatusCode, start, success)

	if !success {
		if resp.StatusCode == StatusUnauthorized && !options.public && c.bus != nil {
			c.bus.EmitUnauthorized()
		}

		message := probe.Error
		if message == "" {
			message = fmt.Sprintf("request failed with status %d", resp.StatusCode)
		}
		return &Error{Message: message, StatusCode: resp.StatusCode}
	}

	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			return &Error{Message: fmt.Sprintf("decode response envelope: %v", err), StatusCode: StatusNone}
		}
	}

	return nil
}

func (c *Client) logRequest(ctx context.Context, requestID, method, endpoint string, query url.Values, public bool, status int, start time.Time, success bool) {
	fields := log.NewFields().
		WithRequestID(requestID).
		WithRequest(method, endpoint, query.Encode(), public).
		WithResponse(status, time.Since(start).Milliseconds(), success)

	if success {
		c.logger.DebugContext(ctx, "Request completed", fields.ToSlice()...)
		return
	}
	c.logger.WarnContext(ctx, "Request failed", fields.ToSlice()...)
}

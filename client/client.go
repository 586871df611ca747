package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"teampulse/internal/event"
	"teampulse/internal/leave"
	"teampulse/internal/notification"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrNotLoggedIn  = errors.New("client: not logged in")
	ErrUnauthorized = errors.New("client: session expired or invalid")
)

// APIError carries the server's error envelope for non-2xx responses.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d %s: %s", e.Status, e.Code, e.Message)
}

type envelope struct {
	Ok    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// Client talks to the API and keeps per-resource caches that mirror the
// server state between mutations.
type Client struct {
	baseURL string
	httpc   *http.Client
	store   SessionStore
	logger  *zap.Logger

	leaves        cache[leave.LeaveResponse]
	events        cache[event.EventResponse]
	notifications cache[notification.NotificationResponse]
}

type Option func(*Client)

func WithHTTPClient(httpc *http.Client) Option {
	return func(c *Client) { c.httpc = httpc }
}

func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) { c.logger = logger.Named("client") }
}

func New(baseURL string, store SessionStore, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		httpc:   &http.Client{Timeout: 15 * time.Second},
		store:   store,
		logger:  zap.L().Named("client"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Session returns the stored session, or nil when logged out.
func (c *Client) Session() (*Session, error) {
	return c.store.Load()
}

func (c *Client) invalidateAll() {
	c.leaves.Invalidate()
	c.events.Invalidate()
	c.notifications.Invalidate()
}

func (c *Client) do(ctx context.Context, method, path string, body any, out any, authed bool) error {
	return c.send(ctx, method, path, body, out, authed, "")
}

// doIdempotent stamps the request with a single Idempotency-Key and, on a
// transport-level failure, retries once with the same key so the server
// can deduplicate. API errors and auth failures are not retried.
func (c *Client) doIdempotent(ctx context.Context, method, path string, body any, out any, authed bool) error {
	key := uuid.New().String()

	err := c.send(ctx, method, path, body, out, authed, key)
	if err == nil || ctx.Err() != nil {
		return err
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) || errors.Is(err, ErrUnauthorized) || errors.Is(err, ErrNotLoggedIn) {
		return err
	}

	c.logger.Warn("request failed, retrying with the same idempotency key", zap.Error(err))
	return c.send(ctx, method, path, body, out, authed, key)
}

func (c *Client) send(ctx context.Context, method, path string, body any, out any, authed bool, idempotencyKey string) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if idempotencyKey != "" {
		req.Header.Set("Idempotency-Key", idempotencyKey)
	}

	if authed {
		session, err := c.store.Load()
		if err != nil {
			return err
		}
		if session == nil || session.Token == "" {
			return ErrNotLoggedIn
		}
		req.Header.Set("Authorization", "Bearer "+session.Token)
	}

	res, err := c.httpc.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return err
	}

	if res.StatusCode == http.StatusUnauthorized {
		// Stale token: drop the identity and every cache tied to it.
		_ = c.store.Clear()
		c.invalidateAll()
		return ErrUnauthorized
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	if !env.Ok {
		apiErr := &APIError{Status: res.StatusCode, Code: "UNKNOWN", Message: "request failed"}
		if env.Error != nil {
			apiErr.Code = env.Error.Code
			apiErr.Message = env.Error.Message
		}
		return apiErr
	}

	if out != nil && len(env.Data) > 0 {
		return json.Unmarshal(env.Data, out)
	}
	return nil
}

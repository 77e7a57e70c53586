// Package rest implements the repository contracts against the bookkeeping REST backend.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/maxviazov/installment-console/internal/config"
	"github.com/maxviazov/installment-console/internal/logger"
	"github.com/maxviazov/installment-console/internal/repository"
	"github.com/rs/zerolog"
)

// maxErrorBody caps how much of a failed response is read looking for a message.
const maxErrorBody = 64 << 10

// Observer is told about every backend call once it finished.
// status is 0 when no response arrived.
type Observer interface {
	ObserveCall(op string, status int, took time.Duration, err error)
}

type nopObserver struct{}

func (nopObserver) ObserveCall(string, int, time.Duration, error) {}

// Client is the shared HTTP plumbing behind the repositories in this package.
// It never retries: a failed call is reported once and the caller decides.
type Client struct {
	http      *http.Client
	base      *url.URL
	userAgent string
	log       zerolog.Logger
	observer  Observer
}

// Option customizes a Client.
type Option func(*Client)

// WithObserver attaches a call observer, e.g. metrics.
func WithObserver(o Observer) Option {
	return func(c *Client) {
		if o != nil {
			c.observer = o
		}
	}
}

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// New builds a client for cfg.BaseURL.
func New(cfg config.BackendConfig, log zerolog.Logger, opts ...Option) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, errors.New("backend base url is required")
	}
	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid backend base url: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("invalid backend base url %q: scheme and host required", cfg.BaseURL)
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	c := &Client{
		http:      &http.Client{Timeout: timeout},
		base:      base,
		userAgent: cfg.UserAgent,
		log:       log.With().Str("module", "repository").Str("component", "rest").Logger(),
		observer:  nopObserver{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// call describes one backend request.
type call struct {
	op     string
	method string
	path   string
	query  url.Values
	body   any
}

// do executes c and decodes a 2xx JSON body into out (if out is non-nil).
// Non-2xx answers become *repository.APIError carrying the backend's message.
func (c *Client) do(ctx context.Context, rc call, out any) (err error) {
	start := time.Now()
	status := 0
	defer func() {
		took := time.Since(start)
		c.observer.ObserveCall(rc.op, status, took, err)
		c.logCall(ctx, rc, status, took, err)
	}()

	req, err := c.newRequest(ctx, rc)
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return fmt.Errorf("%s: %w", rc.op, ctxErr)
		}
		return fmt.Errorf("%s: %w: %w", rc.op, repository.ErrUnavailable, err)
	}
	defer resp.Body.Close()
	status = resp.StatusCode

	if status < 200 || status > 299 {
		return fmt.Errorf("%s: %w", rc.op, &repository.APIError{Status: status, Message: errorMessage(resp.Body)})
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s: %w: %w", rc.op, repository.ErrBadResponse, err)
	}
	return nil
}

func (c *Client) newRequest(ctx context.Context, rc call) (*http.Request, error) {
	u := *c.base
	u.Path = c.base.Path + rc.path
	if len(rc.query) > 0 {
		u.RawQuery = rc.query.Encode()
	}

	var body io.Reader
	if rc.body != nil {
		raw, err := json.Marshal(rc.body)
		if err != nil {
			return nil, fmt.Errorf("%s: marshal request: %w", rc.op, err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, rc.method, u.String(), body)
	if err != nil {
		return nil, fmt.Errorf("%s: build request: %w", rc.op, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	if id := logger.RequestID(ctx); id != "" {
		req.Header.Set("X-Request-ID", id)
	}
	return req, nil
}

// errorMessage pulls {"error": "..."} (or {"message": "..."}) out of a failed response.
// Non-JSON bodies, like a framework's HTML 404 page, yield "".
func errorMessage(r io.Reader) string {
	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(io.LimitReader(r, maxErrorBody)).Decode(&payload); err != nil {
		return ""
	}
	if payload.Error != "" {
		return payload.Error
	}
	return payload.Message
}

// logCall maps the outcome to a level: transport failures are errors,
// 5xx are warnings, everything else is debug noise.
func (c *Client) logCall(ctx context.Context, rc call, status int, took time.Duration, err error) {
	l := logger.FromContext(ctx, c.log)
	var event *zerolog.Event
	switch {
	case err != nil && status == 0:
		event = l.Error().Err(err)
	case status >= 500:
		event = l.Warn().Err(err)
	case err != nil:
		event = l.Debug().Err(err)
	default:
		event = l.Debug()
	}
	event.
		Str("op", rc.op).
		Str("method", rc.method).
		Str("path", rc.path).
		Int("status", status).
		Dur("took", took).
		Msg("backend call")
}

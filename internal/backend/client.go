// Package backend holds the JSON-over-HTTP plumbing shared by the connector,
// ledger and public auth clients.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"publicapi/internal/common/middleware"
)

// Config holds the settings shared by all backend clients.
type Config struct {
	Timeout time.Duration `envconfig:"BACKEND_TIMEOUT" default:"30s"`
}

// Recorder observes every backend call.
type Recorder interface {
	ObserveBackend(backend string, status int, duration time.Duration)
}

// Client performs JSON requests against one backend service.
type Client struct {
	name       string
	baseURL    string
	httpClient *http.Client
	recorder   Recorder
	logger     *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithRecorder attaches a call recorder.
func WithRecorder(r Recorder) Option {
	return func(c *Client) { c.recorder = r }
}

// NewClient creates a client for the backend rooted at baseURL.
func NewClient(name, baseURL string, cfg Config, logger *slog.Logger, opts ...Option) *Client {
	c := &Client{
		name:    name,
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		logger: logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Request describes a single backend call.
type Request struct {
	Method string
	Path   string
	Query  url.Values
	Header http.Header
	Body   any
}

// Get issues a GET and decodes a 2xx body into out.
func (c *Client) Get(ctx context.Context, path string, query url.Values, out any) (int, error) {
	return c.Do(ctx, Request{Method: http.MethodGet, Path: path, Query: query}, out)
}

// Post issues a POST with a JSON body and decodes a 2xx body into out.
func (c *Client) Post(ctx context.Context, path string, body, out any) (int, error) {
	return c.Do(ctx, Request{Method: http.MethodPost, Path: path, Body: body}, out)
}

// Do performs the request. On a 2xx response it decodes the body into out
// (when out is non-nil and the body non-empty) and returns the status. Any
// other outcome is returned as *Error.
func (c *Client) Do(ctx context.Context, req Request, out any) (int, error) {
	target := c.baseURL + req.Path
	if len(req.Query) > 0 {
		target += "?" + req.Query.Encode()
	}

	var body io.Reader
	if req.Body != nil {
		b, err := json.Marshal(req.Body)
		if err != nil {
			return 0, fmt.Errorf("marshal %s request: %w", c.name, err)
		}
		body = bytes.NewReader(b)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, target, body)
	if err != nil {
		return 0, fmt.Errorf("create %s request: %w", c.name, err)
	}
	for k, vs := range req.Header {
		for _, v := range vs {
			httpReq.Header.Add(k, v)
		}
	}
	httpReq.Header.Set("Accept", "application/json")
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if id := middleware.GetCorrelationID(ctx); id != "" {
		httpReq.Header.Set(middleware.RequestIDHeader, id)
	}

	c.logger.Debug("calling backend",
		"backend", c.name,
		"method", req.Method,
		"url", target,
	)

	start := time.Now()
	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.observe(0, start)
		c.logger.Warn("backend unreachable",
			"backend", c.name,
			"method", req.Method,
			"url", target,
			"error", err,
		)
		return 0, &Error{Backend: c.name, Method: req.Method, URL: target, Err: err}
	}
	defer httpResp.Body.Close()
	c.observe(httpResp.StatusCode, start)

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return httpResp.StatusCode, &Error{
			Backend:    c.name,
			Method:     req.Method,
			URL:        target,
			StatusCode: httpResp.StatusCode,
			Err:        fmt.Errorf("read response: %w", err),
		}
	}

	if httpResp.StatusCode < 200 || httpResp.StatusCode > 299 {
		be := &Error{
			Backend:    c.name,
			Method:     req.Method,
			URL:        target,
			StatusCode: httpResp.StatusCode,
			Body:       respBody,
		}
		decodeErrorBody(be)
		c.logger.Warn("backend returned error",
			"backend", c.name,
			"method", req.Method,
			"url", target,
			"status", httpResp.StatusCode,
			"error_identifier", be.Identifier,
		)
		return httpResp.StatusCode, be
	}

	if out != nil && len(bytes.TrimSpace(respBody)) > 0 {
		if err := json.Unmarshal(respBody, out); err != nil {
			return httpResp.StatusCode, &Error{
				Backend:    c.name,
				Method:     req.Method,
				URL:        target,
				StatusCode: httpResp.StatusCode,
				Body:       respBody,
				Err:        fmt.Errorf("unmarshal response: %w", err),
			}
		}
	}

	return httpResp.StatusCode, nil
}

// Ping calls the backend healthcheck endpoint.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.Get(ctx, "/healthcheck", nil, nil)
	return err
}

func (c *Client) observe(status int, start time.Time) {
	if c.recorder != nil {
		c.recorder.ObserveBackend(c.name, status, time.Since(start))
	}
}

// PathEscape escapes a single path segment.
func PathEscape(s string) string {
	return url.PathEscape(s)
}

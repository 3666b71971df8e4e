package dispatch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// Client sends API requests relative to a host and namespace, in the manner
// of a browser application's ajax service. Every request goes through the
// Dispatcher's header and response hooks.
type Client struct {
	dispatcher *Dispatcher
	httpClient *http.Client
	host       string
	namespace  string
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient replaces http.DefaultClient. Its Transport must not be a
// dispatch.Transport for the same Dispatcher, or responses are checked twice.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// NewClient builds a client for host and namespace, e.g. "https://docs.example.com" and "api".
func NewClient(host, namespace string, d *Dispatcher, opts ...ClientOption) *Client {
	c := &Client{
		dispatcher: d,
		httpClient: http.DefaultClient,
		host:       strings.TrimRight(host, "/"),
		namespace:  strings.Trim(namespace, "/"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// URL resolves a request path. Absolute URLs are used as given.
func (c *Client) URL(path string) string {
	if u, err := url.Parse(path); err == nil && u.IsAbs() {
		return path
	}
	parts := []string{c.host}
	if c.namespace != "" {
		parts = append(parts, c.namespace)
	}
	if p := strings.TrimLeft(path, "/"); p != "" {
		parts = append(parts, p)
	}
	return strings.Join(parts, "/")
}

// Request sends a request with an optional JSON body and returns the result
// of the wrapped response handler. Transport errors are returned as they are.
func (c *Client) Request(ctx context.Context, method, path string, body any) (any, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("[Client Request] marshal body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.URL(path), reader)
	if err != nil {
		return nil, fmt.Errorf("[Client Request] %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for name, value := range c.dispatcher.Headers(ctx) {
		req.Header.Set(name, value)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("[Client Request] read body: %w", err)
	}

	return c.dispatcher.HandleResponse(ctx, resp.StatusCode, resp.Header, payload)
}

// Get requests path with no body.
func (c *Client) Get(ctx context.Context, path string) (any, error) {
	return c.Request(ctx, http.MethodGet, path, nil)
}

// Post sends body as JSON.
func (c *Client) Post(ctx context.Context, path string, body any) (any, error) {
	return c.Request(ctx, http.MethodPost, path, body)
}

// Patch sends body as JSON.
func (c *Client) Patch(ctx context.Context, path string, body any) (any, error) {
	return c.Request(ctx, http.MethodPatch, path, body)
}

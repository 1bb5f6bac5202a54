// Package client is a small Go client for the strictenc HTTP API.
//
// Encoding is a pure function of its inputs, so every call is safe to
// retry; the client retries transient failures (HTTP 5xx or network
// errors) with exponential backoff. Structured error bodies from the
// server decode back into *opcode.Error, so errors.Is works against the
// errs sentinels on both sides of the wire.
package client

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/strictenc/strictenc/opcode"
)

const (
	defaultTimeout = 30 * time.Second
	defaultRetries = 3

	initialBackoff   = 200 * time.Millisecond
	maxBackoff       = 3 * time.Second
	retryableMinCode = http.StatusInternalServerError // 500
)

// defaultTransport is a tuned HTTP transport reused across clients.
var defaultTransport = &http.Transport{
	Proxy:                 http.ProxyFromEnvironment,
	MaxIdleConns:          100,
	MaxIdleConnsPerHost:   10,
	IdleConnTimeout:       90 * time.Second,
	TLSHandshakeTimeout:   10 * time.Second,
	ExpectContinueTimeout: 1 * time.Second,
	ResponseHeaderTimeout: 10 * time.Second,
	ForceAttemptHTTP2:     true,
	ReadBufferSize:        16 * 1024,
	WriteBufferSize:       16 * 1024,
	DialContext: (&net.Dialer{
		Timeout:   30 * time.Second,
		KeepAlive: 30 * time.Second,
	}).DialContext,
}

// Config holds optional client parameters. Zero values use defaults.
type Config struct {
	BaseURL  string
	Timeout  time.Duration
	Retries  int
	ProxyURL string
}

// Client talks to a strictenc server with retry/backoff.
type Client struct {
	baseURL    string
	httpClient *http.Client
	retries    int
}

// Status is the response of the status endpoint.
type Status struct {
	Name         string `json:"name"`
	Version      string `json:"version"`
	CacheEntries int    `json:"cache_entries"`
}

// New creates a Client for the server at baseURL with a tuned Transport,
// default timeout, and retries.
func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout:   defaultTimeout,
			Transport: defaultTransport,
		},
		retries: defaultRetries,
	}
}

// NewWith creates a Client with provided config. Zero values use defaults.
func NewWith(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	retries := cfg.Retries
	if retries <= 0 {
		retries = defaultRetries
	}

	tr := defaultTransport.Clone()
	if cfg.ProxyURL != "" {
		if proxyFunc, err := proxyFromURLString(cfg.ProxyURL); err == nil {
			tr.Proxy = proxyFunc
		}
	}

	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: tr,
		},
		retries: retries,
	}
}

// Encode applies the instruction sequence to a single value.
func (c *Client) Encode(ctx context.Context, n int64, instructions string) ([]int, error) {
	var resp struct {
		Results []int `json:"results"`
	}
	err := c.postJSON(ctx, "/api/encode", map[string]any{
		"n":            n,
		"instructions": instructions,
	}, &resp)
	if err != nil {
		return nil, err
	}
	return resp.Results, nil
}

// EncodeBatch applies the instruction sequence to each value, one result
// row per input.
func (c *Client) EncodeBatch(ctx context.Context, values []int64, instructions string) ([][]int, error) {
	var resp struct {
		Results [][]int `json:"results"`
	}
	err := c.postJSON(ctx, "/api/encode/batch", map[string]any{
		"values":       values,
		"instructions": instructions,
	}, &resp)
	if err != nil {
		return nil, err
	}
	return resp.Results, nil
}

// EncodeText applies the instruction sequence to each character of text.
func (c *Client) EncodeText(ctx context.Context, text, instructions string) ([][]int, error) {
	var resp struct {
		Results [][]int `json:"results"`
	}
	err := c.postJSON(ctx, "/api/encode/text", map[string]any{
		"text":         text,
		"instructions": instructions,
	}, &resp)
	if err != nil {
		return nil, err
	}
	return resp.Results, nil
}

// EncodeBytes applies the instruction sequence to each byte of data.
func (c *Client) EncodeBytes(ctx context.Context, data []byte, instructions string) ([][]int, error) {
	var resp struct {
		Results [][]int `json:"results"`
	}
	err := c.postJSON(ctx, "/api/encode/bytes", map[string]any{
		"data":         base64.StdEncoding.EncodeToString(data),
		"instructions": instructions,
	}, &resp)
	if err != nil {
		return nil, err
	}
	return resp.Results, nil
}

// ClearCache drops the server's classification cache.
func (c *Client) ClearCache(ctx context.Context) error {
	_, err := c.do(ctx, http.MethodDelete, "/api/cache", nil)
	return err
}

// Status returns server name, version, and cache size.
func (c *Client) Status(ctx context.Context) (*Status, error) {
	data, err := c.do(ctx, http.MethodGet, "/api/status", nil)
	if err != nil {
		return nil, err
	}
	var st Status
	if err := json.Unmarshal(data, &st); err != nil {
		return nil, fmt.Errorf("decode status: %w", err)
	}
	return &st, nil
}

func (c *Client) postJSON(ctx context.Context, path string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}
	data, err := c.do(ctx, http.MethodPost, path, body)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// do performs one request with a simple retry policy for transient errors.
// The body is re-created per attempt.
func (c *Client) do(ctx context.Context, method, path string, body []byte) ([]byte, error) {
	retries := c.retries
	if retries < 1 {
		retries = 1
	}

	backoff := initialBackoff
	var lastErr error
	for attempt := 0; attempt < retries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
			}
			backoff *= 2
			if backoff > maxBackoff {
				backoff = maxBackoff
			}
		}

		req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(body))
		if err != nil {
			return nil, err
		}
		if body != nil {
			req.Header.Set("Content-Type", "application/json")
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = err
			continue
		}

		data, readErr := io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		if resp.StatusCode >= retryableMinCode {
			lastErr = fmt.Errorf("server error: %s", resp.Status)
			continue
		}
		if readErr != nil {
			return nil, readErr
		}
		if resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices {
			return data, nil
		}
		return nil, apiError(resp.StatusCode, data)
	}
	return nil, lastErr
}

// apiError reconstructs the server's structured error body. Anything else
// surfaces as a plain status error.
func apiError(status int, body []byte) error {
	var e opcode.Error
	if json.Unmarshal(body, &e) == nil && e.Code != "" {
		return &e
	}
	var generic struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(body, &generic) == nil && generic.Error != "" {
		return fmt.Errorf("status %d: %s", status, generic.Error)
	}
	return fmt.Errorf("unexpected status %d", status)
}

// proxyFromURLString parses a proxy URL and returns a Proxy function.
func proxyFromURLString(raw string) (func(*http.Request) (*url.URL, error), error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, err
	}
	return http.ProxyURL(u), nil
}

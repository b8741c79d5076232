package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultTimeout = 10 * time.Second

// Config describes how to reach one service. Every typed client is built
// from its own Config; there is no package level default.
type Config struct {
	BaseURL string
	Timeout time.Duration
	// Headers are sent with every request, e.g. an API key.
	Headers map[string]string
	// HTTPClient overrides the transport, mostly for tests.
	HTTPClient *http.Client
}

type HttpClient struct {
	baseURL    string
	headers    map[string]string
	httpClient *http.Client
}

func NewHttpClient(cfg Config) *HttpClient {
	hc := cfg.HTTPClient
	if hc == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		hc = &http.Client{Timeout: timeout}
	}
	return &HttpClient{
		baseURL:    cfg.BaseURL,
		headers:    cfg.Headers,
		httpClient: hc,
	}
}

type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

func (r *Response) DecodeJSON(target any) error {
	return json.Unmarshal(r.Body, target)
}

// DecodeData unwraps the {"data": ...} envelope every service answers with.
func (r *Response) DecodeData(target any) error {
	var wrapper struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(r.Body, &wrapper); err != nil {
		return fmt.Errorf("could not decode response envelope: %w", err)
	}
	if err := json.Unmarshal(wrapper.Data, target); err != nil {
		return fmt.Errorf("could not decode response data: %w", err)
	}
	return nil
}

// APIError is a non-2xx answer from a service.
type APIError struct {
	StatusCode int            `json:"-"`
	Code       string         `json:"code"`
	Message    string         `json:"message"`
	Details    map[string]any `json:"details,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%d %s: %s", e.StatusCode, e.Code, e.Message)
}

func (c *HttpClient) Get(ctx context.Context, path string) (*Response, error) {
	return c.Do(ctx, http.MethodGet, path, nil, nil)
}

func (c *HttpClient) Post(ctx context.Context, path string, body any) (*Response, error) {
	return c.Do(ctx, http.MethodPost, path, body, nil)
}

func (c *HttpClient) Patch(ctx context.Context, path string, body any) (*Response, error) {
	return c.Do(ctx, http.MethodPatch, path, body, nil)
}

func (c *HttpClient) Delete(ctx context.Context, path string) (*Response, error) {
	return c.Do(ctx, http.MethodDelete, path, nil, nil)
}

// Do sends a request and returns the response. Non-2xx answers are returned
// as *APIError.
func (c *HttpClient) Do(ctx context.Context, method, path string, body any, headers map[string]string) (*Response, error) {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for key, value := range c.headers {
		req.Header.Set(key, value)
	}
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	out := &Response{StatusCode: resp.StatusCode, Header: resp.Header, Body: respBody}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		if err := json.Unmarshal(respBody, apiErr); err != nil || apiErr.Message == "" {
			apiErr.Message = http.StatusText(resp.StatusCode)
		}
		return out, apiErr
	}
	return out, nil
}

// WaitForHealthy polls /health until it answers 200 or maxWait passes.
func (c *HttpClient) WaitForHealthy(ctx context.Context, maxWait time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, maxWait)
	defer cancel()

	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	for {
		if _, err := c.Get(ctx, "/health"); err == nil {
			return nil
		}
		select {
		case <-ctx.Done():
			return fmt.Errorf("service did not become healthy within %v", maxWait)
		case <-ticker.C:
		}
	}
}

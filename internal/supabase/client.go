package supabase

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	maxResponseBytes  = 8 << 20  // 8 MiB
	maxErrorBodyBytes = 32 << 10 // 32 KiB
)

// Client is the Supabase project client. It exposes the REST (PostgREST),
// auth (GoTrue), and storage sub-clients the site uses.
type Client struct {
	config Config

	restURL    string
	authURL    string
	storageURL string

	httpClient *http.Client

	auth    *AuthClient
	storage *StorageClient
}

// New creates a Supabase client.
func New(cfg Config) (*Client, error) {
	if cfg.ProjectURL == "" {
		return nil, fmt.Errorf("supabase: project URL is required")
	}
	if cfg.AnonKey == "" && cfg.ServiceKey == "" {
		return nil, fmt.Errorf("supabase: an anon key or service key is required")
	}

	baseURL := strings.TrimRight(cfg.ProjectURL, "/")
	parsed, err := url.Parse(baseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("supabase: invalid project URL %q", cfg.ProjectURL)
	}

	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}

	transport := http.DefaultTransport
	if base, ok := http.DefaultTransport.(*http.Transport); ok {
		cloned := base.Clone()
		if cloned.TLSClientConfig == nil {
			cloned.TLSClientConfig = &tls.Config{MinVersion: tls.VersionTLS12}
		} else if cloned.TLSClientConfig.MinVersion < tls.VersionTLS12 {
			cloned.TLSClientConfig = cloned.TLSClientConfig.Clone()
			cloned.TLSClientConfig.MinVersion = tls.VersionTLS12
		}
		transport = cloned
	}

	c := &Client{
		config:     cfg,
		restURL:    baseURL + "/rest/v1",
		authURL:    baseURL + "/auth/v1",
		storageURL: baseURL + "/storage/v1",
		httpClient: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: transport,
		},
	}

	c.auth = &AuthClient{client: c}
	c.storage = &StorageClient{client: c}

	return c, nil
}

// Auth returns the auth client.
func (c *Client) Auth() *AuthClient {
	return c.auth
}

// Storage returns the storage client.
func (c *Client) Storage() *StorageClient {
	return c.storage
}

// From starts a query against a table.
func (c *Client) From(table string) *QueryBuilder {
	return &QueryBuilder{
		client:  c,
		table:   table,
		method:  http.MethodGet,
		columns: "*",
		headers: make(map[string]string),
	}
}

// request performs an HTTP request authorized with the anon key.
func (c *Client) request(ctx context.Context, method, rawURL string, body []byte, headers map[string]string) ([]byte, int, error) {
	key := c.config.AnonKey
	if key == "" {
		key = c.config.ServiceKey
	}
	return c.do(ctx, method, rawURL, body, headers, key, key)
}

// requestWithServiceKey performs an HTTP request authorized with the service
// role key. RLS does not apply.
func (c *Client) requestWithServiceKey(ctx context.Context, method, rawURL string, body []byte, headers map[string]string) ([]byte, int, error) {
	if c.config.ServiceKey == "" {
		return nil, 0, fmt.Errorf("supabase: service key not configured")
	}
	return c.do(ctx, method, rawURL, body, headers, c.config.ServiceKey, c.config.ServiceKey)
}

// requestWithToken performs an HTTP request on behalf of a signed-in user.
// The anon key identifies the project; the access token carries the identity.
func (c *Client) requestWithToken(ctx context.Context, method, rawURL string, body []byte, headers map[string]string, accessToken string) ([]byte, int, error) {
	return c.do(ctx, method, rawURL, body, headers, c.config.AnonKey, accessToken)
}

func (c *Client) do(ctx context.Context, method, rawURL string, body []byte, headers map[string]string, apiKey, bearer string) ([]byte, int, error) {
	var reqBody io.Reader
	if body != nil {
		reqBody = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, reqBody)
	if err != nil {
		return nil, 0, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("apikey", apiKey)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	limit := int64(maxResponseBytes)
	if resp.StatusCode >= 400 {
		limit = maxErrorBodyBytes
	}
	respBody, err := io.ReadAll(io.LimitReader(resp.Body, limit))
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("read response: %w", err)
	}

	return respBody, resp.StatusCode, nil
}

// parseError decodes an error response body into *Error.
func parseError(body []byte, statusCode int) error {
	var errResp struct {
		Code             string `json:"code"`
		ErrorCode        string `json:"error_code"`
		Message          string `json:"message"`
		Msg              string `json:"msg"`
		Details          string `json:"details"`
		Hint             string `json:"hint"`
		Err              string `json:"error"`
		ErrorDescription string `json:"error_description"`
	}

	if err := json.Unmarshal(body, &errResp); err != nil {
		return &Error{
			Code:       "unknown",
			Message:    strings.TrimSpace(string(body)),
			StatusCode: statusCode,
		}
	}

	code := errResp.Code
	if code == "" {
		code = errResp.ErrorCode
	}
	if code == "" {
		code = errResp.Err
	}

	msg := errResp.Message
	if msg == "" {
		msg = errResp.Msg
	}
	if msg == "" {
		msg = errResp.ErrorDescription
	}
	if msg == "" {
		msg = errResp.Err
	}

	return &Error{
		Code:       code,
		Message:    msg,
		Details:    errResp.Details,
		Hint:       errResp.Hint,
		StatusCode: statusCode,
	}
}

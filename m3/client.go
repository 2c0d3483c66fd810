package m3

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

const defaultTimeout = 30 * time.Second

// Client owns the connection details for one M3 microservice: the base URL
// and the session token obtained from Authenticate. A Client starts
// unauthenticated; a successful Authenticate is the only transition to the
// authenticated state and there is no way back (no logout). A failed
// Authenticate leaves the prior state untouched.
//
// The token is guarded by a mutex so a Client may be shared across
// goroutines, though a session is still intended to be driven by one caller
// at a time.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     zerolog.Logger

	mu    sync.RWMutex
	token string
}

// New creates a client for the service at baseURL. The URL is normalized to
// end in exactly one slash. No network call is made.
func New(baseURL string, opts ...Option) *Client {
	options := clientOptions{
		timeout: defaultTimeout,
		logger:  zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(&options)
	}

	httpClient := options.httpClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: options.timeout}
	}

	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/") + "/",
		httpClient: httpClient,
		logger:     options.logger,
	}
}

// BaseURL returns the normalized base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Logger returns the logger the client was configured with.
func (c *Client) Logger() zerolog.Logger {
	return c.logger
}

// URLTo joins path onto the base URL. Empty segments are dropped, so
// leading, trailing and repeated slashes in path all yield the same URL.
func (c *Client) URLTo(path string) string {
	var parts []string
	for _, part := range strings.Split(path, "/") {
		if part != "" {
			parts = append(parts, part)
		}
	}
	return c.baseURL + strings.Join(parts, "/")
}

// Authenticate exchanges the client secret for a session token via
// POST {base}/auth with an APIKEY authorization header. On any non-200
// response it returns *AuthenticationError and leaves the session state
// unchanged.
func (c *Client) Authenticate(ctx context.Context, secret string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.URLTo("auth"), nil)
	if err != nil {
		return fmt.Errorf("failed to create auth request: %w", err)
	}
	req.Header.Set("Authorization", "APIKEY "+secret)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("auth request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Debug().Int("status", resp.StatusCode).Msg("authentication rejected")
		return &AuthenticationError{Secret: secret}
	}

	var payload struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return fmt.Errorf("failed to decode auth response: %w", err)
	}
	if payload.AccessToken == "" {
		return fmt.Errorf("auth response missing access_token")
	}

	c.mu.Lock()
	c.token = payload.AccessToken
	c.mu.Unlock()

	c.logger.Debug().Str("base_url", c.baseURL).Msg("authenticated")
	return nil
}

// Authenticated reports whether a session token is held.
func (c *Client) Authenticated() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token != ""
}

// AuthorizationHeader returns the bearer header value for the current
// session. Every privileged call passes through here, so an unauthenticated
// client fails with *AuthenticationMissingError before any network I/O.
func (c *Client) AuthorizationHeader() (string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.token == "" {
		return "", &AuthenticationMissingError{}
	}
	return "BEARER " + c.token, nil
}

// Get issues a GET and returns the response body after status mapping.
func (c *Client) Get(ctx context.Context, path string, params url.Values) ([]byte, error) {
	return c.do(ctx, http.MethodGet, path, params, nil, "", false)
}

// GetJSON issues a GET and decodes the response body into an untyped value
// suitable for Decode.
func (c *Client) GetJSON(ctx context.Context, path string, params url.Values) (any, error) {
	body, err := c.Get(ctx, path, params)
	if err != nil {
		return nil, err
	}
	return UnmarshalJSON(body)
}

// PostForm issues an authorized POST with a urlencoded form body and
// returns the decoded JSON response.
func (c *Client) PostForm(ctx context.Context, path string, form url.Values) (any, error) {
	body, err := c.do(ctx, http.MethodPost, path, nil,
		strings.NewReader(form.Encode()), "application/x-www-form-urlencoded", true)
	if err != nil {
		return nil, err
	}
	return UnmarshalJSON(body)
}

// PostJSON issues an authorized POST with a JSON body and returns the
// decoded JSON response.
func (c *Client) PostJSON(ctx context.Context, path string, payload any) (any, error) {
	body, err := c.doJSON(ctx, http.MethodPost, path, nil, payload)
	if err != nil {
		return nil, err
	}
	return UnmarshalJSON(body)
}

// PutJSON issues an authorized PUT with a JSON body. The response body is
// returned raw; most write endpoints return nothing useful on PUT.
func (c *Client) PutJSON(ctx context.Context, path string, params url.Values, payload any) ([]byte, error) {
	return c.doJSON(ctx, http.MethodPut, path, params, payload)
}

// Do executes a caller-built request, reads the body and runs the status
// mapper. Used by endpoints with non-JSON bodies such as multipart uploads.
func (c *Client) Do(req *http.Request) ([]byte, error) {
	c.logger.Debug().Str("method", req.Method).Str("url", req.URL.String()).Msg("issuing request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if err := CheckStatus(resp.StatusCode, body); err != nil {
		return nil, err
	}
	return body, nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, params url.Values, payload any) ([]byte, error) {
	encoded, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request payload: %w", err)
	}
	return c.do(ctx, method, path, params, bytes.NewReader(encoded), "application/json", true)
}

func (c *Client) do(ctx context.Context, method, path string, params url.Values, body io.Reader, contentType string, authorized bool) ([]byte, error) {
	var auth string
	if authorized {
		header, err := c.AuthorizationHeader()
		if err != nil {
			return nil, err
		}
		auth = header
	}

	requestURL := c.URLTo(path)
	if len(params) > 0 {
		requestURL += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, requestURL, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	return c.Do(req)
}

// UnmarshalJSON decodes a response body into an untyped value suitable for
// Decode.
func UnmarshalJSON(body []byte) (any, error) {
	var value any
	if err := json.Unmarshal(body, &value); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return value, nil
}

// Package client talks to the Gaia REST API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"gaia/internal/errors"
)

const (
	// DefaultBaseURL matches the server's default port and API prefix.
	DefaultBaseURL = "http://localhost:5001/api"

	defaultTimeout = 30 * time.Second
)

// Client is a thin JSON client over the API envelope.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default client, which times out after 30s.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithLogger sets the logger used for request tracing.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// New creates a client for baseURL, for example "http://localhost:5001/api".
func New(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}

	return c
}

// BaseURL returns the API root the client sends requests to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Register creates an account and returns the session token with the stored user.
func (c *Client) Register(ctx context.Context, req *RegisterRequest) (*AuthResult, error) {
	var out AuthResult
	if err := c.do(ctx, http.MethodPost, "/auth/register", "", req, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

// Login exchanges credentials for a session token.
func (c *Client) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	body := map[string]string{"email": email, "password": password}

	var out AuthResult
	if err := c.do(ctx, http.MethodPost, "/auth/login", "", body, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

// Me resolves token to its user.
func (c *Client) Me(ctx context.Context, token string) (*User, error) {
	var out userEnvelope
	if err := c.do(ctx, http.MethodGet, "/auth/me", token, nil, &out); err != nil {
		return nil, err
	}

	return out.User, nil
}

// VerifyToken asks the server whether token is valid.
func (c *Client) VerifyToken(ctx context.Context, token string) (*TokenInfo, error) {
	var out struct {
		Valid   bool `json:"valid"`
		Decoded struct {
			ID        string `json:"id"`
			IssuedAt  int64  `json:"iat"`
			ExpiresAt int64  `json:"exp"`
		} `json:"decoded"`
	}
	if err := c.do(ctx, http.MethodPost, "/auth/verify-token", "", map[string]string{"token": token}, &out); err != nil {
		return nil, err
	}

	return &TokenInfo{
		Valid:     out.Valid,
		UserID:    out.Decoded.ID,
		IssuedAt:  time.Unix(out.Decoded.IssuedAt, 0).UTC(),
		ExpiresAt: time.Unix(out.Decoded.ExpiresAt, 0).UTC(),
	}, nil
}

// Logout notifies the server. Tokens are stateless, so this never invalidates anything.
func (c *Client) Logout(ctx context.Context, token string) error {
	return c.do(ctx, http.MethodPost, "/auth/logout", token, nil, nil)
}

// SignEarthCharter marks the token's user as a Planetarian.
func (c *Client) SignEarthCharter(ctx context.Context, token string) (*User, error) {
	var out userEnvelope
	if err := c.do(ctx, http.MethodPost, "/user/charter/sign", token, nil, &out); err != nil {
		return nil, err
	}

	return out.User, nil
}

// UpdateLocation replaces the stored location of the token's user.
func (c *Client) UpdateLocation(ctx context.Context, token string, loc *Location) (*User, error) {
	var out userEnvelope
	if err := c.do(ctx, http.MethodPatch, "/user/location", token, loc, &out); err != nil {
		return nil, err
	}

	return out.User, nil
}

// CheckEmail reports whether an account already uses email.
func (c *Client) CheckEmail(ctx context.Context, email string) (bool, error) {
	var out struct {
		Exists bool `json:"exists"`
	}
	if err := c.do(ctx, http.MethodPost, "/auth/check-email", "", map[string]string{"email": email}, &out); err != nil {
		return false, err
	}

	return out.Exists, nil
}

// Countries downloads the world FeatureCollection as raw GeoJSON.
func (c *Client) Countries(ctx context.Context) (json.RawMessage, error) {
	var out json.RawMessage
	if err := c.do(ctx, http.MethodGet, "/countries", "", nil, &out); err != nil {
		return nil, err
	}

	return out, nil
}

// CountryStats summarizes the world dataset.
func (c *Client) CountryStats(ctx context.Context) (*CountryStats, error) {
	var out CountryStats
	if err := c.do(ctx, http.MethodGet, "/countries/stats", "", nil, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func (c *Client) do(ctx context.Context, method, path, token string, in, out any) error {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return errors.WithStack(err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return errors.WithStack(err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Wrapf(err, "%s %s", method, path)
	}
	defer resp.Body.Close()

	c.logger.Debug("API request",
		slog.String("method", method),
		slog.String("path", path),
		slog.Int("status", resp.StatusCode),
		slog.Duration("latency", time.Since(start)),
	)

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrap(err, "failed to read response body")
	}

	// A body that is not an envelope still produces an APIError from the status line.
	var env envelope
	_ = json.Unmarshal(raw, &env)

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return newAPIError(resp.StatusCode, &env)
	}

	if out == nil || len(env.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return errors.Wrapf(err, "failed to decode %s %s response", method, path)
	}

	return nil
}

// Package client is a Go client for the admin auth and data endpoints. It
// keeps the session token in a TokenStore and drops it as soon as the server
// reports the session invalid.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	authPath = "/functions/admin-auth"
	dataPath = "/functions/admin-data"

	defaultTimeout = 15 * time.Second
	maxErrorBody   = 64 << 10
)

var (
	// ErrSessionExpired matches any error for a missing, expired or revoked
	// session. The caller should log in again rather than retry.
	ErrSessionExpired = errors.New("admin session expired")
	// ErrNotAuthenticated is returned by calls that need a token when none is held.
	ErrNotAuthenticated = errors.New("not authenticated")
)

// APIError is a non-2xx response from the server.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("admin api: %d %s", e.Status, e.Message)
}

// Is makes errors.Is(err, ErrSessionExpired) true for session rejections.
func (e *APIError) Is(target error) bool {
	return target == ErrSessionExpired && e.sessionRejected()
}

func (e *APIError) sessionRejected() bool {
	return e.Status == http.StatusUnauthorized &&
		(e.Code == "INVALID_SESSION" || e.Code == "AUTH_REQUIRED")
}

type Option func(*AdminClient)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *AdminClient) { c.httpClient = hc }
}

func WithTokenStore(store TokenStore) Option {
	return func(c *AdminClient) { c.tokens = store }
}

type AdminClient struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenStore
}

func New(baseURL string, opts ...Option) *AdminClient {
	c := &AdminClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
		tokens:     NewMemoryTokenStore(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// HasToken reports whether a token is held locally. It says nothing about
// whether the server still accepts it; use Restore for that.
func (c *AdminClient) HasToken() bool {
	return c.tokens.Token() != ""
}

// Restore checks a remembered token with the server. An invalid token is
// cleared. Transport failures leave it in place and are returned.
func (c *AdminClient) Restore(ctx context.Context) (bool, error) {
	token := c.tokens.Token()
	if token == "" {
		return false, nil
	}

	var resp struct {
		Valid bool `json:"valid"`
	}
	if err := c.post(ctx, authPath, map[string]string{
		"action":       "validate-session",
		"sessionToken": token,
	}, &resp); err != nil {
		return false, err
	}

	if !resp.Valid {
		c.tokens.Clear()
	}
	return resp.Valid, nil
}

func (c *AdminClient) CheckInit(ctx context.Context) (bool, error) {
	var resp struct {
		NeedsInit bool `json:"needsInit"`
	}
	if err := c.post(ctx, authPath, map[string]string{"action": "check-init"}, &resp); err != nil {
		return false, err
	}
	return resp.NeedsInit, nil
}

func (c *AdminClient) InitPassword(ctx context.Context, password string) error {
	return c.post(ctx, authPath, map[string]string{
		"action":   "init-password",
		"password": password,
	}, nil)
}

// Login authenticates and keeps the new token. It returns the session expiry.
func (c *AdminClient) Login(ctx context.Context, username, password string) (time.Time, error) {
	var resp struct {
		SessionToken string    `json:"sessionToken"`
		ExpiresAt    time.Time `json:"expiresAt"`
	}
	if err := c.post(ctx, authPath, map[string]string{
		"action":   "login",
		"username": username,
		"password": password,
	}, &resp); err != nil {
		return time.Time{}, err
	}
	if resp.SessionToken == "" {
		return time.Time{}, errors.New("admin api: login response has no session token")
	}

	c.tokens.SetToken(resp.SessionToken)
	return resp.ExpiresAt, nil
}

// Logout forgets the local token even when the server call fails.
func (c *AdminClient) Logout(ctx context.Context) error {
	token := c.tokens.Token()
	c.tokens.Clear()
	if token == "" {
		return nil
	}
	return c.post(ctx, authPath, map[string]string{
		"action":       "logout",
		"sessionToken": token,
	}, nil)
}

func (c *AdminClient) ChangePassword(ctx context.Context, currentPassword, newPassword string) error {
	token := c.tokens.Token()
	if token == "" {
		return ErrNotAuthenticated
	}
	return c.authorized(c.post(ctx, authPath, map[string]string{
		"action":       "change-password",
		"sessionToken": token,
		"password":     currentPassword,
		"newPassword":  newPassword,
	}, nil))
}

// Call runs a data action with the held token. When out is non-nil the
// response's data field is decoded into it.
func (c *AdminClient) Call(ctx context.Context, action string, data any, out any) error {
	token := c.tokens.Token()
	if token == "" {
		return ErrNotAuthenticated
	}

	body := map[string]any{
		"action":       action,
		"sessionToken": token,
	}
	if data != nil {
		body["data"] = data
	}

	var resp struct {
		Data json.RawMessage `json:"data"`
	}
	if err := c.authorized(c.post(ctx, dataPath, body, &resp)); err != nil {
		return err
	}

	if out == nil || len(resp.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(resp.Data, out); err != nil {
		return fmt.Errorf("decode %s response: %w", action, err)
	}
	return nil
}

// authorized drops the local token when err is a session rejection.
func (c *AdminClient) authorized(err error) error {
	if errors.Is(err, ErrSessionExpired) {
		c.tokens.Clear()
	}
	return err
}

func (c *AdminClient) post(ctx context.Context, path string, body any, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("admin api request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return decodeAPIError(resp)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}

	var body struct {
		Error string `json:"error"`
		Code  string `json:"code"`
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxErrorBody)).Decode(&body); err == nil {
		if body.Error != "" {
			apiErr.Message = body.Error
		}
		apiErr.Code = body.Code
	}
	return apiErr
}

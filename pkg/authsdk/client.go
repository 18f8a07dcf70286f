package authsdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// SDKClient is a client for the AppSimple API. It performs the unauthenticated
// operations and logs sessions in.
type SDKClient struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewSDKClient creates a new API client.
func NewSDKClient(baseURL string) *SDKClient {
	return &SDKClient{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Login exchanges credentials for a token. On failure the error is
// ErrInvalidCredentials whether the user exists or not.
func (c *SDKClient) Login(ctx context.Context, username, password string) (*LoginResponse, error) {
	body, err := json.Marshal(LoginRequest{Username: username, Password: password})
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	resp, err := c.doRequest(ctx, http.MethodPost, "/api/auth/login", bytes.NewReader(body), jsonHeaders)
	if err != nil {
		return nil, err
	}

	var loginResp LoginResponse
	if err := decodeJSON(resp, &loginResp, http.StatusOK); err != nil {
		return nil, err
	}

	return &loginResp, nil
}

// Authenticate logs in and stores the result in s. The principal is loaded
// from /api/auth/me so the session carries the uid and email as well.
func (c *SDKClient) Authenticate(ctx context.Context, s *Session, username, password string) error {
	loginResp, err := c.Login(ctx, username, password)
	if err != nil {
		return err
	}

	resp, err := c.doRequest(ctx, http.MethodGet, "/api/auth/me", nil, map[string]string{
		"Authorization": "Bearer " + loginResp.Token,
	})
	if err != nil {
		return err
	}

	var me UserResponse
	if err := decodeJSON(resp, &me, http.StatusOK); err != nil {
		return err
	}

	principal, err := me.Principal()
	if err != nil {
		return fmt.Errorf("unexpected role in profile: %w", err)
	}

	s.Login(principal, loginResp.Token)
	return nil
}

// LoginSession creates a session bound to this client and logs it in.
func (c *SDKClient) LoginSession(ctx context.Context, username, password string) (*Session, error) {
	s := NewSession(c)
	if err := c.Authenticate(ctx, s, username, password); err != nil {
		return nil, err
	}
	return s, nil
}

// GetLiveness checks if the service is alive.
func (c *SDKClient) GetLiveness(ctx context.Context) (*HealthResponse, error) {
	return c.health(ctx, "/livez")
}

// GetReadiness checks if the service is ready.
func (c *SDKClient) GetReadiness(ctx context.Context) (*HealthResponse, error) {
	return c.health(ctx, "/readyz")
}

func (c *SDKClient) health(ctx context.Context, path string) (*HealthResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, path, nil, nil)
	if err != nil {
		return nil, err
	}

	var health HealthResponse
	if err := decodeJSON(resp, &health, http.StatusOK); err != nil {
		return nil, err
	}

	return &health, nil
}

// File: internal/whop/client.go
// Package whop talks to the Whop commerce API to check whether a user holds a
// paid membership of the configured company.
package whop

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// ErrNoValidMembership means the account exists but holds no valid, completed
// membership of the configured company.
var ErrNoValidMembership = errors.New("no valid membership for this company")

// Membership is the subset of a Whop membership record the service cares
// about.
type Membership struct {
	ID      string `json:"id"`
	Valid   bool   `json:"valid"`
	Status  string `json:"status"`
	Email   string `json:"email"`
	Product struct {
		ID        string `json:"id"`
		CompanyID string `json:"company_id"`
	} `json:"product"`
}

// UserInfo is the profile returned for an OAuth access token.
type UserInfo struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Username string `json:"username"`
}

// Verifier is what the handlers depend on; Client is the real implementation.
type Verifier interface {
	AuthorizationURL(redirectURI, state string) string
	// VerifyCode exchanges an authorization code and returns the first valid
	// membership, or ErrNoValidMembership.
	VerifyCode(ctx context.Context, code, redirectURI string) (*Membership, error)
	// VerifyEmail checks company memberships for the given customer email.
	VerifyEmail(ctx context.Context, email string) (*Membership, error)
	// VerifyAccessToken re-validates a previously obtained user access token
	// against a specific membership id.
	VerifyAccessToken(ctx context.Context, accessToken, membershipID string) (*Membership, error)
}

// Config carries the Whop app credentials.
type Config struct {
	APIKey       string
	AppID        string
	ClientSecret string
	CompanyID    string
	// BaseURL / AuthBaseURL default to the public endpoints; tests override.
	BaseURL     string
	AuthBaseURL string
}

type Client struct {
	cfg        Config
	httpClient *http.Client
}

var _ Verifier = (*Client)(nil)

func NewClient(cfg Config, httpClient *http.Client) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.whop.com"
	}
	if cfg.AuthBaseURL == "" {
		cfg.AuthBaseURL = "https://whop.com"
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{cfg: cfg, httpClient: httpClient}
}

// AuthorizationURL builds the browser redirect target starting the OAuth
// flow. state must be the opaque server-side pending-authorization id.
func (c *Client) AuthorizationURL(redirectURI, state string) string {
	q := url.Values{}
	q.Set("client_id", c.cfg.AppID)
	q.Set("redirect_uri", redirectURI)
	q.Set("response_type", "code")
	q.Set("scope", "read_user read_memberships")
	q.Set("state", state)
	return c.cfg.AuthBaseURL + "/oauth/?" + q.Encode()
}

func (c *Client) VerifyCode(ctx context.Context, code, redirectURI string) (*Membership, error) {
	accessToken, err := c.exchangeCode(ctx, code, redirectURI)
	if err != nil {
		return nil, err
	}
	memberships, err := c.listUserMemberships(ctx, accessToken)
	if err != nil {
		return nil, err
	}
	return c.findValid(memberships, "")
}

func (c *Client) VerifyEmail(ctx context.Context, email string) (*Membership, error) {
	q := url.Values{}
	q.Set("email", email)
	q.Set("company_id", c.cfg.CompanyID)

	var out struct {
		Data []Membership `json:"data"`
	}
	if err := c.get(ctx, "/api/v2/memberships?"+q.Encode(), c.cfg.APIKey, &out); err != nil {
		return nil, err
	}
	return c.findValid(out.Data, "")
}

func (c *Client) VerifyAccessToken(ctx context.Context, accessToken, membershipID string) (*Membership, error) {
	memberships, err := c.listUserMemberships(ctx, accessToken)
	if err != nil {
		return nil, err
	}
	return c.findValid(memberships, membershipID)
}

// UserInfo fetches the profile behind an OAuth access token.
func (c *Client) UserInfo(ctx context.Context, accessToken string) (*UserInfo, error) {
	var out UserInfo
	if err := c.get(ctx, "/api/v2/me", accessToken, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) exchangeCode(ctx context.Context, code, redirectURI string) (string, error) {
	data := url.Values{}
	data.Set("grant_type", "authorization_code")
	data.Set("code", code)
	data.Set("client_id", c.cfg.AppID)
	data.Set("client_secret", c.cfg.ClientSecret)
	data.Set("redirect_uri", redirectURI)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/api/v2/oauth/token", strings.NewReader(data.Encode()))
	if err != nil {
		return "", fmt.Errorf("build token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("token exchange request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("read token response: %w", err)
	}
	if resp.StatusCode >= 300 {
		return "", fmt.Errorf("token exchange failed: status=%d", resp.StatusCode)
	}

	var tok struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.Unmarshal(body, &tok); err != nil {
		return "", fmt.Errorf("decode token response: %w", err)
	}
	if tok.AccessToken == "" {
		return "", fmt.Errorf("token exchange returned no access token")
	}
	return tok.AccessToken, nil
}

func (c *Client) listUserMemberships(ctx context.Context, accessToken string) ([]Membership, error) {
	var out struct {
		Data []Membership `json:"data"`
	}
	if err := c.get(ctx, "/api/v2/me/memberships", accessToken, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

func (c *Client) get(ctx context.Context, path, bearer string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.BaseURL+path, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+bearer)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("whop request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode >= 300 {
		return fmt.Errorf("whop request failed: status=%d", resp.StatusCode)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// findValid applies the membership acceptance rule: valid, completed, and
// belonging to the configured company. wantID additionally pins a specific
// membership.
func (c *Client) findValid(memberships []Membership, wantID string) (*Membership, error) {
	for i := range memberships {
		m := &memberships[i]
		if wantID != "" && m.ID != wantID {
			continue
		}
		if m.Valid && m.Status == "completed" && m.Product.CompanyID == c.cfg.CompanyID {
			return m, nil
		}
	}
	return nil, ErrNoValidMembership
}

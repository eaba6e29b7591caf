// Package session coordinates durable persistence of onboarding sessions
// across the device-local cache and the remote session API.
package session

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/jonathan/onboarding-engine/internal/auth"
	"github.com/jonathan/onboarding-engine/internal/types"
)

// DefaultTimeout is the default HTTP request timeout.
const DefaultTimeout = 30 * time.Second

// APIError represents a non-success response from the session or profile API.
type APIError struct {
	StatusCode int
	Path       string
	Body       string
}

func (e *APIError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("api error: %s returned HTTP %d: %s", e.Path, e.StatusCode, e.Body)
	}
	return fmt.Sprintf("api error: %s returned HTTP %d", e.Path, e.StatusCode)
}

// ClientOptions configures the API client.
type ClientOptions struct {
	Timeout    time.Duration
	HTTPClient *http.Client
}

// Client calls the bearer-authenticated onboarding and profile endpoints.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  auth.TokenProvider
}

// NewClient creates a Client for the given API base URL.
func NewClient(baseURL string, tokens auth.TokenProvider, opts *ClientOptions) *Client {
	httpClient := &http.Client{Timeout: DefaultTimeout}
	if opts != nil {
		if opts.HTTPClient != nil {
			httpClient = opts.HTTPClient
		} else if opts.Timeout > 0 {
			httpClient = &http.Client{Timeout: opts.Timeout}
		}
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
		tokens:  tokens,
	}
}

// GetSession fetches the active onboarding session for the authenticated
// user. Returns nil with no error when no session exists.
func (c *Client) GetSession(ctx context.Context) (*types.OnboardingSession, error) {
	var sess *types.OnboardingSession
	err := c.do(ctx, http.MethodGet, "/onboarding/session", nil, &sess)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
			return nil, nil
		}
		return nil, err
	}
	return sess, nil
}

// SaveSession upserts the session snapshot and returns the stored record.
func (c *Client) SaveSession(ctx context.Context, sess *types.OnboardingSession) (*types.OnboardingSession, error) {
	var saved types.OnboardingSession
	if err := c.do(ctx, http.MethodPost, "/onboarding/session", sess, &saved); err != nil {
		return nil, err
	}
	return &saved, nil
}

// DeleteSession clears the active session on the server.
func (c *Client) DeleteSession(ctx context.Context) error {
	return c.do(ctx, http.MethodDelete, "/onboarding/session", nil, nil)
}

// CompleteProfile submits the flat profile payload, finishing onboarding.
func (c *Client) CompleteProfile(ctx context.Context, payload *types.CompletionPayload) (*types.CompletedProfile, error) {
	var profile types.CompletedProfile
	if err := c.do(ctx, http.MethodPut, "/profile/onboarding", payload, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// SkillSuggestions fetches curated skill recommendations for a role. Both
// filters are optional.
func (c *Client) SkillSuggestions(ctx context.Context, role, experience string) ([]types.SkillSuggestion, error) {
	query := url.Values{}
	if role != "" {
		query.Set("role", role)
	}
	if experience != "" {
		query.Set("experience", experience)
	}
	path := "/onboarding/skill-suggestions"
	if encoded := query.Encode(); encoded != "" {
		path += "?" + encoded
	}

	var suggestions []types.SkillSuggestion
	if err := c.do(ctx, http.MethodGet, path, nil, &suggestions); err != nil {
		return nil, err
	}
	return suggestions, nil
}

// RecordEvent posts a tracking event. Callers treat this as fire-and-forget;
// the error return exists for tests.
func (c *Client) RecordEvent(ctx context.Context, event *types.AnalyticsEvent) error {
	return c.do(ctx, http.MethodPost, "/onboarding/analytics", event, nil)
}

// do performs an authenticated JSON request. A nil out discards the response
// body; a non-2xx status yields an *APIError.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	token, err := c.tokens.Token(ctx)
	if err != nil {
		return fmt.Errorf("failed to obtain bearer token: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{
			StatusCode: resp.StatusCode,
			Path:       path,
			Body:       strings.TrimSpace(string(respBody)),
		}
	}

	if out == nil || len(respBody) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

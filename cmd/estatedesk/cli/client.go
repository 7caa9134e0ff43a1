package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/estatedesk/estatedesk/internal/dashboard"
	"github.com/estatedesk/estatedesk/internal/domain"
)

// APIClient handles HTTP communication with the EstateDesk server. It
// implements dashboard.Fetcher so the dashboard command can drive it
// directly.
type APIClient struct {
	BaseURL    string
	Token      string
	HTTPClient *http.Client
}

// APIError represents an error response from the API.
type APIError struct {
	StatusCode int
	Message    string `json:"error"`
	Detail     string `json:"detail"`
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("API error (%d): %s - %s", e.StatusCode, e.Message, e.Detail)
	}
	if e.Message != "" {
		return fmt.Sprintf("API error (%d): %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("API error (%d)", e.StatusCode)
}

// NewClient creates a new APIClient from stored credentials.
func NewClient() (*APIClient, error) {
	tokenData, err := LoadToken()
	if err != nil {
		return nil, err
	}
	return &APIClient{
		BaseURL: strings.TrimRight(tokenData.Server, "/"),
		Token:   tokenData.Token,
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}, nil
}

// NewClientWithURL creates a new APIClient with an explicit server URL (for login).
func NewClientWithURL(serverURL string) *APIClient {
	return &APIClient{
		BaseURL: strings.TrimRight(serverURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (c *APIClient) do(ctx context.Context, method, path string, body interface{}, result interface{}) error {
	var bodyReader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(b)
	}

	url := c.BaseURL + path
	req, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("request to %s failed: %w", url, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		// Try to parse structured error
		_ = json.Unmarshal(respBody, apiErr)
		if apiErr.Message == "" {
			apiErr.Message = http.StatusText(resp.StatusCode)
		}
		return apiErr
	}

	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("failed to parse response: %w", err)
		}
	}

	return nil
}

// Login authenticates with email/password and returns a JWT token.
func (c *APIClient) Login(ctx context.Context, email, password string) (string, error) {
	var resp struct {
		Token string `json:"token"`
	}

	err := c.do(ctx, "POST", "/api/v1/auth/login", map[string]string{
		"email":    email,
		"password": password,
	}, &resp)

	if err != nil {
		return "", err
	}

	if resp.Token == "" {
		return "", fmt.Errorf("server returned empty token")
	}

	return resp.Token, nil
}

// UserResponse is the authenticated user's profile.
type UserResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

// Me returns the profile behind the stored token.
func (c *APIClient) Me(ctx context.Context) (*UserResponse, error) {
	var resp UserResponse
	if err := c.do(ctx, "GET", "/api/v1/auth/me", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// SiteVisits fetches the caller's scheduled site visits.
func (c *APIClient) SiteVisits(ctx context.Context) ([]dashboard.SiteVisit, error) {
	var resp []dashboard.SiteVisit
	err := c.do(ctx, "GET", "/api/v1/site-visits?status=scheduled", nil, &resp)
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// LeadsNeedingFollowup fetches open leads with a follow-up date set.
func (c *APIClient) LeadsNeedingFollowup(ctx context.Context) ([]dashboard.Lead, error) {
	var resp []dashboard.Lead
	err := c.do(ctx, "GET", "/api/v1/leads?needs_followup=true", nil, &resp)
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// AgentStats fetches the per-agent stats rollup.
func (c *APIClient) AgentStats(ctx context.Context, userID string) (*dashboard.AgentStats, error) {
	var resp dashboard.AgentStats
	err := c.do(ctx, "GET", "/api/v1/users/"+url.PathEscape(userID)+"/stats", nil, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// RecentCallLogs fetches the caller's most recent call logs.
func (c *APIClient) RecentCallLogs(ctx context.Context, limit int) ([]dashboard.CallLog, error) {
	var resp []dashboard.CallLog
	err := c.do(ctx, "GET", fmt.Sprintf("/api/v1/call-logs?limit=%d", limit), nil, &resp)
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// ListLeads fetches leads, optionally narrowed by stage or follow-up need.
func (c *APIClient) ListLeads(ctx context.Context, stage string, needsFollowup bool) ([]dashboard.Lead, error) {
	q := url.Values{}
	if stage != "" {
		q.Set("stage", stage)
	}
	if needsFollowup {
		q.Set("needs_followup", "true")
	}
	path := "/api/v1/leads"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var resp []dashboard.Lead
	if err := c.do(ctx, "GET", path, nil, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// UpdateLeadStage moves a lead through the pipeline.
func (c *APIClient) UpdateLeadStage(ctx context.Context, leadID string, stage domain.Stage) (*dashboard.Lead, error) {
	var resp dashboard.Lead
	err := c.do(ctx, "PATCH", "/api/v1/leads/"+url.PathEscape(leadID), map[string]string{
		"stage": string(stage),
	}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// LogCall records a call attempt against a lead.
func (c *APIClient) LogCall(ctx context.Context, leadID string, outcome domain.CallOutcome, durationSecs int, notes string) error {
	return c.do(ctx, "POST", "/api/v1/call-logs", map[string]interface{}{
		"lead_id":       leadID,
		"outcome":       string(outcome),
		"duration_secs": durationSecs,
		"notes":         notes,
	}, nil)
}

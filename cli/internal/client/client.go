// ABOUTME: HTTP client for the network capacity planner API
// ABOUTME: Wraps API calls with proper error handling for CLI usage

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

	"github.com/markalston/network-capacity-planner/models"
)

// Client is the API client for the planner backend
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a new API client with the given base URL
func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Health calls GET /api/v1/health
func (c *Client) Health(ctx context.Context) (*models.HealthResponse, error) {
	var health models.HealthResponse
	if err := c.do(ctx, http.MethodGet, "/api/v1/health", nil, &health); err != nil {
		return nil, err
	}
	return &health, nil
}

// Plan calls POST /api/v1/plan
func (c *Client) Plan(ctx context.Context, in models.PlanInput) (*models.PlanResult, error) {
	var plan models.PlanResult
	if err := c.do(ctx, http.MethodPost, "/api/v1/plan", in, &plan); err != nil {
		return nil, err
	}
	return &plan, nil
}

// Schedule calls POST /api/v1/schedule
func (c *Client) Schedule(ctx context.Context, windows []models.TimeWindowEntry) (models.TimezoneMap, error) {
	var tz models.TimezoneMap
	body := models.PlanInput{TimeWindows: windows}
	if err := c.do(ctx, http.MethodPost, "/api/v1/schedule", body, &tz); err != nil {
		return models.TimezoneMap{}, err
	}
	return tz, nil
}

// CompareScenario calls POST /api/v1/scenario/compare
func (c *Client) CompareScenario(ctx context.Context, in models.PlanInput) (*models.ScenarioComparison, error) {
	var comparison models.ScenarioComparison
	if err := c.do(ctx, http.MethodPost, "/api/v1/scenario/compare", in, &comparison); err != nil {
		return nil, err
	}
	return &comparison, nil
}

// do sends body as JSON (when non-nil) and decodes a 200 response into out
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal input: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return c.handleRequestError(ctx, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return c.handleErrorResponse(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("invalid response from backend: %w", err)
	}
	return nil
}

// handleRequestError converts context errors to user-friendly messages
func (c *Client) handleRequestError(ctx context.Context, err error) error {
	if errors.Is(ctx.Err(), context.Canceled) {
		return fmt.Errorf("request canceled")
	}
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("request timed out")
	}
	return fmt.Errorf("cannot connect to backend at %s: %w", c.baseURL, err)
}

// handleErrorResponse parses API error responses
func (c *Client) handleErrorResponse(resp *http.Response) error {
	var errResp models.ErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&errResp); err != nil || errResp.Error == "" {
		return fmt.Errorf("backend returned status %d", resp.StatusCode)
	}
	if errResp.Details != "" {
		return fmt.Errorf("backend error: %s: %s", errResp.Error, errResp.Details)
	}
	return fmt.Errorf("backend error: %s", errResp.Error)
}

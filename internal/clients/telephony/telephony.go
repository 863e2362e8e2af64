// Package telephony is a thin client for the calling provider's REST API.
// The receiver uses it to re-register a callback after a failed call
// initiation.
package telephony

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"
)

const (
	defaultRequestTimeout = 30 * time.Second
	// Maximum response body size to read for error logging
	maxResponseBodySize = 1024
)

// Client for the telephony provider API.
type Client struct {
	baseURL    string
	apiKey     string
	logger     zerolog.Logger
	httpClient *http.Client
}

// New creates a new Client. A nil httpClient gets a default with a timeout.
func New(baseURL, apiKey string, logger zerolog.Logger, httpClient *http.Client) (*Client, error) {
	parsedURL, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse telephony API URL: %w", err)
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultRequestTimeout}
	}
	return &Client{
		baseURL:    parsedURL.String(),
		apiKey:     apiKey,
		logger:     logger,
		httpClient: httpClient,
	}, nil
}

// RegisterCallbackRequest asks the provider to schedule a callback attempt
// for a call that failed to start.
type RegisterCallbackRequest struct {
	AgentID  string `json:"agent_id"`
	ToNumber string `json:"to_number,omitempty"`
	Reason   string `json:"reason,omitempty"`
}

// RegisterCallback registers a callback attempt with the provider.
func (c *Client) RegisterCallback(ctx context.Context, req RegisterCallbackRequest) error {
	body, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("failed to marshal callback request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/callbacks", bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("failed to create callback request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("failed to POST callback registration: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode >= 400 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, maxResponseBodySize))
		return fmt.Errorf("telephony API returned status code %d: %s", resp.StatusCode, string(respBody))
	}

	c.logger.Debug().
		Str("agent_id", req.AgentID).
		Msg("Callback registered with telephony API")
	return nil
}

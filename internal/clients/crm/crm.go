// Package crm is a thin client for the CRM API. The receiver pushes call
// summaries onto contact records after a transcription event.
package crm

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
	maxResponseBodySize   = 1024
)

// Client for the CRM API.
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
		return nil, fmt.Errorf("failed to parse CRM API URL: %w", err)
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

// CallActivity is a call summary attached to a CRM contact.
type CallActivity struct {
	ContactID       string `json:"contact_id"`
	CallID          string `json:"call_id"`
	Transcript      string `json:"transcript,omitempty"`
	DurationSeconds int64  `json:"duration_seconds,omitempty"`
}

// AddCallActivity records a call summary on the contact's activity feed.
func (c *Client) AddCallActivity(ctx context.Context, activity CallActivity) error {
	body, err := json.Marshal(activity)
	if err != nil {
		return fmt.Errorf("failed to marshal call activity: %w", err)
	}

	endpoint := fmt.Sprintf("%s/contacts/%s/activities", c.baseURL, url.PathEscape(activity.ContactID))
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("failed to create call activity request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("failed to POST call activity: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode >= 400 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, maxResponseBodySize))
		return fmt.Errorf("CRM API returned status code %d: %s", resp.StatusCode, string(respBody))
	}

	c.logger.Debug().
		Str("contact_id", activity.ContactID).
		Str("call_id", activity.CallID).
		Msg("Call activity recorded in CRM")
	return nil
}

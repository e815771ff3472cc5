// Package pipelineclient calls the API-key protected pipeline endpoints.
package pipelineclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"wealthtracker/internal/middleware"
)

const snapshotsPath = "/api/v1/pipeline/snapshots"

// SnapshotResult is the server's report of a snapshot run.
type SnapshotResult struct {
	Recorded   int       `json:"recorded"`
	RecordedAt time.Time `json:"recorded_at"`
}

// Client talks to a running API over HTTP.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// New creates a pipeline client for the API at baseURL.
func New(baseURL, apiKey string, httpClient *http.Client) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: httpClient,
	}
}

// RecordSnapshots asks the server to record a net worth snapshot for every
// user. A zero recordedAt lets the server pick the start of the current day.
func (c *Client) RecordSnapshots(ctx context.Context, recordedAt time.Time) (*SnapshotResult, error) {
	var body bytes.Buffer
	if !recordedAt.IsZero() {
		payload := struct {
			RecordedAt string `json:"recorded_at"`
		}{RecordedAt: recordedAt.UTC().Format(time.RFC3339)}
		if err := json.NewEncoder(&body).Encode(payload); err != nil {
			return nil, fmt.Errorf("marshaling snapshot request: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+snapshotsPath, &body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(middleware.APIKeyHeader, c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("recording snapshots: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		var envelope struct {
			Error middleware.ErrorBody `json:"error"`
		}
		if json.NewDecoder(resp.Body).Decode(&envelope) == nil && envelope.Error.Code != "" {
			return nil, fmt.Errorf("recording snapshots: status %d: %s", resp.StatusCode, envelope.Error.Code)
		}
		return nil, fmt.Errorf("recording snapshots: unexpected status %d", resp.StatusCode)
	}

	var result SnapshotResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decoding snapshots response: %w", err)
	}
	return &result, nil
}

// Package docsvc is the HTTP client for the documents backend: the remote
// system that executes generation jobs and stores finished research
// documents. It implements the tracker's StatusResolver and ResultCommitter
// capabilities.
package docsvc

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/oneview/marketdesk/tracker"
)

// TransientError marks a failure to reach the backend: the request may well
// succeed on the next try, so callers keep polling.
type TransientError struct {
	Err error
}

func (e *TransientError) Error() string {
	return fmt.Sprintf("documents backend unavailable: %v", e.Err)
}

func (e *TransientError) Unwrap() error { return e.Err }

// Client talks to the documents backend REST API.
type Client struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// New creates a Client for the backend at baseURL. A nil httpClient falls
// back to http.DefaultClient.
func New(baseURL, apiKey string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		apiKey:  apiKey,
		client:  httpClient,
	}
}

// Submit asks the backend to generate a document of the given kind for the
// asset and returns the id of the job it started. The request carries a
// client-generated id so an accidental resubmission is deduplicated remotely.
func (c *Client) Submit(ctx context.Context, assetID int64, kind tracker.Kind, symbol string) (string, error) {
	body := struct {
		AssetID   int64        `json:"asset_id"`
		Kind      tracker.Kind `json:"kind"`
		Symbol    string       `json:"symbol"`
		RequestID string       `json:"request_id"`
	}{assetID, kind, symbol, uuid.NewString()}

	var reply struct {
		TaskID string `json:"task_id"`
	}
	if err := c.post(ctx, "/api/documents/generate", body, &reply); err != nil {
		return "", fmt.Errorf("could not submit %s for %q: %w", kind, symbol, err)
	}
	if reply.TaskID == "" {
		return "", fmt.Errorf("backend accepted %s for %q but returned no task id", kind, symbol)
	}
	return reply.TaskID, nil
}

// CheckStatus implements tracker.StatusResolver. Transport and HTTP failures
// come back as *TransientError: the job is simply treated as still running.
func (c *Client) CheckStatus(ctx context.Context, taskID string) (tracker.StatusResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/documents/tasks/"+taskID, nil)
	if err != nil {
		return tracker.StatusResult{}, err
	}
	c.authorize(req)

	resp, err := c.client.Do(req)
	if err != nil {
		return tracker.StatusResult{}, &TransientError{Err: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return tracker.StatusResult{}, &TransientError{Err: fmt.Errorf("status check for task %s: %s", taskID, resp.Status)}
	}

	var reply struct {
		Status      string `json:"status"`
		ArtifactRef string `json:"artifact_ref"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&reply); err != nil {
		return tracker.StatusResult{}, &TransientError{Err: fmt.Errorf("undecodable status for task %s: %w", taskID, err)}
	}
	return tracker.StatusResult{Status: tracker.Status(reply.Status), ArtifactRef: reply.ArtifactRef}, nil
}

// CommitResult implements tracker.ResultCommitter: it persists the finished
// artifact reference into the system of record. The backend endpoint is
// idempotent on task_id.
func (c *Client) CommitResult(ctx context.Context, task tracker.PendingTask, artifactRef string) error {
	body := struct {
		TaskID      string       `json:"task_id"`
		AssetID     int64        `json:"asset_id"`
		Kind        tracker.Kind `json:"kind"`
		ArtifactRef string       `json:"artifact_ref"`
	}{task.ID, task.AssetID, task.Kind, artifactRef}

	if err := c.post(ctx, "/api/documents", body, nil); err != nil {
		return fmt.Errorf("could not save document for task %s: %w", task.ID, err)
	}
	return nil
}

// post sends body as JSON and decodes the response into reply when non-nil.
func (c *Client) post(ctx context.Context, path string, body, reply any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	c.authorize(req)

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("cannot http POST %s: %s: %s", path, resp.Status, strings.TrimSpace(string(msg)))
	}
	if reply == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(reply)
}

func (c *Client) authorize(req *http.Request) {
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
}

package internal

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Transport is the set of remote operations the session controller depends
// on. *Client is the production implementation; tests substitute stubs.
type Transport interface {
	// Submit sends a message with the prior conversation turns and returns
	// the service's reply. Failures are always *RemoteError.
	Submit(ctx context.Context, message string, history []Turn) (*Reply, error)
	// Probe reports whether the service is reachable. It never fails.
	Probe(ctx context.Context) bool
	// NotifyCleared tells the service the conversation was cleared locally.
	// Best effort: the outcome is ignored.
	NotifyCleared(ctx context.Context)
}

const (
	chatPath   = "/api/chat"
	healthPath = "/api/health"
	clearPath  = "/api/chat/clear"

	contentTypeJSON = "application/json"
)

// Client talks HTTP/JSON to the chat service. Each call performs exactly
// one outbound request: no retries, no caching.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a client for the service at baseURL. A zero timeout
// means requests run to natural completion.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// BaseURL returns the configured service base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Submit posts the message and history to the chat endpoint. On any network
// failure, non-2xx status, or malformed response body it returns a
// *RemoteError whose Detail is the service's structured detail when present.
func (c *Client) Submit(ctx context.Context, message string, history []Turn) (*Reply, error) {
	body, err := json.Marshal(ChatRequest{Message: message, History: history})
	if err != nil {
		return nil, &RemoteError{Op: "submit", Detail: "failed to encode request", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+chatPath, bytes.NewReader(body))
	if err != nil {
		return nil, &RemoteError{Op: "submit", Detail: "failed to build request", Err: err}
	}
	req.Header.Set("Content-Type", contentTypeJSON)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		LogDebug("submit request failed: %v", err)
		return nil, &RemoteError{Op: "submit", Detail: "could not reach the chat service", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &RemoteError{
			Op:     "submit",
			Status: resp.StatusCode,
			Detail: errorDetailFromBody(resp.Body, resp.StatusCode),
		}
	}

	var reply Reply
	if err := json.NewDecoder(resp.Body).Decode(&reply); err != nil {
		return nil, &RemoteError{Op: "submit", Status: resp.StatusCode, Detail: "the chat service returned an unreadable reply", Err: err}
	}

	return &reply, nil
}

// Probe checks the health endpoint. Any failure, of any kind, means
// unreachable; errors never escape this method.
func (c *Client) Probe(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+healthPath, nil)
	if err != nil {
		return false
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		LogDebug("health probe failed: %v", err)
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return false
	}

	var health HealthResponse
	if err := json.NewDecoder(resp.Body).Decode(&health); err != nil {
		LogDebug("health payload unreadable: %v", err)
	} else {
		LogDebug("health probe: status=%s", health.Status)
	}

	return true
}

// NotifyCleared fires the clear notification. The response is not
// inspected; a local clear must succeed regardless of the remote outcome.
func (c *Client) NotifyCleared(ctx context.Context) {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.baseURL+clearPath, nil)
	if err != nil {
		return
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		LogDebug("clear notification failed: %v", err)
		return
	}
	resp.Body.Close()
}

// errorDetailFromBody pulls the service's {detail} out of an error response,
// falling back to a generic description of the status.
func errorDetailFromBody(body io.Reader, status int) string {
	data, err := io.ReadAll(io.LimitReader(body, 64*1024))
	if err == nil {
		var payload apiError
		if json.Unmarshal(data, &payload) == nil && payload.Detail != "" {
			return payload.Detail
		}
	}
	return fmt.Sprintf("the chat service returned an error (HTTP %d)", status)
}

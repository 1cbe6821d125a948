package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
)

// HTTPClientFactory builds an authenticated HTTP client from an API key.
type HTTPClientFactory func(ctx context.Context, apiKey string) (*http.Client, error)

type WatsonConfig struct {
	APIKey      string
	URL         string
	AssistantID string
	Version     string
}

// StatusError is a non-2xx answer from the assistant API.
type StatusError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *StatusError) Error() string {
	return "watson api error: " + e.Status + " body=" + e.Body
}

// WatsonClient talks to the Watson Assistant v2 REST API.
type WatsonClient struct {
	cfg     WatsonConfig
	factory HTTPClientFactory

	mu     sync.RWMutex
	client *http.Client
}

func NewWatsonClient(cfg WatsonConfig, factory HTTPClientFactory) *WatsonClient {
	if cfg.Version == "" {
		cfg.Version = "2021-11-27"
	}
	cfg.URL = strings.TrimRight(cfg.URL, "/")
	return &WatsonClient{cfg: cfg, factory: factory}
}

func (c *WatsonClient) Authenticate(ctx context.Context) error {
	hc, err := c.factory(ctx, c.cfg.APIKey)
	if err != nil {
		return fmt.Errorf("watson authenticate: %w", err)
	}
	c.mu.Lock()
	c.client = hc
	c.mu.Unlock()
	return nil
}

func (c *WatsonClient) CreateSession(ctx context.Context) (string, error) {
	var out struct {
		SessionID string `json:"session_id"`
	}
	path := "/v2/assistants/" + url.PathEscape(c.cfg.AssistantID) + "/sessions"
	if err := c.post(ctx, path, map[string]any{}, &out); err != nil {
		return "", err
	}
	if out.SessionID == "" {
		return "", fmt.Errorf("watson create session: empty session_id")
	}
	return out.SessionID, nil
}

func (c *WatsonClient) Message(ctx context.Context, sessionID string, in MessageInput) (*MessageOutput, error) {
	var out struct {
		Output MessageOutput `json:"output"`
	}
	path := "/v2/assistants/" + url.PathEscape(c.cfg.AssistantID) +
		"/sessions/" + url.PathEscape(sessionID) + "/message"
	if err := c.post(ctx, path, map[string]any{"input": in}, &out); err != nil {
		return nil, err
	}
	return &out.Output, nil
}

func (c *WatsonClient) post(ctx context.Context, path string, body, out any) error {
	c.mu.RLock()
	hc := c.client
	c.mu.RUnlock()
	if hc == nil {
		return ErrNotAuthenticated
	}

	b, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		c.cfg.URL+path+"?version="+url.QueryEscape(c.cfg.Version),
		bytes.NewReader(b),
	)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := hc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode >= 300 {
		return &StatusError{StatusCode: resp.StatusCode, Status: resp.Status, Body: string(respBody)}
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("watson decode %s: %w", path, err)
	}
	return nil
}

// PlainHTTPClient is a factory for endpoints that need no credentials.
func PlainHTTPClient(timeout time.Duration) HTTPClientFactory {
	return func(context.Context, string) (*http.Client, error) {
		return &http.Client{Timeout: timeout}, nil
	}
}

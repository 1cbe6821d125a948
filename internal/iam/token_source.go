// Package iam exchanges an IBM Cloud API key for bearer tokens.
package iam

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

	"golang.org/x/oauth2"
)

const grantType = "urn:ibm:params:oauth:grant-type:apikey"

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
	Expiration  int64  `json:"expiration"`
}

type tokenSource struct {
	ctx      context.Context
	endpoint string
	apiKey   string
	client   *http.Client
}

// TokenSource returns a caching source; a new token is fetched only once the
// previous one is about to expire.
func TokenSource(ctx context.Context, endpoint, apiKey string, client *http.Client) oauth2.TokenSource {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return oauth2.ReuseTokenSource(nil, &tokenSource{
		ctx:      ctx,
		endpoint: endpoint,
		apiKey:   apiKey,
		client:   client,
	})
}

// NewClient returns an HTTP client that sends a bearer token on every request.
// It fetches the first token eagerly so bad credentials surface here.
func NewClient(ctx context.Context, endpoint, apiKey string, timeout time.Duration) (*http.Client, error) {
	base := &http.Client{Timeout: timeout}
	ts := TokenSource(ctx, endpoint, apiKey, base)
	if _, err := ts.Token(); err != nil {
		return nil, err
	}

	c := oauth2.NewClient(context.WithValue(ctx, oauth2.HTTPClient, base), ts)
	c.Timeout = timeout
	return c, nil
}

func (s *tokenSource) Token() (*oauth2.Token, error) {
	if strings.TrimSpace(s.apiKey) == "" {
		return nil, errors.New("iam: api key is empty")
	}

	form := url.Values{}
	form.Set("grant_type", grantType)
	form.Set("apikey", s.apiKey)

	req, err := http.NewRequestWithContext(s.ctx, http.MethodPost, s.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("iam: token request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("iam: read token response: %w", err)
	}
	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("iam: token request: %s body=%s", resp.Status, string(body))
	}

	var tr tokenResponse
	if err := json.Unmarshal(body, &tr); err != nil {
		return nil, fmt.Errorf("iam: decode token: %w", err)
	}
	if tr.AccessToken == "" {
		return nil, errors.New("iam: empty access token")
	}

	tok := &oauth2.Token{AccessToken: tr.AccessToken, TokenType: "Bearer"}
	switch {
	case tr.Expiration > 0:
		tok.Expiry = time.Unix(tr.Expiration, 0)
	case tr.ExpiresIn > 0:
		tok.Expiry = time.Now().Add(time.Duration(tr.ExpiresIn) * time.Second)
	}
	return tok, nil
}

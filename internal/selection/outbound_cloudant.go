package selection

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// ClientFactory builds an authenticated HTTP client from an API key.
type ClientFactory func(ctx context.Context, apiKey string) (*http.Client, error)

type CloudantConfig struct {
	URL    string
	APIKey string
	DB     string
}

// CloudantConnector opens handles on a CouchDB-compatible database.
type CloudantConnector struct {
	cfg     CloudantConfig
	factory ClientFactory
}

func NewCloudantConnector(cfg CloudantConfig, factory ClientFactory) *CloudantConnector {
	cfg.URL = strings.TrimRight(cfg.URL, "/")
	return &CloudantConnector{cfg: cfg, factory: factory}
}

func (c *CloudantConnector) Connect(ctx context.Context) (DB, error) {
	hc, err := c.factory(ctx, c.cfg.APIKey)
	if err != nil {
		return nil, err
	}
	return &cloudantDB{
		baseURL: c.cfg.URL,
		dbPath:  "/" + url.PathEscape(c.cfg.DB),
		client:  hc,
	}, nil
}

type cloudantDB struct {
	baseURL string
	dbPath  string
	client  *http.Client
}

// Ping reads the server welcome document.
func (d *cloudantDB) Ping(ctx context.Context) error {
	resp, err := d.do(ctx, http.MethodGet, "/", nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return checkStatus(resp)
}

func (d *cloudantDB) CreateDocument(ctx context.Context, doc Document) error {
	b, err := json.Marshal(doc)
	if err != nil {
		return err
	}

	resp, err := d.do(ctx, http.MethodPost, d.dbPath, b)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if err := checkStatus(resp); err != nil {
		return err
	}

	var out struct {
		OK bool   `json:"ok"`
		ID string `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return err
	}
	if !out.OK {
		return errors.New("cloudant: write not acknowledged")
	}
	return nil
}

func (d *cloudantDB) Exists(ctx context.Context, id string) (bool, error) {
	resp, err := d.do(ctx, http.MethodHead, d.dbPath+"/"+url.PathEscape(id), nil)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return false, nil
	case resp.StatusCode < 300:
		return true, nil
	default:
		return false, errors.New("cloudant api error: " + resp.Status)
	}
}

func (d *cloudantDB) Close() error {
	d.client.CloseIdleConnections()
	return nil
}

func (d *cloudantDB) do(ctx context.Context, method, path string, body []byte) (*http.Response, error) {
	var r io.Reader
	if body != nil {
		r = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, d.baseURL+path, r)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return d.client.Do(req)
}

func checkStatus(resp *http.Response) error {
	if resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(resp.Body)
		return errors.New("cloudant api error: " + resp.Status + " body=" + string(respBody))
	}
	return nil
}

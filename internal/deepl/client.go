// Package deepl is a client for the DeepL v2 REST API: key validation,
// batched text translation and the asynchronous document workflow.
package deepl

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"deepl-desktop/internal/config"
	apphttp "deepl-desktop/internal/http"
	"deepl-desktop/internal/logger"
)

// Config configures a Client.
type Config struct {
	// APIKey is the DeepL authentication key. Keys ending in ":fx" use the free endpoint.
	APIKey string
	// BaseURL overrides the endpoint chosen from the key.
	BaseURL string
	// HTTPClient defaults to a pooled client with connect and read timeouts.
	HTTPClient *http.Client
	// Retry defaults to apphttp.DefaultRetryConfig.
	Retry *apphttp.RetryConfig
	// MinPollInterval is the shortest wait between document status checks.
	// Zero lets a server hint of 0 seconds re-poll immediately.
	MinPollInterval time.Duration
	Logger          *logger.Logger
}

// Client talks to one DeepL endpoint with one key. It is safe for
// sequential reuse; the underlying HTTP client pools connections.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	retry      apphttp.RetryConfig
	minPoll    time.Duration
	log        *logger.Logger

	// sleep waits between status polls; replaced in tests.
	sleep func(ctx context.Context, d time.Duration) error
}

// BaseURLForKey picks the free or pro endpoint from the key suffix.
func BaseURLForKey(apiKey string) string {
	if strings.HasSuffix(apiKey, config.DeepLFreeKeySuffix) {
		return config.DeepLFreeEndpoint
	}
	return config.DeepLProEndpoint
}

// NewClient builds a client. It returns ErrCredentialMissing for an empty key.
func NewClient(cfg Config) (*Client, error) {
	key := strings.TrimSpace(cfg.APIKey)
	if key == "" {
		return nil, ErrCredentialMissing
	}

	c := &Client{
		apiKey:     key,
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: cfg.HTTPClient,
		minPoll:    cfg.MinPollInterval,
		log:        cfg.Logger,
		sleep:      sleepContext,
	}
	if c.baseURL == "" {
		c.baseURL = BaseURLForKey(key)
	}
	if c.httpClient == nil {
		c.httpClient = apphttp.NewDefaultClient()
	}
	if cfg.Retry != nil {
		c.retry = *cfg.Retry
	} else {
		c.retry = apphttp.DefaultRetryConfig()
	}
	if c.log == nil {
		c.log = logger.Named("deepl")
	}
	return c, nil
}

// BaseURL returns the endpoint this client sends requests to.
func (c *Client) BaseURL() string { return c.baseURL }

// Usage is the character quota reported by GET /usage.
type Usage struct {
	CharacterCount int64 `json:"character_count"`
	CharacterLimit int64 `json:"character_limit"`
}

// Remaining returns how many characters are left in the current period.
func (u Usage) Remaining() int64 {
	if u.CharacterLimit <= u.CharacterCount {
		return 0
	}
	return u.CharacterLimit - u.CharacterCount
}

// Usage validates the key by querying the account usage.
func (c *Client) Usage(ctx context.Context) (*Usage, error) {
	resp, err := c.do(ctx, http.MethodGet, "/usage", nil, "")
	if err != nil {
		return nil, fmt.Errorf("check usage: %w", err)
	}
	var u Usage
	if err := decodeJSON(resp, &u); err != nil {
		return nil, fmt.Errorf("check usage: %w", err)
	}
	return &u, nil
}

// do sends one request through the retrying transport and returns only 2xx responses.
func (c *Client) do(ctx context.Context, method, path string, body io.Reader, contentType string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", config.DeepLAuthScheme+" "+c.apiKey)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := apphttp.DoWithRetryContext(ctx, c.httpClient, req, c.retry)
	if err != nil {
		return nil, err
	}
	if err := apphttp.CheckStatus(resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func decodeJSON(resp *http.Response, v interface{}) error {
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("parse response: %w", err)
	}
	return nil
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/hashicorp/go-retryablehttp"
	"go.uber.org/fx"

	cfgpkg "github.com/fatflowers/giftflow/pkg/config"
)

// Client uploads exported manifests to object storage and returns their
// public URLs.
type Client struct {
	baseURL    string
	bucket     string
	apiKey     string
	httpClient *http.Client
}

func NewClient(cfg *cfgpkg.Config) *Client {
	rc := retryablehttp.NewClient()
	rc.Logger = nil
	return &Client{
		baseURL:    strings.TrimRight(cfg.Storage.BaseURL, "/"),
		bucket:     cfg.Storage.Bucket,
		apiKey:     cfg.Storage.APIKey,
		httpClient: rc.StandardClient(),
	}
}

// Upload stores body under key and returns the public URL.
func (c *Client) Upload(ctx context.Context, key, contentType string, body []byte) (string, error) {
	if c == nil || c.baseURL == "" {
		return "", fmt.Errorf("object storage not configured")
	}

	target := fmt.Sprintf("%s/%s/%s", c.baseURL, c.bucket, url.PathEscape(key))
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, target, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return "", fmt.Errorf("storage returned status %d", resp.StatusCode)
	}

	var result struct {
		URL string `json:"url"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if result.URL == "" {
		result.URL = target
	}
	return result.URL, nil
}

var Module = fx.Options(
	fx.Provide(NewClient),
)

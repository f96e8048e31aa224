package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/hashicorp/go-retryablehttp"
	"go.uber.org/fx"

	cfgpkg "github.com/fatflowers/giftflow/pkg/config"
)

type Message struct {
	To       string `json:"to"`
	ToName   string `json:"to_name,omitempty"`
	Subject  string `json:"subject"`
	HTMLBody string `json:"html_body"`
}

// Client sends transactional email through the configured provider.
type Client struct {
	baseURL    string
	apiKey     string
	from       string
	fromName   string
	httpClient *http.Client
}

func NewClient(cfg *cfgpkg.Config) *Client {
	rc := retryablehttp.NewClient()
	rc.Logger = nil
	return &Client{
		baseURL:    strings.TrimRight(cfg.Mailer.BaseURL, "/"),
		apiKey:     cfg.Mailer.APIKey,
		from:       cfg.Mailer.FromAddress,
		fromName:   cfg.Mailer.FromName,
		httpClient: rc.StandardClient(),
	}
}

// Send submits one message and returns the provider message id.
func (c *Client) Send(ctx context.Context, msg *Message) (string, error) {
	if c == nil || c.baseURL == "" {
		return "", fmt.Errorf("mailer not configured")
	}

	payload := map[string]any{
		"from":      map[string]string{"email": c.from, "name": c.fromName},
		"to":        map[string]string{"email": msg.To, "name": msg.ToName},
		"subject":   msg.Subject,
		"html_body": msg.HTMLBody,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("encode message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/messages", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusAccepted {
		return "", fmt.Errorf("mail provider returned status %d", resp.StatusCode)
	}

	var result struct {
		MessageID string `json:"message_id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	return result.MessageID, nil
}

var Module = fx.Options(
	fx.Provide(NewClient),
)

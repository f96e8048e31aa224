package chat

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

// Client posts voucher deliveries into a chat channel.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewClient(cfg *cfgpkg.Config) *Client {
	rc := retryablehttp.NewClient()
	rc.Logger = nil
	return &Client{
		baseURL:    strings.TrimRight(cfg.Chat.BaseURL, "/"),
		apiKey:     cfg.Chat.APIKey,
		httpClient: rc.StandardClient(),
	}
}

// Send posts text to the given channel and returns the provider message id.
func (c *Client) Send(ctx context.Context, channelID, text string) (string, error) {
	if c == nil || c.baseURL == "" {
		return "", fmt.Errorf("chat provider not configured")
	}

	body, err := json.Marshal(map[string]string{"channel": channelID, "text": text})
	if err != nil {
		return "", fmt.Errorf("encode message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/chat.postMessage", bytes.NewReader(body))
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

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("chat provider returned status %d", resp.StatusCode)
	}

	var result struct {
		OK        bool   `json:"ok"`
		MessageID string `json:"message_id"`
		Error     string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if !result.OK {
		return "", fmt.Errorf("chat provider error: %s", result.Error)
	}
	return result.MessageID, nil
}

var Module = fx.Options(
	fx.Provide(NewClient),
)

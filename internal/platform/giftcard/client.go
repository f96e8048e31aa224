package giftcard

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"go.uber.org/fx"

	cfgpkg "github.com/fatflowers/giftflow/pkg/config"
)

// Card is the issuer's view of a newly created gift card.
type Card struct {
	ID         string `json:"id"`
	Code       string `json:"code"`
	MaskedCode string `json:"masked_code"`
	Balance    int64  `json:"balance"`
	Currency   string `json:"currency"`
}

type CreateRequest struct {
	BrandID   string `json:"brand_id"`
	Amount    int64  `json:"amount"`
	Currency  string `json:"currency"`
	Reference string `json:"reference"`
}

// Client talks to the external gift-card issuance API. Transient failures
// are retried on the transport; callers only see the final outcome.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewClient(cfg *cfgpkg.Config) *Client {
	rc := retryablehttp.NewClient()
	rc.RetryMax = cfg.Issuer.MaxRetry
	rc.HTTPClient.Timeout = cfg.Issuer.Timeout
	if rc.HTTPClient.Timeout == 0 {
		rc.HTTPClient.Timeout = 10 * time.Second
	}
	rc.Logger = nil
	return &Client{
		baseURL:    strings.TrimRight(cfg.Issuer.BaseURL, "/"),
		apiKey:     cfg.Issuer.APIKey,
		httpClient: rc.StandardClient(),
	}
}

// CreateCard requests a new redeemable code from the issuer.
func (c *Client) CreateCard(ctx context.Context, req *CreateRequest) (*Card, error) {
	if c == nil || c.baseURL == "" {
		return nil, fmt.Errorf("gift card issuer not configured")
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/cards", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("issuer returned status %d", resp.StatusCode)
	}

	var card Card
	if err := json.NewDecoder(resp.Body).Decode(&card); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if card.ID == "" || card.Code == "" {
		return nil, fmt.Errorf("issuer returned incomplete card")
	}
	return &card, nil
}

var Module = fx.Options(
	fx.Provide(NewClient),
)

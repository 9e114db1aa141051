package readwise

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/timmy/quotewise/internal/domain"
)

// DefaultBaseURL is the production Readwise API root.
const DefaultBaseURL = "https://readwise.io/api/v2"

// Client talks to the Readwise highlights API.
type Client struct {
	client  *resty.Client
	baseURL string
}

// Config holds configuration for the Readwise client.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// NewClient creates a new Readwise API client.
// Parameters:
//   - cfg: client configuration; zero values fall back to defaults.
// Returns:
//   - *Client: initialized client.
func NewClient(cfg *Config) *Client {
	if cfg == nil {
		cfg = &Config{}
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	client := resty.New()
	client.SetTimeout(timeout)
	client.SetHeader("Content-Type", "application/json")

	return &Client{
		client:  client,
		baseURL: baseURL,
	}
}

// randomHighlightsResponse mirrors the Readwise random-highlights payload.
type randomHighlightsResponse struct {
	Results []domain.QuoteRecord `json:"results"`
}

// FetchRandom retrieves a batch of random highlights.
// Any non-2xx status is a fetch failure; the body is not parsed in that case.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - token: Readwise access token.
//   - n: number of highlights to request.
// Returns:
//   - []domain.QuoteRecord: fetched records (may be shorter than n).
//   - error: non-nil on network failure or non-2xx response.
func (c *Client) FetchRandom(ctx context.Context, token string, n int) ([]domain.QuoteRecord, error) {
	var result randomHighlightsResponse
	resp, err := c.client.R().
		SetContext(ctx).
		SetHeader("Authorization", "Token "+token).
		SetQueryParam("numHighlights", strconv.Itoa(n)).
		SetResult(&result).
		Get(c.baseURL + "/highlights/random")

	if err != nil {
		return nil, fmt.Errorf("failed to call Readwise API: %w", err)
	}

	if resp.StatusCode() < 200 || resp.StatusCode() >= 300 {
		return nil, fmt.Errorf("Readwise API returned HTTP %d", resp.StatusCode())
	}

	return result.Results, nil
}

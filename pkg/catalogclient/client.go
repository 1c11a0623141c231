/**
 * @description
 * This package provides a client for fetching the merchant catalog from the
 * recurring-firewall backend. An empty catalog is a valid response and is
 * reported distinctly from transport or status failures.
 *
 * @dependencies
 * - context, encoding/json, fmt, net/http, time: Standard Go libraries.
 */
package catalogclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/SIMARSINGHRAYAT/KIZCODE-HACK-THE-WINTER/internal/domain"
)

// Client is a client for the merchant catalog endpoint.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient creates a new catalog client with a bounded request timeout.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		BaseURL: baseURL,
		HTTPClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// FetchMerchants retrieves the ordered list of merchant profiles. A nil
// error with an empty slice means the catalog is genuinely empty.
func (c *Client) FetchMerchants(ctx context.Context) ([]domain.MerchantProfile, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", c.BaseURL+"/merchants", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create merchants request: %w", err)
	}

	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute merchants request: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read merchants response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		log.Printf("level=warn component=catalog_client op=fetch_merchants status=%d msg=\"non-2xx response\"", resp.StatusCode)
		return nil, fmt.Errorf("catalog returned status %d", resp.StatusCode)
	}

	var merchants []domain.MerchantProfile
	if err := json.Unmarshal(bodyBytes, &merchants); err != nil {
		return nil, fmt.Errorf("failed to decode merchants: %w", err)
	}

	return merchants, nil
}

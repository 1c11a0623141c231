/**
 * @description
 * This package provides a client for the recurring-firewall decision
 * endpoint. It encapsulates the logic for posting a transaction payload,
 * parsing the verdict, and turning non-2xx responses into a single error
 * the caller can surface to the operator.
 *
 * @dependencies
 * - bytes, context, encoding/json, fmt, net/http, time: Standard Go libraries.
 */
package firewallclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/SIMARSINGHRAYAT/KIZCODE-HACK-THE-WINTER/internal/domain"
)

// Client is a client for the firewall's transaction-check endpoint.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient creates a new firewall client with a bounded request timeout.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		BaseURL: baseURL,
		HTTPClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// ErrorResponse represents an error body from the firewall backend.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

func (e *ErrorResponse) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("firewall error: %s", e.Detail)
	}
	return "unknown firewall error"
}

// CheckTransaction submits a transaction payload for a verdict.
func (c *Client) CheckTransaction(ctx context.Context, payload domain.TransactionPayload) (*domain.FirewallResponse, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal transaction payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.BaseURL+"/check-transaction", bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create check request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute check request: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read check response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errResp ErrorResponse
		if err := json.Unmarshal(bodyBytes, &errResp); err != nil || errResp.Detail == "" {
			log.Printf("level=warn component=firewall_client op=check_transaction status=%d msg=\"non-2xx response (unparsable error body)\"", resp.StatusCode)
			return nil, fmt.Errorf("firewall returned status %d", resp.StatusCode)
		}
		log.Printf("level=warn component=firewall_client op=check_transaction status=%d detail=%q", resp.StatusCode, errResp.Detail)
		return nil, &errResp
	}

	var verdict domain.FirewallResponse
	if err := json.Unmarshal(bodyBytes, &verdict); err != nil {
		return nil, fmt.Errorf("failed to decode verdict: %w", err)
	}

	return &verdict, nil
}

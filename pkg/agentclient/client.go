/**
 * @description
 * This package provides a client for the fraud-investigation agent. The agent
 * receives the submitted transaction fields enriched with the merchant's
 * display name and answers with a structured finding set wrapped in an
 * `investigation` envelope.
 *
 * @dependencies
 * - bytes, context, encoding/json, fmt, net/http, time: Standard Go libraries.
 */
package agentclient

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

// Client is a client for the investigation agent endpoint.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient creates a new agent client. The timeout should be generous: the
// agent runs a retrieval pipeline and is far slower than the firewall.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		BaseURL: baseURL,
		HTTPClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// investigationEnvelope mirrors the agent's response wrapper.
type investigationEnvelope struct {
	Investigation domain.InvestigationResponse `json:"investigation"`
}

// InvestigateTransaction asks the agent for a deep analysis of a submitted
// transaction.
func (c *Client) InvestigateTransaction(ctx context.Context, req domain.InvestigationRequest) (*domain.InvestigationResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal investigation request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", c.BaseURL+"/investigate-transaction", bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create investigation request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.HTTPClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to execute investigation request: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read investigation response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		log.Printf("level=warn component=agent_client op=investigate status=%d msg=\"non-2xx response\"", resp.StatusCode)
		return nil, fmt.Errorf("agent returned status %d", resp.StatusCode)
	}

	var envelope investigationEnvelope
	if err := json.Unmarshal(bodyBytes, &envelope); err != nil {
		return nil, fmt.Errorf("failed to decode investigation: %w", err)
	}

	return &envelope.Investigation, nil
}

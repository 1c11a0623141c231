package agentclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SIMARSINGHRAYAT/KIZCODE-HACK-THE-WINTER/internal/domain"
)

func TestInvestigateTransactionUnwrapsEnvelope(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/investigate-transaction" {
			t.Fatalf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		var req map[string]interface{}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("failed to decode request: %v", err)
		}
		// Payload fields are flattened alongside the merchant name.
		if req["merchant_name"] != "FlexFit Gym" {
			t.Fatalf("expected merchant_name enrichment, got %v", req["merchant_name"])
		}
		if req["transactionId"] != "tx-1" {
			t.Fatalf("expected flattened transaction fields, got %v", req["transactionId"])
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"investigation": {
			"confidence": "HIGH",
			"risk_summary": "Recurring charge continued after cancellation.",
			"cancellation_instructions": ["Contact merchant support", "Dispute via issuer"]
		}}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second)
	analysis, err := client.InvestigateTransaction(context.Background(), domain.InvestigationRequest{
		TransactionPayload: domain.TransactionPayload{
			TransactionID: "tx-1",
			MerchantID:    "gym_flex",
			Amount:        49.99,
			Currency:      domain.CurrencyUSD,
			Status:        "SUCCESS",
		},
		MerchantName: "FlexFit Gym",
	})
	if err != nil {
		t.Fatalf("InvestigateTransaction returned error: %v", err)
	}
	if analysis.Confidence != "HIGH" {
		t.Fatalf("unexpected confidence: %q", analysis.Confidence)
	}
	if len(analysis.CancellationInstructions) != 2 {
		t.Fatalf("expected two cancellation steps, got %v", analysis.CancellationInstructions)
	}
}

func TestInvestigateTransactionReportsNonSuccessStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusGatewayTimeout)
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second)
	if _, err := client.InvestigateTransaction(context.Background(), domain.InvestigationRequest{}); err == nil {
		t.Fatal("expected error for non-2xx response")
	}
}

package catalogclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestFetchMerchantsParsesProfiles(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/merchants" {
			t.Fatalf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"id": "gym_flex", "name": "FlexFit Gym"},
			{"id": "stream_fast", "name": "StreamFast", "defaultPrice": 9.99, "defaultPlanId": "plan_gold"}
		]`))
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second)
	merchants, err := client.FetchMerchants(context.Background())
	if err != nil {
		t.Fatalf("FetchMerchants returned error: %v", err)
	}
	if len(merchants) != 2 {
		t.Fatalf("expected 2 merchants, got %d", len(merchants))
	}
	if merchants[0].ID != "gym_flex" || merchants[0].DefaultPrice != nil {
		t.Fatalf("unexpected first profile: %+v", merchants[0])
	}
	if merchants[1].DefaultPrice == nil || *merchants[1].DefaultPrice != 9.99 {
		t.Fatalf("expected default price on second profile, got %+v", merchants[1])
	}
	if merchants[1].DefaultPlanID == nil || *merchants[1].DefaultPlanID != "plan_gold" {
		t.Fatalf("expected default plan id on second profile, got %+v", merchants[1])
	}
}

func TestFetchMerchantsTreatsEmptyListAsValid(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second)
	merchants, err := client.FetchMerchants(context.Background())
	if err != nil {
		t.Fatalf("expected empty catalog to succeed, got %v", err)
	}
	if len(merchants) != 0 {
		t.Fatalf("expected zero merchants, got %d", len(merchants))
	}
}

func TestFetchMerchantsReportsNonSuccessStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second)
	if _, err := client.FetchMerchants(context.Background()); err == nil {
		t.Fatal("expected error for non-2xx response")
	}
}

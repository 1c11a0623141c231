/**
 * @description
 * This file defines the core domain models for the checkout portal. These
 * structs represent the entities exchanged between the checkout session, the
 * external firewall/agent services, and the presentation boundary.
 *
 * @notes
 * - JSON field names on the transaction payload are camelCase because that is
 *   the wire contract the recurring-firewall backend expects. The
 *   investigation request/response use snake_case for the same reason.
 * - Amounts are display-currency decimals (two fractional digits), not minor
 *   units: the firewall contract takes decimal amounts as-is.
 */

package domain

import (
	"fmt"
	"strings"
)

// Product identifies one of the fixed purchase tiers offered at checkout.
type Product string

// Currency is the ISO-4217 code of a supported display currency.
type Currency string

// Decision is the verdict returned by the payment firewall for a transaction.
// DecisionError never comes from the firewall; it marks attempts whose
// decision call failed in transit and exists only in the audit history.
type Decision string

// RiskLevel is the ordinal risk classification attached to a verdict.
type RiskLevel string

const (
	ProductStandard Product = "STANDARD"
	ProductTrial    Product = "TRIAL"
	ProductCheap    Product = "CHEAP"

	CurrencyUSD Currency = "USD"
	CurrencyEUR Currency = "EUR"
	CurrencyINR Currency = "INR"

	DecisionAllow   Decision = "ALLOW"
	DecisionDecline Decision = "DECLINE"
	DecisionError   Decision = "ERROR"

	RiskLevelLow    RiskLevel = "LOW"
	RiskLevelMedium RiskLevel = "MEDIUM"
	RiskLevelHigh   RiskLevel = "HIGH"
)

// ParseProduct validates a product tier supplied by the presentation layer.
func ParseProduct(s string) (Product, error) {
	switch Product(strings.ToUpper(strings.TrimSpace(s))) {
	case ProductStandard:
		return ProductStandard, nil
	case ProductTrial:
		return ProductTrial, nil
	case ProductCheap:
		return ProductCheap, nil
	}
	return "", fmt.Errorf("unknown product %q", s)
}

// ParseCurrency validates a currency code supplied by the presentation layer.
func ParseCurrency(s string) (Currency, error) {
	switch Currency(strings.ToUpper(strings.TrimSpace(s))) {
	case CurrencyUSD:
		return CurrencyUSD, nil
	case CurrencyEUR:
		return CurrencyEUR, nil
	case CurrencyINR:
		return CurrencyINR, nil
	}
	return "", fmt.Errorf("unknown currency %q", s)
}

// MerchantProfile is one entry of the merchant catalog. Profiles are
// immutable once fetched; the session only ever reads them.
type MerchantProfile struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	DefaultPrice  *float64 `json:"defaultPrice,omitempty"`
	DefaultPlanID *string  `json:"defaultPlanId,omitempty"`
}

// TransactionPayload is the immutable snapshot sent to the payment firewall.
// One payload is constructed per submit attempt and never mutated afterwards.
type TransactionPayload struct {
	TransactionID        string   `json:"transactionId"`
	MerchantID           string   `json:"merchantId"`
	CustomerID           string   `json:"customerId"`
	Amount               float64  `json:"amount"`
	Currency             Currency `json:"currency"`
	Timestamp            string   `json:"timestamp"`
	IsRecurring          bool     `json:"isRecurring"`
	PlanID               *string  `json:"planId"`
	Status               string   `json:"status"`
	WasCustomerCancelled bool     `json:"wasCustomerCancelled"`
}

// FirewallResponse is the verdict the firewall returns for one payload.
type FirewallResponse struct {
	Decision       Decision  `json:"decision"`
	TrustScore     int       `json:"trustScore"`
	RiskLevel      RiskLevel `json:"riskLevel"`
	TriggeredRules []string  `json:"triggeredRules"`
	LatencyMs      int64     `json:"latencyMs"`
}

// HistoryItem is one append-only audit record of a submit attempt.
// TrustScore is absent for attempts recorded as DecisionError.
type HistoryItem struct {
	Timestamp     string   `json:"timestamp"`
	TransactionID string   `json:"transactionId"`
	MerchantName  string   `json:"merchantName"`
	Amount        float64  `json:"amount"`
	Currency      Currency `json:"currency"`
	Decision      Decision `json:"decision"`
	TrustScore    *int     `json:"trustScore,omitempty"`
}

// InvestigationRequest is the enriched payload sent to the fraud agent: the
// submitted transaction fields plus the merchant's display name.
type InvestigationRequest struct {
	TransactionPayload
	MerchantName string `json:"merchant_name"`
}

// InvestigationResponse is the agent's structured finding set.
type InvestigationResponse struct {
	Confidence               string   `json:"confidence"`
	RiskSummary              string   `json:"risk_summary"`
	CancellationInstructions []string `json:"cancellation_instructions"`
}

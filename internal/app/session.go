/**
 * @description
 * This file contains the core business logic of the checkout portal. The
 * `Session` struct owns the operator's selection state, the derived order
 * totals, the submit lifecycle against the payment firewall, and the
 * append-only audit history. It is the sole writer of result, error, history
 * and the loading flags.
 *
 * Key invariants:
 * - amount / isRecurring / wasCustomerCancelled are a pure function of the
 *   (product, currency) pair, rederived after every state change. Selecting a
 *   merchant with a default price overrides the amount once, at selection
 *   time only.
 * - At most one decision call is in flight at a time; further submits are
 *   rejected until the current one resolves.
 * - Every completed submit attempt prepends exactly one history item.
 * - result and error are never simultaneously set.
 *
 * @dependencies
 * - context, errors, fmt, math/rand, sync, time: Standard Go libraries.
 * - github.com/google/uuid: For transaction id generation.
 * - internal/domain, internal/pricing: Domain models and derivation rules.
 * - pkg/rabbitmq: Optional decision-event publishing.
 */

package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/SIMARSINGHRAYAT/KIZCODE-HACK-THE-WINTER/internal/domain"
	"github.com/SIMARSINGHRAYAT/KIZCODE-HACK-THE-WINTER/internal/pricing"
	"github.com/SIMARSINGHRAYAT/KIZCODE-HACK-THE-WINTER/pkg/rabbitmq"
)

var (
	// ErrSubmitInFlight is returned when a submit is requested while a
	// previous decision call has not resolved yet.
	ErrSubmitInFlight = errors.New("a transaction submit is already in flight")

	// ErrNoMerchantSelected is returned when submit is requested without a
	// selected merchant.
	ErrNoMerchantSelected = errors.New("no merchant selected")

	// ErrUnknownMerchant is returned when a merchant id is not in the catalog.
	ErrUnknownMerchant = errors.New("unknown merchant")

	// ErrNoVerdict is returned when an investigation is requested before a
	// firewall verdict exists for the current transaction.
	ErrNoVerdict = errors.New("no verdict to investigate")

	// ErrAnalysisInFlight is returned when an investigation is requested
	// while one is already running for the displayed result.
	ErrAnalysisInFlight = errors.New("an investigation is already in flight")

	// ErrCatalogFetchInFlight is returned when a catalog fetch is requested
	// while one is already running.
	ErrCatalogFetchInFlight = errors.New("a catalog fetch is already in flight")
)

// CatalogClient fetches the merchant catalog.
type CatalogClient interface {
	FetchMerchants(ctx context.Context) ([]domain.MerchantProfile, error)
}

// DecisionClient submits a transaction payload for a firewall verdict.
type DecisionClient interface {
	CheckTransaction(ctx context.Context, payload domain.TransactionPayload) (*domain.FirewallResponse, error)
}

// InvestigationClient asks the fraud agent for a deep analysis.
type InvestigationClient interface {
	InvestigateTransaction(ctx context.Context, req domain.InvestigationRequest) (*domain.InvestigationResponse, error)
}

// InvestigationStatus is the state of the per-result investigation sub-flow.
type InvestigationStatus string

const (
	InvestigationIdle     InvestigationStatus = "IDLE"
	InvestigationLoading  InvestigationStatus = "LOADING"
	InvestigationComplete InvestigationStatus = "COMPLETE"
)

// payloadStatus is the fixed literal stamped on every constructed payload.
// It is not a lifecycle field; the firewall contract simply expects it.
const payloadStatus = "SUCCESS"

// Session orchestrates one operator's checkout lifecycle. All state is
// process-local and lives exactly as long as the session.
type Session struct {
	catalog  CatalogClient
	decision DecisionClient
	agent    InvestigationClient
	events   rabbitmq.Publisher
	exchange string

	mu sync.Mutex

	merchants        []domain.MerchantProfile
	merchantsLoading bool
	merchantsFetched bool
	catalogErr       string

	selectedMerchant *domain.MerchantProfile
	product          domain.Product
	currency         domain.Currency
	amount           float64
	isRecurring      bool
	wasCancelled     bool
	customerID       string

	loading bool
	result  *domain.FirewallResponse
	errMsg  string
	history []domain.HistoryItem

	// resultSeq increments on every event that invalidates the displayed
	// result, so late agent responses for a superseded result are dropped.
	resultSeq        uint64
	lastPayload      *domain.TransactionPayload
	lastMerchantName string

	analysisLoading bool
	analysis        *domain.InvestigationResponse
	analysisErr     string
}

// NewSession creates a checkout session with a fresh per-session customer id
// and the STANDARD/USD cart defaults.
func NewSession(catalog CatalogClient, decision DecisionClient, agent InvestigationClient, events rabbitmq.Publisher, exchange string) *Session {
	s := &Session{
		catalog:    catalog,
		decision:   decision,
		agent:      agent,
		events:     events,
		exchange:   exchange,
		product:    domain.ProductStandard,
		currency:   domain.CurrencyUSD,
		customerID: fmt.Sprintf("CUST-%05d", rand.Intn(10000)),
		history:    []domain.HistoryItem{},
	}
	s.rederive()
	return s
}

// rederive recomputes the cart fields from the (product, currency) pair.
// Callers must hold s.mu.
func (s *Session) rederive() {
	order := pricing.Derive(s.product, s.currency)
	s.amount = order.Amount
	s.isRecurring = order.IsRecurring
	s.wasCancelled = order.WasCustomerCancelled
}

// CustomerID returns the stable per-session customer identifier.
func (s *Session) CustomerID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.customerID
}

// LoadMerchants fetches the merchant catalog. It runs once at startup and
// again on explicit operator retry; overlapping fetches are rejected. A
// successful fetch of zero merchants is recorded as an empty catalog, which
// is distinct from a fetch failure.
func (s *Session) LoadMerchants(ctx context.Context) error {
	s.mu.Lock()
	if s.merchantsLoading {
		s.mu.Unlock()
		return ErrCatalogFetchInFlight
	}
	s.merchantsLoading = true
	s.catalogErr = ""
	s.mu.Unlock()

	merchants, err := s.catalog.FetchMerchants(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.merchantsLoading = false
	s.merchantsFetched = true
	if err != nil {
		log.Printf("level=warn component=session op=load_merchants outcome=failure err=%v", err)
		s.catalogErr = err.Error()
		s.merchants = nil
		return err
	}
	log.Printf("level=info component=session op=load_merchants outcome=success count=%d", len(merchants))
	s.merchants = merchants
	return nil
}

// SelectMerchant sets the active merchant profile. A merchant carrying a
// default price overrides the derived amount once, at selection time only.
// Switching merchants invalidates the displayed verdict and its
// investigation.
func (s *Session) SelectMerchant(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var found *domain.MerchantProfile
	for i := range s.merchants {
		if s.merchants[i].ID == id {
			found = &s.merchants[i]
			break
		}
	}
	if found == nil {
		return fmt.Errorf("%w: %s", ErrUnknownMerchant, id)
	}

	merchant := *found
	s.selectedMerchant = &merchant
	s.rederive()
	if merchant.DefaultPrice != nil {
		s.amount = *merchant.DefaultPrice
	}
	s.clearVerdictLocked()
	return nil
}

// SetProduct switches the product tier and rederives the cart fields.
// Idempotent for a fixed (product, currency) pair.
func (s *Session) SetProduct(product domain.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.product = product
	s.rederive()
}

// SetCurrency switches the display currency and rederives the cart fields.
// Idempotent for a fixed (product, currency) pair.
func (s *Session) SetCurrency(currency domain.Currency) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.currency = currency
	s.rederive()
}

// clearVerdictLocked drops the displayed result, error and investigation
// state and bumps the result sequence so in-flight agent responses for the
// old result are discarded. Callers must hold s.mu.
func (s *Session) clearVerdictLocked() {
	s.result = nil
	s.errMsg = ""
	s.resultSeq++
	s.analysis = nil
	s.analysisErr = ""
	s.analysisLoading = false
}

// Submit constructs an immutable payload snapshot from the current selection
// and sends it to the firewall. Exactly one history item is prepended per
// completed attempt. Precondition failures (no merchant, submit in flight)
// are returned as sentinel errors and leave all state untouched; a decision
// call failure is recorded in state and returned wrapped.
func (s *Session) Submit(ctx context.Context) (*domain.FirewallResponse, error) {
	s.mu.Lock()
	if s.selectedMerchant == nil {
		s.mu.Unlock()
		return nil, ErrNoMerchantSelected
	}
	if s.loading {
		s.mu.Unlock()
		return nil, ErrSubmitInFlight
	}
	s.loading = true
	s.clearVerdictLocked()

	merchant := *s.selectedMerchant
	payload := domain.TransactionPayload{
		TransactionID:        uuid.New().String(),
		MerchantID:           merchant.ID,
		CustomerID:           s.customerID,
		Amount:               s.amount,
		Currency:             s.currency,
		Timestamp:            time.Now().UTC().Format(time.RFC3339),
		IsRecurring:          s.isRecurring,
		PlanID:               merchant.DefaultPlanID,
		Status:               payloadStatus,
		WasCustomerCancelled: s.wasCancelled,
	}
	item := domain.HistoryItem{
		Timestamp:     payload.Timestamp,
		TransactionID: payload.TransactionID,
		MerchantName:  merchant.Name,
		Amount:        payload.Amount,
		Currency:      payload.Currency,
	}
	s.mu.Unlock()

	verdict, err := s.decision.CheckTransaction(ctx, payload)

	s.mu.Lock()
	s.loading = false
	s.clearVerdictLocked()
	s.lastPayload = &payload
	s.lastMerchantName = merchant.Name

	if err != nil {
		log.Printf("level=warn component=session op=submit outcome=failure transaction_id=%s err=%v", payload.TransactionID, err)
		s.errMsg = err.Error()
		item.Decision = domain.DecisionError
		s.history = append([]domain.HistoryItem{item}, s.history...)
		s.mu.Unlock()
		s.publishDecision(ctx, payload, item)
		return nil, fmt.Errorf("decision call failed: %w", err)
	}

	log.Printf("level=info component=session op=submit outcome=success transaction_id=%s decision=%s trust_score=%d", payload.TransactionID, verdict.Decision, verdict.TrustScore)
	s.result = verdict
	score := verdict.TrustScore
	item.Decision = verdict.Decision
	item.TrustScore = &score
	s.history = append([]domain.HistoryItem{item}, s.history...)
	s.mu.Unlock()

	s.publishDecision(ctx, payload, item)
	return verdict, nil
}

// publishDecision emits a fire-and-forget decision event. Publish failures
// are logged and never affect the checkout flow.
func (s *Session) publishDecision(ctx context.Context, payload domain.TransactionPayload, item domain.HistoryItem) {
	if s.events == nil {
		return
	}
	event := rabbitmq.DecisionEvent{
		TransactionID: payload.TransactionID,
		MerchantID:    payload.MerchantID,
		Decision:      string(item.Decision),
		TrustScore:    item.TrustScore,
		Amount:        payload.Amount,
		Currency:      string(payload.Currency),
		Timestamp:     time.Now().UTC(),
	}
	if err := s.events.PublishDecisionEvent(ctx, s.exchange, event); err != nil {
		log.Printf("level=warn component=session op=publish_decision msg=\"event publish failed\" transaction_id=%s err=%v", payload.TransactionID, err)
	}
}

// Investigate asks the fraud agent for a deep analysis of the submitted
// transaction. The request is bound to the immutable payload snapshot, not
// the live cart, so later product or currency edits do not leak into it. At
// most one investigation runs per displayed result; once complete, the
// stored analysis is returned as-is until a new submit resets the sub-flow.
func (s *Session) Investigate(ctx context.Context) (*domain.InvestigationResponse, error) {
	s.mu.Lock()
	if s.result == nil {
		s.mu.Unlock()
		return nil, ErrNoVerdict
	}
	if s.analysisLoading {
		s.mu.Unlock()
		return nil, ErrAnalysisInFlight
	}
	if s.analysis != nil {
		analysis := s.analysis
		s.mu.Unlock()
		return analysis, nil
	}
	s.analysisLoading = true
	s.analysisErr = ""
	seq := s.resultSeq
	req := domain.InvestigationRequest{
		TransactionPayload: *s.lastPayload,
		MerchantName:       s.lastMerchantName,
	}
	s.mu.Unlock()

	analysis, err := s.agent.InvestigateTransaction(ctx, req)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.resultSeq != seq {
		// The result this investigation belonged to is gone; drop the
		// response without touching the new sub-flow.
		log.Printf("level=info component=session op=investigate outcome=stale transaction_id=%s", req.TransactionID)
		return nil, nil
	}
	s.analysisLoading = false
	if err != nil {
		log.Printf("level=warn component=session op=investigate outcome=failure transaction_id=%s err=%v", req.TransactionID, err)
		s.analysisErr = err.Error()
		return nil, fmt.Errorf("investigation call failed: %w", err)
	}
	log.Printf("level=info component=session op=investigate outcome=success transaction_id=%s confidence=%s", req.TransactionID, analysis.Confidence)
	s.analysis = analysis
	return analysis, nil
}

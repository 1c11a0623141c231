/**
 * @description
 * This file contains the HTTP handlers for the checkout portal's API. The
 * handlers are a thin presentation boundary: they parse requests, invoke the
 * checkout session, and serialize the resulting state snapshot. All state
 * transitions happen inside the session.
 *
 * @dependencies
 * - encoding/json, log, net/http: Standard Go libraries.
 * - internal/app, internal/domain: For session logic and models.
 */

package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/SIMARSINGHRAYAT/KIZCODE-HACK-THE-WINTER/internal/app"
	"github.com/SIMARSINGHRAYAT/KIZCODE-HACK-THE-WINTER/internal/domain"
)

// CheckoutHandlers holds the checkout session the handlers drive.
type CheckoutHandlers struct {
	session *app.Session
}

// NewCheckoutHandlers creates a new instance of CheckoutHandlers.
func NewCheckoutHandlers(session *app.Session) *CheckoutHandlers {
	return &CheckoutHandlers{session: session}
}

type selectMerchantRequest struct {
	MerchantID string `json:"merchantId"`
}

type selectProductRequest struct {
	Product string `json:"product"`
}

type selectCurrencyRequest struct {
	Currency string `json:"currency"`
}

func (h *CheckoutHandlers) writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}

func (h *CheckoutHandlers) writeSnapshot(w http.ResponseWriter, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(h.session.Snapshot()); err != nil {
		log.Printf("level=error component=api msg=\"snapshot encode failed\" err=%v", err)
	}
}

// StateHandler returns the full session state snapshot.
func (h *CheckoutHandlers) StateHandler(w http.ResponseWriter, r *http.Request) {
	h.writeSnapshot(w, http.StatusOK)
}

// HistoryHandler returns the audit history, newest first.
func (h *CheckoutHandlers) HistoryHandler(w http.ResponseWriter, r *http.Request) {
	snap := h.session.Snapshot()
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(snap.History); err != nil {
		log.Printf("level=error component=api msg=\"history encode failed\" err=%v", err)
	}
}

// RefreshMerchantsHandler re-runs the catalog fetch on operator request.
func (h *CheckoutHandlers) RefreshMerchantsHandler(w http.ResponseWriter, r *http.Request) {
	if err := h.session.LoadMerchants(r.Context()); err != nil {
		if errors.Is(err, app.ErrCatalogFetchInFlight) {
			h.writeError(w, http.StatusConflict, "A catalog fetch is already in progress.")
			return
		}
		// The failure is recorded in session state; the snapshot carries it.
		log.Printf("level=warn component=api endpoint=refresh_merchants outcome=failure err=%v", err)
	}
	h.writeSnapshot(w, http.StatusOK)
}

// SelectMerchantHandler sets the active merchant profile.
func (h *CheckoutHandlers) SelectMerchantHandler(w http.ResponseWriter, r *http.Request) {
	var req selectMerchantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request body: %v", err))
		return
	}
	if err := h.session.SelectMerchant(req.MerchantID); err != nil {
		log.Printf("level=warn component=api endpoint=select_merchant outcome=reject merchant_id=%s err=%v", req.MerchantID, err)
		h.writeError(w, http.StatusNotFound, "Merchant not found.")
		return
	}
	h.writeSnapshot(w, http.StatusOK)
}

// SelectProductHandler switches the product tier.
func (h *CheckoutHandlers) SelectProductHandler(w http.ResponseWriter, r *http.Request) {
	var req selectProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request body: %v", err))
		return
	}
	product, err := domain.ParseProduct(req.Product)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	h.session.SetProduct(product)
	h.writeSnapshot(w, http.StatusOK)
}

// SelectCurrencyHandler switches the display currency.
func (h *CheckoutHandlers) SelectCurrencyHandler(w http.ResponseWriter, r *http.Request) {
	var req selectCurrencyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request body: %v", err))
		return
	}
	currency, err := domain.ParseCurrency(req.Currency)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	h.session.SetCurrency(currency)
	h.writeSnapshot(w, http.StatusOK)
}

// SubmitHandler runs one checkout attempt against the firewall. A decision
// call failure still answers 200: the attempt completed and its outcome
// (error message plus ERROR history entry) is part of the snapshot.
func (h *CheckoutHandlers) SubmitHandler(w http.ResponseWriter, r *http.Request) {
	_, err := h.session.Submit(r.Context())
	switch {
	case errors.Is(err, app.ErrNoMerchantSelected):
		h.writeError(w, http.StatusUnprocessableEntity, "Select a merchant before submitting.")
		return
	case errors.Is(err, app.ErrSubmitInFlight):
		h.writeError(w, http.StatusConflict, "A transaction is already being processed.")
		return
	}
	h.writeSnapshot(w, http.StatusOK)
}

// InvestigateHandler triggers the fraud-agent sub-flow for the displayed
// verdict. As with submit, an agent failure is state, not an HTTP error.
func (h *CheckoutHandlers) InvestigateHandler(w http.ResponseWriter, r *http.Request) {
	_, err := h.session.Investigate(r.Context())
	switch {
	case errors.Is(err, app.ErrNoVerdict):
		h.writeError(w, http.StatusPreconditionFailed, "No verdict to investigate yet.")
		return
	case errors.Is(err, app.ErrAnalysisInFlight):
		h.writeError(w, http.StatusConflict, "An investigation is already running.")
		return
	}
	h.writeSnapshot(w, http.StatusOK)
}

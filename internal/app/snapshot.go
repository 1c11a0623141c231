/**
 * @description
 * This file defines the read-only state view the session exposes to the
 * presentation boundary. The snapshot is a consistent copy taken under the
 * session lock; handlers serialize it directly.
 */

package app

import (
	"github.com/SIMARSINGHRAYAT/KIZCODE-HACK-THE-WINTER/internal/domain"
)

// InvestigationState is the sub-flow portion of a snapshot.
type InvestigationState struct {
	Status   InvestigationStatus           `json:"status"`
	Analysis *domain.InvestigationResponse `json:"analysis,omitempty"`
	Error    string                        `json:"error,omitempty"`
}

// StateSnapshot is a point-in-time copy of everything the presentation layer
// may render. History is newest-first.
type StateSnapshot struct {
	Merchants        []domain.MerchantProfile `json:"merchants"`
	MerchantsLoading bool                     `json:"merchantsLoading"`
	CatalogEmpty     bool                     `json:"catalogEmpty"`
	CatalogError     string                   `json:"catalogError,omitempty"`

	SelectedMerchant *domain.MerchantProfile `json:"selectedMerchant,omitempty"`
	SelectedProduct  domain.Product          `json:"selectedProduct"`
	Currency         domain.Currency         `json:"currency"`
	Amount           float64                 `json:"amount"`
	IsRecurring      bool                    `json:"isRecurring"`
	WasCancelled     bool                    `json:"wasCustomerCancelled"`
	CustomerID       string                  `json:"customerId"`

	Loading bool                     `json:"loading"`
	Result  *domain.FirewallResponse `json:"result,omitempty"`
	Error   string                   `json:"error,omitempty"`
	History []domain.HistoryItem     `json:"history"`

	Investigation InvestigationState `json:"investigation"`
}

// Snapshot returns a consistent copy of the session state.
func (s *Session) Snapshot() StateSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := StateSnapshot{
		Merchants:        append([]domain.MerchantProfile{}, s.merchants...),
		MerchantsLoading: s.merchantsLoading,
		CatalogEmpty:     s.merchantsFetched && s.catalogErr == "" && len(s.merchants) == 0,
		CatalogError:     s.catalogErr,
		SelectedProduct:  s.product,
		Currency:         s.currency,
		Amount:           s.amount,
		IsRecurring:      s.isRecurring,
		WasCancelled:     s.wasCancelled,
		CustomerID:       s.customerID,
		Loading:          s.loading,
		Error:            s.errMsg,
		History:          append([]domain.HistoryItem{}, s.history...),
	}
	if s.selectedMerchant != nil {
		merchant := *s.selectedMerchant
		snap.SelectedMerchant = &merchant
	}
	if s.result != nil {
		result := *s.result
		snap.Result = &result
	}

	snap.Investigation = InvestigationState{Status: InvestigationIdle, Error: s.analysisErr}
	switch {
	case s.analysis != nil:
		analysis := *s.analysis
		snap.Investigation.Status = InvestigationComplete
		snap.Investigation.Analysis = &analysis
	case s.analysisLoading:
		snap.Investigation.Status = InvestigationLoading
	}
	return snap
}

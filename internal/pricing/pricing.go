/**
 * @description
 * This package owns the order-pricing rules of the checkout: the product
 * price table, the fixed exchange rates, and the derivation of the order
 * fields that follow mechanically from the selected product tier.
 *
 * All functions here are pure so the session can rederive totals after every
 * state change without accumulating drift.
 */

package pricing

import (
	"math"

	"github.com/SIMARSINGHRAYAT/KIZCODE-HACK-THE-WINTER/internal/domain"
)

// Base prices are quoted in USD; display amounts are converted per order.
var basePrices = map[domain.Product]float64{
	domain.ProductStandard: 49.99,
	domain.ProductTrial:    99.99,
	domain.ProductCheap:    1.00,
}

var rates = map[domain.Currency]float64{
	domain.CurrencyUSD: 1,
	domain.CurrencyEUR: 0.85,
	domain.CurrencyINR: 91.00,
}

// Order holds the fields of the cart that are a pure function of the
// selected (product, currency) pair. They are rederived, never edited.
type Order struct {
	Amount               float64
	IsRecurring          bool
	WasCustomerCancelled bool
}

// Convert turns a USD base price into a display amount in the target
// currency, rounded half-up to two decimals. Rounding happens on the final
// product only.
func Convert(baseUSD float64, currency domain.Currency) float64 {
	return math.Round(baseUSD*rates[currency]*100) / 100
}

// BasePrice returns the USD list price of a product tier.
func BasePrice(product domain.Product) float64 {
	return basePrices[product]
}

// Derive computes the cart fields for a (product, currency) pair.
// TRIAL is priced as a recurring plan the customer already cancelled, which
// is the scenario the firewall's cancellation rules key on.
func Derive(product domain.Product, currency domain.Currency) Order {
	order := Order{Amount: Convert(basePrices[product], currency)}
	switch product {
	case domain.ProductStandard:
		order.IsRecurring = true
	case domain.ProductTrial:
		order.IsRecurring = true
		order.WasCustomerCancelled = true
	case domain.ProductCheap:
		// one-time purchase, nothing recurring to cancel
	}
	return order
}

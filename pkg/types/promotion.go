package types

import (
	"time"

	"github.com/shopspring/decimal"
)

// Promotion is a time-windowed discount over a set of product ids. Amount
// and Percentage are mutually exclusive; a positive Amount takes precedence
// when both are populated.
type Promotion struct {
	ID         int64            `json:"id"`
	Start      time.Time        `json:"start"`
	End        time.Time        `json:"end"`
	Amount     decimal.Decimal  `json:"amount"`
	Percentage *decimal.Decimal `json:"percentage,omitempty"`
	Active     bool             `json:"active"`
	ProductIDs []int64          `json:"product_ids"`
}

// AppliesTo reports whether the promotion covers the given product id.
func (p Promotion) AppliesTo(productID int64) bool {
	for _, id := range p.ProductIDs {
		if id == productID {
			return true
		}
	}
	return false
}

// Covers reports whether the promotion window contains the given instant.
// Bounds are inclusive on both ends, matching the upstream comparison.
func (p Promotion) Covers(at time.Time) bool {
	return !p.Start.After(at) && !p.End.Before(at)
}

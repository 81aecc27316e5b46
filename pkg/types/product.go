package types

import "github.com/shopspring/decimal"

// Product is a current catalog entry. Stock is string-encoded upstream and
// kept that way for display; numeric consumers parse it at the boundary.
type Product struct {
	ID            int64            `json:"id"`
	Title         string           `json:"title"`
	Stock         string           `json:"stock"`
	Pricing       decimal.Decimal  `json:"pricing"`
	OriginalPrice *decimal.Decimal `json:"original_price,omitempty"`
	Active        bool             `json:"active"`
}

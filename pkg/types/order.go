package types

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/lucasmoreno/pharmadash-backend/pkg/enums"
)

// Order is a read-only snapshot of a marketplace order as served by the
// content API. The metrics pipeline never mutates it.
type Order struct {
	ID             int64             `json:"id"`
	Date           time.Time         `json:"date"`
	Status         enums.OrderStatus `json:"status"`
	TrackingNumber *string           `json:"tracking_number,omitempty"`
	Carrier        *string           `json:"carrier,omitempty"`
	Shipping       *ShippingAddress  `json:"shipping_address,omitempty"`
	Purchase       []PurchaseItem    `json:"purchase"`
	Customer       Customer          `json:"customer"`

	// TotalAmount carries the content API's denormalized order total in
	// cents. It is known to disagree with the per-line sum on legacy rows
	// and is surfaced for display only; turnover is always recomputed from
	// the purchase lines.
	TotalAmount string `json:"total_amount"`
}

// PurchaseItem is one order line. Quantity is contractually a positive
// integer; a quantity above 1 marks the line as a pack sale.
type PurchaseItem struct {
	Quantity int             `json:"quantity"`
	Product  ProductSnapshot `json:"product"`
}

// ProductSnapshot is the product state embedded in an order at purchase
// time. Its pricing may differ from the current catalog price.
type ProductSnapshot struct {
	ID      int64           `json:"id"`
	Title   string          `json:"title"`
	Pricing decimal.Decimal `json:"pricing"`
	Stock   string          `json:"stock"`
}

// ShippingAddress holds the delivery destination for display in order lists.
type ShippingAddress struct {
	Address string `json:"address"`
	Zip     string `json:"zip"`
	City    string `json:"city"`
	Country string `json:"country"`
}

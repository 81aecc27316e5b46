package strapi

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// listEnvelope is the content API's paged collection response.
type listEnvelope[T any] struct {
	Data []entry[T]   `json:"data"`
	Meta envelopeMeta `json:"meta"`
}

type entry[T any] struct {
	ID         int64 `json:"id"`
	Attributes T     `json:"attributes"`
}

type envelopeMeta struct {
	Pagination paginationMeta `json:"pagination"`
}

type paginationMeta struct {
	Page      int `json:"page"`
	PageSize  int `json:"pageSize"`
	PageCount int `json:"pageCount"`
	Total     int `json:"total"`
}

// dataEnvelope wraps write payloads the way the content API expects.
type dataEnvelope[T any] struct {
	Data T `json:"data"`
}

type relation[T any] struct {
	Data *entry[T] `json:"data"`
}

type relationList struct {
	Data []entry[struct{}] `json:"data"`
}

// flexString tolerates upstream fields that arrive as either a JSON string
// or a bare number; stock is string-typed in the schema but legacy rows
// stored integers.
type flexString string

func (f *flexString) UnmarshalJSON(raw []byte) error {
	if len(raw) == 0 || string(raw) == "null" {
		*f = ""
		return nil
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return fmt.Errorf("unexpected value %s: %w", raw, err)
	}
	*f = flexString(n.String())
	return nil
}

type orderAttributes struct {
	Date           time.Time                  `json:"date"`
	DeliverFollow  string                     `json:"deliver_follow"`
	TotalAmount    flexString                 `json:"total_amount"`
	TrackingNumber *string                    `json:"tracking_number"`
	Carrier        *string                    `json:"carrier"`
	Shipping       *shippingAttributes        `json:"shipping_adress"` // upstream field name, typo included
	OrderSummary   orderSummary               `json:"order_summary"`
	User           relation[customerRelation] `json:"users_permissions_user"`
}

type shippingAttributes struct {
	Address string `json:"adresse"`
	Zip     string `json:"zip"`
	City    string `json:"city"`
	Country string `json:"country"`
}

type orderSummary struct {
	Purchase []purchaseLine `json:"purchase"`
}

type purchaseLine struct {
	Quantity int             `json:"quantity"`
	Product  purchaseProduct `json:"product"`
}

type purchaseProduct struct {
	ID      int64           `json:"id"`
	Title   string          `json:"title"`
	Pricing decimal.Decimal `json:"pricing"`
	Stock   flexString      `json:"stock"`
}

type customerRelation struct {
	Username  string  `json:"username"`
	Email     string  `json:"email"`
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
}

type productAttributes struct {
	Title         string           `json:"title"`
	Stock         flexString       `json:"stock"`
	Pricing       decimal.Decimal  `json:"pricing"`
	OriginalPrice *decimal.Decimal `json:"original_price"`
	Active        bool             `json:"active"`
}

type promotionAttributes struct {
	Debut      time.Time        `json:"debut"`
	Fin        time.Time        `json:"fin"`
	Amount     decimal.Decimal  `json:"amount"`
	Percentage *decimal.Decimal `json:"percentage"`
	Active     bool             `json:"active"`
	Products   relationList     `json:"products"`
}

type loginResponse struct {
	JWT string `json:"jwt"`
}

type meResponse struct {
	ID       int64         `json:"id"`
	Username string        `json:"username"`
	Email    string        `json:"email"`
	Role     roleAttribute `json:"role"`
}

type roleAttribute struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// AuthenticatedUser is the identity returned by Login.
type AuthenticatedUser struct {
	ID       int64
	Username string
	Email    string
	RoleID   int64
}

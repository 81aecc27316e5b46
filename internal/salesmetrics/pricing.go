package salesmetrics

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/lucasmoreno/pharmadash-backend/pkg/types"
)

// minPrice is the floor for any discounted price; discounts never produce
// zero or negative prices.
var minPrice = decimal.RequireFromString("0.01")

var oneHundred = decimal.NewFromInt(100)

// PriceResolver applies promotional discounts to unit prices. One resolver
// serves one aggregation pass: results are memoized by (date, product), so
// a resolver must not outlive the promotion list it was built from.
type PriceResolver struct {
	promotions []types.Promotion
	now        time.Time
	memo       map[priceMemoKey]decimal.Decimal
}

type priceMemoKey struct {
	date      int64
	productID int64
}

// NewPriceResolver builds a resolver over the given promotion list.
// The clock instant decides whether a promotion has already ended, which
// switches the discount base to the product's pre-promotion price.
func NewPriceResolver(promotions []types.Promotion, now time.Time) *PriceResolver {
	return &PriceResolver{
		promotions: promotions,
		now:        now,
		memo:       make(map[priceMemoKey]decimal.Decimal),
	}
}

// Resolve returns the effective unit price for a product sold at the given
// date. currentPrice is the price in effect for the sale; originalPrice is
// the catalog's pre-promotion price when one is recorded.
//
// When several promotions qualify, the first in list order wins. That
// mirrors the upstream behavior and is deliberately not a stacking rule;
// see DESIGN.md.
func (r *PriceResolver) Resolve(date time.Time, productID int64, currentPrice decimal.Decimal, originalPrice *decimal.Decimal) decimal.Decimal {
	key := priceMemoKey{date: date.UnixNano(), productID: productID}
	if cached, ok := r.memo[key]; ok {
		return cached
	}

	price := r.resolve(date, productID, currentPrice, originalPrice)
	r.memo[key] = price
	return price
}

func (r *PriceResolver) resolve(date time.Time, productID int64, currentPrice decimal.Decimal, originalPrice *decimal.Decimal) decimal.Decimal {
	promo, ok := r.findPromotion(date, productID)
	if !ok {
		return currentPrice
	}

	base := currentPrice
	if promo.End.Before(r.now) && originalPrice != nil && originalPrice.IsPositive() {
		// The promotion window has closed since the sale: the catalog's
		// current price already reverted, so discount from the recorded
		// pre-promotion price instead. A zero original price means none
		// was recorded, not a free product.
		base = *originalPrice
	}

	var discounted decimal.Decimal
	switch {
	case promo.Amount.IsPositive():
		discounted = base.Sub(promo.Amount)
	case promo.Percentage != nil:
		discounted = base.Mul(decimal.NewFromInt(1).Sub(promo.Percentage.Div(oneHundred)))
	default:
		return currentPrice
	}

	if discounted.LessThan(minPrice) {
		return minPrice
	}
	return discounted
}

func (r *PriceResolver) findPromotion(date time.Time, productID int64) (types.Promotion, bool) {
	for _, promo := range r.promotions {
		if promo.Active && promo.Covers(date) && promo.AppliesTo(productID) {
			return promo, true
		}
	}
	return types.Promotion{}, false
}

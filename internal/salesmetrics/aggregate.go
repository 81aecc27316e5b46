package salesmetrics

import (
	"github.com/shopspring/decimal"

	pkgerrors "github.com/lucasmoreno/pharmadash-backend/pkg/errors"
	"github.com/lucasmoreno/pharmadash-backend/pkg/types"
)

// Aggregate consolidates per-product and per-customer statistics over an
// already-filtered order set. It is a pure function: re-running it with the
// same inputs and resolver clock yields the same output.
//
// Product buckets are keyed by title, not id: two catalog entries sharing
// a title land in one sales bucket. The dashboard depends on that grouping.
func Aggregate(filtered []types.Order, products []types.Product, resolver *PriceResolver) (Aggregation, error) {
	agg := Aggregation{
		CustomerOrderCounts: make(map[int64]int),
		Customers:           make(map[int64]types.Customer),
	}

	originals := originalPriceIndex(products)
	bucketIndex := make(map[string]int)

	for _, order := range filtered {
		for _, line := range order.Purchase {
			if line.Quantity < 1 {
				return Aggregation{}, pkgerrors.New(pkgerrors.CodeValidation, "purchase line quantity must be a positive integer").
					WithDetails(map[string]any{"order_id": order.ID, "quantity": line.Quantity})
			}

			effective := resolver.Resolve(order.Date, line.Product.ID, line.Product.Pricing, originals[line.Product.ID])
			lineTurnover := effective.Mul(decimal.NewFromInt(int64(line.Quantity)))

			idx, ok := bucketIndex[line.Product.Title]
			if !ok {
				idx = len(agg.Products)
				bucketIndex[line.Product.Title] = idx
				agg.Products = append(agg.Products, ProductSales{
					Title: line.Product.Title,
					Price: line.Product.Pricing,
					Stock: line.Product.Stock,
				})
			}
			agg.Products[idx].Quantity += line.Quantity
			agg.Products[idx].Turnover = agg.Products[idx].Turnover.Add(lineTurnover)

			if line.Quantity > 1 {
				agg.PackSaleCount++
			}
		}

		customerID := order.Customer.ID
		if _, seen := agg.CustomerOrderCounts[customerID]; !seen {
			agg.CustomerSeen = append(agg.CustomerSeen, customerID)
			agg.Customers[customerID] = order.Customer
		}
		agg.CustomerOrderCounts[customerID]++
	}

	return agg, nil
}

// originalPriceIndex maps product id to its recorded pre-promotion price.
// Products without one are simply absent.
func originalPriceIndex(products []types.Product) map[int64]*decimal.Decimal {
	index := make(map[int64]*decimal.Decimal, len(products))
	for i := range products {
		if products[i].OriginalPrice != nil {
			index[products[i].ID] = products[i].OriginalPrice
		}
	}
	return index
}

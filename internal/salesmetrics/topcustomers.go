package salesmetrics

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/lucasmoreno/pharmadash-backend/pkg/enums"
	"github.com/lucasmoreno/pharmadash-backend/pkg/types"
)

// DefaultTopCustomersLimit matches the dashboard card's row count.
const DefaultTopCustomersLimit = 6

// TopCustomersBySpend ranks customers by total money spent, excluding
// canceled orders from the totals entirely.
//
// This is intentionally a separate aggregation mode from the report's
// best-customer-by-order-count figure, which does not filter by status;
// the two disagree on cancellations by design (see DESIGN.md).
func TopCustomersBySpend(orders []types.Order, products []types.Product, resolver *PriceResolver, limit int) []TopCustomer {
	if limit <= 0 {
		limit = DefaultTopCustomersLimit
	}

	originals := originalPriceIndex(products)

	index := make(map[int64]int)
	var rows []TopCustomer

	for _, order := range orders {
		if order.Status == enums.OrderStatusCanceled {
			continue
		}

		spent := decimal.Zero
		for _, line := range order.Purchase {
			effective := resolver.Resolve(order.Date, line.Product.ID, line.Product.Pricing, originals[line.Product.ID])
			spent = spent.Add(effective.Mul(decimal.NewFromInt(int64(line.Quantity))))
		}

		idx, ok := index[order.Customer.ID]
		if !ok {
			idx = len(rows)
			index[order.Customer.ID] = idx
			rows = append(rows, TopCustomer{
				ID:       order.Customer.ID,
				Username: order.Customer.Username,
				Email:    order.Customer.Email,
			})
		}
		rows[idx].OrderCount++
		rows[idx].TotalSpent = rows[idx].TotalSpent.Add(spent)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].TotalSpent.GreaterThan(rows[j].TotalSpent)
	})

	if len(rows) > limit {
		rows = rows[:limit]
	}
	for i := range rows {
		rows[i].TotalSpent = rows[i].TotalSpent.Round(moneyScale)
	}
	return rows
}

package salesmetrics

import (
	"github.com/shopspring/decimal"

	"github.com/lucasmoreno/pharmadash-backend/pkg/types"
)

const moneyScale = 2

// BuildReport derives the dashboard summary figures from an aggregation
// pass. Turnover is the canonical per-line sum; the legacy order-level
// total field never feeds it.
//
// An empty filtered set yields an all-zero report with "N/A" sentinels;
// nothing here divides by a count that can be zero.
func BuildReport(agg Aggregation, filtered []types.Order) Report {
	if len(filtered) == 0 {
		return emptyReport()
	}

	turnover := decimal.Zero
	for _, bucket := range agg.Products {
		turnover = turnover.Add(bucket.Turnover)
	}

	numberOfSales := len(filtered)
	numberOfCustomers := len(agg.CustomerSeen)

	report := Report{
		Turnover:          turnover.Round(moneyScale),
		NumberOfSales:     numberOfSales,
		AverageBasket:     turnover.Div(decimal.NewFromInt(int64(numberOfSales))).Round(moneyScale),
		NumberOfCustomers: numberOfCustomers,
		SalesPerProduct:   roundBuckets(agg.Products),
		PackSales:         agg.PackSaleCount,
		MostSoldProduct:   SoldProduct{Title: SentinelNA},
		LeastSoldProduct:  SoldProduct{Title: SentinelNA},
		BestCustomer:      BestCustomer{Username: SentinelNA},
	}

	if numberOfCustomers > 0 {
		customers := decimal.NewFromInt(int64(numberOfCustomers))
		report.SalesPerCustomer = decimal.NewFromInt(int64(numberOfSales)).Div(customers).Round(moneyScale)

		totalPurchases := 0
		for _, count := range agg.CustomerOrderCounts {
			totalPurchases += count
		}
		report.AveragePurchasesPerCustomer = decimal.NewFromInt(int64(totalPurchases)).Div(customers).Round(moneyScale)
	}

	// Ties keep the first bucket encountered during aggregation.
	for _, bucket := range agg.Products {
		if bucket.Quantity > report.MostSoldProduct.Quantity {
			report.MostSoldProduct = SoldProduct{Title: bucket.Title, Quantity: bucket.Quantity}
		}
	}
	least := SoldProduct{Title: SentinelNA}
	for i, bucket := range agg.Products {
		if i == 0 || bucket.Quantity < least.Quantity {
			least = SoldProduct{Title: bucket.Title, Quantity: bucket.Quantity}
		}
	}
	report.LeastSoldProduct = least

	// Strict maximum: a later customer must exceed, not match, the current
	// best to take the slot.
	for _, id := range agg.CustomerSeen {
		if count := agg.CustomerOrderCounts[id]; count > report.BestCustomer.TotalPurchases {
			report.BestCustomer = BestCustomer{
				Username:       agg.Customers[id].Username,
				TotalPurchases: count,
			}
		}
	}

	return report
}

func emptyReport() Report {
	return Report{
		Turnover:                    decimal.Zero,
		AverageBasket:               decimal.Zero,
		SalesPerCustomer:            decimal.Zero,
		SalesPerProduct:             []ProductSales{},
		AveragePurchasesPerCustomer: decimal.Zero,
		MostSoldProduct:             SoldProduct{Title: SentinelNA},
		LeastSoldProduct:            SoldProduct{Title: SentinelNA},
		BestCustomer:                BestCustomer{Username: SentinelNA},
	}
}

func roundBuckets(buckets []ProductSales) []ProductSales {
	out := make([]ProductSales, len(buckets))
	copy(out, buckets)
	for i := range out {
		out[i].Turnover = out[i].Turnover.Round(moneyScale)
	}
	return out
}

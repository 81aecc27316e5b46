package salesmetrics

import (
	"github.com/shopspring/decimal"

	"github.com/lucasmoreno/pharmadash-backend/pkg/enums"
	"github.com/lucasmoreno/pharmadash-backend/pkg/types"
)

// SentinelNA is reported for named fields when the filtered order set is empty.
const SentinelNA = "N/A"

// ProductSales is one per-product accumulation bucket. Buckets are keyed by
// product title, so two catalog entries sharing a title share a bucket.
type ProductSales struct {
	Title    string          `json:"title"`
	Quantity int             `json:"quantity"`
	Turnover decimal.Decimal `json:"turnover"`

	// Price and Stock are the snapshot captured on first encounter during
	// the aggregation pass; later lines do not overwrite them.
	Price decimal.Decimal `json:"price"`
	Stock string          `json:"stock"`
}

// Aggregation is the intermediate result of one pass over filtered orders.
// Products preserves first-encounter order so downstream tie-breaks are
// deterministic.
type Aggregation struct {
	Products      []ProductSales
	PackSaleCount int

	// CustomerOrderCounts maps customer id to number of orders touched
	// (not line items). CustomerSeen preserves encounter order, and
	// Customers keeps display data per id.
	CustomerOrderCounts map[int64]int
	CustomerSeen        []int64
	Customers           map[int64]types.Customer
}

// SoldProduct names a best/least seller.
type SoldProduct struct {
	Title    string `json:"title"`
	Quantity int    `json:"quantity"`
}

// BestCustomer names the customer with the strict-maximum order count.
type BestCustomer struct {
	Username       string `json:"username"`
	TotalPurchases int    `json:"total_purchases"`
}

// Report is the full dashboard metrics payload, rebuilt from scratch on
// every filter change.
type Report struct {
	Turnover                    decimal.Decimal `json:"turnover"`
	NumberOfSales               int             `json:"number_of_sales"`
	AverageBasket               decimal.Decimal `json:"average_basket"`
	NumberOfCustomers           int             `json:"number_of_customers"`
	SalesPerCustomer            decimal.Decimal `json:"sales_per_customer"`
	SalesPerProduct             []ProductSales  `json:"sales_per_product"`
	PackSales                   int             `json:"pack_sales"`
	MostSoldProduct             SoldProduct     `json:"most_sold_product"`
	LeastSoldProduct            SoldProduct     `json:"least_sold_product"`
	AveragePurchasesPerCustomer decimal.Decimal `json:"average_purchases_per_customer"`
	BestCustomer                BestCustomer    `json:"best_customer"`
}

// TopCustomer is one row of the spend-ranked customer list.
type TopCustomer struct {
	ID         int64           `json:"id"`
	Username   string          `json:"username"`
	Email      string          `json:"email"`
	OrderCount int             `json:"order_count"`
	TotalSpent decimal.Decimal `json:"total_spent"`
}

// CatalogRow joins a catalog product with its all-time sales figures.
type CatalogRow struct {
	ID       int64               `json:"id"`
	Title    string              `json:"title"`
	Stock    string              `json:"stock"`
	Severity enums.StockSeverity `json:"severity"`
	Pricing  decimal.Decimal     `json:"pricing"`
	Active   bool                `json:"active"`
	Quantity int                 `json:"quantity"`
	Revenue  decimal.Decimal     `json:"revenue"`
}

// CatalogProjection is the stock/sales view over the full catalog,
// independent of any date-range filter.
type CatalogProjection struct {
	Rows         []CatalogRow    `json:"rows"`
	TotalSales   int             `json:"total_sales"`
	TotalRevenue decimal.Decimal `json:"total_revenue"`
}

package salesmetrics

import (
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/lucasmoreno/pharmadash-backend/pkg/enums"
	pkgerrors "github.com/lucasmoreno/pharmadash-backend/pkg/errors"
	"github.com/lucasmoreno/pharmadash-backend/pkg/types"
)

// ProjectCatalog joins the full product catalog with all-time sales totals
// and classifies each row's stock level. Unlike the report pipeline this
// never filters by date: stock management always reflects the catalog as it
// stands, with every recorded sale counted.
//
// Sales here are keyed by product id (the catalog join key), not by title.
func ProjectCatalog(products []types.Product, orders []types.Order, resolver *PriceResolver) (CatalogProjection, error) {
	type productTotals struct {
		quantity int
		revenue  decimal.Decimal
	}

	originals := originalPriceIndex(products)
	byID := make(map[int64]types.Product, len(products))
	for _, product := range products {
		byID[product.ID] = product
	}

	totals := make(map[int64]*productTotals)
	for _, order := range orders {
		for _, line := range order.Purchase {
			if line.Quantity < 1 {
				return CatalogProjection{}, pkgerrors.New(pkgerrors.CodeValidation, "purchase line quantity must be a positive integer").
					WithDetails(map[string]any{"order_id": order.ID, "quantity": line.Quantity})
			}

			// Lines referencing products no longer in the catalog carry no
			// current price to resolve against; they are skipped, matching
			// the upstream catalog view.
			product, ok := byID[line.Product.ID]
			if !ok {
				continue
			}

			effective := resolver.Resolve(order.Date, product.ID, product.Pricing, originals[product.ID])

			entry := totals[product.ID]
			if entry == nil {
				entry = &productTotals{}
				totals[product.ID] = entry
			}
			entry.quantity += line.Quantity
			entry.revenue = entry.revenue.Add(effective.Mul(decimal.NewFromInt(int64(line.Quantity))))
		}
	}

	projection := CatalogProjection{
		Rows:         make([]CatalogRow, 0, len(products)),
		TotalRevenue: decimal.Zero,
	}

	for _, product := range products {
		row := CatalogRow{
			ID:       product.ID,
			Title:    product.Title,
			Stock:    product.Stock,
			Severity: enums.ClassifyStock(parseStock(product.Stock)),
			Pricing:  product.Pricing,
			Active:   product.Active,
			Revenue:  decimal.Zero,
		}
		if entry := totals[product.ID]; entry != nil {
			row.Quantity = entry.quantity
			row.Revenue = entry.revenue.Round(moneyScale)
			projection.TotalSales += entry.quantity
			projection.TotalRevenue = projection.TotalRevenue.Add(entry.revenue)
		}
		projection.Rows = append(projection.Rows, row)
	}

	projection.TotalRevenue = projection.TotalRevenue.Round(moneyScale)
	return projection, nil
}

// parseStock reads the string-encoded stock level; unparseable values
// classify as zero (critical) rather than erroring.
func parseStock(stock string) int {
	n, err := strconv.Atoi(stock)
	if err != nil {
		return 0
	}
	return n
}

package enums

// StockSeverity classifies a catalog product's stock level.
type StockSeverity string

const (
	StockSeverityCritical StockSeverity = "critical"
	StockSeverityLow      StockSeverity = "low"
	StockSeverityHealthy  StockSeverity = "healthy"
)

const (
	criticalStockThreshold = 10
	lowStockThreshold      = 15
)

// String implements fmt.Stringer.
func (s StockSeverity) String() string {
	return string(s)
}

// ClassifyStock buckets a stock count. Thresholds are hard cutoffs with no
// hysteresis: below 10 is critical, below 15 is low, anything else healthy.
func ClassifyStock(stock int) StockSeverity {
	switch {
	case stock < criticalStockThreshold:
		return StockSeverityCritical
	case stock < lowStockThreshold:
		return StockSeverityLow
	default:
		return StockSeverityHealthy
	}
}

package reporthistory

import "time"

// Snapshot is one persisted capture of the all-time dashboard report, taken
// by the cron worker so historical trends survive content-API data churn.
type Snapshot struct {
	ID         int64     `gorm:"column:id;primaryKey;autoIncrement"`
	CapturedAt time.Time `gorm:"column:captured_at;not null;index"`
	RangeKey   string    `gorm:"column:range_key;not null"`

	// Headline figures are denormalized for cheap trend queries; Payload
	// holds the full report JSON.
	Turnover          string `gorm:"column:turnover;not null"`
	NumberOfSales     int    `gorm:"column:number_of_sales;not null"`
	NumberOfCustomers int    `gorm:"column:number_of_customers;not null"`
	PackSales         int    `gorm:"column:pack_sales;not null"`
	Payload           string `gorm:"column:payload;type:text;not null"`
}

// TableName pins the snapshot table name.
func (Snapshot) TableName() string {
	return "report_snapshots"
}

package reporthistory

import (
	"context"
	"fmt"
	"time"
)

// DefaultHistoryLimit caps how many snapshots a history request returns
// when the caller does not ask for a window.
const DefaultHistoryLimit = 30

type historyStore interface {
	List(ctx context.Context, limit int) ([]Snapshot, error)
}

// SnapshotDTO is one row of the snapshot history. Only the denormalized
// headline figures are exposed; the full report payload stays in the store.
type SnapshotDTO struct {
	CapturedAt        time.Time `json:"captured_at"`
	Range             string    `json:"range"`
	Turnover          string    `json:"turnover"`
	NumberOfSales     int       `json:"number_of_sales"`
	NumberOfCustomers int       `json:"number_of_customers"`
	PackSales         int       `json:"pack_sales"`
}

// Service exposes the snapshot history read model backing the dashboard
// trend view.
type Service interface {
	History(ctx context.Context, limit int) ([]SnapshotDTO, error)
}

type service struct {
	store historyStore
}

// NewService builds the history read service.
func NewService(store historyStore) (Service, error) {
	if store == nil {
		return nil, fmt.Errorf("snapshot store required")
	}
	return &service{store: store}, nil
}

// History returns up to limit snapshots, newest first.
func (s *service) History(ctx context.Context, limit int) ([]SnapshotDTO, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	snapshots, err := s.store.List(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list snapshots: %w", err)
	}

	rows := make([]SnapshotDTO, 0, len(snapshots))
	for _, snapshot := range snapshots {
		rows = append(rows, SnapshotDTO{
			CapturedAt:        snapshot.CapturedAt,
			Range:             snapshot.RangeKey,
			Turnover:          snapshot.Turnover,
			NumberOfSales:     snapshot.NumberOfSales,
			NumberOfCustomers: snapshot.NumberOfCustomers,
			PackSales:         snapshot.PackSales,
		})
	}
	return rows, nil
}

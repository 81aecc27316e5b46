package reporthistory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/lucasmoreno/pharmadash-backend/internal/dashboard"
	"github.com/lucasmoreno/pharmadash-backend/pkg/enums"
)

const snapshotJobName = "report-snapshot"

type metricsSource interface {
	Metrics(ctx context.Context, rangeKey enums.RangeKey) (*dashboard.MetricsDTO, error)
}

type snapshotStore interface {
	Insert(ctx context.Context, snapshot *Snapshot) error
	Latest(ctx context.Context) (*Snapshot, error)
}

// SnapshotJob captures the all-time report once per cron cycle.
type SnapshotJob struct {
	source metricsSource
	store  snapshotStore
	now    func() time.Time
}

// NewSnapshotJob builds the snapshot cron job.
func NewSnapshotJob(source metricsSource, store snapshotStore) (*SnapshotJob, error) {
	if source == nil {
		return nil, fmt.Errorf("metrics source required")
	}
	if store == nil {
		return nil, fmt.Errorf("snapshot store required")
	}
	return &SnapshotJob{
		source: source,
		store:  store,
		now:    time.Now,
	}, nil
}

// Name implements cron.Job.
func (j *SnapshotJob) Name() string {
	return snapshotJobName
}

// Run implements cron.Job. At most one snapshot is captured per UTC day,
// so a restarted worker does not duplicate rows.
func (j *SnapshotJob) Run(ctx context.Context) error {
	now := j.now().UTC()

	latest, err := j.store.Latest(ctx)
	switch {
	case err == nil:
		if sameUTCDay(latest.CapturedAt, now) {
			return nil
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		// First capture.
	default:
		return fmt.Errorf("read latest snapshot: %w", err)
	}

	dto, err := j.source.Metrics(ctx, enums.RangeKeyFromBeginning)
	if err != nil {
		return fmt.Errorf("build report: %w", err)
	}

	payload, err := json.Marshal(dto.Report)
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}

	snapshot := &Snapshot{
		CapturedAt:        now,
		RangeKey:          dto.Range.String(),
		Turnover:          dto.Report.Turnover.String(),
		NumberOfSales:     dto.Report.NumberOfSales,
		NumberOfCustomers: dto.Report.NumberOfCustomers,
		PackSales:         dto.Report.PackSales,
		Payload:           string(payload),
	}
	if err := j.store.Insert(ctx, snapshot); err != nil {
		return fmt.Errorf("persist snapshot: %w", err)
	}
	return nil
}

func sameUTCDay(a, b time.Time) bool {
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()
	return ay == by && am == bm && ad == bd
}

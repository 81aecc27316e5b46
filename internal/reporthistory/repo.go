package reporthistory

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

// Repository handles snapshot persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to snapshot operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Migrate creates the snapshot table when missing.
func (r *Repository) Migrate(ctx context.Context) error {
	return r.db.WithContext(ctx).AutoMigrate(&Snapshot{})
}

// Insert persists a new snapshot row.
func (r *Repository) Insert(ctx context.Context, snapshot *Snapshot) error {
	if snapshot == nil {
		return fmt.Errorf("snapshot is required")
	}
	return r.db.WithContext(ctx).Create(snapshot).Error
}

// Latest returns the most recent snapshot, or gorm.ErrRecordNotFound when
// none has been captured yet.
func (r *Repository) Latest(ctx context.Context) (*Snapshot, error) {
	var snapshot Snapshot
	if err := r.db.WithContext(ctx).
		Order("captured_at DESC").
		First(&snapshot).Error; err != nil {
		return nil, err
	}
	return &snapshot, nil
}

// List returns up to limit snapshots, newest first.
func (r *Repository) List(ctx context.Context, limit int) ([]Snapshot, error) {
	if limit <= 0 {
		limit = 30
	}
	var snapshots []Snapshot
	if err := r.db.WithContext(ctx).
		Order("captured_at DESC").
		Limit(limit).
		Find(&snapshots).Error; err != nil {
		return nil, err
	}
	return snapshots, nil
}

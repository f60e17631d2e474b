package repository

import (
	"context"

	"gorm.io/gorm"

	"bankcore/internal/model"
)

// LedgerRepository defines ledger persistence operations. The ledger is
// append-only: there are no update or delete methods on purpose.
type LedgerRepository interface {
	Append(ctx context.Context, entry *model.LedgerEntry) error
	LatestEntry(ctx context.Context, userID uint) (*model.LedgerEntry, error)
	ListByUser(ctx context.Context, userID uint) ([]model.LedgerEntry, error)
}

type ledgerRepository struct {
	db *gorm.DB
}

// NewLedgerRepository creates a new ledger repository.
func NewLedgerRepository(db *gorm.DB) LedgerRepository {
	return &ledgerRepository{db: db}
}

// Append inserts a new ledger entry.
func (r *ledgerRepository) Append(ctx context.Context, entry *model.LedgerEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

// LatestEntry returns the entry with the greatest ID for the user, or
// gorm.ErrRecordNotFound when the user has no entries yet.
func (r *ledgerRepository) LatestEntry(ctx context.Context, userID uint) (*model.LedgerEntry, error) {
	var entry model.LedgerEntry
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).
		Order("id DESC").First(&entry).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

// ListByUser returns all entries for the user, newest first.
func (r *ledgerRepository) ListByUser(ctx context.Context, userID uint) ([]model.LedgerEntry, error) {
	var entries []model.LedgerEntry
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).
		Order("id DESC").Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

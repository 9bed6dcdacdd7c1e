package repositories

import (
	"context"
	"errors"

	"teampulse/internal/adapters/persistence/models"
	"teampulse/internal/core/domain"

	"gorm.io/gorm"
)

// ledgerRepository implements LedgerRepository interface
type ledgerRepository struct {
	db *gorm.DB
}

// NewLedgerRepository creates a new actions ledger repository
func NewLedgerRepository(db *gorm.DB) LedgerRepository {
	return &ledgerRepository{db: db}
}

// Create appends one entry
func (r *ledgerRepository) Create(ctx context.Context, entry *domain.LedgerEntry) error {
	m := models.LedgerFromDomain(entry)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	entry.ID = m.ID
	entry.CreatedAt = m.CreatedAt
	return nil
}

func (r *ledgerRepository) GetByID(ctx context.Context, id string) (*domain.LedgerEntry, error) {
	var m models.ActionLedger
	err := r.db.WithContext(ctx).Preload("Target").Where("id = ?", id).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrEntryNotFound
		}
		return nil, err
	}
	return m.ToDomain(), nil
}

// Delete hard deletes exactly one entry
func (r *ledgerRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.ActionLedger{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrEntryNotFound
	}
	return nil
}

func (r *ledgerRepository) ListByMonth(ctx context.Context, month domain.MonthTag) ([]domain.LedgerEntry, error) {
	var rows []models.ActionLedger
	err := r.db.WithContext(ctx).
		Where("month_tag = ?", string(month)).
		Order("created_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return toLedgerEntries(rows), nil
}

func (r *ledgerRepository) ListRecent(ctx context.Context, limit int, month *domain.MonthTag) ([]domain.LedgerEntry, error) {
	query := r.db.WithContext(ctx).Preload("Target")
	if month != nil {
		query = query.Where("month_tag = ?", string(*month))
	}

	var rows []models.ActionLedger
	if err := query.Order("created_at DESC").Order("id DESC").Limit(limit).Find(&rows).Error; err != nil {
		return nil, err
	}
	return toLedgerEntries(rows), nil
}

func toLedgerEntries(rows []models.ActionLedger) []domain.LedgerEntry {
	entries := make([]domain.LedgerEntry, 0, len(rows))
	for i := range rows {
		entries = append(entries, *rows[i].ToDomain())
	}
	return entries
}

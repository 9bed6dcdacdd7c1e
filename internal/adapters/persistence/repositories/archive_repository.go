package repositories

import (
	"context"
	"errors"
	"fmt"

	"teampulse/internal/adapters/persistence/models"
	"teampulse/internal/core/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// archiveRepository implements ArchiveRepository interface
type archiveRepository struct {
	db *gorm.DB
}

// NewArchiveRepository creates a new monthly archive repository
func NewArchiveRepository(db *gorm.DB) ArchiveRepository {
	return &archiveRepository{db: db}
}

// SaveClosedMonth persists the header and rows all-or-nothing. The unique
// month_tag index decides which of two concurrent closes wins.
func (r *archiveRepository) SaveClosedMonth(ctx context.Context, header *domain.MonthlyArchive, rows []domain.MonthlyArchiveRow) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		h := &models.MonthlyArchive{
			ID:       header.ID,
			MonthTag: string(header.MonthTag),
			ClosedBy: header.ClosedBy,
			ClosedAt: header.ClosedAt,
		}
		if err := tx.Create(h).Error; err != nil {
			if isDuplicateKey(err) {
				return domain.ErrMonthAlreadyClosed
			}
			return fmt.Errorf("failed to write archive header: %w", err)
		}

		for i := range rows {
			row := models.ArchiveRowFromDomain(&rows[i])
			row.MonthTag = h.MonthTag
			if err := tx.Create(row).Error; err != nil {
				if isDuplicateKey(err) {
					err = domain.ErrDuplicateEntry
				}
				return fmt.Errorf("failed to write archive row for %s: %w", row.UserID, err)
			}
			rows[i].ID = row.ID
		}

		header.ID = h.ID
		return nil
	})
}

func (r *archiveRepository) GetHeader(ctx context.Context, month domain.MonthTag) (*domain.MonthlyArchive, error) {
	var m models.MonthlyArchive
	err := r.db.WithContext(ctx).Where("month_tag = ?", string(month)).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrArchiveNotFound
		}
		return nil, err
	}
	return m.ToDomain(), nil
}

func (r *archiveRepository) IsClosed(ctx context.Context, month domain.MonthTag) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.MonthlyArchive{}).
		Where("month_tag = ?", string(month)).
		Count(&count).Error
	return count > 0, err
}

func (r *archiveRepository) List(ctx context.Context) ([]domain.MonthlyArchive, error) {
	var rows []models.MonthlyArchive
	if err := r.db.WithContext(ctx).Order("month_tag DESC").Find(&rows).Error; err != nil {
		return nil, err
	}

	archives := make([]domain.MonthlyArchive, 0, len(rows))
	for i := range rows {
		archives = append(archives, *rows[i].ToDomain())
	}
	return archives, nil
}

func (r *archiveRepository) ListRows(ctx context.Context, month domain.MonthTag) ([]domain.MonthlyArchiveRow, error) {
	var rows []models.MonthlyArchiveRow
	// rank is a reserved word in MySQL 8, let gorm quote it
	err := r.db.WithContext(ctx).
		Preload("Agent").
		Where("month_tag = ?", string(month)).
		Order(clause.OrderByColumn{Column: clause.Column{Name: "rank"}}).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	result := make([]domain.MonthlyArchiveRow, 0, len(rows))
	for i := range rows {
		result = append(result, *rows[i].ToDomain())
	}
	return result, nil
}

package repositories

import (
	"context"
	"errors"

	"teampulse/internal/adapters/persistence/models"
	"teampulse/internal/core/domain"

	"gorm.io/gorm"
)

// settingsRepository implements SettingsRepository interface
type settingsRepository struct {
	db *gorm.DB
}

// NewSettingsRepository creates a new settings repository
func NewSettingsRepository(db *gorm.DB) SettingsRepository {
	return &settingsRepository{db: db}
}

func (r *settingsRepository) Get(ctx context.Context) (*domain.Settings, error) {
	var m models.AppSetting
	err := r.db.WithContext(ctx).Where("id = ?", models.SettingsRowID).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return m.ToDomain(), nil
}

// Save upserts the single settings row
func (r *settingsRepository) Save(ctx context.Context, s *domain.Settings) error {
	m := &models.AppSetting{
		ID:                 models.SettingsRowID,
		PointValue:         s.PointValue,
		MonthlyPointCap:    s.MonthlyPointCap,
		Currency:           s.Currency,
		DashboardQuote:     s.DashboardQuote,
		StrictPenaltyMode:  s.StrictPenaltyMode,
		AllowMemberActions: s.AllowMemberActions,
	}
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	s.UpdatedAt = m.UpdatedAt
	return nil
}

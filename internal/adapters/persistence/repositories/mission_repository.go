package repositories

import (
	"context"
	"errors"
	"strings"

	"teampulse/internal/adapters/persistence/models"
	"teampulse/internal/core/domain"

	"gorm.io/gorm"
)

// missionRepository implements MissionRepository interface
type missionRepository struct {
	db *gorm.DB
}

// NewMissionRepository creates a new mission repository
func NewMissionRepository(db *gorm.DB) MissionRepository {
	return &missionRepository{db: db}
}

func (r *missionRepository) Create(ctx context.Context, mission *domain.Mission) error {
	m := models.MissionFromDomain(mission)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*mission = *m.ToDomain()
	return nil
}

func (r *missionRepository) GetByID(ctx context.Context, id string) (*domain.Mission, error) {
	var m models.Mission
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrMissionNotFound
		}
		return nil, err
	}
	return m.ToDomain(), nil
}

func (r *missionRepository) Update(ctx context.Context, mission *domain.Mission) error {
	result := r.db.WithContext(ctx).Model(&models.Mission{}).
		Where("id = ?", mission.ID).
		Updates(map[string]interface{}{
			"title":        mission.Title,
			"points":       mission.Points,
			"type":         string(mission.Type),
			"target_title": mission.TargetTitle,
			"is_active":    mission.IsActive,
		})
	return checkMatched(ctx, r.db, result, &models.Mission{}, mission.ID, domain.ErrMissionNotFound)
}

func (r *missionRepository) SetActive(ctx context.Context, id string, active bool) error {
	result := r.db.WithContext(ctx).Model(&models.Mission{}).
		Where("id = ?", id).
		Update("is_active", active)
	return checkMatched(ctx, r.db, result, &models.Mission{}, id, domain.ErrMissionNotFound)
}

func (r *missionRepository) List(ctx context.Context, filter MissionFilter) ([]domain.Mission, error) {
	query := r.db.WithContext(ctx).Model(&models.Mission{})

	if filter.ActiveOnly {
		query = query.Where("is_active = ?", true)
	}
	if filter.Type != nil {
		query = query.Where("type = ?", string(*filter.Type))
	}
	if q := strings.TrimSpace(filter.Query); q != "" {
		query = query.Where("LOWER(title) LIKE ?", "%"+strings.ToLower(q)+"%")
	}
	if filter.ForTitle != nil {
		query = query.Where("(target_title IS NULL OR target_title = '' OR target_title = ?)", *filter.ForTitle)
	}

	var rows []models.Mission
	if err := query.Order("type DESC").Order("created_at ASC").Order("id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}

	missions := make([]domain.Mission, 0, len(rows))
	for i := range rows {
		missions = append(missions, *rows[i].ToDomain())
	}
	return missions, nil
}

func (r *missionRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Mission{}).Count(&count).Error
	return count, err
}

package repositories

import (
	"context"
	"errors"

	"teampulse/internal/adapters/persistence/models"
	"teampulse/internal/core/domain"

	"gorm.io/gorm"
)

// agentRepository implements AgentRepository interface
type agentRepository struct {
	db *gorm.DB
}

// NewAgentRepository creates a new agent repository
func NewAgentRepository(db *gorm.DB) AgentRepository {
	return &agentRepository{db: db}
}

// Create inserts an agent and copies the generated id and timestamps back
func (r *agentRepository) Create(ctx context.Context, agent *domain.Agent) error {
	m := models.AgentFromDomain(agent)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		if isDuplicateKey(err) {
			return domain.ErrEmailTaken
		}
		return err
	}
	*agent = *m.ToDomain()
	return nil
}

// GetByID gets an agent by ID
func (r *agentRepository) GetByID(ctx context.Context, id string) (*domain.Agent, error) {
	var m models.Agent
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrAgentNotFound
		}
		return nil, err
	}
	return m.ToDomain(), nil
}

// GetByEmail gets an agent by login email
func (r *agentRepository) GetByEmail(ctx context.Context, email string) (*domain.Agent, error) {
	var m models.Agent
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrAgentNotFound
		}
		return nil, err
	}
	return m.ToDomain(), nil
}

// Update replaces the mutable fields of an agent
func (r *agentRepository) Update(ctx context.Context, agent *domain.Agent) error {
	result := r.db.WithContext(ctx).Model(&models.Agent{}).
		Where("id = ?", agent.ID).
		Updates(map[string]interface{}{
			"full_name":     agent.FullName,
			"role":          string(agent.Role),
			"title":         agent.Title,
			"avatar_url":    agent.AvatarURL,
			"email":         agent.Email,
			"password_hash": agent.PasswordHash,
			"is_active":     agent.IsActive,
		})
	if isDuplicateKey(result.Error) {
		return domain.ErrEmailTaken
	}
	return checkMatched(ctx, r.db, result, &models.Agent{}, agent.ID, domain.ErrAgentNotFound)
}

// SetActive toggles the active flag
func (r *agentRepository) SetActive(ctx context.Context, id string, active bool) error {
	result := r.db.WithContext(ctx).Model(&models.Agent{}).
		Where("id = ?", id).
		Update("is_active", active)
	return checkMatched(ctx, r.db, result, &models.Agent{}, id, domain.ErrAgentNotFound)
}

// List lists agents ordered by name
func (r *agentRepository) List(ctx context.Context, activeOnly bool) ([]domain.Agent, error) {
	query := r.db.WithContext(ctx).Model(&models.Agent{})
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}

	var rows []models.Agent
	if err := query.Order("full_name ASC").Order("id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}

	agents := make([]domain.Agent, 0, len(rows))
	for i := range rows {
		agents = append(agents, *rows[i].ToDomain())
	}
	return agents, nil
}

// ExistsByEmail checks if email is used by another agent
func (r *agentRepository) ExistsByEmail(ctx context.Context, email, excludeID string) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.Agent{}).Where("email = ?", email)
	if excludeID != "" {
		query = query.Where("id <> ?", excludeID)
	}
	err := query.Count(&count).Error
	return count > 0, err
}

// CountAdmins counts active administrators
func (r *agentRepository) CountAdmins(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Agent{}).
		Where("role = ? AND is_active = ?", string(domain.RoleAdmin), true).
		Count(&count).Error
	return count, err
}

package models

import (
	"time"

	"teampulse/internal/core/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ============================================================
// Catalog Tables
// ============================================================

// Agent represents profiles table
type Agent struct {
	ID           string    `gorm:"primaryKey;size:36" json:"id"`
	FullName     string    `gorm:"size:150;not null;index" json:"full_name"`
	Role         string    `gorm:"size:20;not null" json:"role"`
	Title        string    `gorm:"size:100" json:"title"`
	AvatarURL    *string   `gorm:"size:500" json:"avatar_url"`
	Email        *string   `gorm:"uniqueIndex;size:150" json:"email"`
	PasswordHash string    `gorm:"size:255" json:"-"`
	IsActive     bool      `gorm:"not null;index" json:"is_active"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Agent) TableName() string {
	return "profiles"
}

func (a *Agent) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}

// ToDomain converts the row into a domain agent
func (a *Agent) ToDomain() *domain.Agent {
	return &domain.Agent{
		ID:           a.ID,
		FullName:     a.FullName,
		Role:         domain.Role(a.Role),
		Title:        a.Title,
		AvatarURL:    a.AvatarURL,
		Email:        a.Email,
		PasswordHash: a.PasswordHash,
		IsActive:     a.IsActive,
		CreatedAt:    a.CreatedAt,
		UpdatedAt:    a.UpdatedAt,
	}
}

// AgentFromDomain builds a row from a domain agent
func AgentFromDomain(a *domain.Agent) *Agent {
	return &Agent{
		ID:           a.ID,
		FullName:     a.FullName,
		Role:         string(a.Role),
		Title:        a.Title,
		AvatarURL:    a.AvatarURL,
		Email:        a.Email,
		PasswordHash: a.PasswordHash,
		IsActive:     a.IsActive,
		CreatedAt:    a.CreatedAt,
		UpdatedAt:    a.UpdatedAt,
	}
}

// Mission represents missions table
type Mission struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	Title       string    `gorm:"size:200;not null" json:"title"`
	Points      int       `gorm:"not null" json:"points"`
	Type        string    `gorm:"size:20;not null;index" json:"type"`
	TargetTitle *string   `gorm:"size:100" json:"target_title"`
	IsActive    bool      `gorm:"not null;index" json:"is_active"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Mission) TableName() string {
	return "missions"
}

func (m *Mission) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

// ToDomain converts the row into a domain mission
func (m *Mission) ToDomain() *domain.Mission {
	return &domain.Mission{
		ID:          m.ID,
		Title:       m.Title,
		Points:      m.Points,
		Type:        domain.MissionType(m.Type),
		TargetTitle: m.TargetTitle,
		IsActive:    m.IsActive,
		CreatedAt:   m.CreatedAt,
	}
}

// MissionFromDomain builds a row from a domain mission
func MissionFromDomain(m *domain.Mission) *Mission {
	return &Mission{
		ID:          m.ID,
		Title:       m.Title,
		Points:      m.Points,
		Type:        string(m.Type),
		TargetTitle: m.TargetTitle,
		IsActive:    m.IsActive,
		CreatedAt:   m.CreatedAt,
	}
}

// AppSetting represents app_settings table (single row)
type AppSetting struct {
	ID                 uint      `gorm:"primaryKey" json:"id"`
	PointValue         int64     `gorm:"not null" json:"point_value"`
	MonthlyPointCap    int       `gorm:"not null" json:"monthly_point_cap"`
	Currency           string    `gorm:"size:10;not null" json:"currency"`
	DashboardQuote     string    `gorm:"type:text" json:"dashboard_quote"`
	StrictPenaltyMode  bool      `gorm:"not null" json:"strict_penalty_mode"`
	AllowMemberActions bool      `gorm:"not null" json:"allow_member_actions"`
	UpdatedAt          time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (AppSetting) TableName() string {
	return "app_settings"
}

// SettingsRowID is the primary key of the only settings row
const SettingsRowID uint = 1

// ToDomain converts the row into domain settings
func (s *AppSetting) ToDomain() *domain.Settings {
	return &domain.Settings{
		PointValue:         s.PointValue,
		MonthlyPointCap:    s.MonthlyPointCap,
		Currency:           s.Currency,
		DashboardQuote:     s.DashboardQuote,
		StrictPenaltyMode:  s.StrictPenaltyMode,
		AllowMemberActions: s.AllowMemberActions,
		UpdatedAt:          s.UpdatedAt,
	}
}

// ============================================================
// Auto Migration
// ============================================================

// AutoMigrate creates or updates every Team Pulse table
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		// Catalog
		&Agent{},
		&Mission{},
		&AppSetting{},
		// Ledger
		&ActionLedger{},
		// Archive
		&MonthlyArchive{},
		&MonthlyArchiveRow{},
	)
}

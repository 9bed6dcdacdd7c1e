package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"teampulse/internal/adapters/persistence/repositories"
	"teampulse/internal/config"
	"teampulse/internal/core/domain"

	"go.uber.org/zap"
)

// SettingsService reads and updates the dashboard rules
type SettingsService struct {
	repo     repositories.SettingsRepository
	defaults config.SettingsDefaults
	log      *zap.Logger
}

// NewSettingsService creates a new settings service
func NewSettingsService(repo repositories.SettingsRepository, defaults config.SettingsDefaults, log *zap.Logger) *SettingsService {
	return &SettingsService{repo: repo, defaults: defaults, log: log}
}

// UpdateSettingsInput carries a partial settings update
type UpdateSettingsInput struct {
	PointValue         *int64  `json:"point_value"`
	MonthlyPointCap    *int    `json:"monthly_point_cap"`
	Currency           *string `json:"currency"`
	DashboardQuote     *string `json:"dashboard_quote"`
	StrictPenaltyMode  *bool   `json:"strict_penalty_mode"`
	AllowMemberActions *bool   `json:"allow_member_actions"`
}

// Get returns saved settings, or the configured defaults when none were saved
func (s *SettingsService) Get(ctx context.Context) (*domain.Settings, error) {
	settings, err := s.repo.Get(ctx)
	if err == nil {
		return settings, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}

	return &domain.Settings{
		PointValue:         s.defaults.PointValue,
		MonthlyPointCap:    s.defaults.MonthlyPointCap,
		Currency:           s.defaults.Currency,
		DashboardQuote:     s.defaults.DashboardQuote,
		StrictPenaltyMode:  s.defaults.StrictPenaltyMode,
		AllowMemberActions: s.defaults.AllowMemberActions,
	}, nil
}

// Update applies the non-nil fields and persists the result
func (s *SettingsService) Update(ctx context.Context, input *UpdateSettingsInput) (*domain.Settings, error) {
	settings, err := s.Get(ctx)
	if err != nil {
		return nil, err
	}

	if input.PointValue != nil {
		if *input.PointValue < 0 {
			return nil, fmt.Errorf("%w: point_value must not be negative", domain.ErrInvalidInput)
		}
		settings.PointValue = *input.PointValue
	}
	if input.MonthlyPointCap != nil {
		if *input.MonthlyPointCap < 0 {
			return nil, fmt.Errorf("%w: monthly_point_cap must not be negative", domain.ErrInvalidInput)
		}
		settings.MonthlyPointCap = *input.MonthlyPointCap
	}
	if input.Currency != nil {
		currency := strings.ToUpper(strings.TrimSpace(*input.Currency))
		if currency == "" || len(currency) > 10 {
			return nil, fmt.Errorf("%w: currency must be 1 to 10 characters", domain.ErrInvalidInput)
		}
		settings.Currency = currency
	}
	if input.DashboardQuote != nil {
		settings.DashboardQuote = strings.TrimSpace(*input.DashboardQuote)
	}
	if input.StrictPenaltyMode != nil {
		settings.StrictPenaltyMode = *input.StrictPenaltyMode
	}
	if input.AllowMemberActions != nil {
		settings.AllowMemberActions = *input.AllowMemberActions
	}

	if err := s.repo.Save(ctx, settings); err != nil {
		return nil, fmt.Errorf("failed to save settings: %w", err)
	}

	s.log.Info("settings updated",
		zap.Int64("point_value", settings.PointValue),
		zap.Int("monthly_point_cap", settings.MonthlyPointCap),
		zap.Bool("strict_penalty_mode", settings.StrictPenaltyMode),
	)
	return settings, nil
}

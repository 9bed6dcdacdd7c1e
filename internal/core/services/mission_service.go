package services

import (
	"context"
	"fmt"
	"strings"

	"teampulse/internal/adapters/persistence/repositories"
	"teampulse/internal/core/domain"

	"go.uber.org/zap"
)

// MissionService manages the mission catalog
type MissionService struct {
	missionRepo repositories.MissionRepository
	agentRepo   repositories.AgentRepository
	log         *zap.Logger
}

// NewMissionService creates a new mission service
func NewMissionService(missionRepo repositories.MissionRepository, agentRepo repositories.AgentRepository, log *zap.Logger) *MissionService {
	return &MissionService{missionRepo: missionRepo, agentRepo: agentRepo, log: log}
}

// MissionInput carries every mutable field of a mission
type MissionInput struct {
	Title       string  `json:"title"`
	Points      int     `json:"points"`
	Type        string  `json:"type"`
	TargetTitle *string `json:"target_title"`
	IsActive    *bool   `json:"is_active"`
}

// ListMissionsInput filters the catalog
type ListMissionsInput struct {
	Type            string
	Query           string
	ForAgentID      string
	IncludeInactive bool
}

// List lists missions, positive first
func (s *MissionService) List(ctx context.Context, input *ListMissionsInput) ([]domain.Mission, error) {
	filter := repositories.MissionFilter{
		Query:      input.Query,
		ActiveOnly: !input.IncludeInactive,
	}

	if input.Type != "" {
		t := domain.MissionType(strings.ToLower(input.Type))
		if !t.IsValid() {
			return nil, domain.ErrInvalidMissionType
		}
		filter.Type = &t
	}

	if input.ForAgentID != "" {
		agent, err := s.agentRepo.GetByID(ctx, input.ForAgentID)
		if err != nil {
			return nil, err
		}
		title := agent.Title
		filter.ForTitle = &title
	}

	return s.missionRepo.List(ctx, filter)
}

// GetByID gets a mission by ID
func (s *MissionService) GetByID(ctx context.Context, id string) (*domain.Mission, error) {
	return s.missionRepo.GetByID(ctx, id)
}

// Create adds an active mission with normalized points
func (s *MissionService) Create(ctx context.Context, input *MissionInput) (*domain.Mission, error) {
	mission := &domain.Mission{}
	if err := applyMission(mission, input); err != nil {
		return nil, err
	}
	mission.IsActive = true

	if err := s.missionRepo.Create(ctx, mission); err != nil {
		return nil, fmt.Errorf("failed to create mission: %w", err)
	}

	s.log.Info("mission created",
		zap.String("id", mission.ID),
		zap.String("title", mission.Title),
		zap.Int("points", mission.Points),
	)
	return mission, nil
}

// Update replaces the mutable fields of a mission. Ledger entries already
// created from it keep their own snapshot.
func (s *MissionService) Update(ctx context.Context, id string, input *MissionInput) (*domain.Mission, error) {
	mission, err := s.missionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := applyMission(mission, input); err != nil {
		return nil, err
	}

	if err := s.missionRepo.Update(ctx, mission); err != nil {
		return nil, fmt.Errorf("failed to update mission: %w", err)
	}

	s.log.Info("mission updated", zap.String("id", mission.ID), zap.Int("points", mission.Points))
	return mission, nil
}

// Deactivate hides a mission from the catalog without deleting it
func (s *MissionService) Deactivate(ctx context.Context, id string) error {
	if err := s.missionRepo.SetActive(ctx, id, false); err != nil {
		return err
	}

	s.log.Info("mission deactivated", zap.String("id", id))
	return nil
}

func applyMission(mission *domain.Mission, input *MissionInput) error {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return fmt.Errorf("%w: title is required", domain.ErrInvalidInput)
	}

	t := domain.MissionType(strings.ToLower(strings.TrimSpace(input.Type)))
	points, err := domain.NormalizeMissionPoints(t, input.Points)
	if err != nil {
		return err
	}

	var target *string
	if input.TargetTitle != nil && strings.TrimSpace(*input.TargetTitle) != "" {
		tt := strings.TrimSpace(*input.TargetTitle)
		target = &tt
	}

	mission.Title = title
	mission.Type = t
	mission.Points = points
	mission.TargetTitle = target
	if input.IsActive != nil {
		mission.IsActive = *input.IsActive
	}
	return nil
}

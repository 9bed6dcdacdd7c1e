package config

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"teampulse/internal/adapters/persistence/repositories"
	"teampulse/internal/core/domain"
	"teampulse/internal/pkg/password"

	"go.uber.org/zap"
)

// Seeder handles database seeding
type Seeder struct {
	agents   repositories.AgentRepository
	missions repositories.MissionRepository
	admin    AdminConfig
	log      *zap.Logger
}

// NewSeeder creates a new seeder instance
func NewSeeder(agents repositories.AgentRepository, missions repositories.MissionRepository, admin AdminConfig, log *zap.Logger) *Seeder {
	return &Seeder{agents: agents, missions: missions, admin: admin, log: log}
}

// Run executes all seeders. Each seeder is skipped when its data already exists.
func (s *Seeder) Run(ctx context.Context) error {
	s.log.Info("running database seeders")

	if err := s.seedAdmin(ctx); err != nil {
		return fmt.Errorf("admin seeder: %w", err)
	}
	if err := s.seedMissions(ctx); err != nil {
		return fmt.Errorf("mission seeder: %w", err)
	}

	s.log.Info("database seeding completed")
	return nil
}

// seedAdmin creates the bootstrap administrator from ADMIN_EMAIL/ADMIN_PASSWORD
func (s *Seeder) seedAdmin(ctx context.Context) error {
	if s.admin.Email == "" {
		s.log.Warn("skipping admin seed: ADMIN_EMAIL not set")
		return nil
	}

	email := strings.ToLower(strings.TrimSpace(s.admin.Email))
	_, err := s.agents.GetByEmail(ctx, email)
	if err == nil {
		return nil // Admin already exists
	}
	if !errors.Is(err, domain.ErrAgentNotFound) {
		return err
	}

	hash, err := password.Hash(s.admin.Password)
	if err != nil {
		return err
	}

	admin := &domain.Agent{
		FullName:     s.admin.FullName,
		Role:         domain.RoleAdmin,
		Title:        "Administrador",
		Email:        &email,
		PasswordHash: hash,
		IsActive:     true,
	}
	if err := s.agents.Create(ctx, admin); err != nil {
		return err
	}

	s.log.Info("admin agent created", zap.String("email", email), zap.String("id", admin.ID))
	return nil
}

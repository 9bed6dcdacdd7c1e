package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"teampulse/internal/adapters/persistence/repositories"
	"teampulse/internal/core/domain"
	"teampulse/internal/pkg/password"

	"go.uber.org/zap"
)

// Agent service errors
var (
	ErrCannotDeactivateSelf = errors.New("cannot deactivate your own profile")
	ErrCannotChangeOwnRole  = errors.New("cannot change your own role")
	ErrLastAdmin            = errors.New("the team needs at least one active admin")
	ErrWeakPassword         = fmt.Errorf("%w: password must be at least %d characters", domain.ErrInvalidInput, password.MinLength)
	ErrUnsupportedImage     = fmt.Errorf("%w: avatar must be a png, jpeg, webp or gif image", domain.ErrInvalidInput)
	ErrImageTooLarge        = fmt.Errorf("%w: avatar exceeds the size limit", domain.ErrInvalidInput)
)

// avatarTypes maps accepted content types to file extensions
var avatarTypes = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

// AgentService handles team profile management
type AgentService struct {
	agentRepo     repositories.AgentRepository
	avatars       AvatarStore
	maxAvatarSize int64
	log           *zap.Logger
}

// NewAgentService creates a new agent service
func NewAgentService(agentRepo repositories.AgentRepository, avatars AvatarStore, maxAvatarSize int64, log *zap.Logger) *AgentService {
	return &AgentService{
		agentRepo:     agentRepo,
		avatars:       avatars,
		maxAvatarSize: maxAvatarSize,
		log:           log,
	}
}

// AgentInput carries every mutable field of a profile.
// Password is optional; nil keeps the current hash on update.
type AgentInput struct {
	FullName  string  `json:"full_name"`
	Role      string  `json:"role"`
	Title     string  `json:"title"`
	AvatarURL *string `json:"avatar_url"`
	Email     *string `json:"email"`
	Password  *string `json:"password"`
	IsActive  *bool   `json:"is_active"`
}

// List lists agents ordered by name
func (s *AgentService) List(ctx context.Context, activeOnly bool) ([]domain.Agent, error) {
	return s.agentRepo.List(ctx, activeOnly)
}

// GetByID gets an agent by ID
func (s *AgentService) GetByID(ctx context.Context, id string) (*domain.Agent, error) {
	return s.agentRepo.GetByID(ctx, id)
}

// Create adds a new active agent
func (s *AgentService) Create(ctx context.Context, input *AgentInput) (*domain.Agent, error) {
	agent := &domain.Agent{IsActive: true}
	if err := s.apply(ctx, agent, input); err != nil {
		return nil, err
	}
	// new profiles always start active
	agent.IsActive = true

	if err := s.agentRepo.Create(ctx, agent); err != nil {
		return nil, fmt.Errorf("failed to create agent: %w", err)
	}

	s.log.Info("agent created", zap.String("id", agent.ID), zap.String("name", agent.FullName))
	return agent, nil
}

// Update replaces the mutable fields of an agent
func (s *AgentService) Update(ctx context.Context, id, actingID string, input *AgentInput) (*domain.Agent, error) {
	agent, err := s.agentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if id == actingID {
		if domain.Role(strings.ToLower(strings.TrimSpace(input.Role))) != agent.Role {
			return nil, ErrCannotChangeOwnRole
		}
		if input.IsActive != nil && !*input.IsActive {
			return nil, ErrCannotDeactivateSelf
		}
	}

	wasAdmin := agent.IsActive && agent.Role == domain.RoleAdmin

	if err := s.apply(ctx, agent, input); err != nil {
		return nil, err
	}

	if wasAdmin && !(agent.IsActive && agent.Role == domain.RoleAdmin) {
		if err := s.ensureAnotherAdmin(ctx); err != nil {
			return nil, err
		}
	}

	if err := s.agentRepo.Update(ctx, agent); err != nil {
		return nil, fmt.Errorf("failed to update agent: %w", err)
	}

	s.log.Info("agent updated", zap.String("id", agent.ID))
	return agent, nil
}

// Deactivate soft-disables an agent. History keeps pointing at it.
func (s *AgentService) Deactivate(ctx context.Context, id, actingID string) error {
	if id == actingID {
		return ErrCannotDeactivateSelf
	}

	agent, err := s.agentRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if agent.IsActive && agent.Role == domain.RoleAdmin {
		if err := s.ensureAnotherAdmin(ctx); err != nil {
			return err
		}
	}

	if err := s.agentRepo.SetActive(ctx, id, false); err != nil {
		return err
	}

	s.log.Info("agent deactivated", zap.String("id", id))
	return nil
}

// ensureAnotherAdmin fails when the agent about to lose admin rights is the last one
func (s *AgentService) ensureAnotherAdmin(ctx context.Context) error {
	admins, err := s.agentRepo.CountAdmins(ctx)
	if err != nil {
		return fmt.Errorf("failed to count admins: %w", err)
	}
	if admins <= 1 {
		return ErrLastAdmin
	}
	return nil
}

// UploadAvatar stores an image and returns its public URL
func (s *AgentService) UploadAvatar(ctx context.Context, contentType string, size int64, r io.Reader) (string, error) {
	ext, ok := avatarTypes[strings.ToLower(strings.TrimSpace(strings.Split(contentType, ";")[0]))]
	if !ok {
		return "", ErrUnsupportedImage
	}
	if s.maxAvatarSize > 0 && size > s.maxAvatarSize {
		return "", ErrImageTooLarge
	}

	url, err := s.avatars.Save(ctx, ext, r)
	if err != nil {
		return "", fmt.Errorf("failed to store avatar: %w", err)
	}

	s.log.Info("avatar uploaded", zap.String("url", url), zap.Int64("size", size))
	return url, nil
}

// apply validates input and copies it onto agent
func (s *AgentService) apply(ctx context.Context, agent *domain.Agent, input *AgentInput) error {
	fullName := strings.TrimSpace(input.FullName)
	if fullName == "" {
		return fmt.Errorf("%w: full_name is required", domain.ErrInvalidInput)
	}

	role := domain.Role(strings.ToLower(strings.TrimSpace(input.Role)))
	if role == "" {
		role = domain.RoleMember
	}
	if !role.IsValid() {
		return domain.ErrInvalidRole
	}

	var email *string
	if input.Email != nil {
		if e := strings.ToLower(strings.TrimSpace(*input.Email)); e != "" {
			if !strings.Contains(e, "@") {
				return fmt.Errorf("%w: invalid email", domain.ErrInvalidInput)
			}
			exists, err := s.agentRepo.ExistsByEmail(ctx, e, agent.ID)
			if err != nil {
				return err
			}
			if exists {
				return domain.ErrEmailTaken
			}
			email = &e
		}
	}

	if input.Password != nil {
		if !password.ValidatePassword(*input.Password) {
			return ErrWeakPassword
		}
		hash, err := password.Hash(*input.Password)
		if err != nil {
			return err
		}
		agent.PasswordHash = hash
	}

	var avatar *string
	if input.AvatarURL != nil && strings.TrimSpace(*input.AvatarURL) != "" {
		a := strings.TrimSpace(*input.AvatarURL)
		avatar = &a
	}

	agent.FullName = fullName
	agent.Role = role
	agent.Title = strings.TrimSpace(input.Title)
	agent.AvatarURL = avatar
	agent.Email = email
	if input.IsActive != nil {
		agent.IsActive = *input.IsActive
	}
	return nil
}

package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"teampulse/internal/adapters/persistence/repositories"
	"teampulse/internal/config"
	"teampulse/internal/core/domain"
	"teampulse/internal/pkg/jwt"
	"teampulse/internal/pkg/password"

	"go.uber.org/zap"
)

// Auth errors
var (
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)

// AuthService handles authentication business logic
type AuthService struct {
	agentRepo repositories.AgentRepository
	cfg       *config.Config
	log       *zap.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(agentRepo repositories.AgentRepository, cfg *config.Config, log *zap.Logger) *AuthService {
	return &AuthService{agentRepo: agentRepo, cfg: cfg, log: log}
}

// LoginInput represents login input
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResult represents a successful login
type AuthResult struct {
	Agent       *domain.Agent
	AccessToken string
	ExpiresAt   time.Time
}

// Login authenticates an agent by email and password
func (s *AuthService) Login(ctx context.Context, input *LoginInput) (*AuthResult, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" || input.Password == "" {
		return nil, domain.ErrInvalidLogin
	}

	agent, err := s.agentRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrAgentNotFound) {
			return nil, domain.ErrInvalidLogin
		}
		return nil, err
	}

	if !password.Verify(input.Password, agent.PasswordHash) {
		s.log.Info("login rejected", zap.String("agent_id", agent.ID))
		return nil, domain.ErrInvalidLogin
	}

	if !agent.IsActive {
		return nil, domain.ErrAgentInactive
	}

	token, expiresAt, err := jwt.GenerateAccessToken(
		agent.ID,
		agent.FullName,
		string(agent.Role),
		s.cfg.JWT.Secret,
		s.cfg.JWT.AccessTokenMins,
	)
	if err != nil {
		return nil, err
	}

	s.log.Info("agent logged in", zap.String("agent_id", agent.ID), zap.String("role", string(agent.Role)))

	return &AuthResult{Agent: agent, AccessToken: token, ExpiresAt: expiresAt}, nil
}

// Me returns the active agent behind a token
func (s *AuthService) Me(ctx context.Context, agentID string) (*domain.Agent, error) {
	agent, err := s.agentRepo.GetByID(ctx, agentID)
	if err != nil {
		return nil, err
	}
	if !agent.IsActive {
		return nil, domain.ErrAgentInactive
	}
	return agent, nil
}

// ValidateAccessToken validates an access token
func (s *AuthService) ValidateAccessToken(accessToken string) (*jwt.Claims, error) {
	claims, err := jwt.ValidateAccessToken(accessToken, s.cfg.JWT.Secret)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidToken
	}
	return claims, nil
}

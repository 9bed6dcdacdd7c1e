package middleware

import (
	"context"
	"errors"
	"strings"

	"teampulse/internal/config"
	"teampulse/internal/core/domain"
	"teampulse/internal/pkg/jwt"
	"teampulse/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// Locals keys set by AuthMiddleware
const (
	LocalAgentID  = "agentID"
	LocalFullName = "fullName"
	LocalRole     = "role"
)

// AccessTokenCookie is the cookie the login handler sets
const AccessTokenCookie = "access_token"

// AgentResolver loads the current state of the agent a token was issued to
type AgentResolver interface {
	Me(ctx context.Context, agentID string) (*domain.Agent, error)
}

// AuthMiddleware creates authentication middleware. The token only
// identifies the agent; role and active flag come from the store so a
// deactivation or demotion applies to the next request.
func AuthMiddleware(cfg *config.Config, agents AgentResolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		accessToken := extractToken(c)
		if accessToken == "" {
			return response.Unauthorized(c, "Access token required")
		}

		claims, err := jwt.ValidateAccessToken(accessToken, cfg.JWT.Secret)
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				return response.Unauthorized(c, "Access token expired")
			}
			return response.Unauthorized(c, "Invalid access token")
		}

		agent, err := agents.Me(c.UserContext(), claims.AgentID)
		if err != nil {
			if errors.Is(err, domain.ErrAgentNotFound) || errors.Is(err, domain.ErrAgentInactive) {
				return response.Unauthorized(c, "Account is no longer active")
			}
			return err
		}

		c.Locals(LocalAgentID, agent.ID)
		c.Locals(LocalFullName, agent.FullName)
		c.Locals(LocalRole, string(agent.Role))

		return c.Next()
	}
}

// extractToken reads the cookie first, then the Authorization header
func extractToken(c *fiber.Ctx) string {
	if token := c.Cookies(AccessTokenCookie); token != "" {
		return token
	}
	authHeader := c.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return ""
}

// RoleMiddleware creates role-based authorization middleware
func RoleMiddleware(allowedRoles ...domain.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := c.Locals(LocalRole).(string)
		if !ok {
			return response.Unauthorized(c, "Unauthorized")
		}

		for _, allowedRole := range allowedRoles {
			if domain.Role(role) == allowedRole {
				return c.Next()
			}
		}

		return response.Forbidden(c, "You don't have permission to access this resource")
	}
}

// AdminOnly middleware allows only the admin role
func AdminOnly() fiber.Handler {
	return RoleMiddleware(domain.RoleAdmin)
}

// AgentID returns the authenticated agent id, empty when unauthenticated
func AgentID(c *fiber.Ctx) string {
	id, _ := c.Locals(LocalAgentID).(string)
	return id
}

// Role returns the authenticated agent role
func Role(c *fiber.Ctx) domain.Role {
	role, _ := c.Locals(LocalRole).(string)
	return domain.Role(role)
}

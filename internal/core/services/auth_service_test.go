package services

import (
	"context"
	"testing"

	"teampulse/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogin(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, nil)

	agent, err := env.agents.Create(ctx, &AgentInput{
		FullName: "Jefa",
		Role:     "admin",
		Email:    ptr("jefa@example.com"),
		Password: ptr("correct-horse"),
	})
	require.NoError(t, err)

	res, err := env.auth.Login(ctx, &LoginInput{Email: " JEFA@example.com", Password: "correct-horse"})
	require.NoError(t, err)
	assert.Equal(t, agent.ID, res.Agent.ID)
	assert.NotEmpty(t, res.AccessToken)

	claims, err := env.auth.ValidateAccessToken(res.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, agent.ID, claims.AgentID)
	assert.Equal(t, "admin", claims.Role)

	me, err := env.auth.Me(ctx, claims.AgentID)
	require.NoError(t, err)
	assert.Equal(t, "Jefa", me.FullName)

	_, err = env.auth.Login(ctx, &LoginInput{Email: "jefa@example.com", Password: "wrong-password"})
	assert.ErrorIs(t, err, domain.ErrInvalidLogin)

	_, err = env.auth.Login(ctx, &LoginInput{Email: "nobody@example.com", Password: "correct-horse"})
	assert.ErrorIs(t, err, domain.ErrInvalidLogin)

	_, err = env.auth.ValidateAccessToken("garbage")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestLogin_InactiveAgent(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, nil)

	agent, err := env.agents.Create(ctx, &AgentInput{FullName: "Ex", Email: ptr("ex@example.com"), Password: ptr("correct-horse")})
	require.NoError(t, err)
	require.NoError(t, env.agents.Deactivate(ctx, agent.ID, "someone-else"))

	_, err = env.auth.Login(ctx, &LoginInput{Email: "ex@example.com", Password: "correct-horse"})
	assert.ErrorIs(t, err, domain.ErrAgentInactive)

	_, err = env.auth.Me(ctx, agent.ID)
	assert.ErrorIs(t, err, domain.ErrAgentInactive)
}

package config

import (
	"context"
	"testing"

	"teampulse/internal/adapters/persistence/memory"
	"teampulse/internal/adapters/persistence/repositories"
	"teampulse/internal/core/domain"
	"teampulse/internal/pkg/password"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestSeeder_Run(t *testing.T) {
	password.Cost = 4
	t.Cleanup(func() { password.Cost = password.DefaultCost })

	ctx := context.Background()
	store := memory.New()
	seeder := NewSeeder(store.Agents(), store.Missions(), AdminConfig{
		Email:    " Admin@Example.com ",
		Password: "s3cret-pass",
		FullName: "Administrador",
	}, zap.NewNop())

	require.NoError(t, seeder.Run(ctx))
	// second run finds everything in place
	require.NoError(t, seeder.Run(ctx))

	admin, err := store.Agents().GetByEmail(ctx, "admin@example.com")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, admin.Role)
	assert.True(t, admin.IsActive)
	assert.True(t, password.Verify("s3cret-pass", admin.PasswordHash))

	admins, err := store.Agents().CountAdmins(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), admins)

	count, err := store.Missions().Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(len(defaultMissions)), count)

	negative := domain.MissionNegative
	missions, err := store.Missions().List(ctx, repositories.MissionFilter{Type: &negative, ActiveOnly: true})
	require.NoError(t, err)
	for _, m := range missions {
		assert.Negative(t, m.Points, m.Title)
	}
}

func TestSeeder_SkipsAdminWithoutEmail(t *testing.T) {
	ctx := context.Background()
	store := memory.New()

	require.NoError(t, NewSeeder(store.Agents(), store.Missions(), AdminConfig{}, zap.NewNop()).Run(ctx))

	admins, err := store.Agents().CountAdmins(ctx)
	require.NoError(t, err)
	assert.Zero(t, admins)
}

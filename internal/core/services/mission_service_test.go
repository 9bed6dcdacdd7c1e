package services

import (
	"context"
	"testing"

	"teampulse/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMissionCreate_NormalizesSign(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, nil)

	penalty := env.createMission(t, "Retraso Grave", 7, "negative")
	assert.Equal(t, -7, penalty.Points)
	assert.True(t, penalty.IsActive)

	bonus := env.createMission(t, "Excelente Video", -10, "POSITIVE")
	assert.Equal(t, 10, bonus.Points)
	assert.Equal(t, domain.MissionPositive, bonus.Type)

	_, err := env.missions.Create(ctx, &MissionInput{Title: "X", Points: 1, Type: "neutral"})
	assert.ErrorIs(t, err, domain.ErrInvalidMissionType)

	_, err = env.missions.Create(ctx, &MissionInput{Title: " ", Points: 1, Type: "positive"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestMissionList_Filters(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, nil)
	designer := env.createAgent(t, "Valentina", "Designer")

	env.createMission(t, "Excelente Video", 10, "positive")
	_, err := env.missions.Create(ctx, &MissionInput{Title: "Corte limpio", Points: 5, Type: "positive", TargetTitle: ptr("Editor")})
	require.NoError(t, err)
	env.createMission(t, "Retraso Grave", 10, "negative")
	retired := env.createMission(t, "Video viejo", 1, "positive")
	require.NoError(t, env.missions.Deactivate(ctx, retired.ID))

	all, err := env.missions.List(ctx, &ListMissionsInput{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, domain.MissionPositive, all[0].Type)
	assert.Equal(t, domain.MissionNegative, all[2].Type)

	withInactive, err := env.missions.List(ctx, &ListMissionsInput{IncludeInactive: true})
	require.NoError(t, err)
	assert.Len(t, withInactive, 4)

	negative, err := env.missions.List(ctx, &ListMissionsInput{Type: "negative"})
	require.NoError(t, err)
	require.Len(t, negative, 1)
	assert.Equal(t, "Retraso Grave", negative[0].Title)

	byQuery, err := env.missions.List(ctx, &ListMissionsInput{Query: "VIDEO"})
	require.NoError(t, err)
	require.Len(t, byQuery, 1)
	assert.Equal(t, "Excelente Video", byQuery[0].Title)

	forDesigner, err := env.missions.List(ctx, &ListMissionsInput{ForAgentID: designer.ID})
	require.NoError(t, err)
	assert.Len(t, forDesigner, 2)

	_, err = env.missions.List(ctx, &ListMissionsInput{Type: "bogus"})
	assert.ErrorIs(t, err, domain.ErrInvalidMissionType)
}

func TestMissionDeactivate_Unknown(t *testing.T) {
	env := newTestEnv(t, nil)
	assert.ErrorIs(t, env.missions.Deactivate(context.Background(), "nope"), domain.ErrMissionNotFound)
}

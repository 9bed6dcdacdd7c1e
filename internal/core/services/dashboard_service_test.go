package services

import (
	"context"
	"testing"

	"teampulse/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetDashboard_CurrentMonth(t *testing.T) {
	ctx := context.Background()
	env := newSampleEnv(t)

	data, err := env.dashboard.GetDashboard(ctx, nil)
	require.NoError(t, err)

	assert.Equal(t, testMonth, data.Month)
	assert.False(t, data.IsClosed)
	assert.Nil(t, data.ClosedAt)
	assert.Equal(t, "COP", data.Currency)
	assert.Equal(t, "Hoy se gana", data.Quote)
	assert.Equal(t, domain.DefaultPointValue, data.PointValue)

	require.Len(t, data.Ranking, 3)
	assert.Equal(t, []int{150, 120, 95}, []int{data.Ranking[0].Points, data.Ranking[1].Points, data.Ranking[2].Points})
	assert.Equal(t, 365, data.TotalPoints)
	assert.Equal(t, int64(365000), data.TotalBonus)

	assert.Equal(t, []domain.ChartPoint{{Name: "Andrea", Points: 150}, {Name: "Valentina", Points: 120}, {Name: "Sara", Points: 95}}, data.Chart)

	require.Len(t, data.RecentActivity, 5)
	assert.Equal(t, "Ideas +10k vistas", data.RecentActivity[0].MissionTitle)
	assert.Equal(t, "Andrea", data.RecentActivity[0].TargetName)
}

func TestGetDashboard_ClosedMonthUsesArchive(t *testing.T) {
	ctx := context.Background()
	env := newSampleEnv(t)

	_, err := env.archives.CloseMonth(ctx, testMonth, "admin")
	require.NoError(t, err)

	// a deactivated agent is still part of the frozen month
	require.NoError(t, env.agents.Deactivate(ctx, "3", "1"))

	month := testMonth
	data, err := env.dashboard.GetDashboard(ctx, &month)
	require.NoError(t, err)

	assert.True(t, data.IsClosed)
	require.NotNil(t, data.ClosedAt)
	require.Len(t, data.Ranking, 3)
	assert.Equal(t, "Sara", data.Ranking[2].FullName)
	assert.Equal(t, 95, data.Ranking[2].Points)
}

func TestGetDashboard_OtherMonthIsEmpty(t *testing.T) {
	env := newSampleEnv(t)
	month := domain.MonthTag("2025-11")

	data, err := env.dashboard.GetDashboard(context.Background(), &month)
	require.NoError(t, err)

	require.Len(t, data.Ranking, 3)
	for _, r := range data.Ranking {
		assert.Zero(t, r.Points)
	}
	assert.Empty(t, data.RecentActivity)
	assert.Equal(t, testMonth, data.CurrentMonth)
}

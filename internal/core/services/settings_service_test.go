package services

import (
	"context"
	"testing"

	"teampulse/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettings_DefaultsUntilSaved(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, nil)

	s, err := env.settings.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultPointValue, s.PointValue)
	assert.Equal(t, "COP", s.Currency)
	assert.False(t, s.StrictPenaltyMode)

	_, err = env.store.Settings().Get(ctx)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSettings_Update(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, nil)

	s, err := env.settings.Update(ctx, &UpdateSettingsInput{
		PointValue:      ptr(int64(2000)),
		MonthlyPointCap: ptr(100),
		Currency:        ptr(" usd "),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2000), s.PointValue)
	assert.Equal(t, "USD", s.Currency)
	assert.Equal(t, "Hoy se gana", s.DashboardQuote)

	stored, err := env.settings.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, 100, stored.MonthlyPointCap)

	tests := []struct {
		name  string
		input UpdateSettingsInput
	}{
		{"negative value", UpdateSettingsInput{PointValue: ptr(int64(-1))}},
		{"negative cap", UpdateSettingsInput{MonthlyPointCap: ptr(-5)}},
		{"empty currency", UpdateSettingsInput{Currency: ptr("  ")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := tt.input
			_, err := env.settings.Update(ctx, &input)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

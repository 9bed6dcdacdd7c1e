package services

import (
	"context"
	"testing"

	"teampulse/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestCloseMonth_FreezesRanking(t *testing.T) {
	ctx := context.Background()
	env := newSampleEnv(t)

	detail, err := env.archives.CloseMonth(ctx, testMonth, "admin")
	require.NoError(t, err)
	require.NotNil(t, detail.Archive.ClosedBy)
	assert.Equal(t, "admin", *detail.Archive.ClosedBy)

	require.Len(t, detail.Rows, 3)
	assert.Equal(t, "1", detail.Rows[0].UserID)
	assert.Equal(t, 150, detail.Rows[0].PointsTotal)
	assert.Equal(t, int64(150000), detail.Rows[0].BonusAmount)
	assert.Equal(t, 1, detail.Rows[0].Rank)
	assert.Equal(t, "2", detail.Rows[1].UserID)
	assert.Equal(t, 120, detail.Rows[1].PointsTotal)
	assert.Equal(t, "3", detail.Rows[2].UserID)
	assert.Equal(t, 3, detail.Rows[2].Rank)

	stored, err := env.archives.Get(ctx, testMonth)
	require.NoError(t, err)
	require.Len(t, stored.Rows, 3)
	assert.Equal(t, "Andrea", stored.Rows[0].FullName)

	assert.Contains(t, env.publisher.types(), domain.EventMonthClosed)
}

func TestCloseMonth_RejectsSecondClose(t *testing.T) {
	ctx := context.Background()
	env := newSampleEnv(t)

	_, err := env.archives.CloseMonth(ctx, testMonth, "admin")
	require.NoError(t, err)

	_, err = env.archives.CloseMonth(ctx, testMonth, "admin")
	assert.ErrorIs(t, err, domain.ErrMonthAlreadyClosed)

	list, err := env.archives.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestCloseMonth_ArchiveIsFrozen(t *testing.T) {
	ctx := context.Background()
	env := newSampleEnv(t)

	_, err := env.archives.CloseMonth(ctx, testMonth, "admin")
	require.NoError(t, err)

	// later changes to settings do not touch archived bonuses
	_, err = env.settings.Update(ctx, &UpdateSettingsInput{PointValue: ptr(int64(1))})
	require.NoError(t, err)

	stored, err := env.archives.Get(ctx, testMonth)
	require.NoError(t, err)
	assert.Equal(t, int64(150000), stored.Rows[0].BonusAmount)
}

func TestCloseMonth_Guards(t *testing.T) {
	ctx := context.Background()
	env := newSampleEnv(t)

	_, err := env.archives.CloseMonth(ctx, "2026-02", "admin")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	disabled := NewArchiveService(env.store.Ledger(), env.store.Agents(), env.store.Archives(),
		env.settings, NewNotificationService(nil, zap.NewNop()), domain.FixedMonthClock(testMonth), false, zap.NewNop())
	assert.False(t, disabled.Enabled())

	_, err = disabled.CloseMonth(ctx, testMonth, "admin")
	assert.ErrorIs(t, err, domain.ErrMonthClosingDisabled)

	closed, err := env.store.Archives().IsClosed(ctx, testMonth)
	require.NoError(t, err)
	assert.False(t, closed)
}

func TestCloseMonth_EmptyMonthRanksEveryone(t *testing.T) {
	ctx := context.Background()
	env := newSampleEnv(t)

	detail, err := env.archives.CloseMonth(ctx, "2025-12", "")
	require.NoError(t, err)
	assert.Nil(t, detail.Archive.ClosedBy)
	require.Len(t, detail.Rows, 3)
	for _, r := range detail.Rows {
		assert.Zero(t, r.PointsTotal)
		assert.Zero(t, r.BonusAmount)
	}
	// zero totals fall back to name order
	assert.Equal(t, []string{"1", "3", "2"}, []string{detail.Rows[0].UserID, detail.Rows[1].UserID, detail.Rows[2].UserID})
}

func TestClosePreviousMonth(t *testing.T) {
	ctx := context.Background()
	env := newSampleEnv(t)

	detail, err := env.archives.ClosePreviousMonth(ctx)
	require.NoError(t, err)
	require.NotNil(t, detail)
	assert.Equal(t, domain.MonthTag("2025-12"), detail.Archive.MonthTag)

	detail, err = env.archives.ClosePreviousMonth(ctx)
	require.NoError(t, err)
	assert.Nil(t, detail)
}

func TestGetArchive_NotFound(t *testing.T) {
	env := newSampleEnv(t)

	_, err := env.archives.Get(context.Background(), "2024-05")
	assert.ErrorIs(t, err, domain.ErrArchiveNotFound)
}

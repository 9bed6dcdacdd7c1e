package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMonthTag(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"2026-01", false},
		{"1999-12", false},
		{"2026-1", true},
		{"2026-13", true},
		{"2026/01", true},
		{"", true},
		{"2026-01-15", true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseMonthTag(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidMonthTag)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, MonthTag(tt.input), got)
		})
	}
}

func TestMonthTagOf(t *testing.T) {
	ts := time.Date(2026, time.January, 31, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, MonthTag("2026-01"), MonthTagOf(ts))

	bogota := time.FixedZone("COT", -5*3600)
	// 2026-02-01 02:00 UTC is still January in Bogota
	assert.Equal(t, MonthTag("2026-01"), MonthTagOf(time.Date(2026, 2, 1, 2, 0, 0, 0, time.UTC).In(bogota)))
}

func TestMonthTag_Previous(t *testing.T) {
	assert.Equal(t, MonthTag("2025-12"), MonthTag("2026-01").Previous())
	assert.Equal(t, MonthTag("2026-02"), MonthTag("2026-03").Previous())
}

func TestFixedMonthClock(t *testing.T) {
	clock := FixedMonthClock("2026-01")
	assert.Equal(t, MonthTag("2026-01"), clock())
}

func TestSystemMonthClock(t *testing.T) {
	got := SystemMonthClock(nil)()
	assert.Equal(t, MonthTagOf(time.Now().UTC()), got)
}

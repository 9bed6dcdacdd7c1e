package domain

import (
	"fmt"
	"time"
)

const monthLayout = "2006-01"

// MonthTag is a YYYY-MM accounting period
type MonthTag string

// ParseMonthTag validates a YYYY-MM string
func ParseMonthTag(s string) (MonthTag, error) {
	t, err := time.Parse(monthLayout, s)
	if err != nil || t.Format(monthLayout) != s {
		return "", fmt.Errorf("%w: %q", ErrInvalidMonthTag, s)
	}
	return MonthTag(s), nil
}

// MonthTagOf returns the period containing t, evaluated in t's location
func MonthTagOf(t time.Time) MonthTag {
	return MonthTag(t.Format(monthLayout))
}

// String implements fmt.Stringer
func (m MonthTag) String() string {
	return string(m)
}

// Start returns the first instant of the month in UTC
func (m MonthTag) Start() time.Time {
	t, _ := time.Parse(monthLayout, string(m))
	return t
}

// Previous returns the month before m
func (m MonthTag) Previous() MonthTag {
	return MonthTagOf(m.Start().AddDate(0, -1, 0))
}

// MonthClock returns the current accounting period
type MonthClock func() MonthTag

// SystemMonthClock reads the wall clock in the given location
func SystemMonthClock(loc *time.Location) MonthClock {
	if loc == nil {
		loc = time.UTC
	}
	return func() MonthTag {
		return MonthTagOf(time.Now().In(loc))
	}
}

// FixedMonthClock always reports the same month
func FixedMonthClock(m MonthTag) MonthClock {
	return func() MonthTag { return m }
}

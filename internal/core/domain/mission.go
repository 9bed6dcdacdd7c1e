package domain

import "fmt"

// MaxMissionPoints bounds the magnitude of a mission's points so monthly
// totals and bonus amounts stay well inside int64.
const MaxMissionPoints = 1_000_000

// NormalizeMissionPoints forces the stored sign to match the polarity.
// Every mission write path goes through here.
func NormalizeMissionPoints(t MissionType, points int) (int, error) {
	if points > MaxMissionPoints || points < -MaxMissionPoints {
		return 0, fmt.Errorf("%w: points must be within ±%d", ErrInvalidInput, MaxMissionPoints)
	}
	if points < 0 {
		points = -points
	}
	switch t {
	case MissionPositive:
		return points, nil
	case MissionNegative:
		return -points, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidMissionType, t)
	}
}

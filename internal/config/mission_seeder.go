package config

import (
	"context"

	"teampulse/internal/core/domain"

	"go.uber.org/zap"
)

// defaultMissions is the starter mission catalog
var defaultMissions = []struct {
	title  string
	points int
	typ    domain.MissionType
}{
	{"Excelente Video", 10, domain.MissionPositive},
	{"Ideas +10k vistas", 10, domain.MissionPositive},
	{"Retraso Grave", 10, domain.MissionNegative},
	{"Entrega tarde", 5, domain.MissionNegative},
}

// seedMissions loads the starter catalog into an empty missions table
func (s *Seeder) seedMissions(ctx context.Context) error {
	count, err := s.missions.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	for _, dm := range defaultMissions {
		points, err := domain.NormalizeMissionPoints(dm.typ, dm.points)
		if err != nil {
			return err
		}
		m := &domain.Mission{
			Title:    dm.title,
			Points:   points,
			Type:     dm.typ,
			IsActive: true,
		}
		if err := s.missions.Create(ctx, m); err != nil {
			return err
		}
		s.log.Debug("created mission", zap.String("title", m.Title), zap.Int("points", m.Points))
	}

	s.log.Info("mission catalog seeded", zap.Int("count", len(defaultMissions)))
	return nil
}

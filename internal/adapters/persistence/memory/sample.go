package memory

import (
	"time"

	"teampulse/internal/core/domain"
)

const sampleActor = "admin"

// NewSample returns a store preloaded with a small demo team whose totals
// for month are 150, 120 and 95 points.
func NewSample(month domain.MonthTag, now time.Time) *Store {
	s := New()

	for _, a := range []domain.Agent{
		{ID: "1", FullName: "Andrea", Role: domain.RoleMember, Title: "Editor"},
		{ID: "2", FullName: "Valentina", Role: domain.RoleMember, Title: "Designer"},
		{ID: "3", FullName: "Sara", Role: domain.RoleMember, Title: "Copywriter"},
	} {
		a.IsActive = true
		a.CreatedAt = now
		a.UpdatedAt = now
		s.agents[a.ID] = a
	}

	for i, m := range []domain.Mission{
		{ID: "m1", Title: "Excelente Video", Points: 10, Type: domain.MissionPositive},
		{ID: "m2", Title: "Retraso Grave", Points: -10, Type: domain.MissionNegative},
	} {
		m.IsActive = true
		m.CreatedAt = now.Add(time.Duration(i) * time.Second)
		s.missions[m.ID] = m
	}

	opening := now.Add(-72 * time.Hour)
	s.ledger = []domain.LedgerEntry{
		{ID: "100", TargetUserID: "1", MissionTitle: "Saldo inicial", Points: 140, CreatedAt: opening},
		{ID: "99", TargetUserID: "2", MissionTitle: "Saldo inicial", Points: 125, CreatedAt: opening},
		{ID: "98", TargetUserID: "3", MissionTitle: "Saldo inicial", Points: 95, CreatedAt: opening},
		{ID: "102", TargetUserID: "2", MissionTitle: "Entrega tarde", Points: -5, CreatedAt: now.Add(-24 * time.Hour)},
		{ID: "101", TargetUserID: "1", MissionTitle: "Ideas +10k vistas", Points: 10, CreatedAt: now},
	}
	for i := range s.ledger {
		s.ledger[i].CreatedBy = sampleActor
		s.ledger[i].MonthTag = month
	}

	return s
}

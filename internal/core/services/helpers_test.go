package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"teampulse/internal/adapters/persistence/memory"
	"teampulse/internal/config"
	"teampulse/internal/core/domain"
	"teampulse/internal/pkg/password"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testMonth domain.MonthTag = "2026-01"

type recordingPublisher struct {
	mu     sync.Mutex
	events []domain.Event
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, e domain.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, e)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) types() []domain.EventType {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]domain.EventType, len(p.events))
	for i, e := range p.events {
		out[i] = e.Type
	}
	return out
}

type testEnv struct {
	store     *memory.Store
	publisher *recordingPublisher
	settings  *SettingsService
	agents    *AgentService
	missions  *MissionService
	actions   *ActionService
	archives  *ArchiveService
	dashboard *DashboardService
	auth      *AuthService
}

func newTestEnv(t *testing.T, store *memory.Store) *testEnv {
	t.Helper()

	if store == nil {
		store = memory.New()
	}
	password.Cost = 4
	log := zap.NewNop()
	clock := domain.FixedMonthClock(testMonth)

	cfg := &config.Config{
		JWT: config.JWTConfig{Secret: "test-secret", AccessTokenMins: 15},
	}
	defaults := config.SettingsDefaults{PointValue: domain.DefaultPointValue, Currency: "COP", DashboardQuote: "Hoy se gana"}

	pub := &recordingPublisher{}
	notifier := NewNotificationService(pub, log)
	settings := NewSettingsService(store.Settings(), defaults, log)

	return &testEnv{
		store:     store,
		publisher: pub,
		settings:  settings,
		agents:    NewAgentService(store.Agents(), nil, 5<<20, log),
		missions:  NewMissionService(store.Missions(), store.Agents(), log),
		actions:   NewActionService(store.Ledger(), store.Agents(), store.Missions(), store.Archives(), settings, notifier, clock, log),
		archives:  NewArchiveService(store.Ledger(), store.Agents(), store.Archives(), settings, notifier, clock, true, log),
		dashboard: NewDashboardService(store.Agents(), store.Ledger(), store.Archives(), settings, clock, log),
		auth:      NewAuthService(store.Agents(), cfg, log),
	}
}

func newSampleEnv(t *testing.T) *testEnv {
	return newTestEnv(t, memory.NewSample(testMonth, time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)))
}

func (e *testEnv) createAgent(t *testing.T, name, title string) *domain.Agent {
	t.Helper()
	a, err := e.agents.Create(context.Background(), &AgentInput{FullName: name, Role: "member", Title: title})
	require.NoError(t, err)
	return a
}

func (e *testEnv) createMission(t *testing.T, title string, points int, typ string) *domain.Mission {
	t.Helper()
	m, err := e.missions.Create(context.Background(), &MissionInput{Title: title, Points: points, Type: typ})
	require.NoError(t, err)
	return m
}

func ptr[T any](v T) *T { return &v }

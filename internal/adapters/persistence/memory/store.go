package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"teampulse/internal/adapters/persistence/repositories"
	"teampulse/internal/core/domain"

	"github.com/google/uuid"
)

// Store keeps every table in process memory. Nothing survives a restart.
type Store struct {
	mu       sync.Mutex
	agents   map[string]domain.Agent
	missions map[string]domain.Mission
	ledger   []domain.LedgerEntry
	archives map[domain.MonthTag]domain.MonthlyArchive
	rows     map[domain.MonthTag][]domain.MonthlyArchiveRow
	settings *domain.Settings
	now      func() time.Time
}

// New returns an empty store
func New() *Store {
	return &Store{
		agents:   make(map[string]domain.Agent),
		missions: make(map[string]domain.Mission),
		archives: make(map[domain.MonthTag]domain.MonthlyArchive),
		rows:     make(map[domain.MonthTag][]domain.MonthlyArchiveRow),
		now:      time.Now,
	}
}

func (s *Store) Agents() repositories.AgentRepository { return &agentRepo{s} }
func (s *Store) Missions() repositories.MissionRepository { return &missionRepo{s} }
func (s *Store) Ledger() repositories.LedgerRepository { return &ledgerRepo{s} }
func (s *Store) Archives() repositories.ArchiveRepository { return &archiveRepo{s} }
func (s *Store) Settings() repositories.SettingsRepository { return &settingsRepo{s} }

// ============================================================
// Agents
// ============================================================

type agentRepo struct{ s *Store }

func (r *agentRepo) Create(_ context.Context, agent *domain.Agent) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if agent.ID == "" {
		agent.ID = uuid.NewString()
	}
	if _, ok := r.s.agents[agent.ID]; ok {
		return fmt.Errorf("agent %s: %w", agent.ID, domain.ErrDuplicateEntry)
	}
	now := r.s.now()
	if agent.CreatedAt.IsZero() {
		agent.CreatedAt = now
	}
	agent.UpdatedAt = now
	r.s.agents[agent.ID] = *agent
	return nil
}

func (r *agentRepo) GetByID(_ context.Context, id string) (*domain.Agent, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	a, ok := r.s.agents[id]
	if !ok {
		return nil, domain.ErrAgentNotFound
	}
	return &a, nil
}

func (r *agentRepo) GetByEmail(_ context.Context, email string) (*domain.Agent, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, a := range r.s.agents {
		if a.Email != nil && *a.Email == email {
			found := a
			return &found, nil
		}
	}
	return nil, domain.ErrAgentNotFound
}

func (r *agentRepo) Update(_ context.Context, agent *domain.Agent) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	current, ok := r.s.agents[agent.ID]
	if !ok {
		return domain.ErrAgentNotFound
	}
	updated := *agent
	updated.CreatedAt = current.CreatedAt
	updated.UpdatedAt = r.s.now()
	r.s.agents[agent.ID] = updated
	return nil
}

func (r *agentRepo) SetActive(_ context.Context, id string, active bool) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	a, ok := r.s.agents[id]
	if !ok {
		return domain.ErrAgentNotFound
	}
	a.IsActive = active
	a.UpdatedAt = r.s.now()
	r.s.agents[id] = a
	return nil
}

func (r *agentRepo) List(_ context.Context, activeOnly bool) ([]domain.Agent, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	out := make([]domain.Agent, 0, len(r.s.agents))
	for _, a := range r.s.agents {
		if activeOnly && !a.IsActive {
			continue
		}
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].FullName != out[j].FullName {
			return out[i].FullName < out[j].FullName
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *agentRepo) ExistsByEmail(_ context.Context, email, excludeID string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, a := range r.s.agents {
		if a.ID != excludeID && a.Email != nil && *a.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *agentRepo) CountAdmins(_ context.Context) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var n int64
	for _, a := range r.s.agents {
		if a.IsActive && a.Role == domain.RoleAdmin {
			n++
		}
	}
	return n, nil
}

// ============================================================
// Missions
// ============================================================

type missionRepo struct{ s *Store }

func (r *missionRepo) Create(_ context.Context, mission *domain.Mission) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if mission.ID == "" {
		mission.ID = uuid.NewString()
	}
	if _, ok := r.s.missions[mission.ID]; ok {
		return fmt.Errorf("mission %s: %w", mission.ID, domain.ErrDuplicateEntry)
	}
	if mission.CreatedAt.IsZero() {
		mission.CreatedAt = r.s.now()
	}
	r.s.missions[mission.ID] = *mission
	return nil
}

func (r *missionRepo) GetByID(_ context.Context, id string) (*domain.Mission, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	m, ok := r.s.missions[id]
	if !ok {
		return nil, domain.ErrMissionNotFound
	}
	return &m, nil
}

func (r *missionRepo) Update(_ context.Context, mission *domain.Mission) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	current, ok := r.s.missions[mission.ID]
	if !ok {
		return domain.ErrMissionNotFound
	}
	updated := *mission
	updated.CreatedAt = current.CreatedAt
	r.s.missions[mission.ID] = updated
	return nil
}

func (r *missionRepo) SetActive(_ context.Context, id string, active bool) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	m, ok := r.s.missions[id]
	if !ok {
		return domain.ErrMissionNotFound
	}
	m.IsActive = active
	r.s.missions[id] = m
	return nil
}

func (r *missionRepo) List(_ context.Context, filter repositories.MissionFilter) ([]domain.Mission, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	q := strings.ToLower(strings.TrimSpace(filter.Query))
	out := make([]domain.Mission, 0, len(r.s.missions))
	for _, m := range r.s.missions {
		if filter.ActiveOnly && !m.IsActive {
			continue
		}
		if filter.Type != nil && m.Type != *filter.Type {
			continue
		}
		if q != "" && !strings.Contains(strings.ToLower(m.Title), q) {
			continue
		}
		if filter.ForTitle != nil && m.TargetTitle != nil && *m.TargetTitle != "" && *m.TargetTitle != *filter.ForTitle {
			continue
		}
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Type != out[j].Type {
			return out[i].Type > out[j].Type
		}
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *missionRepo) Count(_ context.Context) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return int64(len(r.s.missions)), nil
}

// ============================================================
// Ledger
// ============================================================

type ledgerRepo struct{ s *Store }

func (r *ledgerRepo) Create(_ context.Context, entry *domain.LedgerEntry) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = r.s.now()
	}
	stored := *entry
	stored.TargetName = ""
	r.s.ledger = append(r.s.ledger, stored)
	return nil
}

func (r *ledgerRepo) GetByID(_ context.Context, id string) (*domain.LedgerEntry, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, e := range r.s.ledger {
		if e.ID == id {
			found := r.s.withTargetName(e)
			return &found, nil
		}
	}
	return nil, domain.ErrEntryNotFound
}

func (r *ledgerRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for i, e := range r.s.ledger {
		if e.ID == id {
			r.s.ledger = append(r.s.ledger[:i:i], r.s.ledger[i+1:]...)
			return nil
		}
	}
	return domain.ErrEntryNotFound
}

func (r *ledgerRepo) ListByMonth(_ context.Context, month domain.MonthTag) ([]domain.LedgerEntry, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	out := make([]domain.LedgerEntry, 0)
	for _, e := range r.s.ledger {
		if e.MonthTag == month {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *ledgerRepo) ListRecent(_ context.Context, limit int, month *domain.MonthTag) ([]domain.LedgerEntry, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	// newest inserted first, so equal timestamps keep insertion order reversed
	out := make([]domain.LedgerEntry, 0)
	for i := len(r.s.ledger) - 1; i >= 0; i-- {
		e := r.s.ledger[i]
		if month != nil && e.MonthTag != *month {
			continue
		}
		out = append(out, r.s.withTargetName(e))
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *Store) withTargetName(e domain.LedgerEntry) domain.LedgerEntry {
	if a, ok := s.agents[e.TargetUserID]; ok {
		e.TargetName = a.FullName
	}
	return e
}

// ============================================================
// Archives
// ============================================================

type archiveRepo struct{ s *Store }

// SaveClosedMonth validates every row before touching the store so a
// rejected close leaves nothing behind
func (r *archiveRepo) SaveClosedMonth(_ context.Context, header *domain.MonthlyArchive, rows []domain.MonthlyArchiveRow) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.archives[header.MonthTag]; ok {
		return domain.ErrMonthAlreadyClosed
	}

	seen := make(map[string]struct{}, len(rows))
	frozen := make([]domain.MonthlyArchiveRow, len(rows))
	for i, row := range rows {
		if _, dup := seen[row.UserID]; dup {
			return fmt.Errorf("archive row for %s: %w", row.UserID, domain.ErrDuplicateEntry)
		}
		seen[row.UserID] = struct{}{}
		if row.ID == "" {
			row.ID = uuid.NewString()
		}
		row.MonthTag = header.MonthTag
		row.FullName, row.Title, row.AvatarURL = "", "", nil
		frozen[i] = row
	}

	if header.ID == "" {
		header.ID = uuid.NewString()
	}
	r.s.archives[header.MonthTag] = *header
	r.s.rows[header.MonthTag] = frozen
	for i := range rows {
		rows[i].ID = frozen[i].ID
	}
	return nil
}

func (r *archiveRepo) GetHeader(_ context.Context, month domain.MonthTag) (*domain.MonthlyArchive, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	h, ok := r.s.archives[month]
	if !ok {
		return nil, domain.ErrArchiveNotFound
	}
	return &h, nil
}

func (r *archiveRepo) IsClosed(_ context.Context, month domain.MonthTag) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	_, ok := r.s.archives[month]
	return ok, nil
}

func (r *archiveRepo) List(_ context.Context) ([]domain.MonthlyArchive, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	out := make([]domain.MonthlyArchive, 0, len(r.s.archives))
	for _, h := range r.s.archives {
		out = append(out, h)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].MonthTag > out[j].MonthTag })
	return out, nil
}

func (r *archiveRepo) ListRows(_ context.Context, month domain.MonthTag) ([]domain.MonthlyArchiveRow, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stored := r.s.rows[month]
	out := make([]domain.MonthlyArchiveRow, len(stored))
	for i, row := range stored {
		if a, ok := r.s.agents[row.UserID]; ok {
			row.FullName = a.FullName
			row.Title = a.Title
			row.AvatarURL = a.AvatarURL
		}
		out[i] = row
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Rank < out[j].Rank })
	return out, nil
}

// ============================================================
// Settings
// ============================================================

type settingsRepo struct{ s *Store }

func (r *settingsRepo) Get(_ context.Context) (*domain.Settings, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if r.s.settings == nil {
		return nil, domain.ErrNotFound
	}
	cp := *r.s.settings
	return &cp, nil
}

func (r *settingsRepo) Save(_ context.Context, settings *domain.Settings) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	settings.UpdatedAt = r.s.now()
	cp := *settings
	r.s.settings = &cp
	return nil
}

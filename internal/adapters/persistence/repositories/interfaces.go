package repositories

import (
	"context"

	"teampulse/internal/core/domain"
)

// AgentRepository defines agent (profiles) repository interface
type AgentRepository interface {
	Create(ctx context.Context, agent *domain.Agent) error
	GetByID(ctx context.Context, id string) (*domain.Agent, error)
	GetByEmail(ctx context.Context, email string) (*domain.Agent, error)
	Update(ctx context.Context, agent *domain.Agent) error
	SetActive(ctx context.Context, id string, active bool) error
	// List returns agents ordered by full name
	List(ctx context.Context, activeOnly bool) ([]domain.Agent, error)
	ExistsByEmail(ctx context.Context, email, excludeID string) (bool, error)
	CountAdmins(ctx context.Context) (int64, error)
}

// MissionFilter narrows mission listings
type MissionFilter struct {
	Type       *domain.MissionType
	Query      string
	ActiveOnly bool
	// ForTitle keeps general missions plus those targeting this title
	ForTitle *string
}

// MissionRepository defines mission catalog repository interface
type MissionRepository interface {
	Create(ctx context.Context, mission *domain.Mission) error
	GetByID(ctx context.Context, id string) (*domain.Mission, error)
	Update(ctx context.Context, mission *domain.Mission) error
	SetActive(ctx context.Context, id string, active bool) error
	// List returns positive missions first, then by creation time
	List(ctx context.Context, filter MissionFilter) ([]domain.Mission, error)
	Count(ctx context.Context) (int64, error)
}

// LedgerRepository defines actions ledger repository interface.
// Entries are append-only; there is no update.
type LedgerRepository interface {
	Create(ctx context.Context, entry *domain.LedgerEntry) error
	GetByID(ctx context.Context, id string) (*domain.LedgerEntry, error)
	Delete(ctx context.Context, id string) error
	ListByMonth(ctx context.Context, month domain.MonthTag) ([]domain.LedgerEntry, error)
	// ListRecent returns newest entries first, joined to the target's name.
	// A nil month lists across all months.
	ListRecent(ctx context.Context, limit int, month *domain.MonthTag) ([]domain.LedgerEntry, error)
}

// ArchiveRepository defines monthly archive repository interface
type ArchiveRepository interface {
	// SaveClosedMonth writes the header and every row in one transaction.
	// It fails with domain.ErrMonthAlreadyClosed if the month has a header.
	SaveClosedMonth(ctx context.Context, header *domain.MonthlyArchive, rows []domain.MonthlyArchiveRow) error
	GetHeader(ctx context.Context, month domain.MonthTag) (*domain.MonthlyArchive, error)
	IsClosed(ctx context.Context, month domain.MonthTag) (bool, error)
	// List returns archive headers, newest month first
	List(ctx context.Context) ([]domain.MonthlyArchive, error)
	// ListRows returns a closed month's rows ordered by rank, joined to the agent
	ListRows(ctx context.Context, month domain.MonthTag) ([]domain.MonthlyArchiveRow, error)
}

// SettingsRepository defines app settings repository interface
type SettingsRepository interface {
	// Get returns domain.ErrNotFound when settings were never saved
	Get(ctx context.Context) (*domain.Settings, error)
	Save(ctx context.Context, settings *domain.Settings) error
}

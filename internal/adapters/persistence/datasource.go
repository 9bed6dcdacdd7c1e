package persistence

import (
	"context"
	"fmt"
	"time"

	"teampulse/internal/adapters/persistence/memory"
	"teampulse/internal/adapters/persistence/models"
	"teampulse/internal/adapters/persistence/repositories"
	"teampulse/internal/config"
	"teampulse/internal/core/domain"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DataSource bundles the repositories of one storage backend
type DataSource struct {
	Kind     string
	Agents   repositories.AgentRepository
	Missions repositories.MissionRepository
	Ledger   repositories.LedgerRepository
	Archives repositories.ArchiveRepository
	Settings repositories.SettingsRepository

	// DB is nil for the memory data source
	DB *gorm.DB
}

// Open connects the backend selected by cfg.DataSource. The memory backend
// starts from the sample team and loses every change on restart.
func Open(cfg *config.Config, log *zap.Logger) (*DataSource, error) {
	switch cfg.DataSource {
	case config.DataSourceMySQL:
		db, err := config.ConnectDatabase(cfg, log)
		if err != nil {
			return nil, err
		}
		return FromGorm(config.DataSourceMySQL, db), nil

	case config.DataSourceSQLite:
		db, err := config.ConnectSQLite(cfg, log)
		if err != nil {
			return nil, err
		}
		return FromGorm(config.DataSourceSQLite, db), nil

	case config.DataSourceMemory:
		now := time.Now().In(cfg.Location())
		log.Warn("using in-memory sample data, changes are not persisted")
		return FromMemory(memory.NewSample(domain.MonthTagOf(now), now)), nil

	default:
		return nil, fmt.Errorf("unknown data source %q", cfg.DataSource)
	}
}

// FromGorm wires the gorm repositories over db
func FromGorm(kind string, db *gorm.DB) *DataSource {
	return &DataSource{
		Kind:     kind,
		Agents:   repositories.NewAgentRepository(db),
		Missions: repositories.NewMissionRepository(db),
		Ledger:   repositories.NewLedgerRepository(db),
		Archives: repositories.NewArchiveRepository(db),
		Settings: repositories.NewSettingsRepository(db),
		DB:       db,
	}
}

// FromMemory wires the repositories of an in-memory store
func FromMemory(store *memory.Store) *DataSource {
	return &DataSource{
		Kind:     config.DataSourceMemory,
		Agents:   store.Agents(),
		Missions: store.Missions(),
		Ledger:   store.Ledger(),
		Archives: store.Archives(),
		Settings: store.Settings(),
	}
}

// Persistent reports whether changes survive a restart
func (d *DataSource) Persistent() bool {
	return d.DB != nil
}

// Migrate creates or updates the schema. No-op for memory.
func (d *DataSource) Migrate() error {
	if d.DB == nil {
		return nil
	}
	return models.AutoMigrate(d.DB)
}

// Ping checks the backend connection
func (d *DataSource) Ping(ctx context.Context) error {
	if d.DB == nil {
		return nil
	}
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close releases the connection pool
func (d *DataSource) Close() error {
	if d.DB == nil {
		return nil
	}
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

package services

import (
	"teampulse/internal/adapters/persistence"
	"teampulse/internal/config"
	"teampulse/internal/core/domain"

	"go.uber.org/zap"
)

// Services bundles every service built over one data source
type Services struct {
	Settings      *SettingsService
	Notifications *NotificationService
	Agents        *AgentService
	Missions      *MissionService
	Actions       *ActionService
	Archives      *ArchiveService
	Dashboard     *DashboardService
	Auth          *AuthService
}

// New wires the services. publisher and avatars may be nil.
func New(
	ds *persistence.DataSource,
	cfg *config.Config,
	publisher EventPublisher,
	avatars AvatarStore,
	clock domain.MonthClock,
	log *zap.Logger,
) *Services {
	settings := NewSettingsService(ds.Settings, cfg.Defaults, log.Named("settings"))
	notifier := NewNotificationService(publisher, log.Named("events"))

	return &Services{
		Settings:      settings,
		Notifications: notifier,
		Agents:        NewAgentService(ds.Agents, avatars, cfg.Storage.MaxAvatarSize, log.Named("agents")),
		Missions:      NewMissionService(ds.Missions, ds.Agents, log.Named("missions")),
		Actions: NewActionService(ds.Ledger, ds.Agents, ds.Missions, ds.Archives,
			settings, notifier, clock, log.Named("actions")),
		Archives: NewArchiveService(ds.Ledger, ds.Agents, ds.Archives,
			settings, notifier, clock, cfg.Archive.ClosingEnabled, log.Named("archives")),
		Dashboard: NewDashboardService(ds.Agents, ds.Ledger, ds.Archives, settings, clock, log.Named("dashboard")),
		Auth:      NewAuthService(ds.Agents, cfg, log.Named("auth")),
	}
}

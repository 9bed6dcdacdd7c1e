package services

import (
	"context"
	"fmt"
	"time"

	"teampulse/internal/adapters/persistence/repositories"
	"teampulse/internal/core/domain"
	"teampulse/internal/pkg/metrics"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// recentActivityLimit is how many ledger entries the dashboard shows
const recentActivityLimit = 10

// DashboardService builds the monthly team view
type DashboardService struct {
	agentRepo   repositories.AgentRepository
	ledgerRepo  repositories.LedgerRepository
	archiveRepo repositories.ArchiveRepository
	settings    *SettingsService
	clock       domain.MonthClock
	log         *zap.Logger
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(
	agentRepo repositories.AgentRepository,
	ledgerRepo repositories.LedgerRepository,
	archiveRepo repositories.ArchiveRepository,
	settings *SettingsService,
	clock domain.MonthClock,
	log *zap.Logger,
) *DashboardService {
	return &DashboardService{
		agentRepo:   agentRepo,
		ledgerRepo:  ledgerRepo,
		archiveRepo: archiveRepo,
		settings:    settings,
		clock:       clock,
		log:         log,
	}
}

// ActivityItem is one row of the recent activity feed
type ActivityItem struct {
	ID           string          `json:"id"`
	TargetUserID string          `json:"target_user_id"`
	TargetName   string          `json:"target_name"`
	MissionTitle string          `json:"mission_title"`
	Points       int             `json:"points"`
	Note         *string         `json:"note,omitempty"`
	MonthTag     domain.MonthTag `json:"month_tag"`
	CreatedAt    time.Time       `json:"created_at"`
}

// DashboardData represents the dashboard for one month
type DashboardData struct {
	Month           domain.MonthTag      `json:"month"`
	CurrentMonth    domain.MonthTag      `json:"current_month"`
	IsClosed        bool                 `json:"is_closed"`
	ClosedAt        *time.Time           `json:"closed_at,omitempty"`
	Ranking         []domain.RankedAgent `json:"ranking"`
	Chart           []domain.ChartPoint  `json:"chart"`
	RecentActivity  []ActivityItem       `json:"recent_activity"`
	TotalPoints     int                  `json:"total_points"`
	TotalBonus      int64                `json:"total_bonus"`
	PointValue      int64                `json:"point_value"`
	MonthlyPointCap int                  `json:"monthly_point_cap"`
	Currency        string               `json:"currency"`
	Quote           string               `json:"quote"`
}

// GetDashboard returns the ranking for month, or the current month when nil.
// Closed months are served from their frozen archive.
func (s *DashboardService) GetDashboard(ctx context.Context, month *domain.MonthTag) (*DashboardData, error) {
	start := time.Now()
	defer func() {
		metrics.DashboardBuildSeconds.Observe(time.Since(start).Seconds())
	}()

	current := s.clock()
	target := current
	if month != nil {
		target = *month
	}

	var (
		settings *domain.Settings
		agents   []domain.Agent
		entries  []domain.LedgerEntry
		recent   []domain.LedgerEntry
		header   *domain.MonthlyArchive
		rows     []domain.MonthlyArchiveRow
	)

	// the current month feed shows the latest activity of any month
	var recentFilter *domain.MonthTag
	if target != current {
		recentFilter = &target
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		settings, err = s.settings.Get(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		agents, err = s.agentRepo.List(gctx, true)
		return err
	})
	g.Go(func() error {
		var err error
		entries, err = s.ledgerRepo.ListByMonth(gctx, target)
		return err
	})
	g.Go(func() error {
		var err error
		recent, err = s.ledgerRepo.ListRecent(gctx, recentActivityLimit, recentFilter)
		return err
	})
	g.Go(func() error {
		closed, err := s.archiveRepo.IsClosed(gctx, target)
		if err != nil || !closed {
			return err
		}
		if header, err = s.archiveRepo.GetHeader(gctx, target); err != nil {
			return err
		}
		rows, err = s.archiveRepo.ListRows(gctx, target)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to build dashboard for %s: %w", target, err)
	}

	data := &DashboardData{
		Month:           target,
		CurrentMonth:    current,
		PointValue:      settings.PointValue,
		MonthlyPointCap: settings.MonthlyPointCap,
		Currency:        settings.Currency,
		Quote:           settings.DashboardQuote,
	}

	if header != nil {
		closedAt := header.ClosedAt
		data.IsClosed = true
		data.ClosedAt = &closedAt
		data.Ranking = rankedFromArchive(rows)
	} else {
		data.Ranking = domain.RankAgents(agents, domain.ComputeMonthlyTotals(entries, target), settings.Scoring())
	}

	data.Chart = domain.ChartSeries(data.Ranking)
	for _, r := range data.Ranking {
		data.TotalPoints += r.Points
		data.TotalBonus += r.Bonus
	}

	data.RecentActivity = make([]ActivityItem, len(recent))
	for i, e := range recent {
		data.RecentActivity[i] = ActivityItem{
			ID:           e.ID,
			TargetUserID: e.TargetUserID,
			TargetName:   e.TargetName,
			MissionTitle: e.MissionTitle,
			Points:       e.Points,
			Note:         e.Note,
			MonthTag:     e.MonthTag,
			CreatedAt:    e.CreatedAt,
		}
	}

	s.log.Debug("dashboard built",
		zap.String("month", target.String()),
		zap.Bool("closed", data.IsClosed),
		zap.Int("agents", len(data.Ranking)),
	)
	return data, nil
}

// rankedFromArchive rebuilds the ranking from frozen rows, already in rank order
func rankedFromArchive(rows []domain.MonthlyArchiveRow) []domain.RankedAgent {
	ranked := make([]domain.RankedAgent, len(rows))
	for i, r := range rows {
		ranked[i] = domain.RankedAgent{
			AgentID:   r.UserID,
			FullName:  r.FullName,
			Title:     r.Title,
			AvatarURL: r.AvatarURL,
			Points:    r.PointsTotal,
			Bonus:     r.BonusAmount,
			Rank:      r.Rank,
		}
	}
	return ranked
}

package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"teampulse/internal/adapters/persistence/repositories"
	"teampulse/internal/core/domain"
	"teampulse/internal/pkg/metrics"

	"go.uber.org/zap"
)

// ArchiveService freezes monthly results
type ArchiveService struct {
	ledgerRepo  repositories.LedgerRepository
	agentRepo   repositories.AgentRepository
	archiveRepo repositories.ArchiveRepository
	settings    *SettingsService
	notifier    *NotificationService
	clock       domain.MonthClock
	enabled     bool
	log         *zap.Logger
	now         func() time.Time
}

// NewArchiveService creates a new archive service. When enabled is false
// archives can still be read but no month can be closed.
func NewArchiveService(
	ledgerRepo repositories.LedgerRepository,
	agentRepo repositories.AgentRepository,
	archiveRepo repositories.ArchiveRepository,
	settings *SettingsService,
	notifier *NotificationService,
	clock domain.MonthClock,
	enabled bool,
	log *zap.Logger,
) *ArchiveService {
	return &ArchiveService{
		ledgerRepo:  ledgerRepo,
		agentRepo:   agentRepo,
		archiveRepo: archiveRepo,
		settings:    settings,
		notifier:    notifier,
		clock:       clock,
		enabled:     enabled,
		log:         log,
		now:         time.Now,
	}
}

// ArchiveDetail is a closed month with its frozen rows
type ArchiveDetail struct {
	Archive domain.MonthlyArchive
	Rows    []domain.MonthlyArchiveRow
}

// Enabled reports whether months can be closed
func (s *ArchiveService) Enabled() bool {
	return s.enabled
}

// CloseMonth ranks every active agent for month and writes the archive in
// one transaction. A month can be closed once; later attempts are rejected.
func (s *ArchiveService) CloseMonth(ctx context.Context, month domain.MonthTag, closedBy string) (*ArchiveDetail, error) {
	if !s.enabled {
		return nil, domain.ErrMonthClosingDisabled
	}
	if month > s.clock() {
		return nil, fmt.Errorf("%w: cannot close future month %s", domain.ErrInvalidInput, month)
	}

	detail, err := s.closeMonth(ctx, month, closedBy)
	switch {
	case err == nil:
		metrics.MonthsClosed.WithLabelValues("ok").Inc()
	case errors.Is(err, domain.ErrMonthAlreadyClosed):
		metrics.MonthsClosed.WithLabelValues("rejected").Inc()
	default:
		metrics.MonthsClosed.WithLabelValues("error").Inc()
	}
	return detail, err
}

func (s *ArchiveService) closeMonth(ctx context.Context, month domain.MonthTag, closedBy string) (*ArchiveDetail, error) {
	closed, err := s.archiveRepo.IsClosed(ctx, month)
	if err != nil {
		return nil, fmt.Errorf("failed to check month status: %w", err)
	}
	if closed {
		return nil, domain.ErrMonthAlreadyClosed
	}

	entries, err := s.ledgerRepo.ListByMonth(ctx, month)
	if err != nil {
		return nil, fmt.Errorf("failed to load ledger: %w", err)
	}
	agents, err := s.agentRepo.List(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("failed to load agents: %w", err)
	}
	settings, err := s.settings.Get(ctx)
	if err != nil {
		return nil, err
	}

	ranked := domain.RankAgents(agents, domain.ComputeMonthlyTotals(entries, month), settings.Scoring())
	rows := domain.ArchiveRows(month, ranked)

	header := &domain.MonthlyArchive{
		MonthTag: month,
		ClosedAt: s.now().UTC(),
	}
	if closedBy != "" {
		header.ClosedBy = &closedBy
	}

	if err := s.archiveRepo.SaveClosedMonth(ctx, header, rows); err != nil {
		if errors.Is(err, domain.ErrMonthAlreadyClosed) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to archive month %s: %w", month, err)
	}

	for i := range rows {
		rows[i].FullName = ranked[i].FullName
		rows[i].Title = ranked[i].Title
		rows[i].AvatarURL = ranked[i].AvatarURL
	}

	s.log.Info("month closed",
		zap.String("month", month.String()),
		zap.Int("agents", len(rows)),
		zap.Int("entries", len(entries)),
		zap.String("closed_by", closedBy),
	)

	s.notifier.NotifyMonthClosed(ctx, header, rows)
	return &ArchiveDetail{Archive: *header, Rows: rows}, nil
}

// ClosePreviousMonth closes the month before the current one unless it is
// already closed. Used by the scheduler.
func (s *ArchiveService) ClosePreviousMonth(ctx context.Context) (*ArchiveDetail, error) {
	month := s.clock().Previous()

	detail, err := s.CloseMonth(ctx, month, "")
	if errors.Is(err, domain.ErrMonthAlreadyClosed) {
		s.log.Debug("previous month already closed", zap.String("month", month.String()))
		return nil, nil
	}
	return detail, err
}

// List returns archive headers, newest first
func (s *ArchiveService) List(ctx context.Context) ([]domain.MonthlyArchive, error) {
	return s.archiveRepo.List(ctx)
}

// Get returns one closed month with its rows ordered by rank
func (s *ArchiveService) Get(ctx context.Context, month domain.MonthTag) (*ArchiveDetail, error) {
	header, err := s.archiveRepo.GetHeader(ctx, month)
	if err != nil {
		return nil, err
	}
	rows, err := s.archiveRepo.ListRows(ctx, month)
	if err != nil {
		return nil, fmt.Errorf("failed to load archive rows: %w", err)
	}
	return &ArchiveDetail{Archive: *header, Rows: rows}, nil
}

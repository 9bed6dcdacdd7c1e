package services

import (
	"context"
	"fmt"
	"strings"

	"teampulse/internal/adapters/persistence/repositories"
	"teampulse/internal/core/domain"
	"teampulse/internal/pkg/metrics"
	"teampulse/internal/pkg/pagination"

	"go.uber.org/zap"
)

// DeleteConfirmation must be ConfirmIrreversible for DeleteEntry to run
type DeleteConfirmation bool

// ConfirmIrreversible acknowledges that a deleted entry cannot be restored
const ConfirmIrreversible DeleteConfirmation = true

// ActionService registers and corrects ledger entries
type ActionService struct {
	ledgerRepo  repositories.LedgerRepository
	agentRepo   repositories.AgentRepository
	missionRepo repositories.MissionRepository
	archiveRepo repositories.ArchiveRepository
	settings    *SettingsService
	notifier    *NotificationService
	clock       domain.MonthClock
	log         *zap.Logger
}

// NewActionService creates a new action service
func NewActionService(
	ledgerRepo repositories.LedgerRepository,
	agentRepo repositories.AgentRepository,
	missionRepo repositories.MissionRepository,
	archiveRepo repositories.ArchiveRepository,
	settings *SettingsService,
	notifier *NotificationService,
	clock domain.MonthClock,
	log *zap.Logger,
) *ActionService {
	return &ActionService{
		ledgerRepo:  ledgerRepo,
		agentRepo:   agentRepo,
		missionRepo: missionRepo,
		archiveRepo: archiveRepo,
		settings:    settings,
		notifier:    notifier,
		clock:       clock,
		log:         log,
	}
}

// RegisterActionInput represents a grant request
type RegisterActionInput struct {
	TargetUserID string  `json:"target_user_id"`
	MissionID    string  `json:"mission_id"`
	Note         *string `json:"note"`
}

// AuthorizeRegistration reports whether an agent with role may register actions
func (s *ActionService) AuthorizeRegistration(ctx context.Context, role domain.Role) error {
	if role == domain.RoleAdmin {
		return nil
	}
	settings, err := s.settings.Get(ctx)
	if err != nil {
		return err
	}
	if !settings.AllowMemberActions {
		return domain.ErrForbidden
	}
	return nil
}

// Register appends one ledger entry copying the mission's title and points.
// The month tag comes from the service clock. When actingAgentID is empty
// the entry is attributed to the target agent.
func (s *ActionService) Register(ctx context.Context, input *RegisterActionInput, actingAgentID string) (*domain.LedgerEntry, error) {
	if strings.TrimSpace(input.TargetUserID) == "" || strings.TrimSpace(input.MissionID) == "" {
		return nil, fmt.Errorf("%w: target_user_id and mission_id are required", domain.ErrInvalidInput)
	}

	target, err := s.agentRepo.GetByID(ctx, input.TargetUserID)
	if err != nil {
		return nil, err
	}
	if !target.IsActive {
		return nil, domain.ErrAgentInactive
	}

	mission, err := s.missionRepo.GetByID(ctx, input.MissionID)
	if err != nil {
		return nil, err
	}
	if !mission.IsActive {
		return nil, domain.ErrMissionInactive
	}
	if !mission.AppliesTo(target) {
		return nil, domain.ErrMissionNotApplicable
	}

	var note *string
	if input.Note != nil && strings.TrimSpace(*input.Note) != "" {
		n := strings.TrimSpace(*input.Note)
		note = &n
	}

	settings, err := s.settings.Get(ctx)
	if err != nil {
		return nil, err
	}
	if settings.StrictPenaltyMode && mission.Points < 0 && note == nil {
		return nil, domain.ErrNoteRequired
	}

	month := s.clock()
	closed, err := s.archiveRepo.IsClosed(ctx, month)
	if err != nil {
		return nil, fmt.Errorf("failed to check month status: %w", err)
	}
	if closed {
		return nil, domain.ErrMonthClosed
	}

	createdBy := actingAgentID
	if createdBy == "" {
		createdBy = target.ID
	}

	missionID := mission.ID
	entry := &domain.LedgerEntry{
		TargetUserID: target.ID,
		MissionID:    &missionID,
		MissionTitle: mission.Title,
		Points:       mission.Points,
		Note:         note,
		CreatedBy:    createdBy,
		MonthTag:     month,
	}
	if err := s.ledgerRepo.Create(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to register action: %w", err)
	}
	entry.TargetName = target.FullName

	metrics.ActionsRegistered.WithLabelValues(string(mission.Type)).Inc()
	metrics.PointsGranted.WithLabelValues(string(mission.Type)).Add(float64(abs(entry.Points)))

	s.log.Info("action registered",
		zap.String("entry_id", entry.ID),
		zap.String("target", target.ID),
		zap.String("mission", mission.ID),
		zap.Int("points", entry.Points),
		zap.String("month", month.String()),
		zap.String("created_by", createdBy),
	)

	s.notifier.NotifyActionRegistered(ctx, entry, target)
	return entry, nil
}

// DeleteEntry hard deletes one entry. There is no undo and no audit trail.
func (s *ActionService) DeleteEntry(ctx context.Context, id string, confirm DeleteConfirmation) error {
	if confirm != ConfirmIrreversible {
		return domain.ErrDeletionNotConfirmed
	}

	entry, err := s.ledgerRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	closed, err := s.archiveRepo.IsClosed(ctx, entry.MonthTag)
	if err != nil {
		return fmt.Errorf("failed to check month status: %w", err)
	}
	if closed {
		return domain.ErrMonthClosed
	}

	if err := s.ledgerRepo.Delete(ctx, id); err != nil {
		return err
	}

	metrics.ActionsDeleted.Inc()
	s.log.Warn("action deleted",
		zap.String("entry_id", entry.ID),
		zap.String("target", entry.TargetUserID),
		zap.Int("points", entry.Points),
		zap.String("month", entry.MonthTag.String()),
	)

	s.notifier.NotifyActionDeleted(ctx, entry)
	return nil
}

// ListRecent returns the newest entries joined to the target's name
func (s *ActionService) ListRecent(ctx context.Context, limit int, month *domain.MonthTag) ([]domain.LedgerEntry, error) {
	if limit < 1 {
		limit = pagination.DefaultLimit
	}
	if limit > pagination.MaxLimit {
		limit = pagination.MaxLimit
	}
	return s.ledgerRepo.ListRecent(ctx, limit, month)
}

// CurrentMonth reports the month new entries are tagged with
func (s *ActionService) CurrentMonth() domain.MonthTag {
	return s.clock()
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

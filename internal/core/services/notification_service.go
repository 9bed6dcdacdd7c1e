package services

import (
	"context"
	"fmt"
	"time"

	"teampulse/internal/core/domain"
	"teampulse/internal/pkg/metrics"

	"go.uber.org/zap"
)

// NotificationService turns ledger and archive changes into domain events
type NotificationService struct {
	publisher EventPublisher
	log       *zap.Logger
	now       func() time.Time
}

// NewNotificationService creates a new notification service.
// A nil publisher disables publishing.
func NewNotificationService(publisher EventPublisher, log *zap.Logger) *NotificationService {
	if publisher == nil {
		publisher = NoopPublisher{}
	}
	return &NotificationService{
		publisher: publisher,
		log:       log,
		now:       time.Now,
	}
}

// NotifyActionRegistered publishes action.registered
func (s *NotificationService) NotifyActionRegistered(ctx context.Context, entry *domain.LedgerEntry, target *domain.Agent) {
	sign := "+"
	emoji := "🏆"
	if entry.Points < 0 {
		sign = ""
		emoji = "⚠️"
	}

	s.publish(ctx, domain.Event{
		Type:     domain.EventActionRegistered,
		MonthTag: entry.MonthTag,
		Payload: map[string]any{
			"entry_id":       entry.ID,
			"target_user_id": entry.TargetUserID,
			"target_name":    target.FullName,
			"mission_id":     entry.MissionID,
			"mission_title":  entry.MissionTitle,
			"points":         entry.Points,
			"created_by":     entry.CreatedBy,
			"message":        fmt.Sprintf("%s %s %s%d (%s)", emoji, target.FullName, sign, entry.Points, entry.MissionTitle),
		},
	})
}

// NotifyActionDeleted publishes action.deleted
func (s *NotificationService) NotifyActionDeleted(ctx context.Context, entry *domain.LedgerEntry) {
	s.publish(ctx, domain.Event{
		Type:     domain.EventActionDeleted,
		MonthTag: entry.MonthTag,
		Payload: map[string]any{
			"entry_id":       entry.ID,
			"target_user_id": entry.TargetUserID,
			"points":         entry.Points,
			"message":        fmt.Sprintf("🗑️ Acción eliminada: %s (%d)", entry.MissionTitle, entry.Points),
		},
	})
}

// NotifyMonthClosed publishes month.closed with the podium
func (s *NotificationService) NotifyMonthClosed(ctx context.Context, archive *domain.MonthlyArchive, rows []domain.MonthlyArchiveRow) {
	var totalBonus int64
	podium := make([]string, 0, 3)
	for _, r := range rows {
		totalBonus += r.BonusAmount
		if r.Rank <= 3 {
			podium = append(podium, r.UserID)
		}
	}

	s.publish(ctx, domain.Event{
		Type:     domain.EventMonthClosed,
		MonthTag: archive.MonthTag,
		Payload: map[string]any{
			"archive_id":  archive.ID,
			"closed_by":   archive.ClosedBy,
			"agents":      len(rows),
			"total_bonus": totalBonus,
			"podium":      podium,
			"message":     fmt.Sprintf("📦 Mes %s cerrado: %d agentes, bono total %d", archive.MonthTag, len(rows), totalBonus),
		},
	})
}

// publish never fails the caller: the change is already committed
func (s *NotificationService) publish(ctx context.Context, event domain.Event) {
	event.OccurredAt = s.now().UTC()

	if err := s.publisher.Publish(ctx, event); err != nil {
		metrics.EventsPublished.WithLabelValues(string(event.Type), "error").Inc()
		s.log.Warn("failed to publish event",
			zap.String("type", string(event.Type)),
			zap.String("month", event.MonthTag.String()),
			zap.Error(err),
		)
		return
	}
	metrics.EventsPublished.WithLabelValues(string(event.Type), "ok").Inc()
}

// Close releases the publisher
func (s *NotificationService) Close() error {
	return s.publisher.Close()
}

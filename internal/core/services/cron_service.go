package services

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// closeJobTimeout bounds one scheduled close run
const closeJobTimeout = 2 * time.Minute

// CronService runs the scheduled month close
type CronService struct {
	archives *ArchiveService
	schedule string
	cron     *cron.Cron
	log      *zap.Logger
}

// NewCronService creates a scheduler that closes the previous month on
// schedule, a standard 5-field cron expression evaluated in loc.
func NewCronService(archives *ArchiveService, schedule string, loc *time.Location, log *zap.Logger) *CronService {
	if loc == nil {
		loc = time.UTC
	}
	return &CronService{
		archives: archives,
		schedule: schedule,
		cron:     cron.New(cron.WithLocation(loc)),
		log:      log,
	}
}

// Start registers the job and starts the scheduler. An empty schedule
// leaves the scheduler idle.
func (s *CronService) Start() error {
	if s.schedule == "" {
		s.log.Info("auto close disabled")
		return nil
	}

	if _, err := s.cron.AddFunc(s.schedule, s.RunClose); err != nil {
		return err
	}
	s.cron.Start()

	s.log.Info("cron service started", zap.String("schedule", s.schedule))
	return nil
}

// RunClose closes the previous month once
func (s *CronService) RunClose() {
	ctx, cancel := context.WithTimeout(context.Background(), closeJobTimeout)
	defer cancel()

	detail, err := s.archives.ClosePreviousMonth(ctx)
	if err != nil {
		s.log.Error("scheduled month close failed", zap.Error(err))
		return
	}
	if detail != nil {
		s.log.Info("scheduled month close done",
			zap.String("month", detail.Archive.MonthTag.String()),
			zap.Int("agents", len(detail.Rows)),
		)
	}
}

// Stop stops the scheduler and waits for a running job to finish
func (s *CronService) Stop() {
	<-s.cron.Stop().Done()
	s.log.Info("cron service stopped")
}

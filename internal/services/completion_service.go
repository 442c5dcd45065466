package services

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// CompletionStore is the sweep's view of the booking store
type CompletionStore interface {
	CompleteDue(today time.Time) (int64, error)
}

// OrphanReleaser reclaims reservations that no active booking references
type OrphanReleaser interface {
	ReleaseOrphans(cutoff time.Time) (int, error)
}

// CompletionService runs the periodic sweep that flips confirmed bookings
// past their check-out date to completed and reclaims orphaned reservations.
// The schedule is a cron expression with seconds precision.
type CompletionService struct {
	cron             *cron.Cron
	bookings         CompletionStore
	ledger           OrphanReleaser
	schedule         string
	orphanHoldMaxAge time.Duration
	logger           *logrus.Logger
}

// NewCompletionService creates a new CompletionService
func NewCompletionService(
	bookings CompletionStore,
	ledger OrphanReleaser,
	schedule string,
	orphanHoldMaxAge time.Duration,
	logger *logrus.Logger,
) *CompletionService {
	return &CompletionService{
		cron:             cron.New(cron.WithSeconds()),
		bookings:         bookings,
		ledger:           ledger,
		schedule:         schedule,
		orphanHoldMaxAge: orphanHoldMaxAge,
		logger:           logger,
	}
}

// Start schedules the sweep and starts the cron scheduler
func (s *CompletionService) Start() error {
	if _, err := s.cron.AddFunc(s.schedule, s.sweep); err != nil {
		return fmt.Errorf("failed to schedule completion sweep: %w", err)
	}
	s.cron.Start()
	s.logger.WithField("schedule", s.schedule).Info("Completion sweep scheduled")
	return nil
}

// Stop stops the cron scheduler and waits for a running sweep to finish
func (s *CompletionService) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("Completion sweep stopped")
}

// RunOnce runs a single sweep cycle (manual trigger, also used in tests)
func (s *CompletionService) RunOnce() {
	s.sweep()
}

func (s *CompletionService) sweep() {
	start := time.Now()

	completed, err := s.bookings.CompleteDue(start.UTC())
	if err != nil {
		s.logger.WithError(err).Error("Completion sweep failed")
		return
	}

	orphans, err := s.ledger.ReleaseOrphans(start.Add(-s.orphanHoldMaxAge))
	if err != nil {
		s.logger.WithError(err).Error("Orphan reservation sweep failed")
	}

	entry := s.logger.WithFields(logrus.Fields{
		"completed_bookings": completed,
		"released_orphans":   orphans,
		"duration_ms":        time.Since(start).Milliseconds(),
	})
	if completed > 0 || orphans > 0 {
		entry.Info("Completion sweep finished")
	} else {
		entry.Debug("Completion sweep finished")
	}
}

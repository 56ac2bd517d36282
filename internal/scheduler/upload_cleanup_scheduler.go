package scheduler

import (
	"context"
	"time"

	"github.com/doorhan-crimea/doorhan-backend/internal/app/service"
	"github.com/doorhan-crimea/doorhan-backend/pkg/logger"
	"github.com/robfig/cron/v3"
)

// cleanupTimeout bounds one sweep so a hung storage call cannot pile up runs
const cleanupTimeout = 10 * time.Minute

// UploadCleanupScheduler periodically removes uploaded files nothing refers to
type UploadCleanupScheduler struct {
	cron           *cron.Cron
	schedule       string
	cleanupService service.UploadCleanupService
}

// NewUploadCleanupScheduler takes a standard five-field cron expression, e.g. "30 3 * * *"
func NewUploadCleanupScheduler(cleanupService service.UploadCleanupService, schedule string) *UploadCleanupScheduler {
	return &UploadCleanupScheduler{
		cron:           cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		schedule:       schedule,
		cleanupService: cleanupService,
	}
}

func (s *UploadCleanupScheduler) Start() error {
	if _, err := s.cron.AddFunc(s.schedule, s.runCleanup); err != nil {
		logger.Error("Failed to add cron job for upload cleanup", err, map[string]interface{}{
			"schedule": s.schedule,
		})
		return err
	}

	s.cron.Start()
	logger.Info("Upload cleanup scheduler started", map[string]interface{}{
		"schedule": s.schedule,
	})
	return nil
}

func (s *UploadCleanupScheduler) runCleanup() {
	ctx, cancel := context.WithTimeout(context.Background(), cleanupTimeout)
	defer cancel()

	logger.Info("Starting scheduled upload cleanup")
	removed, err := s.cleanupService.RemoveOrphans(ctx)
	if err != nil {
		logger.Error("Scheduled upload cleanup failed", err)
		return
	}
	logger.Info("Scheduled upload cleanup finished", map[string]interface{}{
		"removed": removed,
	})
}

// Stop waits for a running sweep to finish
func (s *UploadCleanupScheduler) Stop() {
	logger.Info("Stopping upload cleanup scheduler...")
	<-s.cron.Stop().Done()
	logger.Info("Upload cleanup scheduler stopped")
}

package jobs

import (
	"context"
	"time"

	"startup-hub/backend/internal/db/repositories"
	"startup-hub/backend/internal/logging"
)

// CodeCleanupJob removes expired confirmation and recovery codes. Expiry is
// enforced at read time regardless; this keeps the table from growing with
// codes nobody will ever redeem.
type CodeCleanupJob struct {
	codeRepo *repositories.CodeRepository
}

func NewCodeCleanupJob(codeRepo *repositories.CodeRepository) *CodeCleanupJob {
	return &CodeCleanupJob{codeRepo: codeRepo}
}

// Run executes a single purge pass.
func (j *CodeCleanupJob) Run(ctx context.Context) error {
	start := time.Now()

	if err := j.codeRepo.PurgeExpired(ctx); err != nil {
		logging.Error("Code cleanup failed", "error", err.Error())
		return err
	}

	logging.Debug("Code cleanup completed", "duration_ms", time.Since(start).Milliseconds())
	return nil
}

// RunScheduled runs the purge on a fixed interval until the context is
// cancelled.
func (j *CodeCleanupJob) RunScheduled(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	// Purge once at startup so a long-stopped server catches up immediately.
	_ = j.Run(ctx)

	for {
		select {
		case <-ctx.Done():
			logging.Info("Code cleanup job stopped")
			return
		case <-ticker.C:
			_ = j.Run(ctx)
		}
	}
}

package jobs

import (
	"context"
	"time"

	"startup-hub/backend/internal/db/repositories"
)

// InitializeJobs starts all background jobs.
func InitializeJobs(ctx context.Context, codeRepo *repositories.CodeRepository) *CodeCleanupJob {
	cleanupJob := NewCodeCleanupJob(codeRepo)

	go cleanupJob.RunScheduled(ctx, 1*time.Hour)

	return cleanupJob
}

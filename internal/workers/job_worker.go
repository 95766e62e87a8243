package workers

import (
	"context"
	"time"

	"buildxpert/internal/logger"
	"buildxpert/internal/repositories"
)

const expiryInterval = time.Hour

// JobWorker expires published jobs whose start date has passed.
type JobWorker struct {
	jobs repositories.JobRepository
}

func NewJobWorker(jobs repositories.JobRepository) *JobWorker {
	return &JobWorker{jobs: jobs}
}

// Run blocks until ctx is cancelled, sweeping once per interval.
func (w *JobWorker) Run(ctx context.Context) {
	ticker := time.NewTicker(expiryInterval)
	defer ticker.Stop()

	w.sweep()

	for {
		select {
		case <-ctx.Done():
			logger.Info("job worker stopped")
			return
		case <-ticker.C:
			w.sweep()
		}
	}
}

func (w *JobWorker) sweep() {
	expired, err := w.jobs.ExpirePublishedBefore(time.Now())
	if err != nil {
		logger.WorkerLog("job_worker", "expire", err)
		return
	}
	if expired > 0 {
		logger.Info("expired stale jobs", "count", expired)
	}
}

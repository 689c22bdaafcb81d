package jobs

import (
	"fmt"
	"log/slog"
)

type job interface {
	Start() error
	Stop()
}

type namedJob struct {
	name string
	job  job
}

// JobManager starts and stops the scheduled jobs together.
type JobManager struct {
	jobs   []namedJob
	logger *slog.Logger
}

func NewJobManager(autoAssign *AutoAssignJob, logger *slog.Logger) *JobManager {
	return &JobManager{
		jobs:   []namedJob{{name: "auto assignment", job: autoAssign}},
		logger: logger,
	}
}

// StartAll starts every job. If one fails, the jobs already started are stopped.
func (jm *JobManager) StartAll() error {
	for i, j := range jm.jobs {
		if err := j.job.Start(); err != nil {
			for _, started := range jm.jobs[:i] {
				started.job.Stop()
			}
			return fmt.Errorf("failed to start %s job: %w", j.name, err)
		}
	}
	return nil
}

// StopAll stops all jobs, newest first.
func (jm *JobManager) StopAll() {
	for i := len(jm.jobs) - 1; i >= 0; i-- {
		jm.jobs[i].job.Stop()
	}
	jm.logger.Info("All jobs stopped")
}

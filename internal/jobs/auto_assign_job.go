package jobs

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/services"

	"github.com/robfig/cron/v3"
)

type autoAssigner interface {
	Handle(ctx context.Context, cmd commands.AutoAssignAttemptsCommand) (commands.AutoAssignResult, error)
}

type AutoAssignConfig struct {
	// Schedule is a standard five-field cron expression or descriptor.
	Schedule string
	// OlderThan is how long an attempt must sit unclaimed before it is assigned.
	OlderThan time.Duration
	// Limit caps the attempts assigned per run.
	Limit int
}

// AutoAssignJob hands PENDING attempts nobody claimed to active staff.
type AutoAssignJob struct {
	handler autoAssigner
	cfg     AutoAssignConfig
	cron    *cron.Cron
	logger  *slog.Logger
}

func NewAutoAssignJob(handler autoAssigner, cfg AutoAssignConfig, logger *slog.Logger) *AutoAssignJob {
	if cfg.Schedule == "" {
		cfg.Schedule = "@hourly"
	}
	return &AutoAssignJob{
		handler: handler,
		cfg:     cfg,
		cron:    cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger:  logger.With("component", "auto_assign_job"),
	}
}

func (j *AutoAssignJob) Start() error {
	if _, err := j.cron.AddFunc(j.cfg.Schedule, func() { j.run(context.Background()) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("Auto assignment job started", "schedule", j.cfg.Schedule, "older_than", j.cfg.OlderThan)
	return nil
}

// Stop waits for a running pass to finish.
func (j *AutoAssignJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("Auto assignment job stopped")
}

func (j *AutoAssignJob) run(ctx context.Context) {
	cmd, err := commands.NewAutoAssignAttemptsCommand(j.cfg.OlderThan, j.cfg.Limit)
	if err != nil {
		j.logger.ErrorContext(ctx, "Auto assignment misconfigured", "error", err)
		return
	}

	result, err := j.handler.Handle(ctx, cmd)
	if err != nil {
		if errors.Is(err, services.ErrNoStaffAvailable) {
			j.logger.WarnContext(ctx, "Auto assignment skipped, no active staff")
			return
		}
		j.logger.ErrorContext(ctx, "Auto assignment job failed", "error", err)
		return
	}

	if result.Assigned > 0 || result.Skipped > 0 {
		j.logger.InfoContext(ctx, "Auto assignment pass finished", "assigned", result.Assigned, "skipped", result.Skipped)
	}
}

package jobs

import (
	"context"
	"log/slog"
	"time"

	"github.com/u44592/hni/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// DefaultDraftExpirySchedule runs the sweep once a minute.
const DefaultDraftExpirySchedule = "0 * * * * *"

type draftExpirer interface {
	Handle(ctx context.Context, cmd commands.ExpireDraftsCommand) (int64, error)
}

// ExpiryRecorder counts removed drafts.
type ExpiryRecorder interface {
	RecordDraftsExpired(n int64)
}

// DraftExpiryJob deletes drafts that have been idle for longer than ttl.
type DraftExpiryJob struct {
	handler  draftExpirer
	recorder ExpiryRecorder
	ttl      time.Duration
	schedule string
	now      func() time.Time
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewDraftExpiryJob creates the job. An empty schedule means
// DefaultDraftExpirySchedule; recorder may be nil.
func NewDraftExpiryJob(
	handler draftExpirer,
	recorder ExpiryRecorder,
	ttl time.Duration,
	schedule string,
	logger *slog.Logger,
) *DraftExpiryJob {
	if schedule == "" {
		schedule = DefaultDraftExpirySchedule
	}
	return &DraftExpiryJob{
		handler:  handler,
		recorder: recorder,
		ttl:      ttl,
		schedule: schedule,
		now:      time.Now,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "draft_expiry_job"),
	}
}

// Start schedules the sweep.
func (j *DraftExpiryJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() { j.RunOnce(context.Background()) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Draft expiry job started", "schedule", j.schedule, "ttl", j.ttl)
	return nil
}

// RunOnce performs a single sweep and returns the number of drafts removed.
func (j *DraftExpiryJob) RunOnce(ctx context.Context) int64 {
	cmd, err := commands.NewExpireDraftsCommand(j.now(), j.ttl)
	if err != nil {
		j.logger.ErrorContext(ctx, "Draft expiry job misconfigured", "error", err)
		return 0
	}

	removed, err := j.handler.Handle(ctx, cmd)
	if err != nil {
		j.logger.ErrorContext(ctx, "Draft expiry job failed", "error", err)
		return 0
	}

	if removed > 0 {
		j.logger.InfoContext(ctx, "Expired idle drafts", "count", removed, "cutoff", cmd.Cutoff())
	}
	if j.recorder != nil {
		j.recorder.RecordDraftsExpired(removed)
	}
	return removed
}

// Stop stops the scheduler and waits for a running sweep to finish.
func (j *DraftExpiryJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Draft expiry job stopped")
}

package jobs

import (
	"context"
	"log/slog"
	"time"

	"basket/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

type outboxRelayHandler interface {
	Handle(ctx context.Context, cmd commands.RelayOutboxCommand) (int, error)
}

// OutboxRelayJob publishes pending order events on a schedule.
// A run that is still publishing when the next tick fires makes that tick a no-op.
type OutboxRelayJob struct {
	handler  outboxRelayHandler
	cmd      commands.RelayOutboxCommand
	schedule string
	timeout  time.Duration
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewOutboxRelayJob creates the relay job. schedule is a six-field cron spec, e.g. "*/2 * * * * *".
func NewOutboxRelayJob(
	handler outboxRelayHandler,
	cmd commands.RelayOutboxCommand,
	schedule string,
	timeout time.Duration,
	logger *slog.Logger,
) *OutboxRelayJob {
	return &OutboxRelayJob{
		handler:  handler,
		cmd:      cmd,
		schedule: schedule,
		timeout:  timeout,
		cron:     cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger:   logger.With("component", "outbox_relay_job"),
	}
}

// Start registers the relay with the scheduler and starts it.
func (j *OutboxRelayJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, j.Run); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Outbox relay job started", "schedule", j.schedule)
	return nil
}

// Run performs one relay pass.
func (j *OutboxRelayJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	sent, err := j.handler.Handle(ctx, j.cmd)
	if err != nil {
		j.logger.ErrorContext(ctx, "Outbox relay job failed", "error", err)
		return
	}
	if sent > 0 {
		j.logger.DebugContext(ctx, "Outbox messages published", "count", sent)
	}
}

// Stop stops scheduling and waits for a running pass to finish.
func (j *OutboxRelayJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Outbox relay job stopped")
}

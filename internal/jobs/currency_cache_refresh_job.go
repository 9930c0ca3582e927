package jobs

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

type currencyCache interface {
	Refresh(ctx context.Context) (int, error)
}

// CurrencyCacheRefreshJob reloads the currency cache so catalog edits reach
// running instances before entries expire.
type CurrencyCacheRefreshJob struct {
	cache    currencyCache
	schedule string
	timeout  time.Duration
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewCurrencyCacheRefreshJob creates a job refreshing cache on a six-field cron schedule.
// Each run is bounded by timeout. Overlapping runs are skipped.
func NewCurrencyCacheRefreshJob(cache currencyCache, schedule string, timeout time.Duration, logger *slog.Logger) *CurrencyCacheRefreshJob {
	return &CurrencyCacheRefreshJob{
		cache:    cache,
		schedule: schedule,
		timeout:  timeout,
		cron:     cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger:   logger.With("component", "currency_cache_refresh_job"),
	}
}

// Start warms the cache once and then refreshes it on schedule.
// A failed warm-up is logged; lookups fall through to the database.
func (j *CurrencyCacheRefreshJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, j.Run); err != nil {
		return err
	}

	j.Run()
	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Currency cache refresh job started", "schedule", j.schedule)
	return nil
}

// Run performs one refresh.
func (j *CurrencyCacheRefreshJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	loaded, err := j.cache.Refresh(ctx)
	if err != nil {
		j.logger.ErrorContext(ctx, "Currency cache refresh failed", "error", err)
		return
	}
	j.logger.DebugContext(ctx, "Currency cache refreshed", "currencies", loaded)
}

// Stop waits for a running refresh to finish.
func (j *CurrencyCacheRefreshJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Currency cache refresh job stopped")
}

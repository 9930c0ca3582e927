// Package jobs provides scheduled background tasks for the basket service.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
// Schedules are six-field specs (with seconds).
//
// # Available Jobs
//
// 1. OutboxRelayJob - publishes committed order.changed events from the outbox to Kafka
// 2. CurrencyCacheRefreshJob - reloads the shared currency cache from the catalog
//
// # Usage
//
//	jobManager := jobs.NewJobManager().
//		Add("outbox relay", jobs.NewOutboxRelayJob(relayHandler, cmd, "*/2 * * * * *", 5*time.Second, logger)).
//		Add("currency cache", jobs.NewCurrencyCacheRefreshJob(cache, "0 */5 * * * *", 5*time.Second, logger))
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// Failed runs are logged at error level and retried on the next tick.
// Overlapping runs are skipped rather than queued.
package jobs

// Package jobs provides scheduled background tasks for the fulfillment system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required by the order pipeline.
//
// # Available Jobs
//
// 1. CarrierPollJob - Periodically asks each carrier for the current status of
// every in-flight shipment and folds the answers into the order lifecycle.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with the configured jobs
//	jobManager := jobs.NewJobManager(carrierPollJob)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Scheduling
//
// The poll job takes a six-field cron expression from configuration. Polling
// is deliberately coarse (minutes, not seconds): webhooks carry the real-time
// updates, the poll only backstops them.
//
// # Error Handling
//
// - A failing shipment never blocks the rest of the polling batch
// - Unreachable carriers are logged as warnings; the next pass retries them
// - Failed job starts stop any already running jobs
package jobs

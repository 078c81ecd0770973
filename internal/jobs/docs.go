// Package jobs provides scheduled background tasks for the order service.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
//
// # Available Jobs
//
// 1. OutboxRelayJob - publishes pending outbox messages to the broker, with backoff on failure
// 2. ReconciliationJob - archives terminal orders left unarchived and repairs projections
// 3. CodeSweepJob - drops expired verification codes from the in-memory store
//
// # Usage
//
//	jobManager := jobs.NewJobManager(relayJob, reconciliationJob, sweepJob)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Scheduling
//
// Schedules are six-field cron expressions (seconds first) or descriptors such as
// "@every 5s". A tick that fires while the previous run is still going is skipped.
//
// # Error Handling
//
// Failed runs are logged and counted by the Recorder; the next tick retries.
package jobs

// Package jobs provides scheduled background tasks for the dispatch system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required for the dispatch office.
//
// # Available Jobs
//
// 1. PendingNotificationJob - Runs every 30 seconds to flag orders that sat unassigned past the notification threshold
// 2. StaleOrderAlertJob - Runs every minute to warn about in-flight orders that stopped progressing
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(notifyHandler, orderRepo, systemActorID, notifyAfter, staleAfter, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Error Handling
//
// - The notification sweep treats conflicts as expected: an order claimed mid-sweep is simply skipped
// - The stale order watchdog is read only and logs warnings; operators decide how to intervene
// - Failed job starts will stop any already running jobs
package jobs

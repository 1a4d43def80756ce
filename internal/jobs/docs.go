// Package jobs provides scheduled background tasks for the marketplace.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations the order lifecycle cannot trigger itself.
//
// # Available Jobs
//
// 1. StalledDeliveryJob - Sweeps self-deliveries whose worker never departed
// within the stall window and hands them back to the deliverer board,
// settling the worker's evaluation leg.
//
// 2. WaitingReminderJob - Reminds clients about orders still waiting for a
// worker or deliverer to claim them.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(releaseStalledHandler, remindWaitingHandler, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Error Handling
//
// Job runs log failures and wait for the next tick; the sweep processes each
// order in its own transaction so one bad order cannot block the rest.
package jobs

package jobs

import (
	"fmt"

	"carveyor/internal/core/application/usecases/commands"

	"go.uber.org/zap"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	stalledDeliveryJob *StalledDeliveryJob
	waitingReminderJob *WaitingReminderJob
}

// NewJobManager creates a new job manager with all required jobs.
// Takes command handlers as dependencies to wire up the job execution.
func NewJobManager(
	releaseStalledHandler commands.ReleaseStalledDeliveriesCommandHandler,
	remindWaitingHandler commands.RemindWaitingOrdersCommandHandler,
	logger *zap.Logger,
) *JobManager {
	return &JobManager{
		stalledDeliveryJob: NewStalledDeliveryJob(releaseStalledHandler, logger),
		waitingReminderJob: NewWaitingReminderJob(remindWaitingHandler, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.stalledDeliveryJob.Start(); err != nil {
		return fmt.Errorf("failed to start stalled delivery sweep: %w", err)
	}

	if err := jm.waitingReminderJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.stalledDeliveryJob.Stop()
		return fmt.Errorf("failed to start waiting order reminders: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.waitingReminderJob.Stop()
	jm.stalledDeliveryJob.Stop()
}

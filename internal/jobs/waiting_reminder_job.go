package jobs

import (
	"context"

	"carveyor/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// waitingReminderSchedule is how often clients are reminded of orders still
// waiting for assignment.
const waitingReminderSchedule = "@every 1h"

// WaitingReminderJob periodically notifies clients about orders nobody has
// claimed yet.
type WaitingReminderJob struct {
	handler commands.RemindWaitingOrdersCommandHandler
	cron    *cron.Cron
	logger  *zap.Logger
}

// NewWaitingReminderJob creates the reminder job.
func NewWaitingReminderJob(
	handler commands.RemindWaitingOrdersCommandHandler,
	logger *zap.Logger,
) *WaitingReminderJob {
	return &WaitingReminderJob{
		handler: handler,
		cron:    cron.New(),
		logger:  logger.With(zap.String("component", "waiting_reminder_job")),
	}
}

// Start schedules the reminder run.
func (j *WaitingReminderJob) Start() error {
	_, err := j.cron.AddFunc(waitingReminderSchedule, func() {
		ctx := context.Background()
		cmd := commands.NewRemindWaitingOrdersCommand()

		if err := j.handler.Handle(ctx, cmd); err != nil {
			j.logger.Error("waiting order reminder run failed", zap.Error(err))
		}
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("waiting order reminders started",
		zap.String("schedule", waitingReminderSchedule))
	return nil
}

// Stop stops the reminder runs.
func (j *WaitingReminderJob) Stop() {
	j.cron.Stop()
	j.logger.Info("waiting order reminders stopped")
}

package jobs

import (
	"context"

	"carveyor/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// stalledDeliverySchedule is how often the sweep for stalled self-deliveries
// runs. The stall window is a day, so a coarse schedule is enough.
const stalledDeliverySchedule = "@every 10m"

// StalledDeliveryJob periodically releases self-deliveries whose worker
// never departed: the evaluation leg settles and the delivery leg goes back
// on the board for another deliverer.
type StalledDeliveryJob struct {
	handler commands.ReleaseStalledDeliveriesCommandHandler
	cron    *cron.Cron
	logger  *zap.Logger
}

// NewStalledDeliveryJob creates the sweep job.
func NewStalledDeliveryJob(
	handler commands.ReleaseStalledDeliveriesCommandHandler,
	logger *zap.Logger,
) *StalledDeliveryJob {
	return &StalledDeliveryJob{
		handler: handler,
		cron:    cron.New(),
		logger:  logger.With(zap.String("component", "stalled_delivery_job")),
	}
}

// Start schedules the sweep.
func (j *StalledDeliveryJob) Start() error {
	_, err := j.cron.AddFunc(stalledDeliverySchedule, func() {
		ctx := context.Background()
		cmd := commands.NewReleaseStalledDeliveriesCommand()

		if err := j.handler.Handle(ctx, cmd); err != nil {
			j.logger.Error("stalled delivery sweep failed", zap.Error(err))
		}
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("stalled delivery sweep started",
		zap.String("schedule", stalledDeliverySchedule))
	return nil
}

// Stop stops the sweep.
func (j *StalledDeliveryJob) Stop() {
	j.cron.Stop()
	j.logger.Info("stalled delivery sweep stopped")
}

package cmd

import (
	"time"

	httpapi "carveyor/internal/adapters/in/http"
	"carveyor/internal/adapters/out/costsvc"
	"carveyor/internal/adapters/out/notifier"
	"carveyor/internal/adapters/out/postgres"
	"carveyor/internal/core/application/usecases/commands"
	"carveyor/internal/core/application/usecases/queries"
	"carveyor/internal/core/ports"
	"carveyor/internal/jobs"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

const collaboratorTimeout = 5 * time.Second

type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	costLookup ports.DeliveryCostLookup
	notifier   ports.Notifier
	logger     *zap.Logger
}

func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *zap.Logger) (CompositionRoot, error) {
	costLookup, err := costsvc.NewRestyDeliveryCostClient(config.CostServiceURL, collaboratorTimeout)
	if err != nil {
		return CompositionRoot{}, err
	}

	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		costLookup: costLookup,
		notifier:   notifier.NewWebhookNotifier(config.NotificationGatewayURL, collaboratorTimeout, logger),
		logger:     logger,
	}, nil
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.uowFactory.Full(), c.costLookup, c.notifier)
}

func (c *CompositionRoot) CreateAssignActorCommandHandler() commands.AssignActorCommandHandler {
	return commands.NewAssignActorCommandHandler(c.uowFactory.Full(), c.notifier)
}

func (c *CompositionRoot) CreateStartWorkCommandHandler() commands.StartWorkCommandHandler {
	return commands.NewStartWorkCommandHandler(c.uowFactory.Order(), c.notifier)
}

func (c *CompositionRoot) CreateRecordEvaluationArtifactCommandHandler() commands.RecordEvaluationArtifactCommandHandler {
	return commands.NewRecordEvaluationArtifactCommandHandler(c.uowFactory.Order())
}

func (c *CompositionRoot) CreateFinishEvaluationCommandHandler() commands.FinishEvaluationCommandHandler {
	return commands.NewFinishEvaluationCommandHandler(c.uowFactory.Order(), c.notifier)
}

func (c *CompositionRoot) CreateDecidePurchaseCommandHandler() commands.DecidePurchaseCommandHandler {
	return commands.NewDecidePurchaseCommandHandler(c.uowFactory.Full(), c.notifier)
}

func (c *CompositionRoot) CreateHandoverDeliveryCommandHandler() commands.HandoverDeliveryCommandHandler {
	return commands.NewHandoverDeliveryCommandHandler(c.uowFactory.Full(), c.notifier)
}

func (c *CompositionRoot) CreateDepartDeliveryCommandHandler() commands.DepartDeliveryCommandHandler {
	return commands.NewDepartDeliveryCommandHandler(c.uowFactory.Order(), c.notifier)
}

func (c *CompositionRoot) CreateArriveDeliveryCommandHandler() commands.ArriveDeliveryCommandHandler {
	return commands.NewArriveDeliveryCommandHandler(c.uowFactory.Full(), c.notifier)
}

func (c *CompositionRoot) CreateConfirmReceiptCommandHandler() commands.ConfirmReceiptCommandHandler {
	return commands.NewConfirmReceiptCommandHandler(c.uowFactory.Full(), c.notifier)
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() commands.CancelOrderCommandHandler {
	return commands.NewCancelOrderCommandHandler(c.uowFactory.Full(), c.notifier)
}

func (c *CompositionRoot) CreateAddAdHocCostCommandHandler() commands.AddAdHocCostCommandHandler {
	return commands.NewAddAdHocCostCommandHandler(c.uowFactory.Order())
}

func (c *CompositionRoot) CreateDepositCommandHandler() commands.DepositCommandHandler {
	return commands.NewDepositCommandHandler(c.uowFactory.Ledger())
}

func (c *CompositionRoot) CreateRequestWithdrawalCommandHandler() commands.RequestWithdrawalCommandHandler {
	return commands.NewRequestWithdrawalCommandHandler(c.uowFactory.Ledger())
}

func (c *CompositionRoot) CreateReleaseStalledDeliveriesCommandHandler() commands.ReleaseStalledDeliveriesCommandHandler {
	return commands.NewReleaseStalledDeliveriesCommandHandler(c.uowFactory.Full(), c.notifier)
}

func (c *CompositionRoot) CreateRemindWaitingOrdersCommandHandler() commands.RemindWaitingOrdersCommandHandler {
	return commands.NewRemindWaitingOrdersCommandHandler(c.uowFactory.Order(), c.notifier)
}

func (c *CompositionRoot) CreateGetWaitingOrdersQueryHandler() queries.GetWaitingOrdersQueryHandler {
	return queries.NewGetWaitingOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetBalanceQueryHandler() queries.GetBalanceQueryHandler {
	return queries.NewGetBalanceQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetLedgerQueryHandler() queries.GetLedgerQueryHandler {
	return queries.NewGetLedgerQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetMonthlySettlementsQueryHandler() queries.GetMonthlySettlementsQueryHandler {
	return queries.NewGetMonthlySettlementsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateHTTPServer() *httpapi.Server {
	return httpapi.NewServer(
		c.CreateCreateOrderCommandHandler(),
		c.CreateAssignActorCommandHandler(),
		c.CreateStartWorkCommandHandler(),
		c.CreateRecordEvaluationArtifactCommandHandler(),
		c.CreateFinishEvaluationCommandHandler(),
		c.CreateDecidePurchaseCommandHandler(),
		c.CreateHandoverDeliveryCommandHandler(),
		c.CreateDepartDeliveryCommandHandler(),
		c.CreateArriveDeliveryCommandHandler(),
		c.CreateConfirmReceiptCommandHandler(),
		c.CreateCancelOrderCommandHandler(),
		c.CreateAddAdHocCostCommandHandler(),
		c.CreateDepositCommandHandler(),
		c.CreateRequestWithdrawalCommandHandler(),
		c.CreateGetWaitingOrdersQueryHandler(),
		c.CreateGetBalanceQueryHandler(),
		c.CreateGetLedgerQueryHandler(),
		c.CreateGetMonthlySettlementsQueryHandler(),
	)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		c.CreateReleaseStalledDeliveriesCommandHandler(),
		c.CreateRemindWaitingOrdersCommandHandler(),
		c.logger,
	)
}

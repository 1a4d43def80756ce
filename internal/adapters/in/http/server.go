// Package http exposes the order lifecycle and balance operations as a REST
// API on echo. Handlers translate requests into commands and queries, and map
// domain errors onto HTTP statuses.
package http

import (
	"errors"
	"net/http"
	"time"

	"carveyor/internal/core/application/usecases/commands"
	"carveyor/internal/core/application/usecases/queries"
	"carveyor/internal/core/domain/model/actor"
	"carveyor/internal/core/domain/model/kernel"
	"carveyor/internal/core/domain/model/ledger"
	"carveyor/internal/core/domain/model/order"
	"carveyor/internal/core/domain/model/settlement"
	"carveyor/internal/pkg/errs"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	createOrderHandler       commands.CreateOrderCommandHandler
	assignActorHandler       commands.AssignActorCommandHandler
	startWorkHandler         commands.StartWorkCommandHandler
	recordArtifactHandler    commands.RecordEvaluationArtifactCommandHandler
	finishEvaluationHandler  commands.FinishEvaluationCommandHandler
	decidePurchaseHandler    commands.DecidePurchaseCommandHandler
	handoverDeliveryHandler  commands.HandoverDeliveryCommandHandler
	departDeliveryHandler    commands.DepartDeliveryCommandHandler
	arriveDeliveryHandler    commands.ArriveDeliveryCommandHandler
	confirmReceiptHandler    commands.ConfirmReceiptCommandHandler
	cancelOrderHandler       commands.CancelOrderCommandHandler
	addAdHocCostHandler      commands.AddAdHocCostCommandHandler
	depositHandler           commands.DepositCommandHandler
	requestWithdrawalHandler commands.RequestWithdrawalCommandHandler

	getWaitingOrdersHandler      queries.GetWaitingOrdersQueryHandler
	getBalanceHandler            queries.GetBalanceQueryHandler
	getLedgerHandler             queries.GetLedgerQueryHandler
	getMonthlySettlementsHandler queries.GetMonthlySettlementsQueryHandler

	validate *validator.Validate
}

// NewServer creates an HTTP server with the required command and query
// handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	assignActorHandler commands.AssignActorCommandHandler,
	startWorkHandler commands.StartWorkCommandHandler,
	recordArtifactHandler commands.RecordEvaluationArtifactCommandHandler,
	finishEvaluationHandler commands.FinishEvaluationCommandHandler,
	decidePurchaseHandler commands.DecidePurchaseCommandHandler,
	handoverDeliveryHandler commands.HandoverDeliveryCommandHandler,
	departDeliveryHandler commands.DepartDeliveryCommandHandler,
	arriveDeliveryHandler commands.ArriveDeliveryCommandHandler,
	confirmReceiptHandler commands.ConfirmReceiptCommandHandler,
	cancelOrderHandler commands.CancelOrderCommandHandler,
	addAdHocCostHandler commands.AddAdHocCostCommandHandler,
	depositHandler commands.DepositCommandHandler,
	requestWithdrawalHandler commands.RequestWithdrawalCommandHandler,
	getWaitingOrdersHandler queries.GetWaitingOrdersQueryHandler,
	getBalanceHandler queries.GetBalanceQueryHandler,
	getLedgerHandler queries.GetLedgerQueryHandler,
	getMonthlySettlementsHandler queries.GetMonthlySettlementsQueryHandler,
) *Server {
	return &Server{
		createOrderHandler:           createOrderHandler,
		assignActorHandler:           assignActorHandler,
		startWorkHandler:             startWorkHandler,
		recordArtifactHandler:        recordArtifactHandler,
		finishEvaluationHandler:      finishEvaluationHandler,
		decidePurchaseHandler:        decidePurchaseHandler,
		handoverDeliveryHandler:      handoverDeliveryHandler,
		departDeliveryHandler:        departDeliveryHandler,
		arriveDeliveryHandler:        arriveDeliveryHandler,
		confirmReceiptHandler:        confirmReceiptHandler,
		cancelOrderHandler:           cancelOrderHandler,
		addAdHocCostHandler:          addAdHocCostHandler,
		depositHandler:               depositHandler,
		requestWithdrawalHandler:     requestWithdrawalHandler,
		getWaitingOrdersHandler:      getWaitingOrdersHandler,
		getBalanceHandler:            getBalanceHandler,
		getLedgerHandler:             getLedgerHandler,
		getMonthlySettlementsHandler: getMonthlySettlementsHandler,
		validate:                     validator.New(),
	}
}

// RegisterRoutes mounts all API routes under /api/v1.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/orders", s.CreateOrder)
	api.GET("/orders/waiting", s.GetWaitingOrders)
	api.POST("/orders/:orderID/assignment", s.AssignActor)
	api.POST("/orders/:orderID/work", s.StartWork)
	api.POST("/orders/:orderID/evaluation/artifacts", s.RecordEvaluationArtifact)
	api.POST("/orders/:orderID/evaluation/completion", s.FinishEvaluation)
	api.POST("/orders/:orderID/purchase-decision", s.DecidePurchase)
	api.POST("/orders/:orderID/delivery/handover", s.HandoverDelivery)
	api.POST("/orders/:orderID/delivery/departure", s.DepartDelivery)
	api.POST("/orders/:orderID/delivery/arrival", s.ArriveDelivery)
	api.POST("/orders/:orderID/receipt-confirmation", s.ConfirmReceipt)
	api.POST("/orders/:orderID/cancellation", s.CancelOrder)
	api.POST("/orders/:orderID/costs", s.AddAdHocCost)

	api.POST("/actors/:actorID/deposits", s.Deposit)
	api.POST("/actors/:actorID/withdrawals", s.RequestWithdrawal)
	api.GET("/actors/:actorID/balance", s.GetBalance)
	api.GET("/actors/:actorID/ledger", s.GetLedger)
	api.GET("/actors/:actorID/settlements/:year/:month", s.GetMonthlySettlements)
}

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var req createOrderRequest
	if err := s.bind(ctx, &req); err != nil {
		return badRequest(ctx, err)
	}

	clientID, err := kernel.UUIDFromString(req.ClientID)
	if err != nil {
		return badRequest(ctx, err)
	}
	kind, err := parseOrderKind(req.Kind)
	if err != nil {
		return badRequest(ctx, err)
	}
	source, err := kernel.NewAddress(req.Source.Road, req.Source.Detail)
	if err != nil {
		return badRequest(ctx, err)
	}
	destination, err := kernel.NewAddress(req.Destination.Road, req.Destination.Detail)
	if err != nil {
		return badRequest(ctx, err)
	}
	stopovers := make([]kernel.Address, 0, len(req.Stopovers))
	for _, stop := range req.Stopovers {
		address, addressErr := kernel.NewAddress(stop.Road, stop.Detail)
		if addressErr != nil {
			return badRequest(ctx, addressErr)
		}
		stopovers = append(stopovers, address)
	}
	costs, err := req.toCosts()
	if err != nil {
		return badRequest(ctx, err)
	}

	cmd, err := commands.NewCreateOrderCommand(
		clientID, kind, source, destination, stopovers, costs,
		req.IsOnsitePayment, req.SkipReceiptConfirmation, req.HookURL)
	if err != nil {
		return badRequest(ctx, err)
	}

	if err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, orderCreatedResponse{OrderID: cmd.OrderID().String()})
}

// AssignActor handles POST /api/v1/orders/:orderID/assignment. The actor
// claims the waiting leg; the assignment fee moves into escrow in the same
// transaction.
func (s *Server) AssignActor(ctx echo.Context) error {
	orderID, actorID, err := s.orderActorParams(ctx)
	if err != nil {
		return badRequest(ctx, err)
	}

	cmd, err := commands.NewAssignActorCommand(orderID, actorID)
	if err != nil {
		return badRequest(ctx, err)
	}

	if err := s.assignActorHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// StartWork handles POST /api/v1/orders/:orderID/work.
func (s *Server) StartWork(ctx echo.Context) error {
	orderID, actorID, err := s.orderActorParams(ctx)
	if err != nil {
		return badRequest(ctx, err)
	}

	cmd, err := commands.NewStartWorkCommand(orderID, actorID)
	if err != nil {
		return badRequest(ctx, err)
	}

	if err := s.startWorkHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// RecordEvaluationArtifact handles POST /api/v1/orders/:orderID/evaluation/artifacts.
func (s *Server) RecordEvaluationArtifact(ctx echo.Context) error {
	orderID, actorID, err := s.orderActorParams(ctx)
	if err != nil {
		return badRequest(ctx, err)
	}

	cmd, err := commands.NewRecordEvaluationArtifactCommand(orderID, actorID)
	if err != nil {
		return badRequest(ctx, err)
	}

	if err := s.recordArtifactHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// FinishEvaluation handles POST /api/v1/orders/:orderID/evaluation/completion.
func (s *Server) FinishEvaluation(ctx echo.Context) error {
	orderID, actorID, err := s.orderActorParams(ctx)
	if err != nil {
		return badRequest(ctx, err)
	}

	cmd, err := commands.NewFinishEvaluationCommand(orderID, actorID)
	if err != nil {
		return badRequest(ctx, err)
	}

	if err := s.finishEvaluationHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// DecidePurchase handles POST /api/v1/orders/:orderID/purchase-decision.
func (s *Server) DecidePurchase(ctx echo.Context) error {
	orderID, err := s.uuidParam(ctx, "orderID")
	if err != nil {
		return badRequest(ctx, err)
	}
	var req purchaseDecisionRequest
	if err := s.bind(ctx, &req); err != nil {
		return badRequest(ctx, err)
	}
	clientID, err := kernel.UUIDFromString(req.ClientID)
	if err != nil {
		return badRequest(ctx, err)
	}

	cmd, err := commands.NewDecidePurchaseCommand(orderID, clientID, *req.Purchasing)
	if err != nil {
		return badRequest(ctx, err)
	}

	if err := s.decidePurchaseHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// HandoverDelivery handles POST /api/v1/orders/:orderID/delivery/handover.
// The worker settles their leg and releases the delivery to a deliverer.
func (s *Server) HandoverDelivery(ctx echo.Context) error {
	orderID, actorID, err := s.orderActorParams(ctx)
	if err != nil {
		return badRequest(ctx, err)
	}

	cmd, err := commands.NewHandoverDeliveryCommand(orderID, actorID)
	if err != nil {
		return badRequest(ctx, err)
	}

	if err := s.handoverDeliveryHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// DepartDelivery handles POST /api/v1/orders/:orderID/delivery/departure.
func (s *Server) DepartDelivery(ctx echo.Context) error {
	orderID, err := s.uuidParam(ctx, "orderID")
	if err != nil {
		return badRequest(ctx, err)
	}
	var req mileageRequest
	if err := s.bind(ctx, &req); err != nil {
		return badRequest(ctx, err)
	}
	actorID, err := kernel.UUIDFromString(req.ActorID)
	if err != nil {
		return badRequest(ctx, err)
	}

	cmd, err := commands.NewDepartDeliveryCommand(orderID, actorID, req.Mileage)
	if err != nil {
		return badRequest(ctx, err)
	}

	if err := s.departDeliveryHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// ArriveDelivery handles POST /api/v1/orders/:orderID/delivery/arrival.
func (s *Server) ArriveDelivery(ctx echo.Context) error {
	orderID, err := s.uuidParam(ctx, "orderID")
	if err != nil {
		return badRequest(ctx, err)
	}
	var req mileageRequest
	if err := s.bind(ctx, &req); err != nil {
		return badRequest(ctx, err)
	}
	actorID, err := kernel.UUIDFromString(req.ActorID)
	if err != nil {
		return badRequest(ctx, err)
	}

	cmd, err := commands.NewArriveDeliveryCommand(orderID, actorID, req.Mileage)
	if err != nil {
		return badRequest(ctx, err)
	}

	if err := s.arriveDeliveryHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// ConfirmReceipt handles POST /api/v1/orders/:orderID/receipt-confirmation.
func (s *Server) ConfirmReceipt(ctx echo.Context) error {
	orderID, err := s.uuidParam(ctx, "orderID")
	if err != nil {
		return badRequest(ctx, err)
	}
	var req clientActionRequest
	if err := s.bind(ctx, &req); err != nil {
		return badRequest(ctx, err)
	}
	clientID, err := kernel.UUIDFromString(req.ClientID)
	if err != nil {
		return badRequest(ctx, err)
	}

	cmd, err := commands.NewConfirmReceiptCommand(orderID, clientID)
	if err != nil {
		return badRequest(ctx, err)
	}

	if err := s.confirmReceiptHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// CancelOrder handles POST /api/v1/orders/:orderID/cancellation.
func (s *Server) CancelOrder(ctx echo.Context) error {
	orderID, err := s.uuidParam(ctx, "orderID")
	if err != nil {
		return badRequest(ctx, err)
	}

	cmd, err := commands.NewCancelOrderCommand(orderID)
	if err != nil {
		return badRequest(ctx, err)
	}

	if err := s.cancelOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// AddAdHocCost handles POST /api/v1/orders/:orderID/costs.
func (s *Server) AddAdHocCost(ctx echo.Context) error {
	orderID, err := s.uuidParam(ctx, "orderID")
	if err != nil {
		return badRequest(ctx, err)
	}
	var req adHocCostRequest
	if err := s.bind(ctx, &req); err != nil {
		return badRequest(ctx, err)
	}
	actorID, err := kernel.UUIDFromString(req.ActorID)
	if err != nil {
		return badRequest(ctx, err)
	}
	amount, err := kernel.NewMoney(req.Amount)
	if err != nil {
		return badRequest(ctx, err)
	}
	phase, err := parseWorkPhase(req.Phase)
	if err != nil {
		return badRequest(ctx, err)
	}

	cmd, err := commands.NewAddAdHocCostCommand(orderID, actorID, req.Name, amount, phase)
	if err != nil {
		return badRequest(ctx, err)
	}

	if err := s.addAdHocCostHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// Deposit handles POST /api/v1/actors/:actorID/deposits.
func (s *Server) Deposit(ctx echo.Context) error {
	actorID, err := s.uuidParam(ctx, "actorID")
	if err != nil {
		return badRequest(ctx, err)
	}
	var req amountRequest
	if err := s.bind(ctx, &req); err != nil {
		return badRequest(ctx, err)
	}
	amount, err := kernel.NewMoney(req.Amount)
	if err != nil {
		return badRequest(ctx, err)
	}

	cmd, err := commands.NewDepositCommand(actorID, amount)
	if err != nil {
		return badRequest(ctx, err)
	}

	if err := s.depositHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// RequestWithdrawal handles POST /api/v1/actors/:actorID/withdrawals.
func (s *Server) RequestWithdrawal(ctx echo.Context) error {
	actorID, err := s.uuidParam(ctx, "actorID")
	if err != nil {
		return badRequest(ctx, err)
	}
	var req amountRequest
	if err := s.bind(ctx, &req); err != nil {
		return badRequest(ctx, err)
	}
	amount, err := kernel.NewMoney(req.Amount)
	if err != nil {
		return badRequest(ctx, err)
	}

	cmd, err := commands.NewRequestWithdrawalCommand(actorID, amount)
	if err != nil {
		return badRequest(ctx, err)
	}

	if err := s.requestWithdrawalHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// GetWaitingOrders handles GET /api/v1/orders/waiting - lists claimable orders.
func (s *Server) GetWaitingOrders(ctx echo.Context) error {
	query := queries.NewGetWaitingOrdersQuery()

	rows, err := s.getWaitingOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return domainError(ctx, err)
	}

	response := make([]waitingOrderResponse, len(rows))
	for i, row := range rows {
		response[i] = toWaitingOrderResponse(row)
	}
	return ctx.JSON(http.StatusOK, response)
}

// GetBalance handles GET /api/v1/actors/:actorID/balance.
func (s *Server) GetBalance(ctx echo.Context) error {
	actorID, err := s.uuidParam(ctx, "actorID")
	if err != nil {
		return badRequest(ctx, err)
	}

	query, err := queries.NewGetBalanceQuery(actorID)
	if err != nil {
		return badRequest(ctx, err)
	}

	result, err := s.getBalanceHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return domainError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, balanceResponse{
		ActorID:      result.ActorID.String(),
		Balance:      result.Balance.Int64(),
		HeldInEscrow: result.HeldInEscrow.Int64(),
	})
}

// GetLedger handles GET /api/v1/actors/:actorID/ledger?from=...&to=...
// The window bounds are RFC 3339 timestamps; from is inclusive, to exclusive.
func (s *Server) GetLedger(ctx echo.Context) error {
	actorID, err := s.uuidParam(ctx, "actorID")
	if err != nil {
		return badRequest(ctx, err)
	}
	from, err := time.Parse(time.RFC3339, ctx.QueryParam("from"))
	if err != nil {
		return badRequest(ctx, err)
	}
	to, err := time.Parse(time.RFC3339, ctx.QueryParam("to"))
	if err != nil {
		return badRequest(ctx, err)
	}

	query, err := queries.NewGetLedgerQuery(actorID, from, to)
	if err != nil {
		return badRequest(ctx, err)
	}

	entries, err := s.getLedgerHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return domainError(ctx, err)
	}

	response := make([]ledgerEntryResponse, len(entries))
	for i, entry := range entries {
		response[i] = ledgerEntryResponse{
			ID:           entry.ID.String(),
			Kind:         entry.Kind.String(),
			Amount:       entry.Amount.Int64(),
			BalanceAfter: entry.BalanceAfter.Int64(),
			OccurredAt:   entry.OccurredAt.Format(time.RFC3339),
		}
		if entry.OrderID != nil {
			orderID := entry.OrderID.String()
			response[i].OrderID = &orderID
		}
		if entry.Role != ledger.RoleNone {
			response[i].Role = entry.Role.String()
		}
	}
	return ctx.JSON(http.StatusOK, response)
}

// GetMonthlySettlements handles GET /api/v1/actors/:actorID/settlements/:year/:month.
func (s *Server) GetMonthlySettlements(ctx echo.Context) error {
	actorID, err := s.uuidParam(ctx, "actorID")
	if err != nil {
		return badRequest(ctx, err)
	}
	var year, month int
	if err := echo.PathParamsBinder(ctx).
		Int("year", &year).
		Int("month", &month).
		BindError(); err != nil {
		return badRequest(ctx, err)
	}

	query, err := queries.NewGetMonthlySettlementsQuery(actorID, year, time.Month(month))
	if err != nil {
		return badRequest(ctx, err)
	}

	result, err := s.getMonthlySettlementsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return domainError(ctx, err)
	}

	response := monthlyStatementResponse{
		ActorID:       result.ActorID.String(),
		Year:          result.Year,
		Month:         int(result.Month),
		Settlements:   make([]settlementRowResponse, len(result.Settlements)),
		Referrals:     make([]referralRowResponse, len(result.Referrals)),
		TotalRevenue:  result.TotalRevenue.Int64(),
		TotalWithheld: result.TotalWithheld.Int64(),
		TotalNet:      result.TotalNet.Int64(),
	}
	for i, row := range result.Settlements {
		response.Settlements[i] = settlementRowResponse{
			OrderID:              row.OrderID.String(),
			Leg:                  row.Leg.String(),
			Revenue:              row.Revenue.Int64(),
			WithholdingTax:       row.WithholdingTax.Int64(),
			InsuranceWithholding: row.InsuranceWithholding.Int64(),
			NetRevenue:           row.NetRevenue.Int64(),
			IsOnsitePayment:      row.IsOnsitePayment,
			SettledAt:            row.SettledAt.Format(time.RFC3339),
		}
	}
	for i, row := range result.Referrals {
		response.Referrals[i] = referralRowResponse{
			OrderID:         row.OrderID.String(),
			ReferredActorID: row.ReferredActorID.String(),
			Amount:          row.Amount.Int64(),
			WithholdingTax:  row.WithholdingTax.Int64(),
			NetAmount:       row.NetAmount.Int64(),
			SettledAt:       row.SettledAt.Format(time.RFC3339),
		}
	}
	return ctx.JSON(http.StatusOK, response)
}

func (s *Server) bind(ctx echo.Context, req any) error {
	if err := ctx.Bind(req); err != nil {
		return err
	}
	return s.validate.Struct(req)
}

func (s *Server) uuidParam(ctx echo.Context, name string) (kernel.UUID, error) {
	return kernel.UUIDFromString(ctx.Param(name))
}

func (s *Server) orderActorParams(ctx echo.Context) (kernel.UUID, kernel.UUID, error) {
	orderID, err := s.uuidParam(ctx, "orderID")
	if err != nil {
		return kernel.UUID{}, kernel.UUID{}, err
	}
	var req actorActionRequest
	if err := s.bind(ctx, &req); err != nil {
		return kernel.UUID{}, kernel.UUID{}, err
	}
	actorID, err := kernel.UUIDFromString(req.ActorID)
	if err != nil {
		return kernel.UUID{}, kernel.UUID{}, err
	}
	return orderID, actorID, nil
}

func badRequest(ctx echo.Context, err error) error {
	return ctx.JSON(http.StatusBadRequest, errorResponse{
		Code:    http.StatusBadRequest,
		Message: err.Error(),
	})
}

// domainError maps a use case failure onto an HTTP status. Missing aggregates
// become 404, authorization failures 403, state and money conflicts 409, and
// anything unrecognized 500.
func domainError(ctx echo.Context, err error) error {
	status := statusForError(err)
	return ctx.JSON(status, errorResponse{
		Code:    status,
		Message: err.Error(),
	})
}

func statusForError(err error) int {
	var notFound *errs.ObjectNotFoundError
	var invalid *errs.ValueIsInvalidError
	var required *errs.ValueIsRequiredError
	var outOfRange *errs.ValueIsOutOfRangeError

	switch {
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.Is(err, order.ErrActorNotAllowed):
		return http.StatusForbidden
	case errors.Is(err, order.ErrInvalidOrderStatus),
		errors.Is(err, order.ErrAlreadyCancelled),
		errors.Is(err, order.ErrEvaluationNotCompleted),
		errors.Is(err, ledger.ErrInsufficientBalance),
		errors.Is(err, ledger.ErrEscrowNotFound),
		errors.Is(err, ledger.ErrAlreadyRefunded),
		errors.Is(err, settlement.ErrDuplicateSettlement),
		errors.Is(err, actor.ErrInsuranceExpired),
		errors.Is(err, actor.ErrNotAWorker):
		return http.StatusConflict
	case errors.As(err, &invalid),
		errors.As(err, &required),
		errors.As(err, &outOfRange):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

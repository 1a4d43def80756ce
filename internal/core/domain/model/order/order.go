package order

import (
	"errors"
	"fmt"
	"time"

	"carveyor/internal/core/domain/model/kernel"
)

// Domain errors for order operations.
var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not
	// created through NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")
	// ErrActorNotAllowed is returned when the calling actor is not the one the
	// operation belongs to (wrong worker, deliverer, or client).
	ErrActorNotAllowed = errors.New("actor is not allowed to perform this operation")
	// ErrEvaluationNotCompleted is returned when finishing an evaluation that
	// has no recorded artifact.
	ErrEvaluationNotCompleted = errors.New("evaluation has no recorded artifact")
	// ErrAlreadyCancelled is returned when cancelling an order twice.
	ErrAlreadyCancelled = errors.New("order already cancelled")
)

// Costs is the monetary breakdown an order is created with. All amounts are
// currency minor units; absent costs are zero.
type Costs struct {
	Evaluation          kernel.Money
	Inspection          kernel.Money
	Delivering          kernel.Money
	AdditionalSuggested kernel.Money
}

// Order is the aggregate root for one service request: a vehicle evaluation,
// inspection, and/or delivery. It owns the lifecycle status and is the only
// place transitions are validated; money movement tied to a transition is
// coordinated by the application layer within the same unit of work.
//
// Invariants:
//   - status changes only through the transition table in status.go
//   - worker/deliverer presence is consistent with status and kind
//   - a DeliveryOnly order never has a worker distinct from its deliverer
//   - terminal statuses (Cancelled, Done) reject every event
type Order struct {
	id       kernel.UUID
	kind     Kind
	status   Status
	clientID kernel.UUID

	// workerID is the assigned evaluator/inspector (nil if unassigned).
	workerID *kernel.UUID
	// delivererID is the assigned driver (nil if unassigned). May equal
	// workerID when the worker keeps the delivery leg.
	delivererID *kernel.UUID
	// isDeliveryTransferred is set once the worker hands the delivery leg to a
	// separate deliverer; the evaluation leg is settled at that moment.
	isDeliveryTransferred bool

	source      kernel.Address
	destination kernel.Address
	stopovers   []kernel.Address
	// distance between source and destination in km, as reported by the
	// delivery-cost service. Zero when the lookup failed.
	distance float64
	// isCostUnresolved flags an order whose delivery-cost lookup failed at
	// creation; the cost defaulted to zero and needs manual attention.
	isCostUnresolved bool

	costs      Costs
	adHocCosts []AdHocCost

	// isOnsitePayment marks orders the payee collects in cash on site; their
	// settlement skips the revenue ledger entry.
	isOnsitePayment bool
	// skipReceiptConfirmation marks orders placed through an external
	// marketplace that complete on arrival without a client confirmation step.
	skipReceiptConfirmation bool
	// hookURL receives webhook notifications for externally placed orders.
	hookURL string

	evaluationArtifactCount int
	evaluationFinishedAt    time.Time
	deliveryDecidedAt       time.Time
	mileageBeforeDelivery   int64
	mileageAfterDelivery    int64

	isConstructed bool
}

// NewOrder creates an order in its initial waiting status, which depends on
// kind: DeliveryOnly orders wait for a deliverer, the rest wait for a worker.
func NewOrder(
	id kernel.UUID,
	kind Kind,
	clientID kernel.UUID,
	source kernel.Address,
	destination kernel.Address,
	stopovers []kernel.Address,
	costs Costs,
	isOnsitePayment bool,
	skipReceiptConfirmation bool,
	hookURL string,
) (*Order, error) {
	o := &Order{
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setKind(kind),
		o.setClientID(clientID),
		o.setRoute(source, destination, stopovers),
	); err != nil {
		return nil, err
	}

	o.status = kind.InitialStatus()
	o.costs = costs
	o.isOnsitePayment = isOnsitePayment
	o.skipReceiptConfirmation = skipReceiptConfirmation
	o.hookURL = hookURL
	return o, nil
}

// RestoreParams carries the full persisted state of an order for RestoreOrder.
type RestoreParams struct {
	ID                      kernel.UUID
	Kind                    Kind
	Status                  Status
	ClientID                kernel.UUID
	WorkerID                *kernel.UUID
	DelivererID             *kernel.UUID
	IsDeliveryTransferred   bool
	Source                  kernel.Address
	Destination             kernel.Address
	Stopovers               []kernel.Address
	Distance                float64
	IsCostUnresolved        bool
	Costs                   Costs
	AdHocCosts              []AdHocCost
	IsOnsitePayment         bool
	SkipReceiptConfirmation bool
	HookURL                 string
	EvaluationArtifactCount int
	EvaluationFinishedAt    time.Time
	DeliveryDecidedAt       time.Time
	MileageBeforeDelivery   int64
	MileageAfterDelivery    int64
}

// RestoreOrder reconstructs an Order aggregate from persistence.
func RestoreOrder(params RestoreParams) (*Order, error) {
	o := &Order{
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(params.ID),
		o.setKind(params.Kind),
		o.setClientID(params.ClientID),
		o.setRoute(params.Source, params.Destination, params.Stopovers),
		params.Status.Validate(),
	); err != nil {
		return nil, err
	}

	if params.WorkerID != nil {
		if err := params.WorkerID.Validate(); err != nil {
			return nil, err
		}
	}
	if params.DelivererID != nil {
		if err := params.DelivererID.Validate(); err != nil {
			return nil, err
		}
	}

	o.status = params.Status
	o.workerID = params.WorkerID
	o.delivererID = params.DelivererID
	o.isDeliveryTransferred = params.IsDeliveryTransferred
	o.distance = params.Distance
	o.isCostUnresolved = params.IsCostUnresolved
	o.costs = params.Costs
	o.adHocCosts = params.AdHocCosts
	o.isOnsitePayment = params.IsOnsitePayment
	o.skipReceiptConfirmation = params.SkipReceiptConfirmation
	o.hookURL = params.HookURL
	o.evaluationArtifactCount = params.EvaluationArtifactCount
	o.evaluationFinishedAt = params.EvaluationFinishedAt
	o.deliveryDecidedAt = params.DeliveryDecidedAt
	o.mileageBeforeDelivery = params.MileageBeforeDelivery
	o.mileageAfterDelivery = params.MileageAfterDelivery
	return o, nil
}

// Validate ensures the Order was created through a constructor.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by identifier.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// Kind returns the service type.
func (o *Order) Kind() Kind {
	return o.kind
}

// Status returns the current lifecycle status.
func (o *Order) Status() Status {
	return o.status
}

// Client returns the ordering client's id.
func (o *Order) Client() kernel.UUID {
	return o.clientID
}

// Worker returns the assigned evaluator/inspector id, or nil.
func (o *Order) Worker() *kernel.UUID {
	return o.workerID
}

// Deliverer returns the assigned driver id, or nil.
func (o *Order) Deliverer() *kernel.UUID {
	return o.delivererID
}

// IsDeliveryTransferred reports whether the delivery leg was handed over to a
// separate deliverer.
func (o *Order) IsDeliveryTransferred() bool {
	return o.isDeliveryTransferred
}

// Source returns the pickup address.
func (o *Order) Source() kernel.Address {
	return o.source
}

// Destination returns the delivery address.
func (o *Order) Destination() kernel.Address {
	return o.destination
}

// Stopovers returns the intermediate stops on the delivery route.
func (o *Order) Stopovers() []kernel.Address {
	return o.stopovers
}

// StopoverCount returns the number of intermediate stops.
func (o *Order) StopoverCount() int {
	return len(o.stopovers)
}

// Distance returns the source-destination distance in km (0 if unknown).
func (o *Order) Distance() float64 {
	return o.distance
}

// IsCostUnresolved reports whether the delivery-cost lookup failed at creation.
func (o *Order) IsCostUnresolved() bool {
	return o.isCostUnresolved
}

// Costs returns the order's base monetary breakdown.
func (o *Order) Costs() Costs {
	return o.costs
}

// AdHocCosts returns all recorded ad-hoc cost items.
func (o *Order) AdHocCosts() []AdHocCost {
	return o.adHocCosts
}

// AdHocCostsForPhase returns the ad-hoc cost items of one working phase.
func (o *Order) AdHocCostsForPhase(phase WorkPhase) []AdHocCost {
	result := make([]AdHocCost, 0, len(o.adHocCosts))
	for _, c := range o.adHocCosts {
		if c.Phase() == phase {
			result = append(result, c)
		}
	}
	return result
}

// IsOnsitePayment reports whether the payee collects payment in cash on site.
func (o *Order) IsOnsitePayment() bool {
	return o.isOnsitePayment
}

// SkipReceiptConfirmation reports whether the order completes on arrival
// without a client confirmation step.
func (o *Order) SkipReceiptConfirmation() bool {
	return o.skipReceiptConfirmation
}

// HookURL returns the webhook endpoint for externally placed orders, or "".
func (o *Order) HookURL() string {
	return o.hookURL
}

// EvaluationArtifactCount returns the number of recorded evaluation artifacts.
func (o *Order) EvaluationArtifactCount() int {
	return o.evaluationArtifactCount
}

// EvaluationFinishedAt returns when the evaluation finished (zero if not yet).
func (o *Order) EvaluationFinishedAt() time.Time {
	return o.evaluationFinishedAt
}

// DeliveryDecidedAt returns when the client decided to proceed with delivery
// (zero if not applicable).
func (o *Order) DeliveryDecidedAt() time.Time {
	return o.deliveryDecidedAt
}

// MileageBeforeDelivery returns the vehicle mileage recorded at departure.
func (o *Order) MileageBeforeDelivery() int64 {
	return o.mileageBeforeDelivery
}

// MileageAfterDelivery returns the vehicle mileage recorded at arrival.
func (o *Order) MileageAfterDelivery() int64 {
	return o.mileageAfterDelivery
}

// IsSelfDelivery reports whether the assigned worker also holds the delivery
// leg (purchase accepted or inspection finished, no handover yet).
func (o *Order) IsSelfDelivery() bool {
	return !o.isDeliveryTransferred &&
		o.workerID != nil && o.delivererID != nil &&
		o.workerID.IsEqual(*o.delivererID)
}

// Assign claims the order for the given actor: as worker when the order waits
// for one, as deliverer when the delivery leg waits for one. Returns
// asDeliverer=true for the latter so the caller can tag the fee escrow.
//
// Balance and insurance guards are enforced by the application layer before
// the escrow is reserved; this method only owns the status rules.
func (o *Order) Assign(actorID kernel.UUID) (asDeliverer bool, err error) {
	if err = actorID.Validate(); err != nil {
		return false, err
	}

	if o.status.CanApply(EventAssignWorker) {
		newStatus, transitionErr := o.status.Next(EventAssignWorker)
		if transitionErr != nil {
			return false, transitionErr
		}
		o.status = newStatus
		o.workerID = &actorID
		return false, nil
	}

	newStatus, transitionErr := o.status.Next(EventAssignDeliverer)
	if transitionErr != nil {
		return false, transitionErr
	}
	o.status = newStatus
	o.delivererID = &actorID
	return true, nil
}

// StartWork begins the evaluation/inspection. Only the assigned worker may
// start.
func (o *Order) StartWork(callerID kernel.UUID) error {
	if o.workerID == nil || !o.workerID.IsEqual(callerID) {
		return ErrActorNotAllowed
	}

	newStatus, err := o.status.Next(EventStartWork)
	if err != nil {
		return err
	}
	o.status = newStatus
	return nil
}

// RecordEvaluationArtifact registers one evaluation artifact (photo set,
// condition report). At least one artifact is required to finish the
// evaluation. Only the assigned worker may record, and only while evaluating.
func (o *Order) RecordEvaluationArtifact(callerID kernel.UUID) error {
	if o.workerID == nil || !o.workerID.IsEqual(callerID) {
		return ErrActorNotAllowed
	}
	if o.status != Evaluating {
		return fmt.Errorf("%w: cannot record artifact in status %s", ErrInvalidOrderStatus, o.status)
	}
	o.evaluationArtifactCount++
	return nil
}

// FinishEvaluation completes the evaluation or inspection. Evaluation orders
// move to the client's purchase decision; inspection orders proceed directly
// to delivery with the worker keeping the delivery leg.
func (o *Order) FinishEvaluation(callerID kernel.UUID, now time.Time) error {
	if o.workerID == nil || !o.workerID.IsEqual(callerID) {
		return ErrActorNotAllowed
	}
	if o.evaluationArtifactCount == 0 {
		return ErrEvaluationNotCompleted
	}

	event := EventFinishEvaluation
	if o.kind == KindInspectionDelivery {
		event = EventFinishInspection
	}

	newStatus, err := o.status.Next(event)
	if err != nil {
		return err
	}

	o.status = newStatus
	o.evaluationFinishedAt = now
	if event == EventFinishInspection {
		o.delivererID = o.workerID
	}
	return nil
}

// DecidePurchase records the client's purchase decision after an evaluation.
// Purchasing proceeds to delivery with the worker keeping the delivery leg;
// declining completes the order (the evaluation leg is settled by the caller
// within the same unit of work).
func (o *Order) DecidePurchase(callerID kernel.UUID, purchasing bool, now time.Time) error {
	if !o.clientID.IsEqual(callerID) {
		return ErrActorNotAllowed
	}

	event := EventDeclinePurchase
	if purchasing {
		event = EventAcceptPurchase
	}

	newStatus, err := o.status.Next(event)
	if err != nil {
		return err
	}

	o.status = newStatus
	if purchasing {
		o.delivererID = o.workerID
		o.deliveryDecidedAt = now
	}
	return nil
}

// HandoverDelivery releases the delivery leg to a separate deliverer: the
// order goes back to waiting for a deliverer and is marked transferred. The
// caller settles the evaluation leg within the same unit of work. Only the
// assigned worker may hand over.
func (o *Order) HandoverDelivery(callerID kernel.UUID) error {
	if o.workerID == nil || !o.workerID.IsEqual(callerID) {
		return ErrActorNotAllowed
	}

	newStatus, err := o.status.Next(EventHandoverDelivery)
	if err != nil {
		return err
	}

	o.status = newStatus
	o.isDeliveryTransferred = true
	o.delivererID = nil
	return nil
}

// Depart starts the delivery drive, recording the vehicle's mileage. Only the
// assigned deliverer may depart.
func (o *Order) Depart(callerID kernel.UUID, mileageBefore int64) error {
	if o.delivererID == nil || !o.delivererID.IsEqual(callerID) {
		return ErrActorNotAllowed
	}

	newStatus, err := o.status.Next(EventDepart)
	if err != nil {
		return err
	}

	o.status = newStatus
	o.mileageBeforeDelivery = mileageBefore
	return nil
}

// Arrive ends the delivery drive, recording the vehicle's mileage. Orders that
// skip the client confirmation step complete immediately; the caller settles
// the delivery leg within the same unit of work when Status() is Done
// afterwards. Only the assigned deliverer may arrive.
func (o *Order) Arrive(callerID kernel.UUID, mileageAfter int64) error {
	if o.delivererID == nil || !o.delivererID.IsEqual(callerID) {
		return ErrActorNotAllowed
	}

	event := EventArrive
	if o.skipReceiptConfirmation {
		event = EventArriveAndComplete
	}

	newStatus, err := o.status.Next(event)
	if err != nil {
		return err
	}

	o.status = newStatus
	o.mileageAfterDelivery = mileageAfter
	return nil
}

// ConfirmReceipt records the client's confirmation of the delivered vehicle
// and completes the order. The caller settles the delivery leg within the
// same unit of work.
func (o *Order) ConfirmReceipt(callerID kernel.UUID) error {
	if !o.clientID.IsEqual(callerID) {
		return ErrActorNotAllowed
	}

	newStatus, err := o.status.Next(EventConfirmReceipt)
	if err != nil {
		return err
	}
	o.status = newStatus
	return nil
}

// Cancel cancels a not-yet-started order. The caller refunds every live fee
// escrow tied to the order within the same unit of work. Orders already in
// progress or completed cannot be cancelled here.
func (o *Order) Cancel() error {
	if o.status == Cancelled {
		return ErrAlreadyCancelled
	}

	newStatus, err := o.status.Next(EventCancel)
	if err != nil {
		return err
	}
	o.status = newStatus
	return nil
}

// AddAdHocCost records an ad-hoc cost item while the order is in progress.
// The recording actor must be the assigned worker or deliverer.
func (o *Order) AddAdHocCost(callerID kernel.UUID, cost AdHocCost) error {
	workerMatch := o.workerID != nil && o.workerID.IsEqual(callerID)
	delivererMatch := o.delivererID != nil && o.delivererID.IsEqual(callerID)
	if !workerMatch && !delivererMatch {
		return ErrActorNotAllowed
	}
	if o.status.IsTerminal() {
		return fmt.Errorf("%w: cannot add costs in status %s", ErrInvalidOrderStatus, o.status)
	}

	o.adHocCosts = append(o.adHocCosts, cost)
	return nil
}

// MarkCostUnresolved flags the order after a failed delivery-cost lookup.
func (o *Order) MarkCostUnresolved() {
	o.isCostUnresolved = true
}

// SetDistance records the source-destination distance reported by the
// delivery-cost service.
func (o *Order) SetDistance(distance float64) {
	o.distance = distance
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setKind(kind Kind) error {
	if err := kind.Validate(); err != nil {
		return err
	}
	o.kind = kind
	return nil
}

func (o *Order) setClientID(clientID kernel.UUID) error {
	if err := clientID.Validate(); err != nil {
		return err
	}
	o.clientID = clientID
	return nil
}

func (o *Order) setRoute(source, destination kernel.Address, stopovers []kernel.Address) error {
	if err := source.Validate(); err != nil {
		return err
	}
	if err := destination.Validate(); err != nil {
		return err
	}
	for _, s := range stopovers {
		if err := s.Validate(); err != nil {
			return err
		}
	}

	o.source = source
	o.destination = destination
	o.stopovers = stopovers
	return nil
}

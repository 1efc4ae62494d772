package order

import (
	"errors"
	"time"

	"fleetops/internal/core/domain/model/kernel"
	"fleetops/internal/pkg/errs"
	"fleetops/internal/pkg/guard"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order was not created through NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder constructor")

	// ErrOrderIsCompleted is returned when an assignment change targets a COMPLETED order.
	ErrOrderIsCompleted = errors.New("order is completed")

	// ErrNoShipperAssigned is returned when unassigning an order that has no shipper.
	ErrNoShipperAssigned = errors.New("order has no assigned shipper")

	// ErrShipperIsRequired is returned when assigning without a shipper id.
	ErrShipperIsRequired = errs.NewValueIsRequiredError("shipperId")
)

// Details holds the descriptive fields of an order. They are shown to
// operators but never changed by this service.
type Details struct {
	CustomerName  string
	CustomerPhone string
	ProductName   string
	Quantity      int
	Note          string
	QRCode        string
	UserID        string
}

// Order is the aggregate root for a multi-stage shipment.
//
// Invariants:
//   - Must have a valid identifier
//   - An order in COMPLETED status never changes its assignment
//   - Assigning sets status PROCESSING; unassigning sets status PENDING
//   - The top-level assignee and the binding of the current stage change together
//   - Stage confirmation flags are never written by assignment changes
//
// Orders are created by the customer-facing side of the system; this service
// restores them from storage with RestoreOrder. NewOrder exists for seeding
// and tests.
type Order struct {
	// id is the document identifier
	id kernel.ID

	// status is the lifecycle state, possibly a legacy value
	status Status

	// stage is the leg currently in progress
	stage Stage

	// shipperID is the top-level assignee (zero when unassigned)
	shipperID kernel.ID

	// shipperName is the name snapshot taken at assignment time
	shipperName string

	// bindings holds the per-stage shipper for stages 1..3
	bindings [AssignableStages]StageBinding

	details  Details
	route    kernel.Route
	placedAt time.Time

	// inconsistencies records disagreements found while restoring
	inconsistencies []kernel.Inconsistency

	guard guard.ConstructorGuard
}

// NewOrder creates a fresh order waiting at the PICKUP stage with status PENDING.
//
// Parameters:
//   - id: document identifier (must be valid)
//   - details: customer and product description
//   - route: source and destination warehouses
//   - placedAt: creation time, used for recency ordering
//
// Example:
//
//	o, err := order.NewOrder(kernel.MustID("O1"), order.Details{ProductName: "Rice"},
//	    kernel.NewRoute("Hub A", "Hub B"), time.Now())
func NewOrder(id kernel.ID, details Details, route kernel.Route, placedAt time.Time) (*Order, error) {
	o := &Order{
		status:   Pending,
		stage:    StagePickup,
		details:  details,
		placedAt: placedAt,
		guard:    guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setRoute(route),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreParams carries a stored order after field names have been reconciled.
type RestoreParams struct {
	ID              kernel.ID
	Status          Status
	Stage           Stage
	ShipperID       kernel.ID
	ShipperName     string
	Bindings        [AssignableStages]StageBinding
	Details         Details
	Route           kernel.Route
	PlacedAt        time.Time
	Inconsistencies []kernel.Inconsistency
}

// RestoreOrder rebuilds an order from storage. It is tolerant of the data it
// finds there: unknown and legacy statuses, unknown stages and half-written
// bindings are all accepted as-is. Only the identifier is validated.
func RestoreOrder(p RestoreParams) (*Order, error) {
	o := &Order{
		status:          p.Status,
		stage:           p.Stage,
		shipperID:       p.ShipperID,
		shipperName:     p.ShipperName,
		bindings:        p.Bindings,
		details:         p.Details,
		placedAt:        p.PlacedAt,
		inconsistencies: append([]kernel.Inconsistency(nil), p.Inconsistencies...),
		guard:           guard.NewConstructorGuard(),
	}

	route := p.Route
	if route.Validate() != nil {
		route = kernel.NewRoute("", "")
	}
	o.route = route

	if err := o.setID(p.ID); err != nil {
		return nil, err
	}

	return o, nil
}

// Validate ensures the order was created through a constructor.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// IsEqual compares two orders by identifier.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's document identifier.
func (o *Order) ID() kernel.ID {
	return o.id
}

// Status returns the lifecycle status.
func (o *Order) Status() Status {
	return o.status
}

// Stage returns the leg currently in progress.
func (o *Order) Stage() Stage {
	return o.stage
}

// AssignmentStage returns the stage number (1..3) whose binding assignment
// changes touch, or 0 when the current stage has none.
func (o *Order) AssignmentStage() int {
	return o.stage.Number()
}

// AssignedShipper returns the top-level assignee and whether there is one.
func (o *Order) AssignedShipper() (kernel.ID, bool) {
	return o.shipperID, !o.shipperID.IsZero()
}

// ShipperName returns the assignee name snapshot ("" when none was stored).
func (o *Order) ShipperName() string {
	return o.shipperName
}

// Binding returns the binding of stage n (1..3). ok is false for any other n.
func (o *Order) Binding(n int) (binding StageBinding, ok bool) {
	if n < 1 || n > AssignableStages {
		return StageBinding{}, false
	}
	return o.bindings[n-1], true
}

// Details returns the descriptive fields.
func (o *Order) Details() Details {
	return o.details
}

// Route returns the source and destination warehouses.
func (o *Order) Route() kernel.Route {
	return o.route
}

// PlacedAt returns the creation time (zero when unknown).
func (o *Order) PlacedAt() time.Time {
	return o.placedAt
}

// IsCompleted reports whether the order reached its terminal status.
func (o *Order) IsCompleted() bool {
	return o.status.IsTerminal()
}

// Inconsistencies returns the stored-field disagreements found while restoring.
func (o *Order) Inconsistencies() []kernel.Inconsistency {
	return append([]kernel.Inconsistency(nil), o.inconsistencies...)
}

// Assign puts shipperID in charge of the order and of its current stage.
//
// Business rules:
//   - shipperID must be valid
//   - the order must not be COMPLETED
//   - status becomes PROCESSING
//   - when the current stage is 1..3, that stage's binding takes the same
//     shipper and name; its confirmation flag is left untouched
//   - any previous assignee is replaced without being released here
//
// Example:
//
//	if err := o.Assign(kernel.MustID("S1"), "Lan Nguyen"); err != nil {
//	    return err
//	}
func (o *Order) Assign(shipperID kernel.ID, shipperName string) error {
	if shipperID.Validate() != nil {
		return ErrShipperIsRequired
	}

	newStatus, err := o.status.Assign()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.shipperID = shipperID
	o.shipperName = shipperName
	if n := o.AssignmentStage(); n > 0 {
		o.bindings[n-1] = o.bindings[n-1].bind(shipperID, shipperName)
	}

	return nil
}

// Unassign removes the current assignee and returns it.
//
// Business rules:
//   - the order must not be COMPLETED
//   - a top-level assignee must exist
//   - status becomes PENDING
//   - when the current stage is 1..3, that stage's shipper and name are cleared;
//     its confirmation flag is left untouched
func (o *Order) Unassign() (kernel.ID, error) {
	newStatus, err := o.status.Unassign()
	if err != nil {
		return kernel.ID{}, err
	}

	previous, ok := o.AssignedShipper()
	if !ok {
		return kernel.ID{}, ErrNoShipperAssigned
	}

	o.status = newStatus
	o.shipperID = kernel.ID{}
	o.shipperName = ""
	if n := o.AssignmentStage(); n > 0 {
		o.bindings[n-1] = o.bindings[n-1].clear()
	}

	return previous, nil
}

func (o *Order) setID(id kernel.ID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setRoute(route kernel.Route) error {
	if err := route.Validate(); err != nil {
		return err
	}
	o.route = route
	return nil
}

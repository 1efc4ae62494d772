package order

import (
	"fmt"
	"strings"

	"fleetops/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
//
// State transitions driven by shipper assignment:
//
//	PENDING ──assign──> PROCESSING ──(external)──> COMPLETED
//	   ^                    │
//	   └──────unassign──────┘
//
// COMPLETED is terminal: neither assign nor unassign may leave it.
//
// Three legacy values (CREATED, DELIVERED_STAGE1, DELIVERED_STAGE2) still
// appear in stored orders. They are accepted on read and may be transitioned
// out of, but nothing in this service transitions into them.
type Status int

const (
	// Unknown represents a missing or unrecognized stored status.
	Unknown Status = iota

	// Pending is the initial status: the order waits for a shipper.
	Pending

	// Processing means a shipper is assigned to the current stage.
	Processing

	// Completed means the shipment was delivered. Final state.
	Completed

	// LegacyCreated is the pre-PENDING initial status.
	LegacyCreated

	// LegacyDeliveredStage1 marks an order whose first stage was delivered under the old workflow.
	LegacyDeliveredStage1

	// LegacyDeliveredStage2 marks an order whose second stage was delivered under the old workflow.
	LegacyDeliveredStage2
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:               "UNKNOWN",
		Pending:               "PENDING",
		Processing:            "PROCESSING",
		Completed:             "COMPLETED",
		LegacyCreated:         "CREATED",
		LegacyDeliveredStage1: "DELIVERED_STAGE1",
		LegacyDeliveredStage2: "DELIVERED_STAGE2",
	}
}

// ParseStatus maps a stored status string to a Status. Matching ignores case
// and surrounding whitespace; anything unrecognized becomes Unknown.
//
// Example:
//
//	order.ParseStatus("processing")       // Processing
//	order.ParseStatus("DELIVERED_STAGE1") // LegacyDeliveredStage1
//	order.ParseStatus("archived")         // Unknown
func ParseStatus(raw string) Status {
	normalized := strings.ToUpper(strings.TrimSpace(raw))
	for status, str := range getStatusStrings() {
		if status != Unknown && str == normalized {
			return status
		}
	}
	return Unknown
}

// String returns the stored representation of the status.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// Validate rejects Unknown and out-of-range values.
func (s Status) Validate() error {
	if s == Unknown {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	if _, ok := getStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// IsLegacy reports whether the status belongs to the retired workflow.
func (s Status) IsLegacy() bool {
	return s == LegacyCreated || s == LegacyDeliveredStage1 || s == LegacyDeliveredStage2
}

// IsTerminal reports whether no assignment change is allowed.
func (s Status) IsTerminal() bool {
	return s == Completed
}

// ValidateAssignmentChange checks, without side effects, that a shipper may be
// assigned to or removed from an order in this status. Only COMPLETED is
// rejected; unknown and legacy statuses are allowed to move forward.
func (s Status) ValidateAssignmentChange() error {
	if s.IsTerminal() {
		return fmt.Errorf("%w: %s", ErrOrderIsCompleted, s)
	}
	return nil
}

// Assign returns the status an order takes once a shipper is assigned.
//
// Returns:
//   - (Processing, nil) from any non-terminal status
//   - (Unknown, error) from Completed
func (s Status) Assign() (Status, error) {
	if err := s.ValidateAssignmentChange(); err != nil {
		return Unknown, err
	}
	return Processing, nil
}

// Unassign returns the status an order takes once its shipper is removed.
//
// Returns:
//   - (Pending, nil) from any non-terminal status
//   - (Unknown, error) from Completed
func (s Status) Unassign() (Status, error) {
	if err := s.ValidateAssignmentChange(); err != nil {
		return Unknown, err
	}
	return Pending, nil
}

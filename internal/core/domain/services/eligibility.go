package services

import (
	"fleetops/internal/core/domain/model/order"
	"fleetops/internal/core/domain/model/shipper"
)

// EligibleShippers is the outcome of an eligibility check.
type EligibleShippers struct {
	// RequiredType is the capability the order's stage prefers (0 when none).
	RequiredType int
	// Preferred are free shippers whose capability matches RequiredType.
	Preferred []*shipper.Shipper
	// Fallback are free shippers whose capability does not match.
	Fallback []*shipper.Shipper
	// UsingFallback is set when no preferred shipper is free and the
	// operator is offered the fallback list instead.
	UsingFallback bool
}

// Eligible returns the shippers the operator may choose from: Preferred,
// or Fallback when UsingFallback is set. The list may be empty.
func (e EligibleShippers) Eligible() []*shipper.Shipper {
	if e.UsingFallback {
		return e.Fallback
	}
	return e.Preferred
}

// IsEmpty reports whether nobody can be assigned.
func (e EligibleShippers) IsEmpty() bool {
	return len(e.Eligible()) == 0
}

// Eligibility is a domain service that decides which shippers may be offered
// for an order's current stage.
//
// Business rules:
//   - Only free shippers are considered
//   - Shippers whose capability equals the stage's required type are preferred
//   - When no preferred shipper is free, every other free shipper becomes
//     eligible and the result is flagged as a fallback (manual override)
//   - An empty roster is not an error; the result is simply empty
//   - Locked shippers are not filtered out
//
// Example usage:
//
//	result, err := services.NewEligibility().Compute(o, roster)
//	if err != nil {
//	    return err
//	}
//	if result.UsingFallback {
//	    // warn the operator that no type-matched unit is free
//	}
type Eligibility struct{}

// NewEligibility creates an Eligibility service.
func NewEligibility() Eligibility {
	return Eligibility{}
}

// Compute partitions the fleet for the order's current stage.
//
// Parameters:
//   - o: the order (must be valid)
//   - fleet: the roster snapshot; order is preserved in the result
//
// Returns:
//   - EligibleShippers: the partition and the fallback flag
//   - error: a validation error for an unconstructed order or shipper
func (e Eligibility) Compute(o *order.Order, fleet []*shipper.Shipper) (EligibleShippers, error) {
	if err := o.Validate(); err != nil {
		return EligibleShippers{}, err
	}
	return e.ForStage(o.Stage(), fleet)
}

// ForStage partitions the fleet for a stage. Unmapped stages have required
// type 0, so every free shipper lands in Fallback.
func (e Eligibility) ForStage(stage order.Stage, fleet []*shipper.Shipper) (EligibleShippers, error) {
	result := EligibleShippers{RequiredType: stage.RequiredType()}

	for _, s := range fleet {
		if err := s.Validate(); err != nil {
			return EligibleShippers{}, err
		}

		if !s.IsFree() {
			continue
		}

		if s.Capability().Matches(result.RequiredType) {
			result.Preferred = append(result.Preferred, s)
		} else {
			result.Fallback = append(result.Fallback, s)
		}
	}

	result.UsingFallback = len(result.Preferred) == 0
	return result, nil
}

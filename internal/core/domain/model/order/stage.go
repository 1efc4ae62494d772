package order

import (
	"math"
	"strconv"
	"strings"
)

// Stage is the leg of the shipment currently in progress.
//
// Stored orders encode the stage either by name (PICKUP, WAREHOUSE, SHIPPING,
// DELIVERED) or, in older documents, by number (1, 2, 3). ParseStage folds
// both encodings into the same value, so the rest of the domain never sees
// which one was stored.
type Stage int

const (
	// StageUnknown is a missing or unrecognized stage. It maps to no shipper type.
	StageUnknown Stage = iota
	// StagePickup collects the goods at the source warehouse.
	StagePickup
	// StageWarehouse covers processing inside the warehouse.
	StageWarehouse
	// StageShipping carries the goods to the destination.
	StageShipping
	// StageDelivered means the shipment reached the destination.
	StageDelivered
)

// AssignableStages is the number of stages that carry a shipper binding.
const AssignableStages = 3

var stageNames = map[Stage]string{
	StageUnknown:   "UNKNOWN",
	StagePickup:    "PICKUP",
	StageWarehouse: "WAREHOUSE",
	StageShipping:  "SHIPPING",
	StageDelivered: "DELIVERED",
}

var stageLabels = map[Stage]string{
	StagePickup:    "Pickup from Warehouse",
	StageWarehouse: "In Warehouse / Processing",
	StageShipping:  "Shipping to Destination",
	StageDelivered: "Delivered",
}

// Stages lists the shipment stages in travel order.
func Stages() []Stage {
	return []Stage{StagePickup, StageWarehouse, StageShipping, StageDelivered}
}

// ParseStage normalizes a stored stage value. It accepts stage names in any
// case, the numbers 1..3 (as JSON numbers, Go integers or numeric strings),
// and returns StageUnknown for anything else, including nil.
func ParseStage(raw any) Stage {
	switch v := raw.(type) {
	case nil:
		return StageUnknown
	case Stage:
		return v
	case string:
		trimmed := strings.ToUpper(strings.TrimSpace(v))
		for stage, name := range stageNames {
			if stage != StageUnknown && name == trimmed {
				return stage
			}
		}
		if n, err := strconv.Atoi(trimmed); err == nil {
			return stageFromNumber(n)
		}
	case int:
		return stageFromNumber(v)
	case int32:
		return stageFromNumber(int(v))
	case int64:
		return stageFromNumber(int(v))
	case float64:
		if v == math.Trunc(v) {
			return stageFromNumber(int(v))
		}
	}
	return StageUnknown
}

func stageFromNumber(n int) Stage {
	switch n {
	case 1:
		return StagePickup
	case 2:
		return StageWarehouse
	case 3:
		return StageShipping
	default:
		return StageUnknown
	}
}

// Number returns the assignable stage number (1..3) or 0 when the stage has
// no shipper binding (DELIVERED or unknown). The same number is the shipper
// type required to work the stage.
func (s Stage) Number() int {
	switch s {
	case StagePickup:
		return 1
	case StageWarehouse:
		return 2
	case StageShipping:
		return 3
	default:
		return 0
	}
}

// RequiredType is the shipper capability type that preferably works this stage.
func (s Stage) RequiredType() int {
	return s.Number()
}

// IsAssignable reports whether the stage carries a shipper binding.
func (s Stage) IsAssignable() bool {
	return s.Number() > 0
}

// Label returns the operator-facing description of the stage.
func (s Stage) Label() string {
	if label, ok := stageLabels[s]; ok {
		return label
	}
	return "Unknown"
}

// String returns the stored name of the stage.
func (s Stage) String() string {
	if name, ok := stageNames[s]; ok {
		return name
	}
	return "UNKNOWN"
}

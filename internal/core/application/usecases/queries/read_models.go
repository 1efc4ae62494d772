// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries read from live snapshots or repositories through the reader ports
// and return flat read models for the HTTP layer.
package queries

import (
	"time"

	"fleetops/internal/core/domain/model/order"
	"fleetops/internal/core/domain/model/shipper"
	"fleetops/internal/core/domain/services"
)

// OrderSummary is an order as listed to operators.
type OrderSummary struct {
	ID                string
	Status            string
	Stage             string
	StageLabel        string
	AssignedShipperID string
	ShipperName       string
	CustomerName      string
	ProductName       string
	Quantity          int
	FromWarehouse     string
	ToWarehouse       string
	PlacedAt          time.Time
}

func newOrderSummary(o *order.Order) OrderSummary {
	assignee, _ := o.AssignedShipper()
	details := o.Details()
	return OrderSummary{
		ID:                o.ID().String(),
		Status:            o.Status().String(),
		Stage:             o.Stage().String(),
		StageLabel:        o.Stage().Label(),
		AssignedShipperID: assignee.String(),
		ShipperName:       o.ShipperName(),
		CustomerName:      details.CustomerName,
		ProductName:       details.ProductName,
		Quantity:          details.Quantity,
		FromWarehouse:     o.Route().From(),
		ToWarehouse:       o.Route().To(),
		PlacedAt:          o.PlacedAt(),
	}
}

func newOrderSummaries(orders []*order.Order) []OrderSummary {
	out := make([]OrderSummary, 0, len(orders))
	for _, o := range orders {
		out = append(out, newOrderSummary(o))
	}
	return out
}

// ShipperSummary is a fleet account as listed to operators.
type ShipperSummary struct {
	ID           string
	Name         string
	Type         int
	Status       string
	CurrentOrder string
	Occupied     bool
	Locked       bool
	Bonus        int
	Email        string
	Phone        string
}

func newShipperSummary(s *shipper.Shipper) ShipperSummary {
	current, _ := s.Availability().CurrentOrder()
	return ShipperSummary{
		ID:           s.ID().String(),
		Name:         s.Name(),
		Type:         s.Capability().Int(),
		Status:       s.Availability().Status().String(),
		CurrentOrder: current.String(),
		Occupied:     s.Availability().IsOccupied(),
		Locked:       s.Locked(),
		Bonus:        s.Bonus(),
		Email:        s.Contact().Email,
		Phone:        s.Contact().Phone,
	}
}

func newShipperSummaries(shippers []*shipper.Shipper) []ShipperSummary {
	out := make([]ShipperSummary, 0, len(shippers))
	for _, s := range shippers {
		out = append(out, newShipperSummary(s))
	}
	return out
}

// StageProgressView is one verification step of an order.
type StageProgressView struct {
	Stage       int
	ShipperID   string
	ShipperName string
	Confirmed   bool
}

func newStageProgressViews(progress []services.StageProgress) []StageProgressView {
	out := make([]StageProgressView, 0, len(progress))
	for _, p := range progress {
		out = append(out, StageProgressView{
			Stage:       p.Stage,
			ShipperID:   p.ShipperID.String(),
			ShipperName: p.ShipperName,
			Confirmed:   p.Confirmed,
		})
	}
	return out
}

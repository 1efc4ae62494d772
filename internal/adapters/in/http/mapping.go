package http

import (
	"time"

	"fleetops/internal/adapters/in/http/api"
	"fleetops/internal/core/application/usecases/queries"
)

func toOrderSummary(o queries.OrderSummary) api.OrderSummary {
	return api.OrderSummary{
		Id:                o.ID,
		Status:            o.Status,
		Stage:             o.Stage,
		StageLabel:        o.StageLabel,
		AssignedShipperId: stringOrNil(o.AssignedShipperID),
		ShipperName:       stringOrNil(o.ShipperName),
		CustomerName:      o.CustomerName,
		ProductName:       o.ProductName,
		Quantity:          o.Quantity,
		FromWarehouse:     o.FromWarehouse,
		ToWarehouse:       o.ToWarehouse,
		PlacedAt:          timeOrNil(o.PlacedAt),
	}
}

func toOrderSummaries(orders []queries.OrderSummary) []api.OrderSummary {
	out := make([]api.OrderSummary, len(orders))
	for i, o := range orders {
		out[i] = toOrderSummary(o)
	}
	return out
}

func toOrderDetails(d queries.GetOrderDetailsQueryResponse) api.OrderDetails {
	timeline := make([]api.TimelineStep, len(d.Timeline))
	for i, step := range d.Timeline {
		timeline[i] = api.TimelineStep{Stage: step.Stage, Label: step.Label, State: step.State}
	}

	verification := make([]api.StageProgress, len(d.Verification))
	for i, p := range d.Verification {
		verification[i] = api.StageProgress{
			Stage:       p.Stage,
			ShipperId:   stringOrNil(p.ShipperID),
			ShipperName: p.ShipperName,
			Confirmed:   p.Confirmed,
		}
	}

	return api.OrderDetails{
		Order:         toOrderSummary(d.Order),
		CustomerPhone: d.CustomerPhone,
		Note:          d.Note,
		QrCode:        d.QRCode,
		ActiveHandler: d.ActiveHandler,
		Timeline:      timeline,
		Verification:  verification,
		Warnings:      d.Warnings,
		CanUnassign:   d.CanUnassign,
		RefreshedAt:   d.RefreshedAt,
	}
}

func toShipper(s queries.ShipperSummary) api.Shipper {
	return api.Shipper{
		Id:           s.ID,
		Name:         s.Name,
		Type:         s.Type,
		Status:       s.Status,
		CurrentOrder: stringOrNil(s.CurrentOrder),
		Occupied:     s.Occupied,
		Locked:       s.Locked,
		Bonus:        s.Bonus,
		Email:        s.Email,
		Phone:        s.Phone,
	}
}

func toRoster(r queries.ListShippersQueryResponse) api.Roster {
	shippers := make([]api.Shipper, len(r.Shippers))
	for i, entry := range r.Shippers {
		sh := toShipper(entry.ShipperSummary)
		completed := entry.CompletedOrders
		sh.CompletedOrders = &completed
		shippers[i] = sh
	}
	return api.Roster{Shippers: shippers, Names: r.Names}
}

func stringOrNil(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func timeOrNil(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

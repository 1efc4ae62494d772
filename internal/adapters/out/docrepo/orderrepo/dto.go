package orderrepo

import (
	"fmt"

	"fleetops/internal/adapters/out/docstore"
	"fleetops/internal/core/domain/model/kernel"
	"fleetops/internal/core/domain/model/order"
)

// Stored field names of an order document.
const (
	fieldStatus            = "status"
	fieldCurrentStage      = "currentStage"
	fieldAssignedShipperID = "assignedShipperId"
	fieldShipperID         = "shipperId"
	fieldShipperName       = "shipperName"
	fieldCustomerName      = "customerName"
	fieldCustomerPhone     = "customerPhone"
	fieldProductName       = "productName"
	fieldQuantity          = "quantity"
	fieldFromWarehouse     = "fromWarehouse"
	fieldToWarehouse       = "toWarehouse"
	fieldNote              = "note"
	fieldQRCode            = "qrCode"
	fieldTimestamp         = "timestamp"
	fieldUserID            = "userId"
)

// stageFields are the names one stage binding is stored under. Ids and names
// each have two names that must always hold the same value; the first of
// each pair wins on read.
type stageFields struct {
	id, legacyID     string
	name, legacyName string
	confirmed        string
}

func stageFieldsOf(n int) stageFields {
	return stageFields{
		id:         fmt.Sprintf("shipperStage%d", n),
		legacyID:   fmt.Sprintf("stage%dShipperId", n),
		name:       fmt.Sprintf("stage%dShipper", n),
		legacyName: fmt.Sprintf("shipper%d", n),
		confirmed:  fmt.Sprintf("shipperStage%dConfirmed", n),
	}
}

// fromDomain encodes a whole order, writing both names of every binding.
func fromDomain(o *order.Order) docstore.Fields {
	details := o.Details()
	assignee, _ := o.AssignedShipper()

	fields := docstore.Fields{
		fieldStatus:            o.Status().String(),
		fieldCurrentStage:      o.Stage().String(),
		fieldAssignedShipperID: nullable(assignee.String()),
		fieldShipperID:         nullable(assignee.String()),
		fieldShipperName:       nullable(o.ShipperName()),
		fieldCustomerName:      details.CustomerName,
		fieldCustomerPhone:     details.CustomerPhone,
		fieldProductName:       details.ProductName,
		fieldQuantity:          details.Quantity,
		fieldFromWarehouse:     o.Route().From(),
		fieldToWarehouse:       o.Route().To(),
		fieldNote:              details.Note,
		fieldQRCode:            details.QRCode,
		fieldTimestamp:         docstore.FormatTime(o.PlacedAt()),
		fieldUserID:            details.UserID,
	}

	for n := 1; n <= order.AssignableStages; n++ {
		binding, _ := o.Binding(n)
		for k, v := range bindingPatch(n, binding) {
			fields[k] = v
		}
		fields[stageFieldsOf(n).confirmed] = binding.Confirmed()
	}

	return fields
}

// assignmentPatch is the partial update written by assign and unassign: the
// top-level assignee, the status and, when the stage has one, the binding of
// the current stage under both names. Confirmation flags are never written.
func assignmentPatch(o *order.Order) docstore.Fields {
	assignee, _ := o.AssignedShipper()

	patch := docstore.Fields{
		fieldAssignedShipperID: nullable(assignee.String()),
		fieldShipperID:         nullable(assignee.String()),
		fieldShipperName:       nullable(o.ShipperName()),
		fieldStatus:            o.Status().String(),
	}

	if n := o.AssignmentStage(); n > 0 {
		binding, _ := o.Binding(n)
		for k, v := range bindingPatch(n, binding) {
			patch[k] = v
		}
	}

	return patch
}

func bindingPatch(n int, b order.StageBinding) docstore.Fields {
	names := stageFieldsOf(n)
	id, _ := b.ShipperID()

	var name any
	if b.IsBound() {
		name = b.ShipperName()
	}

	return docstore.Fields{
		names.id:         nullable(id.String()),
		names.legacyID:   nullable(id.String()),
		names.name:       name,
		names.legacyName: name,
	}
}

// toDomain decodes a stored order. Disagreeing duplicate fields are resolved
// by precedence and reported on the order.
func toDomain(doc docstore.Document) (*order.Order, error) {
	f := doc.Fields
	var found []kernel.Inconsistency

	shipperID, inc := pick(f, fieldAssignedShipperID, fieldShipperID, "assignedShipperId")
	found = append(found, inc...)

	var bindings [order.AssignableStages]order.StageBinding
	for n := 1; n <= order.AssignableStages; n++ {
		names := stageFieldsOf(n)

		id, inc := pick(f, names.id, names.legacyID, fmt.Sprintf("stage%d.shipperId", n))
		found = append(found, inc...)
		name, inc := pick(f, names.name, names.legacyName, fmt.Sprintf("stage%d.shipperName", n))
		found = append(found, inc...)

		bindings[n-1] = order.NewStageBinding(optionalID(id), name, f.Bool(names.confirmed))
	}

	return order.RestoreOrder(order.RestoreParams{
		ID:          optionalID(doc.ID),
		Status:      order.ParseStatus(f.String(fieldStatus)),
		Stage:       order.ParseStage(f[fieldCurrentStage]),
		ShipperID:   optionalID(shipperID),
		ShipperName: f.String(fieldShipperName),
		Bindings:    bindings,
		Details: order.Details{
			CustomerName:  f.String(fieldCustomerName),
			CustomerPhone: f.String(fieldCustomerPhone),
			ProductName:   f.String(fieldProductName),
			Quantity:      f.Int(fieldQuantity),
			Note:          f.String(fieldNote),
			QRCode:        f.String(fieldQRCode),
			UserID:        f.String(fieldUserID),
		},
		Route:           kernel.NewRoute(f.String(fieldFromWarehouse), f.String(fieldToWarehouse)),
		PlacedAt:        docstore.ParseTime(f[fieldTimestamp]),
		Inconsistencies: found,
	})
}

// pick reads a value stored under two names. The preferred name wins when it
// holds a value; otherwise the other one is used. Any disagreement is
// reported under label.
func pick(f docstore.Fields, preferred, other, label string) (string, []kernel.Inconsistency) {
	a, b := f.String(preferred), f.String(other)
	switch {
	case a == b:
		return a, nil
	case a == "":
		return b, []kernel.Inconsistency{{Field: label, Kept: b, Dropped: preferred + "=null"}}
	case b == "":
		return a, []kernel.Inconsistency{{Field: label, Kept: a, Dropped: other + "=null"}}
	default:
		return a, []kernel.Inconsistency{{Field: label, Kept: a, Dropped: b}}
	}
}

func optionalID(raw string) kernel.ID {
	id, err := kernel.IDFromString(raw)
	if err != nil {
		return kernel.ID{}
	}
	return id
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

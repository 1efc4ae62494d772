package shipperrepo

import (
	"fleetops/internal/adapters/out/docstore"
	"fleetops/internal/core/domain/model/kernel"
	"fleetops/internal/core/domain/model/shipper"
)

// Stored field names of a user document.
const (
	fieldUID          = "uid"
	fieldName         = "name"
	fieldType         = "type"
	fieldStatus       = "status"
	fieldCurrentOrder = "currentOrder"
	fieldEmail        = "email"
	fieldPhone        = "phone"
	fieldBonus        = "bonus"
	fieldLocked       = "locked"
	fieldRole         = "role"
	fieldPasswordHash = "passwordHash"
	fieldTimestamp    = "timestamp"
)

func fromDomain(s *shipper.Shipper) docstore.Fields {
	fields := docstore.Fields{
		fieldUID:    s.ID().String(),
		fieldName:   s.Name(),
		fieldType:   s.Capability().Int(),
		fieldEmail:  s.Contact().Email,
		fieldPhone:  s.Contact().Phone,
		fieldBonus:  s.Bonus(),
		fieldLocked: s.Locked(),
		fieldRole:   s.Role().String(),
	}
	if hash := s.PasswordHash(); hash != "" {
		fields[fieldPasswordHash] = hash
	}
	if at := s.CreatedAt(); !at.IsZero() {
		fields[fieldTimestamp] = docstore.FormatTime(at)
	}
	for k, v := range availabilityPatch(s.Availability()) {
		fields[k] = v
	}
	return fields
}

// availabilityPatch writes status and currentOrder together.
func availabilityPatch(a shipper.Availability) docstore.Fields {
	var current any
	if id, ok := a.CurrentOrder(); ok {
		current = id.String()
	}
	return docstore.Fields{
		fieldStatus:       a.Status().String(),
		fieldCurrentOrder: current,
	}
}

func toDomain(doc docstore.Document) (*shipper.Shipper, error) {
	f := doc.Fields

	current, _ := kernel.IDFromString(f.String(fieldCurrentOrder))
	id, _ := kernel.IDFromString(doc.ID)

	return shipper.RestoreShipper(shipper.RestoreParams{
		ID:           id,
		Name:         f.String(fieldName),
		Capability:   shipper.ParseCapability(f[fieldType]),
		Availability: shipper.RestoreAvailability(shipper.ParseStatus(f.String(fieldStatus)), current),
		Contact: shipper.Contact{
			Email: f.String(fieldEmail),
			Phone: f.String(fieldPhone),
		},
		Bonus:        f.Int(fieldBonus),
		Locked:       f.Bool(fieldLocked),
		Role:         shipper.ParseRole(f.String(fieldRole)),
		PasswordHash: f.String(fieldPasswordHash),
		CreatedAt:    docstore.ParseTime(f[fieldTimestamp]),
	})
}

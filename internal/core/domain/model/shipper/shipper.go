package shipper

import (
	"errors"
	"strings"
	"time"

	"fleetops/internal/core/domain/model/kernel"
	"fleetops/internal/pkg/errs"
	"fleetops/internal/pkg/guard"
)

// Domain errors for shipper operations.
var (
	// ErrNameIsRequired is returned when registering a shipper without a name.
	ErrNameIsRequired = errs.NewValueIsRequiredError("name")
	// ErrShipperIsNotConstructed is returned when using an improperly initialized Shipper.
	ErrShipperIsNotConstructed = errors.New("Shipper must be created via NewShipper or RestoreShipper constructor")
)

// Contact holds how operators reach a shipper.
type Contact struct {
	Email string
	Phone string
}

// Shipper is a fleet agent account.
//
// Key responsibilities:
//   - Identity and display name used across orders and logs
//   - Capability type that drives assignment preference
//   - Availability, written by assignment changes only
//   - Operator lock, toggled from the fleet roster
//
// Example usage:
//
//	s, err := shipper.NewShipper(kernel.NewID(), "Lan Nguyen", shipper.CapabilityShipping,
//	    shipper.Contact{Phone: "+84 90 000 0000"}, hash, time.Now())
//	if err != nil {
//	    return err
//	}
type Shipper struct {
	// id is the account uid, also the document id
	id kernel.ID
	// name is the display name; may be empty on old accounts
	name string
	// capability is the stage type the shipper is trained for
	capability Capability
	// availability is the free/busy flag with the current order
	availability Availability
	contact      Contact
	// bonus is the accumulated reward balance
	bonus int
	// locked blocks the shipper from signing in to the field client
	locked       bool
	role         Role
	passwordHash string
	createdAt    time.Time
	// inconsistencies records disagreements found while restoring
	inconsistencies []kernel.Inconsistency
	guard           guard.ConstructorGuard
}

// NewShipper registers a new fleet agent: free, unlocked, with no bonus and
// role shipper.
//
// Parameters:
//   - id: account identifier
//   - name: display name (required)
//   - capability: stage type 1..3
//   - contact: optional email and phone
//   - passwordHash: hashed sign-in secret, empty when the account signs in elsewhere
//   - createdAt: registration time
func NewShipper(
	id kernel.ID,
	name string,
	capability Capability,
	contact Contact,
	passwordHash string,
	createdAt time.Time,
) (*Shipper, error) {
	s := &Shipper{
		availability: Free(),
		contact: Contact{
			Email: strings.TrimSpace(contact.Email),
			Phone: strings.TrimSpace(contact.Phone),
		},
		role:         RoleShipper,
		passwordHash: passwordHash,
		createdAt:    createdAt,
		guard:        guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		s.setID(id),
		s.setName(name),
		s.setCapability(capability),
	); err != nil {
		return nil, err
	}

	return s, nil
}

// RestoreParams carries a stored user document.
type RestoreParams struct {
	ID           kernel.ID
	Name         string
	Capability   Capability
	Availability Availability
	Contact      Contact
	Bonus        int
	Locked       bool
	Role         Role
	PasswordHash string
	CreatedAt    time.Time
}

// RestoreShipper rebuilds an account from storage. Only the identifier is
// validated; availability disagreements are recorded, not rejected.
func RestoreShipper(p RestoreParams) (*Shipper, error) {
	s := &Shipper{
		name:            p.Name,
		capability:      p.Capability,
		availability:    p.Availability,
		contact:         p.Contact,
		bonus:           p.Bonus,
		locked:          p.Locked,
		role:            p.Role,
		passwordHash:    p.PasswordHash,
		createdAt:       p.CreatedAt,
		inconsistencies: p.Availability.Inconsistencies(),
		guard:           guard.NewConstructorGuard(),
	}

	if err := s.setID(p.ID); err != nil {
		return nil, err
	}

	return s, nil
}

// Validate ensures the shipper was created through a constructor.
func (s *Shipper) Validate() error {
	if s == nil {
		return ErrShipperIsNotConstructed
	}
	return s.guard.Validate(ErrShipperIsNotConstructed)
}

// IsEqual compares two shippers by identifier.
func (s *Shipper) IsEqual(other *Shipper) bool {
	return other != nil && s.id.IsEqual(other.id)
}

// ID returns the account identifier.
func (s *Shipper) ID() kernel.ID { return s.id }

// Name returns the display name.
func (s *Shipper) Name() string { return s.name }

// Capability returns the stage type.
func (s *Shipper) Capability() Capability { return s.capability }

// Availability returns the free/busy record.
func (s *Shipper) Availability() Availability { return s.availability }

// Contact returns email and phone.
func (s *Shipper) Contact() Contact { return s.contact }

// Bonus returns the reward balance.
func (s *Shipper) Bonus() int { return s.bonus }

// Locked reports whether the account is locked.
func (s *Shipper) Locked() bool { return s.locked }

// Role returns the account role.
func (s *Shipper) Role() Role { return s.role }

// PasswordHash returns the stored sign-in hash.
func (s *Shipper) PasswordHash() string { return s.passwordHash }

// CreatedAt returns the registration time (zero when unknown).
func (s *Shipper) CreatedAt() time.Time { return s.createdAt }

// IsFree reports whether the shipper may be offered for assignment.
func (s *Shipper) IsFree() bool {
	return s.availability.IsFree()
}

// Inconsistencies returns the stored-field disagreements found while restoring.
func (s *Shipper) Inconsistencies() []kernel.Inconsistency {
	return append([]kernel.Inconsistency(nil), s.inconsistencies...)
}

// SetLocked locks or unlocks the account and reports whether anything changed.
func (s *Shipper) SetLocked(locked bool) bool {
	if s.locked == locked {
		return false
	}
	s.locked = locked
	return true
}

func (s *Shipper) setID(id kernel.ID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	s.id = id
	return nil
}

func (s *Shipper) setName(name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return ErrNameIsRequired
	}
	s.name = trimmed
	return nil
}

func (s *Shipper) setCapability(c Capability) error {
	validated, err := NewCapability(int(c))
	if err != nil {
		return err
	}
	s.capability = validated
	return nil
}

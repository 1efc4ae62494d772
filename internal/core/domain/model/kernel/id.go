package kernel

import (
	"strings"

	"fleetops/internal/pkg/errs"

	"github.com/google/uuid"
)

// ErrIDIsNotConstructed indicates that an ID was not created by NewID or IDFromString.
var ErrIDIsNotConstructed = errs.NewValueIsRequiredError("ID must be created via NewID or IDFromString")

// ID is an opaque document identifier. Identifiers issued by the document
// store are free-form strings (for example "O1" or a Firebase uid), so ID only
// guarantees the value is non-blank. Identifiers minted by this service are
// random UUIDs.
//
// Example:
//
//	orderID, err := kernel.IDFromString("O1")
//	if err != nil {
//	    return err
//	}
//	shipperID := kernel.NewID()
type ID struct {
	value string
}

// NewID generates a new random identifier.
func NewID() ID {
	return ID{value: uuid.NewString()}
}

// IDFromString wraps an existing identifier. Surrounding whitespace is trimmed
// and a blank value is rejected.
func IDFromString(s string) (ID, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return ID{}, errs.NewValueIsRequiredError("id")
	}
	return ID{value: trimmed}, nil
}

// MustID is IDFromString for literals known to be valid. It panics on a blank value.
func MustID(s string) ID {
	id, err := IDFromString(s)
	if err != nil {
		panic(err)
	}
	return id
}

// String returns the identifier as stored in the document store.
func (i ID) String() string {
	return i.value
}

// IsZero reports whether the ID is the zero value.
func (i ID) IsZero() bool {
	return i.value == ""
}

// IsEqual compares two identifiers.
func (i ID) IsEqual(other ID) bool {
	return i.value == other.value
}

// Validate returns ErrIDIsNotConstructed for the zero value.
func (i ID) Validate() error {
	if i.value == "" {
		return ErrIDIsNotConstructed
	}
	return nil
}

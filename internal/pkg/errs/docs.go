// Package errs provides the typed errors shared by the fleet operations backend.
//
// Error types:
//   - ValueIsRequiredError: a mandatory value is missing
//   - ValueIsInvalidError: a value failed validation
//   - ValueIsOutOfRangeError: a value is outside its allowed range
//   - ObjectNotFoundError: an order, shipper or document does not exist
//   - WriteFailureError: the store rejected a write
//
// Each type unwraps to a sentinel (ErrValueIsRequired, ErrObjectNotFound, ...)
// so callers classify failures with errors.Is. WriteFailureError also unwraps
// to its storage cause.
package errs

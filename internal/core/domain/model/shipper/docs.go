// Package shipper provides the Shipper aggregate: a fleet agent account with a
// capability type, an availability record and an operator lock.
//
// The package includes:
//   - Shipper: the aggregate root for a fleet agent
//   - Capability: the stage type (1 pickup, 2 warehouse, 3 shipping) the agent is trained for
//   - Availability: the free/busy status coupled with the order the agent is working
//   - Role: the account role shared by every user document
//
// Key business rules:
//   - A shipper is busy exactly when it holds a current order
//   - Availability is changed only by assignment changes; profile edits never touch it
//   - Locking an account does not affect eligibility for assignment
package shipper

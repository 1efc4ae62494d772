// Package order provides the Order aggregate: a shipment that travels through
// pickup, warehouse and shipping stages before delivery, with a shipper bound
// to each stage.
//
// The package includes:
//   - Order: the aggregate root holding status, current stage, the top-level
//     assignee and the per-stage bindings
//   - Status: the lifecycle state machine, including legacy stored values
//   - Stage: the current leg, normalized from both stored encodings
//   - StageBinding: the shipper, name snapshot and confirmation of one stage
//
// Key business rules:
//   - Assigning moves the order to PROCESSING and binds the current stage
//   - Unassigning moves it back to PENDING and clears the current stage binding
//   - COMPLETED orders reject both operations
//   - Confirmation flags belong to the shipper's client and are never written here
package order

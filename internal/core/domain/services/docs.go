// Package services provides domain services that work across the order and
// shipper aggregates without belonging to either of them.
//
// The package includes:
//   - Eligibility: partitions the free fleet into preferred and fallback
//     shippers for an order's current stage
//   - DisplayNames: resolves shipper display names from a roster snapshot
//     and builds the per-stage progress shown to operators
//
// Both services are pure: they read snapshots and never write.
package services

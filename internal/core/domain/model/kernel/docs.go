// Package kernel provides the shared value objects of the fleet domain.
//
// The package includes:
//   - ID: an opaque document identifier shared by orders, shipper accounts and log entries
//   - Route: the source and destination warehouses of a shipment
//   - Inconsistency: a disagreement between duplicated stored fields, reported but never fatal
//
// ID and Route are immutable and must be created through their constructors;
// their zero values fail validation.
package kernel

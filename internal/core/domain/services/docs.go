// Package services provides domain services that implement business logic
// spanning multiple domain entities in the fulfillment system.
//
// The package includes:
//   - ProductTransformer: converts source-platform products into the
//     destination backend's schema
//
// Domain services hold logic that doesn't naturally belong to a single
// aggregate root, following Domain-Driven Design principles.
package services

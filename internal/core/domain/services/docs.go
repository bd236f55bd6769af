// Package services provides domain services that span more than one aggregate.
//
// The package includes:
//   - Settlement: groups unsettled finance entries into a payment batch
package services

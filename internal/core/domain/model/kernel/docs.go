// Package kernel provides the value objects shared by every aggregate of the textile
// order service.
//
// The package includes:
//   - ID: numeric identifiers reserved from the ledger store sequences
//   - Money: non-negative exact decimal amounts backed by shopspring/decimal
//
// Both are immutable and safe for concurrent use.
package kernel

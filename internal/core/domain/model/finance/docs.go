// Package finance provides the ledger records produced by delivered orders and the
// payment batches that settle them.
//
// The package includes:
//   - Entry: one finance entry per delivered order, with cost, sale and a frozen margin
//   - PaymentBatch: a settlement event grouping unsettled entries
//
// Key business rules:
//   - margin is sale - cost at creation and is never recalculated
//   - an entry is settled at most once and is immutable afterwards
//   - a batch total is the sum of the cost of its entries at creation
package finance

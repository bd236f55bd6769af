// Package order provides the Order aggregate and the lifecycle state machine of the
// textile order service.
//
// The package includes:
//   - Order: the aggregate root holding catalog selection, pricing, notes, photos and status
//   - Status and Trigger: the states an order moves through and the operator actions that move it
//   - TransitionTable: the (state, trigger) -> (next state, side effects) table, validated at startup
//   - StructuredNotes: typed production notes with a lossless extension map
//   - Shipment and NonConformity: records produced as side effects of transitions
//
// Key business rules:
//   - Prices are always present and never negative
//   - Status changes only through a transition listed in the table
//   - Catalog selection is fixed at intake; pricing and notes can be edited only while CREATED
//   - Prices may be revised once more right before delivery, which freezes them into the ledger
package order

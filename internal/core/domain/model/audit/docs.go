// Package audit provides the append-only audit trail record.
//
// Every mutating command writes its audit entries inside the same transaction as the
// change they describe. Entries are never updated or deleted. Before and after values
// are stored as canonical JSON so structured values round-trip without loss.
package audit

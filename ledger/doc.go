// Package ledger implements the append-only, hash-chained ledgers that hold
// organ donation records.
//
// # Core Components
//
// Ledger: A named chain of blocks. The first block is a genesis block carrying
// a descriptive marker; every following block carries one serialized record.
//
// Block: A single immutable entry whose hash covers its index, the hash of its
// predecessor, its serialized payload and its timestamp.
//
// Registry: The process-wide holder of the donor, recipient and transplant
// ledgers, built once at startup and injected where needed.
//
// # Security Properties
//
// The ledger provides:
//   - Immutability: blocks are never edited or removed
//   - Tamper detection: any modification breaks the hash chain
//   - Auditability: a logical update is a new superseding block, so the full
//     history of every record stays readable
//
// # Usage
//
// Build a Registry, look up a ledger by name and Append records to it. Verify
// can be called at any time to check that the chain is still intact.
package ledger

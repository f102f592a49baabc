// Package organ implements the domain logic of the organ donation ledgers:
// the records stored in each ledger, their boundary validation and the
// donor matching policy.
//
// # Core Types
//
// Donor, Recipient and Transplant are the three record variants. Each one
// names the ledger it belongs to through the Record interface.
//
// # Superseding Records
//
// Ledgers are append-only, so a donor becomes "used" (or a recipient
// "transplanted") by appending a copy of the record with the flag set. Records
// carry an ID so that the matcher can recognize a later flagged copy and
// ignore the stale original still present earlier in the chain.
//
// # Matching
//
// FindMatch scans the donor ledger oldest to newest and returns the first
// donor with the recipient's exact blood type who is at least 18 years old.
package organ

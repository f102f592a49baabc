// Package application wires the ledgers and the matching policy into the
// operations offered to the request layer: registering donors, registering
// recipients (which triggers matching and transplant recording), and reading
// or searching a ledger.
package application

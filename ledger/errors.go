package ledger

import (
	"errors"
	"fmt"
)

var (
	// ErrGenesisPayload is returned when decoding the genesis block.
	ErrGenesisPayload = errors.New("genesis block carries no structured payload")
	// ErrIndexOutOfRange is returned by Get for an index past the tail.
	ErrIndexOutOfRange = errors.New("index out of range")
)

// EncodingError reports a payload that could not be serialized for chaining.
// The append that produced it left the ledger unchanged.
type EncodingError struct {
	Ledger string
	Err    error
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("ledger %s: cannot encode payload: %v", e.Ledger, e.Err)
}

func (e *EncodingError) Unwrap() error {
	return e.Err
}

// UnknownLedgerError is returned by the registry for a name it does not hold.
type UnknownLedgerError struct {
	Name string
}

func (e *UnknownLedgerError) Error() string {
	return fmt.Sprintf("unknown ledger %q", e.Name)
}

package ledger

import (
	"errors"
	"strings"
)

// Names of the ledgers held by a Registry.
const (
	Donor      = "donor"
	Recipient  = "recipient"
	Transplant = "transplant"
)

// Registry holds the donor, recipient and transplant ledgers. A single
// Registry is built at startup and shared by every request.
type Registry struct {
	ledgers map[string]*Ledger
}

// NewRegistry creates the three ledgers, each with its own genesis block.
// The options are applied to every ledger.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{ledgers: make(map[string]*Ledger, 3)}
	for _, name := range r.Names() {
		r.ledgers[name] = New(name, "Genesis Block for "+strings.ToUpper(name[:1])+name[1:], opts...)
	}
	return r
}

// Names returns the recognized ledger names.
func (r *Registry) Names() []string {
	return []string{Donor, Recipient, Transplant}
}

// Get returns the ledger called name, or an *UnknownLedgerError.
func (r *Registry) Get(name string) (*Ledger, error) {
	l, ok := r.ledgers[name]
	if !ok {
		return nil, &UnknownLedgerError{Name: name}
	}
	return l, nil
}

// Verify checks every ledger and joins the failures.
func (r *Registry) Verify() error {
	var errs []error
	for _, name := range r.Names() {
		if err := r.ledgers[name].Verify(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

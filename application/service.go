package application

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/luca-patrignani/organ-ledger/domain/organ"
	"github.com/luca-patrignani/organ-ledger/ledger"
)

// MatchOutcome is the result of submitting a recipient.
type MatchOutcome struct {
	Recipient ledger.Block // block holding the submitted recipient
	Matched   bool
	Donor     organ.Donor // zero unless Matched
	Recorded  Recorded    // zero unless Matched
}

// Service exposes the ledger operations to the request layer.
//
// Recipient submissions are serialized from the recipient append through the
// "used" append on the donor ledger, so a donor is never matched twice.
type Service struct {
	registry *ledger.Registry
	recorder *TransplantRecorder
	logger   *slog.Logger

	matchMu sync.Mutex
}

// NewService creates a service over registry.
func NewService(registry *ledger.Registry, notifier Notifier, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		registry: registry,
		recorder: NewTransplantRecorder(registry, notifier, logger),
		logger:   logger,
	}
}

// SubmitDonor appends d to the donor ledger under a freshly assigned ID.
// Any ID carried by d is replaced, so a new donor can never be mistaken for
// a superseded one.
func (s *Service) SubmitDonor(d organ.Donor) (ledger.Block, error) {
	d.ID = organ.NewRecordID()
	b, err := s.appendRecord(d)
	if err != nil {
		return ledger.Block{}, err
	}
	s.logger.Info("donor registered", "donor", d.Name, "hospital", d.Hospital, "block", b.Index)
	return b, nil
}

// SubmitRecipient appends r to the recipient ledger and looks for a donor.
// When one is found the transplant is recorded. Finding no donor is not an
// error: the recipient stays on the ledger as waiting. Like SubmitDonor it
// assigns a fresh ID.
func (s *Service) SubmitRecipient(r organ.Recipient) (MatchOutcome, error) {
	r.ID = organ.NewRecordID()

	s.matchMu.Lock()
	defer s.matchMu.Unlock()

	rb, err := s.appendRecord(r)
	if err != nil {
		return MatchOutcome{}, err
	}
	out := MatchOutcome{Recipient: rb}

	donors, err := s.registry.Get(ledger.Donor)
	if err != nil {
		return out, err
	}
	m, ok := organ.FindMatch(r, donors)
	if !ok {
		s.logger.Info("no matching donor, recipient waiting", "recipient", r.Name, "blood_type", string(r.BloodType))
		return out, nil
	}

	rec, err := s.recorder.Record(m.Donor, r)
	if err != nil {
		return out, err
	}
	out.Matched = true
	out.Donor = m.Donor
	out.Recorded = rec
	return out, nil
}

// ViewLedger returns every block of the named ledger in chain order.
func (s *Service) ViewLedger(name string) ([]ledger.Block, error) {
	l, err := s.registry.Get(name)
	if err != nil {
		return nil, err
	}
	return l.Blocks(), nil
}

// SearchLedger returns the blocks of the named ledger whose payload contains term.
func (s *Service) SearchLedger(name, term string) ([]ledger.Block, error) {
	l, err := s.registry.Get(name)
	if err != nil {
		return nil, err
	}
	return l.Search(term), nil
}

// VerifyLedger checks the hash chain of the named ledger.
func (s *Service) VerifyLedger(name string) error {
	l, err := s.registry.Get(name)
	if err != nil {
		return err
	}
	return l.Verify()
}

func (s *Service) appendRecord(rec organ.Record) (ledger.Block, error) {
	l, err := s.registry.Get(rec.LedgerName())
	if err != nil {
		return ledger.Block{}, err
	}
	b, err := l.Append(rec)
	if err != nil {
		return ledger.Block{}, fmt.Errorf("append %s: %w", rec.LedgerName(), err)
	}
	return b, nil
}

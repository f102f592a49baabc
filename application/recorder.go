package application

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/luca-patrignani/organ-ledger/domain/organ"
	"github.com/luca-patrignani/organ-ledger/ledger"
)

// Recorded holds the blocks appended for one transplant.
type Recorded struct {
	Transplant ledger.Block
	Donor      ledger.Block // superseding copy with Used set
	Recipient  ledger.Block // superseding copy with Transplanted set
}

// TransplantRecorder writes a match to the three ledgers and notifies the
// interested parties.
type TransplantRecorder struct {
	registry *ledger.Registry
	notifier Notifier
	logger   *slog.Logger
	now      func() time.Time
}

// NewTransplantRecorder creates a recorder over registry. A nil notifier
// disables notifications.
func NewTransplantRecorder(registry *ledger.Registry, notifier Notifier, logger *slog.Logger) *TransplantRecorder {
	if notifier == nil {
		notifier = nopNotifier{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &TransplantRecorder{
		registry: registry,
		notifier: notifier,
		logger:   logger,
		now:      time.Now,
	}
}

// Record appends a transplant record holding snapshots of donor and
// recipient, then a used copy of the donor and a transplanted copy of the
// recipient, then notifies the donor's hospital and the recipient.
//
// All three payloads are encoded before anything is appended, so an
// EncodingError leaves every ledger unchanged.
func (tr *TransplantRecorder) Record(donor organ.Donor, recipient organ.Recipient) (Recorded, error) {
	usedDonor := donor
	usedDonor.Used = true
	transplanted := recipient
	transplanted.Transplanted = true

	records := []organ.Record{
		organ.Transplant{Donor: donor, Recipient: recipient, Timestamp: tr.now().UnixNano()},
		usedDonor,
		transplanted,
	}

	ledgers := make([]*ledger.Ledger, len(records))
	entries := make([]ledger.Entry, len(records))
	for i, rec := range records {
		l, err := tr.registry.Get(rec.LedgerName())
		if err != nil {
			return Recorded{}, err
		}
		e, err := l.Encode(rec)
		if err != nil {
			return Recorded{}, fmt.Errorf("record transplant: %w", err)
		}
		ledgers[i], entries[i] = l, e
	}

	blocks := make([]ledger.Block, len(records))
	for i := range records {
		blocks[i] = ledgers[i].AppendEntry(entries[i])
	}
	out := Recorded{Transplant: blocks[0], Donor: blocks[1], Recipient: blocks[2]}

	tr.logger.Info("transplant recorded",
		"donor", donor.Name,
		"recipient", recipient.Name,
		"blood_type", string(donor.BloodType),
		"transplant_block", out.Transplant.Index,
	)

	tr.notifier.NotifyHospital(donor.Hospital, recipient.Name)
	tr.notifier.NotifyRecipient(recipient.Name)
	return out, nil
}

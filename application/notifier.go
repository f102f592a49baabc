package application

// Notifier is told about every recorded transplant. Calls are fire-and-forget:
// nothing they do can undo the ledger appends already made.
type Notifier interface {
	// NotifyHospital tells the donor's hospital that a match was found for recipient.
	NotifyHospital(hospital, recipient string)
	// NotifyRecipient tells the recipient that a donor was found.
	NotifyRecipient(recipient string)
}

type nopNotifier struct{}

func (nopNotifier) NotifyHospital(string, string) {}
func (nopNotifier) NotifyRecipient(string)        {}

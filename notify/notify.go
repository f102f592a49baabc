// Package notify provides implementations of application.Notifier.
package notify

import (
	"log/slog"

	"github.com/pterm/pterm"
)

// LogNotifier delivers notifications as structured log records.
type LogNotifier struct {
	logger *slog.Logger
}

// NewLogNotifier returns a notifier writing to logger.
func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) NotifyHospital(hospital, recipient string) {
	n.logger.Info("notification sent to hospital: a match has been found",
		"hospital", hospital, "recipient", recipient)
}

func (n *LogNotifier) NotifyRecipient(recipient string) {
	n.logger.Info("notification sent to recipient: a donor has been found",
		"recipient", recipient)
}

// Notifier mirrors application.Notifier so this package does not depend on it.
type Notifier interface {
	NotifyHospital(hospital, recipient string)
	NotifyRecipient(recipient string)
}

// Multi fans every notification out to each notifier in order.
type Multi []Notifier

func (m Multi) NotifyHospital(hospital, recipient string) {
	for _, n := range m {
		n.NotifyHospital(hospital, recipient)
	}
}

func (m Multi) NotifyRecipient(recipient string) {
	for _, n := range m {
		n.NotifyRecipient(recipient)
	}
}

// PrinterNotifier shows notifications to the terminal user.
type PrinterNotifier struct {
	printer pterm.PrefixPrinter
}

// NewPrinterNotifier returns a notifier printing through printer,
// for example pterm.Info.
func NewPrinterNotifier(printer pterm.PrefixPrinter) *PrinterNotifier {
	return &PrinterNotifier{printer: printer}
}

func (n *PrinterNotifier) NotifyHospital(hospital, recipient string) {
	n.printer.Printfln("Hospital %s notified: a match has been found for %s", hospital, recipient)
}

func (n *PrinterNotifier) NotifyRecipient(recipient string) {
	n.printer.Printfln("%s notified: a donor has been found", recipient)
}

package notify

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/pterm/pterm"
)

func TestLogNotifier(t *testing.T) {
	var buf bytes.Buffer
	n := NewLogNotifier(slog.New(slog.NewTextHandler(&buf, nil)))

	n.NotifyHospital("H1", "R1")
	n.NotifyRecipient("R1")

	out := buf.String()
	for _, want := range []string{"hospital=H1", "recipient=R1", "a donor has been found"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in log output:\n%s", want, out)
		}
	}
	if lines := strings.Count(out, "\n"); lines != 2 {
		t.Fatalf("expected 2 log records, got %d", lines)
	}
}

type counter struct {
	hospitals, recipients int
}

func (c *counter) NotifyHospital(string, string) { c.hospitals++ }
func (c *counter) NotifyRecipient(string)        { c.recipients++ }

func TestMulti(t *testing.T) {
	a, b := &counter{}, &counter{}
	m := Multi{a, b}
	m.NotifyHospital("H", "R")
	m.NotifyRecipient("R")
	m.NotifyRecipient("R")
	for _, c := range []*counter{a, b} {
		if c.hospitals != 1 || c.recipients != 2 {
			t.Fatalf("unexpected counts: %+v", *c)
		}
	}
}

func TestPrinterNotifier(t *testing.T) {
	pterm.DisableColor()
	defer pterm.EnableColor()

	var buf bytes.Buffer
	n := NewPrinterNotifier(*pterm.Info.WithWriter(&buf))
	Multi{n}.NotifyHospital("H1", "R1")
	Multi{n}.NotifyRecipient("R1")

	out := buf.String()
	for _, want := range []string{"Hospital H1 notified", "match has been found for R1", "R1 notified"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}

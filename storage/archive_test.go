package storage

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/luca-patrignani/organ-ledger/ledger"
)

func openTestArchive(t *testing.T) *Archive {
	t.Helper()
	a, err := OpenMemory()
	if err != nil {
		t.Fatalf("open memory archive: %v", err)
	}
	t.Cleanup(func() {
		if err := a.Close(); err != nil {
			t.Errorf("close archive: %v", err)
		}
	})
	return a
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestArchiveMirrorsRegistry(t *testing.T) {
	a := openTestArchive(t)
	reg := ledger.NewRegistry(ledger.WithAppendHook(a.Hook(discardLogger())))
	if err := a.Attach(reg); err != nil {
		t.Fatalf("attach: %v", err)
	}

	donors, _ := reg.Get(ledger.Donor)
	for i := 0; i < 12; i++ {
		if _, err := donors.Append(map[string]any{"name": fmt.Sprintf("D%d", i), "age": 30}); err != nil {
			t.Fatal(err)
		}
	}

	archived, err := a.Blocks(ledger.Donor)
	if err != nil {
		t.Fatal(err)
	}
	live := donors.Blocks()
	if len(archived) != len(live) {
		t.Fatalf("expected %d archived blocks, got %d", len(live), len(archived))
	}
	for i := range live {
		if archived[i] != live[i] {
			t.Fatalf("archived block %d differs from ledger", i)
		}
	}

	h, ok, err := a.Height(ledger.Donor)
	if err != nil || !ok || h != 12 {
		t.Fatalf("expected height 12, got %d (ok=%v, err=%v)", h, ok, err)
	}
	for _, name := range reg.Names() {
		if err := a.Verify(name); err != nil {
			t.Fatalf("verify %s: %v", name, err)
		}
	}
}

func TestArchiveLookups(t *testing.T) {
	a := openTestArchive(t)
	l := ledger.New(ledger.Recipient, "genesis")
	b, err := l.Append(map[string]string{"name": "R1"})
	if err != nil {
		t.Fatal(err)
	}
	if err := a.Put(ledger.Recipient, b); err != nil {
		t.Fatal(err)
	}

	got, err := a.Block(ledger.Recipient, 1)
	if err != nil || got != b {
		t.Fatalf("lookup by index: got %+v, err %v", got, err)
	}
	got, err = a.BlockByHash(ledger.Recipient, b.Hash)
	if err != nil || got != b {
		t.Fatalf("lookup by hash: got %+v, err %v", got, err)
	}
	if _, err := a.Block(ledger.Donor, 1); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, ok, _ := a.Height(ledger.Donor); ok {
		t.Fatal("empty ledger should have no height")
	}
}

func TestArchiveVerifyDetectsGap(t *testing.T) {
	a := openTestArchive(t)
	l := ledger.New(ledger.Donor, "genesis")
	for i := 0; i < 3; i++ {
		if _, err := l.Append(map[string]int{"n": i}); err != nil {
			t.Fatal(err)
		}
	}
	for _, b := range l.Blocks() {
		if b.Index == 2 {
			continue
		}
		if err := a.Put(ledger.Donor, b); err != nil {
			t.Fatal(err)
		}
	}
	if err := a.Verify(ledger.Donor); err == nil {
		t.Fatal("expected a missing block to break verification")
	}
}

func TestAttachResetsPreviousRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "archive")

	a, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	first := ledger.NewRegistry(ledger.WithAppendHook(a.Hook(discardLogger())))
	if err := a.Attach(first); err != nil {
		t.Fatal(err)
	}
	donors, _ := first.Get(ledger.Donor)
	for i := 0; i < 5; i++ {
		if _, err := donors.Append(map[string]int{"n": i}); err != nil {
			t.Fatal(err)
		}
	}
	if err := a.Close(); err != nil {
		t.Fatal(err)
	}

	a, err = Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer a.Close()
	if blocks, err := a.Blocks(ledger.Donor); err != nil || len(blocks) != 6 {
		t.Fatalf("expected previous run to be readable, got %d blocks (err=%v)", len(blocks), err)
	}

	second := ledger.NewRegistry(ledger.WithAppendHook(a.Hook(discardLogger())))
	if err := a.Attach(second); err != nil {
		t.Fatal(err)
	}
	blocks, err := a.Blocks(ledger.Donor)
	if err != nil {
		t.Fatal(err)
	}
	if len(blocks) != 1 {
		t.Fatalf("expected only the new genesis block, got %d", len(blocks))
	}
	if err := a.Verify(ledger.Donor); err != nil {
		t.Fatal(err)
	}
}

package main

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pterm/pterm"
	"github.com/pterm/pterm/putils"

	"github.com/luca-patrignani/organ-ledger/api"
	"github.com/luca-patrignani/organ-ledger/application"
	"github.com/luca-patrignani/organ-ledger/config"
	"github.com/luca-patrignani/organ-ledger/ledger"
	"github.com/luca-patrignani/organ-ledger/notify"
	"github.com/luca-patrignani/organ-ledger/storage"
)

func main() {
	mode := "serve"
	switch len(os.Args) {
	case 1:
	case 2:
		mode = os.Args[1]
	default:
		fmt.Fprintf(os.Stderr, "usage: %s [serve|shell]\n", os.Args[0])
		os.Exit(1)
	}
	if mode != "serve" && mode != "shell" {
		fmt.Fprintf(os.Stderr, "usage: %s [serve|shell]\n", os.Args[0])
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}
	logger := newLogger(cfg.LogLevel)

	pterm.DefaultBigText.WithLetters(
		putils.LettersFromStringWithStyle("Organ ", pterm.FgRed.ToStyle()),
		putils.LettersFromStringWithStyle("Ledger", pterm.FgDarkGray.ToStyle()),
	).Render()

	if err := run(mode, cfg, logger); err != nil {
		logger.Error(mode+" failed", "err", err)
		os.Exit(1)
	}
}

func run(mode string, cfg config.Config, logger *slog.Logger) error {
	var opts []ledger.Option
	var archive *storage.Archive
	if cfg.DBPath != "" {
		var err error
		archive, err = storage.Open(cfg.DBPath)
		if err != nil {
			return err
		}
		defer archive.Close()
		opts = append(opts, ledger.WithAppendHook(archive.Hook(logger)))
	}

	registry := ledger.NewRegistry(opts...)
	if archive != nil {
		if err := archive.Attach(registry); err != nil {
			return fmt.Errorf("initialize archive: %w", err)
		}
		pterm.Info.Printfln("Archiving blocks to %s", cfg.DBPath)
	}

	notifier := notify.Multi{notify.NewLogNotifier(logger)}
	if mode == "shell" {
		notifier = append(notifier, notify.NewPrinterNotifier(pterm.Info))
	}
	svc := application.NewService(registry, notifier, logger)

	if mode == "shell" {
		return runShell(svc, registry)
	}
	return serve(cfg, svc, logger)
}

// newLogger creates a slog logger printing through the PTerm logger.
func newLogger(level slog.Level) *slog.Logger {
	plevel := pterm.LogLevelInfo
	switch {
	case level <= slog.LevelDebug:
		plevel = pterm.LogLevelDebug
	case level >= slog.LevelError:
		plevel = pterm.LogLevelError
	case level >= slog.LevelWarn:
		plevel = pterm.LogLevelWarn
	}
	handler := pterm.NewSlogHandler(pterm.DefaultLogger.WithLevel(plevel))
	return slog.New(handler)
}

func serve(cfg config.Config, svc *application.Service, logger *slog.Logger) error {
	addr, err := listenAddress(cfg.Addr, config.DefaultPort)
	if err != nil {
		return fmt.Errorf("invalid address %q: %w", cfg.Addr, err)
	}
	l, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}

	opts := []api.ServerOption{api.WithLogger(logger), api.WithReadTimeout(30 * time.Second)}
	scheme := "http"
	if cfg.TLS {
		cert, _, err := api.GenerateSelfSignedCert(l.Addr().String())
		if err != nil {
			return fmt.Errorf("generate certificate: %w", err)
		}
		opts = append(opts, api.WithCertificate(cert))
		scheme = "https"
	}
	srv := api.NewServer(svc, opts...)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errChan := make(chan error, 1)
	go func() { errChan <- srv.Serve(l) }()
	pterm.Success.Printfln("Listening on %s://%s", scheme, l.Addr().String())

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
	}

	spinner, _ := pterm.DefaultSpinner.Start("Shutting down ...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		spinner.Fail()
		return err
	}
	spinner.Success()
	return <-errChan
}

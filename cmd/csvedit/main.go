package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"golang.org/x/term"

	"github.com/JonMunkholm/csvedit/internal/application"
	"github.com/JonMunkholm/csvedit/internal/audit"
	"github.com/JonMunkholm/csvedit/internal/config"
	"github.com/JonMunkholm/csvedit/internal/core"
	"github.com/JonMunkholm/csvedit/internal/csvfile"
	"github.com/JonMunkholm/csvedit/internal/logging"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Load .env file if it exists; explicit environment wins
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		return 1
	}

	out, closeLog, err := logging.OpenOutput(cfg.Logging.File)
	if err != nil {
		fmt.Fprintf(os.Stderr, "cannot open log file: %v\n", err)
		return 1
	}
	defer closeLog()
	logging.Setup(cfg.Logging.Level, cfg.Logging.Format, out)

	if envErr != nil {
		slog.Debug("no .env file found, using environment variables")
	}

	// The first argument overrides the configured file
	path := cfg.File.Path
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	ctx := logging.WithSession(context.Background(), uuid.NewString())
	log := logging.FromContext(ctx)
	log.Info("configuration loaded", "config", cfg.String(), "file", path)

	table, err := core.Load(csvfile.NewReader(cfg.File.Comma()), path,
		core.WithPlaceholder(cfg.Display.Placeholder))
	if err != nil {
		uErr := core.NewUserError(err)
		log.Error("failed to load table", "path", path, "error", uErr.Technical, "code", uErr.User.Code)
		fmt.Fprintf(os.Stderr, "Error: %s\n", uErr.Format())
		return 1
	}

	openCtx, cancel := context.WithTimeout(ctx, cfg.Audit.Timeout)
	recorder, err := audit.Open(openCtx, cfg.Audit.DatabaseURL)
	cancel()
	if err != nil {
		// The journal is optional; editing continues without it
		log.Warn("audit journal unavailable", "error", err)
		recorder = audit.Nop{}
	}
	defer func() {
		if err := recorder.Close(); err != nil {
			log.Warn("failed to close audit journal", "error", err)
		}
	}()

	// Pauses only make sense when a person is reading the output
	pause := cfg.Pacing.Delay
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		pause = 0
	}

	ctrl := application.NewController(
		table,
		application.NewPrompter(os.Stdin, os.Stdout),
		csvfile.NewWriter(cfg.File.Comma()),
		recorder,
		application.Settings{
			Source:          path,
			SaveDir:         cfg.File.SaveDir,
			SaveExtension:   cfg.File.SaveExtension,
			Separator:       cfg.Display.Separator,
			WindowSeparator: cfg.Display.WindowSeparator,
			Align:           cfg.Display.Align,
			Pause:           pause,
			AuditTimeout:    cfg.Audit.Timeout,
		},
	)

	sigCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Reads from stdin cannot be interrupted, so the loop runs on its own
	// goroutine and a signal ends the session without waiting for it.
	done := make(chan error, 1)
	go func() { done <- ctrl.Run(ctx) }()

	start := time.Now()
	select {
	case err = <-done:
	case <-sigCtx.Done():
		fmt.Fprintln(os.Stdout, "\nExiting the program.")
	}
	log.Info("session ended", "duration", time.Since(start).Round(time.Millisecond))

	if err != nil {
		log.Error("session failed", "error", err)
		return 1
	}
	return 0
}

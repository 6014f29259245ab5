// Command lookup resolves household profiles for a batch of IINs and prints
// one JSON line per IIN.
//
//	lookup [-snapshot dir] IIN...
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"famcard/internal/app"
	"famcard/internal/family/models"
	"famcard/internal/platform/config"
	"famcard/internal/platform/logger"
	dErrors "famcard/pkg/domain-errors"
)

var errLookupsFailed = errors.New("one or more lookups failed")

// Line is one output record.
type Line struct {
	IIN      string         `json:"iin"`
	Data     map[string]any `json:"data,omitempty"`
	Error    string         `json:"error,omitempty"`
	ErrorMsg string         `json:"error_msg,omitempty"`
}

// Looker is the slice of the service the command needs.
type Looker interface {
	Lookup(ctx context.Context, iin string) (*models.Family, error)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	switch {
	case err == nil:
	case errors.Is(err, flag.ErrHelp):
		os.Exit(2)
	case errors.Is(err, errLookupsFailed):
		os.Exit(1)
	default:
		fmt.Fprintln(os.Stderr, "lookup:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("lookup", flag.ContinueOnError)
	fs.SetOutput(stderr)
	snapshotDir := fs.String("snapshot", "", "read recorded backend responses from `dir` instead of calling the backend")
	fs.Usage = func() {
		fmt.Fprintln(stderr, "usage: lookup [-snapshot dir] IIN...")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return flag.ErrHelp
	}

	if *snapshotDir != "" {
		if err := os.Setenv("SNAPSHOT_DIR", *snapshotDir); err != nil {
			return err
		}
	}
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log := logger.NewWithWriter(stderr, cfg.Server.LogLevel, cfg.Server.LogFormat)
	slog.SetDefault(log)

	application, err := app.Build(ctx, cfg, app.WithLogger(log))
	if err != nil {
		return err
	}
	defer func() {
		if err := application.Close(); err != nil {
			log.Warn("closing resources failed", "error", err)
		}
	}()

	return lookupAll(ctx, application.Service, fs.Args(), stdout)
}

// lookupAll runs each IIN in order. A failed IIN is reported on its own line
// and does not stop the batch.
func lookupAll(ctx context.Context, svc Looker, iins []string, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)

	failed := false
	for _, iin := range iins {
		line := Line{IIN: iin}
		family, err := svc.Lookup(ctx, iin)
		if err != nil {
			de := dErrors.Classify(err)
			line.Error = string(de.Code)
			line.ErrorMsg = de.UserMessage()
			failed = true
		} else {
			line.Data = family.ToMap()
		}
		if err := enc.Encode(line); err != nil {
			return fmt.Errorf("write result: %w", err)
		}
	}
	if failed {
		return errLookupsFailed
	}
	return nil
}

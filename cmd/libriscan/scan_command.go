package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofrs/flock"
	"github.com/spf13/cobra"

	"libriscan/internal/capture"
	"libriscan/internal/catalog"
	"libriscan/internal/logging"
	"libriscan/internal/lookup"
	"libriscan/internal/scanning"
	"libriscan/internal/services"
)

func newScanCommand(cmdCtx *commandContext) *cobra.Command {
	var watch bool
	var dryRun bool
	var noLookup bool
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "scan [file]",
		Short: "Run a scan session over captured frames",
		Long: `Run a scan session over a frame stream and catalog the first
recognized identifier.

Frames are read one per line from the given file, or from stdin when the
argument is omitted or "-". Each line holds one or more detections
separated by "|", written as source:text or source@confidence:text,
where source is one of ean13, ean8, other, or text:

  ean13:9780141439518
  ean13:4006381333931|other:0141439513
  text@0.92:ISBN 978-0-14-143951-8

With --watch the command instead waits for a scanner device to be
attached and logs hotplug events until interrupted.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if watch {
				return runWatch(cmdCtx, cmd)
			}
			return runReplayScan(cmdCtx, cmd, args, scanOptions{
				dryRun:   dryRun,
				noLookup: noLookup,
				jsonOut:  jsonOut,
			})
		},
	}

	cmd.Flags().BoolVar(&watch, "watch", false, "Wait for scanner hotplug events instead of reading frames")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Recognize without adding the result to the catalog")
	cmd.Flags().BoolVar(&noLookup, "no-lookup", false, "Skip the Open Library metadata lookup")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit the result as JSON")
	return cmd
}

type scanOptions struct {
	dryRun   bool
	noLookup bool
	jsonOut  bool
}

type scanResult struct {
	SessionID  string `json:"session_id"`
	Identifier string `json:"identifier"`
	Tier       string `json:"tier"`
	Source     string `json:"source"`
	Frames     int    `json:"frames"`
	EntryID    int64  `json:"entry_id,omitempty"`
	Title      string `json:"title,omitempty"`
	Author     string `json:"author,omitempty"`
}

func runReplayScan(cmdCtx *commandContext, cmd *cobra.Command, args []string, opts scanOptions) error {
	cfg, err := cmdCtx.ensureConfig()
	if err != nil {
		return err
	}

	reader, closeReader, err := openFrameStream(cmd, args)
	if err != nil {
		return err
	}
	defer closeReader()

	frames, err := capture.ReadFrames(reader)
	if err != nil {
		return err
	}
	if len(frames) == 0 {
		return errors.New("no frames to scan")
	}

	logger := cmdCtx.ensureLogger()
	session := scanning.NewSession(
		scanning.WithFrameInterval(cfg.FrameInterval()),
		scanning.WithLogger(logger),
	)
	session.Start()

	runCtx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	source := capture.NewReplaySource(frames, cfg.FrameInterval())
	if err := source.Start(runCtx); err != nil {
		return err
	}
	defer source.Stop()

	emission, err := pumpFrames(runCtx, source, session)
	if err != nil {
		return err
	}
	if emission == nil {
		return fmt.Errorf("no identifier recognized from %d frames", len(frames))
	}

	result := scanResult{
		SessionID:  emission.SessionID,
		Identifier: emission.Identifier.Value,
		Tier:       emission.Identifier.Tier.String(),
		Source:     string(emission.Identifier.Source),
		Frames:     len(frames),
	}

	out := cmd.OutOrStdout()
	if !opts.jsonOut {
		fmt.Fprintln(out, statusLine(out, "✓", ansiGreen,
			fmt.Sprintf("Recognized %s (%s, %s)", result.Identifier, result.Tier, result.Source)))
	}

	switch {
	case opts.dryRun:
	case emission.Identifier.Tier == scanning.TierUnclassified:
		// A raw fallback value is not an ISBN; surface it but do not store it.
		if !opts.jsonOut {
			fmt.Fprintln(out, statusLine(out, "!", ansiYellow, "Fallback value failed every checksum; not cataloged"))
		}
	default:
		if err := catalogEmission(cmdCtx, cmd, opts, emission, &result); err != nil {
			return err
		}
	}

	if opts.jsonOut {
		return writeJSON(cmd, result)
	}
	return nil
}

// catalogEmission persists the recognized identifier, enriching it with
// Open Library metadata when the lookup client is enabled.
func catalogEmission(cmdCtx *commandContext, cmd *cobra.Command, opts scanOptions, emission *scanning.Emission, result *scanResult) error {
	cfg := cmdCtx.configValue()
	out := cmd.OutOrStdout()

	title, author := "", ""
	if cfg.Lookup.Enabled && !opts.noLookup {
		client, err := lookup.New(cfg.Lookup.BaseURL, time.Duration(cfg.Lookup.RequestTimeout)*time.Second)
		if err != nil {
			return err
		}
		book, err := client.FetchByISBN(cmd.Context(), emission.Identifier.Value)
		switch {
		case errors.Is(err, services.ErrNotFound):
			if !opts.jsonOut {
				fmt.Fprintln(out, statusLine(out, "!", ansiYellow, "No Open Library record; cataloging identifier only"))
			}
		case err != nil:
			if !opts.jsonOut {
				fmt.Fprintln(out, statusLine(out, "!", ansiYellow, fmt.Sprintf("Lookup failed: %v", err)))
			}
		default:
			title = book.Title
			author = book.Author()
		}
	}

	return cmdCtx.withStore(func(store *catalog.Store) error {
		existing, err := store.FindByISBN(cmd.Context(), emission.Identifier.Value)
		if err != nil {
			return err
		}
		if existing != nil {
			if !opts.jsonOut {
				fmt.Fprintln(out, statusLine(out, "!", ansiYellow,
					fmt.Sprintf("Already cataloged as entry %d (%s)", existing.ID, existing.Title)))
			}
			result.EntryID = existing.ID
			result.Title = existing.Title
			result.Author = existing.Author
			return nil
		}

		if title == "" {
			title = emission.Identifier.Value
		}
		entry, err := store.Add(cmd.Context(), title, author, emission.Identifier.Value)
		if err != nil {
			return err
		}
		result.EntryID = entry.ID
		result.Title = entry.Title
		result.Author = entry.Author

		if !opts.jsonOut {
			fmt.Fprintln(out, statusLine(out, "✓", ansiGreen,
				fmt.Sprintf("Added entry %d: %s", entry.ID, entry.Title)))
		}

		if err := cmdCtx.notifier().NotifyScanEmitted(cmd.Context(), entry.ISBN, entry.Title); err != nil {
			cmdCtx.ensureLogger().Warn("scan notification failed", logging.Error(err))
		}
		return nil
	})
}

// pumpFrames drives the session from the source until an emission arrives
// or the stream ends.
func pumpFrames(ctx context.Context, source capture.Source, session *scanning.Session) (*scanning.Emission, error) {
	frames := source.Frames()
	for {
		select {
		case frame, ok := <-frames:
			if !ok {
				// Stream drained; an emission may still be pending.
				select {
				case emission := <-session.Emissions():
					return &emission, nil
				default:
					return nil, nil
				}
			}
			session.HandleFrame(frame)
		case emission := <-session.Emissions():
			return &emission, nil
		case err := <-session.Failures():
			return nil, err
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}

func openFrameStream(cmd *cobra.Command, args []string) (io.Reader, func(), error) {
	if len(args) == 0 || args[0] == "-" {
		return cmd.InOrStdin(), func() {}, nil
	}
	file, err := os.Open(args[0])
	if err != nil {
		return nil, nil, fmt.Errorf("open frame file: %w", err)
	}
	return file, func() { _ = file.Close() }, nil
}

func runWatch(cmdCtx *commandContext, cmd *cobra.Command) error {
	cfg, err := cmdCtx.ensureConfig()
	if err != nil {
		return err
	}
	logger := cmdCtx.ensureLogger()

	lock := flock.New(cfg.LockPath())
	ok, err := lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return errors.New("another libriscan watcher is already running")
	}
	defer func() { _ = lock.Unlock() }()

	runCtx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	out := cmd.OutOrStdout()
	monitor := capture.NewDeviceMonitor(logger, cfg.Scanning.WatchDevice, func(ctx context.Context, device string) {
		fmt.Fprintln(out, statusLine(out, "✓", ansiGreen, fmt.Sprintf("Scanner attached: %s", device)))
	})
	if err := monitor.Start(runCtx); err != nil {
		return err
	}
	defer monitor.Stop()

	fmt.Fprintln(out, "Watching for scanner devices; press Ctrl-C to stop")
	<-runCtx.Done()
	fmt.Fprintln(out, "Watcher stopped")
	return nil
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// serve.go - HTTP API and schedule commands for reelbudget.
package cli

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jeranaias/reelbudget/internal/export"
	"github.com/jeranaias/reelbudget/internal/ledger"
	"github.com/jeranaias/reelbudget/internal/server"
	"github.com/jeranaias/reelbudget/internal/session"
)

// =============================================================================
// SERVE
// =============================================================================

func newServeCmd() *cobra.Command {
	var addr, watch string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the JSON API",
		Long: `Serve the budget, chat, schedule and settings JSON API.

With --watch, the named CSV or JSON ledger is loaded at startup and
reloaded whenever it changes on disk.`,
		Example: `  reelbudget serve
  reelbudget serve --addr 127.0.0.1:9000 --watch budget.csv`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, addr, watch)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from config, 127.0.0.1:8790)")
	cmd.Flags().StringVar(&watch, "watch", "", "Ledger file to load and hot-reload")
	return cmd
}

func runServe(cmd *cobra.Command, addr, watch string) error {
	sess, cfg, cleanup, err := openSession(openOptions{logToStderr: true})
	if err != nil {
		return err
	}
	defer cleanup()

	if addr != "" {
		cfg.Server.Addr = addr
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if watch != "" {
		w, err := startWatcher(ctx, sess, watch)
		if err != nil {
			return err
		}
		defer w.Close()
	}

	srv := server.New(sess, cfg.Server, server.WithVersion(Version), server.WithLogger(log.Default()))
	if !flagQuiet {
		fmt.Fprintf(cmd.ErrOrStderr(), "reelbudget API listening on http://%s (Ctrl+C to stop)\n", srv.Addr())
	}
	return srv.Run(ctx)
}

// startWatcher loads path into the session ledger and keeps it in sync with
// the file until ctx is done.
func startWatcher(ctx context.Context, sess *session.Session, path string) (*export.Watcher, error) {
	w, err := export.NewWatcher(path, export.DefaultDebounce, func(items []ledger.Item) {
		sess.Ledger().ReplaceAll(items)
	})
	if err != nil {
		return nil, err
	}
	if err := w.Reload(); err != nil {
		_ = w.Close()
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	go func() {
		if err := w.Run(ctx); err != nil {
			log.Printf("IMPORT_WATCH_STOPPED | path=%s error=%v", w.Path(), err)
		}
	}()
	return w, nil
}

// =============================================================================
// SCHEDULE
// =============================================================================

func newScheduleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schedule",
		Short: "Show the production schedule",
		Args:  cobra.NoArgs,
		RunE:  runSchedule,
	}
}

func runSchedule(cmd *cobra.Command, _ []string) error {
	sess, _, cleanup, err := openSession(openOptions{})
	if err != nil {
		return err
	}
	defer cleanup()

	items := sess.Schedule().Items()
	out := cmd.OutOrStdout()
	if flagJSON {
		return outputJSON(out, "schedule", items)
	}
	if len(items) == 0 {
		fmt.Fprintln(out, "No scheduled events.")
		return nil
	}

	rows := make([][]string, 0, len(items))
	for _, it := range items {
		rows = append(rows, []string{
			it.Date,
			it.Time,
			it.Title,
			it.Location,
			strings.Join(it.Crew, ", "),
			string(it.Status),
		})
	}
	fmt.Fprint(out, Table{
		Headers:   []string{"Date", "Time", "Event", "Location", "Crew", "Status"},
		Rows:      rows,
		LeftAlign: []int{1, 2, 3, 4, 5},
	}.Render())
	return nil
}

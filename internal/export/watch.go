// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/jeranaias/reelbudget/internal/ledger"
)

// =============================================================================
// FILE WATCHER
// =============================================================================

// DefaultDebounce is how long a file must be quiet before it is re-imported.
const DefaultDebounce = 300 * time.Millisecond

// Watcher re-imports one budget file whenever it changes and hands the
// items to a callback, typically Store.ReplaceAll.
type Watcher struct {
	path     string
	debounce time.Duration
	apply    func([]ledger.Item)
	watcher  *fsnotify.Watcher
	reloads  atomic.Int64
}

// NewWatcher creates a watcher for path. The parent directory is watched
// so that editors which save by rename are picked up too.
func NewWatcher(path string, debounce time.Duration, apply func([]ledger.Item)) (*Watcher, error) {
	if _, err := FormatForPath(path); err != nil {
		return nil, err
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		_ = fw.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}

	return &Watcher{
		path:     abs,
		debounce: debounce,
		apply:    apply,
		watcher:  fw,
	}, nil
}

// Path returns the absolute path being watched.
func (w *Watcher) Path() string {
	return w.path
}

// Reloads returns how many times the file has been applied.
func (w *Watcher) Reloads() int64 {
	return w.reloads.Load()
}

// Reload reads the file now and applies its items.
func (w *Watcher) Reload() error {
	items, err := ReadFile(w.path)
	if err != nil {
		return err
	}
	w.apply(items)
	w.reloads.Add(1)
	log.Printf("IMPORT_RELOAD | path=%s items=%d", w.path, len(items))
	return nil
}

// Run processes file events until ctx is done or the watcher is closed.
// A burst of events results in a single reload once the file has been
// quiet for the debounce interval. Reload failures are logged and the
// previous ledger contents are kept.
func (w *Watcher) Run(ctx context.Context) error {
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				fire = time.After(w.debounce)
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			log.Printf("IMPORT_WATCH_ERROR | path=%s error=%v", w.path, err)

		case <-fire:
			fire = nil
			if err := w.Reload(); err != nil {
				log.Printf("IMPORT_RELOAD_FAILED | path=%s error=%v", w.path, err)
			}
		}
	}
}

// Close stops watching and releases resources.
func (w *Watcher) Close() error {
	return w.watcher.Close()
}

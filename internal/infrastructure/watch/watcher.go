// Package watch re-runs analytics when snapshot files change on disk.
package watch

import (
	"context"
	"fmt"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ChangeEvent represents a snapshot file change.
type ChangeEvent struct {
	Path       string
	ChangeType string // "create", "write", "remove", "rename"
}

// SnapshotWatcher watches the .pulse directory and fires a debounced
// callback when a snapshot artifact changes. The run log is excluded so
// recording a run never retriggers the watcher.
type SnapshotWatcher struct {
	watcher  *fsnotify.Watcher
	filter   *PatternFilter
	debounce time.Duration
	onChange func(ChangeEvent)
}

// NewSnapshotWatcher creates a watcher for yaml snapshot artifacts.
func NewSnapshotWatcher(debounce time.Duration, onChange func(ChangeEvent)) (*SnapshotWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create fsnotify watcher: %w", err)
	}
	if debounce == 0 {
		debounce = 500 * time.Millisecond
	}
	return &SnapshotWatcher{
		watcher:  w,
		filter:   NewPatternFilter([]string{"*.yaml"}, []string{"*.jsonl"}),
		debounce: debounce,
		onChange: onChange,
	}, nil
}

// Watch adds the .pulse directory to the watch set.
func (w *SnapshotWatcher) Watch(pulseDir string) error {
	if err := w.watcher.Add(pulseDir); err != nil {
		return fmt.Errorf("watch %s: %w", pulseDir, err)
	}
	return nil
}

// Run starts the event loop. It blocks until the context is cancelled.
func (w *SnapshotWatcher) Run(ctx context.Context) error {
	defer w.watcher.Close()

	var lastEvent ChangeEvent
	debouncer := NewDebouncer(w.debounce, func() {
		if w.onChange != nil {
			w.onChange(lastEvent)
		}
	})
	defer debouncer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			changeType := opToChangeType(event.Op)
			if changeType == "" {
				continue
			}
			if !w.filter.Matches(event.Name) {
				continue
			}

			lastEvent = ChangeEvent{Path: event.Name, ChangeType: changeType}
			debouncer.Trigger()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("watcher error: %w", err)
		}
	}
}

func opToChangeType(op fsnotify.Op) string {
	switch {
	case op.Has(fsnotify.Create):
		return "create"
	case op.Has(fsnotify.Write):
		return "write"
	case op.Has(fsnotify.Remove):
		return "remove"
	case op.Has(fsnotify.Rename):
		return "rename"
	default:
		return ""
	}
}

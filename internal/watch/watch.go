// Package watch reports settled changes to a local corpus directory.
package watch

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DebounceInterval is how long the tree must stay quiet after an event
// before a change is reported.
const DebounceInterval = 200 * time.Millisecond

type Watcher struct {
	dir      string
	debounce time.Duration
}

func New(dir string, debounce time.Duration) *Watcher {
	if debounce <= 0 {
		debounce = DebounceInterval
	}
	return &Watcher{dir: dir, debounce: debounce}
}

// Run watches the directory tree until ctx is done and calls onChange once
// per burst of markdown changes. Directories created while running are
// watched too. onChange runs on the calling goroutine.
func (w *Watcher) Run(ctx context.Context, onChange func(ctx context.Context)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}
	defer watcher.Close()

	if err := addTree(watcher, w.dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", w.dir, err)
	}
	slog.InfoContext(ctx, "watching corpus", "dir", w.dir)

	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := addTree(watcher, event.Name); err != nil {
						slog.WarnContext(ctx, "failed to watch new directory", "dir", event.Name, "error", err)
					}
				}
			}
			if !relevant(event) {
				continue
			}
			slog.DebugContext(ctx, "detected filesystem event", "op", event.Op.String(), "path", event.Name)
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			onChange(ctx)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.WarnContext(ctx, "fsnotify error", "error", err)
		}
	}
}

// relevant keeps markdown edits and any removal or rename, which may take
// a whole directory of documents with it.
func relevant(event fsnotify.Event) bool {
	if event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
		return true
	}
	if event.Has(fsnotify.Chmod) && !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return false
	}
	return filepath.Ext(event.Name) == ".md"
}

func addTree(watcher *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return watcher.Add(p)
		}
		return nil
	})
}

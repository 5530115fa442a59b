// Package watcher drives background corpus re-fits for long-running
// hosts. It watches the corpus file with fsnotify and falls back to
// mtime polling when fsnotify cannot be created. Rapid events are
// debounced so an editor save (write + rename + chmod) triggers one
// re-fit, not three.
//
// The read-path mtime check in the matcher remains the source of
// truth; the watcher just makes reloads prompt instead of lazy.
package watcher

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Options configures the corpus watcher.
type Options struct {
	// PollInterval is the polling fallback cadence.
	PollInterval time.Duration
	// DebounceWindow is how long events are coalesced before the
	// change callback fires.
	DebounceWindow time.Duration
}

// WithDefaults fills unset options.
func (o Options) WithDefaults() Options {
	if o.PollInterval <= 0 {
		o.PollInterval = 2 * time.Second
	}
	if o.DebounceWindow <= 0 {
		o.DebounceWindow = 500 * time.Millisecond
	}
	return o
}

// CorpusWatcher watches a single corpus file for changes.
type CorpusWatcher struct {
	path string
	opts Options
	log  *slog.Logger

	fsw         *fsnotify.Watcher
	useFsnotify bool
}

// New creates a watcher for the given corpus file. fsnotify is tried
// first; if it cannot be initialized the watcher polls instead.
func New(path string, opts Options, log *slog.Logger) (*CorpusWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	w := &CorpusWatcher{
		path: abs,
		opts: opts.WithDefaults(),
		log:  log,
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		log.Warn("fsnotify unavailable, falling back to polling",
			slog.String("error", err.Error()))
		return w, nil
	}
	// Watch the directory, not the file: editors replace files by
	// rename, which drops a direct file watch.
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		_ = fsw.Close()
		log.Warn("fsnotify watch failed, falling back to polling",
			slog.String("error", err.Error()))
		return w, nil
	}
	w.fsw = fsw
	w.useFsnotify = true
	return w, nil
}

// Run blocks until ctx is canceled, invoking onChange after each
// settled change to the corpus file.
func (w *CorpusWatcher) Run(ctx context.Context, onChange func()) error {
	defer w.close()

	if w.useFsnotify {
		return w.runFsnotify(ctx, onChange)
	}
	return w.runPolling(ctx, onChange)
}

func (w *CorpusWatcher) close() {
	if w.fsw != nil {
		_ = w.fsw.Close()
	}
}

func (w *CorpusWatcher) runFsnotify(ctx context.Context, onChange func()) error {
	var debounce *time.Timer
	fire := make(chan struct{}, 1)

	for {
		select {
		case <-ctx.Done():
			if debounce != nil {
				debounce.Stop()
			}
			return ctx.Err()

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if !ev.Has(fsnotify.Write | fsnotify.Create | fsnotify.Rename | fsnotify.Remove) {
				continue
			}
			w.log.Debug("corpus event", slog.String("op", ev.Op.String()))
			if debounce == nil {
				debounce = time.AfterFunc(w.opts.DebounceWindow, func() {
					select {
					case fire <- struct{}{}:
					default:
					}
				})
			} else {
				debounce.Reset(w.opts.DebounceWindow)
			}

		case <-fire:
			debounce = nil
			onChange()

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.log.Warn("watcher error", slog.String("error", err.Error()))
		}
	}
}

func (w *CorpusWatcher) runPolling(ctx context.Context, onChange func()) error {
	last := w.snapshot()
	ticker := time.NewTicker(w.opts.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			cur := w.snapshot()
			if cur != last {
				last = cur
				onChange()
			}
		}
	}
}

// snapshot captures the file state used for change detection. A
// missing file snapshots to the zero value, so disappear/reappear
// cycles are detected too.
func (w *CorpusWatcher) snapshot() fileSnapshot {
	info, err := os.Stat(w.path)
	if err != nil {
		return fileSnapshot{}
	}
	return fileSnapshot{modTime: info.ModTime(), size: info.Size(), exists: true}
}

type fileSnapshot struct {
	modTime time.Time
	size    int64
	exists  bool
}

// Package watcher reruns a callback when network definition files change.
package watcher

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"ductnoise/internal/logging"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the quiet period used when none is configured
const DefaultDebounce = 500 * time.Millisecond

// Watcher watches a set of files and calls onChange once per burst of
// writes to any of them. Callbacks run one at a time on the goroutine
// that called Watch.
type Watcher struct {
	paths    []string
	onChange func(ctx context.Context, path string)
	debounce time.Duration
	logger   logging.Logger
}

// New creates a new file watcher
func New(paths []string, onChange func(ctx context.Context, path string)) *Watcher {
	return &Watcher{
		paths:    paths,
		onChange: onChange,
		debounce: DefaultDebounce,
		logger:   logging.Noop(),
	}
}

// WithDebounce sets the debounce duration
func (w *Watcher) WithDebounce(d time.Duration) *Watcher {
	if d > 0 {
		w.debounce = d
	}
	return w
}

// WithLogger sets the logger for watch events
func (w *Watcher) WithLogger(l logging.Logger) *Watcher {
	w.logger = l
	return w
}

// Watch starts watching the files for changes.
// It blocks until the context is cancelled or an error occurs.
func (w *Watcher) Watch(ctx context.Context) error {
	fw, files, err := w.open(ctx)
	if err != nil {
		return err
	}
	defer fw.Close()

	return w.loop(ctx, fw, files)
}

// open registers the parent directory of every file. Watching directories
// catches editors that replace the file instead of writing it in place.
func (w *Watcher) open(ctx context.Context) (*fsnotify.Watcher, map[string]bool, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	dirs := make(map[string]bool)
	files := make(map[string]bool)
	for _, path := range w.paths {
		abs, err := filepath.Abs(path)
		if err != nil {
			fw.Close()
			return nil, nil, fmt.Errorf("failed to resolve %s: %w", path, err)
		}

		dir := filepath.Dir(abs)
		if !dirs[dir] {
			if err := fw.Add(dir); err != nil {
				fw.Close()
				return nil, nil, fmt.Errorf("failed to watch directory %s: %w", dir, err)
			}
			dirs[dir] = true
		}

		files[abs] = true
		w.logger.Info(ctx, "watching for changes", logging.String("path", abs))
	}

	return fw, files, nil
}

func (w *Watcher) loop(ctx context.Context, fw *fsnotify.Watcher, files map[string]bool) error {
	timers := make(map[string]*time.Timer)
	fired := make(chan string)
	done := make(chan struct{})

	defer func() {
		close(done)
		for _, timer := range timers {
			timer.Stop()
		}
	}()

	for {
		select {
		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}

			abs, err := filepath.Abs(event.Name)
			if err != nil || !files[abs] {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}

			if timer, exists := timers[abs]; exists {
				timer.Stop()
			}
			timers[abs] = time.AfterFunc(w.debounce, func() {
				deliver(ctx, fired, done, abs)
			})

		case path := <-fired:
			delete(timers, path)
			w.logger.Info(ctx, "file changed", logging.String("path", path))
			w.onChange(ctx, path)

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn(ctx, "watcher error", logging.Err(err))

		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// deliver hands a debounced path to the loop. It gives up once the loop has
// returned or ctx is done.
func deliver(ctx context.Context, fired chan<- string, done <-chan struct{}, path string) bool {
	select {
	case fired <- path:
		return true
	case <-done:
		return false
	case <-ctx.Done():
		return false
	}
}

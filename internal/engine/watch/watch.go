// Package watch reports changes to a fixed set of files.
//
// Directories are watched rather than the files themselves so that editors
// which save by renaming a temporary file are still noticed.
package watch

import (
	"fmt"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/Faultbox/learngl/internal/logger"
)

const queueSize = 32

// Watcher delivers the paths of modified files on a channel.
type Watcher struct {
	fsw     *fsnotify.Watcher
	files   map[string]string // absolute path -> path as given
	changes chan string
	done    chan struct{}
	once    sync.Once
	err     error
}

// New starts watching files.
func New(files ...string) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}

	w := &Watcher{
		fsw:     fsw,
		files:   make(map[string]string, len(files)),
		changes: make(chan string, queueSize),
		done:    make(chan struct{}),
	}

	dirs := make(map[string]bool)
	for _, f := range files {
		abs, err := filepath.Abs(f)
		if err != nil {
			fsw.Close()
			return nil, fmt.Errorf("resolving %s: %w", f, err)
		}
		w.files[abs] = f
		dirs[filepath.Dir(abs)] = true
	}
	for dir := range dirs {
		if err := fsw.Add(dir); err != nil {
			fsw.Close()
			return nil, fmt.Errorf("watching %s: %w", dir, err)
		}
	}

	go w.run()
	return w, nil
}

func (w *Watcher) run() {
	defer close(w.changes)
	for {
		select {
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			path, ok := w.files[filepath.Clean(ev.Name)]
			if !ok {
				continue
			}
			select {
			case w.changes <- path:
			default:
				// Queue full; Drain dedupes anyway.
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			logger.Warn("file watcher error", zap.Error(err))
		case <-w.done:
			return
		}
	}
}

// Changes returns the channel of modified paths, as they were passed to New.
func (w *Watcher) Changes() <-chan string {
	return w.changes
}

// Drain returns the distinct paths changed since the last call without
// blocking.
func (w *Watcher) Drain() []string {
	var out []string
	seen := make(map[string]bool)
	for {
		select {
		case p, ok := <-w.changes:
			if !ok {
				return out
			}
			if !seen[p] {
				seen[p] = true
				out = append(out, p)
			}
		default:
			return out
		}
	}
}

// Close stops watching. Later calls return the first result.
func (w *Watcher) Close() error {
	w.once.Do(func() {
		close(w.done)
		w.err = w.fsw.Close()
	})
	return w.err
}

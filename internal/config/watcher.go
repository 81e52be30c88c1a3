package config

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/iburimskiy/dotgrid/internal/logging"
)

// DefaultDebounce collapses bursts of write events from editors.
const DefaultDebounce = 250 * time.Millisecond

// ChangeFunc receives a freshly loaded configuration. It runs on the
// watcher's goroutine; hosts with a single-threaded loop must hand it over.
type ChangeFunc func(Config)

// Watcher reloads a config file whenever it changes on disk. The parent
// directory is watched so atomic saves (write temp, rename) are seen.
type Watcher struct {
	path     string
	debounce time.Duration
	onChange ChangeFunc

	fsWatcher *fsnotify.Watcher

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu    sync.Mutex
	timer *time.Timer
}

// NewWatcher creates a watcher for path. Call Start to begin delivering
// changes and Stop to release it.
func NewWatcher(path string, onChange ChangeFunc) (*Watcher, error) {
	if _, err := FormatOf(path); err != nil {
		return nil, err
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve config path %s: %w", path, err)
	}
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file system watcher: %w", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Watcher{
		path:      abs,
		debounce:  DefaultDebounce,
		onChange:  onChange,
		fsWatcher: fsWatcher,
		ctx:       ctx,
		cancel:    cancel,
	}, nil
}

// SetDebounce changes the quiet period before a reload. Call before Start.
func (w *Watcher) SetDebounce(d time.Duration) *Watcher {
	w.debounce = d
	return w
}

// Start begins watching.
func (w *Watcher) Start() error {
	if err := w.fsWatcher.Add(filepath.Dir(w.path)); err != nil {
		return fmt.Errorf("failed to watch config directory: %w", err)
	}
	w.wg.Add(1)
	go w.watchLoop()
	return nil
}

// Stop ends watching and waits for the loop to exit. A reload already
// scheduled is dropped.
func (w *Watcher) Stop() error {
	w.cancel()
	err := w.fsWatcher.Close()
	w.wg.Wait()

	w.mu.Lock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.mu.Unlock()
	return err
}

func (w *Watcher) watchLoop() {
	defer w.wg.Done()
	log := logging.Logger()

	for {
		select {
		case <-w.ctx.Done():
			return

		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				w.schedule()
			}

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			log.Warn("config watcher error", "err", err)
		}
	}
}

func (w *Watcher) schedule() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, w.reload)
}

func (w *Watcher) reload() {
	if w.ctx.Err() != nil {
		return
	}
	cfg, err := Load(w.path)
	if err != nil {
		logging.Logger().Warn("config reload failed, keeping current field", "path", w.path, "err", err)
		return
	}
	logging.Logger().Info("config changed", "path", w.path)
	w.onChange(cfg)
}

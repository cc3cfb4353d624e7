package metadata

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/cory-johannsen/ocsm/internal/game/gamesystem"
)

// DefaultDebounce is how long a metadata file must stay quiet before it is reloaded.
const DefaultDebounce = 250 * time.Millisecond

// Watcher reloads the current game system's catalog when its document changes on disk,
// so edits made outside the process reach every subscriber.
type Watcher struct {
	mu       sync.Mutex
	watcher  *fsnotify.Watcher
	manager  *Manager
	logger   *zap.Logger
	dir      string
	debounce time.Duration
	pending  map[string]time.Time
	stopCh   chan struct{}
	doneCh   chan struct{}
	running  bool
	reloads  int
}

// NewWatcher creates a Watcher on dir. A debounce <= 0 uses DefaultDebounce.
//
// Precondition: manager must not be nil.
func NewWatcher(dir string, manager *Manager, debounce time.Duration, logger *zap.Logger) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Watcher{
		watcher:  fw,
		manager:  manager,
		logger:   logger,
		dir:      dir,
		debounce: debounce,
		pending:  make(map[string]time.Time),
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}, nil
}

// Start begins watching in a background goroutine. Calling Start twice is a no-op.
//
// Postcondition: On error no goroutine is running and Stop returns immediately.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.running {
		return nil
	}

	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return err
	}
	if err := w.watcher.Add(w.dir); err != nil {
		return err
	}
	w.logger.Info("watching metadata directory", zap.String("dir", w.dir))

	w.running = true
	go w.run(ctx)
	return nil
}

// Stop ends the watch loop and releases the underlying watcher.
func (w *Watcher) Stop() {
	w.mu.Lock()
	running := w.running
	w.running = false
	w.mu.Unlock()

	if running {
		close(w.stopCh)
		<-w.doneCh
	}
	if err := w.watcher.Close(); err != nil {
		w.logger.Warn("closing metadata watcher", zap.Error(err))
	}
}

// Reloads returns how many reloads the watcher has triggered.
func (w *Watcher) Reloads() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.reloads
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.doneCh)

	tick := max(w.debounce/4, 10*time.Millisecond)
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopCh:
			return
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handle(ev)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("metadata watcher error", zap.Error(err))
		case <-ticker.C:
			w.flush(ctx)
		}
	}
}

func (w *Watcher) handle(ev fsnotify.Event) {
	if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Rename) {
		return
	}
	if filepath.Ext(ev.Name) != ".ocmd" {
		return
	}
	w.mu.Lock()
	w.pending[filepath.Base(ev.Name)] = time.Now()
	w.mu.Unlock()
}

// flush reloads the catalog once the current system's document has settled.
func (w *Watcher) flush(ctx context.Context) {
	now := time.Now()
	var settled []string
	w.mu.Lock()
	for name, at := range w.pending {
		if now.Sub(at) >= w.debounce {
			settled = append(settled, name)
			delete(w.pending, name)
		}
	}
	w.mu.Unlock()

	cur := w.manager.Current().System
	if cur == gamesystem.None {
		return
	}
	want := gamesystem.MetadataFileName(cur)
	for _, name := range settled {
		if name != want {
			continue
		}
		w.logger.Debug("metadata changed on disk", zap.String("file", name))
		if err := w.manager.Load(ctx); err != nil {
			w.logger.Warn("reloading metadata", zap.String("file", name), zap.Error(err))
			continue
		}
		w.mu.Lock()
		w.reloads++
		w.mu.Unlock()
	}
}

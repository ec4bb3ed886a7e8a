package watch

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"mackerel-hq/mmpp/pkg/files"
	"mackerel-hq/mmpp/pkg/telemetry/logging"
)

// ChangeFunc receives the distinct paths that changed during one quiet
// period, sorted.
type ChangeFunc func(ctx context.Context, paths []string)

// EventFunc is told about every relevant event before debouncing.
type EventFunc func(path string, op fsnotify.Op)

// Config contains configuration for a FileWatcher.
type Config struct {
	// Path is the file or directory to watch
	Path string

	// DebounceInterval is the quiet period before changes are delivered
	DebounceInterval time.Duration

	// Extensions filters files in directory mode; ignored when Path is a file
	Extensions []string

	// IncludeHidden also watches entries whose name starts with '.'
	IncludeHidden bool
}

// FileWatcher watches a directory tree of expression files, or a single
// file, and delivers debounced batches of changed paths.
type FileWatcher struct {
	watcher  *fsnotify.Watcher
	logger   *logging.Logger
	config   *Config
	debounce *Debouncer
	onEvent  EventFunc

	// Set in Watch for single-file mode
	target string

	pendingMu sync.Mutex
	pending   map[string]bool

	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
	doneCh  chan struct{}
}

// NewFileWatcher creates a new file watcher.
func NewFileWatcher(cfg *Config, logger *logging.Logger) (*FileWatcher, error) {
	if cfg == nil || cfg.Path == "" {
		return nil, fmt.Errorf("watch path is required")
	}
	if logger == nil {
		logger = logging.Nop()
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	return &FileWatcher{
		watcher:  watcher,
		logger:   logger.With("component", "watcher", "path", cfg.Path),
		config:   cfg,
		debounce: NewDebouncer(cfg.DebounceInterval),
		pending:  make(map[string]bool),
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}, nil
}

// OnEvent registers a hook called for every relevant event. It must be set
// before Watch.
func (fw *FileWatcher) OnEvent(fn EventFunc) {
	fw.onEvent = fn
}

// Watch blocks until ctx is cancelled or Stop is called, delivering changes
// to onChange. A file given as Path is watched through its directory so
// that editors replacing the file by rename are still seen.
func (fw *FileWatcher) Watch(ctx context.Context, onChange ChangeFunc) error {
	fw.mu.Lock()
	if fw.running {
		fw.mu.Unlock()
		return fmt.Errorf("watcher already running")
	}
	fw.running = true
	fw.mu.Unlock()

	defer close(fw.doneCh)
	defer fw.watcher.Close()
	defer fw.debounce.Stop()

	if err := fw.addPath(fw.config.Path); err != nil {
		return fmt.Errorf("failed to watch path: %w", err)
	}

	fw.logger.Info("file watcher started", "debounce_ms", fw.config.DebounceInterval.Milliseconds())

	for {
		select {
		case <-ctx.Done():
			fw.logger.Info("file watcher stopped", "reason", "context cancelled")
			return nil

		case <-fw.stopCh:
			fw.logger.Info("file watcher stopped")
			return nil

		case event, ok := <-fw.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}

			// New directories are watched too
			if fw.target == "" && event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() && fw.visible(event.Name) {
					if err := fw.addDirectory(event.Name); err != nil {
						fw.logger.Warn("failed to watch new directory", "dir", event.Name, "error", err)
					}
					continue
				}
			}

			if !fw.shouldProcessEvent(event) {
				continue
			}

			fw.logger.Debug("file event detected", "file", event.Name, "op", event.Op.String())
			if fw.onEvent != nil {
				fw.onEvent(event.Name, event.Op)
			}

			fw.pendingMu.Lock()
			fw.pending[event.Name] = true
			fw.pendingMu.Unlock()

			fw.debounce.Trigger(func() { fw.flush(ctx, onChange) })

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			fw.logger.Error("file watcher error", "error", err)
		}
	}
}

// Stop stops the watcher and waits for Watch to return.
func (fw *FileWatcher) Stop() {
	fw.mu.Lock()
	if !fw.running {
		fw.mu.Unlock()
		_ = fw.watcher.Close()
		return
	}
	fw.running = false
	fw.mu.Unlock()

	close(fw.stopCh)
	<-fw.doneCh
}

// flush hands the pending set to onChange.
func (fw *FileWatcher) flush(ctx context.Context, onChange ChangeFunc) {
	fw.pendingMu.Lock()
	paths := make([]string, 0, len(fw.pending))
	for p := range fw.pending {
		paths = append(paths, p)
	}
	fw.pending = make(map[string]bool)
	fw.pendingMu.Unlock()

	if len(paths) == 0 {
		return
	}
	sort.Strings(paths)
	onChange(ctx, paths)
}

func (fw *FileWatcher) addPath(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}

	if info.IsDir() {
		return fw.addDirectory(path)
	}

	fw.target = filepath.Clean(path)
	return fw.watcher.Add(filepath.Dir(fw.target))
}

// addDirectory adds a directory and all its visible subdirectories.
func (fw *FileWatcher) addDirectory(dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != dir && !fw.visible(path) {
			return filepath.SkipDir
		}
		if err := fw.watcher.Add(path); err != nil {
			return fmt.Errorf("failed to watch directory %q: %w", path, err)
		}
		fw.logger.Debug("watching directory", "dir", path)
		return nil
	})
}

func (fw *FileWatcher) visible(path string) bool {
	return fw.config.IncludeHidden || !files.IsHidden(path)
}

// shouldProcessEvent filters out attribute changes, removals, hidden files
// and files with other extensions.
func (fw *FileWatcher) shouldProcessEvent(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return false
	}

	if fw.target != "" {
		return filepath.Clean(event.Name) == fw.target
	}

	if !fw.visible(event.Name) {
		return false
	}

	return fw.hasValidExtension(event.Name)
}

func (fw *FileWatcher) hasValidExtension(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, validExt := range fw.config.Extensions {
		if ext == strings.ToLower(validExt) {
			return true
		}
	}
	return false
}

// Package watcher reports changes to lesson dataset files so the catalog
// can be reloaded while the UI is running.
package watcher

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/vanderheijden86/academy/pkg/debug"
)

// DefaultPollInterval is the stat interval in polling mode.
const DefaultPollInterval = 2 * time.Second

// ForcePollEnvVar forces polling for every watcher when truthy.
const ForcePollEnvVar = "ACADEMY_FORCE_POLLING"

var (
	ErrFileRemoved    = errors.New("watched file was removed")
	ErrPermission     = errors.New("permission denied")
	ErrAlreadyStarted = errors.New("watcher already started")
)

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounceDuration sets the quiet period before a change is reported.
func WithDebounceDuration(d time.Duration) Option {
	return func(w *Watcher) { w.debounce = d }
}

// WithPollInterval sets the stat interval for polling mode.
func WithPollInterval(d time.Duration) Option {
	return func(w *Watcher) { w.pollInterval = d }
}

// WithOnChange sets a callback receiving the dataset path that changed
// last in a burst.
func WithOnChange(fn func(path string)) Option {
	return func(w *Watcher) { w.onChange = fn }
}

// WithOnError sets the error callback. Removal of a dataset is reported as
// ErrFileRemoved wrapped with its path.
func WithOnError(fn func(error)) Option {
	return func(w *Watcher) { w.onError = fn }
}

// WithForcePoll skips fsnotify entirely.
func WithForcePoll(force bool) Option {
	return func(w *Watcher) { w.forcePoll = force }
}

// fileState is the last observed stat of one dataset in polling mode.
type fileState struct {
	mtime time.Time
	size  int64
}

// Watcher watches a fixed set of dataset files. Changes to any of them are
// debounced together, so one save burst across files yields one signal on
// Changed. Parent directories are watched rather than the files, which keeps
// atomic rename-over saves visible.
type Watcher struct {
	paths        []string
	byBase       map[string][]string // dir -> watched basenames
	debounce     time.Duration
	pollInterval time.Duration
	onChange     func(string)
	onError      func(error)
	forcePoll    bool

	mu         sync.RWMutex
	started    bool
	polling    bool
	fsw        *fsnotify.Watcher
	states     map[string]fileState
	cancel     context.CancelFunc
	wg         sync.WaitGroup
	debouncer  *Debouncer
	lastChange string

	changeCh chan struct{}
}

// New returns a stopped Watcher over paths. Duplicate paths are watched once.
func New(paths []string, opts ...Option) (*Watcher, error) {
	w := &Watcher{
		byBase:       make(map[string][]string),
		debounce:     DefaultDebounceDuration,
		pollInterval: DefaultPollInterval,
		onChange:     func(string) {},
		onError:      func(error) {},
		states:       make(map[string]fileState),
		changeCh:     make(chan struct{}, 1),
	}
	seen := make(map[string]bool, len(paths))
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return nil, fmt.Errorf("watch %s: %w", p, err)
		}
		if seen[abs] {
			continue
		}
		seen[abs] = true
		w.paths = append(w.paths, abs)
		dir := filepath.Dir(abs)
		w.byBase[dir] = append(w.byBase[dir], filepath.Base(abs))
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.pollInterval <= 0 {
		w.pollInterval = DefaultPollInterval
	}
	w.debouncer = NewDebouncer(w.debounce)
	return w, nil
}

// WatchFiles is New followed by Start.
func WatchFiles(paths []string, opts ...Option) (*Watcher, error) {
	w, err := New(paths, opts...)
	if err != nil {
		return nil, err
	}
	if err := w.Start(); err != nil {
		return nil, err
	}
	return w, nil
}

// Start begins watching. fsnotify is used unless polling is forced or any
// dataset lives on a remote filesystem.
func (w *Watcher) Start() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.started {
		return ErrAlreadyStarted
	}
	if len(w.paths) == 0 {
		w.started = true
		return nil
	}

	for _, p := range w.paths {
		info, err := os.Stat(p)
		switch {
		case err == nil:
			w.states[p] = fileState{mtime: info.ModTime(), size: info.Size()}
		case os.IsPermission(err):
			return fmt.Errorf("watch %s: %w", p, ErrPermission)
		default:
			// Not created yet; the first appearance counts as a change.
			w.states[p] = fileState{}
		}
	}

	w.polling = w.forcePoll || envBool(ForcePollEnvVar)
	if !w.polling {
		for _, p := range w.paths {
			if fs := DetectFilesystemType(p); isRemoteFilesystem(fs) {
				debug.Log("watcher: %s is on %s, polling every %v", p, fs, w.pollInterval)
				w.polling = true
				break
			}
		}
	}
	if !w.polling {
		if err := w.openFsnotify(); err != nil {
			debug.Log("watcher: fsnotify unavailable, polling: %v", err)
			w.polling = true
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	w.cancel = cancel
	w.wg.Add(1)
	if w.polling {
		go w.poll(ctx)
	} else {
		go w.listen(ctx, w.fsw)
	}
	w.started = true
	return nil
}

func (w *Watcher) openFsnotify() error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	for dir := range w.byBase {
		if err := fsw.Add(dir); err != nil {
			_ = fsw.Close()
			return fmt.Errorf("add %s: %w", dir, err)
		}
	}
	w.fsw = fsw
	return nil
}

// Stop halts watching and drops any pending notification. Changed stays
// open so a receiver blocked on it does not spin. Safe to call repeatedly.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.started {
		w.mu.Unlock()
		return
	}
	w.started = false
	if w.cancel != nil {
		w.cancel()
	}
	if w.fsw != nil {
		_ = w.fsw.Close()
		w.fsw = nil
	}
	w.mu.Unlock()

	w.wg.Wait()
	w.debouncer.Cancel()
}

// Changed receives once per debounced burst of changes.
func (w *Watcher) Changed() <-chan struct{} {
	return w.changeCh
}

// Paths returns the absolute watched paths in configured order.
func (w *Watcher) Paths() []string {
	return append([]string(nil), w.paths...)
}

// Len returns the number of watched files.
func (w *Watcher) Len() int {
	return len(w.paths)
}

// IsPolling reports whether the watcher fell back to stat polling.
func (w *Watcher) IsPolling() bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.polling
}

// IsStarted reports whether the watcher is running.
func (w *Watcher) IsStarted() bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.started
}

// PollInterval returns the stat interval used in polling mode.
func (w *Watcher) PollInterval() time.Duration {
	return w.pollInterval
}

// watched maps an event name back to the dataset path it concerns.
func (w *Watcher) watched(name string) (string, bool) {
	dir, base := filepath.Dir(name), filepath.Base(name)
	for _, b := range w.byBase[dir] {
		if b == base {
			return filepath.Join(dir, base), true
		}
	}
	return "", false
}

func (w *Watcher) listen(ctx context.Context, fsw *fsnotify.Watcher) {
	defer w.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-fsw.Events:
			if !ok {
				return
			}
			path, ok := w.watched(ev.Name)
			if !ok {
				continue
			}
			switch {
			case ev.Has(fsnotify.Remove):
				w.onError(fmt.Errorf("%s: %w", path, ErrFileRemoved))
			case ev.Has(fsnotify.Write), ev.Has(fsnotify.Create), ev.Has(fsnotify.Rename):
				w.trigger(path)
			}
		case err, ok := <-fsw.Errors:
			if !ok {
				return
			}
			w.onError(err)
		}
	}
}

func (w *Watcher) poll(ctx context.Context) {
	defer w.wg.Done()
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			for _, p := range w.paths {
				w.check(p)
			}
		}
	}
}

// check stats one dataset and triggers on any mtime or size change.
func (w *Watcher) check(path string) {
	info, err := os.Stat(path)

	w.mu.Lock()
	prev := w.states[path]
	if err != nil {
		w.states[path] = fileState{}
		w.mu.Unlock()
		switch {
		case os.IsNotExist(err):
			if !prev.mtime.IsZero() {
				w.onError(fmt.Errorf("%s: %w", path, ErrFileRemoved))
			}
		case os.IsPermission(err):
			w.onError(fmt.Errorf("%s: %w", path, ErrPermission))
		default:
			w.onError(err)
		}
		return
	}
	cur := fileState{mtime: info.ModTime(), size: info.Size()}
	changed := !cur.mtime.Equal(prev.mtime) || cur.size != prev.size
	w.states[path] = cur
	w.mu.Unlock()

	if changed {
		w.trigger(path)
	}
}

func (w *Watcher) trigger(path string) {
	w.mu.Lock()
	w.lastChange = path
	w.mu.Unlock()
	w.debouncer.Trigger(w.notify)
}

func (w *Watcher) notify() {
	w.mu.RLock()
	started, path := w.started, w.lastChange
	w.mu.RUnlock()

	// A timer racing Stop may still fire once; drop it.
	if !started {
		return
	}

	w.onChange(path)
	select {
	case w.changeCh <- struct{}{}:
	default:
	}
}

func envBool(name string) bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(name))) {
	case "1", "true", "yes", "y", "on":
		return true
	default:
		return false
	}
}

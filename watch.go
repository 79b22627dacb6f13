package tomlconf

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// ReloadCallback is invoked with the freshly loaded tree whenever the
// watched file changes and parses successfully. A callback error is
// logged and the watcher keeps running with the previous configuration.
type ReloadCallback func(tree Tree) error

// WatcherConfig holds the settings for a Watcher.
type WatcherConfig struct {
	// Path is the TOML file to watch.
	Path string

	// Debounce is how long to coalesce bursts of file change events
	// (editors typically emit several per save). Defaults to 500ms.
	Debounce time.Duration

	// Logger receives watch lifecycle and reload events. Nil discards
	// them.
	Logger *zerolog.Logger
}

// Watcher watches a TOML configuration file and delivers reloaded trees
// to a callback. A file that fails to parse after a change does not stop
// the watcher; the previous configuration stays in effect.
//
// Rename and remove events re-arm the watch, so atomic writers that
// replace the file (see WriteFile) are picked up.
type Watcher struct {
	config   WatcherConfig
	callback ReloadCallback
	log      zerolog.Logger

	cancel  context.CancelFunc
	stopped chan struct{}
	ready   chan struct{}
	mu      sync.Mutex

	debounceTimer *time.Timer
}

// NewWatcher creates a watcher for config.Path. The callback must be
// non-nil; it is first invoked synchronously from Start with the initial
// configuration.
func NewWatcher(config WatcherConfig, callback ReloadCallback) (*Watcher, error) {
	if config.Path == "" {
		return nil, fmt.Errorf("watcher path cannot be empty")
	}
	if callback == nil {
		return nil, fmt.Errorf("watcher callback cannot be nil")
	}
	if config.Debounce == 0 {
		config.Debounce = 500 * time.Millisecond
	}

	log := zerolog.Nop()
	if config.Logger != nil {
		log = *config.Logger
	}

	return &Watcher{
		config:   config,
		callback: callback,
		log:      log,
		stopped:  make(chan struct{}),
		ready:    make(chan struct{}),
	}, nil
}

// Start loads the initial configuration, invokes the callback with it,
// and begins watching for changes in a background goroutine. It returns
// once the file watch is armed, so changes made after Start returns are
// never missed. The initial load and callback fail fast.
func (w *Watcher) Start(ctx context.Context) error {
	initial, err := LoadFile(w.config.Path)
	if err != nil {
		return fmt.Errorf("error loading initial config: %w", err)
	}
	if err := w.callback(initial); err != nil {
		return fmt.Errorf("initial reload callback failed: %w", err)
	}

	w.log.Info().Str("path", w.config.Path).Msg("loaded initial config")

	watchCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel

	go w.watchLoop(watchCtx)

	select {
	case <-w.ready:
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(5 * time.Second):
		return fmt.Errorf("timeout waiting for file watcher to initialize")
	}
	return nil
}

// signalReady closes the ready channel exactly once.
func (w *Watcher) signalReady() {
	w.mu.Lock()
	defer w.mu.Unlock()
	select {
	case <-w.ready:
	default:
		close(w.ready)
	}
}

func (w *Watcher) watchLoop(ctx context.Context) {
	defer close(w.stopped)
	defer w.signalReady() // ready must fire even on error paths

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		w.log.Error().Err(err).Msg("failed to create file watcher")
		return
	}
	defer watcher.Close()

	if err := watcher.Add(w.config.Path); err != nil {
		w.log.Error().Err(err).Str("path", w.config.Path).Msg("failed to watch config file")
		return
	}

	w.log.Info().
		Str("path", w.config.Path).
		Dur("debounce", w.config.Debounce).
		Msg("watching config file")

	w.signalReady()

	for {
		select {
		case <-ctx.Done():
			w.log.Debug().Msg("watcher context cancelled")
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}

			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}

			// Atomic writes unlink or rename the watched inode, so the
			// watch must be re-armed on the path.
			if event.Op&(fsnotify.Rename|fsnotify.Remove) != 0 {
				time.Sleep(50 * time.Millisecond)
				if err := watcher.Add(w.config.Path); err != nil {
					w.log.Warn().Err(err).Str("op", event.Op.String()).Msg("failed to re-add watch")
				}
			}
			w.scheduleReload()

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			w.log.Warn().Err(err).Msg("watcher error")
		}
	}
}

// scheduleReload resets the debounce timer on every change event so a
// burst of events produces a single reload.
func (w *Watcher) scheduleReload() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.debounceTimer != nil {
		w.debounceTimer.Stop()
	}
	w.debounceTimer = time.AfterFunc(w.config.Debounce, w.reload)
}

// reload loads the file and hands the new tree to the callback. Failures
// are logged; the previous configuration stays in effect either way.
func (w *Watcher) reload() {
	tree, err := LoadFile(w.config.Path)
	if err != nil {
		w.log.Error().Err(err).Msg("failed to reload config, keeping previous")
		return
	}
	if err := w.callback(tree); err != nil {
		w.log.Error().Err(err).Msg("reload callback error, keeping previous")
		return
	}
	w.log.Info().Str("path", w.config.Path).Msg("config reloaded")
}

// Stop cancels the watch and waits for the watch loop to exit.
func (w *Watcher) Stop() error {
	if w.cancel != nil {
		w.cancel()
	}

	select {
	case <-w.stopped:
		return nil
	case <-time.After(5 * time.Second):
		return fmt.Errorf("timeout waiting for watcher to stop")
	}
}

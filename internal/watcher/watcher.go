package watcher

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/goliatone/go-blog/internal/logging"
	"github.com/goliatone/go-blog/pkg/interfaces"
)

// DefaultQuietInterval is the debounce window: a rebuild fires only after the
// content directory has been quiet this long.
const DefaultQuietInterval = 5 * time.Second

// State identifies where the loop is in its rebuild cycle.
type State int

const (
	// StateIdle means no rebuild is armed or running.
	StateIdle State = iota
	// StatePending means the debounce timer is armed; further events re-arm it.
	StatePending
	// StateBuilding means a rebuild is in flight. Events observed now mark the
	// loop dirty so a follow-up build is scheduled when this one exits.
	StateBuilding
)

func (s State) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateBuilding:
		return "building"
	default:
		return "idle"
	}
}

// Config configures the watch-rebuild loop.
type Config struct {
	// ContentDir is the directory observed for post changes.
	ContentDir string
	// QuietInterval is the debounce window (defaults to 5s). This is
	// debounce, not throttle: the rebuild is deferred as long as changes
	// keep arriving.
	QuietInterval time.Duration
}

// Watcher observes the content directory and triggers debounced rebuilds.
// Exactly one build is in flight at any time.
type Watcher struct {
	cfg     Config
	builder Builder
	clock   Clock
	logger  interfaces.Logger
}

// Option configures a Watcher instance.
type Option func(*Watcher)

// WithClock injects the timer source (tests use a manual clock).
func WithClock(clock Clock) Option {
	return func(w *Watcher) {
		if clock != nil {
			w.clock = clock
		}
	}
}

// WithLogger injects the loop logger.
func WithLogger(logger interfaces.Logger) Option {
	return func(w *Watcher) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// New constructs a Watcher over the given builder.
func New(cfg Config, builder Builder, opts ...Option) (*Watcher, error) {
	if builder == nil {
		return nil, errors.New("watcher: builder is required")
	}
	if strings.TrimSpace(cfg.ContentDir) == "" {
		return nil, errors.New("watcher: content dir is required")
	}
	if cfg.QuietInterval <= 0 {
		cfg.QuietInterval = DefaultQuietInterval
	}

	w := &Watcher{
		cfg:     cfg,
		builder: builder,
		clock:   NewSystemClock(),
		logger:  logging.NoOp(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Run watches the content directory until the context is cancelled. Build
// failures are logged and the loop keeps running; the only recovery path is
// the next content change.
func (w *Watcher) Run(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watcher: create fsnotify watcher: %w", err)
	}
	defer fsw.Close()

	if err := fsw.Add(w.cfg.ContentDir); err != nil {
		return fmt.Errorf("watcher: watch %s: %w", w.cfg.ContentDir, err)
	}

	w.logger.Info("watcher.start",
		"content_dir", w.cfg.ContentDir,
		"quiet_interval", w.cfg.QuietInterval.String(),
	)
	return w.run(ctx, fsw.Events, fsw.Errors)
}

// run is the state machine core, separated from fsnotify plumbing so tests
// can drive it with their own event channels and a manual clock.
func (w *Watcher) run(ctx context.Context, events <-chan fsnotify.Event, watchErrs <-chan error) error {
	state := StateIdle
	dirty := false

	var timer Timer
	var timerC <-chan time.Time
	buildDone := make(chan error, 1)

	armTimer := func() {
		if timer == nil {
			timer = w.clock.NewTimer(w.cfg.QuietInterval)
			timerC = timer.C()
			return
		}
		if !timer.Stop() {
			select {
			case <-timerC:
			default:
			}
		}
		timer.Reset(w.cfg.QuietInterval)
	}

	startBuild := func() {
		state = StateBuilding
		w.logger.Info("watcher.build.start")
		go func() {
			buildDone <- w.builder.Build(ctx)
		}()
	}

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			if state == StateBuilding {
				// The builder observes the same context; wait for it to exit
				// so shutdown never orphans a child process.
				<-buildDone
			}
			w.logger.Info("watcher.stop")
			return nil

		case event, ok := <-events:
			if !ok {
				return nil
			}
			if !relevantOp(event.Op) {
				continue
			}
			w.logger.Debug("watcher.event", "path", event.Name, "op", event.Op.String())
			if state == StateBuilding {
				dirty = true
				continue
			}
			state = StatePending
			armTimer()

		case watchErr, ok := <-watchErrs:
			if !ok {
				watchErrs = nil
				continue
			}
			w.logger.Error("watcher.fs_error", "error", watchErr)

		case <-timerC:
			startBuild()

		case buildErr := <-buildDone:
			if buildErr != nil {
				w.logger.Error("watcher.build.failed", "error", buildErr)
			} else {
				w.logger.Info("watcher.build.done")
			}
			if dirty {
				dirty = false
				state = StatePending
				armTimer()
			} else {
				state = StateIdle
			}
		}
	}
}

func relevantOp(op fsnotify.Op) bool {
	return op.Has(fsnotify.Create) ||
		op.Has(fsnotify.Write) ||
		op.Has(fsnotify.Remove) ||
		op.Has(fsnotify.Rename)
}

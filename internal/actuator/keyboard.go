// Package actuator delivers synthetic key presses to the media player.
package actuator

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
)

// Key is a named keyboard key understood by every Keyboard implementation.
type Key string

const (
	KeySpace Key = "space"
	KeyUp    Key = "up"
	KeyDown  Key = "down"
	KeyLeft  Key = "left"
	KeyRight Key = "right"
)

// Keyboard taps a single key on the target.
type Keyboard interface {
	Tap(ctx context.Context, key Key) error
}

// Kinds of Keyboard that New can construct.
const (
	KindRobotgo = "robotgo"
	KindPlugin  = "plugin"
	KindBrowser = "browser"
	KindDryRun  = "dry-run"
)

// Options configures the keyboard selected by New.
type Options struct {
	// PluginDir is scanned for the keyboard plugin (KindPlugin).
	PluginDir string
	// PluginName is the manifest name of the plugin (default "keyboard").
	PluginName string
	// ControlURL is the Chrome DevTools address (KindBrowser).
	ControlURL string
	// TabPattern selects the browser tab by URL (KindBrowser).
	TabPattern string
	Logger     *slog.Logger
}

// New builds the Keyboard for kind. The returned close function releases
// any connection the keyboard holds and is never nil.
func New(ctx context.Context, kind string, opts Options) (Keyboard, func() error, error) {
	noop := func() error { return nil }
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	switch strings.ToLower(strings.TrimSpace(kind)) {
	case KindRobotgo, "":
		return NewRobotgo(), noop, nil

	case KindPlugin:
		kb, err := NewPluginKeyboard(opts.PluginDir, opts.PluginName)
		if err != nil {
			return nil, noop, err
		}
		return kb, noop, nil

	case KindBrowser:
		kb, err := ConnectBrowser(ctx, opts.ControlURL, opts.TabPattern)
		if err != nil {
			return nil, noop, err
		}
		return kb, kb.Close, nil

	case KindDryRun:
		return NewRecorder(opts.Logger), noop, nil

	default:
		return nil, noop, fmt.Errorf("unknown actuator %q", kind)
	}
}

// Recorder is a Keyboard that only remembers and logs what was tapped.
type Recorder struct {
	mu     sync.Mutex
	keys   []Key
	err    error
	logger *slog.Logger
}

// NewRecorder creates a Recorder. A nil logger disables logging.
func NewRecorder(logger *slog.Logger) *Recorder {
	return &Recorder{logger: logger}
}

// Tap records key, or returns the configured error.
func (r *Recorder) Tap(ctx context.Context, key Key) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.err != nil {
		return r.err
	}
	r.keys = append(r.keys, key)
	if r.logger != nil {
		r.logger.Info("key tapped", "key", key)
	}
	return nil
}

// SetError makes subsequent taps fail with err.
func (r *Recorder) SetError(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.err = err
}

// Keys returns a copy of the keys tapped so far.
func (r *Recorder) Keys() []Key {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Key(nil), r.keys...)
}

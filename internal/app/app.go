// Package app runs a gesture control session: it reads camera frames,
// classifies the hand pose in each one and drives the media player.
package app

import (
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/ayusman/mudra/internal/capture"
	"github.com/ayusman/mudra/internal/detector"
	"github.com/ayusman/mudra/internal/gesture"
	"github.com/ayusman/mudra/internal/player"
	"github.com/ayusman/mudra/internal/store"
	"github.com/ayusman/mudra/internal/zone"
	"gocv.io/x/gocv"
)

// Reference space the landmarks are scaled into before classification.
const (
	ReferenceWidth  = zone.ReferenceWidth
	ReferenceHeight = 480
)

// IdleTimeout is how long after the last motion landmark detection keeps
// running when motion gating is enabled.
const IdleTimeout = 2 * time.Second

// Config holds the dependencies of a session. Camera, Detector, Classifier
// and Player are required.
type Config struct {
	Camera     capture.Camera
	Detector   detector.Detector
	Classifier *gesture.Classifier
	Player     player.Player
	// PlayerName labels recorded events.
	PlayerName string
	// Stabilizer defaults to a run length of 1.
	Stabilizer *gesture.Stabilizer
	// Store records dispatched commands when set.
	Store  *store.Store
	Logger *slog.Logger
	// Mirror flips every frame horizontally before detection.
	Mirror bool
	// MotionThresh enables motion gating when positive: landmark detection
	// only runs within IdleTimeout of a frame whose changed-pixel
	// percentage exceeded it.
	MotionThresh float64
	// OnFrame receives every frame after mirroring. It must not keep the Mat.
	OnFrame func(*gocv.Mat)
	// Now defaults to time.Now.
	Now func() time.Time
}

// Stats counts what the session has done so far.
type Stats struct {
	Frames     int64 `json:"frames"`
	Hands      int64 `json:"hands"`
	Decisions  int64 `json:"decisions"`
	Dispatched int64 `json:"dispatched"`
	Failed     int64 `json:"failed"`
	Idle       int64 `json:"idle"`
}

// Status is a snapshot of the session for status displays.
type Status struct {
	Enabled    bool            `json:"enabled"`
	Running    bool            `json:"running"`
	Player     string          `json:"player"`
	Boundaries zone.Boundaries `json:"boundaries"`
	Stats      Stats           `json:"stats"`
	Last       *Event          `json:"last,omitempty"`
}

// App is one gesture control session.
type App struct {
	config     Config
	camera     capture.Camera
	detector   detector.Detector
	classifier *gesture.Classifier
	player     player.Player
	stabilizer *gesture.Stabilizer
	motion     *capture.MotionDetector
	logger     *slog.Logger
	now        func() time.Time

	mu         sync.RWMutex
	enabled    bool
	running    bool
	stats      Stats
	last       *Event
	lastMotion time.Time
	subs       map[int]func(Event)
	nextSub    int
}

// New creates a session from config. The session starts enabled.
func New(config Config) (*App, error) {
	switch {
	case config.Camera == nil:
		return nil, errors.New("app: camera is required")
	case config.Detector == nil:
		return nil, errors.New("app: detector is required")
	case config.Classifier == nil:
		return nil, errors.New("app: classifier is required")
	case config.Player == nil:
		return nil, errors.New("app: player is required")
	}

	a := &App{
		config:     config,
		camera:     config.Camera,
		detector:   config.Detector,
		classifier: config.Classifier,
		player:     config.Player,
		stabilizer: config.Stabilizer,
		logger:     config.Logger,
		now:        config.Now,
		enabled:    true,
		subs:       make(map[int]func(Event)),
	}
	if a.stabilizer == nil {
		a.stabilizer = gesture.NewStabilizer(1)
	}
	if a.logger == nil {
		a.logger = slog.Default()
	}
	if a.now == nil {
		a.now = time.Now
	}
	if config.MotionThresh > 0 {
		a.motion = capture.NewMotionDetector(config.MotionThresh)
	}

	return a, nil
}

// SetEnabled enables or disables command dispatch. While disabled frames are
// still read but nothing is classified.
func (a *App) SetEnabled(enabled bool) {
	a.mu.Lock()
	changed := a.enabled != enabled
	a.enabled = enabled
	a.mu.Unlock()

	if changed {
		a.logger.Info("gesture control toggled", "enabled", enabled)
	}
}

// IsEnabled returns whether commands are being dispatched.
func (a *App) IsEnabled() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.enabled
}

// IsRunning returns whether Run is currently executing.
func (a *App) IsRunning() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.running
}

// Stats returns a copy of the session counters.
func (a *App) Stats() Stats {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.stats
}

// Status returns a snapshot of the session.
func (a *App) Status() Status {
	a.mu.RLock()
	defer a.mu.RUnlock()

	st := Status{
		Enabled:    a.enabled,
		Running:    a.running,
		Player:     a.config.PlayerName,
		Boundaries: a.classifier.Boundaries(),
		Stats:      a.stats,
	}
	if a.last != nil {
		last := *a.last
		st.Last = &last
	}
	return st
}

// Subscribe registers fn to receive every dispatched command. fn runs on the
// session goroutine and must not block. The returned func unsubscribes.
func (a *App) Subscribe(fn func(Event)) func() {
	a.mu.Lock()
	defer a.mu.Unlock()

	id := a.nextSub
	a.nextSub++
	a.subs[id] = fn

	return func() {
		a.mu.Lock()
		defer a.mu.Unlock()
		delete(a.subs, id)
	}
}

// Camera returns the session camera.
func (a *App) Camera() capture.Camera {
	return a.camera
}

// Close releases the detector and motion detector.
func (a *App) Close() error {
	if a.motion != nil {
		a.motion.Close()
	}
	return a.detector.Close()
}

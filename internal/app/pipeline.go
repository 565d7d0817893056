package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/ayusman/mudra/internal/capture"
	"github.com/ayusman/mudra/internal/detector"
	"github.com/ayusman/mudra/internal/gesture"
	"github.com/ayusman/mudra/internal/player"
	"gocv.io/x/gocv"
)

// Run opens the camera and processes frames one at a time until ctx is
// cancelled or the camera reports ErrEndOfStream, both of which return nil.
// A camera or detector failure ends the session with an error. A player
// failure is logged and the session continues.
//
// The loop is frame-synchronous: while a command's settle delay runs no
// further frames are read, and cancellation is only noticed between frames.
func (a *App) Run(ctx context.Context) error {
	if err := a.camera.Open(); err != nil {
		return fmt.Errorf("open camera: %w", err)
	}
	defer func() {
		if err := a.camera.Close(); err != nil {
			a.logger.Warn("closing camera", "error", err)
		}
	}()

	a.setRunning(true)
	defer a.setRunning(false)

	a.stabilizer.Reset()
	a.logger.Info("gesture session started", "player", a.config.PlayerName, "zones", a.classifier.Boundaries().String())

	for {
		if ctx.Err() != nil {
			a.logger.Info("gesture session stopped", "reason", "cancelled")
			return nil
		}

		frame, err := a.camera.ReadFrame()
		if errors.Is(err, capture.ErrEndOfStream) {
			a.logger.Info("gesture session stopped", "reason", "end of stream")
			return nil
		}
		if err != nil {
			return fmt.Errorf("read frame: %w", err)
		}

		err = a.ProcessFrame(ctx, frame)
		frame.Close()
		if err != nil {
			return err
		}
	}
}

// ProcessFrame runs one frame through detection, classification and
// dispatch. It returns an error only when the detector fails.
func (a *App) ProcessFrame(ctx context.Context, frame *gocv.Mat) error {
	a.count(func(s *Stats) { s.Frames++ })

	if a.config.Mirror {
		capture.Mirror(frame)
	}
	if a.config.OnFrame != nil {
		a.config.OnFrame(frame)
	}

	if !a.IsEnabled() {
		a.stabilizer.Reset()
		return nil
	}

	if !a.active(frame) {
		a.stabilizer.Reset()
		a.count(func(s *Stats) { s.Idle++ })
		return nil
	}

	hands, err := a.detector.Detect(frame)
	if err != nil {
		return fmt.Errorf("detect hands: %w", err)
	}

	obs := detector.Observe(hands, ReferenceWidth, ReferenceHeight)
	ev := a.classifier.Evaluate(&obs)

	if obs.HasHand {
		a.count(func(s *Stats) { s.Hands++ })
	}
	if ev.Decision != gesture.None {
		a.count(func(s *Stats) { s.Decisions++ })
	}

	if !a.stabilizer.Observe(ev.Decision) {
		return nil
	}

	a.dispatch(ctx, ev)
	return nil
}

// dispatch invokes the player and records the outcome.
func (a *App) dispatch(ctx context.Context, ev gesture.Evaluation) {
	at := a.now()
	err := player.Invoke(ctx, a.player, ev.Decision)
	if err != nil {
		a.logger.Error("command failed", "command", ev.Decision, "error", err)
		a.count(func(s *Stats) { s.Failed++ })
	} else {
		a.logger.Info("command dispatched",
			"command", ev.Decision,
			"hand", ev.Handedness,
			"fingers", ev.Fingers,
			"x", ev.X,
			"region", ev.Region,
		)
		a.count(func(s *Stats) { s.Dispatched++ })
	}

	event := newEvent(ev, a.config.PlayerName, at, err)

	if a.config.Store != nil {
		if err := a.config.Store.Events().Create(event.record()); err != nil {
			a.logger.Warn("recording event", "error", err)
		}
	}

	a.mu.Lock()
	a.last = &event
	subs := make([]func(Event), 0, len(a.subs))
	for _, fn := range a.subs {
		subs = append(subs, fn)
	}
	a.mu.Unlock()

	for _, fn := range subs {
		fn(event)
	}
}

// active reports whether landmark detection should run for frame. Without
// motion gating every frame is active.
func (a *App) active(frame *gocv.Mat) bool {
	if a.motion == nil {
		return true
	}

	now := a.now()
	moved, _ := a.motion.Detect(frame)

	a.mu.Lock()
	defer a.mu.Unlock()
	if moved {
		a.lastMotion = now
	}
	return !a.lastMotion.IsZero() && now.Sub(a.lastMotion) <= IdleTimeout
}

func (a *App) count(fn func(*Stats)) {
	a.mu.Lock()
	fn(&a.stats)
	a.mu.Unlock()
}

func (a *App) setRunning(running bool) {
	a.mu.Lock()
	a.running = running
	a.mu.Unlock()
}

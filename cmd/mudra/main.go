// Command mudra controls a media player with hand gestures seen by the webcam.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/ayusman/mudra/internal/actuator"
	"github.com/ayusman/mudra/internal/app"
	"github.com/ayusman/mudra/internal/capture"
	"github.com/ayusman/mudra/internal/config"
	"github.com/ayusman/mudra/internal/detector"
	"github.com/ayusman/mudra/internal/gesture"
	"github.com/ayusman/mudra/internal/player"
	"github.com/ayusman/mudra/internal/server"
	"github.com/ayusman/mudra/internal/store"
	"github.com/ayusman/mudra/internal/tray"
	"github.com/ayusman/mudra/internal/zone"
)

func main() {
	configPath := flag.String("config", "", "path to config file (default ~/.mudra/config.yaml)")
	playerName := flag.String("player", "", "media player to control, e.g. youtube")
	actuatorKind := flag.String("actuator", "", "key delivery: robotgo, plugin, browser or dry-run")
	videoFile := flag.String("video", "", "replay a video file instead of the camera")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("loading config", "error", err)
		os.Exit(1)
	}
	if *playerName != "" {
		cfg.Player = *playerName
	}
	if *actuatorKind != "" {
		cfg.Actuator = *actuatorKind
	}
	if *videoFile != "" {
		cfg.VideoFile = *videoFile
	}

	if err := run(cfg, logger); err != nil {
		var unsupported *player.UnsupportedPlayerError
		if errors.As(err, &unsupported) {
			fmt.Fprintf(os.Stderr, "%s is not supported. Supported players: %v\n", unsupported.Name, player.NewRegistry().Names())
		}
		logger.Error("mudra stopped", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := store.New(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	registry := player.NewRegistry()

	name, err := resolvePlayer(cfg.Player, st, os.Stdin, os.Stdout)
	if err != nil {
		return err
	}
	// Reject unknown players before any device is touched.
	if !registry.Supports(name) {
		return &player.UnsupportedPlayerError{Name: name}
	}

	kb, closeKeyboard, err := actuator.New(ctx, cfg.Actuator, actuator.Options{
		PluginDir:  cfg.PluginDir,
		ControlURL: cfg.Browser.ControlURL,
		TabPattern: cfg.Browser.TabPattern,
		Logger:     logger,
	})
	if err != nil {
		return fmt.Errorf("actuator %s: %w", cfg.Actuator, err)
	}
	defer closeKeyboard()

	p, err := registry.Open(name, kb, player.Options{Settle: cfg.SettleDelay})
	if err != nil {
		return err
	}
	if err := st.Settings().Set(store.SettingPlayer, name); err != nil {
		logger.Warn("remembering player", "error", err)
	}

	bounds := zone.Compute(displaySize(cfg, logger))

	det, err := openDetector(logger)
	if err != nil {
		return err
	}

	frames := server.NewFrameHub()
	feed := server.NewDecisionFeed(logger)

	session, err := app.New(app.Config{
		Camera:       openCamera(cfg),
		Detector:     det,
		Classifier:   gesture.NewClassifier(bounds),
		Player:       p,
		PlayerName:   name,
		Stabilizer:   gesture.NewStabilizer(cfg.StabilityFrames),
		Store:        st,
		Logger:       logger,
		Mirror:       cfg.Mirror,
		MotionThresh: cfg.MotionThreshold,
		OnFrame:      frames.Publish,
	})
	if err != nil {
		det.Close()
		return err
	}
	defer session.Close()

	if v, err := st.Settings().GetDefault(store.SettingEnabled, "true"); err == nil && v == "false" {
		session.SetEnabled(false)
	}
	session.Subscribe(feed.Publish)

	if cfg.Listen != "" {
		srv := server.New(server.Config{
			StaticDir:  cfg.StaticDir,
			Store:      st,
			Controller: session,
			Frames:     frames,
			Feed:       feed,
			Logger:     logger,
		})
		go func() {
			if err := srv.ListenAndServe(ctx, cfg.Listen); err != nil {
				logger.Error("control server", "error", err)
			}
		}()
	}

	if !cfg.Tray {
		return session.Run(ctx)
	}
	return runWithTray(ctx, stop, cfg, session, st, name, logger)
}

// runWithTray runs the session in the background and the tray on the main
// goroutine, which systray requires.
func runWithTray(ctx context.Context, stop context.CancelFunc, cfg *config.Config, session *app.App, st *store.Store, name string, logger *slog.Logger) error {
	dashboard := ""
	if cfg.Listen != "" {
		dashboard = "http://" + cfg.Listen
	}

	tr := tray.New(tray.Options{
		Player:       name,
		Enabled:      session.IsEnabled(),
		DashboardURL: dashboard,
	})
	tr.OnToggle(persistToggle(session, st, logger))
	tr.OnDashboard(func(url string) {
		if err := openURL(url); err != nil {
			logger.Warn("opening dashboard", "error", err)
		}
	})
	tr.OnQuit(stop)
	session.Subscribe(func(e app.Event) { tr.SetLastCommand(e.Command.String()) })

	errCh := make(chan error, 1)
	go func() {
		errCh <- session.Run(ctx)
		tr.Quit()
	}()
	go func() {
		<-ctx.Done()
		tr.Quit()
	}()

	tr.Run()
	stop()
	return <-errCh
}

// persistToggle returns a toggle handler that also saves the flag, so a
// pause from the tray survives a restart like one from the API.
func persistToggle(ctrl interface{ SetEnabled(bool) }, st *store.Store, logger *slog.Logger) func(bool) {
	return func(enabled bool) {
		ctrl.SetEnabled(enabled)
		if err := st.Settings().Set(store.SettingEnabled, strconv.FormatBool(enabled)); err != nil {
			logger.Warn("persisting enabled flag", "error", err)
		}
	}
}

func openCamera(cfg *config.Config) capture.Camera {
	if cfg.VideoFile != "" {
		return capture.NewFileCamera(cfg.VideoFile)
	}
	return capture.NewCamera(cfg.CameraID)
}

// openDetector starts the MediaPipe landmark service, or falls back to a
// detector that never sees a hand when the service is not installed.
func openDetector(logger *slog.Logger) (detector.Detector, error) {
	mp, err := detector.NewMediaPipeDetector(detector.DefaultConfig(), logger)
	if err == nil {
		logger.Info("using MediaPipe hand detection")
		return mp, nil
	}
	if errors.Is(err, detector.ErrServiceNotFound) {
		logger.Warn("MediaPipe not available, no gestures will be recognised", "error", err)
		return detector.NewMockDetector(), nil
	}
	return nil, fmt.Errorf("start hand detector: %w", err)
}

// displaySize returns the configured display size, probing the OS for
// missing dimensions.
func displaySize(cfg *config.Config, logger *slog.Logger) (int, int) {
	w, h := cfg.Display.Width, cfg.Display.Height
	if w > 0 && h > 0 {
		return w, h
	}

	pw, ph := actuator.ScreenSize()
	if w <= 0 {
		w = pw
	}
	if h <= 0 {
		h = ph
	}
	logger.Info("display size", "width", w, "height", h)
	return w, h
}

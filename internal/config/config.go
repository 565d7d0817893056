// Package config loads the mudra configuration file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Defaults.
const (
	DefaultActuator        = "robotgo"
	DefaultSettleDelay     = 700 * time.Millisecond
	DefaultStabilityFrames = 1
	DefaultListen          = "127.0.0.1:8717"
	DefaultDirName         = ".mudra"
)

// Config is the top-level configuration.
type Config struct {
	// Player is the media player name. Empty means ask at startup.
	Player   string `yaml:"player"`
	Actuator string `yaml:"actuator"` // robotgo | plugin | browser | dry-run

	CameraID int  `yaml:"camera_id"`
	// VideoFile replays a recording instead of opening a camera.
	VideoFile string `yaml:"video_file"`
	// Mirror flips frames horizontally before detection, which MediaPipe's
	// handedness labels assume. Defaults to true.
	Mirror bool `yaml:"mirror"`

	Display DisplayConfig `yaml:"display"`

	SettleDelay     time.Duration `yaml:"settle_delay"`
	StabilityFrames int           `yaml:"stability_frames"`
	MotionThreshold float64       `yaml:"motion_threshold"`

	Listen    string `yaml:"listen"` // empty string disables the server
	StaticDir string `yaml:"static_dir"`
	DBPath    string `yaml:"db_path"`
	PluginDir string `yaml:"plugin_dir"`

	Browser BrowserConfig `yaml:"browser"`
	Tray    bool          `yaml:"tray"`
}

// DisplayConfig is the screen geometry the zone boundaries derive from.
// Zero values are probed from the OS.
type DisplayConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// BrowserConfig controls the browser actuator.
type BrowserConfig struct {
	ControlURL string `yaml:"control_url"`
	TabPattern string `yaml:"tab_pattern"`
}

// Dir returns ~/.mudra, or .mudra when the home directory is unknown.
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return DefaultDirName
	}
	return filepath.Join(home, DefaultDirName)
}

// DefaultPath returns the default configuration file path.
func DefaultPath() string {
	return filepath.Join(Dir(), "config.yaml")
}

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{Listen: DefaultListen, Mirror: true}
	cfg.applyDefaults()
	return cfg
}

// LoadFile reads a YAML configuration file.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	// Keys absent from the file keep these values; an explicit empty listen
	// or a false mirror is honoured.
	cfg := Config{Listen: DefaultListen, Mirror: true}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &cfg, nil
}

// Load reads path, falling back to the defaults when path is the default
// location and does not exist.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultPath()
	}
	cfg, err := LoadFile(path)
	if errors.Is(err, os.ErrNotExist) && path == DefaultPath() {
		return Default(), nil
	}
	return cfg, err
}

func (c *Config) applyDefaults() {
	c.Player = strings.TrimSpace(c.Player)
	c.Actuator = strings.ToLower(strings.TrimSpace(c.Actuator))
	if c.Actuator == "" {
		c.Actuator = DefaultActuator
	}
	if c.SettleDelay == 0 {
		c.SettleDelay = DefaultSettleDelay
	}
	if c.StabilityFrames <= 0 {
		c.StabilityFrames = DefaultStabilityFrames
	}
	if c.DBPath == "" {
		c.DBPath = filepath.Join(Dir(), "mudra.db")
	}
	if c.PluginDir == "" {
		c.PluginDir = filepath.Join(Dir(), "plugins")
	}
}

// Validate reports configuration values that cannot work.
func (c *Config) Validate() error {
	switch c.Actuator {
	case "robotgo", "plugin", "browser", "dry-run":
	default:
		return fmt.Errorf("unknown actuator %q", c.Actuator)
	}
	if c.CameraID < 0 {
		return fmt.Errorf("camera_id must not be negative, got %d", c.CameraID)
	}
	if c.Display.Width < 0 || c.Display.Height < 0 {
		return errors.New("display size must not be negative")
	}
	if c.MotionThreshold < 0 || c.MotionThreshold > 100 {
		return fmt.Errorf("motion_threshold must be a percentage, got %g", c.MotionThreshold)
	}
	return nil
}

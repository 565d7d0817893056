package actuator

import (
	"context"
	"fmt"

	"github.com/go-vgo/robotgo"
)

// Robotgo taps keys on the focused window through the OS input system.
type Robotgo struct{}

// NewRobotgo creates a Robotgo keyboard.
func NewRobotgo() *Robotgo {
	return &Robotgo{}
}

// Tap presses and releases key.
func (r *Robotgo) Tap(ctx context.Context, key Key) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := robotgo.KeyTap(string(key)); err != nil {
		return fmt.Errorf("robotgo tap %s: %w", key, err)
	}
	return nil
}

// ScreenSize returns the main display size in pixels.
func ScreenSize() (width, height int) {
	return robotgo.GetScreenSize()
}

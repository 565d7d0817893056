// Package player controls a media player through a Keyboard.
package player

import (
	"context"
	"fmt"
	"time"

	"github.com/ayusman/mudra/internal/actuator"
	"github.com/ayusman/mudra/internal/gesture"
)

// DefaultSettle is the pause after every command before another may be issued.
const DefaultSettle = 700 * time.Millisecond

// Player is the set of controls every supported media player offers.
// Each call produces exactly one control effect and returns only after the
// player's settle delay has elapsed.
type Player interface {
	PlayPause(ctx context.Context) error
	VolumeUp(ctx context.Context) error
	VolumeDown(ctx context.Context) error
	SeekForward(ctx context.Context) error
	SeekBackward(ctx context.Context) error
}

// Options configures a Player built by a Factory.
type Options struct {
	// Settle is the post-command delay. Zero means DefaultSettle; a
	// negative value disables the delay.
	Settle time.Duration
	// Sleep waits for the settle delay. Defaults to time.Sleep.
	Sleep func(time.Duration)
}

func (o Options) withDefaults() Options {
	if o.Settle == 0 {
		o.Settle = DefaultSettle
	}
	if o.Settle < 0 {
		o.Settle = 0
	}
	if o.Sleep == nil {
		o.Sleep = time.Sleep
	}
	return o
}

// KeyMap binds each control to the key that triggers it.
type KeyMap struct {
	PlayPause    actuator.Key
	VolumeUp     actuator.Key
	VolumeDown   actuator.Key
	SeekForward  actuator.Key
	SeekBackward actuator.Key
}

// KeyPlayer is a Player driven entirely by single key taps.
type KeyPlayer struct {
	name string
	keys KeyMap
	kb   actuator.Keyboard
	opts Options
}

// NewKeyPlayer creates a KeyPlayer.
func NewKeyPlayer(name string, keys KeyMap, kb actuator.Keyboard, opts Options) *KeyPlayer {
	return &KeyPlayer{
		name: name,
		keys: keys,
		kb:   kb,
		opts: opts.withDefaults(),
	}
}

// Name returns the registry name of the player.
func (p *KeyPlayer) Name() string { return p.name }

// Settle returns the effective settle delay.
func (p *KeyPlayer) Settle() time.Duration { return p.opts.Settle }

func (p *KeyPlayer) PlayPause(ctx context.Context) error {
	return p.press(ctx, gesture.PlayPause, p.keys.PlayPause)
}

func (p *KeyPlayer) VolumeUp(ctx context.Context) error {
	return p.press(ctx, gesture.VolumeUp, p.keys.VolumeUp)
}

func (p *KeyPlayer) VolumeDown(ctx context.Context) error {
	return p.press(ctx, gesture.VolumeDown, p.keys.VolumeDown)
}

func (p *KeyPlayer) SeekForward(ctx context.Context) error {
	return p.press(ctx, gesture.SeekForward, p.keys.SeekForward)
}

func (p *KeyPlayer) SeekBackward(ctx context.Context) error {
	return p.press(ctx, gesture.SeekBackward, p.keys.SeekBackward)
}

// press taps key and then blocks for the settle delay. The delay is not
// cut short by ctx so that a command always completes its window.
func (p *KeyPlayer) press(ctx context.Context, cmd gesture.Decision, key actuator.Key) error {
	ctx = actuator.WithCommand(ctx, cmd.String())
	if err := p.kb.Tap(ctx, key); err != nil {
		return fmt.Errorf("%s %s: %w", p.name, cmd, err)
	}
	if p.opts.Settle > 0 {
		p.opts.Sleep(p.opts.Settle)
	}
	return nil
}

// Invoke runs the Player control for d. None is a no-op.
func Invoke(ctx context.Context, p Player, d gesture.Decision) error {
	switch d {
	case gesture.None:
		return nil
	case gesture.PlayPause:
		return p.PlayPause(ctx)
	case gesture.VolumeUp:
		return p.VolumeUp(ctx)
	case gesture.VolumeDown:
		return p.VolumeDown(ctx)
	case gesture.SeekForward:
		return p.SeekForward(ctx)
	case gesture.SeekBackward:
		return p.SeekBackward(ctx)
	default:
		return fmt.Errorf("unknown decision %s", d)
	}
}

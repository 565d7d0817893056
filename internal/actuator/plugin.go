package actuator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ayusman/mudra/internal/plugin"
)

// PressAction is the plugin action that taps one key.
const PressAction = "press"

// DefaultPluginName is the manifest name of the bundled keyboard plugin.
const DefaultPluginName = "keyboard"

// PluginKeyboard taps keys by running a keyboard plugin executable.
type PluginKeyboard struct {
	plugin   *plugin.Plugin
	executor *plugin.Executor
}

type pressParams struct {
	Key Key `json:"key"`
}

// NewPluginKeyboard discovers plugins in dir and binds the one named name.
func NewPluginKeyboard(dir, name string) (*PluginKeyboard, error) {
	if name == "" {
		name = DefaultPluginName
	}

	mgr := plugin.NewManager(dir, nil)
	if err := mgr.Discover(); err != nil {
		return nil, fmt.Errorf("discover plugins in %s: %w", dir, err)
	}

	p, err := mgr.Get(name)
	if err != nil {
		return nil, err
	}
	if !p.Manifest.Supports(PressAction) {
		return nil, fmt.Errorf("plugin %s does not support %q", name, PressAction)
	}

	return NewPluginKeyboardFor(p, plugin.NewExecutor(plugin.DefaultTimeout)), nil
}

// NewPluginKeyboardFor wraps an already discovered plugin.
func NewPluginKeyboardFor(p *plugin.Plugin, exec *plugin.Executor) *PluginKeyboard {
	return &PluginKeyboard{plugin: p, executor: exec}
}

// Tap asks the plugin to press key.
func (k *PluginKeyboard) Tap(ctx context.Context, key Key) error {
	params, err := json.Marshal(pressParams{Key: key})
	if err != nil {
		return err
	}

	resp, err := k.executor.Execute(ctx, k.plugin, &plugin.Request{
		Action:  PressAction,
		Command: CommandFrom(ctx),
		Params:  params,
	})
	if err != nil {
		return err
	}
	if !resp.Success {
		if resp.Error == "" {
			return errors.New("plugin reported failure")
		}
		return fmt.Errorf("plugin: %s", resp.Error)
	}
	return nil
}

type commandKey struct{}

// WithCommand annotates ctx with the name of the command a tap belongs to,
// so plugins can log or special-case it.
func WithCommand(ctx context.Context, command string) context.Context {
	return context.WithValue(ctx, commandKey{}, command)
}

// CommandFrom returns the command name stored by WithCommand.
func CommandFrom(ctx context.Context) string {
	s, _ := ctx.Value(commandKey{}).(string)
	return s
}

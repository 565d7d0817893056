package actuator

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/input"
	"github.com/go-rod/rod/lib/launcher"
)

// DefaultTabPattern matches a YouTube watch page.
const DefaultTabPattern = `youtube\.com/watch`

// browserKeys maps keys to their DevTools equivalents.
var browserKeys = map[Key]input.Key{
	KeySpace: input.Space,
	KeyUp:    input.ArrowUp,
	KeyDown:  input.ArrowDown,
	KeyLeft:  input.ArrowLeft,
	KeyRight: input.ArrowRight,
}

// Browser types keys into a tab of an already running Chrome, reached over
// the DevTools protocol. Chrome must be started with --remote-debugging-port.
type Browser struct {
	browser *rod.Browser
	page    *rod.Page
	cancel  context.CancelFunc
}

// ConnectBrowser attaches to the Chrome at controlURL (host:port or a
// ws:// URL) and selects the first tab whose URL matches tabPattern.
func ConnectBrowser(ctx context.Context, controlURL, tabPattern string) (*Browser, error) {
	if controlURL == "" {
		controlURL = "127.0.0.1:9222"
	}
	if tabPattern == "" {
		tabPattern = DefaultTabPattern
	}

	wsURL := controlURL
	if !strings.HasPrefix(controlURL, "ws://") && !strings.HasPrefix(controlURL, "wss://") {
		resolved, err := launcher.ResolveURL(controlURL)
		if err != nil {
			return nil, fmt.Errorf("browser: resolve %s: %w", controlURL, err)
		}
		wsURL = resolved
	}

	// Cancelling the connection context drops the DevTools session without
	// closing the user's browser.
	connCtx, cancel := context.WithCancel(ctx)

	b := rod.New().ControlURL(wsURL).Context(connCtx)
	if err := b.Connect(); err != nil {
		cancel()
		return nil, fmt.Errorf("browser: connect: %w", err)
	}

	pages, err := b.Pages()
	if err != nil {
		cancel()
		return nil, fmt.Errorf("browser: list tabs: %w", err)
	}

	page, err := pages.FindByURL(tabPattern)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("browser: no tab matching %q: %w", tabPattern, err)
	}

	return &Browser{browser: b, page: page, cancel: cancel}, nil
}

// Tap brings the tab to the front and types key into it.
func (b *Browser) Tap(ctx context.Context, key Key) error {
	k, ok := browserKeys[key]
	if !ok {
		return fmt.Errorf("browser: unsupported key %q", key)
	}

	page := b.page.Context(ctx)
	if _, err := page.Activate(); err != nil {
		return fmt.Errorf("browser: activate tab: %w", err)
	}
	if err := page.Keyboard.Type(k); err != nil {
		return fmt.Errorf("browser: type %s: %w", key, err)
	}
	return nil
}

// Close detaches from the browser. The browser itself keeps running.
func (b *Browser) Close() error {
	if b.cancel != nil {
		b.cancel()
	}
	return nil
}

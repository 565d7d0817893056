package player

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/ayusman/mudra/internal/actuator"
)

// UnsupportedPlayerError is returned when a player name is not registered.
type UnsupportedPlayerError struct {
	Name string
}

func (e *UnsupportedPlayerError) Error() string {
	return fmt.Sprintf("unsupported media player %q", e.Name)
}

// Factory builds a Player that sends its keys through kb.
type Factory func(kb actuator.Keyboard, opts Options) Player

// Registry maps lowercase player names to factories.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewRegistry returns a Registry with the built-in players registered.
func NewRegistry() *Registry {
	r := &Registry{factories: make(map[string]Factory)}
	r.Register(YouTubeName, NewYouTube)
	return r
}

// Register adds or replaces the factory for name.
func (r *Registry) Register(name string, f Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[normalize(name)] = f
}

// Open builds the player registered under name, ignoring case and
// surrounding whitespace. An unknown name returns *UnsupportedPlayerError.
func (r *Registry) Open(name string, kb actuator.Keyboard, opts Options) (Player, error) {
	r.mu.RLock()
	f, ok := r.factories[normalize(name)]
	r.mu.RUnlock()

	if !ok {
		return nil, &UnsupportedPlayerError{Name: name}
	}
	return f(kb, opts), nil
}

// Supports reports whether name is registered.
func (r *Registry) Supports(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.factories[normalize(name)]
	return ok
}

// Names returns the registered player names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

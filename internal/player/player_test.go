package player

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ayusman/mudra/internal/actuator"
	"github.com/ayusman/mudra/internal/gesture"
)

type fakeSleep struct {
	calls []time.Duration
}

func (f *fakeSleep) Sleep(d time.Duration) {
	f.calls = append(f.calls, d)
}

func TestYouTube_KeyMapping(t *testing.T) {
	tests := []struct {
		decision gesture.Decision
		key      actuator.Key
	}{
		{gesture.PlayPause, actuator.KeySpace},
		{gesture.VolumeUp, actuator.KeyUp},
		{gesture.VolumeDown, actuator.KeyDown},
		{gesture.SeekForward, actuator.KeyRight},
		{gesture.SeekBackward, actuator.KeyLeft},
	}

	for _, tt := range tests {
		t.Run(tt.decision.String(), func(t *testing.T) {
			rec := actuator.NewRecorder(nil)
			sleep := &fakeSleep{}
			p := NewYouTube(rec, Options{Sleep: sleep.Sleep})

			if err := Invoke(context.Background(), p, tt.decision); err != nil {
				t.Fatalf("Invoke() error = %v", err)
			}

			keys := rec.Keys()
			if len(keys) != 1 || keys[0] != tt.key {
				t.Errorf("expected exactly [%s], got %v", tt.key, keys)
			}
			if len(sleep.calls) != 1 || sleep.calls[0] != DefaultSettle {
				t.Errorf("expected one settle of %s, got %v", DefaultSettle, sleep.calls)
			}
		})
	}
}

func TestInvoke_None(t *testing.T) {
	rec := actuator.NewRecorder(nil)
	sleep := &fakeSleep{}
	p := NewYouTube(rec, Options{Sleep: sleep.Sleep})

	if err := Invoke(context.Background(), p, gesture.None); err != nil {
		t.Fatalf("Invoke(None) error = %v", err)
	}
	if len(rec.Keys()) != 0 {
		t.Errorf("None must not press keys, got %v", rec.Keys())
	}
	if len(sleep.calls) != 0 {
		t.Error("None must not wait")
	}

	if err := Invoke(context.Background(), p, gesture.Decision(42)); err == nil {
		t.Error("expected error for unknown decision")
	}
}

func TestKeyPlayer_Settle(t *testing.T) {
	tests := []struct {
		name   string
		settle time.Duration
		want   time.Duration
		sleeps int
	}{
		{"default", 0, DefaultSettle, 1},
		{"custom", 250 * time.Millisecond, 250 * time.Millisecond, 1},
		{"disabled", -1, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sleep := &fakeSleep{}
			p := NewKeyPlayer("test", youtubeKeys, actuator.NewRecorder(nil), Options{Settle: tt.settle, Sleep: sleep.Sleep})

			if p.Settle() != tt.want {
				t.Errorf("Settle() = %s, want %s", p.Settle(), tt.want)
			}
			if err := p.PlayPause(context.Background()); err != nil {
				t.Fatalf("PlayPause() error = %v", err)
			}
			if len(sleep.calls) != tt.sleeps {
				t.Errorf("expected %d sleeps, got %d", tt.sleeps, len(sleep.calls))
			}
		})
	}
}

func TestKeyPlayer_KeyboardError(t *testing.T) {
	rec := actuator.NewRecorder(nil)
	wantErr := errors.New("no focus")
	rec.SetError(wantErr)

	sleep := &fakeSleep{}
	p := NewYouTube(rec, Options{Sleep: sleep.Sleep})

	err := p.VolumeUp(context.Background())
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected %v, got %v", wantErr, err)
	}
	if len(sleep.calls) != 0 {
		t.Error("a failed tap must not start the settle delay")
	}
}

// commandKeyboard records the command annotation of each tap.
type commandKeyboard struct {
	commands []string
}

func (k *commandKeyboard) Tap(ctx context.Context, key actuator.Key) error {
	k.commands = append(k.commands, actuator.CommandFrom(ctx))
	return nil
}

func TestKeyPlayer_AnnotatesCommand(t *testing.T) {
	kb := &commandKeyboard{}
	p := NewYouTube(kb, Options{Settle: -1})

	if err := p.SeekBackward(context.Background()); err != nil {
		t.Fatalf("SeekBackward() error = %v", err)
	}
	if len(kb.commands) != 1 || kb.commands[0] != "seek_backward" {
		t.Errorf("expected seek_backward annotation, got %v", kb.commands)
	}
}

func TestRegistry_Open(t *testing.T) {
	r := NewRegistry()
	rec := actuator.NewRecorder(nil)

	for _, name := range []string{"youtube", "YouTube", "YOUTUBE", "  youtube "} {
		p, err := r.Open(name, rec, Options{})
		if err != nil {
			t.Errorf("Open(%q) error = %v", name, err)
			continue
		}
		if kp, ok := p.(*KeyPlayer); !ok || kp.Name() != YouTubeName {
			t.Errorf("Open(%q) returned %T", name, p)
		}
	}

	_, err := r.Open("vlc", rec, Options{})
	var unsupported *UnsupportedPlayerError
	if !errors.As(err, &unsupported) {
		t.Fatalf("expected UnsupportedPlayerError, got %v", err)
	}
	if unsupported.Name != "vlc" {
		t.Errorf("expected name vlc, got %q", unsupported.Name)
	}
	if len(rec.Keys()) != 0 {
		t.Error("opening a player must not press keys")
	}
}

func TestRegistry_Register(t *testing.T) {
	r := NewRegistry()
	if r.Supports("spotify") {
		t.Fatal("spotify should not be registered by default")
	}

	spotifyKeys := KeyMap{
		PlayPause:    actuator.KeySpace,
		VolumeUp:     actuator.KeyUp,
		VolumeDown:   actuator.KeyDown,
		SeekForward:  actuator.KeyRight,
		SeekBackward: actuator.KeyLeft,
	}
	r.Register("Spotify", func(kb actuator.Keyboard, opts Options) Player {
		return NewKeyPlayer("spotify", spotifyKeys, kb, opts)
	})

	if !r.Supports("SPOTIFY") {
		t.Error("expected spotify to be supported after Register")
	}

	names := r.Names()
	if len(names) != 2 || names[0] != "spotify" || names[1] != "youtube" {
		t.Errorf("unexpected names %v", names)
	}
}

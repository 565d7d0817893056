package tray

import "testing"

func TestTray_Toggle(t *testing.T) {
	tr := New(Options{Enabled: true, Player: "youtube"})

	var got []bool
	tr.OnToggle(func(enabled bool) { got = append(got, enabled) })

	tr.handleToggle()
	tr.handleToggle()

	if len(got) != 2 || got[0] != false || got[1] != true {
		t.Errorf("unexpected toggle sequence %v", got)
	}
	if !tr.IsEnabled() {
		t.Error("expected enabled after two toggles")
	}
}

func TestTray_Dashboard(t *testing.T) {
	tr := New(Options{DashboardURL: "http://127.0.0.1:8717"})

	var opened string
	tr.OnDashboard(func(url string) { opened = url })
	tr.handleDashboard()

	if opened != "http://127.0.0.1:8717" {
		t.Errorf("expected dashboard URL, got %q", opened)
	}
}

func TestTray_LastCommand(t *testing.T) {
	tr := New(Options{})

	if tr.LastCommand() != "" {
		t.Errorf("expected no last command, got %q", tr.LastCommand())
	}

	tr.SetLastCommand("volume_up")
	if tr.LastCommand() != "volume_up" {
		t.Errorf("expected volume_up, got %q", tr.LastCommand())
	}
}

func TestTitles(t *testing.T) {
	if toggleTitle(true) != titleEnabled || toggleTitle(false) != titleDisabled {
		t.Error("unexpected toggle titles")
	}
	if lastTitle("") != "Last: none" || lastTitle("play_pause") != "Last: play_pause" {
		t.Error("unexpected last command titles")
	}
}

package store

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestNewStore_CreatesDatabase(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "dir", "test.db")

	s, err := New(dbPath)
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	defer s.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Fatal("database file should exist after creating store")
	}
	if s.Path() != dbPath {
		t.Errorf("Path() = %q, want %q", s.Path(), dbPath)
	}
}

func TestNewStore_RunsMigrations(t *testing.T) {
	s := newTestStore(t)

	for _, table := range []string{"events", "settings"} {
		var name string
		err := s.DB().QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?",
			table,
		).Scan(&name)
		if err != nil {
			t.Errorf("table %q should exist after migrations: %v", table, err)
		}
	}

	for _, idx := range []string{"idx_events_created_at", "idx_events_command"} {
		var name string
		err := s.DB().QueryRow(
			"SELECT name FROM sqlite_master WHERE type='index' AND name=?",
			idx,
		).Scan(&name)
		if err != nil {
			t.Errorf("index %q should exist after migrations: %v", idx, err)
		}
	}
}

func TestNewStore_Reopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	s, err := New(dbPath)
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	if err := s.Settings().Set(SettingPlayer, "youtube"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	s.Close()

	s, err = New(dbPath)
	if err != nil {
		t.Fatalf("failed to reopen store: %v", err)
	}
	defer s.Close()

	if v, err := s.Settings().Get(SettingPlayer); err != nil || v != "youtube" {
		t.Errorf("Get() = %q, %v; want youtube", v, err)
	}
}

func TestNewStore_Memory(t *testing.T) {
	s, err := New(MemoryPath)
	if err != nil {
		t.Fatalf("failed to create in-memory store: %v", err)
	}
	defer s.Close()

	if err := s.Events().Create(&Event{Command: "play_pause"}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	events, err := s.Events().List(0)
	if err != nil || len(events) != 1 {
		t.Fatalf("List() = %d events, %v; want 1", len(events), err)
	}
}

func TestStore_Close(t *testing.T) {
	s, err := New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}

	if err := s.Close(); err != nil {
		t.Errorf("close should not return error: %v", err)
	}

	if _, err := s.DB().Exec("SELECT 1"); err == nil {
		t.Error("DB operations should fail after close")
	}
}

func TestEventRepository_CreateAndGet(t *testing.T) {
	repo := newTestStore(t).Events()

	e := &Event{
		Command:    "seek_forward",
		Player:     "youtube",
		Handedness: "Right",
		Fingers:    "I---",
		X:          512,
		Region:     "right",
	}
	if err := repo.Create(e); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if e.ID == "" {
		t.Fatal("Create() should assign an ID")
	}
	if e.CreatedAt.IsZero() {
		t.Fatal("Create() should assign a timestamp")
	}

	got, err := repo.GetByID(e.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.Command != e.Command || got.Handedness != e.Handedness || got.X != e.X || got.Region != e.Region {
		t.Errorf("GetByID() = %+v, want %+v", got, e)
	}
	if !got.CreatedAt.Equal(e.CreatedAt) {
		t.Errorf("CreatedAt = %v, want %v", got.CreatedAt, e.CreatedAt)
	}

	if _, err := repo.GetByID("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestEventRepository_List(t *testing.T) {
	repo := newTestStore(t).Events()

	base := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	commands := []string{"play_pause", "volume_up", "volume_up", "seek_backward"}
	for i, cmd := range commands {
		e := &Event{Command: cmd, CreatedAt: base.Add(time.Duration(i) * time.Second)}
		if err := repo.Create(e); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}

	events, err := repo.List(2)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	if events[0].Command != "seek_backward" || events[1].Command != "volume_up" {
		t.Errorf("expected newest first, got %s, %s", events[0].Command, events[1].Command)
	}

	all, err := repo.List(0)
	if err != nil {
		t.Fatalf("List(0) error = %v", err)
	}
	if len(all) != len(commands) {
		t.Errorf("expected %d events, got %d", len(commands), len(all))
	}
}

func TestEventRepository_SummaryAndClear(t *testing.T) {
	repo := newTestStore(t).Events()

	for _, cmd := range []string{"volume_up", "play_pause", "volume_up"} {
		if err := repo.Create(&Event{Command: cmd}); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}

	summary, err := repo.Summary()
	if err != nil {
		t.Fatalf("Summary() error = %v", err)
	}
	if len(summary) != 2 {
		t.Fatalf("expected 2 commands, got %d", len(summary))
	}
	if summary[0].Command != "play_pause" || summary[0].Count != 1 {
		t.Errorf("unexpected first entry %+v", summary[0])
	}
	if summary[1].Command != "volume_up" || summary[1].Count != 2 {
		t.Errorf("unexpected second entry %+v", summary[1])
	}
	if summary[1].Last.IsZero() {
		t.Error("expected last timestamp to be parsed")
	}

	n, err := repo.Clear()
	if err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	if n != 3 {
		t.Errorf("Clear() removed %d, want 3", n)
	}

	events, err := repo.List(0)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(events) != 0 {
		t.Errorf("expected no events after Clear, got %d", len(events))
	}
}

func TestSettingsRepository(t *testing.T) {
	repo := newTestStore(t).Settings()

	if _, err := repo.Get(SettingPlayer); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if v, err := repo.GetDefault(SettingPlayer, "youtube"); err != nil || v != "youtube" {
		t.Errorf("GetDefault() = %q, %v", v, err)
	}

	if err := repo.Set(SettingPlayer, "youtube"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := repo.Set(SettingPlayer, "spotify"); err != nil {
		t.Fatalf("Set() overwrite error = %v", err)
	}
	if v, err := repo.Get(SettingPlayer); err != nil || v != "spotify" {
		t.Errorf("Get() = %q, %v; want spotify", v, err)
	}

	if err := repo.Delete(SettingPlayer); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if err := repo.Delete(SettingPlayer); err != nil {
		t.Errorf("deleting a missing key should not fail: %v", err)
	}
	if _, err := repo.Get(SettingPlayer); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound after Delete, got %v", err)
	}
}

func TestParseTime(t *testing.T) {
	want := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	for _, s := range []string{
		"2026-01-02 03:04:05+00:00",
		"2026-01-02T03:04:05Z",
		"2026-01-02 03:04:05",
	} {
		if got := parseTime(s); !got.Equal(want) {
			t.Errorf("parseTime(%q) = %v, want %v", s, got, want)
		}
	}
	if !parseTime("garbage").IsZero() {
		t.Error("expected zero time for garbage")
	}
}

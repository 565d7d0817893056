package main

import (
	"errors"
	"strings"
	"testing"
)

func TestPressScript(t *testing.T) {
	tests := []struct {
		key  string
		code string
	}{
		{"space", "key code 49"},
		{"left", "key code 123"},
		{"right", "key code 124"},
		{"down", "key code 125"},
		{"up", "key code 126"},
	}

	for _, tt := range tests {
		script, err := pressScript(tt.key)
		if err != nil {
			t.Errorf("pressScript(%q) error = %v", tt.key, err)
			continue
		}
		if !strings.HasSuffix(script, tt.code) {
			t.Errorf("pressScript(%q) = %q, want suffix %q", tt.key, script, tt.code)
		}
	}

	if _, err := pressScript("escape"); err == nil {
		t.Error("expected error for unsupported key")
	}
}

func TestHandle(t *testing.T) {
	var ran []string
	run := func(script string) error {
		ran = append(ran, script)
		return nil
	}

	tests := []struct {
		name    string
		input   string
		success bool
		errPart string
	}{
		{"press", `{"action":"press","command":"play_pause","params":{"key":"space"}}`, true, ""},
		{"unknown action", `{"action":"shortcut","params":{"key":"space"}}`, false, "unknown action"},
		{"unknown key", `{"action":"press","params":{"key":"f13"}}`, false, "unsupported key"},
		{"bad json", `not json`, false, "decode"},
		{"missing params", `{"action":"press"}`, false, "params"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := handle(strings.NewReader(tt.input), run)
			if resp.Success != tt.success {
				t.Fatalf("Success = %v, want %v (%s)", resp.Success, tt.success, resp.Error)
			}
			if tt.errPart != "" && !strings.Contains(resp.Error, tt.errPart) {
				t.Errorf("expected error containing %q, got %q", tt.errPart, resp.Error)
			}
		})
	}

	if len(ran) != 1 {
		t.Errorf("expected exactly one script run, got %d", len(ran))
	}
}

func TestHandle_ScriptFailure(t *testing.T) {
	resp := handle(strings.NewReader(`{"action":"press","params":{"key":"up"}}`), func(string) error {
		return errors.New("not authorized to send keystrokes")
	})
	if resp.Success || !strings.Contains(resp.Error, "not authorized") {
		t.Errorf("unexpected response %+v", resp)
	}
}

// Package main is the keyboard plugin for macOS. It presses one named key
// in the frontmost application through System Events.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sort"
)

// Request is the input from the plugin executor.
type Request struct {
	Action  string          `json:"action"`
	Command string          `json:"command,omitempty"`
	Config  json.RawMessage `json:"config,omitempty"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// Response is the output to the plugin executor.
type Response struct {
	Success bool            `json:"success"`
	Error   string          `json:"error,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

type pressParams struct {
	Key string `json:"key"`
}

// keyCodes are the macOS virtual key codes of the supported keys.
var keyCodes = map[string]int{
	"space": 49,
	"left":  123,
	"right": 124,
	"down":  125,
	"up":    126,
}

func main() {
	resp := handle(os.Stdin, runAppleScript)
	json.NewEncoder(os.Stdout).Encode(resp)
}

func handle(in io.Reader, run func(script string) error) Response {
	var req Request
	if err := json.NewDecoder(in).Decode(&req); err != nil {
		return failure(fmt.Sprintf("failed to decode request: %v", err))
	}

	if req.Action != "press" {
		return failure(fmt.Sprintf("unknown action: %s", req.Action))
	}

	var p pressParams
	if err := json.Unmarshal(req.Params, &p); err != nil {
		return failure(fmt.Sprintf("failed to parse params: %v", err))
	}

	script, err := pressScript(p.Key)
	if err != nil {
		return failure(err.Error())
	}
	if err := run(script); err != nil {
		return failure(fmt.Sprintf("press %s failed: %v", p.Key, err))
	}

	data, _ := json.Marshal(map[string]string{"key": p.Key, "command": req.Command})
	return Response{Success: true, Data: data}
}

// pressScript returns the AppleScript that presses key. Unknown keys are
// rejected rather than typed as text.
func pressScript(key string) (string, error) {
	code, ok := keyCodes[key]
	if !ok {
		return "", fmt.Errorf("unsupported key %q (supported: %v)", key, supportedKeys())
	}
	return fmt.Sprintf(`tell application "System Events" to key code %d`, code), nil
}

func supportedKeys() []string {
	keys := make([]string, 0, len(keyCodes))
	for k := range keyCodes {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func failure(msg string) Response {
	return Response{Success: false, Error: msg}
}

// runAppleScript executes an AppleScript command and returns any error.
func runAppleScript(script string) error {
	cmd := exec.Command("osascript", "-e", script)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("%w: %s", err, string(output))
	}
	return nil
}

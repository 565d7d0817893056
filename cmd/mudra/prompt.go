package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"github.com/ayusman/mudra/internal/store"
)

// resolvePlayer picks the player name: the configured one, else the one
// remembered from the last run, else the answer to an interactive prompt.
func resolvePlayer(configured string, st *store.Store, in io.Reader, out io.Writer) (string, error) {
	if name := strings.TrimSpace(configured); name != "" {
		return name, nil
	}

	if st != nil {
		if name, err := st.Settings().Get(store.SettingPlayer); err == nil && name != "" {
			return name, nil
		}
	}

	if f, ok := in.(*os.File); ok {
		if info, err := f.Stat(); err != nil || info.Mode()&os.ModeCharDevice == 0 {
			return "", errors.New("no media player configured: pass -player or set player in the config file")
		}
	}

	fmt.Fprint(out, "Which media player are you using? ")
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("read player name: %w", err)
	}

	name := strings.TrimSpace(line)
	if name == "" {
		return "", errors.New("no media player given")
	}
	return name, nil
}

func openURL(url string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	return cmd.Start()
}

package shared

import (
	"fmt"
	"os/exec"
	"runtime"
)

var getRuntime = func() string { return runtime.GOOS }

// OpenBrowser points the default system browser at url. Used to present the
// consent screen; callers fall back to printing the URL when this fails
// (headless sessions, unusual desktops).
func OpenBrowser(url string) error {
	var name string
	var args []string

	switch rt := getRuntime(); rt {
	case "darwin":
		name = "open"
		args = []string{url}
	case "linux":
		name = "xdg-open"
		args = []string{url}
	case "windows":
		name = "cmd"
		args = []string{"/c", "start", url}
	default:
		return fmt.Errorf("unsupported platform: %s", rt)
	}

	if err := exec.Command(name, args...).Start(); err != nil {
		return fmt.Errorf("failed to open browser: %w", err)
	}

	return nil
}

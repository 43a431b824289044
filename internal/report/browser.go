package report

import (
	"fmt"
	"os/exec"
	"runtime"
)

// OpenBrowser opens a URL or file path in the system default browser. The
// command is started, not waited on; callers log failures and carry on.
func OpenBrowser(url string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("open browser for %s: %w", url, err)
	}
	return nil
}

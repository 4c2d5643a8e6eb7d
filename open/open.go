// Package open hands URLs to the system's default handler.
package open

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/clipwave/clipwave/constant"
)

// Start opens input with the default handler without waiting for it.
func Start(input string) error {
	return StartWith(input, "")
}

// StartWith opens input with app, or the default handler when app is empty.
func StartWith(input, app string) error {
	if strings.HasPrefix(strings.TrimSpace(input), "-") {
		return fmt.Errorf("refusing to open %q", input)
	}

	cmd, ok := command(runtime.GOOS, input, app)
	if !ok {
		return fmt.Errorf("unsupported OS: %s", runtime.GOOS)
	}
	return cmd.Start()
}

func command(goos, input, app string) (*exec.Cmd, bool) {
	if app != "" {
		switch goos {
		case constant.Windows:
			// start treats & as a command separator
			escaped := strings.ReplaceAll(input, "&", "^&")
			return exec.Command("cmd", "/C", "start", "", app, escaped), true
		case constant.Darwin:
			return exec.Command("open", "-a", app, input), true
		case constant.Linux:
			return exec.Command(app, input), true
		}
	}

	switch goos {
	case constant.Windows:
		rundll := filepath.Join(os.Getenv("SYSTEMROOT"), "System32", "rundll32.exe")
		return exec.Command(rundll, "url.dll,FileProtocolHandler", input), true
	case constant.Darwin:
		return exec.Command("open", input), true
	case constant.Linux:
		return exec.Command("xdg-open", input), true
	case constant.Android:
		return exec.Command("termux-open", input), true
	default:
		return nil, false
	}
}

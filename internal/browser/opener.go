package browser

import (
	"fmt"
	"os/exec"
	"runtime"

	"github.com/Hemanthkumar04/newslens/internal/debuglog"
	"github.com/Hemanthkumar04/newslens/internal/validation"
)

// Opener hands article links to the system browser.
type Opener struct {
	command string
	args    []string
}

// NewOpener picks the platform opener. On Linux the usual candidates are
// probed in order and the first one on PATH wins.
func NewOpener() *Opener {
	switch runtime.GOOS {
	case "darwin":
		return &Opener{command: "open"}
	case "windows":
		return &Opener{command: "rundll32", args: []string{"url.dll,FileProtocolHandler"}}
	default:
		return &Opener{
			command: findCommand("xdg-open", "sensible-browser", "x-www-browser", "firefox", "chromium"),
		}
	}
}

// Open launches the browser detached so the terminal stays with the app.
// Only http(s) links reach exec; article feeds are untrusted input.
func (o *Opener) Open(url string) error {
	if !validation.IsHTTPURL(url) {
		return fmt.Errorf("refusing to open non-http link %q", url)
	}
	if o.command == "" {
		return fmt.Errorf("no browser opener found")
	}

	args := append(append([]string{}, o.args...), url)
	cmd := exec.Command(o.command, args...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start %s: %w", o.command, err)
	}
	debuglog.Debugf("browser: %s %s", o.command, url)

	go func() {
		_ = cmd.Wait()
	}()

	return nil
}

func findCommand(commands ...string) string {
	for _, cmd := range commands {
		if _, err := exec.LookPath(cmd); err == nil {
			return cmd
		}
	}
	return ""
}

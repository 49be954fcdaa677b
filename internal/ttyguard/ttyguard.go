// Package ttyguard marks scripted invocations as non-interactive before any
// terminal library initializes. Import it for side effects only, ahead of
// bubbletea and lipgloss.
package ttyguard

import (
	"os"
	"strings"
)

// init runs before Bubble Tea acquires the terminal.
//
// Lipgloss/termenv background detection can write OSC/DSR query sequences
// to stdout. They are harmless in a terminal but corrupt piped --json
// output, so those invocations set CI=1, which disables termenv probing.
func init() {
	if os.Getenv("CI") != "" {
		return
	}

	if !ShouldSuppressTTYQueries(os.Args, os.Getenv("ACADEMY_ROBOT") == "1", os.Getenv("ACADEMY_TEST_MODE") != "") {
		return
	}

	_ = os.Setenv("CI", "1")
}

// ShouldSuppressTTYQueries reports whether the invocation is scripted.
func ShouldSuppressTTYQueries(args []string, envRobot, envTest bool) bool {
	if envRobot || envTest {
		return true
	}

	for _, arg := range args {
		if arg == "--json" || strings.HasPrefix(arg, "--json=") {
			return true
		}
		switch arg {
		case "--version", "--help", "-h", "version":
			return true
		}
	}

	return false
}

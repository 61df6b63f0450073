package share

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"runtime"
	"strings"
	"sync"
)

// Launcher hands a file path to an external program.
type Launcher interface {
	Launch(ctx context.Context, path string) error
}

// ExecLauncher runs a command with the file path appended as its last argument.
type ExecLauncher struct {
	Command string
	Args    []string
}

// NewExecLauncher parses command (e.g. "xdg-open" or "open -a Mail") into an ExecLauncher.
// An empty command selects the platform default opener.
func NewExecLauncher(command string) (*ExecLauncher, error) {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		fields = DefaultOpener(runtime.GOOS)
	}
	if len(fields) == 0 {
		return nil, errors.New("no share command configured for this platform")
	}
	return &ExecLauncher{Command: fields[0], Args: fields[1:]}, nil
}

// DefaultOpener returns the command that opens a file with its associated application.
func DefaultOpener(goos string) []string {
	switch goos {
	case "darwin":
		return []string{"open"}
	case "windows":
		return []string{"rundll32", "url.dll,FileProtocolHandler"}
	case "linux", "freebsd", "openbsd", "netbsd":
		return []string{"xdg-open"}
	default:
		return nil
	}
}

// Launch runs the command and waits for it to exit.
func (l *ExecLauncher) Launch(ctx context.Context, path string) error {
	args := append(append([]string(nil), l.Args...), path)
	cmd := exec.CommandContext(ctx, l.Command, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to run %s: %s - %w", l.Command, strings.TrimSpace(stderr.String()), err)
	}
	return nil
}

// MockLauncher records launched paths for tests.
type MockLauncher struct {
	mu       sync.Mutex
	Launched []string
	Err      error
}

// Launch records path and returns Err.
func (m *MockLauncher) Launch(_ context.Context, path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.Launched = append(m.Launched, path)
	return nil
}

package files

import (
	"fmt"
	"log/slog"
	"os/exec"
	"runtime"
)

// CommandRunner starts an external command without waiting for it.
type CommandRunner func(name string, args ...string) error

// Opener hands files to the operating system's default application.
type Opener struct {
	goos   string
	run    CommandRunner
	logger *slog.Logger
}

// NewOpener creates an opener for the current platform.
func NewOpener(logger *slog.Logger) *Opener {
	if logger == nil {
		logger = slog.Default()
	}
	return &Opener{
		goos:   runtime.GOOS,
		run:    startCommand,
		logger: logger.With(slog.String("component", "opener")),
	}
}

// WithRunner replaces how commands are started. goos selects the platform
// command; empty keeps the current one.
func (o *Opener) WithRunner(goos string, run CommandRunner) *Opener {
	if goos != "" {
		o.goos = goos
	}
	o.run = run
	return o
}

// Open launches the default application for path. Failures are logged and
// returned; callers treat them as non-fatal.
func (o *Opener) Open(path string) error {
	name, args := openCommand(o.goos, path)
	if err := o.run(name, args...); err != nil {
		o.logger.Warn("Could not open file",
			slog.String("file", path),
			slog.String("command", name),
			slog.String("error", err.Error()))
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	o.logger.Info("Opened file", slog.String("file", path))
	return nil
}

func openCommand(goos, path string) (string, []string) {
	switch goos {
	case "darwin":
		return "open", []string{path}
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler", path}
	default:
		return "xdg-open", []string{path}
	}
}

func startCommand(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	if err := cmd.Start(); err != nil {
		return err
	}
	return cmd.Process.Release()
}

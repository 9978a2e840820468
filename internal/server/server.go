// Package server finds, starts and stops the glass-server process the TUI
// talks to.
package server

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/newhook/glass/internal/api"
	"github.com/newhook/glass/internal/logging"
)

const (
	// healthTimeout bounds a single readiness probe.
	healthTimeout = 500 * time.Millisecond
	// pollInterval is the delay between readiness probes during startup.
	pollInterval = 100 * time.Millisecond
)

// ErrNotFound is returned when the server binary cannot be located.
var ErrNotFound = errors.New("server binary not found")

// IsRunning reports whether a server answers health checks at baseURL.
func IsRunning(ctx context.Context, baseURL string) bool {
	ctx, cancel := context.WithTimeout(ctx, healthTimeout)
	defer cancel()
	_, err := api.NewClient(baseURL, 0).Health(ctx)
	return err == nil
}

// locator holds the lookups FindBinary searches, so tests can replace them.
type locator struct {
	executable func() (string, error)
	lookPath   func(file string) (string, error)
	home       string
	extraDirs  []string
}

var systemLocator = locator{
	executable: os.Executable,
	lookPath:   exec.LookPath,
	home:       os.Getenv("HOME"),
	extraDirs:  []string{"/usr/local/bin", "/opt/homebrew/bin"},
}

// FindBinary locates the server binary. name may be a path, in which case it
// is used as is. Otherwise the directory of the running executable is tried
// first, then PATH, then common install locations.
func FindBinary(name string) (string, error) {
	return systemLocator.find(name)
}

func (l locator) find(name string) (string, error) {
	if filepath.Base(name) != name {
		if isFile(name) {
			return name, nil
		}
		return "", fmt.Errorf("%w: %s", ErrNotFound, name)
	}

	if exe, err := l.executable(); err == nil {
		candidate := filepath.Join(filepath.Dir(exe), name)
		if isFile(candidate) {
			return candidate, nil
		}
	}

	if path, err := l.lookPath(name); err == nil {
		return path, nil
	}

	var dirs []string
	if l.home != "" {
		dirs = append(dirs, filepath.Join(l.home, ".local", "bin"))
	}
	dirs = append(dirs, l.extraDirs...)
	for _, dir := range dirs {
		candidate := filepath.Join(dir, name)
		if isFile(candidate) {
			return candidate, nil
		}
	}

	return "", fmt.Errorf("%w: could not find %q; install it or place it next to glass", ErrNotFound, name)
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// Options configures Start.
type Options struct {
	// Binary is the server executable name or path.
	Binary string
	// ProjectPath is passed to the server as its only argument.
	ProjectPath string
	// BaseURL is where the server will listen.
	BaseURL string
	// StartupTimeout bounds the wait for the first healthy response.
	StartupTimeout time.Duration
}

// Process is a server started by Start. Stop kills it.
type Process struct {
	cmd  *exec.Cmd
	done chan struct{}
	err  error
}

// Start launches the server unless one is already answering at opts.BaseURL,
// in which case it returns a nil Process. It returns once the server is healthy.
func Start(ctx context.Context, opts Options) (*Process, error) {
	if IsRunning(ctx, opts.BaseURL) {
		logging.Info("server already running", "url", opts.BaseURL)
		return nil, nil
	}

	path, err := FindBinary(opts.Binary)
	if err != nil {
		return nil, err
	}

	cmd := exec.Command(path, opts.ProjectPath)
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("failed to start server at %s: %w", path, err)
	}
	p := &Process{cmd: cmd, done: make(chan struct{})}
	go func() {
		p.err = cmd.Wait()
		close(p.done)
	}()
	logging.Info("started server", "path", path, "pid", cmd.Process.Pid, "project", opts.ProjectPath)

	if err := p.waitReady(ctx, opts.BaseURL, opts.StartupTimeout); err != nil {
		p.Stop()
		return nil, err
	}
	return p, nil
}

func (p *Process) waitReady(ctx context.Context, baseURL string, timeout time.Duration) error {
	deadline := time.NewTimer(timeout)
	defer deadline.Stop()
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		if IsRunning(ctx, baseURL) {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-p.done:
			return fmt.Errorf("server exited during startup: %w", p.exitErr())
		case <-deadline.C:
			return fmt.Errorf("server failed to start within %s", timeout)
		case <-ticker.C:
		}
	}
}

func (p *Process) exitErr() error {
	if p.err == nil {
		return errors.New("exit status 0")
	}
	return p.err
}

// Stop kills the server and waits for it to exit. It is safe to call on a
// nil Process and more than once.
func (p *Process) Stop() {
	if p == nil {
		return
	}
	select {
	case <-p.done:
		return
	default:
	}
	if err := p.cmd.Process.Kill(); err != nil {
		logging.Warn("failed to kill server", "pid", p.cmd.Process.Pid, "error", err)
	}
	<-p.done
	logging.Info("stopped server", "pid", p.cmd.Process.Pid)
}

// Pid returns the server's process id.
func (p *Process) Pid() int {
	return p.cmd.Process.Pid
}

// Package config loads the glass client configuration from config.toml.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

const (
	// FileName is the name of the config file inside the config directory.
	FileName = "config.toml"

	// DefaultPort is the port glass-server listens on.
	DefaultPort = 7420
	// DefaultBinary is the server executable looked up when autostarting.
	DefaultBinary = "glass-server"
	// DefaultEscapeCommand is the interactive agent program used for session hand-off.
	DefaultEscapeCommand = "pi"
)

// Config represents the client configuration stored in config.toml.
type Config struct {
	Server ServerConfig `toml:"server"`
	TUI    TUIConfig    `toml:"tui"`
	Escape EscapeConfig `toml:"escape"`
	Cache  CacheConfig  `toml:"cache"`
}

// ServerConfig describes how to reach (and optionally start) glass-server.
type ServerConfig struct {
	// URL is the base URL of the server. Defaults to http://localhost:<port>.
	URL string `toml:"url"`

	// Port is used for the default URL and for health checks of an autostarted server.
	Port *int `toml:"port"`

	// Binary is the server executable name or path.
	Binary string `toml:"binary"`

	// Autostart controls whether the client spawns the server when it is not running.
	// Defaults to true when not specified.
	Autostart *bool `toml:"autostart"`

	// StartupTimeoutSeconds bounds how long to wait for a spawned server to become healthy.
	StartupTimeoutSeconds *int `toml:"startup_timeout_seconds"`
}

// GetPort returns the configured port, defaulting to 7420.
func (s *ServerConfig) GetPort() int {
	if s.Port == nil || *s.Port <= 0 {
		return DefaultPort
	}
	return *s.Port
}

// GetURL returns the server base URL.
func (s *ServerConfig) GetURL() string {
	if s.URL != "" {
		return s.URL
	}
	return fmt.Sprintf("http://localhost:%d", s.GetPort())
}

// GetBinary returns the server executable name.
func (s *ServerConfig) GetBinary() string {
	if s.Binary == "" {
		return DefaultBinary
	}
	return s.Binary
}

// ShouldAutostart returns true if the server should be spawned when not running.
// Defaults to true when not explicitly configured.
func (s *ServerConfig) ShouldAutostart() bool {
	if s.Autostart == nil {
		return true
	}
	return *s.Autostart
}

// GetStartupTimeout returns how long to wait for a freshly spawned server.
// Defaults to 5 seconds.
func (s *ServerConfig) GetStartupTimeout() time.Duration {
	if s.StartupTimeoutSeconds == nil || *s.StartupTimeoutSeconds <= 0 {
		return 5 * time.Second
	}
	return time.Duration(*s.StartupTimeoutSeconds) * time.Second
}

// TUIConfig contains interactive UI settings.
type TUIConfig struct {
	// TickIntervalMillis is how long the control loop waits for input before
	// draining background results again. Defaults to 100ms.
	TickIntervalMillis *int `toml:"tick_interval_ms"`

	// Mouse enables mouse support. Defaults to true.
	Mouse *bool `toml:"mouse"`
}

// GetTickInterval returns the control loop tick interval.
func (t *TUIConfig) GetTickInterval() time.Duration {
	if t.TickIntervalMillis == nil || *t.TickIntervalMillis <= 0 {
		return 100 * time.Millisecond
	}
	return time.Duration(*t.TickIntervalMillis) * time.Millisecond
}

// MouseEnabled returns true if mouse support is enabled.
func (t *TUIConfig) MouseEnabled() bool {
	if t.Mouse == nil {
		return true
	}
	return *t.Mouse
}

// EscapeConfig configures the interactive session hand-off.
type EscapeConfig struct {
	// Command is the program run with `--session <path>`.
	Command string `toml:"command"`
}

// GetCommand returns the hand-off program, defaulting to "pi".
func (e *EscapeConfig) GetCommand() string {
	if e.Command == "" {
		return DefaultEscapeCommand
	}
	return e.Command
}

// CacheConfig controls client-side response caching.
type CacheConfig struct {
	// SessionTTLSeconds is how long session lookups are cached. Defaults to 30 seconds.
	SessionTTLSeconds *int `toml:"session_ttl_seconds"`
}

// GetSessionTTL returns the session lookup cache TTL.
func (c *CacheConfig) GetSessionTTL() time.Duration {
	if c.SessionTTLSeconds == nil || *c.SessionTTLSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(*c.SessionTTLSeconds) * time.Second
}

// DefaultPath returns $XDG_CONFIG_HOME/glass/config.toml (or ~/.config/glass/config.toml).
func DefaultPath() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "glass", FileName)
}

// LoadConfig reads and parses a config.toml file.
func LoadConfig(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}

// Load reads the config at path, returning an empty config (all defaults)
// when the file does not exist.
func Load(path string) (*Config, error) {
	if path == "" {
		return &Config{}, nil
	}
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return &Config{}, nil
	}
	return LoadConfig(path)
}

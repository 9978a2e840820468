package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/newhook/glass/internal/api"
	"github.com/newhook/glass/internal/app"
	"github.com/newhook/glass/internal/config"
	"github.com/newhook/glass/internal/logging"
	"github.com/newhook/glass/internal/server"
	glasssignal "github.com/newhook/glass/internal/signal"
	"github.com/newhook/glass/internal/tui"
	"github.com/spf13/cobra"
)

var (
	// rootCtx holds the signal-cancellable context for the application
	rootCtx    context.Context
	rootCancel context.CancelFunc

	flagConfig   string
	flagServer   string
	flagNoServer bool
	flagNoMouse  bool
	flagDebug    bool
)

var rootCmd = &cobra.Command{
	Use:   "glass [project]",
	Short: "Terminal client for the issue triage server",
	Long: `glass browses issues tracked by glass-server, streams agent analyses,
and approves, rejects or completes the proposed fixes.

When no server is reachable glass starts one for the project directory
(default: the current directory) and stops it on exit.`,
	Args: cobra.MaximumNArgs(1),
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		rootCtx, rootCancel = glasssignal.WithSignalCancel(context.Background())

		level := slog.LevelInfo
		if flagDebug {
			level = slog.LevelDebug
		}
		if err := logging.Init(logging.DefaultDir(), level); err != nil {
			fmt.Fprintf(os.Stderr, "warning: %v\n", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logging.Close()
		if rootCancel != nil {
			rootCancel()
		}
	},
	RunE: runTUI,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// GetContext returns the root context that is cancelled on SIGINT/SIGTERM.
func GetContext() context.Context {
	if rootCtx == nil {
		return context.Background()
	}
	return rootCtx
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "config file (default: $XDG_CONFIG_HOME/glass/config.toml)")
	rootCmd.PersistentFlags().StringVar(&flagServer, "server", "", "server URL (overrides config)")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "enable debug logging")
	rootCmd.Flags().BoolVar(&flagNoServer, "no-server", false, "never start a server, only connect to a running one")
	rootCmd.Flags().BoolVar(&flagNoMouse, "no-mouse", false, "disable mouse support in the TUI")

	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(listCmd)
}

// loadConfig reads the config file named by --config, or the default one.
func loadConfig() (*config.Config, error) {
	path := flagConfig
	if path == "" {
		path = config.DefaultPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if flagServer != "" {
		cfg.Server.URL = flagServer
	}
	return cfg, nil
}

// newClient builds the API client for the configured server.
func newClient(cfg *config.Config) *api.Client {
	return api.NewClient(cfg.Server.GetURL(), cfg.Cache.GetSessionTTL())
}

func runTUI(cmd *cobra.Command, args []string) error {
	ctx := GetContext()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	projectPath := "."
	if len(args) > 0 {
		projectPath = args[0]
	}

	url := cfg.Server.GetURL()
	if !flagNoServer && cfg.Server.ShouldAutostart() {
		proc, err := server.Start(ctx, server.Options{
			Binary:         cfg.Server.GetBinary(),
			ProjectPath:    projectPath,
			BaseURL:        url,
			StartupTimeout: cfg.Server.GetStartupTimeout(),
		})
		if err != nil {
			return fmt.Errorf("failed to start server: %w", err)
		}
		defer proc.Stop()
	} else if !server.IsRunning(ctx, url) {
		logging.Warn("server not reachable", "url", url)
	}

	logging.Info("starting glass", "url", url, "project", projectPath)

	tasks := app.NewTasks(ctx, newClient(cfg))
	a := app.New(tasks)
	defer a.Close()

	err = tui.Run(ctx, a, tui.Options{
		TickInterval:  cfg.TUI.GetTickInterval(),
		Mouse:         cfg.TUI.MouseEnabled() && !flagNoMouse,
		EscapeCommand: cfg.Escape.GetCommand(),
	})
	return withLogHint(err, logging.Path())
}

// withLogHint points a failed run at the log file, when there is one.
func withLogHint(err error, logPath string) error {
	if err == nil || logPath == "" {
		return err
	}
	return fmt.Errorf("%w (log: %s)", err, logPath)
}

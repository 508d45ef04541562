package cmd

import (
	"fmt"
	"os"

	"github.com/iksnae/osa-monitor/internal"
	"github.com/spf13/cobra"
)

var (
	verbose    bool
	configPath string
	dataDir    string
	version    string = "dev"
	commit     string = "unknown"
	date       string = "unknown"
)

var (
	cfg      internal.Config
	paths    internal.DataPaths
	closeLog = func() error { return nil }
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "osa-monitor",
	Short: "Watch OSA agent activity in real time",
	Long: `A terminal monitor for the OSA agent event stream.

osa-monitor connects to the OSA logger's WebSocket feed and shows a live,
filterable log, a metrics panel and the recent thought graph. Sessions can be
saved, reloaded and exported. Without a reachable endpoint it falls back to
demo activity.

Quick Start:
  osa-monitor watch                      # Watch ws://localhost:8765
  osa-monitor serve                      # Run a demo event server
  osa-monitor sessions                   # List saved sessions
  osa-monitor export --format md         # Export saved sessions`,
	Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		internal.SetVerbose(verbose)

		var err error
		paths, err = internal.DetectDataPaths(dataDir)
		if err != nil {
			return fmt.Errorf("failed to resolve data directory: %w", err)
		}
		path := configPath
		if path == "" {
			path = paths.ConfigPath
		}
		cfg, err = internal.LoadConfig(path)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		logFile := ""
		if cfg.LogFile {
			logFile = paths.LogFile
		}
		closeLog, err = internal.ConfigureLogging(cmd.ErrOrStderr(), logFile)
		if err != nil {
			internal.LogWarn("File logging disabled: %v", err)
		}
		internal.LogDebug("Using data directory %s", paths.DataDir)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = closeLog()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// openStore opens the session store selected in the loaded config
func openStore() (internal.SessionStore, error) {
	store, err := internal.OpenSessionStore(cfg, paths)
	if err != nil {
		return nil, fmt.Errorf("failed to open session store: %w", err)
	}
	return store, nil
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default <data-dir>/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "Directory for sessions, config and logs")

	// Set version template to ensure --version flag works
	rootCmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)
}

package cmd

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/iksnae/osa-monitor/internal/transport"
	"github.com/spf13/cobra"
)

var (
	healthcheckVerbose  bool
	healthcheckEndpoint bool
)

var (
	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39"))

	sectionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("62")).
			Bold(true).
			Underline(true)
)

var healthcheckCmd = &cobra.Command{
	Use:   "healthcheck",
	Short: "Check config, session storage and the OSA endpoint",
	Long: `Check the health of osa-monitor by verifying:
  • Configuration loads and validates
  • The session store opens and its sessions decode
  • The OSA endpoint accepts a WebSocket connection

An unreachable endpoint is only a warning unless --require-endpoint is set,
since the monitor falls back to demo activity.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, sectionStyle.Render("🔍 OSA Monitor Health Check"))
		fmt.Fprintln(out)

		// Step 1: Configuration
		fmt.Fprintln(out, infoStyle.Render("Step 1: Checking configuration..."))
		if err := cfg.Validate(); err != nil {
			fmt.Fprintln(out, errorStyle.Render("❌ Invalid configuration:"), err)
			return fmt.Errorf("health check failed: %w", err)
		}
		fmt.Fprintln(out, successStyle.Render("✅ Configuration valid"))
		if healthcheckVerbose {
			fmt.Fprintf(out, "   Data dir: %s\n", paths.DataDir)
			fmt.Fprintf(out, "   Config: %s (present: %v)\n", paths.ConfigPath, paths.ConfigExists())
			fmt.Fprintf(out, "   Storage: %s\n", cfg.Storage)
		}
		fmt.Fprintln(out)

		// Step 2: Session store
		fmt.Fprintln(out, infoStyle.Render("Step 2: Checking session storage..."))
		count, err := checkStorage()
		if err != nil {
			fmt.Fprintln(out, errorStyle.Render("❌ Session storage unavailable:"), err)
			return fmt.Errorf("health check failed: %w", err)
		}
		fmt.Fprintln(out, successStyle.Render(fmt.Sprintf("✅ Session storage readable (%d saved session(s))", count)))
		fmt.Fprintln(out)

		// Step 3: Endpoint
		fmt.Fprintln(out, infoStyle.Render(fmt.Sprintf("Step 3: Connecting to %s...", cfg.Endpoint)))
		dialer := transport.NewWebSocketDialer(cfg.Reconnect.HandshakeTimeout)
		if err := checkEndpoint(cmd.Context(), dialer, cfg.Endpoint, cfg.Reconnect.HandshakeTimeout); err != nil {
			if healthcheckEndpoint {
				fmt.Fprintln(out, errorStyle.Render("❌ Endpoint unreachable:"), err)
				return fmt.Errorf("health check failed: %w", err)
			}
			fmt.Fprintln(out, warningStyle.Render("⚠️  Endpoint unreachable, watch will show demo activity"))
			if healthcheckVerbose {
				fmt.Fprintf(out, "   %v\n", err)
			}
		} else {
			fmt.Fprintln(out, successStyle.Render("✅ Endpoint reachable"))
		}
		fmt.Fprintln(out)

		printHealthSummary(out)
		return nil
	},
}

func checkStorage() (int, error) {
	store, err := openStore()
	if err != nil {
		return 0, err
	}
	defer store.Close()

	sessions, err := store.LoadSessions()
	if err != nil {
		return 0, err
	}
	return len(sessions), nil
}

// checkEndpoint dials endpoint once and closes the connection straight away
func checkEndpoint(ctx context.Context, dialer transport.Dialer, endpoint string, timeout time.Duration) error {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	conn, err := dialer.Dial(ctx, endpoint)
	if err != nil {
		return err
	}
	return conn.Close()
}

func printHealthSummary(out io.Writer) {
	fmt.Fprintln(out, sectionStyle.Render("📊 Summary"))
	fmt.Fprintln(out)
	fmt.Fprintln(out, successStyle.Render("✅ Health check passed!"))
}

func init() {
	rootCmd.AddCommand(healthcheckCmd)
	healthcheckCmd.Flags().BoolVar(&healthcheckVerbose, "details", false, "Show detailed diagnostic information")
	healthcheckCmd.Flags().BoolVar(&healthcheckEndpoint, "require-endpoint", false, "Fail when the endpoint is unreachable")
}

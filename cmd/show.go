package cmd

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/iksnae/osa-monitor/internal"
	"github.com/iksnae/osa-monitor/internal/render"
	"github.com/spf13/cobra"
)

var (
	showFilter string
	showLimit  int
)

var (
	// Styles for show command
	sessionHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("212")).
				Padding(0, 1)

	sessionMetaStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("243"))
)

var showCmd = &cobra.Command{
	Use:   "show <session-id>",
	Short: "Show the log of a saved session",
	Long: `Re-render the log and metrics of a saved session the way the live
monitor shows them.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		filter := strings.ToLower(showFilter)
		if !internal.ValidFilter(filter) {
			return fmt.Errorf("unknown category: %s", showFilter)
		}

		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		sessions, err := store.LoadSessions()
		if err != nil {
			return fmt.Errorf("failed to load sessions: %w", err)
		}
		session, ok := internal.FindSession(sessions, args[0])
		if !ok {
			return fmt.Errorf("session not found: %s (use 'osa-monitor sessions' to see saved sessions)", args[0])
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, sessionHeaderStyle.Render("💬 "+session.Name))
		fmt.Fprintln(out, sessionMetaStyle.Render(strings.Join([]string{
			"Saved: " + session.Timestamp,
			fmt.Sprintf("Logs: %d", len(session.Logs)),
			"Filter: " + filter,
		}, " • ")))

		window := len(session.Logs)
		if showLimit > 0 && showLimit < window {
			window = showLimit
		}
		if window == 0 {
			window = 1
		}
		term := render.NewTerminal(out)
		view := render.NewLogView(window, filter)
		term.ResetLogs(view.Rebuild(session.Logs))
		term.ShowMetrics(session.Metrics)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
	showCmd.Flags().StringVarP(&showFilter, "filter", "f", internal.CategoryAll, "Show only one log category")
	showCmd.Flags().IntVarP(&showLimit, "limit", "n", 0, "Show only the newest n matching entries")
}

package cmd

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/iksnae/osa-monitor/internal"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"
)

var sessionsLimit int

var (
	// Styles
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("62")).
			Padding(0, 1)

	idStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("240")).
		Italic(true)
)

var sessionsCmd = &cobra.Command{
	Use:     "sessions",
	Aliases: []string{"list"},
	Short:   "List saved sessions",
	Long:    `List saved monitor sessions, newest first.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		sessions, err := store.LoadSessions()
		if err != nil {
			return fmt.Errorf("failed to load sessions: %w", err)
		}

		n := len(sessions)
		if sessionsLimit > 0 && sessionsLimit < n {
			n = sessionsLimit
		}
		recent := internal.RecentSessions(sessions, n)

		out := cmd.OutOrStdout()
		if len(sessions) == 0 {
			fmt.Fprintln(out, headerStyle.Render("📋 No saved sessions"))
			return nil
		}
		fmt.Fprintln(out, headerStyle.Render(fmt.Sprintf("📋 %d saved session(s)", len(sessions))))
		writeSessionsTable(out, recent, time.Now())
		fmt.Fprintln(out, idStyle.Render("💡 Tip: osa-monitor show "+recent[0].ID))
		return nil
	},
}

func writeSessionsTable(w io.Writer, sessions []internal.Session, now time.Time) {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetStyle(table.StyleRounded)
	tw.Style().Options.SeparateHeader = true
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignLeft},
		{Number: 2, Align: text.AlignLeft, WidthMax: 40},
		{Number: 3, Align: text.AlignLeft},
		{Number: 4, Align: text.AlignRight},
		{Number: 5, Align: text.AlignRight},
		{Number: 6, Align: text.AlignRight},
	})
	tw.AppendHeader(table.Row{"ID", "Name", "Saved", "Logs", "Thoughts", "Efficiency"})

	for _, s := range sessions {
		tw.AppendRow(table.Row{
			s.ID,
			s.Name,
			formatSaved(s, now),
			len(s.Logs),
			s.Metrics.Thoughts,
			fmt.Sprintf("%.0f%%", s.Metrics.Efficiency),
		})
	}
	tw.Render()
}

// formatSaved renders the save time relative to now
func formatSaved(s internal.Session, now time.Time) string {
	t, err := s.CreatedAt()
	if err != nil {
		return s.Timestamp
	}
	t = t.Local()
	diff := now.Sub(t)
	switch {
	case diff < 24*time.Hour:
		return t.Format("Today 15:04")
	case diff < 7*24*time.Hour:
		return t.Format("Mon 15:04")
	case diff < 365*24*time.Hour:
		return t.Format("Jan 02 15:04")
	default:
		return t.Format("2006-01-02")
	}
}

func init() {
	rootCmd.AddCommand(sessionsCmd)
	sessionsCmd.Flags().IntVarP(&sessionsLimit, "limit", "n", 0, "Show at most n sessions")
}

package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/iksnae/osa-monitor/internal"
	"github.com/iksnae/osa-monitor/internal/export"
	"github.com/spf13/cobra"
)

var (
	format    string
	outputDir string
)

var exportCmd = &cobra.Command{
	Use:   "export [session-id]",
	Short: "Export saved sessions to files",
	Long: `Export saved sessions to various formats (json, jsonl, md, yaml).

Without a session ID every saved session is exported, one file each.
Use 'osa-monitor sessions' to see available session IDs.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if !cmd.Flags().Changed("format") {
			format = cfg.Export.Format
		}
		if !cmd.Flags().Changed("out") {
			outputDir = cfg.Export.Dir
		}

		exporter, err := export.NewExporter(format)
		if err != nil {
			return err
		}

		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		var (
			sessions []internal.Session
			written  []string
		)
		steps := []internal.ProgressStep{
			{
				Message: "Loading saved sessions",
				Fn: func() error {
					var loadErr error
					sessions, loadErr = store.LoadSessions()
					if loadErr != nil {
						return loadErr
					}
					if len(args) == 1 {
						s, ok := internal.FindSession(sessions, args[0])
						if !ok {
							return fmt.Errorf("session not found: %s (use 'osa-monitor sessions' to see saved sessions)", args[0])
						}
						sessions = []internal.Session{s}
					}
					return nil
				},
			},
			{
				Message: fmt.Sprintf("Writing %s files to %s", exporter.Extension(), outputDir),
				Fn: func() error {
					var exportErr error
					written, exportErr = exportSessions(exporter, sessions, outputDir, cfg.Export.Prefix)
					return exportErr
				},
			},
		}
		if err := internal.ShowProgressWithSteps(context.Background(), steps); err != nil {
			return err
		}
		if len(written) == 0 {
			internal.PrintWarning("No saved sessions to export")
			return nil
		}

		for _, path := range written {
			internal.LogDebug("Wrote %s", path)
		}
		internal.PrintSuccess(fmt.Sprintf("Export complete: %d session(s) exported to %s", len(written), outputDir))
		return nil
	},
}

// exportSessions writes one file per session, stamped with its save time
func exportSessions(exp export.Exporter, sessions []internal.Session, dir, prefix string) ([]string, error) {
	written := make([]string, 0, len(sessions))
	for _, s := range sessions {
		stamp := time.Now()
		if t, err := s.CreatedAt(); err == nil {
			stamp = t
		}
		path, err := export.WriteFile(exp, s.ExportDocument(), dir, prefix, stamp)
		if err != nil {
			return written, err
		}
		written = append(written, path)
	}
	return written, nil
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVarP(&format, "format", "f", "json", "Export format (json, jsonl, md, yaml)")
	exportCmd.Flags().StringVarP(&outputDir, "out", "o", "./exports", "Output directory")
}

package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/iksnae/osa-monitor/internal"
	"github.com/spf13/cobra"
)

var (
	inspectFormat  string
	inspectPattern string
)

// KeyInfo describes one monitorKV row
type KeyInfo struct {
	Key      string `json:"key"`
	Bytes    int    `json:"bytes"`
	Sessions *int   `json:"sessions,omitempty"`
}

var inspectCmd = &cobra.Command{
	Use:   "inspect [database-path]",
	Short: "Inspect the monitor's SQLite key/value store",
	Long: `List the keys held in the monitorKV table with their sizes. The session
key also reports how many sessions it decodes to.

Examples:
  osa-monitor inspect                         # Inspect <data-dir>/monitor.db
  osa-monitor inspect ./monitor.db --format json`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dbPath := paths.Database
		if len(args) > 0 {
			dbPath = args[0]
		}

		db, err := internal.OpenDatabase(dbPath)
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer func() { _ = db.Close() }()

		pairs, err := internal.QueryMonitorKV(db, inspectPattern)
		if err != nil {
			return err
		}
		return writeKeyInfo(cmd.OutOrStdout(), dbPath, describeKeys(pairs), inspectFormat)
	},
}

func describeKeys(pairs []internal.KeyValuePair) []KeyInfo {
	infos := make([]KeyInfo, 0, len(pairs))
	for _, p := range pairs {
		info := KeyInfo{Key: p.Key, Bytes: len(p.Value)}
		if p.Key == internal.SessionsKey {
			var sessions []json.RawMessage
			if err := json.Unmarshal([]byte(p.Value), &sessions); err == nil {
				n := len(sessions)
				info.Sessions = &n
			} else {
				internal.LogWarn("Stored sessions do not decode: %v", err)
			}
		}
		infos = append(infos, info)
	}
	return infos
}

func writeKeyInfo(w io.Writer, dbPath string, infos []KeyInfo, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(infos)
	case "", "text":
	default:
		return fmt.Errorf("unsupported format: %s (supported: text, json)", format)
	}

	fmt.Fprintf(w, "📋 Database: %s\n", dbPath)
	if len(infos) == 0 {
		fmt.Fprintln(w, "⚠️  No keys found")
		return nil
	}
	fmt.Fprintf(w, "📊 Found %d key(s)\n\n", len(infos))
	for _, info := range infos {
		line := fmt.Sprintf("  • %s: %d bytes", info.Key, info.Bytes)
		if info.Sessions != nil {
			line += fmt.Sprintf(" (%d sessions)", *info.Sessions)
		}
		fmt.Fprintln(w, line)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(inspectCmd)
	inspectCmd.Flags().StringVar(&inspectFormat, "format", "text", "Output format (text, json)")
	inspectCmd.Flags().StringVar(&inspectPattern, "key", "%", "LIKE pattern selecting keys")
}

package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/iksnae/osa-monitor/internal"
	"github.com/iksnae/osa-monitor/internal/monitor"
	"github.com/iksnae/osa-monitor/internal/render"
	"github.com/spf13/cobra"
)

var (
	watchURL    string
	watchFilter string
	watchNoDemo bool
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the live OSA event stream",
	Long: `Connect to the OSA event stream and show logs, metrics and thoughts as
they arrive. Type commands while watching; "help" lists them.

The monitor reconnects after a lost connection and shows demo activity
while no endpoint is reachable, unless --no-demo is given.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Flags().Changed("url") {
			cfg.Endpoint = watchURL
		}
		if cmd.Flags().Changed("filter") {
			cfg.Monitor.Filter = strings.ToLower(watchFilter)
		}
		if !internal.ValidFilter(cfg.Monitor.Filter) {
			return fmt.Errorf("unknown category: %s", cfg.Monitor.Filter)
		}
		if watchNoDemo {
			cfg.Monitor.DemoFallback = false
		}

		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		m, err := monitor.New(monitor.Options{
			Config:  cfg,
			Store:   store,
			Display: render.NewTerminal(cmd.OutOrStdout()),
		})
		if err != nil {
			return fmt.Errorf("failed to start monitor: %w", err)
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		internal.LogInfo("Watching %s", cfg.Endpoint)
		errc := make(chan error, 1)
		go func() { errc <- m.Run(ctx) }()
		go readCommands(cmd.InOrStdin(), cmd.OutOrStdout(), m, stop)

		return <-errc
	},
}

// readCommands feeds stdin lines to the monitor until quit or EOF
func readCommands(in io.Reader, out io.Writer, m *monitor.Monitor, quit func()) {
	scanner := bufio.NewScanner(in)
	confirm := func(prompt string) bool {
		fmt.Fprintf(out, "%s [y/N] ", prompt)
		if !scanner.Scan() {
			return false
		}
		answer := strings.ToLower(strings.TrimSpace(scanner.Text()))
		return answer == "y" || answer == "yes"
	}

	for scanner.Scan() {
		if m.Execute(scanner.Text(), confirm) {
			quit()
			return
		}
	}
	// stdin closed; keep watching until interrupted
	<-m.Done()
}

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().StringVarP(&watchURL, "url", "u", internal.DefaultEndpoint, "OSA event stream endpoint")
	watchCmd.Flags().StringVarP(&watchFilter, "filter", "f", internal.CategoryAll, "Show only one log category")
	watchCmd.Flags().BoolVar(&watchNoDemo, "no-demo", false, "Do not show demo activity while disconnected")
}

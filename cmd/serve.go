package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/iksnae/osa-monitor/internal"
	"github.com/iksnae/osa-monitor/internal/server"
	"github.com/iksnae/osa-monitor/internal/simulate"
	"github.com/spf13/cobra"
)

var (
	serveAddr     string
	serveInterval time.Duration
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run a demo OSA event server",
	Long: `Serve a synthetic OSA event stream over WebSocket. Every connected
client gets the server status, current metrics and recent logs, then each new
event as it is generated. Point 'osa-monitor watch --url' at it.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Flags().Changed("addr") {
			cfg.Server.Addr = serveAddr
		}
		if cmd.Flags().Changed("interval") {
			cfg.Server.Interval = serveInterval
		}
		if cfg.Server.Interval <= 0 {
			return fmt.Errorf("interval must be positive")
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		b := server.NewBroadcaster(cfg.Server.History)
		gen := simulate.NewGenerator(uint64(time.Now().UnixNano()))
		go runDemoFeed(ctx, b, gen, cfg.Server.Interval)

		internal.PrintInfo(fmt.Sprintf("Serving demo events on ws://%s (session %s)", cfg.Server.Addr, b.SessionID()))
		err := b.ListenAndServe(ctx, cfg.Server.Addr)
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	},
}

// runDemoFeed publishes one generated log and thought per interval
func runDemoFeed(ctx context.Context, b *server.Broadcaster, gen *simulate.Generator, interval time.Duration) {
	b.Log(internal.CategorySystem, "Demo event server started", map[string]interface{}{"session_id": b.SessionID()})

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			ev := gen.Log()
			b.Log(ev.Category, ev.Message, ev.Metadata)
			b.Thought(gen.Thought())
		}
	}
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", "localhost:8765", "Listen address")
	serveCmd.Flags().DurationVar(&serveInterval, "interval", time.Second, "Time between generated events")
}

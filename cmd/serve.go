package cmd

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/harry-hov/debughover/internal/env"
	"github.com/harry-hov/debughover/internal/lsp"
)

func CmdServe() *cobra.Command {
	var (
		delay    time.Duration
		logLevel string
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the debug hover server over stdio using the Language Server Protocol",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := env.FromOS()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("delay") {
				if delay <= 0 {
					return fmt.Errorf("--delay must be positive, got %s", delay)
				}
				e.HoverDelay = delay
			}
			if cmd.Flags().Changed("log-level") {
				if e.LogLevel, err = env.ParseLogLevel(logLevel); err != nil {
					return err
				}
			}
			setupLogger(e.LogLevel)

			slog.Info("Initializing Server...", "delay", e.HoverDelay, "evaluateTimeout", e.EvaluateTimeout)
			return lsp.RunServer(cmd.Context(), e)
		},
	}

	cmd.Flags().DurationVarP(&delay, "delay", "", 0, "quiescence window for debounced hover requests (default 300ms)")
	cmd.Flags().StringVarP(&logLevel, "log-level", "", "", "log level: debug, info, warn or error")

	return cmd
}

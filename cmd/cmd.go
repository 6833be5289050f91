package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

func DebugHoverCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:                "debughover",
		Short:              `debughover resolves and shows debugger hover values over the Language Server Protocol`,
		DisableSuggestions: true,
		SilenceUsage:       true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.CompletionOptions.DisableDefaultCmd = true
	cmd.AddCommand(CmdServe())
	cmd.AddCommand(CmdExtract())
	cmd.AddCommand(CmdVersion())

	return cmd
}

// setupLogger sends structured logs to stderr, stdout carries the protocol.
func setupLogger(level slog.Level) {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})))
}

func Execute() {
	if err := DebugHoverCmd().Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

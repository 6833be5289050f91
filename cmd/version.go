package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harry-hov/debughover/internal/version"
)

func CmdVersion() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print the debughover version information",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), version.GetVersion(cmd.Context()))
			return nil
		},
	}

	return cmd
}

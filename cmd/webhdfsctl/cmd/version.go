package cmd

import (
	"github.com/spf13/cobra"

	"github.com/rdsr/webhdfsctl/internal/webhdfsctl"
)

func versionCmd() *cobra.Command {
	a := webhdfsctl.New()
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print client version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a.Out = cmd.OutOrStdout()
			return a.Version()
		},
	}
	return cmd
}

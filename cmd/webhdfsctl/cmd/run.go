package cmd

import (
	"github.com/spf13/cobra"

	"github.com/rdsr/webhdfsctl/internal/common"
	"github.com/rdsr/webhdfsctl/internal/webhdfsctl"
)

func runCmd() *cobra.Command {
	a := webhdfsctl.New()
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Perform the request described by the run section of the config",
		Args:  cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return initParams(cmd, a.Params)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			a.Out = cmd.OutOrStdout()
			ctx, cancel := common.ContextWithTimeout(cmd.Context(), a.Params.ApiConnectionDetails.Timeout)
			defer cancel()
			return a.Run(ctx)
		},
	}
	addRunFlags(cmd, "mode", "path", "localFile", "chunkSize", "overwrite", "probeMethod")
	return cmd
}

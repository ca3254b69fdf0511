package cmd

import (
	"github.com/spf13/cobra"

	"github.com/rdsr/webhdfsctl/internal/common"
	"github.com/rdsr/webhdfsctl/internal/webhdfsctl"
)

func probeCmd() *cobra.Command {
	return authenticateCmd(webhdfsctl.ModeProbe, &cobra.Command{
		Use:   "probe [hdfsPath]",
		Short: "Authenticate against a path and print the response",
		Long: `Probe sends op=GETFILESTATUS, logs the hadoop.auth token issued by the namenode
and prints the response body.`,
	})
}

func tokenCmd() *cobra.Command {
	return authenticateCmd(webhdfsctl.ModeToken, &cobra.Command{
		Use:   "token [hdfsPath]",
		Short: "Print the hadoop.auth token issued for a path",
	})
}

func authenticateCmd(mode webhdfsctl.Mode, cmd *cobra.Command) *cobra.Command {
	a := webhdfsctl.New()
	cmd.Args = cobra.MaximumNArgs(1)
	cmd.PreRunE = func(cmd *cobra.Command, args []string) error {
		return initParams(cmd, a.Params)
	}
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		a.Out = cmd.OutOrStdout()
		a.Params.Run.Mode = mode
		if len(args) > 0 {
			a.Params.Run.Path = args[0]
		}

		ctx, cancel := common.ContextWithTimeout(cmd.Context(), a.Params.ApiConnectionDetails.Timeout)
		defer cancel()
		return a.Run(ctx)
	}
	addRunFlags(cmd, "probeMethod")
	return cmd
}

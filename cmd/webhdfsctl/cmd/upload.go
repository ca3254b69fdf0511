package cmd

import (
	"github.com/spf13/cobra"

	"github.com/rdsr/webhdfsctl/internal/common"
	"github.com/rdsr/webhdfsctl/internal/webhdfsctl"
)

func uploadCmd() *cobra.Command {
	a := webhdfsctl.New()
	cmd := &cobra.Command{
		Use:   "upload <localFile> <hdfsPath>",
		Short: "Upload a local file to HDFS",
		Long: `Upload streams localFile to hdfsPath with op=CREATE and prints the final status code.
The namenode redirect to a datanode is followed.`,
		Args: cobra.ExactArgs(2),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return initParams(cmd, a.Params)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			a.Out = cmd.OutOrStdout()
			a.Params.Run.Mode = webhdfsctl.ModeUpload
			a.Params.Run.LocalFile = args[0]
			a.Params.Run.Path = args[1]

			ctx, cancel := common.ContextWithTimeout(cmd.Context(), a.Params.ApiConnectionDetails.Timeout)
			defer cancel()
			return a.Run(ctx)
		},
	}
	addRunFlags(cmd, "chunkSize", "overwrite")
	return cmd
}

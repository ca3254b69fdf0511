package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/rdsr/webhdfsctl/internal/common"
	"github.com/rdsr/webhdfsctl/pkg/client"
)

// RootCmd is the root Cobra command that gets called from the main func.
// All other sub-commands should be registered here.
func RootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "webhdfsctl",
		Short: "webhdfsctl sends authenticated requests to a WebHDFS namenode.",
		Long: `webhdfsctl performs a single Negotiate or Basic authenticated request against a
WebHDFS endpoint. It either uploads a local file or probes a path and reports the
hadoop.auth token issued by the namenode.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			verbose, _ := cmd.Flags().GetBool("verbose")
			common.ConfigureVerboseLogging(verbose)
		},
	}

	cmd.PersistentFlags().String("config", "", "config file (default is $HOME/.webhdfsctl.yaml)")
	cmd.PersistentFlags().BoolP("verbose", "v", false, "log debug output, including one marker per uploaded chunk")
	cmd.PersistentFlags().String("pushgatewayUrl", "", "push run metrics to this Prometheus Pushgateway")
	viper.BindPFlag("pushgatewayUrl", cmd.PersistentFlags().Lookup("pushgatewayUrl"))

	client.AddWebHdfsConnectionCommandlineArgs(cmd)

	cmd.AddCommand(
		runCmd(),
		uploadCmd(),
		probeCmd(),
		tokenCmd(),
		versionCmd(),
	)

	return cmd
}

package cmd

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/rdsr/webhdfsctl/internal/webhdfsctl"
	"github.com/rdsr/webhdfsctl/pkg/client"
)

// runFlagKeys maps request flags to their keys under the run section of the config file.
var runFlagKeys = map[string]string{
	"mode":        "run.mode",
	"path":        "run.path",
	"localFile":   "run.localFile",
	"chunkSize":   "run.chunkSize",
	"overwrite":   "run.overwrite",
	"probeMethod": "run.probeMethod",
}

func addRunFlags(cmd *cobra.Command, names ...string) {
	flags := cmd.Flags()
	defaults := webhdfsctl.DefaultRunConfig()
	for _, name := range names {
		switch name {
		case "mode":
			flags.String(name, string(defaults.Mode), "request to perform, one of upload, probe or token")
		case "path":
			flags.String(name, defaults.Path, "HDFS path the request targets")
		case "localFile":
			flags.String(name, "", "local file to upload")
		case "chunkSize":
			flags.Int(name, defaults.ChunkSize, "maximum bytes read from the local file at a time")
		case "overwrite":
			flags.Bool(name, false, "overwrite an existing HDFS file")
		case "probeMethod":
			flags.String(name, defaults.ProbeMethod, "HTTP method of the probe request")
		}
	}
}

// initParams loads the config file and fills params from config, environment and the flags
// of cmd. Run flags are bound per invocation as several commands share their keys.
func initParams(cmd *cobra.Command, params *webhdfsctl.Params) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	if err := client.LoadCommandlineArgsFromConfigFile(cfgFile); err != nil {
		return err
	}

	for name, key := range runFlagKeys {
		if flag := cmd.Flags().Lookup(name); flag != nil {
			if err := viper.BindPFlag(key, flag); err != nil {
				return errors.WithStack(err)
			}
		}
	}

	apiConnectionDetails, err := client.ExtractCommandlineApiConnectionDetails()
	if err != nil {
		return err
	}
	params.ApiConnectionDetails = apiConnectionDetails
	params.PushgatewayUrl = viper.GetString("pushgatewayUrl")

	params.Run = extractRunConfig()
	return nil
}

// extractRunConfig overlays whatever is set for the run keys onto the defaults. viper only
// resolves bound flags through Get, so the keys are read one by one.
func extractRunConfig() webhdfsctl.RunConfig {
	run := webhdfsctl.DefaultRunConfig()
	if viper.IsSet("run.mode") {
		run.Mode = webhdfsctl.Mode(viper.GetString("run.mode"))
	}
	if viper.IsSet("run.path") {
		run.Path = viper.GetString("run.path")
	}
	if viper.IsSet("run.localFile") {
		run.LocalFile = viper.GetString("run.localFile")
	}
	if viper.IsSet("run.chunkSize") {
		run.ChunkSize = viper.GetInt("run.chunkSize")
	}
	if viper.IsSet("run.overwrite") {
		run.Overwrite = viper.GetBool("run.overwrite")
	}
	if viper.IsSet("run.probeMethod") {
		run.ProbeMethod = viper.GetString("run.probeMethod")
	}
	return run
}

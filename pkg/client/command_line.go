package client

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const envPrefix = "WEBHDFSCTL"

func AddWebHdfsConnectionCommandlineArgs(rootCmd *cobra.Command) {
	flags := rootCmd.PersistentFlags()
	flags.String("webHdfsUrl", "http://localhost:9870", "specify WebHDFS namenode url")
	flags.String("username", "", "account name fed to Negotiate and Basic challenges")
	flags.String("password", "", "password for the account, prefer the config file or WEBHDFSCTL_BASICAUTH_PASSWORD")
	flags.Bool("kerberos", false, "answer Negotiate challenges with Kerberos SPNEGO")
	flags.String("realm", "", "kerberos realm used when the username has no @REALM suffix")
	flags.String("krb5Config", "", "path of krb5.conf")
	flags.String("spn", "", "service principal of the namenode, defaults to HTTP/<host>")
	flags.String("authCmd", "", "program printing the username and password on separate lines")
	flags.StringSlice("authArgs", nil, "arguments passed to authCmd")
	flags.Bool("authInteractive", false, "connect authCmd to stdin so it can prompt")
	flags.Bool("insecure", false, "skip verification of the namenode TLS certificate")
	flags.Duration("timeout", 0, "limit for the whole request, 0 means no limit")

	bindings := map[string]string{
		"webHdfsUrl":                    "webHdfsUrl",
		"basicAuth.username":            "username",
		"basicAuth.password":            "password",
		"kerberosAuth.enabled":          "kerberos",
		"kerberosAuth.realm":            "realm",
		"kerberosAuth.krb5ConfigPath":   "krb5Config",
		"kerberosAuth.servicePrincipal": "spn",
		"execAuth.cmd":                  "authCmd",
		"execAuth.args":                 "authArgs",
		"execAuth.interactive":          "authInteractive",
		"insecure":                      "insecure",
		"timeout":                       "timeout",
	}
	for key, flag := range bindings {
		viper.BindPFlag(key, flags.Lookup(flag))
	}
}

func LoadCommandlineArgsFromConfigFile(cfgFile string) error {
	exePath, err := os.Executable()
	if err != nil {
		return fmt.Errorf("[LoadCommandlineArgsFromConfigFile] error finding executable path: %s", err)
	} else {
		exeDir := filepath.Dir(exePath)
		viper.SetConfigFile(exeDir + "/webhdfsctl-defaults.yaml")
		err := viper.ReadInConfig()
		if err != nil {
			switch err.(type) {
			case viper.ConfigFileNotFoundError:
			case *os.PathError:
				// No default config is fine
			default:
				return fmt.Errorf("[LoadCommandlineArgsFromConfigFile] error reading config file %s: %s", viper.ConfigFileUsed(), err)
			}
		}
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := homedir.Dir()
		if err != nil {
			return fmt.Errorf("[LoadCommandlineArgsFromConfigFile] error getting user home directory: %s", err)
		}

		viper.AddConfigPath(home)
		viper.SetConfigName(".webhdfsctl")
	}

	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	err = viper.MergeInConfig()
	if err != nil {
		switch err.(type) {
		case viper.ConfigFileNotFoundError:
			// ~/.webhdfsctl.yaml is optional
		default:
			return fmt.Errorf("[LoadCommandlineArgsFromConfigFile] error reading config file %s: %s", viper.ConfigFileUsed(), err)
		}
	}
	return nil
}

func ExtractCommandlineApiConnectionDetails() (*ApiConnectionDetails, error) {
	apiConnectionDetails := &ApiConnectionDetails{}
	if err := viper.Unmarshal(apiConnectionDetails); err != nil {
		return nil, fmt.Errorf("[ExtractCommandlineApiConnectionDetails] error reading connection details: %s", err)
	}
	return apiConnectionDetails, nil
}

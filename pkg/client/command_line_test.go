package client

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfig = `webHdfsUrl: http://namenode.example.com:50070
basicAuth:
  username: alice
  password: secret
kerberosAuth:
  enabled: false
  realm: EXAMPLE.COM
timeout: 30s
`

func newTestCommand(t *testing.T, args ...string) *cobra.Command {
	viper.Reset()
	t.Cleanup(viper.Reset)

	cmd := &cobra.Command{Use: "webhdfsctl", Run: func(cmd *cobra.Command, args []string) {}}
	AddWebHdfsConnectionCommandlineArgs(cmd)
	require.NoError(t, cmd.ParseFlags(args))
	return cmd
}

func TestExtractCommandlineApiConnectionDetails_Flags(t *testing.T) {
	newTestCommand(t,
		"--webHdfsUrl", "https://namenode:9871",
		"--username", "alice@EXAMPLE.COM",
		"--kerberos",
		"--krb5Config", "/etc/hadoop/krb5.conf",
		"--timeout", "1m",
	)

	details, err := ExtractCommandlineApiConnectionDetails()
	require.NoError(t, err)
	assert.Equal(t, "https://namenode:9871", details.WebHdfsUrl)
	assert.Equal(t, "alice@EXAMPLE.COM", details.BasicAuth.Username)
	assert.Empty(t, details.BasicAuth.Password)
	assert.True(t, details.KerberosAuth.Enabled)
	assert.Equal(t, "/etc/hadoop/krb5.conf", details.KerberosAuth.Krb5ConfigPath)
	assert.Equal(t, time.Minute, details.Timeout)
}

func TestExtractCommandlineApiConnectionDetails_ExecAuth(t *testing.T) {
	newTestCommand(t,
		"--authCmd", "/usr/local/bin/hdfs-credentials",
		"--authArgs", "--cluster,prod",
		"--authInteractive",
	)

	details, err := ExtractCommandlineApiConnectionDetails()
	require.NoError(t, err)
	assert.Equal(t, "/usr/local/bin/hdfs-credentials", details.ExecAuth.Cmd)
	assert.Equal(t, []string{"--cluster", "prod"}, details.ExecAuth.Args)
	assert.True(t, details.ExecAuth.Interactive)
}

func TestExtractCommandlineApiConnectionDetails_Defaults(t *testing.T) {
	newTestCommand(t)

	details, err := ExtractCommandlineApiConnectionDetails()
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:9870", details.WebHdfsUrl)
	assert.False(t, details.KerberosAuth.Enabled)
	assert.Zero(t, details.Timeout)
}

func TestLoadCommandlineArgsFromConfigFile(t *testing.T) {
	newTestCommand(t)
	path := filepath.Join(t.TempDir(), "webhdfsctl.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testConfig), 0o600))

	require.NoError(t, LoadCommandlineArgsFromConfigFile(path))

	details, err := ExtractCommandlineApiConnectionDetails()
	require.NoError(t, err)
	assert.Equal(t, "http://namenode.example.com:50070", details.WebHdfsUrl)
	assert.Equal(t, "alice", details.BasicAuth.Username)
	assert.Equal(t, "secret", details.BasicAuth.Password)
	assert.Equal(t, "EXAMPLE.COM", details.KerberosAuth.Realm)
	assert.Equal(t, 30*time.Second, details.Timeout)
}

func TestLoadCommandlineArgsFromConfigFile_FlagsOverrideFile(t *testing.T) {
	newTestCommand(t, "--username", "bob")
	path := filepath.Join(t.TempDir(), "webhdfsctl.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testConfig), 0o600))

	require.NoError(t, LoadCommandlineArgsFromConfigFile(path))

	details, err := ExtractCommandlineApiConnectionDetails()
	require.NoError(t, err)
	assert.Equal(t, "bob", details.BasicAuth.Username)
	assert.Equal(t, "secret", details.BasicAuth.Password)
}

func TestLoadCommandlineArgsFromConfigFile_Environment(t *testing.T) {
	newTestCommand(t)
	t.Setenv("WEBHDFSCTL_BASICAUTH_PASSWORD", "from-env")
	path := filepath.Join(t.TempDir(), "webhdfsctl.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testConfig), 0o600))

	require.NoError(t, LoadCommandlineArgsFromConfigFile(path))

	details, err := ExtractCommandlineApiConnectionDetails()
	require.NoError(t, err)
	assert.Equal(t, "from-env", details.BasicAuth.Password)
}

func TestLoadCommandlineArgsFromConfigFile_Invalid(t *testing.T) {
	newTestCommand(t)
	path := filepath.Join(t.TempDir(), "webhdfsctl.yaml")
	require.NoError(t, os.WriteFile(path, []byte("webHdfsUrl: [unterminated"), 0o600))

	assert.Error(t, LoadCommandlineArgsFromConfigFile(path))
}

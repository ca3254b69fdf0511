package cmd

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rdsr/webhdfsctl/internal/webhdfsctl"
)

func execute(t *testing.T, args ...string) (string, error) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	buf := new(bytes.Buffer)
	cmd := RootCmd()
	cmd.SetOut(buf)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func namenode(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		username, password, ok := r.BasicAuth()
		if !ok {
			w.Header().Set("WWW-Authenticate", `Basic realm="hadoop"`)
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		if username != "hdfs" || password != "secret" {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		handler(w, r)
	}))
	t.Cleanup(server.Close)
	return server
}

func writeConfig(t *testing.T, content string) string {
	path := filepath.Join(t.TempDir(), "webhdfsctl.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "Commit")
	assert.Contains(t, out, "Go version")
}

func TestProbe(t *testing.T) {
	var path string
	server := namenode(t, func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		w.Header().Add("Set-Cookie", "hadoop.auth=ABC123; Path=/; HttpOnly")
		fmt.Fprint(w, `{"FileStatus":{"type":"DIRECTORY"}}`)
	})
	config := writeConfig(t, fmt.Sprintf(`
webHdfsUrl: %s
basicAuth:
  username: hdfs
  password: secret
`, server.URL))

	out, err := execute(t, "probe", "/user/hdfs", "--config", config)

	require.NoError(t, err)
	assert.Equal(t, "/webhdfs/v1/user/hdfs", path)
	assert.Equal(t, "{\"FileStatus\":{\"type\":\"DIRECTORY\"}}\n", out)
}

func TestRun_ModeFromConfig(t *testing.T) {
	server := namenode(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Add("Set-Cookie", "hadoop.auth=XYZ")
	})
	config := writeConfig(t, fmt.Sprintf(`
webHdfsUrl: %s
basicAuth:
  username: hdfs
  password: secret
run:
  mode: token
  path: /tmp
`, server.URL))

	out, err := execute(t, "run", "--config", config)

	require.NoError(t, err)
	assert.Equal(t, "XYZ\n", out)
}

func TestRun_UnknownMode(t *testing.T) {
	config := writeConfig(t, "webHdfsUrl: http://localhost:9870\n")

	_, err := execute(t, "run", "--mode", "delete", "--config", config)

	assert.ErrorIs(t, err, webhdfsctl.ErrUnknownMode)
}

func TestUpload(t *testing.T) {
	var received []byte
	server := namenode(t, func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		received = body
		w.WriteHeader(http.StatusCreated)
	})
	localFile := filepath.Join(t.TempDir(), "data.bin")
	require.NoError(t, os.WriteFile(localFile, []byte("hello webhdfs"), 0o600))
	config := writeConfig(t, "{}\n")

	out, err := execute(t,
		"upload", localFile, "/tmp/data.bin",
		"--config", config,
		"--webHdfsUrl", server.URL,
		"--username", "hdfs",
		"--password", "secret",
		"--chunkSize", "4")

	require.NoError(t, err)
	assert.Equal(t, "201\n", out)
	assert.Equal(t, "hello webhdfs", string(received))
}

func TestExtractRunConfig_Defaults(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	assert.Equal(t, webhdfsctl.DefaultRunConfig(), extractRunConfig())
}

package exec

import (
	"bytes"
	"io"
	"os"
	"os/exec"
	"strings"
	"sync"

	"github.com/pkg/errors"

	"github.com/rdsr/webhdfsctl/pkg/client/auth"
)

type Config struct {
	Cmd  string
	Args []string
	Env  []string
	// Connects the plugin to stdin so it can prompt for a password.
	Interactive bool
}

// Authenticator obtains login credentials from an external program. The program prints the
// username on the first line of its output and the password on the second. The password
// line may be omitted when Kerberos tickets come from the credentials cache.
type Authenticator struct {
	// Set by the config
	Cmd  string
	Args []string
	Env  []string

	// Stubbable for testing
	stdin       io.Reader
	stderr      io.Writer
	interactive bool
	environ     func() []string

	// Mutex guards calling the plugin. Since the plugin could be
	// interactive we want to make sure it's only called once.
	mu          sync.Mutex
	credentials *auth.LoginCredentials
}

func NewAuthenticator(config Config) *Authenticator {
	return &Authenticator{
		Cmd:         config.Cmd,
		Args:        config.Args,
		Env:         config.Env,
		stdin:       os.Stdin,
		stderr:      os.Stderr,
		interactive: config.Interactive,
		environ:     os.Environ,
	}
}

// Credentials runs the plugin on first use and returns the same pair afterwards.
func (a *Authenticator) Credentials() (*auth.LoginCredentials, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.credentials != nil {
		return a.credentials, nil
	}
	credentials, err := a.runLocked()
	if err != nil {
		return nil, err
	}
	a.credentials = credentials
	return credentials, nil
}

// runLocked executes the plugin and reads the credentials from
// stdout. It must be called while holding the Authenticator's mutex.
func (a *Authenticator) runLocked() (*auth.LoginCredentials, error) {
	stdout := &bytes.Buffer{}
	cmd := exec.Command(a.Cmd, a.Args...)
	cmd.Env = append(a.environ(), a.Env...)
	cmd.Stderr = a.stderr
	cmd.Stdout = stdout
	if a.interactive {
		cmd.Stdin = a.stdin
	}

	if err := cmd.Run(); err != nil {
		return nil, errors.Wrapf(err, "error retrieving credentials from %s", a.Cmd)
	}

	return parseCredentials(a.Cmd, stdout.String())
}

// parseCredentials reads the username from the first line of output and the password from
// the second. Only the username is trimmed, the password keeps surrounding whitespace.
// Further lines are ignored.
func parseCredentials(cmd string, output string) (*auth.LoginCredentials, error) {
	lines := strings.Split(output, "\n")
	username := strings.TrimSpace(lines[0])
	if username == "" {
		return nil, errors.Errorf("command %s didn't return a username", cmd)
	}
	credentials := &auth.LoginCredentials{Username: username}
	if len(lines) > 1 {
		credentials.Password = strings.TrimSuffix(lines[1], "\r")
	}
	return credentials, nil
}

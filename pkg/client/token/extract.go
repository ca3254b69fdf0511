package token

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/pkg/errors"

	"github.com/rdsr/webhdfsctl/pkg/client/webhdfs"
)

// AuthCookiePrefix marks the session cookie set by the Hadoop authentication filter once
// SPNEGO negotiation has succeeded.
const AuthCookiePrefix = "hadoop.auth="

var ErrNoToken = errors.New("server did not issue a hadoop.auth token")

type AuthenticationFailedError struct {
	StatusCode int
	Message    string
}

func (e *AuthenticationFailedError) Error() string {
	return fmt.Sprintf("authentication failed, status: %d, message: %s", e.StatusCode, e.Message)
}

// ExtractHadoopAuthToken scans the Set-Cookie values in the order the server sent them and
// returns the value of the last non-empty hadoop.auth cookie. Cookie attributes such as
// Path or Expires are stripped.
func ExtractHadoopAuthToken(header http.Header) (string, bool) {
	token, found := "", false
	for _, cookie := range header.Values("Set-Cookie") {
		if !strings.HasPrefix(cookie, AuthCookiePrefix) {
			continue
		}
		value := cookie[len(AuthCookiePrefix):]
		if separator := strings.Index(value, ";"); separator > -1 {
			value = value[:separator]
		}
		value = strings.TrimSpace(value)
		if value != "" {
			token, found = value, true
		}
	}
	return token, found
}

// ExtractFromResponse extracts the hadoop.auth token from a completed response. Any status
// other than 200 is reported as an *AuthenticationFailedError.
func ExtractFromResponse(resp *http.Response) (string, bool, error) {
	if resp.StatusCode != http.StatusOK {
		return "", false, &AuthenticationFailedError{
			StatusCode: resp.StatusCode,
			Message:    webhdfs.StatusMessage(resp),
		}
	}
	token, found := ExtractHadoopAuthToken(resp.Header)
	return token, found, nil
}

// Package webhdfs knows how WebHDFS v1 REST urls are laid out and how the
// namenode reports failed operations.
package webhdfs

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

const (
	PathPrefix = "/webhdfs/v1"

	OpCreate        = "CREATE"
	OpGetFileStatus = "GETFILESTATUS"
)

var ErrEmptyUrl = errors.New("webhdfs url must not be empty")

// RequestFailedError is returned when the namenode rejects an operation.
type RequestFailedError struct {
	StatusCode int
	Message    string
}

func (e *RequestFailedError) Error() string {
	return fmt.Sprintf("request failed, status: %d, message: %s", e.StatusCode, e.Message)
}

// OperationUrl builds the url of a WebHDFS operation on path. baseUrl may point at the
// namenode root or already include the /webhdfs/v1 prefix.
func OperationUrl(baseUrl string, path string, op string, params map[string]string) (string, error) {
	if baseUrl == "" {
		return "", ErrEmptyUrl
	}
	u, err := url.Parse(baseUrl)
	if err != nil {
		return "", errors.Wrapf(err, "invalid webhdfs url %s", baseUrl)
	}
	if u.Scheme == "" || u.Host == "" {
		return "", errors.Errorf("invalid webhdfs url %s: scheme and host are required", baseUrl)
	}

	prefix := strings.TrimSuffix(u.Path, "/")
	if !strings.HasSuffix(prefix, PathPrefix) {
		prefix += PathPrefix
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	u.Path = prefix + path

	query := u.Query()
	query.Set("op", op)
	for k, v := range params {
		query.Set(k, v)
	}
	u.RawQuery = query.Encode()
	return u.String(), nil
}

// StatusMessage returns the reason phrase the server sent with resp, falling back to the
// standard text for the status code.
func StatusMessage(resp *http.Response) string {
	message := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
	if message == "" {
		message = http.StatusText(resp.StatusCode)
	}
	return message
}

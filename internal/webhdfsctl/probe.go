package webhdfsctl

import (
	"bufio"
	"context"
	"fmt"
	"net/http"

	"github.com/pkg/errors"

	"github.com/rdsr/webhdfsctl/pkg/client/token"
	"github.com/rdsr/webhdfsctl/pkg/client/webhdfs"
)

// Probe authenticates against the configured path, logs the issued hadoop.auth token and
// prints the response body line by line.
func (a *App) Probe(ctx context.Context) (outerErr error) {
	resp, _, _, err := a.authenticate(ctx)
	if err != nil {
		return err
	}
	defer closeAndRecord(&outerErr, resp.Body, "probe response")

	scanner := bufio.NewScanner(resp.Body)
	for scanner.Scan() {
		fmt.Fprintln(a.Out, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return errors.Wrap(err, "error reading probe response")
	}
	return nil
}

// Token authenticates like Probe but prints only the hadoop.auth token.
func (a *App) Token(ctx context.Context) (outerErr error) {
	resp, authToken, found, err := a.authenticate(ctx)
	if err != nil {
		return err
	}
	defer closeAndRecord(&outerErr, resp.Body, "probe response")

	if !found {
		return token.ErrNoToken
	}
	fmt.Fprintln(a.Out, authToken)
	return nil
}

// authenticate sends the probe request and extracts the token. The returned response body
// is open and must be closed by the caller.
func (a *App) authenticate(ctx context.Context) (*http.Response, string, bool, error) {
	cfg := a.Params.Run
	method := cfg.ProbeMethod
	if method == "" {
		method = http.MethodOptions
	}

	target, err := webhdfs.OperationUrl(a.Params.ApiConnectionDetails.WebHdfsUrl, cfg.Path, webhdfs.OpGetFileStatus, nil)
	if err != nil {
		return nil, "", false, err
	}
	httpClient, err := a.httpClient()
	if err != nil {
		return nil, "", false, err
	}
	req, err := http.NewRequestWithContext(ctx, method, target, nil)
	if err != nil {
		return nil, "", false, errors.WithStack(err)
	}

	logger := a.log().WithField("method", method)
	logger.Infof("Probing %s", target)
	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, "", false, errors.Wrapf(err, "error probing %s", target)
	}

	authToken, found, err := token.ExtractFromResponse(resp)
	if err != nil {
		a.logErrorBody(resp)
		resp.Body.Close()
		return nil, "", false, err
	}
	if found {
		logger.WithField("token", authToken).Info("Got hadoop.auth token")
	} else {
		logger.Warn("Response carried no hadoop.auth token")
	}
	return resp, authToken, found, nil
}

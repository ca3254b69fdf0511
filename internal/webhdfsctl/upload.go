package webhdfsctl

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"sync"

	"github.com/pkg/errors"

	"github.com/rdsr/webhdfsctl/pkg/client/webhdfs"
)

// errorBodyLimit bounds how much of a failed response is kept for the debug log.
const errorBodyLimit = 64 * 1024

// Upload streams the local file to the configured HDFS path with op=CREATE and prints the
// final status code.
func (a *App) Upload(ctx context.Context) (outerErr error) {
	cfg := a.Params.Run
	if cfg.LocalFile == "" {
		return errors.New("no local file given to upload")
	}
	logger := a.log().WithField("localFile", cfg.LocalFile).WithField("path", cfg.Path)

	var params map[string]string
	if cfg.Overwrite {
		params = map[string]string{"overwrite": "true"}
	}
	target, err := webhdfs.OperationUrl(a.Params.ApiConnectionDetails.WebHdfsUrl, cfg.Path, webhdfs.OpCreate, params)
	if err != nil {
		return err
	}

	httpClient, err := a.httpClient()
	if err != nil {
		return err
	}

	req, body, err := a.newUploadRequest(ctx, target, cfg)
	if err != nil {
		return err
	}
	defer closeAndRecord(&outerErr, body, cfg.LocalFile)

	logger.WithField("bytes", req.ContentLength).Infof("Uploading to %s", target)
	resp, err := httpClient.Do(req)
	if err != nil {
		return errors.Wrapf(err, "error uploading %s", cfg.LocalFile)
	}
	defer closeAndRecord(&outerErr, resp.Body, "upload response")

	if resp.StatusCode >= http.StatusBadRequest {
		a.logErrorBody(resp)
		fmt.Fprintln(a.Out, resp.StatusCode)
		return &webhdfs.RequestFailedError{StatusCode: resp.StatusCode, Message: webhdfs.StatusMessage(resp)}
	}

	if _, err := io.Copy(io.Discard, resp.Body); err != nil {
		return errors.Wrap(err, "error reading upload response")
	}
	fmt.Fprintln(a.Out, resp.StatusCode)
	logger.WithField("status", resp.StatusCode).Info("Upload finished")
	return nil
}

func (a *App) newUploadRequest(ctx context.Context, target string, cfg RunConfig) (*http.Request, io.ReadCloser, error) {
	info, err := os.Stat(cfg.LocalFile)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "error reading %s", cfg.LocalFile)
	}
	if info.IsDir() {
		return nil, nil, errors.Errorf("%s is a directory", cfg.LocalFile)
	}

	open := func() (io.ReadCloser, error) {
		file, err := os.Open(cfg.LocalFile)
		if err != nil {
			return nil, errors.Wrapf(err, "error opening %s", cfg.LocalFile)
		}
		return newChunkedReader(file, cfg.ChunkSize, a.onChunk), nil
	}

	body, err := open()
	if err != nil {
		return nil, nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, target, body)
	if err != nil {
		body.Close()
		return nil, nil, errors.WithStack(err)
	}
	req.ContentLength = info.Size()
	// The authorized replay and 307 redirects to a datanode resend the file from the start.
	req.GetBody = open
	req.Header.Set("Expect", "100-continue")
	req.Header.Set("Content-Type", "application/octet-stream")
	return req, body, nil
}

func (a *App) onChunk(n int) {
	a.Metrics.RecordUpload(n)
	a.log().WithField("bytes", n).Debug("...")
}

func (a *App) logErrorBody(resp *http.Response) {
	body, err := io.ReadAll(io.LimitReader(resp.Body, errorBodyLimit))
	if err != nil {
		a.log().WithError(err).Debug("failed to read error response body")
		return
	}
	a.log().WithField("status", resp.StatusCode).Debugf("response body: %s", body)
}

// chunkedReader reads from source at most size bytes at a time and reports every chunk
// to onChunk. Close is safe to call more than once and from several goroutines.
type chunkedReader struct {
	source    io.ReadCloser
	size      int
	onChunk   func(n int)
	closeOnce sync.Once
	closeErr  error
}

func newChunkedReader(source io.ReadCloser, size int, onChunk func(n int)) *chunkedReader {
	if size <= 0 {
		size = DefaultUploadChunkSize
	}
	return &chunkedReader{source: source, size: size, onChunk: onChunk}
}

func (r *chunkedReader) Read(p []byte) (int, error) {
	if len(p) > r.size {
		p = p[:r.size]
	}
	n, err := r.source.Read(p)
	if n > 0 && r.onChunk != nil {
		r.onChunk(n)
	}
	return n, err
}

func (r *chunkedReader) Close() error {
	r.closeOnce.Do(func() {
		r.closeErr = r.source.Close()
	})
	return r.closeErr
}

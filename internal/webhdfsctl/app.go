// Package webhdfsctl implements the webhdfsctl commands: a single authenticated request
// against a WebHDFS namenode that either uploads a file or probes a path for the
// hadoop.auth token.
package webhdfsctl

import (
	"io"
	"net/http"
	"os"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/rdsr/webhdfsctl/internal/common/metrics"
	"github.com/rdsr/webhdfsctl/pkg/client"
)

// App is the webhdfsctl application. Output meant for the user goes to Out, diagnostics go
// through logrus.
type App struct {
	Params  *Params
	Out     io.Writer
	Metrics *metrics.ClientMetrics
	// Tags every log line of one run.
	RunId string
}

type Params struct {
	ApiConnectionDetails *client.ApiConnectionDetails
	Run                  RunConfig
	// Metrics are pushed here after the run when set.
	PushgatewayUrl string
}

func New() *App {
	return &App{
		Params: &Params{
			ApiConnectionDetails: &client.ApiConnectionDetails{},
			Run:                  DefaultRunConfig(),
		},
		Out:     os.Stdout,
		Metrics: metrics.NewClientMetrics(),
		RunId:   uuid.NewString(),
	}
}

func (a *App) log() *log.Entry {
	return log.WithField("runId", a.RunId)
}

func (a *App) httpClient() (*http.Client, error) {
	return client.CreateHttpClient(a.Params.ApiConnectionDetails, client.HttpClientOptions{
		WrapTransport: a.Metrics.InstrumentRoundTripper,
		OnChallenge:   a.Metrics.RecordChallenge,
	})
}

func closeAndRecord(outerErr *error, c io.Closer, what string) {
	if err := c.Close(); err != nil {
		*outerErr = appendError(*outerErr, errors.Wrapf(err, "error closing %s", what))
	}
}

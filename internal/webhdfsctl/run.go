package webhdfsctl

import (
	"context"
	"net/http"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/rdsr/webhdfsctl/internal/common/logging"
)

type Mode string

const (
	ModeUpload Mode = "upload"
	ModeProbe  Mode = "probe"
	ModeToken  Mode = "token"
)

// DefaultUploadChunkSize is the historical chunk size of the upload client. Likely meant to be
// 4096, kept because existing deployments were tuned around it.
const DefaultUploadChunkSize = 4028

const metricsJob = "webhdfsctl"

var ErrUnknownMode = errors.New("unknown mode")

// RunConfig describes the single request a run performs.
type RunConfig struct {
	Mode Mode
	// HDFS path the request targets, relative to /webhdfs/v1.
	Path string
	// Local file streamed as the upload body.
	LocalFile string
	// Upper bound of a single read from LocalFile.
	ChunkSize int
	Overwrite bool
	// HTTP method of the probe request.
	ProbeMethod string
}

func DefaultRunConfig() RunConfig {
	return RunConfig{
		Mode:        ModeProbe,
		Path:        "/",
		ChunkSize:   DefaultUploadChunkSize,
		ProbeMethod: http.MethodOptions,
	}
}

// Run performs the request selected by the configured mode and pushes the run's metrics when
// a Pushgateway is configured.
func (a *App) Run(ctx context.Context) error {
	defer a.countLogMessages()()
	defer a.pushMetrics()

	switch a.Params.Run.Mode {
	case ModeUpload:
		return a.Upload(ctx)
	case ModeProbe:
		return a.Probe(ctx)
	case ModeToken:
		return a.Token(ctx)
	default:
		return errors.Wrapf(ErrUnknownMode, "%q must be one of %q, %q, %q",
			a.Params.Run.Mode, ModeUpload, ModeProbe, ModeToken)
	}
}

// countLogMessages adds a hook counting log lines into the run's metrics to the standard
// logger. The returned func restores the previous hooks.
func (a *App) countLogMessages() func() {
	logger := log.StandardLogger()
	hooks := make(log.LevelHooks)
	for level, levelHooks := range logger.Hooks {
		hooks[level] = append(hooks[level], levelHooks...)
	}
	hooks.Add(logging.NewPrometheusHook(a.Metrics.LogMessagesTotal))
	previous := logger.ReplaceHooks(hooks)
	return func() {
		logger.ReplaceHooks(previous)
	}
}

func (a *App) pushMetrics() {
	if a.Params.PushgatewayUrl == "" {
		return
	}
	if err := a.Metrics.Push(a.Params.PushgatewayUrl, metricsJob); err != nil {
		logging.WithStacktrace(a.log(), err).Warn("failed to push metrics")
		return
	}
	a.log().WithField("pushgateway", a.Params.PushgatewayUrl).Debug("pushed metrics")
}

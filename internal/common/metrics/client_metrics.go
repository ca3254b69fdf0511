package metrics

import (
	"net/http"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/prometheus/client_golang/prometheus/push"
)

const MetricPrefix = "webhdfsctl_"

// ClientMetrics records what a single run did on the wire. It uses its own registry so a
// run can push exactly its own series to a Pushgateway.
type ClientMetrics struct {
	Registry           *prometheus.Registry
	RequestsTotal      *prometheus.CounterVec
	ChallengesTotal    *prometheus.CounterVec
	UploadedBytesTotal prometheus.Counter
	LogMessagesTotal   *prometheus.CounterVec
}

func NewClientMetrics() *ClientMetrics {
	m := &ClientMetrics{
		Registry: prometheus.NewRegistry(),
		RequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: MetricPrefix + "http_requests_total",
			Help: "HTTP requests sent to WebHDFS, including authentication legs",
		}, []string{"code", "method"}),
		ChallengesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: MetricPrefix + "auth_challenges_total",
			Help: "Authentication challenges answered, by scheme",
		}, []string{"scheme"}),
		UploadedBytesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: MetricPrefix + "uploaded_bytes_total",
			Help: "Bytes of local file content written to request bodies",
		}),
		LogMessagesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: MetricPrefix + "log_messages_total",
			Help: "Log lines written during the run, by level",
		}, []string{"level"}),
	}
	m.Registry.MustRegister(m.RequestsTotal, m.ChallengesTotal, m.UploadedBytesTotal, m.LogMessagesTotal)
	return m
}

func (m *ClientMetrics) InstrumentRoundTripper(next http.RoundTripper) http.RoundTripper {
	return promhttp.InstrumentRoundTripperCounter(m.RequestsTotal, next)
}

func (m *ClientMetrics) RecordChallenge(scheme string) {
	m.ChallengesTotal.WithLabelValues(scheme).Inc()
}

func (m *ClientMetrics) RecordUpload(bytes int) {
	m.UploadedBytesTotal.Add(float64(bytes))
}

// Push replaces the metrics of job on the Pushgateway at url with this run's metrics.
func (m *ClientMetrics) Push(url string, job string) error {
	if err := push.New(url, job).Gatherer(m.Registry).Push(); err != nil {
		return errors.Wrapf(err, "error pushing metrics to %s", url)
	}
	return nil
}

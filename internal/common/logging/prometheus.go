package logging

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
)

// PrometheusHook implements logrus.Hook by counting log lines per level.
type PrometheusHook struct {
	counter *prometheus.CounterVec
}

// NewPrometheusHook counts into counter, which must have a single "level" label.
func NewPrometheusHook(counter *prometheus.CounterVec) *PrometheusHook {
	return &PrometheusHook{counter: counter}
}

func (h *PrometheusHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

func (h *PrometheusHook) Fire(entry *logrus.Entry) error {
	h.counter.WithLabelValues(entry.Level.String()).Inc()
	return nil
}

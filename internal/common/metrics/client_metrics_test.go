package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientMetrics_InstrumentRoundTripper(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	m := NewClientMetrics()
	httpClient := &http.Client{Transport: m.InstrumentRoundTripper(http.DefaultTransport)}

	req, err := http.NewRequest(http.MethodPut, server.URL, nil)
	require.NoError(t, err)
	resp, err := httpClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, 1.0, testutil.ToFloat64(m.RequestsTotal.WithLabelValues("201", "put")))
}

func TestClientMetrics_InstrumentRoundTripper_CountsEachLegOnce(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") == "" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	m := NewClientMetrics()
	httpClient := &http.Client{Transport: m.InstrumentRoundTripper(http.DefaultTransport)}

	for _, authorization := range []string{"", "Basic YWxpY2U6c2VjcmV0"} {
		req, err := http.NewRequest(http.MethodOptions, server.URL, nil)
		require.NoError(t, err)
		if authorization != "" {
			req.Header.Set("Authorization", authorization)
		}
		resp, err := httpClient.Do(req)
		require.NoError(t, err)
		resp.Body.Close()
	}

	assert.Equal(t, 1.0, testutil.ToFloat64(m.RequestsTotal.WithLabelValues("401", "options")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RequestsTotal.WithLabelValues("200", "options")))
	assert.Equal(t, 2, testutil.CollectAndCount(m.RequestsTotal))
}

func TestClientMetrics_Records(t *testing.T) {
	m := NewClientMetrics()
	m.RecordChallenge("Negotiate")
	m.RecordChallenge("Negotiate")
	m.RecordUpload(4028)
	m.RecordUpload(10)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.ChallengesTotal.WithLabelValues("Negotiate")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.ChallengesTotal.WithLabelValues("Basic")))
	assert.Equal(t, 4038.0, testutil.ToFloat64(m.UploadedBytesTotal))
}

func TestClientMetrics_Push(t *testing.T) {
	var pushedPath, pushedBody string
	gateway := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		pushedPath = r.URL.Path
		buf := new(strings.Builder)
		_, _ = io.Copy(buf, r.Body)
		pushedBody = buf.String()
		w.WriteHeader(http.StatusOK)
	}))
	defer gateway.Close()

	m := NewClientMetrics()
	m.RecordUpload(42)
	require.NoError(t, m.Push(gateway.URL, "webhdfsctl"))

	assert.Equal(t, "/metrics/job/webhdfsctl", pushedPath)
	assert.NotEmpty(t, pushedBody)
}

func TestClientMetrics_PushFailure(t *testing.T) {
	gateway := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer gateway.Close()

	err := NewClientMetrics().Push(gateway.URL, "webhdfsctl")
	assert.Error(t, err)
}

package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/2beens/hrvreport/internal/telemetry/metrics"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestRequestMetrics(t *testing.T) {
	metricsManager, reg := metrics.NewTestManagerAndRegistry()

	r := mux.NewRouter()
	r.HandleFunc("/report", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}).Methods("POST").Name("generate-report")
	r.Use(RequestMetrics(metricsManager))
	r.Use(LogRequest())

	for i := 0; i < 2; i++ {
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/report", nil))
		require.Equal(t, http.StatusBadRequest, rr.Code)
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(metricsManager.CounterRequests.WithLabelValues("POST", "400")))
	// one labelled histogram series: route, method, status code
	assert.Equal(t, 1, testutil.CollectAndCount(metricsManager.HistogramRequestDuration))

	count, err := testutil.GatherAndCount(reg, "hrv_test_request")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestRouteName(t *testing.T) {
	assert.Equal(t, "unknown", routeName(httptest.NewRequest(http.MethodGet, "/", nil)))
}

func TestLimitAndDrainRequest(t *testing.T) {
	body := &trackingBody{Reader: strings.NewReader(`{"name":"Marius"}`)}
	req := httptest.NewRequest(http.MethodPost, "/athletes", nil)
	req.Body = body

	h := LimitAndDrainRequest(DefaultMaxBodyBytes)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	h.ServeHTTP(httptest.NewRecorder(), req)

	assert.True(t, body.closed)
	rest, _ := io.ReadAll(body.Reader)
	assert.Empty(t, rest)
}

func TestLimitAndDrainRequest_TooLarge(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/athletes", strings.NewReader(strings.Repeat("x", 64)))

	var readErr error
	h := LimitAndDrainRequest(16)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, readErr = io.ReadAll(r.Body)
	}))
	h.ServeHTTP(httptest.NewRecorder(), req)

	var maxBytesErr *http.MaxBytesError
	assert.ErrorAs(t, readErr, &maxBytesErr)
}

type trackingBody struct {
	io.Reader
	closed bool
}

func (b *trackingBody) Close() error {
	b.closed = true
	return nil
}

package internal

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/2beens/hrvreport/internal/athletes"
	"github.com/2beens/hrvreport/internal/config"
	"github.com/2beens/hrvreport/internal/reference"
	"github.com/2beens/hrvreport/internal/session"
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

func newTestServer(t *testing.T) (*Server, *mux.Router) {
	t.Helper()
	dir := t.TempDir()
	cfg := &config.Config{
		ScratchDir:      filepath.Join(dir, "tmp"),
		OutputDir:       filepath.Join(dir, "out"),
		AllowedOrigins:  []string{"http://localhost:8501"},
		KnownHRDefaults: reference.DefaultKnownDefaults(),
	}

	metricsManager := metrics.NewTestManager()
	generator, err := NewGenerationService(cfg, metricsManager)
	require.NoError(t, err)

	s := &Server{
		versionInfo:    "test-version",
		config:         cfg,
		state:          session.NewState(cfg.KnownHRDefaults),
		generator:      generator,
		metricsManager: metricsManager,
		otelShutdown:   func() {},
	}
	return s, s.routerSetup()
}

func serve(r http.Handler, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestServer_ReportFlow(t *testing.T) {
	s, r := newTestServer(t)

	rec := serve(r, http.MethodPost, "/athletes", `{
		"name": "Marius",
		"metrics": {"effort_capacity_pct": 66, "reserve_pct": 74, "regeneration_pct": 90, "hr_supine": 60, "hr_standing": 86},
		"recommendation": "vigilance"
	}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var added athletes.Record
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &added))
	assert.NotEmpty(t, added.ID)
	assert.Equal(t, athletes.RecommendationVigilance, added.Recommendation)

	rec = serve(r, http.MethodGet, "/reference", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var table reference.TableResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &table))
	require.Equal(t, 5, table.Total)
	assert.Equal(t, "Marius Moyenne", table.Rows[0].LevelName)
	assert.Equal(t, added.ID, table.Rows[0].AthleteID)

	rec = serve(r, http.MethodPost, "/report?date=2025-03-03", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="Rapport_HRV_ASM_03-03-2025.pdf"`, rec.Header().Get("Content-Disposition"))
	assert.True(t, strings.HasPrefix(rec.Body.String(), "%PDF"))

	assert.FileExists(t, filepath.Join(s.config.OutputDir, "rapport_hrv_2025-03-03.pdf"))
	assert.Equal(t, 1.0, testutil.ToFloat64(s.metricsManager.CounterReports.WithLabelValues("ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(s.metricsManager.CounterRequests.WithLabelValues("POST", "200")))
}

func TestServer_EmptyRoster(t *testing.T) {
	_, r := newTestServer(t)

	rec := serve(r, http.MethodPost, "/report", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "add at least one athlete")
}

func TestServer_VersionAndUnknown(t *testing.T) {
	_, r := newTestServer(t)

	rec := serve(r, http.MethodGet, "/version", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "test-version", rec.Body.String())

	rec = serve(r, http.MethodGet, "/nope", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestServer_CorsRejectsUnknownOrigin(t *testing.T) {
	_, r := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/athletes", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/athletes", nil)
	req.Header.Set("Origin", "http://localhost:8501")
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "http://localhost:8501", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestServer_ConnStateMetrics(t *testing.T) {
	s, _ := newTestServer(t)

	s.connStateMetrics(nil, http.StateNew)
	s.connStateMetrics(nil, http.StateNew)
	s.connStateMetrics(nil, http.StateClosed)
	assert.Equal(t, 1.0, testutil.ToFloat64(s.metricsManager.GaugeRequests))
}

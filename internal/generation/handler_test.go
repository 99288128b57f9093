package generation_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/2beens/hrvreport/internal/athletes"
	"github.com/2beens/hrvreport/internal/charts"
	"github.com/2beens/hrvreport/internal/generation"
	"github.com/2beens/hrvreport/internal/reference"
	"github.com/2beens/hrvreport/internal/session"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newReportRouter(t *testing.T) (*mux.Router, *MockreportGenerator, *MocksessionSnapshotter) {
	t.Helper()
	ctrl := gomock.NewController(t)
	generator := NewMockreportGenerator(ctrl)
	snapshotter := NewMocksessionSnapshotter(ctrl)

	r := mux.NewRouter()
	generation.NewHandler(generator, snapshotter).SetupRoutes(r)
	return r, generator, snapshotter
}

func mariusSnapshot() session.Snapshot {
	return session.Snapshot{
		Athletes:  []athletes.Record{mariusRecord()},
		Reference: reference.Build([]string{"Marius"}, nil),
	}
}

func TestHandler_HandleGenerate(t *testing.T) {
	r, generator, snapshotter := newReportRouter(t)

	pdfPath := filepath.Join(t.TempDir(), "report.pdf")
	require.NoError(t, os.WriteFile(pdfPath, []byte("%PDF-1.3 test"), 0o644))

	snapshot := mariusSnapshot()
	snapshotter.EXPECT().Snapshot().Return(snapshot)
	generator.EXPECT().Generate(gomock.Any(), generation.Request{
		Date:      reportDate,
		Athletes:  snapshot.Athletes,
		Reference: snapshot.Reference,
	}).Return(&generation.Result{PDFPath: pdfPath, Pages: 2}, nil)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/report?date=2025-03-03", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="Rapport_HRV_ASM_03-03-2025.pdf"`, rec.Header().Get("Content-Disposition"))
	assert.Empty(t, rec.Header().Get("X-Degraded-Athletes"))
	assert.Equal(t, "%PDF-1.3 test", rec.Body.String())
}

func TestHandler_HandleGenerate_Degraded(t *testing.T) {
	r, generator, snapshotter := newReportRouter(t)

	pdfPath := filepath.Join(t.TempDir(), "report.pdf")
	require.NoError(t, os.WriteFile(pdfPath, []byte("%PDF"), 0o644))

	snapshotter.EXPECT().Snapshot().Return(mariusSnapshot())
	generator.EXPECT().Generate(gomock.Any(), gomock.Any()).
		Return(&generation.Result{PDFPath: pdfPath, Pages: 2, DegradedAthletes: []string{"Marius", "Léa Dupont"}}, nil)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/report?date=2025-03-03", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Marius,L%C3%A9a%20Dupont", rec.Header().Get("X-Degraded-Athletes"))
}

func TestHandler_HandleGenerate_InvalidDate(t *testing.T) {
	r, _, _ := newReportRouter(t)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/report?date=03/03/2025", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_HandleGenerate_EmptyRoster(t *testing.T) {
	r, _, snapshotter := newReportRouter(t)
	snapshotter.EXPECT().Snapshot().Return(session.Snapshot{Reference: reference.DefaultTable()})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/report", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "add at least one athlete")
}

func TestHandler_HandleGenerate_Errors(t *testing.T) {
	testCases := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{
			name:       "missing field",
			err:        &charts.MissingFieldError{Record: "Marius", Fields: []string{"reserve_pct"}},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "internal failure",
			err:        errors.New("disk full"),
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			r, generator, snapshotter := newReportRouter(t)
			snapshotter.EXPECT().Snapshot().Return(mariusSnapshot())
			generator.EXPECT().Generate(gomock.Any(), gomock.Any()).Return(nil, tc.err)

			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/report?date=2025-03-03", nil))
			assert.Equal(t, tc.wantStatus, rec.Code)
		})
	}
}

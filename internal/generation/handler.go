package generation

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/2beens/hrvreport/internal/charts"
	"github.com/2beens/hrvreport/internal/session"
	"github.com/2beens/hrvreport/internal/telemetry/tracing"
	"github.com/2beens/hrvreport/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=generation_test
type reportGenerator interface {
	Generate(ctx context.Context, req Request) (*Result, error)
}

type sessionSnapshotter interface {
	Snapshot() session.Snapshot
}

type Handler struct {
	generator   reportGenerator
	snapshotter sessionSnapshotter
}

func NewHandler(generator reportGenerator, snapshotter sessionSnapshotter) *Handler {
	return &Handler{
		generator:   generator,
		snapshotter: snapshotter,
	}
}

func (handler *Handler) SetupRoutes(r *mux.Router) {
	r.HandleFunc("/report", handler.HandleGenerate).Methods("POST", "OPTIONS").Name("generate-report")
}

// HandleGenerate renders the report for the current session and sends the PDF back.
func (handler *Handler) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.report.generate")
	defer span.End()

	date := time.Now()
	if dateParam := r.URL.Query().Get("date"); dateParam != "" {
		parsed, err := time.Parse("2006-01-02", dateParam)
		if err != nil {
			http.Error(w, "invalid date, expected YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		date = parsed
	}

	snapshot := handler.snapshotter.Snapshot()
	if len(snapshot.Athletes) == 0 {
		http.Error(w, ErrEmptyRoster.Error(), http.StatusBadRequest)
		return
	}

	result, err := handler.generator.Generate(ctx, Request{
		Date:      date,
		Athletes:  snapshot.Athletes,
		Reference: snapshot.Reference,
	})
	if err != nil {
		var missingFieldErr *charts.MissingFieldError
		switch {
		case errors.Is(err, ErrEmptyRoster), errors.As(err, &missingFieldErr):
			http.Error(w, err.Error(), http.StatusBadRequest)
		default:
			log.Errorf("generate report: %s", err)
			http.Error(w, "report generation failed", http.StatusInternalServerError)
		}
		return
	}

	pdf, err := os.ReadFile(result.PDFPath)
	if err != nil {
		log.Errorf("read generated report %s: %s", result.PDFPath, err)
		http.Error(w, "report generation failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", DownloadName(date)))
	if len(result.DegradedAthletes) > 0 {
		w.Header().Set("X-Degraded-Athletes", degradedHeader(result.DegradedAthletes))
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.PDF, pdf, http.StatusOK)
}

// degradedHeader lists the names, percent-encoded so accents and commas
// survive in a header value.
func degradedHeader(names []string) string {
	escaped := make([]string, 0, len(names))
	for _, name := range names {
		escaped = append(escaped, url.PathEscape(name))
	}
	return strings.Join(escaped, ",")
}

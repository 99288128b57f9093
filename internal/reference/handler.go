package reference

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/2beens/hrvreport/internal/telemetry/tracing"
	"github.com/2beens/hrvreport/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=$GOFILE -destination=table_source_mocks_test.go -package=reference_test
type tableSource interface {
	// BaseReference is the table built from the current athletes, before user edits.
	BaseReference() Table
}

type TableResponse struct {
	Rows  Table `json:"rows"`
	Total int   `json:"total"`
	// set when the current thresholds are not ordered DANGER <= VIGILANCE <= CORRECT <= OK
	OrderingViolations []string `json:"orderingViolations,omitempty"`
}

type Handler struct {
	source  tableSource
	overlay *Overlay
}

func NewHandler(source tableSource, overlay *Overlay) *Handler {
	return &Handler{
		source:  source,
		overlay: overlay,
	}
}

func (handler *Handler) SetupRoutes(r *mux.Router) {
	r.HandleFunc("/reference", handler.HandleGet).Methods("GET", "OPTIONS").Name("get-reference")
	r.HandleFunc("/reference/reset", handler.HandleReset).Methods("POST", "OPTIONS").Name("reset-reference")
	r.HandleFunc("/reference/{level}", handler.HandleSet).Methods("PUT", "OPTIONS").Name("set-reference-row")
	r.HandleFunc("/reference/{level}", handler.HandleRemove).Methods("DELETE", "OPTIONS").Name("remove-reference-row")
}

func (handler *Handler) current() Table {
	return handler.overlay.Apply(handler.source.BaseReference())
}

func (handler *Handler) writeTable(w http.ResponseWriter, t Table) {
	resp := TableResponse{
		Rows:  t,
		Total: len(t),
	}
	var orderingErr *OrderingError
	if err := t.ValidateOrdering(); errors.As(err, &orderingErr) {
		resp.OrderingViolations = orderingErr.Violations
	}
	pkg.WriteJSON(w, resp, http.StatusOK)
}

func (handler *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.reference.get")
	defer span.End()

	handler.writeTable(w, handler.current())
}

func (handler *Handler) HandleSet(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.reference.set")
	defer span.End()

	level := mux.Vars(r)["level"]
	span.SetAttributes(attribute.String("reference.level", level))
	if r.Header.Get("Content-Type") != pkg.ContentType.JSON {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var row Row
	if err := json.NewDecoder(r.Body).Decode(&row); err != nil {
		log.Errorf("set reference row %s, unmarshal json: %s", level, err)
		http.Error(w, "set reference row failed", http.StatusBadRequest)
		return
	}
	row.LevelName = level

	if err := handler.overlay.SetValidated(handler.source.BaseReference(), row); err != nil {
		var orderingErr *OrderingError
		switch {
		case errors.As(err, &orderingErr), errors.Is(err, ErrEmptyLevelName):
			http.Error(w, err.Error(), http.StatusBadRequest)
		default:
			log.Errorf("set reference row %s: %s", level, err)
			http.Error(w, "set reference row failed", http.StatusInternalServerError)
		}
		return
	}

	log.Debugf("reference row %s edited", level)
	handler.writeTable(w, handler.current())
}

func (handler *Handler) HandleRemove(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.reference.remove")
	defer span.End()

	level := mux.Vars(r)["level"]
	if _, found := handler.current().Find(level); !found {
		http.Error(w, ErrRowNotFound.Error(), http.StatusNotFound)
		return
	}

	handler.overlay.Remove(level)
	log.Debugf("reference row %s removed", level)
	handler.writeTable(w, handler.current())
}

func (handler *Handler) HandleReset(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.reference.reset")
	defer span.End()

	handler.overlay.Reset()
	log.Debugln("reference edits reset")
	handler.writeTable(w, handler.current())
}

package athletes

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/2beens/hrvreport/internal/telemetry/tracing"
	"github.com/2beens/hrvreport/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=$GOFILE -destination=roster_mocks_test.go -package=athletes_test
type athletesRoster interface {
	Add(rec Record) Record
	Get(id string) (Record, error)
	Update(rec Record) error
	List() []Record
	RequestDelete(id string)
	ApplyPendingDeletions() []string
}

type DeleteAthleteResponse struct {
	DeletedID string `json:"deletedId"`
}

type ListAthletesResponse struct {
	Athletes []Record `json:"athletes"`
	Total    int      `json:"total"`
}

type Handler struct {
	roster athletesRoster
}

func NewHandler(roster athletesRoster) *Handler {
	return &Handler{
		roster: roster,
	}
}

func (handler *Handler) SetupRoutes(r *mux.Router) {
	r.HandleFunc("/athletes", handler.HandleList).Methods("GET", "OPTIONS").Name("list-athletes")
	r.HandleFunc("/athletes", handler.HandleAdd).Methods("POST", "OPTIONS").Name("new-athlete")
	r.HandleFunc("/athletes/{id}", handler.HandleGet).Methods("GET", "OPTIONS").Name("get-athlete")
	r.HandleFunc("/athletes/{id}", handler.HandleUpdate).Methods("PUT", "OPTIONS").Name("update-athlete")
	r.HandleFunc("/athletes/{id}", handler.HandleDelete).Methods("DELETE", "OPTIONS").Name("delete-athlete")
}

func (handler *Handler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.athletes.add")
	defer span.End()

	rec := NewRecord()
	if r.Body != nil {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, "failed to read request body", http.StatusBadRequest)
			return
		}
		if len(body) > 0 {
			if r.Header.Get("Content-Type") != pkg.ContentType.JSON {
				http.Error(w, "invalid content type", http.StatusBadRequest)
				return
			}
			if err := json.Unmarshal(body, &rec); err != nil {
				log.Errorf("new athlete, unmarshal json: %s", err)
				http.Error(w, "add athlete failed", http.StatusBadRequest)
				return
			}
		}
	}

	rec.Recommendation = ParseRecommendation(string(rec.Recommendation))
	if err := rec.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	added := handler.roster.Add(rec)
	span.SetAttributes(attribute.String("athlete.id", added.ID))
	log.Debugf("new athlete added: [%s] %s", added.Name, added.ID)

	pkg.WriteJSON(w, added, http.StatusCreated)
}

func (handler *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.athletes.get")
	defer span.End()

	id := mux.Vars(r)["id"]
	if id == "" {
		http.Error(w, "error, id empty", http.StatusBadRequest)
		return
	}

	rec, err := handler.roster.Get(id)
	if err != nil {
		http.Error(w, "athlete not found", http.StatusNotFound)
		return
	}

	pkg.WriteJSON(w, rec, http.StatusOK)
}

func (handler *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.athletes.update")
	defer span.End()

	id := mux.Vars(r)["id"]
	if id == "" {
		http.Error(w, "error, id empty", http.StatusBadRequest)
		return
	}
	if r.Header.Get("Content-Type") != pkg.ContentType.JSON {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	rec, err := handler.roster.Get(id)
	if err != nil {
		http.Error(w, "athlete not found", http.StatusNotFound)
		return
	}

	// decode on top of the stored record, so absent fields keep their values
	if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
		log.Errorf("update athlete %s, unmarshal json: %s", id, err)
		http.Error(w, "update athlete failed", http.StatusBadRequest)
		return
	}
	if rec.ID != id {
		http.Error(w, ErrIDMismatch.Error(), http.StatusBadRequest)
		return
	}

	rec.Recommendation = ParseRecommendation(string(rec.Recommendation))
	if err := rec.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := handler.roster.Update(rec); err != nil {
		if errors.Is(err, ErrAthleteNotFound) {
			http.Error(w, "athlete not found", http.StatusNotFound)
			return
		}
		log.Errorf("failed to update athlete %s: %s", id, err)
		http.Error(w, "athlete not updated", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSON(w, rec, http.StatusOK)
}

func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.athletes.list")
	defer span.End()

	list := handler.roster.List()
	pkg.WriteJSON(w, ListAthletesResponse{
		Athletes: list,
		Total:    len(list),
	}, http.StatusOK)
}

// HandleDelete queues the deletion and applies the queue before responding,
// so a concurrent render never sees a half-deleted list.
func (handler *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.athletes.delete")
	defer span.End()

	id := mux.Vars(r)["id"]
	if id == "" {
		http.Error(w, "error, id empty", http.StatusBadRequest)
		return
	}

	handler.roster.RequestDelete(id)
	removed := handler.roster.ApplyPendingDeletions()

	found := false
	for _, removedID := range removed {
		if removedID == id {
			found = true
			break
		}
	}
	if !found {
		http.Error(w, "athlete not found", http.StatusNotFound)
		return
	}

	log.Debugf("athlete %s deleted", id)
	pkg.WriteJSON(w, DeleteAthleteResponse{DeletedID: id}, http.StatusOK)
}

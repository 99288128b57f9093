package athletes

import (
	"errors"
	"strings"
	"sync"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

var (
	ErrAthleteNotFound = errors.New("athlete not found")
	ErrIDMismatch      = errors.New("athlete id cannot change")
)

// Roster holds the live athlete list of a report session.
// Deletions are keyed by id only, never by position.
type Roster struct {
	mutex          sync.RWMutex
	records        []Record
	pendingDeletes []string
	usedIDs        map[string]struct{}
}

func NewRoster() *Roster {
	return &Roster{
		usedIDs: make(map[string]struct{}),
	}
}

// Add appends the record. An empty or already used id is replaced by a fresh one.
func (r *Roster) Add(rec Record) Record {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	rec = rec.Clone()
	if _, used := r.usedIDs[rec.ID]; rec.ID == "" || used {
		rec.ID = uuid.NewString()
	}
	if rec.Metrics == nil {
		rec.Metrics = NewRecord().Metrics
	}
	if rec.Recommendation == "" {
		rec.Recommendation = RecommendationOK
	}
	r.usedIDs[rec.ID] = struct{}{}
	r.records = append(r.records, rec)

	log.Debugf("roster: athlete [%s] added: %s", rec.Name, rec.ID)
	return rec.Clone()
}

func (r *Roster) Get(id string) (Record, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	idx := r.indexOf(id)
	if idx < 0 {
		return Record{}, ErrAthleteNotFound
	}
	return r.records[idx].Clone(), nil
}

// Update replaces the record with the same id in place.
func (r *Roster) Update(rec Record) error {
	if rec.ID == "" {
		return ErrIDMismatch
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()

	idx := r.indexOf(rec.ID)
	if idx < 0 {
		return ErrAthleteNotFound
	}
	r.records[idx] = rec.Clone()
	return nil
}

func (r *Roster) List() []Record {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	list := make([]Record, 0, len(r.records))
	for _, rec := range r.records {
		list = append(list, rec.Clone())
	}
	return list
}

func (r *Roster) Len() int {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	return len(r.records)
}

// Names returns the trimmed, non-empty athlete names in roster order.
// Duplicate names are kept.
func (r *Roster) Names() []string {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	var names []string
	for _, rec := range r.records {
		if name := strings.TrimSpace(rec.Name); name != "" {
			names = append(names, name)
		}
	}
	return names
}

// RequestDelete queues a deletion; nothing is removed until ApplyPendingDeletions.
func (r *Roster) RequestDelete(id string) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.pendingDeletes = append(r.pendingDeletes, id)
}

// ApplyPendingDeletions removes every queued id at once and returns the ids
// that were actually removed.
func (r *Roster) ApplyPendingDeletions() []string {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if len(r.pendingDeletes) == 0 {
		return nil
	}

	toDelete := make(map[string]struct{}, len(r.pendingDeletes))
	for _, id := range r.pendingDeletes {
		toDelete[id] = struct{}{}
	}
	r.pendingDeletes = nil

	var removed []string
	kept := r.records[:0]
	for _, rec := range r.records {
		if _, ok := toDelete[rec.ID]; ok {
			removed = append(removed, rec.ID)
			continue
		}
		kept = append(kept, rec)
	}
	// clear the tail so removed records are not retained by the backing array
	for i := len(kept); i < len(r.records); i++ {
		r.records[i] = Record{}
	}
	r.records = kept

	log.Debugf("roster: applied deletions, removed %d athletes", len(removed))
	return removed
}

// Delete queues the id and applies the queue right away.
func (r *Roster) Delete(id string) error {
	r.RequestDelete(id)
	for _, removedID := range r.ApplyPendingDeletions() {
		if removedID == id {
			return nil
		}
	}
	return ErrAthleteNotFound
}

func (r *Roster) indexOf(id string) int {
	for i := range r.records {
		if r.records[i].ID == id {
			return i
		}
	}
	return -1
}

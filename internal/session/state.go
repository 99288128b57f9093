package session

import (
	"github.com/2beens/hrvreport/internal/athletes"
	"github.com/2beens/hrvreport/internal/reference"

	log "github.com/sirupsen/logrus"
)

// State is the live data of one report session: the athletes, the user
// edits to the reference table and the known heart rate defaults.
type State struct {
	Roster  *athletes.Roster
	Overlay *reference.Overlay
	Known   reference.KnownDefaults
}

func NewState(known reference.KnownDefaults) *State {
	return &State{
		Roster:  athletes.NewRoster(),
		Overlay: reference.NewOverlay(),
		Known:   known,
	}
}

// BaseReference is the table generated from the current athlete names, before user edits.
func (s *State) BaseReference() reference.Table {
	return reference.BuildForAthletes(s.Roster.List(), s.Known)
}

// Reference is the table the charts are drawn against.
func (s *State) Reference() reference.Table {
	return s.Overlay.Apply(s.BaseReference())
}

// Snapshot is the frozen input of one generation pass.
type Snapshot struct {
	Athletes  []athletes.Record
	Reference reference.Table
}

// Snapshot applies the queued deletions, then copies the athletes and the
// reference table so the generation pass never sees later edits.
func (s *State) Snapshot() Snapshot {
	if removed := s.Roster.ApplyPendingDeletions(); len(removed) > 0 {
		log.Debugf("session: %d pending deletions applied before snapshot", len(removed))
	}
	return Snapshot{
		Athletes:  s.Roster.List(),
		Reference: s.Reference(),
	}
}

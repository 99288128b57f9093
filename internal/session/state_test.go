package session

import (
	"testing"

	"github.com/2beens/hrvreport/internal/athletes"
	"github.com/2beens/hrvreport/internal/reference"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func addAthlete(s *State, name string) athletes.Record {
	rec := athletes.NewRecord()
	rec.Name = name
	return s.Roster.Add(rec)
}

func TestState_Reference(t *testing.T) {
	s := NewState(reference.DefaultKnownDefaults())
	assert.Equal(t, reference.DefaultTable(), s.Reference())

	marius := addAthlete(s, "Marius")
	table := s.Reference()
	require.Len(t, table, 5)
	assert.Equal(t, "Marius Moyenne", table[0].LevelName)
	assert.Equal(t, marius.ID, table[0].AthleteID)
	assert.Equal(t, 105.0, table[0].Metrics[athletes.MetricHRStanding])
}

func TestState_EditsSurviveNameChanges(t *testing.T) {
	s := NewState(nil)
	addAthlete(s, "Alice")

	row, found := s.Reference().Find("Alice Moyenne")
	require.True(t, found)
	row.Metrics[athletes.MetricReserve] = 130
	require.NoError(t, s.Overlay.SetValidated(s.BaseReference(), row))

	addAthlete(s, "Bob")
	table := s.Reference()
	assert.Equal(t, []string{"Alice Moyenne", "Bob Moyenne", "DANGER", "VIGILANCE", "CORRECT", "OK"}, table.LevelNames())
	row, _ = table.Find("Alice Moyenne")
	assert.Equal(t, 130.0, row.Metrics[athletes.MetricReserve])
}

func TestState_Snapshot(t *testing.T) {
	s := NewState(nil)
	first := addAthlete(s, "Same")
	second := addAthlete(s, "Same")
	s.Roster.RequestDelete(first.ID)

	snap := s.Snapshot()
	require.Len(t, snap.Athletes, 1)
	assert.Equal(t, second.ID, snap.Athletes[0].ID)
	assert.Equal(t, second.ID, snap.Reference[0].AthleteID)
	assert.Equal(t, 0, len(s.Roster.ApplyPendingDeletions()), "queue drained")

	// the snapshot is a copy
	snap.Athletes[0].Metrics[athletes.MetricEffort] = 150
	stored, err := s.Roster.Get(second.ID)
	require.NoError(t, err)
	assert.Equal(t, 0.0, stored.Metrics[athletes.MetricEffort])
}

package reference

import (
	"strings"

	"github.com/2beens/hrvreport/internal/athletes"
)

type HRDefaults struct {
	HRSupine   float64 `toml:"hr_supine" json:"hr_supine" yaml:"hr_supine"`
	HRStanding float64 `toml:"hr_standing" json:"hr_standing" yaml:"hr_standing"`
}

// KnownDefaults maps a lowercased athlete name to its usual resting heart rates.
type KnownDefaults map[string]HRDefaults

func DefaultKnownDefaults() KnownDefaults {
	return KnownDefaults{
		"gaetane":   {HRSupine: 60, HRStanding: 85},
		"marius":    {HRSupine: 56, HRStanding: 105},
		"lili rose": {HRSupine: 61, HRStanding: 97},
		"alicia":    {HRSupine: 61, HRStanding: 90},
	}
}

func (k KnownDefaults) Lookup(name string) (HRDefaults, bool) {
	if k == nil {
		return HRDefaults{}, false
	}
	d, ok := k[strings.ToLower(strings.TrimSpace(name))]
	return d, ok
}

var globalValues = map[string]float64{
	Danger:    40,
	Vigilance: 80,
	Correct:   120,
	OK:        150,
}

func averageRow(levelName string) Row {
	return Row{
		LevelName: levelName,
		Metrics: map[athletes.Metric]float64{
			athletes.MetricEffort:       100,
			athletes.MetricReserve:      100,
			athletes.MetricRegeneration: 100,
			athletes.MetricHRSupine:     61,
			athletes.MetricHRStanding:   90,
		},
	}
}

func globalRow(level string) Row {
	v := globalValues[level]
	metrics := make(map[athletes.Metric]float64, len(athletes.AllMetrics))
	for _, m := range athletes.AllMetrics {
		metrics[m] = v
	}
	return Row{LevelName: level, Metrics: metrics}
}

func appendGlobalRows(t Table) Table {
	for _, level := range GlobalLevels {
		t = append(t, globalRow(level))
	}
	return t
}

// DefaultTable is the table used when there are no athletes yet.
func DefaultTable() Table {
	return appendGlobalRows(Table{averageRow(Average)})
}

func athleteAverageRow(name string, known KnownDefaults) Row {
	row := averageRow(name + " " + Average)
	if d, ok := known.Lookup(name); ok {
		row.Metrics[athletes.MetricHRSupine] = d.HRSupine
		row.Metrics[athletes.MetricHRStanding] = d.HRStanding
	}
	return row
}

// Build returns one "<Name> Moyenne" row per name, in input order, followed by
// the global levels. Duplicate names give duplicate rows. Blank names are skipped.
func Build(names []string, known KnownDefaults) Table {
	var t Table
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		t = append(t, athleteAverageRow(name, known))
	}
	if len(t) == 0 {
		return DefaultTable()
	}
	return appendGlobalRows(t)
}

// BuildForAthletes is Build over the named records, with each generated
// average row tied to its athlete id.
func BuildForAthletes(records []athletes.Record, known KnownDefaults) Table {
	var t Table
	for _, rec := range records {
		name := strings.TrimSpace(rec.Name)
		if name == "" {
			continue
		}
		row := athleteAverageRow(name, known)
		row.AthleteID = rec.ID
		t = append(t, row)
	}
	if len(t) == 0 {
		return DefaultTable()
	}
	return appendGlobalRows(t)
}

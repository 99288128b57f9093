package reference

import (
	"fmt"
	"sort"
	"strings"

	"github.com/2beens/hrvreport/internal/athletes"
)

const (
	Average   = "Moyenne"
	Danger    = "DANGER"
	Vigilance = "VIGILANCE"
	Correct   = "CORRECT"
	OK        = "OK"
)

// GlobalLevels are the threshold rows, innermost band first.
var GlobalLevels = []string{Danger, Vigilance, Correct, OK}

// Row is either a global threshold level or a per athlete average.
// AthleteID is set on rows generated for a known athlete record.
type Row struct {
	LevelName string                      `json:"level_name" yaml:"level_name"`
	AthleteID string                      `json:"athlete_id,omitempty" yaml:"athlete_id,omitempty"`
	Metrics   map[athletes.Metric]float64 `json:"metrics" yaml:"metrics"`
}

func (r Row) Value(m athletes.Metric) (float64, bool) {
	v, ok := r.Metrics[m]
	return v, ok
}

func (r Row) Clone() Row {
	c := r
	if r.Metrics != nil {
		c.Metrics = make(map[athletes.Metric]float64, len(r.Metrics))
		for k, v := range r.Metrics {
			c.Metrics[k] = v
		}
	}
	return c
}

type Table []Row

// Find returns the row with the exact level name. With duplicates, the last one wins.
func (t Table) Find(levelName string) (Row, bool) {
	for i := len(t) - 1; i >= 0; i-- {
		if t[i].LevelName == levelName {
			return t[i], true
		}
	}
	return Row{}, false
}

// AverageFor picks the baseline row drawn next to the athlete's own values:
// the row generated for the athlete id, then the first row whose level name
// starts with the athlete name, then the first generic "Moyenne" row, then the first row.
func (t Table) AverageFor(rec athletes.Record) Row {
	if len(t) == 0 {
		return Row{}
	}

	if rec.ID != "" {
		for _, row := range t {
			if row.AthleteID == rec.ID {
				return row
			}
		}
	}

	if name := strings.ToLower(strings.TrimSpace(rec.Name)); name != "" {
		for _, row := range t {
			if strings.HasPrefix(strings.ToLower(row.LevelName), name) {
				return row
			}
		}
	}

	for _, row := range t {
		if strings.Contains(row.LevelName, Average) {
			return row
		}
	}

	return t[0]
}

// Thresholds holds the four global levels, in band order.
type Thresholds struct {
	Danger    Row
	Vigilance Row
	Correct   Row
	OK        Row
}

// Ordered returns the levels innermost first.
func (th Thresholds) Ordered() []Row {
	return []Row{th.Danger, th.Vigilance, th.Correct, th.OK}
}

// Thresholds looks up the global levels and reports which of them are missing.
func (t Table) Thresholds() (Thresholds, []string) {
	var (
		th      Thresholds
		missing []string
	)
	targets := map[string]*Row{
		Danger:    &th.Danger,
		Vigilance: &th.Vigilance,
		Correct:   &th.Correct,
		OK:        &th.OK,
	}
	for _, level := range GlobalLevels {
		row, found := t.Find(level)
		if !found {
			missing = append(missing, level)
			continue
		}
		*targets[level] = row
	}
	return th, missing
}

// OrderingError lists the metrics where the global levels are not
// non-decreasing from DANGER to OK.
type OrderingError struct {
	Violations []string
}

func (e *OrderingError) Error() string {
	return fmt.Sprintf("reference thresholds out of order: %s", strings.Join(e.Violations, "; "))
}

// ValidateOrdering checks DANGER <= VIGILANCE <= CORRECT <= OK for every metric.
// Missing levels or metrics are skipped, they are reported elsewhere.
func (t Table) ValidateOrdering() error {
	var violations []string
	for _, m := range athletes.AllMetrics {
		prevLevel := ""
		prevValue := 0.0
		for _, level := range GlobalLevels {
			row, found := t.Find(level)
			if !found {
				continue
			}
			v, ok := row.Value(m)
			if !ok {
				continue
			}
			if prevLevel != "" && v < prevValue {
				violations = append(violations, fmt.Sprintf("%s: %s (%g) < %s (%g)", m, level, v, prevLevel, prevValue))
			}
			prevLevel, prevValue = level, v
		}
	}
	if len(violations) > 0 {
		sort.Strings(violations)
		return &OrderingError{Violations: violations}
	}
	return nil
}

func (t Table) Clone() Table {
	if t == nil {
		return nil
	}
	c := make(Table, len(t))
	for i, row := range t {
		c[i] = row.Clone()
	}
	return c
}

func (t Table) LevelNames() []string {
	names := make([]string, len(t))
	for i, row := range t {
		names[i] = row.LevelName
	}
	return names
}

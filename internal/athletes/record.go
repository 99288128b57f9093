package athletes

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/google/uuid"
)

type Metric string

const (
	MetricEffort       Metric = "effort_capacity_pct"
	MetricReserve      Metric = "reserve_pct"
	MetricRegeneration Metric = "regeneration_pct"
	MetricHRSupine     Metric = "hr_supine"
	MetricHRStanding   Metric = "hr_standing"
)

// AllMetrics in radar axis order.
var AllMetrics = []Metric{
	MetricEffort,
	MetricReserve,
	MetricRegeneration,
	MetricHRSupine,
	MetricHRStanding,
}

func (m Metric) Label() string {
	switch m {
	case MetricEffort:
		return "% Effort capacity"
	case MetricReserve:
		return "% Reserve"
	case MetricRegeneration:
		return "% Regeneration"
	case MetricHRSupine:
		return "HR supine"
	case MetricHRStanding:
		return "HR standing"
	default:
		return string(m)
	}
}

// Max is the upper bound accepted from the data entry side.
func (m Metric) Max() float64 {
	switch m {
	case MetricHRSupine, MetricHRStanding:
		return 300
	default:
		return 200
	}
}

type Recommendation string

const (
	RecommendationOK        Recommendation = "OK"
	RecommendationVigilance Recommendation = "Vigilance"
	RecommendationDanger    Recommendation = "Danger"
)

// ParseRecommendation never fails: anything unknown is treated as OK.
func ParseRecommendation(s string) Recommendation {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "vigilance":
		return RecommendationVigilance
	case "danger":
		return RecommendationDanger
	default:
		return RecommendationOK
	}
}

// Record is one athlete under evaluation. Metrics missing from the map are
// reported as missing by the chart renderers, never silently zeroed.
type Record struct {
	ID             string             `json:"id" yaml:"id"`
	Name           string             `json:"name" yaml:"name"`
	Metrics        map[Metric]float64 `json:"metrics" yaml:"metrics"`
	Menstruation   bool               `json:"menstruation" yaml:"menstruation"`
	Recommendation Recommendation     `json:"recommendation" yaml:"recommendation"`
	Comment        string             `json:"comment" yaml:"comment"`

	// set after chart generation, not part of the record identity
	ChartLeftPath  string `json:"-" yaml:"-"`
	ChartRightPath string `json:"-" yaml:"-"`
}

// NewRecord returns a record with a fresh id, all metrics zeroed and an OK recommendation.
func NewRecord() Record {
	metrics := make(map[Metric]float64, len(AllMetrics))
	for _, m := range AllMetrics {
		metrics[m] = 0
	}
	return Record{
		ID:             uuid.NewString(),
		Metrics:        metrics,
		Recommendation: RecommendationOK,
	}
}

func (r Record) Value(m Metric) (float64, bool) {
	v, ok := r.Metrics[m]
	return v, ok
}

func (r Record) MissingMetrics(ms ...Metric) []Metric {
	var missing []Metric
	for _, m := range ms {
		if _, ok := r.Metrics[m]; !ok {
			missing = append(missing, m)
		}
	}
	return missing
}

// DisplayName is what pages and legends show for the record.
func (r Record) DisplayName() string {
	if name := strings.TrimSpace(r.Name); name != "" {
		return name
	}
	return "Athlete"
}

// Clone deep-copies the metrics map so the copy can be mutated independently.
func (r Record) Clone() Record {
	c := r
	if r.Metrics != nil {
		c.Metrics = make(map[Metric]float64, len(r.Metrics))
		for k, v := range r.Metrics {
			c.Metrics[k] = v
		}
	}
	return c
}

var ErrInvalidRecord = errors.New("invalid athlete record")

// Validate checks value ranges. Rendering never calls it, only entry points do.
func (r Record) Validate() error {
	var problems []string
	for m, v := range r.Metrics {
		if !isKnownMetric(m) {
			problems = append(problems, fmt.Sprintf("unknown metric %q", m))
			continue
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			problems = append(problems, fmt.Sprintf("%s=%g is not a number", m, v))
			continue
		}
		if v < 0 || v > m.Max() {
			problems = append(problems, fmt.Sprintf("%s=%g out of range [0, %g]", m, v, m.Max()))
		}
	}
	switch r.Recommendation {
	case "", RecommendationOK, RecommendationVigilance, RecommendationDanger:
	default:
		problems = append(problems, fmt.Sprintf("unknown recommendation %q", r.Recommendation))
	}
	if len(problems) > 0 {
		sort.Strings(problems)
		return fmt.Errorf("%w: %s", ErrInvalidRecord, strings.Join(problems, "; "))
	}
	return nil
}

func isKnownMetric(m Metric) bool {
	for _, known := range AllMetrics {
		if m == known {
			return true
		}
	}
	return false
}

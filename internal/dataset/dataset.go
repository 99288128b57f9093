package dataset

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/2beens/hrvreport/internal/athletes"
	"github.com/2beens/hrvreport/internal/reference"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"
)

const DateLayout = "2006-01-02"

var ErrUnsupportedFormat = errors.New("unsupported dataset format")

// Dataset is the input of a one-shot report generation.
type Dataset struct {
	Date     string            `json:"date" yaml:"date"`
	Athletes []athletes.Record `json:"athletes" yaml:"athletes"`
	// edits applied on top of the generated reference table
	Reference []reference.Row `json:"reference" yaml:"reference"`
}

// Load reads a YAML (.yaml, .yml) or JSON (.json) dataset and validates it.
func Load(path string) (*Dataset, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read dataset: %w", err)
	}

	ds := &Dataset{}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(raw, ds)
	case ".json":
		err = json.Unmarshal(raw, ds)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	if err != nil {
		return nil, fmt.Errorf("decode dataset %s: %w", path, err)
	}

	if err := ds.normalize(); err != nil {
		return nil, err
	}

	log.Debugf("dataset %s loaded: %d athletes, %d reference edits", path, len(ds.Athletes), len(ds.Reference))
	return ds, nil
}

func (ds *Dataset) normalize() error {
	if _, err := ds.ParsedDate(); err != nil {
		return err
	}

	var errs error
	seen := map[string]bool{}
	for i := range ds.Athletes {
		rec := &ds.Athletes[i]
		if rec.ID == "" || seen[rec.ID] {
			rec.ID = uuid.NewString()
		}
		seen[rec.ID] = true
		rec.Recommendation = athletes.ParseRecommendation(string(rec.Recommendation))
		if err := rec.Validate(); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("athlete %d (%s): %w", i+1, rec.DisplayName(), err))
		}
	}

	overlay := reference.NewOverlay()
	for i, row := range ds.Reference {
		for m, v := range row.Metrics {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				errs = multierr.Append(errs, fmt.Errorf("reference row %d: %s=%g is not a number", i+1, m, v))
			}
		}
		if err := overlay.Set(row); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("reference row %d: %w", i+1, err))
		}
	}
	if err := overlay.Apply(reference.DefaultTable()).ValidateOrdering(); err != nil {
		errs = multierr.Append(errs, err)
	}

	return errs
}

// ParsedDate returns the report date, zero when the dataset has none.
func (ds *Dataset) ParsedDate() (time.Time, error) {
	if strings.TrimSpace(ds.Date) == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(DateLayout, strings.TrimSpace(ds.Date))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD: %w", ds.Date, err)
	}
	return t, nil
}

// ReferenceTable builds the table for the dataset athletes, with the
// dataset reference rows applied on top.
func (ds *Dataset) ReferenceTable(known reference.KnownDefaults) reference.Table {
	overlay := reference.NewOverlay()
	for _, row := range ds.Reference {
		// rows were checked by Load
		_ = overlay.Set(row)
	}
	return overlay.Apply(reference.BuildForAthletes(ds.Athletes, known))
}

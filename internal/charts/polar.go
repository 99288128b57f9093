package charts

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/2beens/hrvreport/internal/athletes"
	"github.com/2beens/hrvreport/internal/reference"
	"github.com/2beens/hrvreport/internal/telemetry/tracing"

	"github.com/golang/freetype/truetype"
	log "github.com/sirupsen/logrus"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
	"go.opentelemetry.io/otel/attribute"
)

const (
	polarMax  = 200
	polarStep = 25
	// points to pixels at chartDPI
	ptPx = chartDPI / 72.0
)

var (
	RadarMetrics = []athletes.Metric{
		athletes.MetricEffort,
		athletes.MetricReserve,
		athletes.MetricRegeneration,
		athletes.MetricHRSupine,
		athletes.MetricHRStanding,
	}
	TriangleMetrics = []athletes.Metric{
		athletes.MetricEffort,
		athletes.MetricReserve,
		athletes.MetricRegeneration,
	}
)

type polarLayout struct {
	kind    string
	width   int
	height  int
	cx, cy  int
	radius  float64
	metrics []athletes.Metric
}

var (
	radarLayout = polarLayout{
		kind:    KindRadar,
		width:   900,
		height:  900,
		cx:      430,
		cy:      470,
		radius:  320,
		metrics: RadarMetrics,
	}
	triangleLayout = polarLayout{
		kind:    KindTriangle,
		width:   750,
		height:  600,
		cx:      340,
		cy:      320,
		radius:  220,
		metrics: TriangleMetrics,
	}
)

// band is one threshold ring, painted from the outside in with opaque
// colours already blended over white.
type band struct {
	label string
	color drawing.Color
}

var (
	bandExcellent = band{"Excellent", blendOverWhite(colorGreen, 0.15)}
	bandOK        = band{"OK", blendOverWhite(colorLightGrn, 0.2)}
	bandCorrect   = band{"Correct", blendOverWhite(colorLightBlue, 0.2)}
	bandVigilance = band{"Vigilance", blendOverWhite(colorOrange, 0.2)}
	bandDanger    = band{"Danger", blendOverWhite(colorRed, 0.2)}
)

// point returns the pixel position of value v on axis i.
func (l polarLayout) point(i int, v float64) (int, int) {
	v = math.Max(0, math.Min(polarMax, v))
	theta := 2 * math.Pi * float64(i) / float64(len(l.metrics))
	r := v / polarMax * l.radius
	x := float64(l.cx) + r*math.Sin(theta)
	y := float64(l.cy) - r*math.Cos(theta)
	return int(math.Round(x)), int(math.Round(y))
}

// polygon adds the closed path through values to r, first axis repeated at the end.
func (l polarLayout) polygon(r chart.Renderer, values []float64) {
	x0, y0 := l.point(0, values[0])
	r.MoveTo(x0, y0)
	for i := 1; i < len(values); i++ {
		x, y := l.point(i, values[i])
		r.LineTo(x, y)
	}
	r.LineTo(x0, y0)
	r.Close()
}

func (l polarLayout) ring(v float64) int {
	return int(math.Round(v / polarMax * l.radius))
}

type polarInput struct {
	name         string
	values       []float64
	averageLabel string
	// nil when the average row lacks one of the axes
	average []float64
	// DANGER, VIGILANCE, CORRECT, OK; nil when a level is missing
	thresholds [][]float64
}

func rowValues(row reference.Row, metrics []athletes.Metric) ([]float64, bool) {
	values := make([]float64, len(metrics))
	for i, m := range metrics {
		v, ok := row.Value(m)
		if !ok {
			return nil, false
		}
		values[i] = v
	}
	return values, true
}

func (l polarLayout) input(rec athletes.Record, table reference.Table) (*polarInput, *Result, error) {
	if missing := rec.MissingMetrics(l.metrics...); len(missing) > 0 {
		fields := make([]string, len(missing))
		for i, m := range missing {
			fields[i] = string(m)
		}
		return nil, nil, &MissingFieldError{Record: rec.DisplayName(), Fields: fields}
	}

	in := &polarInput{name: rec.DisplayName()}
	for _, m := range l.metrics {
		in.values = append(in.values, rec.Metrics[m])
	}

	avgRow := table.AverageFor(rec)
	in.averageLabel = avgRow.LevelName
	if values, ok := rowValues(avgRow, l.metrics); ok {
		in.average = values
	} else {
		log.Warnf("%s chart for %s: average row %q lacks values, average curve skipped", l.kind, in.name, avgRow.LevelName)
	}

	result := &Result{}
	th, missing := table.Thresholds()
	var thresholds [][]float64
	for i, row := range th.Ordered() {
		if contains(missing, reference.GlobalLevels[i]) {
			continue
		}
		values, ok := rowValues(row, l.metrics)
		if !ok {
			missing = append(missing, reference.GlobalLevels[i])
			continue
		}
		thresholds = append(thresholds, values)
	}
	if len(missing) > 0 {
		result.MissingLevels = missing
		log.Warnf("%s chart for %s: reference levels %v missing, threshold bands skipped", l.kind, in.name, missing)
	} else {
		in.thresholds = thresholds
		if err := table.ValidateOrdering(); err != nil {
			result.OrderingViolation = err
			log.Warnf("%s chart for %s: %s", l.kind, in.name, err)
		}
	}

	return in, result, nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func (in *polarInput) cacheKey(l polarLayout) *cacheKey {
	key := newCacheKey(l.kind).str(in.name)
	for _, v := range in.values {
		key.num(v)
	}
	key.str(in.averageLabel)
	key.num(float64(len(in.average)))
	for _, v := range in.average {
		key.num(v)
	}
	key.num(float64(len(in.thresholds)))
	for _, level := range in.thresholds {
		for _, v := range level {
			key.num(v)
		}
	}
	return key
}

func (l polarLayout) draw(w io.Writer, in *polarInput, f *truetype.Font) error {
	r, err := chart.PNG(l.width, l.height)
	if err != nil {
		return fmt.Errorf("create png renderer: %w", err)
	}
	r.SetDPI(chartDPI)

	r.SetFillColor(colorWhite)
	r.MoveTo(0, 0)
	r.LineTo(l.width, 0)
	r.LineTo(l.width, l.height)
	r.LineTo(0, l.height)
	r.Close()
	r.Fill()

	if in.thresholds != nil {
		l.drawBands(r, in.thresholds)
	}
	l.drawGrid(r, f)

	if in.average != nil {
		r.SetFillColor(withAlpha(colorGray, 0.1))
		r.SetStrokeColor(colorGray)
		r.SetStrokeWidth(1.8 * ptPx)
		r.SetStrokeDashArray([]float64{6 * ptPx, 3 * ptPx})
		l.polygon(r, in.average)
		r.FillStroke()
		r.SetStrokeDashArray(nil)
	}

	// the athlete goes last, on top of everything else
	r.SetFillColor(withAlpha(colorAthlete, 0.2))
	r.SetStrokeColor(colorAthlete)
	r.SetStrokeWidth(2.2 * ptPx)
	l.polygon(r, in.values)
	r.FillStroke()

	l.drawLegend(r, f, in)

	return r.Save(w)
}

func (l polarLayout) drawBands(r chart.Renderer, thresholds [][]float64) {
	r.SetStrokeWidth(0)

	r.SetFillColor(bandExcellent.color)
	r.Circle(l.radius, l.cx, l.cy)
	r.Fill()

	// OK, CORRECT, VIGILANCE, DANGER
	bands := []band{bandDanger, bandVigilance, bandCorrect, bandOK}
	for i := len(thresholds) - 1; i >= 0; i-- {
		r.SetFillColor(bands[i].color)
		l.polygon(r, thresholds[i])
		r.Fill()
	}
}

func (l polarLayout) drawGrid(r chart.Renderer, f *truetype.Font) {
	r.SetStrokeColor(withAlpha(colorGray, 0.6))
	r.SetStrokeWidth(0.3 * ptPx)
	r.SetStrokeDashArray([]float64{1 * ptPx, 2 * ptPx})
	for v := polarStep; v < polarMax; v += polarStep {
		r.Circle(float64(l.ring(float64(v))), l.cx, l.cy)
		r.Stroke()
	}
	r.SetStrokeDashArray(nil)

	r.SetStrokeColor(withAlpha(colorGray, 0.5))
	r.SetStrokeWidth(1 * ptPx)
	r.Circle(l.radius, l.cx, l.cy)
	r.Stroke()

	r.SetStrokeColor(withAlpha(colorGray, 0.6))
	r.SetStrokeWidth(0.8 * ptPx)
	for i := range l.metrics {
		x, y := l.point(i, polarMax)
		r.MoveTo(l.cx, l.cy)
		r.LineTo(x, y)
		r.Stroke()
	}

	// radial labels along the first axis
	r.SetFont(f)
	r.SetFontSize(7)
	r.SetFontColor(colorGray)
	for v := 0; v <= polarMax; v += polarStep {
		label := strconv.Itoa(v)
		r.Text(label, l.cx+4, l.cy-l.ring(float64(v))-2)
	}

	for i, m := range l.metrics {
		x, y := l.point(i, polarMax)
		dx, dy := x-l.cx, y-l.cy
		norm := math.Hypot(float64(dx), float64(dy))
		lx := x + int(math.Round(float64(dx)/norm*40))
		ly := y + int(math.Round(float64(dy)/norm*24))
		drawCenteredText(r, f, m.Label(), 9, colorTextGray, lx, ly)
	}
}

func (l polarLayout) drawLegend(r chart.Renderer, f *truetype.Font, in *polarInput) {
	type entry struct {
		label  string
		color  drawing.Color
		dashed bool
		swatch bool
	}

	var entries []entry
	if in.thresholds != nil {
		for _, b := range []band{bandDanger, bandVigilance, bandCorrect, bandOK, bandExcellent} {
			entries = append(entries, entry{label: b.label, color: b.color, swatch: true})
		}
	}
	if in.average != nil {
		entries = append(entries, entry{label: in.averageLabel, color: colorGray, dashed: true})
	}
	entries = append(entries, entry{label: in.name, color: colorAthlete})

	x := l.width - 190
	y := 24
	r.SetFont(f)
	r.SetFontSize(8)
	r.SetFontColor(colorBlack)
	for _, e := range entries {
		if e.swatch {
			r.SetFillColor(e.color)
			r.SetStrokeWidth(0)
			r.MoveTo(x, y-6)
			r.LineTo(x+28, y-6)
			r.LineTo(x+28, y+6)
			r.LineTo(x, y+6)
			r.Close()
			r.Fill()
		} else {
			r.SetStrokeColor(e.color)
			r.SetStrokeWidth(2 * ptPx)
			if e.dashed {
				r.SetStrokeDashArray([]float64{6, 3})
			}
			r.MoveTo(x, y)
			r.LineTo(x+28, y)
			r.Stroke()
			r.SetStrokeDashArray(nil)
		}

		r.SetFont(f)
		r.SetFontSize(8)
		r.SetFontColor(colorBlack)
		tb := r.MeasureText(e.label)
		r.Text(e.label, x+36, y+tb.Height()/2)
		y += 26
	}
}

func (r *Renderer) renderPolar(ctx context.Context, l polarLayout, rec athletes.Record, table reference.Table, path string) (_ *Result, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "charts."+l.kind)
	span.SetAttributes(attribute.String("athlete.id", rec.ID))
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	in, result, err := l.input(rec, table)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.Bool("chart.degraded", result.Degraded()))

	f, err := defaultFont()
	if err != nil {
		return nil, fmt.Errorf("load font: %w", err)
	}

	cached, err := r.produce(ctx, l.kind, in.cacheKey(l), path, func(w io.Writer) error {
		return l.draw(w, in, f)
	})
	if err != nil {
		return nil, err
	}

	result.Path = path
	result.Cached = cached
	return result, nil
}

// RenderRadar draws the five axis comparison chart for one athlete.
func (r *Renderer) RenderRadar(ctx context.Context, rec athletes.Record, table reference.Table, path string) (*Result, error) {
	return r.renderPolar(ctx, radarLayout, rec, table, path)
}

// RenderTriangle draws the three axis comparison chart (effort, reserve, regeneration).
func (r *Renderer) RenderTriangle(ctx context.Context, rec athletes.Record, table reference.Table, path string) (*Result, error) {
	return r.renderPolar(ctx, triangleLayout, rec, table, path)
}

// IsMissingField reports whether err is, or wraps, a *MissingFieldError.
func IsMissingField(err error) bool {
	var mfe *MissingFieldError
	return errors.As(err, &mfe)
}

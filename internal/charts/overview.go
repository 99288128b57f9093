package charts

import (
	"context"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/2beens/hrvreport/internal/athletes"
	"github.com/2beens/hrvreport/internal/telemetry/tracing"

	"github.com/golang/freetype/truetype"
	log "github.com/sirupsen/logrus"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
	"go.opentelemetry.io/otel/attribute"
)

const (
	overviewWidth  = 1200
	overviewHeight = 1050
	chartDPI       = 150

	overviewAxisMax     = 200
	overviewMarkerSize  = 24
	overviewLegendTitle = "Athletes"

	DefaultOverviewTitle = "Daily evolution: regeneration vs effort capacity"
)

// overviewMetrics are the values every record must carry to be plotted.
var overviewMetrics = []athletes.Metric{
	athletes.MetricEffort,
	athletes.MetricRegeneration,
	athletes.MetricReserve,
}

type zone struct {
	x0, x1, y0, y1 float64
	color          drawing.Color
	alpha          float64
}

// overviewZones are the risk bands, in paint order. Low effort and low
// regeneration is the highest risk.
var overviewZones = []zone{
	{0, 30, 0, 30, colorRed, 0.3},

	{30, 100, 0, 30, colorOrange, 0.3},
	{0, 30, 30, 100, colorOrange, 0.3},
	{30, 60, 30, 60, colorOrange, 0.3},

	{0, 30, 100, 200, colorYellow, 0.3},
	{30, 60, 60, 120, colorYellow, 0.3},
	{60, 120, 30, 60, colorYellow, 0.3},
	{100, 200, 0, 30, colorYellow, 0.3},
	{60, 90, 60, 90, colorYellow, 0.3},

	{90, 200, 120, 200, colorGreen, 0.1},
	{120, 200, 90, 200, colorGreen, 0.1},

	{80, 120, 150, 200, colorBlue, 0.1},
	{150, 200, 80, 120, colorBlue, 0.1},
}

type overviewPoint struct {
	name         string
	effort       float64
	regeneration float64
	reserve      float64
	color        drawing.Color
}

type legendEntry struct {
	name  string
	color drawing.Color
}

// overviewPoints checks every record and assigns palette colours by first
// appearance of each name.
func overviewPoints(records []athletes.Record) ([]overviewPoint, []legendEntry, error) {
	points := make([]overviewPoint, 0, len(records))
	var legend []legendEntry
	colorIndex := map[string]int{}

	for _, rec := range records {
		if missing := rec.MissingMetrics(overviewMetrics...); len(missing) > 0 {
			fields := make([]string, len(missing))
			for i, m := range missing {
				fields[i] = string(m)
			}
			return nil, nil, &MissingFieldError{Record: rec.DisplayName(), Fields: fields}
		}

		name := rec.DisplayName()
		idx, seen := colorIndex[name]
		if !seen {
			idx = len(colorIndex)
			colorIndex[name] = idx
			legend = append(legend, legendEntry{name: name, color: paletteColor(idx)})
		}

		points = append(points, overviewPoint{
			name:         name,
			effort:       rec.Metrics[athletes.MetricEffort],
			regeneration: rec.Metrics[athletes.MetricRegeneration],
			reserve:      rec.Metrics[athletes.MetricReserve],
			color:        paletteColor(idx),
		})
	}

	return points, legend, nil
}

// zoneSeries paints the risk bands and the grid under the markers.
type zoneSeries struct{}

func (zoneSeries) GetName() string           { return "zones" }
func (zoneSeries) GetYAxis() chart.YAxisType { return chart.YAxisSecondary }
func (zoneSeries) GetStyle() chart.Style     { return chart.Style{} }
func (zoneSeries) Validate() error           { return nil }
func (zoneSeries) Render(r chart.Renderer, canvasBox chart.Box, xrange, yrange chart.Range, _ chart.Style) {
	for _, z := range overviewZones {
		left := canvasBox.Left + xrange.Translate(z.x0)
		right := canvasBox.Left + xrange.Translate(z.x1)
		top := canvasBox.Bottom - yrange.Translate(z.y1)
		bottom := canvasBox.Bottom - yrange.Translate(z.y0)

		r.SetFillColor(withAlpha(z.color, z.alpha))
		r.SetStrokeWidth(0)
		r.MoveTo(left, top)
		r.LineTo(right, top)
		r.LineTo(right, bottom)
		r.LineTo(left, bottom)
		r.Close()
		r.Fill()
	}

	r.SetStrokeColor(withAlpha(colorGray, 0.3))
	r.SetStrokeWidth(1)
	for v := 25.0; v < overviewAxisMax; v += 25 {
		x := canvasBox.Left + xrange.Translate(v)
		r.MoveTo(x, canvasBox.Top)
		r.LineTo(x, canvasBox.Bottom)
		r.Stroke()

		y := canvasBox.Bottom - yrange.Translate(v)
		r.MoveTo(canvasBox.Left, y)
		r.LineTo(canvasBox.Right, y)
		r.Stroke()
	}
}

// markerSeries draws one circle per athlete with the reserve value inside.
type markerSeries struct {
	points []overviewPoint
	font   *truetype.Font
}

func (s markerSeries) GetName() string           { return "athletes" }
func (s markerSeries) GetYAxis() chart.YAxisType { return chart.YAxisSecondary }
func (s markerSeries) GetStyle() chart.Style     { return chart.Style{} }
func (s markerSeries) Validate() error           { return nil }
func (s markerSeries) Render(r chart.Renderer, canvasBox chart.Box, xrange, yrange chart.Range, _ chart.Style) {
	for _, p := range s.points {
		x := canvasBox.Left + xrange.Translate(p.effort)
		y := canvasBox.Bottom - yrange.Translate(p.regeneration)

		r.SetFillColor(withAlpha(p.color, 0.85))
		r.SetStrokeColor(colorBlack)
		r.SetStrokeWidth(1.5)
		r.Circle(overviewMarkerSize, x, y)
		r.FillStroke()

		drawCenteredText(r, s.font, formatReserve(p.reserve), 7, colorBlack, x, y)
	}
}

// formatReserve truncates like an integer conversion would.
func formatReserve(v float64) string {
	return strconv.Itoa(int(math.Trunc(v)))
}

// overviewLegend lists the athletes in the right padding, outside the plot.
func overviewLegend(entries []legendEntry, f *truetype.Font) chart.Renderable {
	return func(r chart.Renderer, canvasBox chart.Box, _ chart.Style) {
		x := canvasBox.Right + 30
		y := canvasBox.Top + 10

		r.SetFont(f)
		r.SetFontSize(11)
		r.SetFontColor(colorBlack)
		r.Text(overviewLegendTitle, x, y)
		y += 20

		for _, e := range entries {
			y += 28
			r.SetFillColor(withAlpha(e.color, 0.85))
			r.SetStrokeColor(colorBlack)
			r.SetStrokeWidth(1)
			r.Circle(10, x+10, y)
			r.FillStroke()

			r.SetFont(f)
			r.SetFontSize(9)
			r.SetFontColor(colorBlack)
			tb := r.MeasureText(e.name)
			r.Text(e.name, x+30, y+tb.Height()/2)
		}
	}
}

func overviewTicks() []chart.Tick {
	var ticks []chart.Tick
	for v := 0; v <= overviewAxisMax; v += 25 {
		ticks = append(ticks, chart.Tick{Value: float64(v), Label: strconv.Itoa(v)})
	}
	return ticks
}

func (r *Renderer) overviewChart(title string, points []overviewPoint, legend []legendEntry, f *truetype.Font) chart.Chart {
	axisRange := func() *chart.ContinuousRange {
		return &chart.ContinuousRange{Min: 0, Max: overviewAxisMax}
	}

	ch := chart.Chart{
		Title:      title,
		TitleStyle: chart.Style{FontSize: 12},
		Width:      overviewWidth,
		Height:     overviewHeight,
		DPI:        chartDPI,
		Font:       f,
		Background: chart.Style{Padding: chart.Box{Top: 70, Left: 20, Right: 260, Bottom: 20}},
		XAxis: chart.XAxis{
			Name:      athletes.MetricEffort.Label(),
			NameStyle: chart.Style{FontSize: 10},
			Range:     axisRange(),
			Ticks:     overviewTicks(),
		},
		// the primary axis sits on the right where the legend goes, keep it hidden.
		// go-chart bounds the secondary range with the primary ticks, so both carry them.
		YAxis: chart.YAxis{
			Style: chart.Style{Hidden: true},
			Range: axisRange(),
			Ticks: overviewTicks(),
		},
		YAxisSecondary: chart.YAxis{
			Name:      athletes.MetricRegeneration.Label(),
			NameStyle: chart.Style{FontSize: 10},
			Range:     axisRange(),
			Ticks:     overviewTicks(),
		},
		Series: []chart.Series{
			zoneSeries{},
			markerSeries{points: points, font: f},
		},
	}
	ch.Elements = []chart.Renderable{overviewLegend(legend, f)}
	return ch
}

// RenderOverview plots every athlete at (effort, regeneration) over the risk
// bands and writes the PNG to path, which is returned.
func (r *Renderer) RenderOverview(ctx context.Context, records []athletes.Record, path string) (_ string, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "charts.overview")
	span.SetAttributes(attribute.Int("athletes.count", len(records)))
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	points, legend, err := overviewPoints(records)
	if err != nil {
		return "", err
	}

	f, err := defaultFont()
	if err != nil {
		return "", fmt.Errorf("load font: %w", err)
	}

	title := r.overviewTitle()
	key := newCacheKey(KindOverview).str(title)
	for _, p := range points {
		key.str(p.name).num(p.effort).num(p.regeneration).num(p.reserve)
	}

	cached, err := r.produce(ctx, KindOverview, key, path, func(w io.Writer) error {
		ch := r.overviewChart(title, points, legend, f)
		return ch.Render(chart.PNG, w)
	})
	if err != nil {
		return "", err
	}

	log.Debugf("overview chart for %d athletes written to %s (cached: %t)", len(records), path, cached)
	return path, nil
}

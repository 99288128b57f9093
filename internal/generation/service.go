package generation

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/2beens/hrvreport/internal/athletes"
	"github.com/2beens/hrvreport/internal/charts"
	"github.com/2beens/hrvreport/internal/reference"
	"github.com/2beens/hrvreport/internal/report"
	"github.com/2beens/hrvreport/internal/telemetry/metrics"
	"github.com/2beens/hrvreport/internal/telemetry/tracing"
	"github.com/2beens/hrvreport/pkg"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

var ErrEmptyRoster = errors.New("add at least one athlete before generating the report")

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=generation_test
type chartRenderer interface {
	RenderOverview(ctx context.Context, records []athletes.Record, path string) (string, error)
	RenderRadar(ctx context.Context, rec athletes.Record, table reference.Table, path string) (*charts.Result, error)
	RenderTriangle(ctx context.Context, rec athletes.Record, table reference.Table, path string) (*charts.Result, error)
	CacheHitCount() int64
}

type reportAssembler interface {
	Assemble(ctx context.Context, rc report.Context, outputPath string) (string, error)
}

type Request struct {
	Date      time.Time
	Athletes  []athletes.Record
	Reference reference.Table
	// defaults to <output dir>/rapport_hrv_<YYYY-MM-DD>.pdf
	OutputPath string
}

type Result struct {
	PDFPath string
	Pages   int
	// athletes whose charts were drawn without threshold bands
	DegradedAthletes []string
}

type Service struct {
	renderer       chartRenderer
	assembler      reportAssembler
	metricsManager *metrics.Manager

	title      string
	assets     report.Assets
	scratchDir string
	outputDir  string
	now        func() time.Time
}

func NewService(
	renderer chartRenderer,
	assembler reportAssembler,
	metricsManager *metrics.Manager,
	title string,
	assets report.Assets,
	scratchDir string,
	outputDir string,
) *Service {
	return &Service{
		renderer:       renderer,
		assembler:      assembler,
		metricsManager: metricsManager,
		title:          title,
		assets:         assets,
		scratchDir:     scratchDir,
		outputDir:      outputDir,
		now:            time.Now,
	}
}

// DefaultFileName is the name of the report file for date.
func DefaultFileName(date time.Time) string {
	return "rapport_hrv_" + date.Format("2006-01-02") + ".pdf"
}

// DownloadName is the file name offered to the browser for date.
func DownloadName(date time.Time) string {
	return "Rapport_HRV_ASM_" + date.Format("02-01-2006") + ".pdf"
}

// Generate runs one report pass: overview chart, the two comparison charts
// per athlete, then the PDF. The request is a snapshot and is not modified.
func (s *Service) Generate(ctx context.Context, req Request) (_ *Result, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "generation.generate")
	span.SetAttributes(attribute.Int("athletes.count", len(req.Athletes)))
	start := time.Now()
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
		if s.metricsManager == nil {
			return
		}
		outcome := "ok"
		if err != nil {
			outcome = "failed"
		}
		s.metricsManager.CounterReports.WithLabelValues(outcome).Inc()
		s.metricsManager.HistReportDuration.Observe(time.Since(start).Seconds())
	}()

	if len(req.Athletes) == 0 {
		return nil, ErrEmptyRoster
	}

	date := req.Date
	if date.IsZero() {
		date = s.now()
	}
	outputPath := req.OutputPath
	if outputPath == "" {
		outputPath = filepath.Join(s.outputDir, DefaultFileName(date))
	}

	if err := pkg.EnsureDir(s.scratchDir); err != nil {
		return nil, fmt.Errorf("create scratch dir: %w", err)
	}
	scratch, err := os.MkdirTemp(s.scratchDir, "charts-*")
	if err != nil {
		return nil, fmt.Errorf("create scratch dir: %w", err)
	}
	defer func() {
		if rmErr := os.RemoveAll(scratch); rmErr != nil {
			log.Warnf("failed to remove scratch dir %s: %s", scratch, rmErr)
		}
	}()

	hitsBefore := s.renderer.CacheHitCount()
	records := make([]athletes.Record, len(req.Athletes))
	for i, rec := range req.Athletes {
		records[i] = rec.Clone()
	}

	overviewPath, err := s.renderer.RenderOverview(ctx, records, filepath.Join(scratch, "overview.png"))
	if err != nil {
		return nil, fmt.Errorf("overview chart: %w", err)
	}
	s.chartRendered(charts.KindOverview)

	result := &Result{}
	for i := range records {
		rec := &records[i]

		radar, err := s.renderer.RenderRadar(ctx, *rec, req.Reference, filepath.Join(scratch, chartFileName(charts.KindRadar, i, rec.ID)))
		if err != nil {
			return nil, fmt.Errorf("athlete %s: radar chart: %w", rec.DisplayName(), err)
		}
		s.chartRendered(charts.KindRadar)

		triangle, err := s.renderer.RenderTriangle(ctx, *rec, req.Reference, filepath.Join(scratch, chartFileName(charts.KindTriangle, i, rec.ID)))
		if err != nil {
			return nil, fmt.Errorf("athlete %s: triangle chart: %w", rec.DisplayName(), err)
		}
		s.chartRendered(charts.KindTriangle)

		rec.ChartLeftPath = radar.Path
		rec.ChartRightPath = triangle.Path
		if radar.Degraded() || triangle.Degraded() {
			result.DegradedAthletes = append(result.DegradedAthletes, rec.DisplayName())
			if s.metricsManager != nil {
				s.metricsManager.CounterDegradedCharts.Inc()
			}
		}
	}

	if s.metricsManager != nil {
		if hits := s.renderer.CacheHitCount() - hitsBefore; hits > 0 {
			s.metricsManager.CounterChartCacheHits.Add(float64(hits))
		}
	}

	pdfPath, err := s.assembler.Assemble(ctx, report.Context{
		Date:              date,
		Title:             s.title,
		Athletes:          records,
		Reference:         req.Reference,
		OverviewChartPath: overviewPath,
		Assets:            s.assets,
	}, outputPath)
	if err != nil {
		return nil, fmt.Errorf("assemble report: %w", err)
	}

	result.PDFPath = pdfPath
	result.Pages = 1 + len(records)
	if s.metricsManager != nil {
		s.metricsManager.GaugeAthletes.Set(float64(len(records)))
	}

	log.Infof("report for %d athletes generated: %s", len(records), pdfPath)
	return result, nil
}

func (s *Service) chartRendered(kind string) {
	if s.metricsManager != nil {
		s.metricsManager.CounterChartsRendered.WithLabelValues(kind).Inc()
	}
}

// chartFileName keeps file names unique even when records share or lack an id.
func chartFileName(kind string, index int, id string) string {
	if id == "" {
		return fmt.Sprintf("%s_%03d.png", kind, index)
	}
	return fmt.Sprintf("%s_%03d_%s.png", kind, index, id)
}

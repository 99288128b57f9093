package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Manager struct {
	// counters
	CounterRequests           *prometheus.CounterVec
	CounterHandleRequestPanic prometheus.Counter
	CounterReports            *prometheus.CounterVec
	CounterChartsRendered     *prometheus.CounterVec
	CounterChartCacheHits     prometheus.Counter
	CounterDegradedCharts     prometheus.Counter
	CounterPlaceholderAssets  prometheus.Counter

	// gauges
	GaugeRequests   prometheus.Gauge
	GaugeLifeSignal prometheus.Gauge
	GaugeAthletes   prometheus.Gauge

	// histograms
	HistReportDuration       prometheus.Histogram
	HistogramRequestDuration *prometheus.HistogramVec
}

func NewTestManager() *Manager {
	return NewManager("hrv", "test", prometheus.NewRegistry())
}

func NewTestManagerAndRegistry() (*Manager, *prometheus.Registry) {
	reg := prometheus.NewRegistry()
	return NewManager("hrv", "test", reg), reg
}

func NewManager(namespace, subsystem string, reg prometheus.Registerer) *Manager {
	factory := promauto.With(reg)

	counterRequests := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "request",
		Help:      "The total number of incoming requests",
	}, []string{"method", "status"})
	counterHandleRequestPanic := factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "handle_request_panic",
		Help:      "The total number of serve request panics",
	})
	counterReports := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "reports",
		Help:      "The total number of report generations, by outcome",
	}, []string{"outcome"})
	counterChartsRendered := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "charts_rendered",
		Help:      "The total number of rendered chart images, by kind",
	}, []string{"kind"})
	counterChartCacheHits := factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "chart_cache_hits",
		Help:      "Chart images served from the render cache",
	})
	counterDegradedCharts := factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "degraded_charts",
		Help:      "Comparison charts rendered without threshold zones",
	})
	counterPlaceholderAssets := factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "placeholder_assets",
		Help:      "Images replaced by a placeholder in generated reports",
	})

	gaugeRequests := factory.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "current_requests",
		Help:      "Current number of requests served",
	})
	gaugeLifeSignal := factory.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "life_signal",
		Help:      "Shows whether the service is alive",
	})
	gaugeAthletes := factory.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "athletes_in_last_report",
		Help:      "Number of athletes in the last generated report",
	})

	histReportDuration := factory.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "report_duration_seconds",
		Help:      "Total duration of a single report generation in seconds",
		Buckets:   []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 30, 60},
	})
	histogramRequestDuration := factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "request_duration_seconds",
		Help:      "Histogram of response time for requests in seconds",
		Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
	}, []string{"route", "method", "status_code"})

	return &Manager{
		CounterRequests:           counterRequests,
		CounterHandleRequestPanic: counterHandleRequestPanic,
		CounterReports:            counterReports,
		CounterChartsRendered:     counterChartsRendered,
		CounterChartCacheHits:     counterChartCacheHits,
		CounterDegradedCharts:     counterDegradedCharts,
		CounterPlaceholderAssets:  counterPlaceholderAssets,
		GaugeRequests:             gaugeRequests,
		GaugeLifeSignal:           gaugeLifeSignal,
		GaugeAthletes:             gaugeAthletes,
		HistReportDuration:        histReportDuration,
		HistogramRequestDuration:  histogramRequestDuration,
	}
}

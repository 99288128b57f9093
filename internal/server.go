package internal

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/2beens/hrvreport/internal/athletes"
	"github.com/2beens/hrvreport/internal/charts"
	"github.com/2beens/hrvreport/internal/config"
	"github.com/2beens/hrvreport/internal/generation"
	"github.com/2beens/hrvreport/internal/middleware"
	"github.com/2beens/hrvreport/internal/reference"
	"github.com/2beens/hrvreport/internal/report"
	"github.com/2beens/hrvreport/internal/session"
	"github.com/2beens/hrvreport/internal/telemetry/metrics"
	"github.com/2beens/hrvreport/internal/telemetry/tracing"
	"github.com/2beens/hrvreport/pkg"

	"github.com/getsentry/sentry-go"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

type Server struct {
	httpServer        *http.Server
	metricsHttpServer *http.Server
	versionInfo       string

	config    *config.Config
	state     *session.State
	generator *generation.Service

	// metrics
	metricsManager *metrics.Manager
	promRegistry   *prometheus.Registry
	otelShutdown   func()
}

type NewServerParams struct {
	Config                  *config.Config
	VersionInfo             string
	HoneycombTracingEnabled bool
}

func NewServer(params NewServerParams) (*Server, error) {
	cfg := params.Config
	if cfg == nil {
		return nil, errors.New("config is nil")
	}

	promRegistry := metrics.SetupPrometheus()
	metricsManager := metrics.NewManager("hrvreport", "main", promRegistry)
	metricsManager.GaugeLifeSignal.Set(0)

	// use honeycomb distro to setup OpenTelemetry SDK
	otelShutdown, err := tracing.HoneycombSetup(params.HoneycombTracingEnabled, "hrv-report-service")
	if err != nil {
		return nil, err
	}

	generator, err := NewGenerationService(cfg, metricsManager)
	if err != nil {
		otelShutdown()
		return nil, err
	}

	return &Server{
		versionInfo: params.VersionInfo,
		config:      cfg,
		state:       session.NewState(cfg.KnownHRDefaults),
		generator:   generator,

		metricsManager: metricsManager,
		promRegistry:   promRegistry,
		otelShutdown:   otelShutdown,
	}, nil
}

// NewGenerationService wires the chart renderer, the PDF assembler and the
// report assets described by cfg.
func NewGenerationService(cfg *config.Config, metricsManager *metrics.Manager) (*generation.Service, error) {
	if err := pkg.EnsureDir(cfg.ScratchDir); err != nil {
		return nil, fmt.Errorf("scratch dir: %w", err)
	}
	if err := pkg.EnsureDir(cfg.OutputDir); err != nil {
		return nil, fmt.Errorf("output dir: %w", err)
	}

	renderer := charts.NewRenderer(cfg.ChartCacheSize)
	renderer.OverviewTitle = cfg.OverviewTitle

	return generation.NewService(
		renderer,
		report.NewAssembler(metricsManager),
		metricsManager,
		cfg.ReportTitle,
		report.LoadAssets(cfg.Assets),
		cfg.ScratchDir,
		cfg.OutputDir,
	), nil
}

func (s *Server) routerSetup() *mux.Router {
	r := mux.NewRouter()
	r.Use(otelmux.Middleware("hrv-report-router"))

	athletes.NewHandler(s.state.Roster).SetupRoutes(r)
	reference.NewHandler(s.state, s.state.Overlay).SetupRoutes(r)
	generation.NewHandler(s.generator, s.state).SetupRoutes(r)

	r.HandleFunc("/version", func(w http.ResponseWriter, r *http.Request) {
		pkg.WriteResponseBytes(w, pkg.ContentType.Text, []byte(s.versionInfo), http.StatusOK)
	}).Methods("GET", "OPTIONS").Name("version")

	// all the rest - unhandled paths
	r.HandleFunc("/{unknown}", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}).Methods("GET", "POST", "PUT", "DELETE", "OPTIONS").Name("unknown")

	r.Use(middleware.PanicRecovery(s.metricsManager))
	r.Use(middleware.LogRequest())
	r.Use(middleware.RequestMetrics(s.metricsManager))
	r.Use(middleware.Cors(s.config.AllowedOrigins...))
	r.Use(middleware.LimitAndDrainRequest(middleware.DefaultMaxBodyBytes))

	return r
}

func (s *Server) Serve(host string, port int) {
	router := s.routerSetup()

	ipAndPort := net.JoinHostPort(host, strconv.Itoa(port))
	s.httpServer = &http.Server{
		Handler: router,
		Addr:    ipAndPort,
		// report generation renders every chart before answering
		WriteTimeout: 3 * time.Minute,
		ReadTimeout:  time.Minute,
		ConnState:    s.connStateMetrics,
	}

	metricsRouter := mux.NewRouter()
	metricsRouter.Handle("/metrics", otelhttp.NewHandler(
		promhttp.HandlerFor(s.promRegistry, promhttp.HandlerOpts{}),
		"metrics",
	))
	metricsAddr := net.JoinHostPort(s.config.PrometheusMetricsHost, s.config.PrometheusMetricsPort)
	s.metricsHttpServer = &http.Server{
		Addr:    metricsAddr,
		Handler: metricsRouter,
	}

	go func() {
		log.Infof(" > server listening on: [%s]", ipAndPort)
		err := s.httpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("main service, listen and serve: %s", err)
		}
	}()

	go func() {
		log.Debugf(" > metrics listening on: [%s]", metricsAddr)
		err := s.metricsHttpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("metrics service, listen and serve: %s", err)
		}
	}()

	s.metricsManager.GaugeLifeSignal.Set(1)
}

func (s *Server) GracefulShutdown() {
	log.Debug("graceful shutdown initiated ...")

	s.metricsManager.GaugeLifeSignal.Set(0)

	s.otelShutdown()
	log.Trace("otel shut down ...")

	if ok := sentry.Flush(5 * time.Second); ok {
		log.Debugf("sentry flush ok: %t", ok)
	}

	maxWaitDuration := time.Second * 15
	ctx, timeoutCancel := context.WithTimeout(context.Background(), maxWaitDuration)
	defer timeoutCancel()

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			log.Error(" >>> failed to gracefully shutdown http server")
		}
		log.Warnln("server shut down")
	}

	if s.metricsHttpServer != nil {
		if err := s.metricsHttpServer.Shutdown(ctx); err != nil {
			log.Error(" >>> failed to gracefully shutdown metrics http server")
		}
		log.Warnln("metrics server shut down")
	}
}

func (s *Server) connStateMetrics(_ net.Conn, state http.ConnState) {
	switch state {
	case http.StateNew:
		s.metricsManager.GaugeRequests.Add(1)
	case http.StateClosed:
		s.metricsManager.GaugeRequests.Add(-1)
	}
}

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/2beens/hrvreport/internal"
	"github.com/2beens/hrvreport/internal/config"
	"github.com/2beens/hrvreport/internal/dataset"
	"github.com/2beens/hrvreport/internal/generation"
	"github.com/2beens/hrvreport/internal/logging"
	"github.com/2beens/hrvreport/internal/telemetry/metrics"

	"github.com/cli/browser"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

func main() {
	env := flag.String("env", "development", "environment [prod | production | dev | development]")
	configPath := flag.String("config", "./config.toml", "path for the TOML config file")
	input := flag.String("input", "", "athletes dataset, YAML or JSON")
	dateFlag := flag.String("date", "", "report date YYYY-MM-DD, overrides the dataset date")
	out := flag.String("out", "", "output PDF path, defaults to <output_dir>/rapport_hrv_<date>.pdf")
	open := flag.Bool("open", false, "open the generated PDF")
	flag.Parse()

	if *input == "" {
		fmt.Fprintln(os.Stderr, "missing -input dataset")
		flag.Usage()
		os.Exit(2)
	}

	if err := godotenv.Load(); err != nil {
		log.Tracef("no .env file loaded: %s", err)
	}

	cfg, err := config.Load(*env, *configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %s\n", err)
		os.Exit(1)
	}

	logCloser := logging.Setup(logging.LoggerSetupParams{
		LogFileName: cfg.LogsPath,
		LogToStdout: true,
		LogLevel:    cfg.LogLevel,
		Environment: cfg.Environment,
	})
	defer logCloser.Close()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	res, err := run(ctx, cfg, *input, *dateFlag, *out)
	if err != nil {
		log.Errorf("report generation failed: %s", err)
		os.Exit(1)
	}

	for _, name := range res.DegradedAthletes {
		log.Warnf("charts of %s were drawn without threshold bands", name)
	}
	fmt.Println(res.PDFPath)

	if *open {
		if err := browser.OpenFile(res.PDFPath); err != nil {
			log.Warnf("open %s: %s", res.PDFPath, err)
		}
	}
}

func run(ctx context.Context, cfg *config.Config, input, dateFlag, out string) (*generation.Result, error) {
	ds, err := dataset.Load(input)
	if err != nil {
		return nil, err
	}

	date, err := ds.ParsedDate()
	if err != nil {
		return nil, err
	}
	if dateFlag != "" {
		if date, err = time.Parse(dataset.DateLayout, dateFlag); err != nil {
			return nil, fmt.Errorf("invalid -date %q: %w", dateFlag, err)
		}
	}

	svc, err := internal.NewGenerationService(cfg, metrics.NewManager("hrvreport", "cli", metrics.SetupPrometheus()))
	if err != nil {
		return nil, err
	}

	return svc.Generate(ctx, generation.Request{
		Date:       date,
		Athletes:   ds.Athletes,
		Reference:  ds.ReferenceTable(cfg.KnownHRDefaults),
		OutputPath: out,
	})
}

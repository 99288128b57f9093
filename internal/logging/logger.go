package logging

import (
	"io"
	"os"
	"strings"

	"github.com/2beens/hrvreport/pkg"

	"github.com/getsentry/sentry-go"
	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

type LoggerSetupParams struct {
	LogFileName      string
	LogToStdout      bool
	LogLevel         string
	LogFormatJSON    bool
	Environment      string
	SentryEnabled    bool
	SentryDSN        string
	SentryServerName string
}

// Setup configures the global logrus logger. The returned writer is the
// rotating log file, if any, and should be closed on shutdown.
func Setup(params LoggerSetupParams) io.Closer {
	if params.LogFormatJSON {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	if params.SentryEnabled {
		setupSentry(params)
	}

	logrus.SetLevel(GetLevel(params.LogLevel))

	out, closer := Output(params.LogFileName, params.LogToStdout)
	logrus.SetOutput(out)
	if closer == nil {
		logrus.Println("writing logs only to STDOUT")
		return nopCloser{}
	}
	if params.LogToStdout {
		logrus.Println("writing logs to file and STDOUT")
	}
	return closer
}

func setupSentry(params LoggerSetupParams) {
	if params.SentryDSN == "" {
		logrus.Warnln("sentry enabled but SENTRY_DSN is empty, skipping sentry setup")
		return
	}

	err := sentry.Init(sentry.ClientOptions{
		Environment:      params.Environment,
		Dsn:              params.SentryDSN,
		TracesSampleRate: 1.0,
		ServerName:       params.SentryServerName,
	})
	if err != nil {
		logrus.Errorf("sentry.Init: %s", err)
		return
	}

	logrus.AddHook(NewSentryHook([]logrus.Level{
		logrus.PanicLevel,
		logrus.FatalLevel,
		logrus.ErrorLevel,
	}))
	logrus.Infoln("Sentry set up successfully")
}

// Output builds the log writer: stdout when fileName is empty, otherwise a
// rotating file, optionally mirrored to stdout. The closer is nil for stdout only.
func Output(fileName string, toStdout bool) (io.Writer, io.Closer) {
	if fileName == "" {
		return os.Stdout, nil
	}

	if !strings.HasSuffix(fileName, ".log") {
		fileName += ".log"
	}

	lumberJackLogger := &lumberjack.Logger{
		Filename:  fileName,
		MaxSize:   20, // megabytes
		MaxAge:    90, // days
		LocalTime: false,
		Compress:  true,
	}

	if toStdout {
		return pkg.NewCombinedWriter(os.Stdout, lumberJackLogger), lumberJackLogger
	}
	return lumberJackLogger, lumberJackLogger
}

func GetLevel(level string) logrus.Level {
	switch strings.ToLower(level) {
	case "debug":
		return logrus.DebugLevel
	case "error":
		return logrus.ErrorLevel
	case "fatal":
		return logrus.FatalLevel
	case "info":
		return logrus.InfoLevel
	case "trace":
		return logrus.TraceLevel
	case "warn", "warning":
		return logrus.WarnLevel
	default:
		return logrus.InfoLevel
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

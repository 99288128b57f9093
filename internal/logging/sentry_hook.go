package logging

import (
	"errors"

	"github.com/getsentry/sentry-go"
	"github.com/sirupsen/logrus"
)

// SentryHook forwards log entries of the given levels to sentry.
type SentryHook struct {
	levels  []logrus.Level
	capture func(entry *logrus.Entry)
}

func NewSentryHook(levels []logrus.Level) *SentryHook {
	return &SentryHook{
		levels:  levels,
		capture: captureEntry,
	}
}

func (h *SentryHook) Levels() []logrus.Level {
	return h.levels
}

func (h *SentryHook) Fire(entry *logrus.Entry) error {
	h.capture(entry)
	return nil
}

func captureEntry(entry *logrus.Entry) {
	sentry.WithScope(func(scope *sentry.Scope) {
		scope.SetLevel(sentryLevel(entry.Level))
		for k, v := range entry.Data {
			scope.SetExtra(k, v)
		}
		if err, ok := entry.Data[logrus.ErrorKey].(error); ok {
			sentry.CaptureException(err)
			return
		}
		sentry.CaptureException(errors.New(entry.Message))
	})
}

func sentryLevel(level logrus.Level) sentry.Level {
	switch level {
	case logrus.PanicLevel, logrus.FatalLevel:
		return sentry.LevelFatal
	case logrus.ErrorLevel:
		return sentry.LevelError
	case logrus.WarnLevel:
		return sentry.LevelWarning
	case logrus.InfoLevel:
		return sentry.LevelInfo
	default:
		return sentry.LevelDebug
	}
}

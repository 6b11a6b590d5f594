// Package enginelog is the engine's structured logging wrapper around
// logrus, grounded on the platform's shared logger package. It exists
// so every component logs through the same configured instance
// instead of each reaching for logrus directly.
package enginelog

import (
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var log *logrus.Logger

// Init configures the package-level logger. isDevelopment picks a
// human-readable text formatter with colors; otherwise JSON, suitable
// for log aggregation in a production run.
func Init(logLevel string, isDevelopment bool) *logrus.Logger {
	l := logrus.New()

	if logLevel == "" {
		logLevel = os.Getenv("LOG_LEVEL")
		if logLevel == "" {
			if isDevelopment {
				logLevel = "debug"
			} else {
				logLevel = "info"
			}
		}
	}

	if level, err := logrus.ParseLevel(strings.ToLower(logLevel)); err == nil {
		l.SetLevel(level)
	} else {
		l.SetLevel(logrus.InfoLevel)
		l.WithField("invalid_level", logLevel).Warn("invalid LOG_LEVEL, defaulting to info")
	}

	if !isDevelopment || strings.ToLower(os.Getenv("LOG_FORMAT")) == "json" {
		l.SetFormatter(&logrus.JSONFormatter{TimestampFormat: "2006-01-02T15:04:05.000Z07:00"})
	} else {
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, TimestampFormat: "2006-01-02 15:04:05", ForceColors: true})
	}

	l.SetOutput(os.Stdout)
	log = l
	return l
}

// Get returns the package-level logger, lazily initializing with
// production defaults if Init was never called.
func Get() *logrus.Logger {
	if log == nil {
		return Init("info", false)
	}
	return log
}

// NewCorrelationID mints a fresh id for tagging one call to the
// engine's public simulate entry point across all of its log lines.
// It is a logging-only concern: it never participates in RNG seeding
// or bracket/team identity, which stay fully caller-supplied and
// deterministic.
func NewCorrelationID() string {
	return uuid.NewString()
}

// WithRun scopes a logger to one Monte Carlo run within a batch.
func WithRun(correlationID string, runIndex int) *logrus.Entry {
	return Get().WithFields(logrus.Fields{
		"correlation_id": correlationID,
		"run_index":      runIndex,
	})
}

// WithMode scopes a logger to a named simulation mode.
func WithMode(correlationID, modeID string) *logrus.Entry {
	return Get().WithFields(logrus.Fields{
		"correlation_id": correlationID,
		"mode":           modeID,
	})
}

// WithSlot scopes a logger to a single bracket slot, for propagator
// warnings like an unknown team reference.
func WithSlot(correlationID, slotID string) *logrus.Entry {
	return Get().WithFields(logrus.Fields{
		"correlation_id": correlationID,
		"slot_id":        slotID,
	})
}

package logger

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Leveled logger shared by the API and its tools. Package-level helpers keep
// call sites terse; WithFields exposes logrus for structured request logs.

var logger = newLogger(os.Stdout)

func newLogger(w io.Writer) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(w)
	l.SetLevel(logrus.InfoLevel)
	l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	return l
}

// Init sets the global log level (case-insensitive: debug, info, warn, error, fatal).
// Call early during startup. Default level is Info.
func Init(l string) {
	switch strings.ToLower(strings.TrimSpace(l)) {
	case "debug":
		logger.SetLevel(logrus.DebugLevel)
	case "warn", "warning":
		logger.SetLevel(logrus.WarnLevel)
	case "error":
		logger.SetLevel(logrus.ErrorLevel)
	case "fatal":
		logger.SetLevel(logrus.FatalLevel)
	default:
		logger.SetLevel(logrus.InfoLevel)
	}
}

// SetFormat switches between "json" and the default text output.
func SetFormat(format string) {
	if strings.EqualFold(format, "json") {
		logger.SetFormatter(&logrus.JSONFormatter{})
		return
	}
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
}

func SetOutput(w io.Writer) { logger.SetOutput(w) }

func WithFields(f logrus.Fields) *logrus.Entry { return logger.WithFields(f) }

func Debugf(format string, v ...interface{}) { logger.Debugf(format, v...) }
func Infof(format string, v ...interface{})  { logger.Infof(format, v...) }
func Warnf(format string, v ...interface{})  { logger.Warnf(format, v...) }
func Errorf(format string, v ...interface{}) { logger.Errorf(format, v...) }
func Fatalf(format string, v ...interface{}) { logger.Fatalf(format, v...) }

// Println kept for brief messages (maps to Info)
func Println(v ...interface{}) { logger.Infoln(v...) }

// LevelString returns the current level as text.
func LevelString() string {
	lvl := logger.GetLevel()
	if lvl == logrus.WarnLevel {
		return "warn"
	}
	return lvl.String()
}

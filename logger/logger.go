package logger

import (
	"os"

	"github.com/sirupsen/logrus"
)

var globalLogger *logrus.Logger

// Init sets up the process-wide logger at the given level name
// ("debug", "info", "warn", "error").
func Init(level string) error {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return err
	}

	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetLevel(lvl)
	l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	globalLogger = l
	return nil
}

// Get returns the process-wide logger, falling back to logrus'
// standard logger when Init was never called.
func Get() *logrus.Logger {
	if globalLogger == nil {
		return logrus.StandardLogger()
	}
	return globalLogger
}

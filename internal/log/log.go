// Package log provides the process-wide logger: a small Logger interface
// backed by logrus, with a pattern-based formatter and configurable console
// and rotating-file appenders.
package log

import "sync"

type Logger interface {
	Debug(args ...interface{})
	Debugf(format string, args ...interface{})

	Info(args ...interface{})
	Infof(format string, args ...interface{})

	Warn(args ...interface{})
	Warnf(format string, args ...interface{})

	Error(args ...interface{})
	Errorf(format string, args ...interface{})

	Fatal(args ...interface{})
	Fatalf(format string, args ...interface{})

	WithField(field string, value interface{}) Logger
	WithFields(fields map[string]interface{}) Logger
	WithError(err error) Logger
}

var (
	mu     sync.RWMutex
	logger Logger = newLogrusLogger(defaultConfig())
)

// GetLogger returns the process logger. Before Init it logs to the console
// at info level.
func GetLogger() Logger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

// Init replaces the process logger according to cfg. A nil cfg keeps the
// defaults.
func Init(cfg *LoggerConfig) error {
	if cfg == nil {
		return nil
	}
	l, err := buildLogger(cfg)
	if err != nil {
		return err
	}
	mu.Lock()
	logger = l
	mu.Unlock()
	return nil
}

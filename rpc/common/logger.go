package common

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/lni/dragonboat/v4/logger"
)

// --------------------------------------------------------------------------
// Custom Logger (implements dragonboats logger.ILogger)
// --------------------------------------------------------------------------

// mrcliLogger implements the ILogger interface on top of a go-kit logfmt logger
type mrcliLogger struct {
	level  logger.LogLevel
	logger log.Logger
}

func (l *mrcliLogger) SetLevel(lvl logger.LogLevel) {
	l.level = lvl
}

func (l *mrcliLogger) Debugf(format string, args ...interface{}) {
	if l.level >= logger.DEBUG {
		_ = level.Debug(l.logger).Log("msg", fmt.Sprintf(format, args...))
	}
}

func (l *mrcliLogger) Infof(format string, args ...interface{}) {
	if l.level >= logger.INFO {
		_ = level.Info(l.logger).Log("msg", fmt.Sprintf(format, args...))
	}
}

func (l *mrcliLogger) Warningf(format string, args ...interface{}) {
	if l.level >= logger.WARNING {
		_ = level.Warn(l.logger).Log("msg", fmt.Sprintf(format, args...))
	}
}

func (l *mrcliLogger) Errorf(format string, args ...interface{}) {
	if l.level >= logger.ERROR {
		_ = level.Error(l.logger).Log("msg", fmt.Sprintf(format, args...))
	}
}

func (l *mrcliLogger) Panicf(format string, args ...interface{}) {
	message := fmt.Sprintf(format, args...)
	_ = level.Error(l.logger).Log("msg", message)
	panic(message)
}

// --------------------------------------------------------------------------
// Logger Factory
// --------------------------------------------------------------------------

// NewLoggerFactory returns a logger.Factory writing logfmt lines to w
func NewLoggerFactory(w io.Writer) logger.Factory {
	base := log.NewLogfmtLogger(log.NewSyncWriter(w))
	base = log.With(base, "ts", log.DefaultTimestampUTC)

	return func(pkgName string) logger.ILogger {
		return &mrcliLogger{
			level:  logger.ERROR,
			logger: log.With(base, "pkg", pkgName),
		}
	}
}

// --------------------------------------------------------------------------
// Helper
// --------------------------------------------------------------------------

// ParseLogLevel converts a string level to logger.LogLevel
func ParseLogLevel(lvl string) (logger.LogLevel, error) {
	switch strings.ToLower(lvl) {
	case "debug":
		return logger.DEBUG, nil
	case "info":
		return logger.INFO, nil
	case "warning", "warn":
		return logger.WARNING, nil
	case "error", "":
		return logger.ERROR, nil
	default:
		return logger.ERROR, fmt.Errorf("invalid log level: %s. must be one of debug, info, warn, error", lvl)
	}
}

// --------------------------------------------------------------------------
// Logger initialization
// --------------------------------------------------------------------------

// switchWriter forwards to a writer that can be replaced after the logger
// factory has been installed
type switchWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (s *switchWriter) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.w == nil {
		return len(p), nil
	}
	return s.w.Write(p)
}

func (s *switchWriter) set(w io.Writer) {
	s.mu.Lock()
	s.w = w
	s.mu.Unlock()
}

var (
	// loggedPackages are the loggers used by this module
	loggedPackages = []string{"cmd", "registry", "dispatch", "rpc", "transport"}

	logOutput   = &switchWriter{}
	factoryOnce sync.Once
)

// InitLoggers directs all package loggers to w and sets their level. The
// logger factory is installed on the first call only, since dragonboat
// accepts a single factory per process.
func InitLoggers(config ClientConfig, w io.Writer) error {
	lvl, err := ParseLogLevel(config.LogLevel)
	if err != nil {
		return err
	}

	logOutput.set(w)
	factoryOnce.Do(func() {
		logger.SetLoggerFactory(NewLoggerFactory(logOutput))
	})

	for _, pkg := range loggedPackages {
		logger.GetLogger(pkg).SetLevel(lvl)
	}
	return nil
}

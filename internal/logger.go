package internal

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	slogmulti "github.com/samber/slog-multi"
)

// LogLevel represents the logging level
type LogLevel int

const (
	LogLevelError LogLevel = iota
	LogLevelWarn
	LogLevelInfo
	LogLevelDebug
)

var (
	logLevel = LogLevelInfo
	level    = new(slog.LevelVar)

	loggerMu sync.RWMutex
	logger   = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
)

// SetLogLevel sets the global log level
func SetLogLevel(l LogLevel) {
	logLevel = l
	switch l {
	case LogLevelError:
		level.Set(slog.LevelError)
	case LogLevelWarn:
		level.Set(slog.LevelWarn)
	case LogLevelDebug:
		level.Set(slog.LevelDebug)
	default:
		level.Set(slog.LevelInfo)
	}
}

// SetVerbose enables verbose (debug) logging
func SetVerbose(verbose bool) {
	if verbose {
		SetLogLevel(LogLevelDebug)
	} else {
		SetLogLevel(LogLevelInfo)
	}
}

// ConfigureLogging fans log records out to w and, when filePath is set, to a
// JSON log file. The returned func closes the file.
func ConfigureLogging(w io.Writer, filePath string) (func() error, error) {
	handlers := []slog.Handler{
		slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}),
	}

	closeFn := func() error { return nil }
	if filePath != "" {
		if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
			return closeFn, &StorageError{Path: filePath, Op: "open", Err: err}
		}
		f, err := os.OpenFile(filePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return closeFn, &StorageError{Path: filePath, Op: "open", Err: err}
		}
		handlers = append(handlers, slog.NewJSONHandler(f, &slog.HandlerOptions{Level: level}))
		closeFn = f.Close
	}

	loggerMu.Lock()
	logger = slog.New(slogmulti.Fanout(handlers...))
	loggerMu.Unlock()

	return closeFn, nil
}

// Logger returns the shared structured logger.
func Logger() *slog.Logger {
	loggerMu.RLock()
	defer loggerMu.RUnlock()
	return logger
}

func logError(format string, args ...interface{}) {
	Logger().Error(fmt.Sprintf(format, args...))
}

func logWarn(format string, args ...interface{}) {
	Logger().Warn(fmt.Sprintf(format, args...))
}

func logInfo(format string, args ...interface{}) {
	Logger().Info(fmt.Sprintf(format, args...))
}

func logDebug(format string, args ...interface{}) {
	Logger().Debug(fmt.Sprintf(format, args...))
}

// LogError logs an error message
func LogError(format string, args ...interface{}) {
	logError(format, args...)
}

// LogWarn logs a warning message
func LogWarn(format string, args ...interface{}) {
	logWarn(format, args...)
}

// LogInfo logs an info message
func LogInfo(format string, args ...interface{}) {
	logInfo(format, args...)
}

// LogDebug logs a debug message
func LogDebug(format string, args ...interface{}) {
	logDebug(format, args...)
}

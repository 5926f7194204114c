package logger

import (
	"os"
	"strings"

	"github.com/charmbracelet/log"
)

var Logger *log.Logger

func init() {
	Logger = log.NewWithOptions(os.Stderr, log.Options{
		Prefix: "softbuf",
	})

	// LOG_LEVEL is the default; the config file may override it later
	if !SetLevel(os.Getenv("LOG_LEVEL")) {
		Logger.SetLevel(log.InfoLevel)
	}
}

// SetLevel parses a level name and applies it. It reports false and leaves
// the current level alone when the name is empty or unknown.
func SetLevel(name string) bool {
	level, ok := parseLevel(name)
	if !ok {
		return false
	}
	Logger.SetLevel(level)
	return true
}

func parseLevel(name string) (log.Level, bool) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "DEBUG":
		return log.DebugLevel, true
	case "INFO":
		return log.InfoLevel, true
	case "WARN", "WARNING":
		return log.WarnLevel, true
	case "ERROR":
		return log.ErrorLevel, true
	case "FATAL":
		return log.FatalLevel, true
	}
	return log.InfoLevel, false
}

// Convenience functions for common operations
func Info(msg interface{}, keyvals ...interface{}) {
	Logger.Info(msg, keyvals...)
}

func Debug(msg interface{}, keyvals ...interface{}) {
	Logger.Debug(msg, keyvals...)
}

func Warn(msg interface{}, keyvals ...interface{}) {
	Logger.Warn(msg, keyvals...)
}

func Error(msg interface{}, keyvals ...interface{}) {
	Logger.Error(msg, keyvals...)
}

func Fatal(msg interface{}, keyvals ...interface{}) {
	Logger.Fatal(msg, keyvals...)
}

func Infof(format string, args ...interface{}) {
	Logger.Infof(format, args...)
}

func Debugf(format string, args ...interface{}) {
	Logger.Debugf(format, args...)
}

func Warnf(format string, args ...interface{}) {
	Logger.Warnf(format, args...)
}

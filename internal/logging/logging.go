package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync/atomic"
)

// Level represents logging severity.
type Level int32

const (
	LevelError Level = iota
	LevelWarn
	LevelInfo
	LevelDebug
	LevelTrace
)

func (l Level) String() string {
	switch l {
	case LevelError:
		return "error"
	case LevelWarn:
		return "warn"
	case LevelInfo:
		return "info"
	case LevelDebug:
		return "debug"
	case LevelTrace:
		return "trace"
	default:
		return "unknown"
	}
}

// Ticks log from their own goroutines, so level and verbosity are atomics.
var (
	currentLevel     atomic.Int32
	currentVerbosity atomic.Int32
	logger           atomic.Pointer[log.Logger]
)

func init() {
	currentLevel.Store(int32(LevelWarn))
	SetOutput(os.Stderr)
}

// SetOutput redirects log lines, e.g. away from a terminal that renders a live display.
func SetOutput(w io.Writer) {
	logger.Store(log.New(w, "clockapp ", log.LstdFlags|log.Lmsgprefix))
}

// SetVerbosity configures logger output from count of -v flags (0-4).
func SetVerbosity(count int) {
	if count < 0 {
		count = 0
	}
	if count > 4 {
		count = 4
	}
	currentVerbosity.Store(int32(count))
	switch count {
	case 0:
		currentLevel.Store(int32(LevelWarn))
	case 1:
		currentLevel.Store(int32(LevelInfo))
	case 2:
		currentLevel.Store(int32(LevelDebug))
	default:
		currentLevel.Store(int32(LevelTrace))
	}
}

// Verbosity returns the stored -v count.
func Verbosity() int {
	return int(currentVerbosity.Load())
}

// CurrentLevel returns the active threshold.
func CurrentLevel() Level {
	return Level(currentLevel.Load())
}

// LevelName returns current level label.
func LevelName() string {
	return CurrentLevel().String()
}

// ParseLevel returns Level + verbosity count from string.
func ParseLevel(s string) (Level, int, error) {
	switch strings.ToLower(s) {
	case "error":
		return LevelError, 0, nil
	case "warn", "warning":
		return LevelWarn, 0, nil
	case "info":
		return LevelInfo, 1, nil
	case "debug":
		return LevelDebug, 2, nil
	case "trace":
		return LevelTrace, 4, nil
	default:
		return LevelWarn, Verbosity(), fmt.Errorf("unknown level %s", s)
	}
}

// Enabled reports whether messages at l are written.
func Enabled(l Level) bool {
	if l == LevelError {
		return true
	}
	return l <= CurrentLevel()
}

func logf(l Level, tag, format string, args ...any) {
	if !Enabled(l) {
		return
	}
	logger.Load().Printf("[%s] %s", tag, fmt.Sprintf(format, args...))
}

// Errorf always prints.
func Errorf(format string, args ...any) {
	logf(LevelError, "ERR", format, args...)
}

func Warnf(format string, args ...any) {
	logf(LevelWarn, "WARN", format, args...)
}

func Infof(format string, args ...any) {
	logf(LevelInfo, "INFO", format, args...)
}

func Debugf(format string, args ...any) {
	logf(LevelDebug, "DBG", format, args...)
}

func Tracef(format string, args ...any) {
	logf(LevelTrace, "TRC", format, args...)
}

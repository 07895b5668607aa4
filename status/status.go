// Leveled logging for the benchmark-result tools.
//
// Decoders never fail on malformed records, so the logger is where we report what was recovered,
// backfilled or dropped along the way.

package status

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
)

type LogLevel int

const (
	LogLevelDebug LogLevel = iota
	LogLevelInfo
	LogLevelWarning
	LogLevelError
	LogLevelCritical
)

var levelNames = []string{"debug", "info", "warning", "error", "critical"}

func (l LogLevel) String() string {
	if l < LogLevelDebug || l > LogLevelCritical {
		return fmt.Sprintf("level(%d)", int(l))
	}
	return levelNames[l]
}

// ParseLevel accepts the level names above, case-insensitively.
func ParseLevel(s string) (LogLevel, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, n := range levelNames {
		if n == s {
			return LogLevel(i), nil
		}
	}
	return LogLevelError, fmt.Errorf("Unknown log level %q", s)
}

// Implementations of this must be thread-safe.
type Logger interface {
	// Print only messages at level l or above
	SetLevel(l LogLevel)

	// Lower log level at least to l
	LowerLevelTo(l LogLevel)

	Level() LogLevel

	// Print on this stream, nil silences the logger
	SetStderr(w io.Writer)

	// None of these must exit or panic, the name indicates the log level only.
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warningf(format string, args ...any)
	Errorf(format string, args ...any)
	Criticalf(format string, args ...any)
}

type StandardLogger struct {
	sync.Mutex
	level  LogLevel
	prefix string
	stderr io.Writer
}

func NewLogger(prefix string, w io.Writer) *StandardLogger {
	return &StandardLogger{
		level:  LogLevelError,
		prefix: prefix,
		stderr: w,
	}
}

// MT: Constant after initialization, thread-safe.
var defaultLogger Logger = NewLogger("benchres", os.Stderr)

func Default() Logger {
	return defaultLogger
}

func (sl *StandardLogger) SetLevel(l LogLevel) {
	sl.Lock()
	defer sl.Unlock()

	sl.level = l
}

func (sl *StandardLogger) LowerLevelTo(l LogLevel) {
	sl.Lock()
	defer sl.Unlock()

	if sl.level > l {
		sl.level = l
	}
}

func (sl *StandardLogger) Level() LogLevel {
	sl.Lock()
	defer sl.Unlock()

	return sl.level
}

func (sl *StandardLogger) SetStderr(stderr io.Writer) {
	sl.Lock()
	defer sl.Unlock()

	sl.stderr = stderr
}

func (sl *StandardLogger) logf(l LogLevel, format string, args []any) {
	sl.Lock()
	defer sl.Unlock()

	if l < sl.level || sl.stderr == nil {
		return
	}
	s := fmt.Sprintf(format, args...)
	if sl.prefix != "" {
		fmt.Fprintf(sl.stderr, "%s: %s: %s\n", sl.prefix, l, s)
	} else {
		fmt.Fprintf(sl.stderr, "%s: %s\n", l, s)
	}
}

func (sl *StandardLogger) Criticalf(format string, args ...any) {
	sl.logf(LogLevelCritical, format, args)
}

func (sl *StandardLogger) Errorf(format string, args ...any) {
	sl.logf(LogLevelError, format, args)
}

func (sl *StandardLogger) Warningf(format string, args ...any) {
	sl.logf(LogLevelWarning, format, args)
}

func (sl *StandardLogger) Infof(format string, args ...any) {
	sl.logf(LogLevelInfo, format, args)
}

func (sl *StandardLogger) Debugf(format string, args ...any) {
	sl.logf(LogLevelDebug, format, args)
}

// Older API, still useful in main programs

func Fatalf(format string, args ...any) {
	defaultLogger.Criticalf(format, args...)
	os.Exit(1)
}

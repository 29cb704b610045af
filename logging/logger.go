// Package logging is the process-wide leveled logger.
//
// cmd/pokedash calls Configure once from its --log-level and --debug flags;
// every other package only calls Debugf, Infof, Warnf, Errorf and Request.
package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync/atomic"
	"time"
)

// Level is a message severity. Messages below the configured level are dropped.
type Level int32

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	}
	return "info"
}

// ParseLevel accepts debug, info, warn (or warning) and error, in any case.
// An empty string means info.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug, nil
	case "", "info":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	}
	return LevelInfo, fmt.Errorf("unknown log level %q (want debug, info, warn or error)", s)
}

var current = int32(LevelInfo)

var std = log.New(os.Stderr, "", log.Ldate|log.Ltime)

// Configure applies the CLI flags. debug forces LevelDebug whatever name says;
// an invalid name is an error and leaves the level unchanged.
func Configure(name string, debug bool) error {
	l, err := ParseLevel(name)
	if err != nil {
		return err
	}
	if debug {
		l = LevelDebug
	}
	SetLevel(l)
	return nil
}

// SetLevel sets the minimum level that is written.
func SetLevel(l Level) { atomic.StoreInt32(&current, int32(l)) }

// CurrentLevel returns the minimum level that is written.
func CurrentLevel() Level { return Level(atomic.LoadInt32(&current)) }

// SetOutput redirects log output.
func SetOutput(w io.Writer) { std.SetOutput(w) }

func logf(l Level, format string, args ...interface{}) {
	if l < CurrentLevel() {
		return
	}
	msg := format
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}
	std.Printf("[%s] %s", strings.ToUpper(l.String()), msg)
}

func Debugf(format string, a ...interface{}) { logf(LevelDebug, format, a...) }
func Infof(format string, a ...interface{})  { logf(LevelInfo, format, a...) }
func Warnf(format string, a ...interface{})  { logf(LevelWarn, format, a...) }
func Errorf(format string, a ...interface{}) { logf(LevelError, format, a...) }

// Request writes one access-log line at debug level.
func Request(method, uri string, status int, elapsed time.Duration) {
	logf(LevelDebug, "↔️  %s %s %d %s", method, uri, status, elapsed.Round(time.Microsecond))
}

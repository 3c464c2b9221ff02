// Package corelog wraps logrus the way minio's internal logger does:
// structured fields, a package-level default logger, and a thin
// errorIf/fatalIf pair so call sites stay one-liners.
package corelog

import (
	"os"
	"runtime/debug"

	"github.com/sirupsen/logrus"
)

// log is the default console logger.
var log = logrus.New()

func init() {
	log.Out = os.Stderr
	log.Formatter = &logrus.TextFormatter{FullTimestamp: true}
}

// SetLevel adjusts verbosity; "debug" turns on stack traces in ErrorIf.
func SetLevel(level string) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	log.SetLevel(lvl)
}

// Fields is an alias for structured log attributes.
type Fields = logrus.Fields

// WithFields returns an entry annotated with the given fields.
func WithFields(f Fields) *logrus.Entry {
	return log.WithFields(f)
}

// ErrorIf logs err at Error level with msg and returns, doing nothing
// when err is nil. Call sites that must not abort the process use this
// instead of FatalIf.
func ErrorIf(err error, msg string, args ...interface{}) {
	if err == nil {
		return
	}
	entry := log.WithFields(Fields{"cause": err.Error()})
	if log.Level == logrus.DebugLevel {
		entry = entry.WithField("stack", string(debug.Stack()))
	}
	entry.Errorf(msg, args...)
}

// FatalIf logs err at Fatal level with msg and terminates the process
// via os.Exit(1), doing nothing when err is nil.
func FatalIf(err error, msg string, args ...interface{}) {
	if err == nil {
		return
	}
	log.WithFields(Fields{"cause": err.Error()}).Fatalf(msg, args...)
}

// Package log is the logging facade used across the module. It keeps the
// printf-style Debugf/Infof/Warningf calls and routes them through logrus.
package log

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

var logger = newLogger(os.Stderr)

func newLogger(w io.Writer) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(w)
	l.SetLevel(logrus.WarnLevel)
	l.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	return l
}

// SetOutput redirects all log output to w.
func SetOutput(w io.Writer) {
	logger.SetOutput(w)
}

// SetLevel sets the minimum level that is emitted. Accepted values are
// "debug", "info" and "warning".
func SetLevel(level string) error {
	switch level {
	case "debug":
		logger.SetLevel(logrus.DebugLevel)
	case "info":
		logger.SetLevel(logrus.InfoLevel)
	case "warning", "":
		logger.SetLevel(logrus.WarnLevel)
	default:
		return fmt.Errorf("invalid log level %q", level)
	}
	return nil
}

// SetFormat selects "text" or "json" output.
func SetFormat(format string) error {
	switch format {
	case "text", "":
		logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	case "json":
		logger.SetFormatter(&logrus.JSONFormatter{})
	default:
		return fmt.Errorf("invalid log format %q", format)
	}
	return nil
}

// withPID returns an entry tagged with the calling process id.
func withPID() *logrus.Entry {
	return logger.WithField("pid", os.Getpid())
}

// Debugf logs at debug level.
func Debugf(format string, v ...interface{}) {
	withPID().Debugf(format, v...)
}

// Infof logs at info level.
func Infof(format string, v ...interface{}) {
	withPID().Infof(format, v...)
}

// Warningf logs at warning level.
func Warningf(format string, v ...interface{}) {
	withPID().Warnf(format, v...)
}

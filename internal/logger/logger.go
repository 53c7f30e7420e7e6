package logger

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Log is the global logger instance.
var Log = logrus.New()

// Init configures the global logger. Production and staging environments get
// JSON lines; anything else gets a text formatter.
func Init(level, environment string) {
	Log.SetOutput(os.Stderr)

	lvl, err := logrus.ParseLevel(strings.ToLower(level))
	if err != nil {
		Log.SetLevel(logrus.InfoLevel)
		Log.Warnf("invalid log level %q, defaulting to info", level)
	} else {
		Log.SetLevel(lvl)
	}

	switch strings.ToLower(environment) {
	case "production", "staging":
		Log.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
		})
	default:
		Log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05",
		})
	}

	Log.Debugf("log level %s, environment %q", Log.GetLevel(), environment)
}

// SetOutput redirects the global logger, mostly for tests.
func SetOutput(w io.Writer) {
	Log.SetOutput(w)
}

// For returns an entry tagged with the component name.
func For(component string) *logrus.Entry {
	return Log.WithField("component", component)
}

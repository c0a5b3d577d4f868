// Package obslog provides the profiler's shared structured logger,
// following the convention of configuring one process-wide logger and
// handing out per-component *logrus.Entry values rather than passing a
// logger instance through every call.
package obslog

import (
	"os"
	"sync"

	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"
)

var (
	once sync.Once
	base *logrus.Logger
)

func root() *logrus.Logger {
	once.Do(func() {
		base = logrus.New()
		base.SetOutput(os.Stderr)
		if isatty.IsTerminal(os.Stderr.Fd()) {
			base.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
		} else {
			base.SetFormatter(&logrus.JSONFormatter{})
		}
	})

	return base
}

// For returns a logger entry tagged with component, e.g. "catalog",
// "batch" or "enrichment".
func For(component string) *logrus.Entry {
	return root().WithField("component", component)
}

// SetLevel adjusts the shared logger's verbosity; used by the CLI's
// --verbose flag.
func SetLevel(level logrus.Level) {
	root().SetLevel(level)
}

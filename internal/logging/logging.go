// Package logging provides the loggers used by all packages of the
// module.
package logging

import (
	"os"
	"sync"

	"github.com/op/go-logging"
)

var (
	once sync.Once
	log  *logging.Logger
)

var format = logging.MustStringFormatter(
	`%{time:15:04:05.000} %{level:-7s} %{shortpkg:-10s} %{message}`,
)

// GetLog returns the shared application logger, creating it on first
// use.
func GetLog() *logging.Logger {
	once.Do(func() {
		log = logging.MustGetLogger("fianchetto")
		backend := logging.NewLogBackend(os.Stderr, "", 0)
		formatted := logging.NewBackendFormatter(backend, format)
		leveled := logging.AddModuleLevel(formatted)
		leveled.SetLevel(logging.ERROR, "")
		logging.SetBackend(leveled)
	})
	return log
}

// SetLevel adjusts the log level of the shared logger.
func SetLevel(level logging.Level) {
	GetLog()
	logging.SetLevel(level, "fianchetto")
}

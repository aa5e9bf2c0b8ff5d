// Package logging configures the process-wide debug logger.
package logging

import (
	"os"

	"github.com/phuslu/log"
)

// Setup installs the global logger. The default level only surfaces
// warnings; debug turns on request and resolution tracing.
func Setup(debug bool) {
	level := log.WarnLevel
	if debug {
		level = log.DebugLevel
	}
	log.DefaultLogger = log.Logger{
		Level:      level,
		TimeFormat: "15:04:05",
		Writer: &log.ConsoleWriter{
			ColorOutput: false,
			Writer:      os.Stderr,
		},
	}
}

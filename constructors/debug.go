//go:build debug

package constructors

import (
	"log"
	"os"
)

// Debug logger instance, following the teacher's log_debug.go pattern: a
// single build-tagged file per package rather than a runtime log level, so
// a normal build never pays for logging it will not use.
var logger = log.New(os.Stderr, "[geogen:constructors DEBUG] ", log.LstdFlags)

// logDebugf logs a debug message when built with -tags debug.
func logDebugf(format string, v ...interface{}) {
	logger.Printf(format, v...)
}

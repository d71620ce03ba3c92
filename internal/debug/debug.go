// Package debug provides the engine's internal diagnostic logging: off by
// default, enabled with TODOIT_DEBUG=1, and optionally mirrored to a rotated
// log file via TODOIT_DEBUG_LOG.
package debug

import (
	"fmt"
	"io"
	"log"
	"os"
	"sync"

	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	mu      sync.Mutex
	enabled bool
	logger  *log.Logger
	initd   bool
)

func lazyInit() {
	if initd {
		return
	}
	initd = true
	enabled = os.Getenv("TODOIT_DEBUG") != ""

	var out io.Writer = os.Stderr
	if path := os.Getenv("TODOIT_DEBUG_LOG"); path != "" {
		out = io.MultiWriter(os.Stderr, &lumberjack.Logger{
			Filename:   path,
			MaxSize:    10, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
			Compress:   true,
		})
	}
	logger = log.New(out, "todoit: ", log.LstdFlags|log.Lmicroseconds)
}

// Logf writes a diagnostic line when TODOIT_DEBUG is set. It is a no-op
// otherwise, so call sites never need to guard the call themselves.
func Logf(format string, args ...interface{}) {
	mu.Lock()
	defer mu.Unlock()
	lazyInit()
	if !enabled {
		return
	}
	logger.Output(2, fmt.Sprintf(format, args...)) //nolint:errcheck
}

// Enabled reports whether debug logging is currently switched on.
func Enabled() bool {
	mu.Lock()
	defer mu.Unlock()
	lazyInit()
	return enabled
}

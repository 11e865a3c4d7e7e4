package log

import (
	"fmt"
	"io"
	"log/slog"
	"runtime/debug"
	"sync"
	"sync/atomic"

	charmlog "github.com/charmbracelet/log"

	"dolasm/internal/logging"
)

var (
	initOnce    sync.Once
	initialized atomic.Bool
	closer      io.Closer
)

// Setup installs the charmbracelet logger as the slog default. debug forces
// the debug level regardless of DOLASM_LOG_LEVEL. Later calls are no-ops.
func Setup(debug bool) io.Closer {
	initOnce.Do(func() {
		lc := logging.New(logging.FromEnv())
		if debug {
			lc.SetLevel(charmlog.DebugLevel)
			lc.SetReportCaller(true)
		}
		slog.SetDefault(slog.New(lc.Logger))
		closer = lc
		initialized.Store(true)
	})
	return closer
}

func Initialized() bool {
	return initialized.Load()
}

func RecoverPanic(name string, cleanup func()) {
	if r := recover(); r != nil {
		if Initialized() {
			slog.Error(fmt.Sprintf("Panic in %s", name),
				"panic", r,
				"stack", string(debug.Stack()))
		}
		if cleanup != nil {
			cleanup()
		}
	}
}

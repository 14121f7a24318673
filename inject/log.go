package inject

import (
	"sync/atomic"

	"go.uber.org/zap"
)

var (
	pkgLogger atomic.Pointer[zap.Logger]
	nopLogger = zap.NewNop()
)

// SetLogger routes the package's debug events (declarations, resets, provider
// failures) to l. A nil l silences them again.
func SetLogger(l *zap.Logger) {
	pkgLogger.Store(l)
}

func logger() *zap.Logger {
	if l := pkgLogger.Load(); l != nil {
		return l
	}
	return nopLogger
}

package defaults

import "go.uber.org/zap"

var logger = zap.NewNop()

// SetLogger routes the package's debug output to l. A nil logger silences it again.
// It is not safe to call concurrently with the other helpers.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	logger = l
}

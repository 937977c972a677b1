package logging

import (
	"sync"

	"github.com/pion/logging"
)

var (
	mu            sync.Mutex
	loggerFactory = logging.NewDefaultLoggerFactory()
	loggers       []logging.LeveledLogger
)

func NewLogger(scope string) logging.LeveledLogger {
	mu.Lock()
	defer mu.Unlock()
	l := loggerFactory.NewLogger(scope)
	loggers = append(loggers, l)
	return l
}

// SetVerbose switches every logger, including the ones created before the
// call, to debug level.
func SetVerbose() {
	mu.Lock()
	defer mu.Unlock()
	loggerFactory.DefaultLogLevel = logging.LogLevelDebug
	for _, l := range loggers {
		if dl, ok := l.(*logging.DefaultLeveledLogger); ok {
			dl.SetLevel(logging.LogLevelDebug)
		}
	}
}

package shared

import "github.com/trezcool/recordsync/core"

// FlushLoggers waits for loggers that send reports asynchronously (Rollbar) to deliver them.
func FlushLoggers(loggers ...core.Logger) {
	for _, logger := range loggers {
		if c, ok := logger.(interface{ Close() }); ok {
			c.Close()
		}
	}
}

package health

import "context"

// Pinger зависимость, доступность которой проверяется в /health
type Pinger interface {
	PingContext(ctx context.Context) error
}

type Logger interface {
	Warn(format string, v ...interface{})
}

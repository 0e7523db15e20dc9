package terminal

import (
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// Option configures a Terminal.
type Option func(*Terminal)

// WithLogger sets the logger. Nil loggers are ignored.
func WithLogger(l *slog.Logger) Option {
	return func(t *Terminal) {
		if l != nil {
			t.log = l
		}
	}
}

// WithClock sets the time source used for session and receipt timestamps.
func WithClock(now func() time.Time) Option {
	return func(t *Terminal) {
		if now != nil {
			t.now = now
		}
	}
}

// WithIDGenerator sets the session id generator.
func WithIDGenerator(gen func() string) Option {
	return func(t *Terminal) {
		if gen != nil {
			t.newID = gen
		}
	}
}

func defaultIDGenerator() string {
	return uuid.NewString()
}

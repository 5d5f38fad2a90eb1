package service

import (
	"time"

	"go.uber.org/zap"
)

// Option configures optional collaborators shared by the services.
type Option func(*options)

type options struct {
	now    func() time.Time
	logger *zap.SugaredLogger
}

// WithClock overrides the time source (tests pin it to a fixed instant).
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

// WithLogger sets the structured logger used for lifecycle events.
func WithLogger(log *zap.SugaredLogger) Option {
	return func(o *options) {
		if log != nil {
			o.logger = log
		}
	}
}

func newOptions(opts []Option) options {
	o := options{
		now:    time.Now,
		logger: zap.NewNop().Sugar(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

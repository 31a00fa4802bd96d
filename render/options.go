package render

import "go.uber.org/zap"

// Option is a functional option for configuring a Coordinator.
type Option func(*Coordinator)

// WithLogger sets the structured logger used for render lifecycle events.
// The default is a nop logger.
func WithLogger(log *zap.Logger) Option {
	return func(c *Coordinator) {
		c.log = log
	}
}

// WithIsolator sets the isolation strategy used to run layout work away
// from the caller. The default runs each request in a fresh goroutine;
// worker.Client provides out-of-process isolation instead.
func WithIsolator(iso Isolator) Option {
	return func(c *Coordinator) {
		c.isolator = iso
	}
}

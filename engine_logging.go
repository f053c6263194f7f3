package traits

import "time"

// ApplyLogEvent describes one adoption attempt for logging.
type ApplyLogEvent struct {
	Trait       string
	Target      string
	Invocations int
	Definitions int
	Duration    time.Duration
	Err         error
}

// ApplyLogger records adoption events.
type ApplyLogger interface {
	LogApply(ApplyLogEvent)
}

// ApplyLoggerFunc adapts a function to ApplyLogger.
type ApplyLoggerFunc func(ApplyLogEvent)

// LogApply implements ApplyLogger.
func (f ApplyLoggerFunc) LogApply(event ApplyLogEvent) {
	if f != nil {
		f(event)
	}
}

type noopApplyLogger struct{}

func (noopApplyLogger) LogApply(ApplyLogEvent) {}

// WithApplyLogger attaches an adoption logger to the engine.
func WithApplyLogger(logger ApplyLogger) Option {
	return func(cfg *engineConfig) {
		if logger == nil {
			cfg.logger = noopApplyLogger{}
			return
		}
		cfg.logger = logger
	}
}

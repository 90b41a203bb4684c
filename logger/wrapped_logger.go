package logger

// WrappedLogger can be embedded by components that log through an optional logger.
// All methods are no-ops if no logger was given.
type WrappedLogger struct {
	logger *Logger
}

// NewWrappedLogger creates a WrappedLogger around logger, which may be nil.
func NewWrappedLogger(logger *Logger) *WrappedLogger {
	return &WrappedLogger{logger: logger}
}

// LogDebug logs the fmt.Sprint of args at debug level.
func (l *WrappedLogger) LogDebug(args ...interface{}) {
	if l.logger != nil {
		l.logger.Debug(args...)
	}
}

// LogDebugf logs a templated message at debug level.
func (l *WrappedLogger) LogDebugf(template string, args ...interface{}) {
	if l.logger != nil {
		l.logger.Debugf(template, args...)
	}
}

// LogInfof logs a templated message at info level.
func (l *WrappedLogger) LogInfof(template string, args ...interface{}) {
	if l.logger != nil {
		l.logger.Infof(template, args...)
	}
}

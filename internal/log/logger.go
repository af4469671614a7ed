// Package log wraps slog with component-tagged loggers and the field name
// constants used across the service.
package log

import (
	"log/slog"
	"os"
)

// Logger is a slog.Logger that always carries a component attribute, so
// every line can be traced back to the subsystem that wrote it.
type Logger struct {
	*slog.Logger
	handler   slog.Handler
	component string
}

// Config controls handler construction.
type Config struct {
	Level     slog.Level
	Component string
	Handler   slog.Handler
}

func DefaultConfig() Config {
	return Config{
		Level:     slog.LevelInfo,
		Component: ComponentApp,
	}
}

// New builds a logger from config. Without an explicit handler a text
// handler on stdout is used.
func New(config Config) *Logger {
	handler := config.Handler
	if handler == nil {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level: config.Level,
		})
	}
	return &Logger{
		Logger:    slog.New(handler).With(FieldComponent, config.Component),
		handler:   handler,
		component: config.Component,
	}
}

// With returns a logger carrying extra attributes.
func (l *Logger) With(args ...any) *Logger {
	return &Logger{
		Logger:    l.Logger.With(args...),
		handler:   l.handler,
		component: l.component,
	}
}

// WithComponent returns a logger tagged with a different component name.
// The tag is rebuilt from the handler so components never stack.
func (l *Logger) WithComponent(component string) *Logger {
	base := l.Logger
	if l.handler != nil {
		base = slog.New(l.handler)
	}
	return &Logger{
		Logger:    base.With(FieldComponent, component),
		handler:   l.handler,
		component: component,
	}
}

// Component returns the logger's component name.
func (l *Logger) Component() string {
	return l.component
}

// SetDefault installs the logger as the process-wide slog default.
func SetDefault(logger *Logger) {
	slog.SetDefault(logger.Logger)
}

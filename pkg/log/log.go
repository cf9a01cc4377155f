// Package log provides structured logging for caloriedash.
//
// Components obtain a named Logger and attach key/value pairs using the key
// constants defined in this package so that log lines stay queryable:
//
//	logger := log.GetLoggerWithName("predictor").With(log.ComponentKey, "predictor")
//	logger.Info("Model loaded", log.FeaturesKey, 10)
//
// The default implementation is backed by github.com/rs/zerolog.
package log

import (
	"strings"
	"sync"
)

// Standard log keys.
const (
	ComponentKey  = "component"
	ModelNameKey  = "model_name"
	OperationKey  = "operation"
	PhaseKey      = "phase"
	SamplesKey    = "samples"
	FeaturesKey   = "features"
	DurationMsKey = "duration_ms"
	PathKey       = "path"
	PageKey       = "page"
	SessionKey    = "session"
	SchemaKey     = "schema_version"
)

// Operation values.
const (
	OperationLoad     = "load"
	OperationPredict  = "predict"
	OperationEvaluate = "evaluate"
	OperationRender   = "render"
)

// Phase values.
const (
	PhaseStartup   = "startup"
	PhaseInference = "inference"
	PhaseServing   = "serving"
)

// Level is a logging level.
type Level int8

// Supported levels.
const (
	DebugLevel Level = iota
	InfoLevel
	WarnLevel
	ErrorLevel
	Disabled
)

// ToLogLevel parses a level name, case-insensitively. Unknown names map to
// InfoLevel.
func ToLogLevel(level string) Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return DebugLevel
	case "warn", "warning":
		return WarnLevel
	case "error":
		return ErrorLevel
	case "disabled", "off":
		return Disabled
	default:
		return InfoLevel
	}
}

// Logger is a structured logger. fields are alternating keys and values.
type Logger interface {
	Debug(msg string, fields ...interface{})
	Info(msg string, fields ...interface{})
	Warn(msg string, fields ...interface{})
	Error(msg string, fields ...interface{})
	With(fields ...interface{}) Logger
}

// LoggerProvider creates loggers sharing one output and level.
type LoggerProvider interface {
	GetLogger() Logger
	GetLoggerWithName(name string) Logger
	SetLevel(level Level)
}

var (
	mu       sync.RWMutex
	provider LoggerProvider
)

// SetupLogger installs a zerolog provider at the given level as the
// process-wide default.
func SetupLogger(level string) {
	SetProvider(NewZerologProvider(ToLogLevel(level)))
}

// SetProvider replaces the process-wide provider.
func SetProvider(p LoggerProvider) {
	mu.Lock()
	defer mu.Unlock()
	provider = p
}

func defaultProvider() LoggerProvider {
	mu.RLock()
	p := provider
	mu.RUnlock()
	if p != nil {
		return p
	}

	mu.Lock()
	defer mu.Unlock()
	if provider == nil {
		provider = NewZerologProvider(InfoLevel)
	}
	return provider
}

// GetLogger returns the default logger.
func GetLogger() Logger {
	return defaultProvider().GetLogger()
}

// GetLoggerWithName returns a logger tagged with a component name.
func GetLoggerWithName(name string) Logger {
	return defaultProvider().GetLoggerWithName(name)
}

// LogError logs err at error level on the default logger.
func LogError(err error, msg string, fields ...interface{}) {
	GetLogger().Error(msg, append([]interface{}{"error", err}, fields...)...)
}

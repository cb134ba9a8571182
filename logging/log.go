// Package logging wraps zap.Logger with the Named/Clone helpers the rest of
// this engine expects, so every package logs through one consistent surface
// instead of importing zap directly.
package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// A Level is a logging priority. Higher levels are more important.
type Level int8

// Logging levels (matching zap core internals).
const (
	DebugLevel Level = -1
	InfoLevel  Level = 0
	WarnLevel  Level = 1
	ErrorLevel Level = 2
	PanicLevel Level = 4
	FatalLevel Level = 5
)

func (l Level) zapLevel() zapcore.Level { return zapcore.Level(l) }

// Logger is a named, cloneable zap.Logger.
type Logger struct {
	*zap.Logger
	config *zap.Config
	name   string
}

// New builds the root Logger for the given level and encoding ("json" or
// "console").
func New(level Level, development bool) *Logger {
	cfg := zap.NewProductionConfig()
	if development {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(level.zapLevel())
	built, err := cfg.Build()
	if err != nil {
		panic(err)
	}
	return &Logger{Logger: built, config: &cfg}
}

// Clone returns an independent Logger with the same configuration.
func (log *Logger) Clone() *Logger {
	newConfig := cloneConfig(log.config)
	newLogger, err := newConfig.Build()
	if err != nil {
		panic(err)
	}
	return &Logger{Logger: newLogger, config: newConfig, name: log.name}
}

// Named returns a child logger whose name is dotted onto the parent's.
func (log *Logger) Named(name string) *Logger {
	c := log.Clone()
	newName := name
	if log.name != "" {
		newName = fmt.Sprintf("%s.%s", log.name, name)
	}
	return &Logger{Logger: c.Logger.Named(newName), config: c.config, name: newName}
}

// GetLevel returns the logger's configured level.
func (log *Logger) GetLevel() Level { return Level(log.config.Level.Level()) }

// GetName returns the logger's dotted name.
func (log *Logger) GetName() string { return log.name }

// AtExit flushes buffered log entries. Call with defer at process shutdown.
func (log *Logger) AtExit() {
	if log.Logger != nil {
		_ = log.Logger.Sync()
	}
}

func cloneConfig(cfg *zap.Config) *zap.Config {
	c := zap.Config{
		Level:             zap.NewAtomicLevelAt(cfg.Level.Level()),
		Development:       cfg.Development,
		DisableCaller:     cfg.DisableCaller,
		DisableStacktrace: cfg.DisableStacktrace,
		Encoding:          cfg.Encoding,
		EncoderConfig:     cfg.EncoderConfig,
		OutputPaths:       cfg.OutputPaths,
		ErrorOutputPaths:  cfg.ErrorOutputPaths,
		InitialFields:     make(map[string]interface{}),
	}
	for k, v := range cfg.InitialFields {
		c.InitialFields[k] = v
	}
	return &c
}

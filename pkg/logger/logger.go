// Package logger is the process-wide structured logger. Call sites pass a
// message followed by alternating key/value pairs:
//
//	logger.Info("upload stored", "name", name, "size", size)
package logger

import (
	"io"

	immortal "github.com/dezh-tech/immortal/pkg/logger"
	"github.com/rs/zerolog/log"
)

const (
	TargetConsole = "console"
	TargetFile    = "file"

	defaultLevel = "info"
)

type Config = immortal.Config

// InitGlobalLogger replaces the global logger according to cfg. With no
// targets the logger writes to the console, and an empty level means info.
func InitGlobalLogger(cfg *Config) {
	c := *cfg
	if len(c.Targets) == 0 {
		c.Targets = []string{TargetConsole}
	}

	if c.LogLevel == "" {
		c.LogLevel = defaultLevel
	}

	immortal.InitGlobalLogger(&c)
}

// SetOutput redirects the global logger as JSON lines. Used by tests.
func SetOutput(w io.Writer) {
	log.Logger = log.Logger.Output(w)
}

func Debug(msg string, keyvals ...any) { immortal.Debug(msg, keyvals...) }

func Info(msg string, keyvals ...any) { immortal.Info(msg, keyvals...) }

func Warn(msg string, keyvals ...any) { immortal.Warn(msg, keyvals...) }

func Error(msg string, keyvals ...any) { immortal.Error(msg, keyvals...) }

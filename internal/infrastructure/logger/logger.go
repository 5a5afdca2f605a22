package logger

import (
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var (
	globalLogger zerolog.Logger
	once         sync.Once
)

// GetLogger returns the global logger instance
func GetLogger() zerolog.Logger {
	once.Do(func() {
		globalLogger = newLogger(zerolog.InfoLevel, "console")
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	})
	return globalLogger
}

// Init configures the global logger from level and format settings.
// Unknown values fall back to info/console.
func Init(level, format string) {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		lvl = zerolog.InfoLevel
	}

	globalLogger = newLogger(lvl, strings.ToLower(format))
	zerolog.SetGlobalLevel(lvl)
	log.Logger = globalLogger
}

func newLogger(level zerolog.Level, format string) zerolog.Logger {
	switch format {
	case "json":
		return zerolog.New(os.Stdout).With().Timestamp().Logger().Level(level)
	default:
		consoleWriter := zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: time.RFC3339,
		}
		return zerolog.New(consoleWriter).With().Timestamp().Logger().Level(level)
	}
}

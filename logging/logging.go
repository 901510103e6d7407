// Package logging configures the global zerolog logger.
package logging

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"go.mau.fi/zeroconfig"
	"gopkg.in/natefinch/lumberjack.v2"
	"gopkg.in/yaml.v3"
)

// Options selects how the global logger is built. When ConfigPath is set the
// zeroconfig file wins and Level and File are ignored.
type Options struct {
	Level      string // trace, debug, info, warn, error (default info)
	File       string // optional rotating log file
	ConfigPath string // optional zeroconfig YAML file

	// Console overrides the console writer destination (default os.Stderr).
	Console io.Writer
}

// Setup replaces log.Logger according to opts. The returned function flushes
// and closes any file writer.
func Setup(opts Options) (func() error, error) {
	if opts.ConfigPath != "" {
		logger, err := fromConfigFile(opts.ConfigPath)
		if err != nil {
			return nil, err
		}
		log.Logger = *logger
		return func() error { return nil }, nil
	}

	level := zerolog.InfoLevel
	if opts.Level != "" {
		l, err := zerolog.ParseLevel(opts.Level)
		if err != nil {
			return nil, fmt.Errorf("log level %q: %w", opts.Level, err)
		}
		level = l
	}

	console := opts.Console
	if console == nil {
		console = os.Stderr
	}
	writers := []io.Writer{zerolog.ConsoleWriter{Out: console, TimeFormat: time.Kitchen}}

	closer := func() error { return nil }
	if opts.File != "" {
		rotating := &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    10, // MB
			MaxBackups: 3,
			MaxAge:     28, // days
		}
		writers = append(writers, rotating)
		closer = rotating.Close
	}

	log.Logger = zerolog.New(zerolog.MultiLevelWriter(writers...)).
		Level(level).
		With().Timestamp().Logger()
	return closer, nil
}

func fromConfigFile(path string) (*zerolog.Logger, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("log config %s is not readable: %w", path, err)
	}
	var cfg zeroconfig.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("log config %s is not valid yaml: %w", path, err)
	}
	logger, err := cfg.Compile()
	if err != nil {
		return nil, fmt.Errorf("log config %s is not valid for zerolog: %w", path, err)
	}
	return logger, nil
}

package cli

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/halverson/overtone/internal/config"
)

// newLogger builds the process logger from config. When log.file is set the
// output goes through lumberjack so the overlay can run for weeks without
// growing an unbounded log.
func newLogger(cfg *config.Config) *log.Logger {
	var w io.Writer = os.Stderr
	if cfg.Log.File != "" {
		w = &lumberjack.Logger{
			Filename:   cfg.Log.File,
			MaxSize:    10, // megabytes
			MaxBackups: 3,
		}
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "overtone",
	})

	switch cfg.Log.Level {
	case "debug":
		logger.SetLevel(log.DebugLevel)
	case "warn":
		logger.SetLevel(log.WarnLevel)
	case "error":
		logger.SetLevel(log.ErrorLevel)
	default:
		logger.SetLevel(log.InfoLevel)
	}

	if verbose {
		logger.SetLevel(log.DebugLevel)
	}

	return logger
}

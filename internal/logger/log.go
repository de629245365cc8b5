package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/studioflow/agency-api/internal/config"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Init wires the process-wide slog default: stdout, a rotating file, or both.
func Init(cfg *config.Config) {
	level := parseLevel(cfg.Log.Level)

	var writers []io.Writer
	if cfg.Log.Console {
		writers = append(writers, os.Stdout)
	}
	if cfg.Log.File != "" {
		writers = append(writers, &lumberjack.Logger{
			Filename:   cfg.Log.File,
			MaxSize:    cfg.Log.MaxSizeMB,
			MaxBackups: cfg.Log.MaxBackups,
			MaxAge:     cfg.Log.MaxAgeDays,
			LocalTime:  true,
		})
	}
	if len(writers) == 0 {
		writers = append(writers, os.Stdout)
	}

	h := slog.NewTextHandler(io.MultiWriter(writers...), &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(h))
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

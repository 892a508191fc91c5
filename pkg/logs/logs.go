// Package logs builds the process-wide slog logger.
package logs

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/Alijeyrad/uat_backend/config"
)

// New builds a logger from config. Stdout and the rotating file share one
// handler; Loki gets its own JSON handler. Development defaults to text with
// source locations, everything else to JSON.
func New(cfg *config.Config) *slog.Logger {
	level := parseLevel(cfg.Logging.Level)
	isDev := strings.EqualFold(cfg.Server.Environment, "development")
	out := cfg.Logging.Output

	var writers []io.Writer
	if out.Stdout || (!out.File.Enabled && !out.Loki.Enabled) {
		writers = append(writers, os.Stdout)
	}
	if out.File.Enabled {
		writers = append(writers, &lumberjack.Logger{
			Filename:   out.File.Path,
			MaxSize:    out.File.MaxSizeMB,
			MaxBackups: out.File.MaxBackups,
			MaxAge:     out.File.MaxAgeDays,
			Compress:   out.File.Compress,
		})
	}

	var handlers []slog.Handler
	if len(writers) > 0 {
		w := io.MultiWriter(writers...)
		opts := &slog.HandlerOptions{Level: level, AddSource: isDev}
		if strings.EqualFold(cfg.Logging.Format, "json") || !isDev {
			handlers = append(handlers, slog.NewJSONHandler(w, opts))
		} else {
			handlers = append(handlers, slog.NewTextHandler(w, opts))
		}
	}
	if out.Loki.Enabled {
		handlers = append(handlers, newLokiHandler(cfg, level))
	}

	return slog.New(fanOut(handlers...)).With(
		slog.String("service", cfg.Observability.ServiceName),
		slog.String("version", cfg.Observability.ServiceVersion),
		slog.String("env", cfg.Server.Environment),
	)
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

package logger

import (
	"io"
	"log/slog"
	"os"
	"time"

	"station-booking/internal/pkg/config"

	"github.com/gin-gonic/gin"
)

// New builds the process logger and installs it as the slog default.
// Release mode writes JSON; other gin modes write text.
func New(cfg config.LogConfig) *slog.Logger {
	logger := slog.New(newHandler(os.Stdout, cfg, gin.Mode() == gin.ReleaseMode))
	slog.SetDefault(logger)
	return logger
}

func newHandler(w io.Writer, cfg config.LogConfig, asJSON bool) slog.Handler {
	zone := time.FixedZone(cfg.TimeZone, cfg.TimeZoneOffset)
	opts := &slog.HandlerOptions{
		Level: ParseLevel(cfg.Level),
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if a.Key != slog.TimeKey {
				return a
			}
			if t, ok := a.Value.Any().(time.Time); ok {
				a.Value = slog.StringValue(t.In(zone).Format(cfg.TimeFormat))
			}
			return a
		},
	}
	if asJSON {
		return slog.NewJSONHandler(w, opts)
	}
	return slog.NewTextHandler(w, opts)
}

// ParseLevel accepts debug/info/warn/error in any case; anything else is info.
func ParseLevel(s string) slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}
	return lvl
}

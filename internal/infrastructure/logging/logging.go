// Package logging builds the zerolog logger of the engine and adapts it to
// the application's context logger.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/ShakaofCarthage/empire-engine/internal/application/common"
	"github.com/ShakaofCarthage/empire-engine/internal/infrastructure/config"
)

// New builds a logger from the configuration. The returned closer releases
// the log file and is a no-op for stdout and stderr.
func New(cfg config.LoggingConfig) (zerolog.Logger, io.Closer, error) {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}

	var out io.Writer
	closer := io.Closer(nopCloser{})
	switch cfg.Output {
	case "", "stdout":
		out = os.Stdout
	case "stderr":
		out = os.Stderr
	case "file":
		f, err := os.OpenFile(cfg.FilePath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			return zerolog.Nop(), nil, fmt.Errorf("failed to open log file: %w", err)
		}
		out, closer = f, f
	default:
		return zerolog.Nop(), nil, fmt.Errorf("unsupported log output: %s", cfg.Output)
	}

	if cfg.Format == "console" {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339, NoColor: cfg.Output == "file"}
	}

	ctx := zerolog.New(out).Level(level).With().Timestamp()
	if cfg.IncludeCaller {
		ctx = ctx.Caller()
	}
	return ctx.Logger(), closer, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// TurnLogger implements common.Logger on top of zerolog
type TurnLogger struct {
	zl zerolog.Logger
}

// NewTurnLogger adapts a zerolog logger to common.Logger
func NewTurnLogger(zl zerolog.Logger) *TurnLogger {
	return &TurnLogger{zl: zl}
}

// With returns a logger carrying an extra field on every entry
func (l *TurnLogger) With(key string, value interface{}) *TurnLogger {
	return &TurnLogger{zl: l.zl.With().Interface(key, value).Logger()}
}

// Log writes one entry. Unknown levels are logged at info.
func (l *TurnLogger) Log(level, message string, metadata map[string]interface{}) {
	var event *zerolog.Event
	switch strings.ToUpper(level) {
	case common.LevelDebug:
		event = l.zl.Debug()
	case common.LevelWarning:
		event = l.zl.Warn()
	case common.LevelError:
		event = l.zl.Error()
	default:
		event = l.zl.Info()
	}
	event.Fields(metadata).Msg(message)
}

package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/tracelog"
	"github.com/rs/zerolog"
)

// pgxLogger adapts zerolog.Logger to pgx's tracelog interface.
// Only levels are translated; the statement text, bound args and timing become fields.
type pgxLogger struct {
	logger zerolog.Logger
}

// newPgxLogger builds a child logger tagged component=pgx so SQL noise stays filterable.
func newPgxLogger(logger zerolog.Logger) *pgxLogger {
	return &pgxLogger{logger: logger.With().Str("component", "pgx").Logger()}
}

// Log implements tracelog.Logger.
func (l *pgxLogger) Log(_ context.Context, level tracelog.LogLevel, msg string, data map[string]any) {
	if level == tracelog.LogLevelNone {
		return
	}

	var event *zerolog.Event
	switch level {
	case tracelog.LogLevelTrace:
		event = l.logger.Trace()
	case tracelog.LogLevelDebug:
		event = l.logger.Debug()
	case tracelog.LogLevelInfo:
		event = l.logger.Info()
	case tracelog.LogLevelWarn:
		event = l.logger.Warn()
	case tracelog.LogLevelError:
		event = l.logger.Error()
	default:
		event = l.logger.Info().Str("pgx_log_level", level.String())
	}
	if !event.Enabled() {
		return
	}

	fields := make(map[string]any, len(data))
	for k, v := range data {
		fields[k] = v
	}
	if s, ok := fields["sql"].(string); ok {
		event = event.Str("sql", s)
		delete(fields, "sql")
	}
	if args, ok := fields["args"]; ok {
		event = event.Interface("args", args)
		delete(fields, "args")
	}
	if d, ok := fields["time"].(time.Duration); ok {
		event = event.Dur("took", d)
		delete(fields, "time")
	}
	if len(fields) > 0 {
		event = event.Fields(fields)
	}
	event.Msg(msg)
}

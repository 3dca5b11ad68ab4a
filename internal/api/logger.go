package api

import (
	"fmt"
	"log/slog"
	"strings"
)

// restyLogger sends resty's own diagnostics to the command's slog logger
// instead of resty's default stderr logger.
type restyLogger struct {
	l *slog.Logger
}

func (r restyLogger) Errorf(format string, v ...any) {
	r.l.Error(restyMessage(format, v))
}

func (r restyLogger) Warnf(format string, v ...any) {
	r.l.Warn(restyMessage(format, v))
}

func (r restyLogger) Debugf(format string, v ...any) {
	r.l.Debug(restyMessage(format, v))
}

func restyMessage(format string, v []any) string {
	return strings.TrimSpace(strings.TrimPrefix(fmt.Sprintf(format, v...), "RESTY "))
}

package logging

import (
	"log/slog"
	"time"
)

type Attr = slog.Attr

func Duration(key string, value time.Duration) Attr { return slog.Duration(key, value) }

func Int(key string, value int) Attr { return slog.Int(key, value) }

func Int64(key string, value int64) Attr { return slog.Int64(key, value) }

func String(key string, value string) Attr { return slog.String(key, value) }

func Error(err error) Attr {
	if err == nil {
		return slog.String("error", "<nil>")
	}
	return slog.Any("error", err)
}

// Viewer tags a record with a viewer identity.
func Viewer(id string) Attr { return slog.String(FieldViewerID, id) }

// Batch summarizes a line batch as its size and first line. The first line
// is omitted for empty batches.
func Batch(lines []string) []Attr {
	attrs := []Attr{slog.Int(FieldLines, len(lines))}
	if len(lines) > 0 {
		attrs = append(attrs, slog.String(FieldFirstLine, lines[0]))
	}
	return attrs
}

// Args converts attributes into the variadic form slog's Info/Warn expect.
func Args(attrs ...Attr) []any {
	args := make([]any, 0, len(attrs))
	for _, attr := range attrs {
		args = append(args, attr)
	}
	return args
}

func NewNop() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// NewComponentLogger tags logger with component. A nil logger discards.
func NewComponentLogger(logger *slog.Logger, component string) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	return logger.With(String(FieldComponent, component))
}

// Warning carries the operator context every warning record must have.
type Warning struct {
	EventType string
	Hint      string
	Impact    string
}

// WarnWithContext logs msg at warn level with the event_type, error_hint and
// impact fields of w. Empty hint or impact fall back to generic text.
func WarnWithContext(logger *slog.Logger, msg string, w Warning, attrs ...Attr) {
	if logger == nil {
		return
	}
	hint := w.Hint
	if hint == "" {
		hint = "check logs for details"
	}
	impact := w.Impact
	if impact == "" {
		impact = "operation continued with warnings"
	}
	attrs = append(attrs,
		String(FieldEventType, w.EventType),
		String(FieldErrorHint, hint),
		String(FieldImpact, impact),
	)
	logger.Warn(msg, Args(attrs...)...)
}

package log

import (
	"context"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"unicode/utf8"
)

// MaxValueLen is the default maximum length, in runes, of a string
// attribute value. Longer values are cut and suffixed with the number of
// runes dropped.
const MaxValueLen = 200

// CompactHandler wraps an slog.Handler and truncates long string values.
// Newlines inside values are flattened so every record stays on one line.
type CompactHandler struct {
	// handler is the underlying slog handler that receives compacted records.
	handler slog.Handler

	// maxLen is the truncation threshold in runes.
	maxLen int
}

// NewCompactHandler creates a CompactHandler wrapping the given handler.
// If handler is nil, slog.Default().Handler() is used. A non-positive maxLen
// selects MaxValueLen.
func NewCompactHandler(handler slog.Handler, maxLen int) *CompactHandler {
	if handler == nil {
		handler = slog.Default().Handler()
	}
	if maxLen <= 0 {
		maxLen = MaxValueLen
	}
	return &CompactHandler{handler: handler, maxLen: maxLen}
}

// Enabled reports whether the handler handles records at the given level.
func (h *CompactHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

// Handle compacts the record's attributes and passes it on.
func (h *CompactHandler) Handle(ctx context.Context, r slog.Record) error {
	compacted := slog.NewRecord(r.Time, r.Level, r.Message, r.PC)

	r.Attrs(func(a slog.Attr) bool {
		compacted.AddAttrs(h.compactAttr(a))
		return true
	})

	return h.handler.Handle(ctx, compacted)
}

// WithAttrs returns a new handler with the given attributes added.
func (h *CompactHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	compacted := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		compacted[i] = h.compactAttr(a)
	}
	return &CompactHandler{handler: h.handler.WithAttrs(compacted), maxLen: h.maxLen}
}

// WithGroup returns a new handler with the given group name.
func (h *CompactHandler) WithGroup(name string) slog.Handler {
	return &CompactHandler{handler: h.handler.WithGroup(name), maxLen: h.maxLen}
}

// compactAttr compacts a single attribute, recursing into groups.
func (h *CompactHandler) compactAttr(a slog.Attr) slog.Attr {
	switch a.Value.Kind() {
	case slog.KindGroup:
		attrs := a.Value.Group()
		compacted := make([]slog.Attr, len(attrs))
		for i, ga := range attrs {
			compacted[i] = h.compactAttr(ga)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(compacted...)}
	case slog.KindString:
		return slog.String(a.Key, Truncate(a.Value.String(), h.maxLen))
	default:
		return a
	}
}

// Truncate flattens newlines in s and cuts it to maxLen runes.
func Truncate(s string, maxLen int) string {
	if strings.ContainsAny(s, "\r\n") {
		s = strings.Join(strings.Fields(s), " ")
	}
	n := utf8.RuneCountInString(s)
	if n <= maxLen {
		return s
	}
	runes := []rune(s)
	return string(runes[:maxLen]) + "…(+" + strconv.Itoa(n-maxLen) + ")"
}

// NewLogger creates the application logger writing text records to w.
// verbose selects slog.LevelDebug; otherwise only warnings and errors are
// logged.
func NewLogger(w io.Writer, verbose bool) *slog.Logger {
	return slog.New(NewCompactHandler(slog.NewTextHandler(w, handlerOptions(verbose)), MaxValueLen))
}

// NewJSONLogger is NewLogger with JSON records, for log aggregation.
func NewJSONLogger(w io.Writer, verbose bool) *slog.Logger {
	return slog.New(NewCompactHandler(slog.NewJSONHandler(w, handlerOptions(verbose)), MaxValueLen))
}

func handlerOptions(verbose bool) *slog.HandlerOptions {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return &slog.HandlerOptions{Level: level}
}

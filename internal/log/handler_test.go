package log

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestTruncate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  string
		maxLen int
		want   string
	}{
		{name: "short value unchanged", input: "hello", maxLen: 10, want: "hello"},
		{name: "exact length unchanged", input: "hello", maxLen: 5, want: "hello"},
		{name: "long value cut", input: "hello world", maxLen: 5, want: "hello…(+6)"},
		{name: "multibyte runes counted once", input: "ããããã", maxLen: 3, want: "ããã…(+2)"},
		{name: "newlines flattened", input: "a\n  b\r\nc", maxLen: 20, want: "a b c"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Truncate(tt.input, tt.maxLen); got != tt.want {
				t.Errorf("Truncate(%q, %d) = %q, want %q", tt.input, tt.maxLen, got, tt.want)
			}
		})
	}
}

func TestCompactHandler(t *testing.T) {
	t.Parallel()

	t.Run("truncates string attributes", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(NewCompactHandler(slog.NewJSONHandler(&buf, nil), 4))
		logger.Info("resource", "content", "abcdefgh", "count", 12345678)

		var rec map[string]any
		if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
			t.Fatalf("invalid JSON: %v", err)
		}
		if rec["content"] != "abcd…(+4)" {
			t.Errorf("unexpected content %v", rec["content"])
		}
		if rec["count"] != float64(12345678) {
			t.Errorf("non-string attributes must be untouched, got %v", rec["count"])
		}
	})

	t.Run("truncates inside groups and WithAttrs", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(NewCompactHandler(slog.NewTextHandler(&buf, nil), 3)).
			With("path", "abcdef").
			WithGroup("g")
		logger.Info("msg", slog.Group("inner", slog.String("v", "xyzxyz")))

		out := buf.String()
		if !strings.Contains(out, "path=abc…(+3)") {
			t.Errorf("expected truncated path, got %s", out)
		}
		if !strings.Contains(out, "g.inner.v=xyz…(+3)") {
			t.Errorf("expected truncated group value, got %s", out)
		}
	})

	t.Run("defaults", func(t *testing.T) {
		t.Parallel()

		h := NewCompactHandler(nil, 0)
		if h.handler == nil {
			t.Error("expected default handler")
		}
		if h.maxLen != MaxValueLen {
			t.Errorf("expected maxLen %d, got %d", MaxValueLen, h.maxLen)
		}
	})
}

func TestNewLogger(t *testing.T) {
	t.Parallel()

	t.Run("quiet logger drops info", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		NewLogger(&buf, false).Info("hidden")
		if buf.Len() != 0 {
			t.Errorf("expected no output, got %q", buf.String())
		}
	})

	t.Run("verbose logger emits debug", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		NewJSONLogger(&buf, true).Debug("shown")
		if !strings.Contains(buf.String(), `"msg":"shown"`) {
			t.Errorf("expected debug record, got %q", buf.String())
		}
	})
}

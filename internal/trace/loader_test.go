package trace

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDecode(t *testing.T) {
	t.Parallel()

	t.Run("valid trace", func(t *testing.T) {
		t.Parallel()

		input := `{
			"metadata": {
				"startTime": "2026-01-26T10:12:09.000Z",
				"modifications": {"initialBreadcrumb": {"window": {"min": 1, "max": 1000001, "range": 1000000}}},
				"resources": [{"url": "https://example.com/", "content": "abc"}]
			},
			"traceEvents": [{"name": "firstContentfulPaint", "ts": 12}]
		}`
		tr, err := Decode(strings.NewReader(input))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if r, _ := tr.Range(); r != 1000000 {
			t.Errorf("expected range 1000000, got %v", r)
		}
		if tr.EventCount() != 1 {
			t.Errorf("expected 1 event, got %d", tr.EventCount())
		}
		if string(tr.Metadata.StartTime) != `"2026-01-26T10:12:09.000Z"` {
			t.Errorf("unexpected startTime %s", tr.Metadata.StartTime)
		}
	})

	t.Run("missing resources is an empty list", func(t *testing.T) {
		t.Parallel()

		input := `{"metadata": {"modifications": {"initialBreadcrumb": {"window": {"range": 5}}}}, "traceEvents": []}`
		tr, err := Decode(strings.NewReader(input))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if tr.ResourceCount() != 0 || tr.ResourceBytes() != 0 {
			t.Errorf("expected no resources, got %d (%d bytes)", tr.ResourceCount(), tr.ResourceBytes())
		}
	})

	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{name: "not json", input: `not json`, wantErr: ErrMalformed},
		{name: "array format", input: `[{"name": "x"}]`, wantErr: ErrMalformed},
		{name: "missing range", input: `{"metadata": {}, "traceEvents": []}`, wantErr: ErrMissingRange},
		{name: "missing events", input: `{"metadata": {"modifications": {"initialBreadcrumb": {"window": {"range": 5}}}}}`, wantErr: ErrMissingEvents},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := Decode(strings.NewReader(tt.input))
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestReadFile(t *testing.T) {
	t.Parallel()

	t.Run("records path and file size", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := writeTrace(t, dir, "trace.json", traceDoc(1000, namedEvents("a", "b"), nil))

		info, err := os.Stat(path)
		if err != nil {
			t.Fatal(err)
		}

		tr, err := ReadFile(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if tr.Path != path {
			t.Errorf("expected path %q, got %q", path, tr.Path)
		}
		if tr.FileSize != info.Size() {
			t.Errorf("expected size %d, got %d", info.Size(), tr.FileSize)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		_, err := ReadFile(filepath.Join(t.TempDir(), "nope.json"))
		if !errors.Is(err, os.ErrNotExist) {
			t.Errorf("expected not-exist error, got %v", err)
		}
	})
}

func TestLoadPair(t *testing.T) {
	t.Parallel()

	t.Run("loads both traces", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		before := writeTrace(t, dir, "before.json", traceDoc(2000, namedEvents("a"), nil))
		after := writeTrace(t, dir, "after.json", traceDoc(1000, nil, nil))

		b, a, err := LoadPair(context.Background(), before, after)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if b.Path != before || a.Path != after {
			t.Errorf("traces returned in wrong order: %q, %q", b.Path, a.Path)
		}
	})

	t.Run("fails when one side is malformed", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		before := writeTrace(t, dir, "before.json", traceDoc(2000, nil, nil))
		after := filepath.Join(dir, "after.json")
		if err := os.WriteFile(after, []byte("{"), 0600); err != nil {
			t.Fatal(err)
		}

		b, a, err := LoadPair(context.Background(), before, after)
		if !errors.Is(err, ErrMalformed) {
			t.Errorf("expected ErrMalformed, got %v", err)
		}
		if b != nil || a != nil {
			t.Error("expected no traces on failure")
		}
	})
}

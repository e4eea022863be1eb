package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/marcosnunesmbs/portfolio/internal/model"
	"github.com/xuri/excelize/v2"
)

// createTestSummary creates a summary with sample data for testing.
func createTestSummary() *model.TraceSummary {
	return &model.TraceSummary{
		Duration: model.DurationSummary{
			Before: 900000, After: 720000,
			BeforeMs: 900, AfterMs: 720,
			Improvement: 20,
		},
		Events: model.EventSummary{Before: 400, After: 300, Reduction: 25},
		Resources: model.ResourceSummary{
			Before: 4, After: 2,
			BeforeSizeKB: 8, AfterSizeKB: 2,
			SizeReduction: 75,
		},
		FileSize: model.FileSizeSummary{BeforeMB: 2, AfterMB: 1.5, Reduction: 25},
		Timestamps: model.TimestampSummary{
			Before: []byte(`"2026-01-26T10:12:09.000Z"`),
			After:  []byte(`"2026-01-26T12:26:13.000Z"`),
		},
		BeforePath:          "before.json",
		AfterPath:           "after.json",
		BeforeResourceBytes: 8192,
		AfterResourceBytes:  2048,
		BeforeFileBytes:     2 * 1024 * 1024,
		AfterFileBytes:      1536 * 1024,
		BeforeVitals: model.WebVitals{
			FCP:          &model.TraceEvent{Name: "firstContentfulPaint", Ts: 123450},
			LayoutShifts: 3,
		},
	}
}

// failingWriter always returns an error.
type failingWriter struct{}

func (failingWriter) Write(*model.TraceSummary) (int, error) {
	return 0, errors.New("boom")
}

func TestJSONWriter(t *testing.T) {
	t.Parallel()

	t.Run("pretty prints analysis document", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewJSONWriter(&buf, WithPrettyPrint()).Write(createTestSummary()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		want := `{
  "duration": {
    "before": 900000,
    "after": 720000,
    "beforeMs": 900,
    "afterMs": 720,
    "improvement": 20
  },
  "events": {
    "before": 400,
    "after": 300,
    "reduction": 25
  },
  "resources": {
    "before": 4,
    "after": 2,
    "beforeSizeKB": 8,
    "afterSizeKB": 2,
    "sizeReduction": 75
  },
  "fileSize": {
    "beforeMB": 2,
    "afterMB": 1.5,
    "reduction": 25
  },
  "timestamps": {
    "before": "2026-01-26T10:12:09.000Z",
    "after": "2026-01-26T12:26:13.000Z"
  }
}
`
		if buf.String() != want {
			t.Errorf("unexpected JSON:\n%s", buf.String())
		}
	})

	t.Run("compact output", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewJSONWriter(&buf).Write(createTestSummary()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if strings.Count(buf.String(), "\n") != 1 {
			t.Errorf("expected single line, got %q", buf.String())
		}

		var decoded map[string]any
		if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
			t.Fatalf("output is not valid JSON: %v", err)
		}
		for _, key := range []string{"duration", "events", "resources", "fileSize", "timestamps"} {
			if _, ok := decoded[key]; !ok {
				t.Errorf("expected section %q", key)
			}
		}
		if len(decoded) != 5 {
			t.Errorf("expected exactly 5 sections, got %d", len(decoded))
		}
	})

	t.Run("missing start times leave an empty timestamps object", func(t *testing.T) {
		t.Parallel()

		s := createTestSummary()
		s.Timestamps = model.TimestampSummary{}

		var buf bytes.Buffer
		if _, err := NewJSONWriter(&buf).Write(s); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(buf.String(), `"timestamps":{}`) {
			t.Errorf("expected empty timestamps object, got %s", buf.String())
		}
	})

	t.Run("non-finite percentages are written as null", func(t *testing.T) {
		t.Parallel()

		s := createTestSummary()
		s.Events.Reduction = model.Percent(math.Inf(-1))
		s.Duration.Improvement = model.Percent(math.NaN())

		var buf bytes.Buffer
		if _, err := NewJSONWriter(&buf, WithPrettyPrint()).Write(s); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for _, want := range []string{`"improvement": null`, `"reduction": null`, `"reduction": 25`} {
			if !strings.Contains(buf.String(), want) {
				t.Errorf("expected %s in:\n%s", want, buf.String())
			}
		}
	})
}

func TestSimpleWriter(t *testing.T) {
	t.Parallel()

	t.Run("writes every section", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewSimpleWriter(&buf).Write(createTestSummary()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		for _, want := range []string{
			"=== BASIC METRICS ===",
			"BEFORE - Total duration: 900.00 ms",
			"AFTER - Total duration: 720.00 ms",
			"Improvement: 20.00%",
			"BEFORE - Total events: 400",
			"Event reduction: 25.00%",
			"BEFORE - Total resource size: 8.00 KB",
			"Size reduction: 75.00%",
			"BEFORE: 2.00 MB",
			"AFTER: 1.50 MB",
			"=== WEB VITALS ===",
			"FCP: ts 123.45 ms | LCP: not found | Layout shifts: 3",
		} {
			if !strings.Contains(output, want) {
				t.Errorf("expected output to contain %q\n%s", want, output)
			}
		}
	})

	t.Run("omits size reduction without baseline", func(t *testing.T) {
		t.Parallel()

		s := createTestSummary()
		s.BeforeResourceBytes = 0
		s.Resources.SizeReduction = 0

		var buf bytes.Buffer
		if _, err := NewSimpleWriter(&buf, WithVitals(false)).Write(s); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if strings.Contains(buf.String(), "Size reduction") {
			t.Error("size reduction should be omitted")
		}
		if strings.Contains(buf.String(), "WEB VITALS") {
			t.Error("vitals should be omitted")
		}
	})
}

func TestMarkdownWriter(t *testing.T) {
	t.Parallel()

	t.Run("writes tables and tip", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewMarkdownWriter(&buf).Write(createTestSummary()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		for _, want := range []string{
			"# Trace Comparison",
			"## Metrics",
			"## Web Vitals",
			"`before.json`",
			"20.00%",
			"[!TIP]",
		} {
			if !strings.Contains(output, want) {
				t.Errorf("expected output to contain %q\n%s", want, output)
			}
		}
	})

	t.Run("warns on regression", func(t *testing.T) {
		t.Parallel()

		s := createTestSummary()
		s.Duration.Improvement = -12.5

		var buf bytes.Buffer
		if _, err := NewMarkdownWriter(&buf).Write(s); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(buf.String(), "[!WARNING]") {
			t.Errorf("expected warning alert\n%s", buf.String())
		}
	})

	t.Run("cautions on zero baseline", func(t *testing.T) {
		t.Parallel()

		s := createTestSummary()
		s.FileSize.Reduction = model.Percent(math.NaN())

		var buf bytes.Buffer
		if _, err := NewMarkdownWriter(&buf).Write(s); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(buf.String(), "fileSize.reduction") {
			t.Errorf("expected caution naming the field\n%s", buf.String())
		}
		if !strings.Contains(buf.String(), "n/a") {
			t.Errorf("expected n/a change cell\n%s", buf.String())
		}
	})
}

func TestExcelWriter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	n, err := NewExcelWriter(&buf).Write(createTestSummary())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != buf.Len() {
		t.Errorf("reported %d bytes, buffer holds %d", n, buf.Len())
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("failed to open workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(ExcelSheetName)
	if err != nil {
		t.Fatalf("failed to read rows: %v", err)
	}
	if len(rows) != 8 {
		t.Fatalf("expected 8 rows, got %d", len(rows))
	}
	if rows[0][0] != "Metric" || rows[3][0] != "Events" || rows[3][1] != "400" {
		t.Errorf("unexpected rows: %v", rows)
	}
}

func TestMultiWriter(t *testing.T) {
	t.Parallel()

	t.Run("writes to all writers", func(t *testing.T) {
		t.Parallel()

		var a, b bytes.Buffer
		mw := NewMultiWriter(NewJSONWriter(&a), NewSimpleWriter(&b))
		n, err := mw.Write(createTestSummary())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if n != a.Len()+b.Len() {
			t.Errorf("expected %d bytes, got %d", a.Len()+b.Len(), n)
		}
	})

	t.Run("stops on first error", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		mw := NewMultiWriter(failingWriter{}, NewJSONWriter(&buf))
		if _, err := mw.Write(createTestSummary()); err == nil {
			t.Error("expected error")
		}
		if buf.Len() != 0 {
			t.Error("second writer should not run")
		}
	})
}

func TestWriteFile(t *testing.T) {
	t.Parallel()

	jsonWriter := func(w io.Writer) Writer { return NewJSONWriter(w, WithPrettyPrint()) }

	t.Run("overwrites with identical content on rerun", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "analysis-data.json")
		if err := os.WriteFile(path, []byte("stale"), 0600); err != nil {
			t.Fatal(err)
		}

		if err := WriteFile(path, createTestSummary(), jsonWriter); err != nil {
			t.Fatalf("first write: %v", err)
		}
		first, err := os.ReadFile(path)
		if err != nil {
			t.Fatal(err)
		}
		if err := WriteFile(path, createTestSummary(), jsonWriter); err != nil {
			t.Fatalf("second write: %v", err)
		}
		second, err := os.ReadFile(path)
		if err != nil {
			t.Fatal(err)
		}

		if !bytes.Equal(first, second) {
			t.Error("expected byte-identical output")
		}
		if bytes.Contains(first, []byte("stale")) {
			t.Error("expected previous content to be replaced")
		}
	})

	t.Run("failed write keeps previous file", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := filepath.Join(dir, "analysis-data.json")
		if err := os.WriteFile(path, []byte("previous"), 0600); err != nil {
			t.Fatal(err)
		}

		failing := func(io.Writer) Writer { return failingWriter{} }
		if err := WriteFile(path, createTestSummary(), failing); err == nil {
			t.Fatal("expected error")
		}

		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatal(err)
		}
		if string(data) != "previous" {
			t.Errorf("expected previous content, got %q", data)
		}

		entries, err := os.ReadDir(dir)
		if err != nil {
			t.Fatal(err)
		}
		if len(entries) != 1 {
			t.Errorf("expected temp file to be removed, found %d entries", len(entries))
		}
	})
}

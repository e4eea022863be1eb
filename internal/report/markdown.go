package report

import (
	"io"
	"strconv"
	"strings"

	"github.com/marcosnunesmbs/portfolio/internal/model"
	"github.com/nao1215/markdown"
)

// MarkdownWriter outputs the summary as a GitHub-flavored Markdown report.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the summary in Markdown format.
func (w *MarkdownWriter) Write(s *model.TraceSummary) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, s)
	w.writeMetrics(md, s)
	w.writeVitals(md, s)
	w.writeAlert(md, s)

	return len(md.String()), md.Build()
}

// writeHeader writes the title and the compared files.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, s *model.TraceSummary) {
	md.H1("Trace Comparison")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Before", "After"},
		Rows: [][]string{
			{"File", codeOrDash(s.BeforePath), codeOrDash(s.AfterPath)},
			{"Start time", rawOrDash(s.Timestamps.Before), rawOrDash(s.Timestamps.After)},
		},
	})
	md.PlainText("")
}

// writeMetrics writes the main metric table.
func (w *MarkdownWriter) writeMetrics(md *markdown.Markdown, s *model.TraceSummary) {
	md.H2("Metrics")
	md.PlainText("")

	sizeChange := "-"
	if s.BeforeResourceBytes > 0 {
		sizeChange = formatPercent(s.Resources.SizeReduction)
	}

	md.Table(markdown.TableSet{
		Header: []string{"Metric", "Before", "After", "Change"},
		Rows: [][]string{
			{"Duration (ms)", formatFloat(s.Duration.BeforeMs), formatFloat(s.Duration.AfterMs), formatPercent(s.Duration.Improvement)},
			{"Events", strconv.Itoa(s.Events.Before), strconv.Itoa(s.Events.After), formatPercent(s.Events.Reduction)},
			{"Resources", strconv.Itoa(s.Resources.Before), strconv.Itoa(s.Resources.After), "-"},
			{"Resource size (KB)", formatFloat(s.Resources.BeforeSizeKB), formatFloat(s.Resources.AfterSizeKB), sizeChange},
			{"File size (MB)", formatFloat(s.FileSize.BeforeMB), formatFloat(s.FileSize.AfterMB), formatPercent(s.FileSize.Reduction)},
		},
	})
	md.PlainText("")
}

// writeVitals writes the Web Vitals table.
func (w *MarkdownWriter) writeVitals(md *markdown.Markdown, s *model.TraceSummary) {
	md.H2("Web Vitals")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Event", "Before", "After"},
		Rows: [][]string{
			{"First Contentful Paint", eventCell(s.BeforeVitals.FCP), eventCell(s.AfterVitals.FCP)},
			{"Largest Contentful Paint", eventCell(s.BeforeVitals.LCP), eventCell(s.AfterVitals.LCP)},
			{"Layout shifts", strconv.Itoa(s.BeforeVitals.LayoutShifts), strconv.Itoa(s.AfterVitals.LayoutShifts)},
		},
	})
	md.PlainText("")
}

// writeAlert summarizes the outcome.
func (w *MarkdownWriter) writeAlert(md *markdown.Markdown, s *model.TraceSummary) {
	switch nonFinite := s.NonFinite(); {
	case len(nonFinite) > 0:
		md.Cautionf("Zero baseline in the before trace: %s could not be computed.", strings.Join(nonFinite, ", "))
	case s.Duration.Improvement > 0:
		md.Tip("The after trace is " + formatPercent(s.Duration.Improvement) + " shorter.")
	case s.Duration.Improvement < 0:
		md.Warning("The after trace is " + formatPercent(-s.Duration.Improvement) + " longer.")
	default:
		md.Note("Both traces have the same duration.")
	}
	md.PlainText("")
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func formatPercent(v model.Percent) string {
	if !v.IsFinite() {
		return "n/a"
	}
	return formatFloat(float64(v)) + "%"
}

func eventCell(e *model.TraceEvent) string {
	if e == nil {
		return "not found"
	}
	return "ts " + formatFloat(e.Ts/1000) + " ms"
}

func codeOrDash(s string) string {
	if s == "" {
		return "-"
	}
	return "`" + s + "`"
}

func rawOrDash(raw []byte) string {
	if len(raw) == 0 {
		return "-"
	}
	return strings.Trim(string(raw), `"`)
}

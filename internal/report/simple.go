package report

import (
	"io"
	"strings"

	"github.com/marcosnunesmbs/portfolio/internal/model"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// SimpleWriter outputs the human-readable console report.
// Numbers are grouped with the printer's locale (e.g. "1,234.50 ms").
type SimpleWriter struct {
	baseWriter

	printer *message.Printer

	// showVitals adds the Web Vitals section.
	showVitals bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithLanguage formats numbers for the given language.
func WithLanguage(tag language.Tag) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.printer = message.NewPrinter(tag)
	}
}

// WithVitals toggles the Web Vitals section.
func WithVitals(show bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.showVitals = show
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter: newBaseWriter(output),
		printer:    message.NewPrinter(language.English),
		showVitals: true,
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs the summary as console lines.
func (w *SimpleWriter) Write(s *model.TraceSummary) (int, error) {
	var sb strings.Builder

	w.writeDuration(&sb, s)
	w.writeEvents(&sb, s)
	w.writeResources(&sb, s)
	w.writeFileSize(&sb, s)
	if w.showVitals {
		w.writeVitals(&sb, s)
	}

	return io.WriteString(w.output, sb.String())
}

func (w *SimpleWriter) writeDuration(sb *strings.Builder, s *model.TraceSummary) {
	sb.WriteString("\n=== BASIC METRICS ===\n")
	sb.WriteString(w.printer.Sprintf("BEFORE - Total duration: %.2f ms\n", s.Duration.Before/1000))
	sb.WriteString(w.printer.Sprintf("AFTER - Total duration: %.2f ms\n", s.Duration.After/1000))
	sb.WriteString(w.printer.Sprintf("Improvement: %.2f%%\n", float64(s.Duration.Improvement)))
}

func (w *SimpleWriter) writeEvents(sb *strings.Builder, s *model.TraceSummary) {
	sb.WriteString("\n=== EVENT ANALYSIS ===\n")
	sb.WriteString(w.printer.Sprintf("BEFORE - Total events: %d\n", s.Events.Before))
	sb.WriteString(w.printer.Sprintf("AFTER - Total events: %d\n", s.Events.After))
	sb.WriteString(w.printer.Sprintf("Event reduction: %.2f%%\n", float64(s.Events.Reduction)))
}

func (w *SimpleWriter) writeResources(sb *strings.Builder, s *model.TraceSummary) {
	sb.WriteString("\n=== LOADED RESOURCES ===\n")
	sb.WriteString(w.printer.Sprintf("BEFORE - Total resources: %d\n", s.Resources.Before))
	sb.WriteString(w.printer.Sprintf("AFTER - Total resources: %d\n", s.Resources.After))
	sb.WriteString(w.printer.Sprintf("BEFORE - Total resource size: %.2f KB\n", float64(s.BeforeResourceBytes)/1024))
	sb.WriteString(w.printer.Sprintf("AFTER - Total resource size: %.2f KB\n", float64(s.AfterResourceBytes)/1024))
	// Printed only when there is a baseline to compare against.
	if s.BeforeResourceBytes > 0 {
		sb.WriteString(w.printer.Sprintf("Size reduction: %.2f%%\n", float64(s.Resources.SizeReduction)))
	}
}

func (w *SimpleWriter) writeFileSize(sb *strings.Builder, s *model.TraceSummary) {
	sb.WriteString("\n=== TRACE FILE SIZE ===\n")
	sb.WriteString(w.printer.Sprintf("BEFORE: %.2f MB\n", float64(s.BeforeFileBytes)/1024/1024))
	sb.WriteString(w.printer.Sprintf("AFTER: %.2f MB\n", float64(s.AfterFileBytes)/1024/1024))
	sb.WriteString(w.printer.Sprintf("Reduction: %.2f%%\n", float64(s.FileSize.Reduction)))
}

func (w *SimpleWriter) writeVitals(sb *strings.Builder, s *model.TraceSummary) {
	sb.WriteString("\n=== WEB VITALS ===\n")
	sb.WriteString("BEFORE - " + w.formatVitals(s.BeforeVitals) + "\n")
	sb.WriteString("AFTER - " + w.formatVitals(s.AfterVitals) + "\n")
}

// formatVitals renders one side's vitals on a single line.
func (w *SimpleWriter) formatVitals(v model.WebVitals) string {
	return w.printer.Sprintf("FCP: %s | LCP: %s | Layout shifts: %d",
		w.formatEvent(v.FCP), w.formatEvent(v.LCP), v.LayoutShifts)
}

func (w *SimpleWriter) formatEvent(e *model.TraceEvent) string {
	if e == nil {
		return "not found"
	}
	return w.printer.Sprintf("ts %.2f ms", e.Ts/1000)
}

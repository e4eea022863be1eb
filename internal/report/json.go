package report

import (
	"encoding/json"
	"io"

	"github.com/marcosnunesmbs/portfolio/internal/model"
)

// JSONWriter outputs the summary as the analysis-data.json document.
// A percentage that could not be computed from a zero baseline is written as
// null.
type JSONWriter struct {
	baseWriter

	// indent enables pretty-printed JSON output.
	indent bool

	// indentPrefix is the prefix for each line in indented output.
	indentPrefix string

	// indentString is the indentation string (typically "  " or "\t").
	indentString string
}

// JSONWriterOption configures a JSONWriter.
type JSONWriterOption func(*JSONWriter)

// WithIndent enables pretty-printed JSON output.
func WithIndent(prefix, indent string) JSONWriterOption {
	return func(w *JSONWriter) {
		w.indent = true
		w.indentPrefix = prefix
		w.indentString = indent
	}
}

// WithPrettyPrint enables pretty-printed JSON with two-space indentation.
func WithPrettyPrint() JSONWriterOption {
	return WithIndent("", "  ")
}

// NewJSONWriter creates a JSONWriter that outputs to the given writer.
func NewJSONWriter(output io.Writer, opts ...JSONWriterOption) *JSONWriter {
	w := &JSONWriter{baseWriter: newBaseWriter(output)}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs the summary in JSON format followed by a newline.
func (w *JSONWriter) Write(summary *model.TraceSummary) (int, error) {
	var data []byte
	var err error

	if w.indent {
		data, err = json.MarshalIndent(summary, w.indentPrefix, w.indentString)
	} else {
		data, err = json.Marshal(summary)
	}
	if err != nil {
		return 0, err
	}

	data = append(data, '\n')

	return w.output.Write(data)
}

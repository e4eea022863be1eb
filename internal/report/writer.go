package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/marcosnunesmbs/portfolio/internal/model"
)

// Writer defines the interface for summary output.
type Writer interface {
	// Write outputs the summary to the configured destination.
	// Returns the number of bytes written and any error encountered.
	Write(summary *model.TraceSummary) (int, error)
}

// MultiWriter writes to multiple Writers in order.
type MultiWriter struct {
	writers []Writer
}

// NewMultiWriter creates a Writer that writes to all provided Writers.
func NewMultiWriter(writers ...Writer) *MultiWriter {
	return &MultiWriter{writers: writers}
}

// Write outputs the summary to all configured Writers.
// Returns the total bytes written across all writers.
// Stops on first error encountered.
func (m *MultiWriter) Write(summary *model.TraceSummary) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := w.Write(summary)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// baseWriter provides common functionality for report writers.
type baseWriter struct {
	output io.Writer
}

// newBaseWriter creates a baseWriter with the given output destination.
func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}

// WriteFile renders summary with the writer returned by newWriter into path.
// An existing file is overwritten. The file is only replaced once the
// writer succeeded, so a failed run leaves the previous output intact.
func WriteFile(path string, summary *model.TraceSummary, newWriter func(io.Writer) Writer) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".report-*")
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) //nolint:errcheck // no-op after a successful rename

	if _, err := newWriter(tmp).Write(summary); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to write report %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close report %s: %w", path, err)
	}
	if err := os.Chmod(tmpName, 0644); err != nil { //nolint:gosec // report files are meant to be shared
		return fmt.Errorf("failed to set report permissions: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("failed to replace report %s: %w", path, err)
	}
	return nil
}

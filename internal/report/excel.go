package report

import (
	"fmt"
	"io"

	"github.com/marcosnunesmbs/portfolio/internal/model"
	"github.com/xuri/excelize/v2"
)

// ExcelSheetName is the name of the metrics sheet.
const ExcelSheetName = "Comparison"

// ExcelWriter outputs the summary as a one-sheet .xlsx workbook.
type ExcelWriter struct {
	baseWriter
}

// NewExcelWriter creates an ExcelWriter that outputs to the given writer.
func NewExcelWriter(output io.Writer) *ExcelWriter {
	return &ExcelWriter{baseWriter: newBaseWriter(output)}
}

// Write outputs the workbook.
func (w *ExcelWriter) Write(s *model.TraceSummary) (int, error) {
	file := excelize.NewFile()
	defer file.Close()

	if err := file.SetSheetName(file.GetSheetName(0), ExcelSheetName); err != nil {
		return 0, fmt.Errorf("rename excel sheet: %w", err)
	}

	rows := [][]any{
		{"Metric", "Before", "After", "Change (%)"},
		{"Duration (us)", s.Duration.Before, s.Duration.After, percentCell(s.Duration.Improvement)},
		{"Duration (ms)", s.Duration.BeforeMs, s.Duration.AfterMs, percentCell(s.Duration.Improvement)},
		{"Events", s.Events.Before, s.Events.After, percentCell(s.Events.Reduction)},
		{"Resources", s.Resources.Before, s.Resources.After, ""},
		{"Resource size (KB)", s.Resources.BeforeSizeKB, s.Resources.AfterSizeKB, percentCell(s.Resources.SizeReduction)},
		{"File size (MB)", s.FileSize.BeforeMB, s.FileSize.AfterMB, percentCell(s.FileSize.Reduction)},
		{"Layout shifts", s.BeforeVitals.LayoutShifts, s.AfterVitals.LayoutShifts, ""},
	}

	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := file.SetSheetRow(ExcelSheetName, cell, &row); err != nil {
			return 0, fmt.Errorf("set excel row %s: %w", cell, err)
		}
	}

	n, err := file.WriteTo(w.output)
	if err != nil {
		return int(n), fmt.Errorf("write excel output: %w", err)
	}
	return int(n), nil
}

// percentCell leaves the cell empty when the change could not be computed.
func percentCell(p model.Percent) any {
	if !p.IsFinite() {
		return ""
	}
	return float64(p)
}

// Package report writes trace comparison summaries.
//
// This package contains writers for different output formats:
//   - SimpleWriter: human-readable console lines
//   - JSONWriter: the analysis-data.json document
//   - MarkdownWriter: a Markdown table report
//   - ExcelWriter: a one-sheet workbook
//
// Writers implement the Writer interface, so they can be used interchangeably
// and composed with MultiWriter.
package report

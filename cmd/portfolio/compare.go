package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/marcosnunesmbs/portfolio/internal/config"
	"github.com/marcosnunesmbs/portfolio/internal/database"
	"github.com/marcosnunesmbs/portfolio/internal/model"
	"github.com/marcosnunesmbs/portfolio/internal/report"
	"github.com/marcosnunesmbs/portfolio/internal/trace"
	"github.com/spf13/cobra"
)

// NewCompareCmd creates the compare command.
func NewCompareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Compare two browser performance traces",
		Long: `Compare reads two performance-trace JSON files and reports how the page changed.

For each metric the change is (before - after) / before * 100, rounded to two
decimals; a positive value means the "after" trace is smaller or faster:
- Total duration of the recorded window (ms)
- Number of trace events
- Number and total size of captured resources (KB)
- Trace file size (MB)
- First Contentful Paint, Largest Contentful Paint and layout shifts

The report is printed to stdout and the metrics are written to
analysis-data.json, which is overwritten on every run.

Examples:
  # Compare the default traces
  portfolio compare

  # Compare two specific traces
  portfolio compare --before old.json --after new.json

  # Print a Markdown report and also write an Excel workbook
  portfolio compare -m --xlsx comparison.xlsx

  # Keep the result in the history database
  portfolio compare --save

  # Compare every pair listed under trace.pairs in .portfolio.yaml
  portfolio compare --batch`,
		Args: cobra.NoArgs,
		RunE: runCompareCmd,
	}

	cmd.Flags().String("before", config.DefaultBeforeTrace, "Trace recorded before the change")
	cmd.Flags().String("after", config.DefaultAfterTrace, "Trace recorded after the change")
	cmd.Flags().StringP("output", "o", config.DefaultAnalysisFile,
		"JSON summary output file (overwritten)")

	cmd.Flags().BoolP("markdown", "m", false, "Print the report in Markdown format")
	cmd.Flags().String("xlsx", "", "Also write the report as an Excel workbook to this path")

	cmd.Flags().Bool("save", false, "Save the comparison in the history database")
	cmd.Flags().String("db-dir", config.XDGDataDir(), "History database directory")

	cmd.Flags().Bool("batch", false, "Compare every pair under trace.pairs in the configuration file")

	return cmd
}

// runCompareCmd executes the compare command.
func runCompareCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildCompareConfig(cmd)
	if err != nil {
		return err
	}

	if err := cfg.ValidateCompare(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := setupLogger(cmd)

	ctx, stop := signalContext(cmd)
	defer stop()

	if cfg.Batch {
		return runBatchCompare(ctx, cfg, cmd.OutOrStdout(), logger)
	}
	return runCompare(ctx, cfg, cmd.OutOrStdout(), logger)
}

// buildCompareConfig creates a Config from the configuration file and the
// command flags. Flags set on the command line win.
func buildCompareConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	if err := applyStringFlags(cmd, map[string]*string{
		"before": &cfg.BeforeTrace,
		"after":  &cfg.AfterTrace,
		"output": &cfg.AnalysisFile,
		"xlsx":   &cfg.ExcelReport,
		"db-dir": &cfg.DBDir,
	}); err != nil {
		return nil, err
	}

	if cfg.MarkdownReport, err = cmd.Flags().GetBool("markdown"); err != nil {
		return nil, err
	}
	if cfg.SaveHistory, err = cmd.Flags().GetBool("save"); err != nil {
		return nil, err
	}
	if cfg.Batch, err = cmd.Flags().GetBool("batch"); err != nil {
		return nil, err
	}

	return cfg, nil
}

// runCompare compares the single configured trace pair.
func runCompare(ctx context.Context, cfg *config.Config, out io.Writer, logger *slog.Logger) error {
	before, after, err := trace.LoadPair(ctx, cfg.BeforeTrace, cfg.AfterTrace)
	if err != nil {
		return err
	}

	summary := trace.Compare(before, after)
	logger.Debug("traces compared",
		"before", cfg.BeforeTrace,
		"beforeSize", humanize.IBytes(uint64(max(summary.BeforeFileBytes, 0))),
		"after", cfg.AfterTrace,
		"afterSize", humanize.IBytes(uint64(max(summary.AfterFileBytes, 0))),
	)

	return emitSummary(ctx, cfg, summary, outputs{
		analysis: cfg.AnalysisFile,
		excel:    cfg.ExcelReport,
	}, out, logger)
}

// runBatchCompare compares every configured pair. Each pair writes its own
// summary files; a failing pair does not stop the others but fails the run.
func runBatchCompare(ctx context.Context, cfg *config.Config, out io.Writer, logger *slog.Logger) error {
	bc := trace.NewBatchComparer(
		trace.WithConcurrency(cfg.BatchConcurrency),
		trace.WithBatchLogger(logger),
	)

	results, err := bc.CompareAll(ctx, cfg.Pairs)
	if err != nil {
		return err
	}

	names := pairNames(cfg.Pairs)

	var failed int
	for i, res := range results {
		name := names[i]
		fmt.Fprintf(out, "\n##### %s #####\n", name)

		if res.Err != nil {
			logger.Error("comparison failed", "pair", name, "error", res.Err)
			fmt.Fprintf(out, "failed: %v\n", res.Err)
			failed++
			continue
		}

		o := outputs{analysis: suffixPath(cfg.AnalysisFile, name)}
		if cfg.ExcelReport != "" {
			o.excel = suffixPath(cfg.ExcelReport, name)
		}
		if err := emitSummary(ctx, cfg, res.Summary, o, out, logger); err != nil {
			logger.Error("failed to write summary", "pair", name, "error", err)
			fmt.Fprintf(out, "failed: %v\n", err)
			failed++
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d comparisons failed", failed, len(results))
	}
	return nil
}

// outputs are the files written for one comparison.
type outputs struct {
	analysis string
	excel    string
}

// emitSummary prints the report, writes the JSON summary and the optional
// Excel workbook, and saves the comparison to history when requested.
func emitSummary(ctx context.Context, cfg *config.Config, summary *model.TraceSummary, o outputs, out io.Writer, logger *slog.Logger) error {
	if fields := summary.NonFinite(); len(fields) > 0 {
		logger.Warn("zero baseline produced a non-finite percentage",
			"fields", fields,
			"before", summary.BeforePath,
		)
	}

	var console report.Writer = report.NewSimpleWriter(out)
	if cfg.MarkdownReport {
		console = report.NewMarkdownWriter(out)
	}
	if _, err := console.Write(summary); err != nil {
		return fmt.Errorf("failed to print report: %w", err)
	}

	if err := report.WriteFile(o.analysis, summary, func(w io.Writer) report.Writer {
		return report.NewJSONWriter(w, report.WithPrettyPrint())
	}); err != nil {
		return err
	}
	fmt.Fprintf(out, "\n✓ Analysis saved to %s\n", o.analysis)

	if o.excel != "" {
		if err := report.WriteFile(o.excel, summary, func(w io.Writer) report.Writer {
			return report.NewExcelWriter(w)
		}); err != nil {
			return err
		}
		fmt.Fprintf(out, "✓ Excel report saved to %s\n", o.excel)
	}

	if cfg.SaveHistory {
		id, err := saveComparison(ctx, cfg.DBDir, summary)
		if err != nil {
			return err
		}
		logger.Info("comparison saved", "id", id, "dir", cfg.DBDir)
		fmt.Fprintf(out, "✓ Saved to history as %s\n", id)
	}

	return nil
}

// saveComparison stores summary in the history database and returns its ID.
func saveComparison(ctx context.Context, dbDir string, summary *model.TraceSummary) (string, error) {
	rec, err := database.NewRecord(summary)
	if err != nil {
		return "", fmt.Errorf("failed to hash traces: %w", err)
	}

	db, err := database.Open(dbDir, database.DefaultOptions())
	if err != nil {
		return "", fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	if err := db.SaveComparison(ctx, rec); err != nil {
		return "", err
	}
	return rec.ID, nil
}

var unsafeNameChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// pairName returns the configured pair name, or its 1-based position.
func pairName(p trace.Pair, i int) string {
	name := strings.Trim(unsafeNameChars.ReplaceAllString(p.Name, "-"), "-")
	if name == "" {
		return fmt.Sprintf("pair%d", i+1)
	}
	return name
}

// pairNames returns one file-safe name per pair. A name already taken by an
// earlier pair gets a "-2", "-3", ... suffix so no pair overwrites another's
// files.
func pairNames(pairs []trace.Pair) []string {
	names := make([]string, len(pairs))
	taken := make(map[string]bool, len(pairs))
	for i, p := range pairs {
		base := pairName(p, i)
		name := base
		for n := 2; taken[name]; n++ {
			name = fmt.Sprintf("%s-%d", base, n)
		}
		taken[name] = true
		names[i] = name
	}
	return names
}

// suffixPath inserts "-name" before the extension of path.
func suffixPath(path, name string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + "-" + name + ext
}

package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/marcosnunesmbs/portfolio/internal/config"
	"github.com/marcosnunesmbs/portfolio/internal/database"
	"github.com/marcosnunesmbs/portfolio/internal/model"
	"github.com/marcosnunesmbs/portfolio/internal/report"
	"github.com/spf13/cobra"
)

// NewHistoryCmd creates the history command.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List saved trace comparisons",
		Long: `History lists the comparisons saved with 'portfolio compare --save'.

Each entry records the compared paths, a BLAKE2b-256 digest of both trace
files and the analysis-data.json document of that run.

Examples:
  # List the 20 most recent comparisons
  portfolio history

  # Show one comparison in full
  portfolio history --show 1b4e28ba-2fa1-41d2-883f-0016d3cca427`,
		Args: cobra.NoArgs,
		RunE: runHistoryCmd,
	}

	cmd.Flags().IntP("limit", "n", config.DefaultHistoryLimit, "Number of comparisons to list (0 for all)")
	cmd.Flags().String("show", "", "Show the comparison with this ID")
	cmd.Flags().String("db-dir", config.XDGDataDir(), "History database directory")

	return cmd
}

// runHistoryCmd executes the history command.
func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	limit, err := cmd.Flags().GetInt("limit")
	if err != nil {
		return err
	}
	showID, err := cmd.Flags().GetString("show")
	if err != nil {
		return err
	}
	dbDir, err := cmd.Flags().GetString("db-dir")
	if err != nil {
		return err
	}

	setupLogger(cmd)

	db, err := database.Open(dbDir, database.DefaultOptions())
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if showID != "" {
		rec, err := db.GetComparison(ctx, showID)
		if err != nil {
			return err
		}
		return showComparison(cmd.OutOrStdout(), rec)
	}

	records, err := db.ListComparisons(ctx, limit)
	if err != nil {
		return err
	}
	listComparisons(cmd.OutOrStdout(), records)
	return nil
}

// listComparisons prints one line per record.
func listComparisons(out io.Writer, records []model.HistoryRecord) {
	if len(records) == 0 {
		fmt.Fprintln(out, "No saved comparisons found.")
		fmt.Fprintln(out, "\nUse 'portfolio compare --save' to save one.")
		return
	}

	fmt.Fprintf(out, "Saved comparisons (%d):\n\n", len(records))
	fmt.Fprintf(out, "  %-36s  %-16s  %10s  %-21s  %s\n", "ID", "Saved", "Duration", "File size", "Traces")
	fmt.Fprintln(out, "  "+strings.Repeat("-", 110))

	for _, rec := range records {
		fmt.Fprintf(out, "  %-36s  %-16s  %9.2f%%  %-21s  %s -> %s\n",
			rec.ID,
			humanize.Time(rec.CreatedAt),
			rec.Summary.Duration.Improvement,
			humanize.IBytes(uint64(max(rec.Summary.BeforeFileBytes, 0)))+" -> "+
				humanize.IBytes(uint64(max(rec.Summary.AfterFileBytes, 0))),
			rec.BeforePath,
			rec.AfterPath,
		)
	}

	fmt.Fprintln(out, "\nUse 'portfolio history --show <id>' to see a comparison in full.")
}

// showComparison prints the record metadata followed by its JSON summary.
func showComparison(out io.Writer, rec *model.HistoryRecord) error {
	fmt.Fprintf(out, "ID:     %s\n", rec.ID)
	fmt.Fprintf(out, "Saved:  %s (%s)\n", rec.CreatedAt.Format("2006-01-02 15:04:05 MST"), humanize.Time(rec.CreatedAt))
	fmt.Fprintf(out, "Before: %s\n        blake2b-256 %s\n", rec.BeforePath, rec.BeforeDigest)
	fmt.Fprintf(out, "After:  %s\n        blake2b-256 %s\n\n", rec.AfterPath, rec.AfterDigest)

	if _, err := report.NewJSONWriter(out, report.WithPrettyPrint()).Write(rec.Summary); err != nil {
		return fmt.Errorf("failed to print summary: %w", err)
	}
	return nil
}

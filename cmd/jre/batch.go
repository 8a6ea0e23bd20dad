package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/job-requirements-extractor/internal/batch"
	"github.com/jonathan/job-requirements-extractor/internal/observability"
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Analyze a directory of postings or a CSV export",
	Long: `Analyze every posting in a directory or every row of a CSV file and save
the per-item results as JSON or CSV.

Examples:
  jre batch -d jobs/ -o results.json
  jre batch -c jobs.csv -o results.csv --id-column job_id
  jre batch -d jobs/ -e .txt,.md -o results.json --summary`,
	RunE: runBatch,
}

var (
	batchDir         string
	batchCSV         string
	batchOutput      string
	batchFormat      string
	batchExtensions  []string
	batchTextColumn  string
	batchIDColumn    string
	batchSummary     bool
	batchConcurrency int
)

func init() {
	batchCmd.Flags().StringVarP(&batchDir, "directory", "d", "", "Directory containing job description files")
	batchCmd.Flags().StringVarP(&batchCSV, "csv", "c", "", "CSV file containing job descriptions")
	batchCmd.Flags().StringVarP(&batchOutput, "output", "o", "", "Output file path")
	batchCmd.Flags().StringVar(&batchFormat, "format", "json", "Output format when the output extension is neither .json nor .csv (json, csv)")
	batchCmd.Flags().StringSliceVarP(&batchExtensions, "extensions", "e", batch.DefaultExtensions, "File extensions to process")
	batchCmd.Flags().StringVar(&batchTextColumn, "text-column", "description", "CSV column containing job descriptions")
	batchCmd.Flags().StringVar(&batchIDColumn, "id-column", "", "CSV column to use as row identifier")
	batchCmd.Flags().BoolVar(&batchSummary, "summary", false, "Print a summary report")
	batchCmd.Flags().IntVar(&batchConcurrency, "concurrency", 0, "Concurrent workers (default from config batch_size)")

	batchCmd.MarkFlagsMutuallyExclusive("directory", "csv")
	batchCmd.MarkFlagsOneRequired("directory", "csv")
	_ = batchCmd.MarkFlagRequired("output")

	rootCmd.AddCommand(batchCmd)
}

func runBatch(cmd *cobra.Command, _ []string) error {
	format, err := outputFormat(batchOutput, batchFormat)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	a, err := newApp(ctx, appOptions{})
	if err != nil {
		return err
	}
	defer a.Close()

	concurrency := batchConcurrency
	if concurrency <= 0 {
		concurrency = a.cfg.BatchSize
	}
	processor := batch.NewProcessor(a.extractor,
		batch.WithConcurrency(concurrency),
		batch.WithMaxTextLength(a.cfg.MaxTextLength),
		batch.WithLogger(a.logger),
		batch.WithProgress(func(done, total int, name string) {
			a.logger.Debug("analyzed", "item", name, "done", done, "total", total)
		}),
	)

	var results []batch.Result
	if batchDir != "" {
		results, err = processor.ProcessDirectory(ctx, batchDir, batchExtensions)
	} else {
		results, err = processor.ProcessCSV(ctx, batchCSV, batchTextColumn, batchIDColumn)
	}
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(out, "Processed %d items\n", len(results))

	if err := processor.Save(batchOutput, format); err != nil {
		return err
	}

	if batchSummary {
		summary, err := processor.SummaryReport()
		if err != nil {
			_, _ = fmt.Fprintf(out, "Error generating summary: %v\n", err)
		} else {
			observability.NewPrinter(out).
				WithCategoryOrder(a.extractor.Vocabulary().Tags()).
				PrintBatchSummary(summary)
		}
	}

	_, _ = fmt.Fprintf(out, "Results saved to %s\n", batchOutput)
	return nil
}

// outputFormat picks the format from the output extension, falling back to flag
func outputFormat(path, flag string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return "csv", nil
	case ".json":
		return "json", nil
	}
	switch flag {
	case "json", "csv":
		return flag, nil
	default:
		return "", fmt.Errorf("unsupported format %q (use json or csv)", flag)
	}
}

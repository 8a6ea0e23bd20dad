package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/job-requirements-extractor/internal/analysis"
	"github.com/jonathan/job-requirements-extractor/internal/observability"
	"github.com/jonathan/job-requirements-extractor/internal/schemas"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze a single job posting",
	Long: `Analyze a job posting given as text, a file (.txt, .md, .docx, .pdf) or a URL
and print the extracted requirements.

Examples:
  jre analyze -t "We are looking for a Python developer with 3+ years experience"
  jre analyze -f job_description.txt -o results.json
  jre analyze -u https://boards.greenhouse.io/acme/jobs/123 -v`,
	RunE: runAnalyze,
}

var (
	analyzeText       string
	analyzeFile       string
	analyzeURL        string
	analyzeOutput     string
	analyzeVerbose    bool
	analyzeValidate   bool
	analyzeUseBrowser bool
	analyzeJSON       bool
	analyzeNoCache    bool
)

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeText, "text", "t", "", "Job description text to analyze")
	analyzeCmd.Flags().StringVarP(&analyzeFile, "file", "f", "", "File containing the job description")
	analyzeCmd.Flags().StringVarP(&analyzeURL, "url", "u", "", "URL of the job posting")
	analyzeCmd.Flags().StringVarP(&analyzeOutput, "output", "o", "", "Save the report as JSON to this path")
	analyzeCmd.Flags().BoolVarP(&analyzeVerbose, "verbose", "v", false, "Include the full JSON report in the output")
	analyzeCmd.Flags().BoolVar(&analyzeValidate, "validate", false, "Validate the report against the embedded JSON schema")
	analyzeCmd.Flags().BoolVar(&analyzeUseBrowser, "use-browser", false, "Render the URL in headless Chrome (SPA job boards)")
	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "Print the report as JSON instead of the formatted view")
	analyzeCmd.Flags().BoolVar(&analyzeNoCache, "no-cache", false, "Do not read or write stored analyses")

	analyzeCmd.MarkFlagsMutuallyExclusive("text", "file", "url")
	analyzeCmd.MarkFlagsOneRequired("text", "file", "url")

	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, _ []string) error {
	if analyzeText != "" && strings.TrimSpace(analyzeText) == "" {
		return errors.New("empty job description")
	}

	ctx := cmd.Context()
	a, err := newApp(ctx, appOptions{connectDB: !analyzeNoCache})
	if err != nil {
		return err
	}
	defer a.Close()

	var res *analysis.Result
	switch {
	case analyzeURL != "":
		res, err = a.service.AnalyzeURL(ctx, analyzeURL, analyzeUseBrowser)
	case analyzeFile != "":
		res, err = a.service.AnalyzeFile(ctx, analyzeFile)
	default:
		res, err = a.service.Analyze(ctx, analyzeText, "cli")
	}
	if err != nil {
		return err
	}
	if res.Cached {
		a.logger.Info("using stored analysis", "id", res.ID, "hash", res.ContentHash)
	}

	data, err := json.MarshalIndent(res.Report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}

	if analyzeValidate {
		if err := schemas.ValidateReport(data); err != nil {
			return fmt.Errorf("report does not validate against schema: %w", err)
		}
		a.logger.Info("report validated against schema")
	}

	out := cmd.OutOrStdout()
	if analyzeJSON {
		_, _ = fmt.Fprintln(out, string(data))
	} else if err := observability.NewPrinter(out).
		WithCategoryOrder(a.extractor.Vocabulary().Tags()).
		PrintReport(res.Report, analyzeVerbose); err != nil {
		return err
	}

	if analyzeOutput != "" {
		if dir := filepath.Dir(analyzeOutput); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
		}
		if err := os.WriteFile(analyzeOutput, data, 0o644); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		_, _ = fmt.Fprintf(out, "Results saved to %s\n", analyzeOutput)
	}

	return nil
}

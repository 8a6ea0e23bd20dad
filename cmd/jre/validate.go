package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/job-requirements-extractor/internal/schemas"
)

var validateSchema string

var validateCmd = &cobra.Command{
	Use:   "validate <report.json>",
	Short: "Validate a saved report against the report JSON schema",
	Args:  cobra.ExactArgs(1),
	RunE:  runValidate,
}

func init() {
	validateCmd.Flags().StringVar(&validateSchema, "schema", "", "Schema file to use instead of the embedded report schema")
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	path := args[0]
	if validateSchema != "" {
		if err := schemas.ValidateJSON(validateSchema, path); err != nil {
			return err
		}
	} else {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}
		if err := schemas.ValidateReport(data); err != nil {
			return err
		}
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s is valid\n", path)
	return nil
}

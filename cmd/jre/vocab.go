package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/job-requirements-extractor/internal/config"
	"github.com/jonathan/job-requirements-extractor/internal/extract"
)

var vocabDefault bool

var vocabCmd = &cobra.Command{
	Use:   "vocab",
	Short: "Print the effective vocabulary as JSON",
	Long: `Print the word lists used for requirement detection and categorization.
The output is a valid vocabulary file and can be edited and passed back
through the vocabulary_file config setting.`,
	Args: cobra.NoArgs,
	RunE: runVocab,
}

func init() {
	vocabCmd.Flags().BoolVar(&vocabDefault, "default", false, "Ignore vocabulary_file and print the built-in lists")
	rootCmd.AddCommand(vocabCmd)
}

func runVocab(cmd *cobra.Command, _ []string) error {
	vocab := extract.DefaultVocabulary()
	if !vocabDefault {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		if vocab, err = cfg.Vocabulary(); err != nil {
			return err
		}
	}

	data, err := json.MarshalIndent(vocab, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal vocabulary: %w", err)
	}
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}

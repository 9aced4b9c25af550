// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ksolberg/agelex/internal/corpus"
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Strip CHAT annotations and drop short utterances",
	Long: `Clean reads the parsed utterance table, removes CHILDES annotation
markup from each utterance (keeping xxx/yyy unintelligibility tokens,
which become features), and drops utterances shorter than the minimum
word count. The result is <processed-dir>/utterances_clean.csv.`,
	RunE: runClean,
}

func runClean(cmd *cobra.Command, args []string) error {
	cfg := corpusConfig(cmd)

	inPath := filepath.Join(cfg.ProcessedDir, "utterances.csv")
	rows, err := corpus.ReadTable(inPath)
	if err != nil {
		return err
	}
	fmt.Printf("Original data: %d utterances\n", len(rows))

	cleaned := corpus.Clean(rows, cfg.MinWords)
	fmt.Printf("After cleaning: %d utterances\n", len(cleaned))

	outPath := filepath.Join(cfg.ProcessedDir, "utterances_clean.csv")
	if err := corpus.WriteTable(outPath, cleaned, true); err != nil {
		return err
	}
	fmt.Printf("Saved cleaned data to %s\n", outPath)
	return nil
}

func init() {
	cleanCmd.Flags().String("processed-dir", "", "directory of utterance tables (default data/processed)")
	cleanCmd.Flags().Int("min-words", 0, "minimum words per utterance (default 3)")

	rootCmd.AddCommand(cleanCmd)
}

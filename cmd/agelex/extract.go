// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ksolberg/agelex/internal/corpus"
	"github.com/ksolberg/agelex/internal/features"
	"github.com/ksolberg/agelex/pkg/types"
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract feature records from an utterance table",
	Long: `Extract reads a cleaned utterance table and writes one feature record
per utterance: a comma-joined token sequence ending with the age-bucket
label. With --extended the higher-order syntactic features (word and
POS n-grams, discourse markers) are included; the evaluation harness
always extracts the extended superset so feature groups can be filtered
out later without re-running extraction.`,
	RunE: runExtract,
}

func runExtract(cmd *cobra.Command, args []string) error {
	inPath, _ := cmd.Flags().GetString("input")
	outPath, _ := cmd.Flags().GetString("output")
	extended, _ := cmd.Flags().GetBool("extended")
	if inPath == "" {
		return fmt.Errorf("--input is required")
	}

	rows, err := corpus.ReadTable(inPath)
	if err != nil {
		return err
	}

	extractor := features.NewExtractor(types.ExtractConfig{Extended: extended}, nil)
	records := make([]features.Record, len(rows))
	for i, row := range rows {
		records[i] = extractor.Extract(row.CleanText, row.AgeMonths, row.AgeKnown)
	}

	out := os.Stdout
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("creating %s: %w", outPath, err)
		}
		defer f.Close()
		out = f
	}
	if err := features.WriteRecords(out, records); err != nil {
		return fmt.Errorf("writing feature records: %w", err)
	}
	if outPath != "" {
		fmt.Fprintf(os.Stderr, "Wrote %d records to %s\n", len(records), outPath)
	}
	return nil
}

func init() {
	extractCmd.Flags().StringP("input", "i", "", "cleaned utterance table to read")
	extractCmd.Flags().StringP("output", "o", "", "feature file to write (default stdout)")
	extractCmd.Flags().BoolP("extended", "e", false, "include extended syntactic features")

	rootCmd.AddCommand(extractCmd)
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ksolberg/agelex/internal/corpus"
)

var splitCmd = &cobra.Command{
	Use:   "split",
	Short: "Split the cleaned utterance table into train/dev/test",
	Long: `Split shuffles the cleaned utterance table with a fixed seed and
writes train.csv, dev.csv, and test.csv under the split directory.
The same seed always produces the same split.`,
	RunE: runSplit,
}

func runSplit(cmd *cobra.Command, args []string) error {
	cfg := corpusConfig(cmd)

	inPath := filepath.Join(cfg.ProcessedDir, "utterances_clean.csv")
	rows, err := corpus.ReadTable(inPath)
	if err != nil {
		return err
	}

	train, dev, test := corpus.Split(rows, cfg.TestFraction, cfg.DevFraction, cfg.Seed)

	for _, part := range []struct {
		name string
		rows []corpus.Utterance
	}{
		{"train", train}, {"dev", dev}, {"test", test},
	} {
		outPath := filepath.Join(cfg.SplitDir, part.name+".csv")
		if err := corpus.WriteTable(outPath, part.rows, true); err != nil {
			return err
		}
		fmt.Printf("%s: %d utterances -> %s\n", part.name, len(part.rows), outPath)
	}
	return nil
}

func init() {
	splitCmd.Flags().String("processed-dir", "", "directory of utterance tables (default data/processed)")
	splitCmd.Flags().String("split-dir", "", "output directory for splits (default data/split)")
	splitCmd.Flags().Int64("seed", 42, "shuffle seed")

	rootCmd.AddCommand(splitCmd)
}

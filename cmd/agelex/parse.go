// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ksolberg/agelex/internal/corpus"
	"github.com/ksolberg/agelex/pkg/types"
)

var parseCmd = &cobra.Command{
	Use:   "parse",
	Short: "Extract child utterances and ages from CHAT transcripts",
	Long: `Parse walks the configured corpus directories, reads every .cha
transcript, and extracts target-child utterances together with the
speaker's age in months from the @ID headers. The result is one
utterance table at <processed-dir>/utterances.csv.`,
	RunE: runParse,
}

func runParse(cmd *cobra.Command, args []string) error {
	cfg := corpusConfig(cmd)
	if len(cfg.Corpora) == 0 {
		return fmt.Errorf("no corpora configured: set --corpora or corpus.corpora in the config file")
	}

	rows, err := corpus.ParseAll(cfg, os.Stderr)
	if err != nil {
		return err
	}

	outPath := filepath.Join(cfg.ProcessedDir, "utterances.csv")
	if err := corpus.WriteTable(outPath, rows, false); err != nil {
		return err
	}
	fmt.Printf("Saved %d utterances to %s\n", len(rows), outPath)
	return nil
}

func init() {
	parseCmd.Flags().String("raw-dir", "", "base directory of raw corpora (default data/raw)")
	parseCmd.Flags().StringSlice("corpora", nil, "corpus subdirectories to process")
	parseCmd.Flags().String("processed-dir", "", "output directory for utterance tables (default data/processed)")

	rootCmd.AddCommand(parseCmd)
}

// corpusConfig materializes the corpus stage configuration from flags,
// falling back to the viper config file and then to defaults.
func corpusConfig(cmd *cobra.Command) types.CorpusConfig {
	cfg := types.CorpusConfig{
		RawDir:       stringSetting(cmd, "raw-dir", "corpus.raw_dir", "data/raw"),
		ProcessedDir: stringSetting(cmd, "processed-dir", "corpus.processed_dir", "data/processed"),
		SplitDir:     stringSetting(cmd, "split-dir", "corpus.split_dir", "data/split"),
		MinWords:     intSetting(cmd, "min-words", "corpus.min_words", 3),
		TestFraction: viper.GetFloat64("corpus.test_fraction"),
		DevFraction:  viper.GetFloat64("corpus.dev_fraction"),
		Seed:         42,
	}
	if corpora, _ := cmd.Flags().GetStringSlice("corpora"); len(corpora) > 0 {
		cfg.Corpora = corpora
	} else {
		cfg.Corpora = viper.GetStringSlice("corpus.corpora")
	}
	if viper.IsSet("corpus.seed") {
		cfg.Seed = viper.GetInt64("corpus.seed")
	}
	if cmd.Flags().Lookup("seed") != nil {
		if seed, err := cmd.Flags().GetInt64("seed"); err == nil && cmd.Flags().Changed("seed") {
			cfg.Seed = seed
		}
	}
	return cfg
}

// stringSetting resolves a string option: flag, then config key, then default.
func stringSetting(cmd *cobra.Command, flag, key, fallback string) string {
	if cmd.Flags().Lookup(flag) != nil {
		if v, _ := cmd.Flags().GetString(flag); v != "" {
			return v
		}
	}
	if v := viper.GetString(key); v != "" {
		return v
	}
	return fallback
}

// intSetting resolves an int option: flag, then config key, then default.
func intSetting(cmd *cobra.Command, flag, key string, fallback int) int {
	if cmd.Flags().Lookup(flag) != nil {
		if v, _ := cmd.Flags().GetInt(flag); v > 0 && cmd.Flags().Changed(flag) {
			return v
		}
	}
	if v := viper.GetInt(key); v > 0 {
		return v
	}
	return fallback
}

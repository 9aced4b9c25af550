// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ksolberg/agelex/internal/eval"
	"github.com/ksolberg/agelex/internal/features"
	"github.com/ksolberg/agelex/internal/score"
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score predicted labels against a gold feature file",
	Long: `Score reads a prediction stream (stdin, or --predict) and the gold
feature file it was predicted from, and prints the evaluation metrics:
exact accuracy, within-1-bin accuracy, macro recall, and mean absolute
error in bins and in months. The prediction stream has one line per
record; the first whitespace-delimited field is the predicted label.`,
	RunE: runScore,
}

func runScore(cmd *cobra.Command, args []string) error {
	goldPath, _ := cmd.Flags().GetString("gold")
	predictPath, _ := cmd.Flags().GetString("predict")
	showExamples, _ := cmd.Flags().GetInt("show-examples")
	if goldPath == "" {
		return fmt.Errorf("--gold is required")
	}

	goldFile, err := os.Open(goldPath)
	if err != nil {
		return fmt.Errorf("opening gold file %s: %w", goldPath, err)
	}
	defer goldFile.Close()
	gold, err := features.ReadLabels(goldFile)
	if err != nil {
		return fmt.Errorf("reading gold labels: %w", err)
	}

	var predIn io.Reader = os.Stdin
	if predictPath != "" {
		f, err := os.Open(predictPath)
		if err != nil {
			return fmt.Errorf("opening prediction file %s: %w", predictPath, err)
		}
		defer f.Close()
		predIn = f
	}
	raw, err := io.ReadAll(predIn)
	if err != nil {
		return fmt.Errorf("reading predictions: %w", err)
	}
	predicted, err := eval.ParsePredictions(string(raw))
	if err != nil {
		return err
	}

	metrics, err := score.Score(predicted, gold)
	if err != nil {
		return err
	}
	if err := score.Render(os.Stdout, metrics); err != nil {
		return err
	}

	if showExamples > 0 {
		fmt.Printf("\nSAMPLE PREDICTIONS (gold -> predicted):\n")
		for i := 0; i < showExamples && i < len(gold); i++ {
			marker := " "
			if gold[i] != predicted[i] {
				marker = "x"
			}
			fmt.Printf("%4d %s GOLD=%-8s PRED=%-8s\n", i+1, marker, gold[i], predicted[i])
		}
	}
	return nil
}

func init() {
	scoreCmd.Flags().StringP("gold", "g", "", "gold feature file")
	scoreCmd.Flags().StringP("predict", "p", "", "prediction file (default stdin)")
	scoreCmd.Flags().IntP("show-examples", "s", 0, "show the first N gold/predicted pairs")

	rootCmd.AddCommand(scoreCmd)
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ksolberg/agelex/internal/eval"
	"github.com/ksolberg/agelex/internal/taxonomy"
	"github.com/ksolberg/agelex/pkg/types"
)

var evaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "Run additive and ablation feature-group studies",
	Long: `Evaluate measures how each feature group affects classification
quality. It extracts the full feature superset for every split, verifies
that every feature name maps to a semantic group, then for each
experiment in the matrix filters the superset to the experiment's
groups, trains the external classifier, applies it to the dev split,
and scores the predictions. Results land in one ordered table at
<eval-dir>/feature_impact.tsv, with a YAML manifest and a SQLite run
history alongside.`,
	RunE: runEvaluate,
}

func runEvaluate(cmd *cobra.Command, args []string) error {
	cfg := evalConfig(cmd)
	startedAt := time.Now()

	classifier, err := eval.NewExternalClassifier(cfg.ClassifyBin)
	if err != nil {
		return err
	}
	var scorer eval.Scorer = eval.LocalScorer{}
	if len(cfg.ScoreCmd) > 0 {
		if scorer, err = eval.NewCommandScorer(cfg.ScoreCmd); err != nil {
			return err
		}
	}

	driver := eval.NewDriver(cfg, classifier, scorer, os.Stderr)

	fullPaths, err := driver.BuildFullFeatures()
	if err != nil {
		return err
	}

	// Schema drift check: every feature name in the extracted superset
	// must classify, before any experiment runs.
	paths := make([]string, 0, len(fullPaths))
	for _, split := range eval.Splits {
		paths = append(paths, fullPaths[split])
	}
	if err := taxonomy.Verify(paths); err != nil {
		return err
	}

	experiments := eval.Experiments()
	if err := eval.ValidateMatrix(experiments); err != nil {
		return err
	}

	rows, runErr := driver.RunAll(context.Background(), experiments, fullPaths)

	// Write whatever completed; a late failure must not discard the
	// rows already computed.
	if len(rows) > 0 {
		resultsPath := filepath.Join(cfg.EvalDir, "feature_impact.tsv")
		if err := eval.WriteResults(resultsPath, rows); err != nil {
			return err
		}
		fmt.Printf("Wrote %d rows to %s\n", len(rows), resultsPath)

		manifestPath := filepath.Join(cfg.EvalDir, "manifest.yaml")
		if err := eval.WriteManifest(manifestPath, startedAt, cfg.RunsPerConfig, experiments); err != nil {
			return err
		}

		if cfg.History {
			if err := recordHistory(cfg, startedAt, rows); err != nil {
				return err
			}
		}
	}
	return runErr
}

func recordHistory(cfg types.EvalConfig, startedAt time.Time, rows []eval.Row) error {
	history, err := eval.OpenHistory(filepath.Join(cfg.EvalDir, "history.db"))
	if err != nil {
		return err
	}
	defer history.Close()

	runID, err := history.RecordRun(context.Background(), startedAt, cfg.RunsPerConfig, rows)
	if err != nil {
		return err
	}
	fmt.Printf("Recorded run %d in history\n", runID)
	return nil
}

func init() {
	evaluateCmd.Flags().String("split-dir", "", "directory of train/dev/test tables (default data/split)")
	evaluateCmd.Flags().String("eval-dir", "", "staging directory for the harness (default out/feature_eval)")
	evaluateCmd.Flags().String("classify-bin", "", "external classifier binary (default bin/classify)")
	evaluateCmd.Flags().StringSlice("score-cmd", nil, "external scoring command (default: built-in scorer)")
	evaluateCmd.Flags().Int("runs", 0, "train/apply cycles per experiment (default 1)")
	evaluateCmd.Flags().Bool("keep-going", false, "continue past a failed experiment")
	evaluateCmd.Flags().Bool("no-history", false, "skip the SQLite run-history store")

	rootCmd.AddCommand(evaluateCmd)
}

// evalConfig materializes the harness configuration from flags, the
// viper config file, and defaults, in that order.
func evalConfig(cmd *cobra.Command) types.EvalConfig {
	cfg := types.EvalConfig{
		SplitDir:      stringSetting(cmd, "split-dir", "eval.split_dir", "data/split"),
		EvalDir:       stringSetting(cmd, "eval-dir", "eval.eval_dir", filepath.Join("out", "feature_eval")),
		ClassifyBin:   stringSetting(cmd, "classify-bin", "eval.classify_bin", filepath.Join("bin", "classify")),
		RunsPerConfig: intSetting(cmd, "runs", "eval.runs_per_config", 1),
		History:       true,
	}
	if scoreCmd, _ := cmd.Flags().GetStringSlice("score-cmd"); len(scoreCmd) > 0 {
		cfg.ScoreCmd = scoreCmd
	} else {
		cfg.ScoreCmd = viper.GetStringSlice("eval.score_cmd")
	}
	if keepGoing, _ := cmd.Flags().GetBool("keep-going"); keepGoing {
		cfg.KeepGoing = true
	} else {
		cfg.KeepGoing = viper.GetBool("eval.keep_going")
	}
	if noHistory, _ := cmd.Flags().GetBool("no-history"); noHistory {
		cfg.History = false
	} else if viper.IsSet("eval.history") {
		cfg.History = viper.GetBool("eval.history")
	}
	return cfg
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package eval

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/ksolberg/agelex/internal/corpus"
	"github.com/ksolberg/agelex/internal/features"
	"github.com/ksolberg/agelex/internal/score"
	"github.com/ksolberg/agelex/internal/taxonomy"
	"github.com/ksolberg/agelex/pkg/types"
)

// Splits names the corpus splits the harness filters and evaluates.
// Metrics always come from dev; test files are filtered alongside for
// later held-out evaluation.
var Splits = []string{"train", "dev", "test"}

const (
	fullDir     = "full"
	filteredDir = "filtered"
	modelsDir   = "models"
)

// Driver runs experiments against an injected classifier and scorer.
type Driver struct {
	cfg        types.EvalConfig
	classifier Classifier
	scorer     Scorer
	out        io.Writer
}

// NewDriver creates a driver. out receives progress lines; pass
// io.Discard to silence it.
func NewDriver(cfg types.EvalConfig, classifier Classifier, scorer Scorer, out io.Writer) *Driver {
	if cfg.RunsPerConfig <= 0 {
		cfg.RunsPerConfig = 1
	}
	if out == nil {
		out = io.Discard
	}
	return &Driver{cfg: cfg, classifier: classifier, scorer: scorer, out: out}
}

// BuildFullFeatures extracts the full superset (extended mode) for each
// split table and writes full/<split>.events under the eval directory.
// Returns the written paths keyed by split name.
func (d *Driver) BuildFullFeatures() (map[string]string, error) {
	outDir := filepath.Join(d.cfg.EvalDir, fullDir)
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating %s: %w", outDir, err)
	}

	extractor := features.NewExtractor(types.ExtractConfig{Extended: true}, nil)
	paths := make(map[string]string, len(Splits))
	for _, split := range Splits {
		rows, err := corpus.ReadTable(filepath.Join(d.cfg.SplitDir, split+".csv"))
		if err != nil {
			return nil, fmt.Errorf("loading %s split: %w", split, err)
		}
		records := make([]features.Record, len(rows))
		for i, row := range rows {
			records[i] = extractor.Extract(row.CleanText, row.AgeMonths, row.AgeKnown)
		}

		outPath := filepath.Join(outDir, split+".events")
		f, err := os.Create(outPath)
		if err != nil {
			return nil, fmt.Errorf("creating %s: %w", outPath, err)
		}
		if err := features.WriteRecords(f, records); err != nil {
			f.Close()
			return nil, fmt.Errorf("writing %s: %w", outPath, err)
		}
		if err := f.Close(); err != nil {
			return nil, err
		}
		fmt.Fprintf(d.out, "extracted %d records for %s\n", len(records), split)
		paths[split] = outPath
	}
	return paths, nil
}

// RunExperiment filters all splits for the experiment, then runs the
// configured number of train/apply/score cycles on the dev split and
// averages the metrics. The model artifact is deleted after each run.
func (d *Driver) RunExperiment(ctx context.Context, exp Experiment, fullPaths map[string]string) (score.Metrics, error) {
	filtered := make(map[string]string, len(Splits))
	for _, split := range Splits {
		dst := filepath.Join(d.cfg.EvalDir, filteredDir, exp.Name+"."+split)
		if err := taxonomy.FilterFile(fullPaths[split], dst, exp.Groups); err != nil {
			return score.Metrics{}, fmt.Errorf("experiment %s: filtering %s: %w", exp.Name, split, err)
		}
		filtered[split] = dst
	}

	if err := os.MkdirAll(filepath.Join(d.cfg.EvalDir, modelsDir), 0o755); err != nil {
		return score.Metrics{}, fmt.Errorf("creating models directory: %w", err)
	}
	modelPath := filepath.Join(d.cfg.EvalDir, modelsDir, exp.Name+".model")

	bundles := make([]score.Metrics, 0, d.cfg.RunsPerConfig)
	for run := 1; run <= d.cfg.RunsPerConfig; run++ {
		if err := d.classifier.Train(ctx, filtered["train"], modelPath); err != nil {
			return score.Metrics{}, fmt.Errorf("experiment %s run %d/%d: %w", exp.Name, run, d.cfg.RunsPerConfig, err)
		}
		predicted, err := d.classifier.Apply(ctx, modelPath, filtered["dev"])
		if err != nil {
			return score.Metrics{}, fmt.Errorf("experiment %s run %d/%d: %w", exp.Name, run, d.cfg.RunsPerConfig, err)
		}
		m, err := d.scorer.Score(ctx, predicted, filtered["dev"])
		if err != nil {
			return score.Metrics{}, fmt.Errorf("experiment %s run %d/%d: %w", exp.Name, run, d.cfg.RunsPerConfig, err)
		}
		bundles = append(bundles, m)

		if err := os.Remove(modelPath); err != nil && !os.IsNotExist(err) {
			return score.Metrics{}, fmt.Errorf("experiment %s: removing model artifact: %w", exp.Name, err)
		}
	}
	return score.Average(bundles), nil
}

// Row is one results-table entry.
type Row struct {
	Experiment Experiment
	Runs       int
	Metrics    score.Metrics
}

// RunAll executes every experiment in order. By default the first
// failure aborts the run; with KeepGoing the failed experiment is
// reported, skipped, and the rest still run. Completed rows are
// returned either way so already-computed results survive a failure.
func (d *Driver) RunAll(ctx context.Context, exps []Experiment, fullPaths map[string]string) ([]Row, error) {
	var rows []Row
	var failed []string
	for _, exp := range exps {
		fmt.Fprintf(d.out, "running %s (%s)\n", exp.Name, exp.Catalogue)
		m, err := d.RunExperiment(ctx, exp, fullPaths)
		if err != nil {
			if !d.cfg.KeepGoing {
				return rows, err
			}
			fmt.Fprintf(d.out, "failed %s: %v\n", exp.Name, err)
			failed = append(failed, exp.Name)
			continue
		}
		rows = append(rows, Row{Experiment: exp, Runs: d.cfg.RunsPerConfig, Metrics: m})
	}
	if len(failed) > 0 {
		return rows, fmt.Errorf("%d experiment(s) failed: %v", len(failed), failed)
	}
	return rows, nil
}

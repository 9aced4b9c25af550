// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// CorpusConfig holds settings for the transcript-processing stages
// (parse, clean, split).
type CorpusConfig struct {
	// RawDir is the base directory containing one subdirectory of .cha
	// transcripts per corpus (e.g. "data/raw/Brown").
	RawDir string `json:"raw_dir" yaml:"raw_dir"`

	// Corpora lists the corpus subdirectories under RawDir to process.
	Corpora []string `json:"corpora" yaml:"corpora"`

	// ProcessedDir is the directory for parsed and cleaned utterance tables.
	ProcessedDir string `json:"processed_dir" yaml:"processed_dir"`

	// SplitDir is the directory for train/dev/test tables.
	SplitDir string `json:"split_dir" yaml:"split_dir"`

	// MinWords drops cleaned utterances shorter than this many tokens
	// (default 3).
	MinWords int `json:"min_words" yaml:"min_words"`

	// TestFraction is the share of rows held out for test (default 0.2).
	TestFraction float64 `json:"test_fraction" yaml:"test_fraction"`

	// DevFraction is the share of the remaining training rows held out
	// for dev (default 0.1).
	DevFraction float64 `json:"dev_fraction" yaml:"dev_fraction"`

	// Seed fixes the split shuffle so splits are reproducible (default 42).
	Seed int64 `json:"seed" yaml:"seed"`
}

// ExtractConfig holds settings for the feature extraction stage.
type ExtractConfig struct {
	// Extended enables the extended-syntax feature family (n-grams, POS
	// tags, discourse markers). The evaluation harness always extracts
	// with Extended set so group filtering can select subsets later.
	Extended bool `json:"extended" yaml:"extended"`
}

// EvalConfig holds settings for the feature-impact evaluation harness.
type EvalConfig struct {
	// SplitDir is the directory containing train/dev/test CSV tables.
	SplitDir string `json:"split_dir" yaml:"split_dir"`

	// EvalDir is the staging directory for the harness. Full superset
	// files go under full/, per-experiment files under filtered/, model
	// artifacts under models/.
	EvalDir string `json:"eval_dir" yaml:"eval_dir"`

	// ClassifyBin is the path to the external classifier binary
	// exposing the train/apply contract.
	ClassifyBin string `json:"classify_bin" yaml:"classify_bin"`

	// ScoreCmd optionally names an external scoring command. When empty
	// the built-in scorer is used in process.
	ScoreCmd []string `json:"score_cmd,omitempty" yaml:"score_cmd,omitempty"`

	// RunsPerConfig is the number of independent train/apply cycles per
	// experiment; metrics are averaged across runs (default 1).
	RunsPerConfig int `json:"runs_per_config" yaml:"runs_per_config"`

	// KeepGoing records a failed experiment and continues with the rest
	// instead of aborting the harness run.
	KeepGoing bool `json:"keep_going" yaml:"keep_going"`

	// History enables the SQLite run-history store under EvalDir
	// (default true).
	History bool `json:"history" yaml:"history"`
}

// PipelineConfig groups all stage configurations.
type PipelineConfig struct {
	Corpus  CorpusConfig  `json:"corpus" yaml:"corpus"`
	Extract ExtractConfig `json:"extract" yaml:"extract"`
	Eval    EvalConfig    `json:"eval" yaml:"eval"`
}

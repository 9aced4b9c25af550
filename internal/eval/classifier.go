// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package eval

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/ksolberg/agelex/internal/features"
)

// Classifier is the capability the harness needs from a classification
// backend: train a model from a feature file and apply it to another.
// The harness treats the training algorithm as opaque; alternate
// implementations substitute freely in tests.
type Classifier interface {
	// Train builds a model artifact at modelPath from the feature
	// records at dataPath.
	Train(ctx context.Context, dataPath, modelPath string) error

	// Apply runs the model at modelPath over the records at dataPath
	// and returns one predicted label per record, in input order.
	Apply(ctx context.Context, modelPath, dataPath string) ([]features.Bucket, error)
}

// ExternalClassifier shells out to a classifier binary exposing the
// conventional contract: `<bin> train <data> <model>` and
// `<bin> apply <model> <data>` with predictions on stdout, first
// whitespace-delimited field per line being the label.
type ExternalClassifier struct {
	bin string
	run runner
}

// NewExternalClassifier creates a classifier around the binary at bin,
// verifying the binary exists before returning.
func NewExternalClassifier(bin string) (*ExternalClassifier, error) {
	if _, err := exec.LookPath(bin); err != nil {
		return nil, fmt.Errorf("classifier binary %s not found: %w", bin, err)
	}
	return &ExternalClassifier{bin: bin, run: osRunner{}}, nil
}

// Train implements Classifier.
func (c *ExternalClassifier) Train(ctx context.Context, dataPath, modelPath string) error {
	if _, err := c.run.Run(ctx, c.bin, []string{"train", dataPath, modelPath}, nil); err != nil {
		return fmt.Errorf("training on %s: %w", dataPath, err)
	}
	return nil
}

// Apply implements Classifier.
func (c *ExternalClassifier) Apply(ctx context.Context, modelPath, dataPath string) ([]features.Bucket, error) {
	out, err := c.run.Run(ctx, c.bin, []string{"apply", modelPath, dataPath}, nil)
	if err != nil {
		return nil, fmt.Errorf("applying %s to %s: %w", modelPath, dataPath, err)
	}
	return ParsePredictions(out)
}

// ParsePredictions reads a prediction stream: one line per input
// record, first whitespace-delimited field is the predicted label.
func ParsePredictions(out string) ([]features.Bucket, error) {
	var predictions []features.Bucket
	for i, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			return nil, fmt.Errorf("prediction line %d is blank", i+1)
		}
		predictions = append(predictions, features.Bucket(fields[0]))
	}
	if len(predictions) == 0 {
		return nil, fmt.Errorf("classifier produced no predictions")
	}
	return predictions, nil
}

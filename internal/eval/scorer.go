// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package eval

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/ksolberg/agelex/internal/features"
	"github.com/ksolberg/agelex/internal/score"
)

// Scorer turns a prediction stream plus the gold feature file it was
// predicted from into one metrics bundle.
type Scorer interface {
	Score(ctx context.Context, predicted []features.Bucket, goldPath string) (score.Metrics, error)
}

// LocalScorer scores in process with the built-in metrics.
type LocalScorer struct{}

// Score implements Scorer.
func (LocalScorer) Score(_ context.Context, predicted []features.Bucket, goldPath string) (score.Metrics, error) {
	f, err := os.Open(goldPath)
	if err != nil {
		return score.Metrics{}, fmt.Errorf("opening gold file %s: %w", goldPath, err)
	}
	defer f.Close()

	gold, err := features.ReadLabels(f)
	if err != nil {
		return score.Metrics{}, fmt.Errorf("reading gold labels from %s: %w", goldPath, err)
	}
	return score.Score(predicted, gold)
}

// CommandScorer pipes the prediction stream to an external scoring
// command (invoked as `<cmd...> -g <goldPath>`) and parses the fixed
// report block it prints. The report headings are the contract; a
// missing heading is an UnparsableReport, never a defaulted zero.
type CommandScorer struct {
	cmd []string
	run runner
}

// NewCommandScorer creates a scorer around the given command line.
func NewCommandScorer(cmd []string) (*CommandScorer, error) {
	if len(cmd) == 0 {
		return nil, fmt.Errorf("empty score command")
	}
	return &CommandScorer{cmd: cmd, run: osRunner{}}, nil
}

// Score implements Scorer.
func (s *CommandScorer) Score(ctx context.Context, predicted []features.Bucket, goldPath string) (score.Metrics, error) {
	var stdin strings.Builder
	for _, p := range predicted {
		stdin.WriteString(string(p))
		stdin.WriteByte('\n')
	}

	args := append(append([]string{}, s.cmd[1:]...), "-g", goldPath)
	out, err := s.run.Run(ctx, s.cmd[0], args, strings.NewReader(stdin.String()))
	if err != nil {
		return score.Metrics{}, fmt.Errorf("scoring against %s: %w", goldPath, err)
	}
	return score.ParseReport(out)
}

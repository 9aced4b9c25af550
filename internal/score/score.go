// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package score compares predicted age-bucket labels against gold
// labels and computes the five evaluation metrics. It also renders and
// parses the fixed report block; the headings in that block are a
// contract the evaluation driver relies on, not incidental formatting.
package score

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ksolberg/agelex/internal/features"
)

// Metrics is the bundle of evaluation results for one scored stream.
// Percentages are on a 0–100 scale. Never mutated after computation.
type Metrics struct {
	// Accuracy is the fraction of exact label matches, x100.
	Accuracy float64
	// Within1Accuracy counts a pair correct when both labels resolve to
	// an ordinal bucket index and the indices differ by at most one.
	// The denominator is the total pair count, so unresolvable labels
	// can only lower it.
	Within1Accuracy float64
	// MacroRecall is the unweighted mean of per-label recall over the
	// labels seen in gold, x100.
	MacroRecall float64
	// MAEBuckets is the mean absolute ordinal distance over pairs where
	// both labels resolve to an index.
	MAEBuckets float64
	// MAEMonths is the mean absolute midpoint distance in months over
	// all pairs; an unresolvable label contributes a 0-month midpoint.
	MAEMonths float64
}

// CountMismatch is returned when the prediction and gold streams have
// different lengths. Scoring misaligned streams would silently compare
// unrelated utterances.
type CountMismatch struct {
	Gold      int
	Predicted int
}

func (e *CountMismatch) Error() string {
	return fmt.Sprintf("label count mismatch: %d gold vs %d predicted", e.Gold, e.Predicted)
}

// Score computes all metrics for predicted against gold. Both slices
// must have the same length.
func Score(predicted, gold []features.Bucket) (Metrics, error) {
	if len(predicted) != len(gold) {
		return Metrics{}, &CountMismatch{Gold: len(gold), Predicted: len(predicted)}
	}
	if len(gold) == 0 {
		return Metrics{}, fmt.Errorf("nothing to score: empty label streams")
	}

	n := len(gold)
	exact := 0
	within1 := 0
	bucketErr, bucketPairs := 0, 0
	monthErr := 0

	goldCounts := make(map[features.Bucket]int)
	truePositives := make(map[features.Bucket]int)

	for i := range gold {
		g, p := gold[i], predicted[i]
		if g == p {
			exact++
			truePositives[g]++
		}
		goldCounts[g]++

		gi, gok := g.Index()
		pi, pok := p.Index()
		if gok && pok {
			d := gi - pi
			if d < 0 {
				d = -d
			}
			if d <= 1 {
				within1++
			}
			bucketErr += d
			bucketPairs++
		}

		dm := g.MidpointMonths() - p.MidpointMonths()
		if dm < 0 {
			dm = -dm
		}
		monthErr += dm
	}

	recallSum := 0.0
	for label, count := range goldCounts {
		recallSum += float64(truePositives[label]) / float64(count)
	}

	m := Metrics{
		Accuracy:        float64(exact) / float64(n) * 100,
		Within1Accuracy: float64(within1) / float64(n) * 100,
		MacroRecall:     recallSum / float64(len(goldCounts)) * 100,
		MAEMonths:       float64(monthErr) / float64(n),
	}
	if bucketPairs > 0 {
		m.MAEBuckets = float64(bucketErr) / float64(bucketPairs)
	}
	return m, nil
}

// Average reduces repeated runs of the same experiment to one bundle by
// arithmetic mean per metric.
func Average(bundles []Metrics) Metrics {
	if len(bundles) == 0 {
		return Metrics{}
	}
	var sum Metrics
	for _, m := range bundles {
		sum.Accuracy += m.Accuracy
		sum.Within1Accuracy += m.Within1Accuracy
		sum.MacroRecall += m.MacroRecall
		sum.MAEBuckets += m.MAEBuckets
		sum.MAEMonths += m.MAEMonths
	}
	n := float64(len(bundles))
	return Metrics{
		Accuracy:        sum.Accuracy / n,
		Within1Accuracy: sum.Within1Accuracy / n,
		MacroRecall:     sum.MacroRecall / n,
		MAEBuckets:      sum.MAEBuckets / n,
		MAEMonths:       sum.MAEMonths / n,
	}
}

// Report headings. These exact strings are matched when a report is
// parsed back; changing one breaks the external scoring contract.
const (
	headingAccuracy = "Exact Accuracy:"
	headingWithin1  = "Within-1-Bin Acc:"
	headingMacro    = "Macro Recall:"
	headingMAEBins  = "MAE (bins):"
	headingMAEMonth = "MAE (months):"
)

// Render writes the fixed human-readable report block for m.
func Render(w io.Writer, m Metrics) error {
	rule := strings.Repeat("=", 50)
	_, err := fmt.Fprintf(w,
		"%s\nEVALUATION METRICS\n%s\n"+
			"%-22s%.2f%%\n%-22s%.2f%%\n%-22s%.2f%%\n%-22s%.3f\n%-22s%.2f\n%s\n",
		rule, rule,
		headingAccuracy, m.Accuracy,
		headingWithin1, m.Within1Accuracy,
		headingMacro, m.MacroRecall,
		headingMAEBins, m.MAEBuckets,
		headingMAEMonth, m.MAEMonths,
		rule)
	return err
}

// UnparsableReport is returned when an expected metric heading is
// missing from a report. A missing accuracy number cannot be silently
// defaulted.
type UnparsableReport struct {
	Heading string
	Report  string
}

func (e *UnparsableReport) Error() string {
	return fmt.Sprintf("report is missing %q heading:\n%s", e.Heading, e.Report)
}

// ParseReport recovers a metrics bundle from a rendered report block by
// exact heading match.
func ParseReport(report string) (Metrics, error) {
	var m Metrics
	fields := []struct {
		heading string
		dst     *float64
	}{
		{headingAccuracy, &m.Accuracy},
		{headingWithin1, &m.Within1Accuracy},
		{headingMacro, &m.MacroRecall},
		{headingMAEBins, &m.MAEBuckets},
		{headingMAEMonth, &m.MAEMonths},
	}
	for _, f := range fields {
		v, ok := parseHeading(report, f.heading)
		if !ok {
			return Metrics{}, &UnparsableReport{Heading: f.heading, Report: report}
		}
		*f.dst = v
	}
	return m, nil
}

func parseHeading(report, heading string) (float64, bool) {
	for _, line := range strings.Split(report, "\n") {
		rest, ok := strings.CutPrefix(strings.TrimSpace(line), heading)
		if !ok {
			continue
		}
		rest = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(rest), "%"))
		v, err := strconv.ParseFloat(rest, 64)
		if err != nil {
			return 0, false
		}
		return v, true
	}
	return 0, false
}

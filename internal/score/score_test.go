// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package score

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ksolberg/agelex/internal/features"
)

func buckets(labels ...string) []features.Bucket {
	out := make([]features.Bucket, len(labels))
	for i, l := range labels {
		out[i] = features.Bucket(l)
	}
	return out
}

func TestScorePerfectPrediction(t *testing.T) {
	gold := buckets("1yo", "2yo", "3yo", "1yo")
	m, err := Score(gold, gold)
	require.NoError(t, err)

	assert.Equal(t, 100.0, m.Accuracy)
	assert.Equal(t, 100.0, m.Within1Accuracy)
	assert.Equal(t, 100.0, m.MacroRecall)
	assert.Equal(t, 0.0, m.MAEBuckets)
	assert.Equal(t, 0.0, m.MAEMonths)
}

func TestScoreMixedPrediction(t *testing.T) {
	gold := buckets("1yo", "2yo", "1yo")
	predicted := buckets("1yo", "1yo", "3yo")

	m, err := Score(predicted, gold)
	require.NoError(t, err)

	// One exact match of three; the 2yo/1yo pair is adjacent, the
	// 1yo/3yo pair is not; bucket error (0+1+2)/3.
	assert.InDelta(t, 33.33, m.Accuracy, 0.01)
	assert.InDelta(t, 66.67, m.Within1Accuracy, 0.01)
	assert.InDelta(t, 1.0, m.MAEBuckets, 1e-9)
	// Midpoints: |18-18| + |30-18| + |18-42| = 36 months over 3 pairs.
	assert.InDelta(t, 12.0, m.MAEMonths, 1e-9)
	// Recall: 1yo -> 1/2, 2yo -> 0; macro (0.5+0)/2.
	assert.InDelta(t, 25.0, m.MacroRecall, 1e-9)
}

func TestScoreWithin1NeverBelowExact(t *testing.T) {
	cases := [][2][]features.Bucket{
		{buckets("1yo", "2yo"), buckets("2yo", "2yo")},
		{buckets("UNK", "3yo"), buckets("1yo", "3yo")},
		{buckets("0yo", "6yo_plus"), buckets("6yo_plus", "0yo")},
	}
	for _, c := range cases {
		m, err := Score(c[1], c[0])
		require.NoError(t, err)
		assert.GreaterOrEqual(t, m.Within1Accuracy, m.Accuracy)
	}
}

func TestScoreUnknownLabels(t *testing.T) {
	gold := buckets("UNK", "2yo")
	predicted := buckets("UNK", "2yo")

	m, err := Score(predicted, gold)
	require.NoError(t, err)

	// UNK matches exactly but has no ordinal index, so it cannot count
	// toward within-1; the denominator still includes it.
	assert.Equal(t, 100.0, m.Accuracy)
	assert.Equal(t, 50.0, m.Within1Accuracy)
	// Bucket MAE averages only the resolvable pair.
	assert.Equal(t, 0.0, m.MAEBuckets)
	// UNK scores a 0-month midpoint by convention.
	assert.Equal(t, 0.0, m.MAEMonths)
}

func TestScoreCountMismatch(t *testing.T) {
	_, err := Score(buckets("1yo"), buckets("1yo", "2yo"))
	require.Error(t, err)

	var mismatch *CountMismatch
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, 2, mismatch.Gold)
	assert.Equal(t, 1, mismatch.Predicted)
	assert.Contains(t, err.Error(), "2 gold")
}

func TestScoreEmpty(t *testing.T) {
	_, err := Score(nil, nil)
	assert.Error(t, err)
}

func TestAverage(t *testing.T) {
	avg := Average([]Metrics{
		{Accuracy: 40, Within1Accuracy: 60, MacroRecall: 30, MAEBuckets: 1.5, MAEMonths: 20},
		{Accuracy: 60, Within1Accuracy: 80, MacroRecall: 50, MAEBuckets: 0.5, MAEMonths: 10},
	})
	assert.Equal(t, Metrics{Accuracy: 50, Within1Accuracy: 70, MacroRecall: 40, MAEBuckets: 1.0, MAEMonths: 15}, avg)

	assert.Equal(t, Metrics{}, Average(nil))
}

func TestRenderParseRoundTrip(t *testing.T) {
	m := Metrics{
		Accuracy:        33.33,
		Within1Accuracy: 66.67,
		MacroRecall:     25.00,
		MAEBuckets:      1.0,
		MAEMonths:       12.0,
	}

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, m))

	out := buf.String()
	assert.Contains(t, out, "EVALUATION METRICS")
	assert.Contains(t, out, "Exact Accuracy:")
	assert.Contains(t, out, "33.33%")

	parsed, err := ParseReport(out)
	require.NoError(t, err)
	assert.InDelta(t, m.Accuracy, parsed.Accuracy, 0.005)
	assert.InDelta(t, m.Within1Accuracy, parsed.Within1Accuracy, 0.005)
	assert.InDelta(t, m.MacroRecall, parsed.MacroRecall, 0.005)
	assert.InDelta(t, m.MAEBuckets, parsed.MAEBuckets, 0.0005)
	assert.InDelta(t, m.MAEMonths, parsed.MAEMonths, 0.005)
}

func TestParseReportMissingHeading(t *testing.T) {
	report := "EVALUATION METRICS\nExact Accuracy:       50.00%\n"
	_, err := ParseReport(report)
	require.Error(t, err)

	var unparsable *UnparsableReport
	require.ErrorAs(t, err, &unparsable)
	assert.Equal(t, "Within-1-Bin Acc:", unparsable.Heading)
}

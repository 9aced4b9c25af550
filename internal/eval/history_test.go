// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package eval

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ksolberg/agelex/internal/score"
	"github.com/ksolberg/agelex/internal/taxonomy"
)

func historyRows() []Row {
	return []Row{
		{
			Experiment: Experiment{
				Name:      "lexical_only",
				Catalogue: CatalogueAdditive,
				Groups:    taxonomy.NewGroupSet(taxonomy.GroupLexical),
			},
			Runs:    1,
			Metrics: score.Metrics{Accuracy: 40, Within1Accuracy: 70, MacroRecall: 35, MAEBuckets: 1.1, MAEMonths: 14},
		},
		{
			Experiment: Experiment{
				Name:      "full_extended",
				Catalogue: CatalogueAdditive,
				Groups:    taxonomy.CoarseGroups(),
			},
			Runs:    1,
			Metrics: score.Metrics{Accuracy: 52, Within1Accuracy: 81, MacroRecall: 44, MAEBuckets: 0.8, MAEMonths: 11},
		},
	}
}

func TestHistoryRecordAndQuery(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	h, err := OpenHistory(path)
	require.NoError(t, err)
	defer h.Close()

	ctx := context.Background()
	started := time.Date(2026, 8, 25, 10, 0, 0, 0, time.UTC)

	runID, err := h.RecordRun(ctx, started, 1, historyRows())
	require.NoError(t, err)
	assert.Equal(t, int64(1), runID)

	// A second run of the same matrix gets its own id.
	runID2, err := h.RecordRun(ctx, started.Add(time.Hour), 3, historyRows())
	require.NoError(t, err)
	assert.Equal(t, int64(2), runID2)

	results, err := h.ConfigHistory(ctx, "lexical_only")
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, int64(1), results[0].RunID)
	assert.Equal(t, int64(2), results[1].RunID)
	assert.Equal(t, 40.0, results[0].Accuracy)
	assert.Equal(t, 1.1, results[0].MAEBins)
	assert.True(t, started.Equal(results[0].StartedAt))
}

func TestHistoryUnknownConfig(t *testing.T) {
	h, err := OpenHistory(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	defer h.Close()

	results, err := h.ConfigHistory(context.Background(), "never_ran")
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestHistoryReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")

	h, err := OpenHistory(path)
	require.NoError(t, err)
	_, err = h.RecordRun(context.Background(), time.Now(), 1, historyRows()[:1])
	require.NoError(t, err)
	require.NoError(t, h.Close())

	// Schema creation is idempotent and data survives reopening.
	h2, err := OpenHistory(path)
	require.NoError(t, err)
	defer h2.Close()

	results, err := h2.ConfigHistory(context.Background(), "lexical_only")
	require.NoError(t, err)
	assert.Len(t, results, 1)
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package corpus

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func numberedRows(n int) []Utterance {
	rows := make([]Utterance, n)
	for i := range rows {
		rows[i] = Utterance{Text: fmt.Sprintf("utterance %d", i), AgeMonths: 24 + i%48, AgeKnown: true}
	}
	return rows
}

func TestSplitSizes(t *testing.T) {
	rows := numberedRows(100)

	train, dev, test := Split(rows, 0.2, 0.1, 7)
	assert.Len(t, test, 20)
	assert.Len(t, dev, 8)
	assert.Len(t, train, 72)
}

func TestSplitPartition(t *testing.T) {
	rows := numberedRows(50)

	train, dev, test := Split(rows, 0.2, 0.1, 42)
	seen := make(map[string]bool)
	for _, part := range [][]Utterance{train, dev, test} {
		for _, row := range part {
			require.False(t, seen[row.Text], "row %q appears twice", row.Text)
			seen[row.Text] = true
		}
	}
	assert.Len(t, seen, len(rows))
}

func TestSplitDeterministic(t *testing.T) {
	rows := numberedRows(60)

	train1, dev1, test1 := Split(rows, 0.2, 0.1, 99)
	train2, dev2, test2 := Split(rows, 0.2, 0.1, 99)
	assert.Equal(t, train1, train2)
	assert.Equal(t, dev1, dev2)
	assert.Equal(t, test1, test2)

	// A different seed shuffles differently.
	train3, _, _ := Split(rows, 0.2, 0.1, 100)
	assert.NotEqual(t, train1, train3)
}

func TestSplitDefaultFractions(t *testing.T) {
	rows := numberedRows(100)

	train, dev, test := Split(rows, 0, -1, 7)
	assert.Len(t, test, 20)
	assert.Len(t, dev, 8)
	assert.Len(t, train, 72)
}

func TestSplitLeavesInputUntouched(t *testing.T) {
	rows := numberedRows(30)
	original := make([]Utterance, len(rows))
	copy(original, rows)

	Split(rows, 0.2, 0.1, 5)
	assert.Equal(t, original, rows)
}

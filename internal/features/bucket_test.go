// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package features

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBucketForMonths(t *testing.T) {
	tests := []struct {
		name   string
		months int
		known  bool
		want   Bucket
	}{
		{"newborn", 0, true, Bucket0yo},
		{"eleven months", 11, true, Bucket0yo},
		{"first birthday", 12, true, Bucket1yo},
		{"twenty-three months is still 1yo", 23, true, Bucket1yo},
		{"twenty-four months is 2yo", 24, true, Bucket2yo},
		{"thirty-five months", 35, true, Bucket2yo},
		{"three years", 36, true, Bucket3yo},
		{"four years", 48, true, Bucket4yo},
		{"five years", 60, true, Bucket5yo},
		{"six years", 72, true, Bucket6yoPlus},
		{"ten years", 120, true, Bucket6yoPlus},
		{"unknown age", 30, false, BucketUnknown},
		{"negative age", -5, true, BucketUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BucketForMonths(tt.months, tt.known))
		})
	}
}

func TestBucketIndex(t *testing.T) {
	for i, b := range BucketOrder {
		idx, ok := b.Index()
		require.True(t, ok, "bucket %s should have an index", b)
		assert.Equal(t, i, idx)
	}

	_, ok := BucketUnknown.Index()
	assert.False(t, ok, "UNK must not resolve to an ordinal index")

	_, ok = Bucket("bogus").Index()
	assert.False(t, ok)
}

func TestBucketMidpoints(t *testing.T) {
	// Each orderable bucket's midpoint sits 6 months past its lower edge.
	want := map[Bucket]int{
		Bucket0yo: 6, Bucket1yo: 18, Bucket2yo: 30, Bucket3yo: 42,
		Bucket4yo: 54, Bucket5yo: 66, Bucket6yoPlus: 78,
	}
	for b, months := range want {
		assert.Equal(t, months, b.MidpointMonths(), "midpoint of %s", b)
	}

	// The unknown bucket scores as 0 months by convention.
	assert.Equal(t, 0, BucketUnknown.MidpointMonths())
}

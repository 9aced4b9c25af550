// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package features turns cleaned utterances into labeled feature records.
// Each record is a comma-joined token sequence with the age-bucket label
// as the final field, the format the external classifier consumes.
package features

// Bucket is a discrete, ordered age category. The ordering underlies the
// ordinal metrics (within-1 accuracy, bucket MAE); each bucket's midpoint
// in months underlies the month-scale error.
type Bucket string

const (
	Bucket0yo     Bucket = "0yo"
	Bucket1yo     Bucket = "1yo"
	Bucket2yo     Bucket = "2yo"
	Bucket3yo     Bucket = "3yo"
	Bucket4yo     Bucket = "4yo"
	Bucket5yo     Bucket = "5yo"
	Bucket6yoPlus Bucket = "6yo_plus"

	// BucketUnknown labels utterances with no usable age. It has no
	// ordinal index and is excluded from index-based metrics.
	BucketUnknown Bucket = "UNK"
)

// BucketOrder lists the orderable buckets from youngest to oldest.
// BucketUnknown is deliberately absent.
var BucketOrder = []Bucket{
	Bucket0yo,
	Bucket1yo,
	Bucket2yo,
	Bucket3yo,
	Bucket4yo,
	Bucket5yo,
	Bucket6yoPlus,
}

var bucketIndex = func() map[Bucket]int {
	m := make(map[Bucket]int, len(BucketOrder))
	for i, b := range BucketOrder {
		m[b] = i
	}
	return m
}()

// bucketMidpoints maps each bucket to the midpoint of its month range.
// 6yo_plus is open-ended; 78 is an estimate for 72+ months.
var bucketMidpoints = map[Bucket]int{
	Bucket0yo:     6,
	Bucket1yo:     18,
	Bucket2yo:     30,
	Bucket3yo:     42,
	Bucket4yo:     54,
	Bucket5yo:     66,
	Bucket6yoPlus: 78,
}

// BucketForMonths assigns the age bucket for an age in months. Each year
// bucket covers [12y, 12y+12) months, so 23 months is still 1yo and 24
// months is 2yo. Negative ages are treated as unknown.
func BucketForMonths(months int, known bool) Bucket {
	if !known || months < 0 {
		return BucketUnknown
	}
	switch {
	case months < 12:
		return Bucket0yo
	case months < 24:
		return Bucket1yo
	case months < 36:
		return Bucket2yo
	case months < 48:
		return Bucket3yo
	case months < 60:
		return Bucket4yo
	case months < 72:
		return Bucket5yo
	default:
		return Bucket6yoPlus
	}
}

// Index returns the bucket's position in the age ordering. The second
// result is false for BucketUnknown and for labels outside the known set.
func (b Bucket) Index() (int, bool) {
	i, ok := bucketIndex[b]
	return i, ok
}

// MidpointMonths returns the bucket's representative age in months.
// Unknown or unrecognized labels score as 0 months; this follows the
// original scoring convention and inflates month error for such labels.
func (b Bucket) MidpointMonths() int {
	return bucketMidpoints[b]
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package corpus

import (
	"math/rand"
)

// Split partitions rows into train/dev/test with a seeded shuffle so
// repeated runs produce identical splits. testFraction of all rows is
// held out for test, then devFraction of the remainder for dev.
func Split(rows []Utterance, testFraction, devFraction float64, seed int64) (train, dev, test []Utterance) {
	if testFraction <= 0 || testFraction >= 1 {
		testFraction = 0.2
	}
	if devFraction <= 0 || devFraction >= 1 {
		devFraction = 0.1
	}

	shuffled := make([]Utterance, len(rows))
	copy(shuffled, rows)
	rng := rand.New(rand.NewSource(seed))
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	testN := int(float64(len(shuffled)) * testFraction)
	rest := shuffled[:len(shuffled)-testN]
	test = shuffled[len(shuffled)-testN:]

	devN := int(float64(len(rest)) * devFraction)
	train = rest[:len(rest)-devN]
	dev = rest[len(rest)-devN:]
	return train, dev, test
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package features

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ksolberg/agelex/pkg/types"
)

func tokenSet(rec Record) map[string]bool {
	set := make(map[string]bool, len(rec.Tokens))
	for _, tok := range rec.Tokens {
		set[tok] = true
	}
	return set
}

func hasBase(rec Record, base string) bool {
	for _, tok := range rec.Tokens {
		if BaseName(tok) == base {
			return true
		}
	}
	return false
}

func TestExtractBasicFeatures(t *testing.T) {
	e := NewExtractor(types.ExtractConfig{}, nil)
	rec := e.Extract("the dogs are running", 30, true)

	set := tokenSet(rec)
	assert.True(t, set["word_count=4"])
	assert.True(t, set["unique_words=4"])
	assert.True(t, set["ttr=1.00"])
	assert.True(t, set["first_word=the"])
	assert.True(t, set["last_word=running"])
	assert.True(t, set["char_len=20"])
	assert.True(t, set["has_ing"], "running carries -ing")
	assert.True(t, set["has_3sg_or_plural"], "dogs carries -s")
	assert.Equal(t, Bucket2yo, rec.Label)

	// Extended families stay out without the flag.
	assert.False(t, hasBase(rec, "bigram"))
	assert.False(t, hasBase(rec, "pos"))
}

func TestExtractExtendedFeatures(t *testing.T) {
	e := NewExtractor(types.ExtractConfig{Extended: true}, nil)
	rec := e.Extract("he runs because the dogs don't stop", 70, true)

	set := tokenSet(rec)
	assert.True(t, set["bigram=he_runs"])
	assert.True(t, set["trigram=he_runs_because"])
	assert.True(t, set["has_marker_because"])
	assert.True(t, set["has_plural"])
	assert.True(t, set["has_negation"], "don't counts as negation")
	assert.True(t, hasBase(rec, "pos"))
	assert.True(t, hasBase(rec, "pos_bigram"))
	assert.True(t, hasBase(rec, "pos_trigram"))
	assert.Equal(t, Bucket5yo, rec.Label)
}

func TestExtractUnknownAge(t *testing.T) {
	e := NewExtractor(types.ExtractConfig{}, nil)
	rec := e.Extract("hi there friend", 0, false)
	assert.Equal(t, BucketUnknown, rec.Label)
}

func TestExtractUnintelligible(t *testing.T) {
	e := NewExtractor(types.ExtractConfig{}, nil)
	rec := e.Extract("xxx want xxx cookie", 20, true)

	set := tokenSet(rec)
	assert.True(t, set["unintelligible_count=2"])
	assert.True(t, set["unintelligible_prop=0.50"])
	assert.True(t, set["unintelligible_bin=high"])
	assert.True(t, set["has_unintelligible"])
	assert.Equal(t, Bucket1yo, rec.Label)
}

func TestExtractDeterministic(t *testing.T) {
	e := NewExtractor(types.ExtractConfig{Extended: true}, nil)
	a := e.Extract("the cat sat on the mat", 40, true)
	b := e.Extract("the cat sat on the mat", 40, true)
	require.Equal(t, a, b, "extraction must be deterministic, order included")
}

func TestExtractNoCommasInTokens(t *testing.T) {
	e := NewExtractor(types.ExtractConfig{Extended: true}, nil)
	rec := e.Extract("look , a train", 28, true)
	for _, tok := range rec.Tokens {
		assert.False(t, strings.Contains(tok, ","), "token %q leaks a comma", tok)
	}
}

func TestHeuristicTagger(t *testing.T) {
	tags := HeuristicTagger{}.Tag([]string{"the", "dogs", "running", "quickly", "5", "he"})
	assert.Equal(t, []string{"DT", "NNS", "VBG", "RB", "CD", "PRP"}, tags)
}

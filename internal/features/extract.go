// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package features

import (
	"fmt"
	"strings"

	"github.com/ksolberg/agelex/pkg/types"
)

// functionWords is the closed-class vocabulary behind the function-word
// feature family and the prop_function_words proportion.
var functionWords = map[string]bool{
	"the": true, "a": true, "an": true,
	"and": true, "but": true, "or": true,
	"because": true, "if": true, "when": true, "that": true, "so": true,
	"of": true, "to": true, "in": true, "on": true, "at": true,
	"with": true, "for": true, "from": true, "by": true,
	"i": true, "you": true, "he": true, "she": true, "it": true,
	"we": true, "they": true, "me": true, "him": true, "her": true,
	"my": true, "your": true, "his": true, "its": true, "our": true,
	"this": true, "these": true, "those": true,
	"is": true, "am": true, "are": true, "was": true, "were": true,
	"be": true, "do": true, "does": true, "did": true,
	"can": true, "will": true, "would": true, "could": true, "should": true,
	"not": true, "no": true,
}

// discourseMarkers are the syntactic cue words surfaced as has_marker_*
// presence flags in the extended feature family.
var discourseMarkers = []string{"because", "when", "that", "if", "so"}

// unintelligibleTokens are the CHAT placeholders for speech the
// transcriber could not make out. The cleaner deliberately keeps them.
var unintelligibleTokens = map[string]bool{"xxx": true, "yyy": true}

// Tagger assigns one part-of-speech tag per token. The harness does not
// prescribe a tagger; any implementation producing a stable tag per
// token satisfies the contract.
type Tagger interface {
	Tag(tokens []string) []string
}

// Extractor computes the feature superset for one utterance at a time.
// Extraction is deterministic: the same input always yields the same
// token sequence in the same order.
type Extractor struct {
	cfg    types.ExtractConfig
	tagger Tagger
}

// NewExtractor creates an extractor. A nil tagger falls back to the
// built-in heuristic tagger.
func NewExtractor(cfg types.ExtractConfig, tagger Tagger) *Extractor {
	if tagger == nil {
		tagger = HeuristicTagger{}
	}
	return &Extractor{cfg: cfg, tagger: tagger}
}

// Extract computes the feature record for one utterance. ageKnown=false
// labels the record with the unknown bucket.
func (e *Extractor) Extract(utterance string, ageMonths int, ageKnown bool) Record {
	tokens := strings.Fields(utterance)
	lower := make([]string, len(tokens))
	for i, t := range tokens {
		lower[i] = strings.ToLower(t)
	}

	var feats []string
	add := func(name, value string) { feats = append(feats, EncodeToken(name, value)) }
	flag := func(name string) { feats = append(feats, EncodeFlag(name)) }

	n := len(tokens)
	uniq := make(map[string]bool, n)
	for _, t := range lower {
		uniq[t] = true
	}

	// Lexical statistics.
	add("word_count", fmt.Sprintf("%d", n))
	add("unique_words", fmt.Sprintf("%d", len(uniq)))
	add("ttr", ratio(len(uniq), n))
	if n > 0 {
		add("first_word", lower[0])
		add("last_word", lower[n-1])
	}
	add("char_len", fmt.Sprintf("%d", len(utterance)))

	// Function-word usage.
	fwCount := 0
	fwTypes := make(map[string]bool)
	for _, t := range lower {
		if functionWords[t] {
			fwCount++
			fwTypes[t] = true
		}
	}
	add("function_word_count", fmt.Sprintf("%d", fwCount))
	add("function_word_prop", ratio(fwCount, n))
	add("function_word_types", fmt.Sprintf("%d", len(fwTypes)))
	if fwCount > 0 {
		add("content_to_function_ratio", ratio(n-fwCount, fwCount))
	} else {
		add("content_to_function_ratio", "na")
	}

	// Morphology and inflection.
	morphemes := 0
	hasIng, hasEd, has3sg, hasPoss := false, false, false, false
	for _, t := range lower {
		morphemes += morphemeCount(t)
		switch {
		case strings.HasSuffix(t, "ing") && len(t) > 4:
			hasIng = true
		case strings.HasSuffix(t, "ed") && len(t) > 3:
			hasEd = true
		}
		if strings.HasSuffix(t, "'s") {
			hasPoss = true
		} else if strings.HasSuffix(t, "s") && len(t) > 1 {
			has3sg = true
		}
	}
	add("mlu_words", fmt.Sprintf("%d", n))
	add("morpheme_count", fmt.Sprintf("%d", morphemes))
	add("mlu_morphemes", fmt.Sprintf("%d", morphemes))
	if hasIng {
		flag("has_ing")
	}
	if hasEd {
		flag("has_ed")
	}
	if has3sg {
		flag("has_3sg_or_plural")
	}
	if hasPoss {
		flag("has_possessive")
	}

	// Intelligibility.
	unint := 0
	for _, t := range lower {
		if unintelligibleTokens[t] {
			unint++
		}
	}
	add("unintelligible_count", fmt.Sprintf("%d", unint))
	add("unintelligible_prop", ratio(unint, n))
	add("unintelligible_bin", unintelligibleBin(unint, n))
	if unint > 0 {
		flag("has_unintelligible")
	}

	// Word-class proportions.
	tags := e.tagger.Tag(lower)
	nouns, verbs := 0, 0
	for _, tag := range tags {
		switch {
		case strings.HasPrefix(tag, "NN"):
			nouns++
		case strings.HasPrefix(tag, "VB") || tag == "MD":
			verbs++
		}
	}
	add("prop_nouns", ratio(nouns, n))
	add("prop_verbs", ratio(verbs, n))
	add("prop_function_words", ratio(fwCount, n))

	if e.cfg.Extended {
		feats = e.appendExtended(feats, lower, tags)
	}

	return Record{
		Tokens: feats,
		Label:  BucketForMonths(ageMonths, ageKnown),
	}
}

// appendExtended adds the higher-order syntactic features: word and tag
// n-grams, per-token tags, discourse markers, and two morphosyntactic
// presence flags.
func (e *Extractor) appendExtended(feats []string, lower, tags []string) []string {
	add := func(name, value string) { feats = append(feats, EncodeToken(name, value)) }
	flag := func(name string) { feats = append(feats, EncodeFlag(name)) }

	for i := 0; i+1 < len(lower); i++ {
		add("bigram", lower[i]+"_"+lower[i+1])
	}
	for i := 0; i+2 < len(lower); i++ {
		add("trigram", lower[i]+"_"+lower[i+1]+"_"+lower[i+2])
	}
	for _, tag := range tags {
		add("pos", tag)
	}
	for i := 0; i+1 < len(tags); i++ {
		add("pos_bigram", tags[i]+"_"+tags[i+1])
	}
	for i := 0; i+2 < len(tags); i++ {
		add("pos_trigram", tags[i]+"_"+tags[i+1]+"_"+tags[i+2])
	}

	present := make(map[string]bool, len(lower))
	for _, t := range lower {
		present[t] = true
	}
	for _, m := range discourseMarkers {
		if present[m] {
			flag("has_marker_" + m)
		}
	}
	for _, t := range lower {
		if strings.HasSuffix(t, "s") && len(t) > 1 {
			flag("has_plural")
			break
		}
	}
	if present["not"] || present["don't"] {
		flag("has_negation")
	}
	return feats
}

// ratio formats numerator/denominator to two decimals; a zero
// denominator yields "0.00".
func ratio(num, den int) string {
	if den == 0 {
		return "0.00"
	}
	return fmt.Sprintf("%.2f", float64(num)/float64(den))
}

// morphemeCount approximates the morphemes in one token: the stem plus
// common inflectional suffixes.
func morphemeCount(t string) int {
	count := 1
	switch {
	case strings.HasSuffix(t, "ing") && len(t) > 4:
		count++
	case strings.HasSuffix(t, "ed") && len(t) > 3:
		count++
	case strings.HasSuffix(t, "'s"):
		count++
	case strings.HasSuffix(t, "s") && len(t) > 2:
		count++
	}
	return count
}

// unintelligibleBin coarsens the unintelligible proportion into three
// ordinal bins: none, low (under half), high.
func unintelligibleBin(unint, n int) string {
	switch {
	case unint == 0 || n == 0:
		return "none"
	case float64(unint)/float64(n) < 0.5:
		return "low"
	default:
		return "high"
	}
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package features

import (
	"strings"
	"unicode"
)

// closedClassTags maps closed-class words to their tags. Lookup wins
// over the suffix rules below.
var closedClassTags = map[string]string{
	"the": "DT", "a": "DT", "an": "DT", "this": "DT", "these": "DT", "those": "DT",
	"i": "PRP", "you": "PRP", "he": "PRP", "she": "PRP", "it": "PRP",
	"we": "PRP", "they": "PRP", "me": "PRP", "him": "PRP", "her": "PRP",
	"my": "PRP$", "your": "PRP$", "his": "PRP$", "its": "PRP$", "our": "PRP$",
	"of": "IN", "to": "IN", "in": "IN", "on": "IN", "at": "IN",
	"with": "IN", "for": "IN", "from": "IN", "by": "IN",
	"because": "IN", "if": "IN", "when": "WRB", "that": "IN",
	"and": "CC", "but": "CC", "or": "CC", "so": "CC",
	"is": "VBZ", "am": "VBP", "are": "VBP", "was": "VBD", "were": "VBD",
	"be": "VB", "do": "VB", "does": "VBZ", "did": "VBD",
	"can": "MD", "will": "MD", "would": "MD", "could": "MD", "should": "MD",
	"not": "RB", "no": "DT",
	"xxx": "UNK", "yyy": "UNK",
}

// HeuristicTagger is the default Tagger: closed-class lookup plus a few
// suffix rules, with NN as the fallback. It is intentionally crude; the
// pos feature family measures tag-sequence regularities, not tagging
// accuracy.
type HeuristicTagger struct{}

// Tag assigns one tag per token. Tokens are expected lowercased.
func (HeuristicTagger) Tag(tokens []string) []string {
	tags := make([]string, len(tokens))
	for i, t := range tokens {
		tags[i] = tagToken(t)
	}
	return tags
}

func tagToken(t string) string {
	if tag, ok := closedClassTags[t]; ok {
		return tag
	}
	if isNumeric(t) {
		return "CD"
	}
	switch {
	case strings.HasSuffix(t, "ing") && len(t) > 4:
		return "VBG"
	case strings.HasSuffix(t, "ed") && len(t) > 3:
		return "VBD"
	case strings.HasSuffix(t, "ly") && len(t) > 3:
		return "RB"
	case strings.HasSuffix(t, "'s"):
		return "POS"
	case strings.HasSuffix(t, "s") && len(t) > 2:
		return "NNS"
	default:
		return "NN"
	}
}

func isNumeric(t string) bool {
	if t == "" {
		return false
	}
	for _, r := range t {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

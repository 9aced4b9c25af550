// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package corpus

import (
	"regexp"
	"strings"
)

// CHAT annotation patterns stripped during cleaning. xxx/yyy
// unintelligibility placeholders are deliberately kept; they become
// features downstream.
var (
	bracketed    = regexp.MustCompile(`\[.*?\]`)
	parenthetic  = regexp.MustCompile(`\(.*?\)`)
	angled       = regexp.MustCompile(`<.*?>`)
	fillers      = regexp.MustCompile(`&-\w+`)
	incomplete   = regexp.MustCompile(`\+\.\.\.`)
	atSuffixes   = regexp.MustCompile(`@\w+`)
	timingMarks  = regexp.MustCompile(`[\x00-\x1F]*\d+_\d+[\x00-\x1F]*`)
	multiSpaces  = regexp.MustCompile(`\s+`)
	terminalPunc = map[string]bool{".": true, "?": true, "!": true}
)

// CleanText strips CHAT annotations and normalizes whitespace,
// returning the bare utterance text.
func CleanText(text string) string {
	text = bracketed.ReplaceAllString(text, "")
	text = parenthetic.ReplaceAllString(text, "")
	text = angled.ReplaceAllString(text, "")
	text = fillers.ReplaceAllString(text, "")
	text = incomplete.ReplaceAllString(text, "")
	text = atSuffixes.ReplaceAllString(text, "")
	text = timingMarks.ReplaceAllString(text, "")
	text = strings.TrimSpace(multiSpaces.ReplaceAllString(text, " "))

	tokens := strings.Fields(text)
	if len(tokens) > 0 && terminalPunc[tokens[len(tokens)-1]] {
		tokens = tokens[:len(tokens)-1]
	}
	return strings.Join(tokens, " ")
}

// Clean fills CleanText and WordCount for every utterance and drops
// rows that end up empty or shorter than minWords tokens.
func Clean(rows []Utterance, minWords int) []Utterance {
	if minWords <= 0 {
		minWords = 3
	}
	kept := make([]Utterance, 0, len(rows))
	for _, row := range rows {
		row.CleanText = CleanText(row.Text)
		row.WordCount = len(strings.Fields(row.CleanText))
		if row.WordCount >= minWords {
			kept = append(kept, row)
		}
	}
	return kept
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package corpus extracts child utterances from CHAT transcripts and
// prepares the cleaned, split tables the feature extractor consumes.
package corpus

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/ksolberg/agelex/pkg/types"
)

// Utterance is one transcribed utterance with its speaker's age.
// CleanText and WordCount are filled by the cleaning stage.
type Utterance struct {
	Text      string
	AgeMonths int
	AgeKnown  bool
	Corpus    string
	File      string
	CleanText string
	WordCount int
}

var utteranceLine = regexp.MustCompile(`^\*(\w+):\s*(.*)`)

// AgeToMonths converts the CHAT age format Y;MM.DD to months. ok is
// false for malformed ages.
func AgeToMonths(age string) (int, bool) {
	years, rest, found := strings.Cut(age, ";")
	if !found {
		return 0, false
	}
	months, _, _ := strings.Cut(rest, ".")
	y, err := strconv.Atoi(strings.TrimSpace(years))
	if err != nil {
		return 0, false
	}
	m, err := strconv.Atoi(strings.TrimSpace(months))
	if err != nil {
		return 0, false
	}
	return y*12 + m, true
}

// speakerAges reads @ID header lines and maps each target-child speaker
// code to its age in months. Non-child speakers and children without a
// parseable age are left out.
func speakerAges(lines []string) map[string]int {
	ages := make(map[string]int)
	for _, raw := range lines {
		line := strings.TrimSpace(strings.ReplaceAll(raw, "\ufeff", ""))
		if !strings.HasPrefix(line, "@ID:") {
			continue
		}
		parts := strings.Split(line, "|")
		if len(parts) < 5 {
			continue
		}
		speaker := strings.TrimSpace(parts[2])
		age := strings.TrimSpace(parts[3])
		role := ""
		if len(parts) > 7 {
			role = strings.TrimSpace(parts[7])
		}
		if !strings.Contains(role, "Target_Child") {
			continue
		}
		if months, ok := AgeToMonths(age); ok {
			ages[speaker] = months
		}
	}
	return ages
}

// ParseFile extracts target-child utterances with known ages from one
// .cha transcript.
func ParseFile(path, corpusName string) ([]Utterance, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening transcript %s: %w", path, err)
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading transcript %s: %w", path, err)
	}

	ages := speakerAges(lines)

	var utterances []Utterance
	for _, raw := range lines {
		if !strings.HasPrefix(raw, "*") {
			continue
		}
		m := utteranceLine.FindStringSubmatch(strings.TrimSpace(raw))
		if m == nil {
			continue
		}
		speaker, text := m[1], strings.TrimSpace(m[2])
		months, ok := ages[speaker]
		if !ok {
			continue
		}
		utterances = append(utterances, Utterance{
			Text:      text,
			AgeMonths: months,
			AgeKnown:  true,
			Corpus:    corpusName,
			File:      filepath.Base(path),
		})
	}
	return utterances, nil
}

// ParseAll walks each configured corpus directory and extracts
// utterances from every .cha transcript, reporting per-corpus progress
// to w.
func ParseAll(cfg types.CorpusConfig, w *os.File) ([]Utterance, error) {
	var all []Utterance
	for _, corpusName := range cfg.Corpora {
		dir := filepath.Join(cfg.RawDir, corpusName)
		entries, err := os.ReadDir(dir)
		if err != nil {
			return nil, fmt.Errorf("reading corpus directory %s: %w", dir, err)
		}
		names := make([]string, 0, len(entries))
		for _, entry := range entries {
			if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".cha") {
				names = append(names, entry.Name())
			}
		}
		sort.Strings(names)

		count := 0
		for _, name := range names {
			rows, err := ParseFile(filepath.Join(dir, name), corpusName)
			if err != nil {
				return nil, err
			}
			all = append(all, rows...)
			count += len(rows)
		}
		if w != nil {
			fmt.Fprintf(w, "%s: %d utterances from %d transcripts\n", corpusName, count, len(names))
		}
	}
	return all, nil
}

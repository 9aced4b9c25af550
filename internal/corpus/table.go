// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package corpus

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// Utterance table column layout. Parsed tables carry the first four
// columns; cleaned tables add clean_utterance and word_count.
var (
	rawHeader   = []string{"utterance", "age_months", "corpus", "file"}
	cleanHeader = []string{"utterance", "age_months", "corpus", "file", "clean_utterance", "word_count"}
)

// WriteTable writes rows as CSV. withClean selects the cleaned-table
// layout with the two extra columns.
func WriteTable(path string, rows []Utterance, withClean bool) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating table directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating table %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	header := rawHeader
	if withClean {
		header = cleanHeader
	}
	if err := w.Write(header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for _, row := range rows {
		age := ""
		if row.AgeKnown {
			age = strconv.Itoa(row.AgeMonths)
		}
		record := []string{row.Text, age, row.Corpus, row.File}
		if withClean {
			record = append(record, row.CleanText, strconv.Itoa(row.WordCount))
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("writing row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flushing table %s: %w", path, err)
	}
	return nil
}

// ReadTable reads an utterance CSV written by WriteTable, accepting
// either layout. An empty age_months field marks an unknown age.
func ReadTable(path string) ([]Utterance, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening table %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading table %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("table %s is empty", path)
	}

	header := records[0]
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[name] = i
	}
	for _, required := range rawHeader {
		if _, ok := col[required]; !ok {
			return nil, fmt.Errorf("table %s is missing column %q", path, required)
		}
	}

	rows := make([]Utterance, 0, len(records)-1)
	for i, record := range records[1:] {
		row := Utterance{
			Text:   record[col["utterance"]],
			Corpus: record[col["corpus"]],
			File:   record[col["file"]],
		}
		if age := record[col["age_months"]]; age != "" {
			months, err := strconv.Atoi(age)
			if err != nil {
				return nil, fmt.Errorf("table %s row %d: bad age_months %q", path, i+2, age)
			}
			row.AgeMonths = months
			row.AgeKnown = true
		}
		if c, ok := col["clean_utterance"]; ok {
			row.CleanText = record[c]
		}
		if c, ok := col["word_count"]; ok && record[c] != "" {
			if row.WordCount, err = strconv.Atoi(record[c]); err != nil {
				return nil, fmt.Errorf("table %s row %d: bad word_count %q", path, i+2, record[c])
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

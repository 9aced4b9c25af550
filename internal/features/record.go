// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package features

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// commaEscape stands in for a literal comma inside a token value so that
// record lines can always be split on every comma with the last field
// trusted as the label.
const commaEscape = "<COMMA>"

// Record is one utterance's feature tokens plus its age-bucket label.
// Token order carries no meaning for classification but is kept stable
// so derived files are reproducible.
type Record struct {
	Tokens []string
	Label  Bucket
}

// EncodeToken renders a name/value feature token, escaping any literal
// commas in the value. Presence flags are encoded with EncodeFlag.
func EncodeToken(name, value string) string {
	return name + "=" + strings.ReplaceAll(value, ",", commaEscape)
}

// EncodeFlag renders a bare presence-flag token.
func EncodeFlag(name string) string {
	return strings.ReplaceAll(name, ",", commaEscape)
}

// BaseName strips a token's value suffix, returning the feature name the
// taxonomy classifies.
func BaseName(token string) string {
	if i := strings.IndexByte(token, '='); i >= 0 {
		return token[:i]
	}
	return token
}

// String renders the record as a single comma-joined line.
func (r Record) String() string {
	parts := make([]string, 0, len(r.Tokens)+1)
	parts = append(parts, r.Tokens...)
	parts = append(parts, string(r.Label))
	return strings.Join(parts, ",")
}

// ParseRecord splits a record line into tokens and trailing label.
func ParseRecord(line string) (Record, error) {
	line = strings.TrimRight(line, "\r\n")
	if line == "" {
		return Record{}, fmt.Errorf("empty record line")
	}
	parts := strings.Split(line, ",")
	return Record{
		Tokens: parts[:len(parts)-1],
		Label:  Bucket(parts[len(parts)-1]),
	}, nil
}

// ReadRecords decodes all records from r, one per line.
func ReadRecords(r io.Reader) ([]Record, error) {
	var records []Record
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		if strings.TrimSpace(scanner.Text()) == "" {
			continue
		}
		rec, err := ParseRecord(scanner.Text())
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading records: %w", err)
	}
	return records, nil
}

// WriteRecords encodes records to w, one per line.
func WriteRecords(w io.Writer, records []Record) error {
	bw := bufio.NewWriter(w)
	for _, rec := range records {
		if _, err := bw.WriteString(rec.String()); err != nil {
			return err
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// ReadLabels returns just the trailing label of every record in r, in
// order. Scoring needs only the gold labels from a feature file.
func ReadLabels(r io.Reader) ([]Bucket, error) {
	records, err := ReadRecords(r)
	if err != nil {
		return nil, err
	}
	labels := make([]Bucket, len(records))
	for i, rec := range records {
		labels[i] = rec.Label
	}
	return labels, nil
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package taxonomy

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ksolberg/agelex/internal/features"
)

// FilterRecord keeps only the tokens whose group is in allowed, under
// the given granularity. The label is untouched.
func FilterRecord(rec features.Record, allowed GroupSet, g Granularity) features.Record {
	kept := make([]string, 0, len(rec.Tokens))
	for _, token := range rec.Tokens {
		group, ok := Classify(features.BaseName(token), g)
		if ok && allowed.Has(group) {
			kept = append(kept, token)
		}
	}
	return features.Record{Tokens: kept, Label: rec.Label}
}

// FilterRecords filters a whole stream with one granularity decision:
// detailed iff allowed names any extended-syntax sub-group. Picking the
// granularity once per pass keeps a sub-group and its parent coarse
// group from ever being interpreted inconsistently within one stream.
// An empty allowed set yields label-only records, the legal baseline.
func FilterRecords(records []features.Record, allowed GroupSet) []features.Record {
	g := Coarse
	if allowed.HasDetailedSubgroup() {
		g = Detailed
	}
	out := make([]features.Record, len(records))
	for i, rec := range records {
		out[i] = FilterRecord(rec, allowed, g)
	}
	return out
}

// FilterFile rewrites the feature stream at srcPath into dstPath,
// keeping only tokens in the allowed groups.
func FilterFile(srcPath, dstPath string, allowed GroupSet) error {
	src, err := os.Open(srcPath)
	if err != nil {
		return fmt.Errorf("opening %s: %w", srcPath, err)
	}
	defer src.Close()

	records, err := features.ReadRecords(src)
	if err != nil {
		return fmt.Errorf("reading %s: %w", srcPath, err)
	}
	filtered := FilterRecords(records, allowed)

	if err := os.MkdirAll(filepath.Dir(dstPath), 0o755); err != nil {
		return fmt.Errorf("creating filtered directory: %w", err)
	}
	dst, err := os.Create(dstPath)
	if err != nil {
		return fmt.Errorf("creating %s: %w", dstPath, err)
	}
	defer dst.Close()

	if err := features.WriteRecords(dst, filtered); err != nil {
		return fmt.Errorf("writing %s: %w", dstPath, err)
	}
	return nil
}

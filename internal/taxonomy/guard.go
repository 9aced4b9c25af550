// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package taxonomy

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/ksolberg/agelex/internal/features"
)

// SchemaViolation is the fatal error raised when the extractor emits a
// feature name the taxonomy cannot classify. Without this guard a
// renamed or newly added feature would be silently excluded from every
// experiment, corrupting every downstream comparison with no symptom.
type SchemaViolation struct {
	// Names lists each unmapped base name once, sorted.
	Names []string
}

func (e *SchemaViolation) Error() string {
	return fmt.Sprintf("unmapped feature names: %s", strings.Join(e.Names, ", "))
}

// Verify scans every record in every stream and classifies each token's
// base name under the coarse view. It returns a *SchemaViolation naming
// every offending feature if any name is unknown. The harness runs this
// once per invocation, over the full extracted superset, before any
// experiment executes.
func Verify(paths []string) error {
	unknown := make(map[string]bool)
	for _, path := range paths {
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("opening feature stream %s: %w", path, err)
		}
		records, err := features.ReadRecords(f)
		f.Close()
		if err != nil {
			return fmt.Errorf("reading feature stream %s: %w", path, err)
		}
		for _, rec := range records {
			for _, token := range rec.Tokens {
				name := features.BaseName(token)
				if _, ok := Classify(name, Coarse); !ok {
					unknown[name] = true
				}
			}
		}
	}
	if len(unknown) == 0 {
		return nil
	}
	names := make([]string, 0, len(unknown))
	for n := range unknown {
		names = append(names, n)
	}
	sort.Strings(names)
	return &SchemaViolation{Names: names}
}

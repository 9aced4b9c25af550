// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package eval

import (
	"fmt"

	"github.com/ksolberg/agelex/internal/taxonomy"
)

// Catalogue names the study an experiment belongs to. Catalogue order
// is also the results-table order.
type Catalogue string

const (
	CatalogueAdditive    Catalogue = "additive"
	CatalogueAblation    Catalogue = "ablation"
	CatalogueExtAdditive Catalogue = "ext_additive"
	CatalogueExtAblation Catalogue = "ext_ablation"
)

// Experiment is one named feature-group selection. The name doubles as
// the filtered-file and model-artifact key, so it must be unique across
// the whole matrix.
type Experiment struct {
	Name      string
	Catalogue Catalogue
	Groups    taxonomy.GroupSet
}

// Experiments returns the full experiment matrix in declaration order:
// the additive chain, the leave-one-out ablations, then the
// extended-syntax sub-group breakdowns. All four catalogues share one
// execution path in the driver.
func Experiments() []Experiment {
	all := taxonomy.CoarseGroups()
	allDetailed := taxonomy.DetailedGroups()

	// Everything except extended syntax; the fixed baseline the
	// sub-group additive study builds on.
	baseline := all.Without(taxonomy.GroupExtended)

	var exps []Experiment
	add := func(c Catalogue, name string, groups taxonomy.GroupSet) {
		exps = append(exps, Experiment{Name: name, Catalogue: c, Groups: groups})
	}

	// Additive chain: build up from lexical statistics to the full
	// coarse superset.
	add(CatalogueAdditive, "lexical_only",
		taxonomy.NewGroupSet(taxonomy.GroupLexical))
	add(CatalogueAdditive, "lexical_function",
		taxonomy.NewGroupSet(taxonomy.GroupLexical, taxonomy.GroupFunction))
	add(CatalogueAdditive, "+morphology",
		taxonomy.NewGroupSet(taxonomy.GroupLexical, taxonomy.GroupFunction, taxonomy.GroupMorph))
	add(CatalogueAdditive, "+intelligibility",
		taxonomy.NewGroupSet(taxonomy.GroupLexical, taxonomy.GroupFunction, taxonomy.GroupMorph, taxonomy.GroupIntel))
	add(CatalogueAdditive, "baseline_no_extended", baseline)
	add(CatalogueAdditive, "full_extended", all)

	// Leave-one-out ablations from the full coarse superset.
	add(CatalogueAblation, "full_minus_lexical", all.Without(taxonomy.GroupLexical))
	add(CatalogueAblation, "full_minus_function_words", all.Without(taxonomy.GroupFunction))
	add(CatalogueAblation, "full_minus_morphology", all.Without(taxonomy.GroupMorph))
	add(CatalogueAblation, "full_minus_intelligibility", all.Without(taxonomy.GroupIntel))
	add(CatalogueAblation, "full_minus_word_class_props", all.Without(taxonomy.GroupClassProp))
	add(CatalogueAblation, "full_minus_extended", all.Without(taxonomy.GroupExtended))

	// Extended-syntax sub-groups added back to the baseline one at a
	// time, then all at once.
	add(CatalogueExtAdditive, "baseline+bigrams", baseline.With(taxonomy.GroupExtBigrams))
	add(CatalogueExtAdditive, "baseline+trigrams", baseline.With(taxonomy.GroupExtTrigrams))
	add(CatalogueExtAdditive, "baseline+pos", baseline.With(taxonomy.GroupExtPOS))
	add(CatalogueExtAdditive, "baseline+pos_bigrams", baseline.With(taxonomy.GroupExtPOSBigrams))
	add(CatalogueExtAdditive, "baseline+pos_trigrams", baseline.With(taxonomy.GroupExtPOSTrigrams))
	add(CatalogueExtAdditive, "baseline+markers", baseline.With(taxonomy.GroupExtMarkers))
	add(CatalogueExtAdditive, "full_detailed", allDetailed)

	// Extended-syntax sub-groups removed from the full detailed set.
	add(CatalogueExtAblation, "full_minus_bigrams", allDetailed.Without(taxonomy.GroupExtBigrams))
	add(CatalogueExtAblation, "full_minus_trigrams", allDetailed.Without(taxonomy.GroupExtTrigrams))
	add(CatalogueExtAblation, "full_minus_pos", allDetailed.Without(taxonomy.GroupExtPOS))
	add(CatalogueExtAblation, "full_minus_pos_bigrams", allDetailed.Without(taxonomy.GroupExtPOSBigrams))
	add(CatalogueExtAblation, "full_minus_pos_trigrams", allDetailed.Without(taxonomy.GroupExtPOSTrigrams))
	add(CatalogueExtAblation, "full_minus_markers", allDetailed.Without(taxonomy.GroupExtMarkers))

	return exps
}

// ValidateMatrix checks the matrix invariants: unique names and group
// sets within the known universe. Returns the first violation found.
func ValidateMatrix(exps []Experiment) error {
	universe := taxonomy.CoarseGroups()
	for g := range taxonomy.DetailedGroups() {
		universe[g] = true
	}
	seen := make(map[string]bool, len(exps))
	for _, exp := range exps {
		if seen[exp.Name] {
			return fmt.Errorf("duplicate experiment name %q", exp.Name)
		}
		seen[exp.Name] = true
		for g := range exp.Groups {
			if !universe.Has(g) {
				return fmt.Errorf("experiment %q names unknown group %q", exp.Name, g)
			}
		}
	}
	return nil
}

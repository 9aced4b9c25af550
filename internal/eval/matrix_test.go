// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package eval

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ksolberg/agelex/internal/taxonomy"
)

func TestExperimentsMatrix(t *testing.T) {
	exps := Experiments()
	require.Len(t, exps, 25)
	require.NoError(t, ValidateMatrix(exps))

	// Catalogue order is fixed: additive, ablation, ext_additive,
	// ext_ablation, each block contiguous.
	wantOrder := []Catalogue{}
	wantOrder = append(wantOrder, repeat(CatalogueAdditive, 6)...)
	wantOrder = append(wantOrder, repeat(CatalogueAblation, 6)...)
	wantOrder = append(wantOrder, repeat(CatalogueExtAdditive, 7)...)
	wantOrder = append(wantOrder, repeat(CatalogueExtAblation, 6)...)
	for i, exp := range exps {
		assert.Equal(t, wantOrder[i], exp.Catalogue, "experiment %d (%s)", i, exp.Name)
	}

	// The additive chain starts at one group and ends at the full
	// coarse superset.
	assert.Equal(t, "lexical_only", exps[0].Name)
	assert.Len(t, exps[0].Groups, 1)
	assert.Equal(t, "full_extended", exps[5].Name)
	assert.Equal(t, taxonomy.CoarseGroups(), exps[5].Groups)
}

func repeat(c Catalogue, n int) []Catalogue {
	out := make([]Catalogue, n)
	for i := range out {
		out[i] = c
	}
	return out
}

func TestAblationsDropExactlyOneGroup(t *testing.T) {
	for _, exp := range Experiments() {
		switch exp.Catalogue {
		case CatalogueAblation:
			assert.Len(t, exp.Groups, 5, "%s", exp.Name)
			assert.False(t, exp.Groups.HasDetailedSubgroup(), "%s stays coarse", exp.Name)
		case CatalogueExtAblation:
			assert.Len(t, exp.Groups, 10, "%s", exp.Name)
			assert.True(t, exp.Groups.HasDetailedSubgroup(), "%s", exp.Name)
		}
	}
}

func TestExtAdditiveBuildsOnBaseline(t *testing.T) {
	baseline := taxonomy.CoarseGroups().Without(taxonomy.GroupExtended)
	for _, exp := range Experiments() {
		if exp.Catalogue != CatalogueExtAdditive {
			continue
		}
		for g := range baseline {
			assert.True(t, exp.Groups.Has(g), "%s must include baseline group %s", exp.Name, g)
		}
		if exp.Name == "full_detailed" {
			assert.Equal(t, taxonomy.DetailedGroups(), exp.Groups)
		} else {
			assert.Len(t, exp.Groups, 6, "%s adds exactly one sub-group", exp.Name)
		}
	}
}

func TestValidateMatrixRejectsDuplicates(t *testing.T) {
	exps := []Experiment{
		{Name: "dup", Catalogue: CatalogueAdditive, Groups: taxonomy.NewGroupSet(taxonomy.GroupLexical)},
		{Name: "dup", Catalogue: CatalogueAblation, Groups: taxonomy.NewGroupSet(taxonomy.GroupMorph)},
	}
	assert.Error(t, ValidateMatrix(exps))
}

func TestValidateMatrixRejectsUnknownGroup(t *testing.T) {
	exps := []Experiment{
		{Name: "bad", Catalogue: CatalogueAdditive, Groups: taxonomy.NewGroupSet(taxonomy.Group("martian"))},
	}
	assert.Error(t, ValidateMatrix(exps))
}

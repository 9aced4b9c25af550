// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package taxonomy partitions the feature-name space into semantic
// groups and filters feature streams down to group subsets. Two views
// exist over the same name universe: a coarse one where every
// higher-order syntactic feature falls into one group, and a detailed
// one where that group splits into named sub-groups. All other groups
// are identical across the two views.
package taxonomy

import (
	"sort"
	"strings"
)

// Group names a partition of the feature-name space.
type Group string

// Coarse groups.
const (
	GroupLexical   Group = "lexical_length"
	GroupFunction  Group = "function_words"
	GroupMorph     Group = "morphology_inflection"
	GroupIntel     Group = "intelligibility"
	GroupClassProp Group = "word_class_props"
	GroupExtended  Group = "extended_syntax"
)

// Detailed sub-groups of GroupExtended.
const (
	GroupExtBigrams     Group = "ext_bigrams"
	GroupExtTrigrams    Group = "ext_trigrams"
	GroupExtPOS         Group = "ext_pos"
	GroupExtPOSBigrams  Group = "ext_pos_bigrams"
	GroupExtPOSTrigrams Group = "ext_pos_trigrams"
	GroupExtMarkers     Group = "ext_markers"
)

// Granularity selects which view of the partition Classify answers for.
type Granularity int

const (
	// Coarse folds every extended-syntax feature into GroupExtended.
	Coarse Granularity = iota
	// Detailed answers with the extended-syntax sub-groups instead.
	Detailed
)

// nameGroups maps each fixed feature base name to its detailed group.
// Coarse classification derives from this table by collapsing the
// ext_* sub-groups, so the two views can never drift apart.
var nameGroups = map[string]Group{
	"word_count":   GroupLexical,
	"unique_words": GroupLexical,
	"ttr":          GroupLexical,
	"first_word":   GroupLexical,
	"last_word":    GroupLexical,
	"char_len":     GroupLexical,

	"function_word_count":       GroupFunction,
	"function_word_prop":        GroupFunction,
	"function_word_types":       GroupFunction,
	"content_to_function_ratio": GroupFunction,

	"mlu_words":         GroupMorph,
	"morpheme_count":    GroupMorph,
	"mlu_morphemes":     GroupMorph,
	"has_ing":           GroupMorph,
	"has_ed":            GroupMorph,
	"has_3sg_or_plural": GroupMorph,
	"has_possessive":    GroupMorph,

	"unintelligible_count": GroupIntel,
	"unintelligible_prop":  GroupIntel,
	"unintelligible_bin":   GroupIntel,
	"has_unintelligible":   GroupIntel,

	"prop_nouns":          GroupClassProp,
	"prop_verbs":          GroupClassProp,
	"prop_function_words": GroupClassProp,

	"bigram":       GroupExtBigrams,
	"trigram":      GroupExtTrigrams,
	"pos":          GroupExtPOS,
	"pos_bigram":   GroupExtPOSBigrams,
	"pos_trigram":  GroupExtPOSTrigrams,
	"has_plural":   GroupExtMarkers,
	"has_negation": GroupExtMarkers,
}

// markerPrefix is the one open-ended name family: has_marker_because,
// has_marker_when, and so on.
const markerPrefix = "has_marker_"

var detailedSubgroups = map[Group]bool{
	GroupExtBigrams:     true,
	GroupExtTrigrams:    true,
	GroupExtPOS:         true,
	GroupExtPOSBigrams:  true,
	GroupExtPOSTrigrams: true,
	GroupExtMarkers:     true,
}

// Classify maps a feature base name (value suffix already stripped) to
// its group under the given granularity. ok is false only for names
// outside the known universe; that is a deliberate signal the schema
// guard turns into a fatal error, never a default bucket.
func Classify(name string, g Granularity) (Group, bool) {
	group, ok := nameGroups[name]
	if !ok {
		if strings.HasPrefix(name, markerPrefix) {
			group = GroupExtMarkers
		} else {
			return "", false
		}
	}
	if g == Coarse && detailedSubgroups[group] {
		return GroupExtended, true
	}
	return group, true
}

// IsDetailedSubgroup reports whether g is one of the extended-syntax
// sub-groups.
func IsDetailedSubgroup(g Group) bool {
	return detailedSubgroups[g]
}

// GroupSet is a set of groups, the allowed-group shape experiments are
// declared in.
type GroupSet map[Group]bool

// NewGroupSet builds a set from the given groups.
func NewGroupSet(groups ...Group) GroupSet {
	s := make(GroupSet, len(groups))
	for _, g := range groups {
		s[g] = true
	}
	return s
}

// Has reports membership.
func (s GroupSet) Has(g Group) bool { return s[g] }

// HasDetailedSubgroup reports whether the set names any extended-syntax
// sub-group; the filter uses this to pick its granularity.
func (s GroupSet) HasDetailedSubgroup() bool {
	for g := range s {
		if detailedSubgroups[g] {
			return true
		}
	}
	return false
}

// With returns a copy of the set with g added.
func (s GroupSet) With(g Group) GroupSet {
	out := make(GroupSet, len(s)+1)
	for k := range s {
		out[k] = true
	}
	out[g] = true
	return out
}

// Without returns a copy of the set with g removed.
func (s GroupSet) Without(g Group) GroupSet {
	out := make(GroupSet, len(s))
	for k := range s {
		if k != g {
			out[k] = true
		}
	}
	return out
}

// Sorted returns the group names in lexical order, the rendering used
// in the results table.
func (s GroupSet) Sorted() []string {
	names := make([]string, 0, len(s))
	for g := range s {
		names = append(names, string(g))
	}
	sort.Strings(names)
	return names
}

// CoarseGroups returns the full coarse universe.
func CoarseGroups() GroupSet {
	return NewGroupSet(
		GroupLexical, GroupFunction, GroupMorph,
		GroupIntel, GroupClassProp, GroupExtended,
	)
}

// DetailedGroups returns the full detailed universe: the coarse groups
// with extended_syntax replaced by its sub-groups.
func DetailedGroups() GroupSet {
	return NewGroupSet(
		GroupLexical, GroupFunction, GroupMorph,
		GroupIntel, GroupClassProp,
		GroupExtBigrams, GroupExtTrigrams, GroupExtPOS,
		GroupExtPOSBigrams, GroupExtPOSTrigrams, GroupExtMarkers,
	)
}

// Subgroups returns the extended-syntax sub-groups in declaration order.
func Subgroups() []Group {
	return []Group{
		GroupExtBigrams, GroupExtTrigrams, GroupExtPOS,
		GroupExtPOSBigrams, GroupExtPOSTrigrams, GroupExtMarkers,
	}
}

// Package trm provides vocabulary predicates for the Thesaurus of Religious
// Metaphors concept scheme.
//
// Concepts are SKOS concepts. Their notations carry one of two datatypes:
// TCPath for the thematic category path the hierarchy is built from, and
// HTEPath for the concept's position in the full Historical Thesaurus.
//
// Predicates use three-level dotted notation and are registered with the
// semstreams vocabulary in init(), each mapped to its standard IRI:
//
//	trm.entity.type        → rdf:type
//	trm.label.preferred    → skos:prefLabel
//	trm.label.alternate    → skos:altLabel
//	trm.hierarchy.notation → skos:notation
//	trm.hierarchy.broader  → skos:broader
//
// Import this package to auto-register predicates:
//
//	import _ "github.com/ben-tinc/trm-preview/vocabulary/trm"
package trm

package trm

import "github.com/c360studio/semstreams/vocabulary"

// Entity predicates.
const (
	// EntityType classifies a node as concept or concept scheme.
	EntityType = "trm.entity.type"
)

// Label predicates.
const (
	// LabelPreferred is the language tagged preferred label.
	LabelPreferred = "trm.label.preferred"

	// LabelAlternate is an alternate label, such as an abbreviation.
	LabelAlternate = "trm.label.alternate"
)

// Hierarchy predicates.
const (
	// HierarchyNotation is a typed path literal (TCPath or HTEPath).
	HierarchyNotation = "trm.hierarchy.notation"

	// HierarchyBroader links a concept to its nearest existing ancestor.
	// Domain: concept, Range: concept
	HierarchyBroader = "trm.hierarchy.broader"
)

func init() {
	vocabulary.Register(EntityType,
		vocabulary.WithDescription("Node class: skos:Concept or skos:ConceptScheme"),
		vocabulary.WithDataType("entity_id"),
		vocabulary.WithIRI(RDFType))

	vocabulary.Register(LabelPreferred,
		vocabulary.WithDescription("Preferred label"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(vocabulary.SkosPrefLabel))

	vocabulary.Register(LabelAlternate,
		vocabulary.WithDescription("Alternate label"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(vocabulary.SkosAltLabel))

	vocabulary.Register(HierarchyNotation,
		vocabulary.WithDescription("Hierarchy path notation typed as TCPath or HTEPath"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(SkosNotation))

	vocabulary.Register(HierarchyBroader,
		vocabulary.WithDescription("Nearest existing ancestor concept"),
		vocabulary.WithDataType("entity_id"),
		vocabulary.WithIRI(vocabulary.SkosBroader))
}

// PredicateIRI returns the standard IRI registered for a predicate.
// Unregistered predicates fall back to the TRM namespace.
func PredicateIRI(predicate string) string {
	if meta := vocabulary.GetPredicateMetadata(predicate); meta != nil && meta.StandardIRI != "" {
		return meta.StandardIRI
	}
	return Namespace + predicate
}

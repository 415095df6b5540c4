package trm

// Namespace is the base IRI prefix for all TRM terms.
const Namespace = "https://w3id.org/TRM/"

// ConceptNamespace is the base IRI for concept instances.
const ConceptNamespace = Namespace + "concepts/"

// SchemeNamespace is the base IRI for concept schemes.
const SchemeNamespace = Namespace + "conceptSchemes/"

// SchemeBase is the TRM base concept scheme.
const SchemeBase = SchemeNamespace + "TRMBase"

// Standard namespaces used by the export.
const (
	RDFNamespace  = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"
	RDFSNamespace = "http://www.w3.org/2000/01/rdf-schema#"
	XSDNamespace  = "http://www.w3.org/2001/XMLSchema#"
	SKOSNamespace = "http://www.w3.org/2004/02/skos/core#"
)

// Standard ontology IRI constants for mappings.
const (
	// RDFType is rdf:type.
	RDFType = RDFNamespace + "type"

	// SkosNotation is skos:notation.
	SkosNotation = SKOSNamespace + "notation"
)

// Class IRIs.
const (
	// ClassConcept is skos:Concept.
	ClassConcept = SKOSNamespace + "Concept"

	// ClassConceptScheme is skos:ConceptScheme.
	ClassConceptScheme = SKOSNamespace + "ConceptScheme"
)

// Datatype IRIs for notation literals.
const (
	// DatatypeTCPath types the thematic category path (the signature).
	DatatypeTCPath = Namespace + "TCPath"

	// DatatypeHTEPath types the full Historical Thesaurus path.
	DatatypeHTEPath = Namespace + "HTEPath"
)

// ConceptIRI builds a concept IRI from a base and an identifier.
// An empty base means ConceptNamespace.
func ConceptIRI(base, id string) string {
	if base == "" {
		base = ConceptNamespace
	}
	return base + id + "/"
}

package trm

import (
	"testing"

	"github.com/c360studio/semstreams/vocabulary"
)

func TestPredicatesRegistered(t *testing.T) {
	predicates := []string{
		EntityType,
		LabelPreferred,
		LabelAlternate,
		HierarchyNotation,
		HierarchyBroader,
	}

	for _, pred := range predicates {
		t.Run(pred, func(t *testing.T) {
			meta := vocabulary.GetPredicateMetadata(pred)
			if meta == nil || meta.Description == "" {
				t.Errorf("predicate %s not registered or missing description", pred)
			}
		})
	}
}

func TestPredicateIRIMappings(t *testing.T) {
	tests := []struct {
		predicate   string
		expectedIRI string
	}{
		{EntityType, "http://www.w3.org/1999/02/22-rdf-syntax-ns#type"},
		{LabelPreferred, "http://www.w3.org/2004/02/skos/core#prefLabel"},
		{LabelAlternate, "http://www.w3.org/2004/02/skos/core#altLabel"},
		{HierarchyNotation, "http://www.w3.org/2004/02/skos/core#notation"},
		{HierarchyBroader, "http://www.w3.org/2004/02/skos/core#broader"},
	}

	for _, tt := range tests {
		t.Run(tt.predicate, func(t *testing.T) {
			if got := PredicateIRI(tt.predicate); got != tt.expectedIRI {
				t.Errorf("predicate %s: expected IRI %s, got %s", tt.predicate, tt.expectedIRI, got)
			}
		})
	}
}

func TestPredicateIRIFallback(t *testing.T) {
	if got := PredicateIRI("trm.unknown.thing"); got != Namespace+"trm.unknown.thing" {
		t.Errorf("unexpected fallback IRI %s", got)
	}
}

func TestConceptIRI(t *testing.T) {
	if got := ConceptIRI("", "238078"); got != "https://w3id.org/TRM/concepts/238078/" {
		t.Errorf("unexpected concept IRI %s", got)
	}
	if got := ConceptIRI("http://example.org/c/", "7"); got != "http://example.org/c/7/" {
		t.Errorf("unexpected concept IRI %s", got)
	}
}

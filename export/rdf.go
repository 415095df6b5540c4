// Package export provides an in-memory RDF graph and its Turtle, N-Triples
// and JSON-LD serializations.
package export

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/ben-tinc/trm-preview/vocabulary/trm"
)

// Format specifies the output serialization format.
type Format string

const (
	// FormatTurtle produces Turtle (.ttl) output.
	FormatTurtle Format = "turtle"

	// FormatNTriples produces N-Triples (.nt) output.
	FormatNTriples Format = "ntriples"

	// FormatJSONLD produces JSON-LD (.jsonld) output.
	FormatJSONLD Format = "jsonld"
)

// ParseFormat resolves a case-insensitive format name.
func ParseFormat(name string) (Format, error) {
	f := Format(strings.ToLower(name))
	if _, ok := FormatRegistry[f]; !ok {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, name)
	}
	return f, nil
}

// TermKind distinguishes IRIs from literals.
type TermKind int

const (
	// KindIRI is a named node.
	KindIRI TermKind = iota
	// KindLiteral is a plain, language tagged or datatyped literal.
	KindLiteral
)

// Term is an RDF object: an IRI or a literal.
type Term struct {
	Kind     TermKind
	Value    string
	Language string
	Datatype string
}

// IRI returns a named node term.
func IRI(iri string) Term {
	return Term{Kind: KindIRI, Value: iri}
}

// Literal returns a plain string literal.
func Literal(value string) Term {
	return Term{Kind: KindLiteral, Value: value}
}

// LangLiteral returns a language tagged literal. An empty tag gives a plain literal.
func LangLiteral(value, lang string) Term {
	return Term{Kind: KindLiteral, Value: value, Language: lang}
}

// TypedLiteral returns a literal with a datatype IRI.
func TypedLiteral(value, datatype string) Term {
	return Term{Kind: KindLiteral, Value: value, Datatype: datatype}
}

// Triple represents a semantic triple with resolved IRIs.
type Triple struct {
	Subject   string
	Predicate string
	Object    Term
}

// Graph is an ordered set of triples plus the prefixes used to print them.
type Graph struct {
	triples  []Triple
	seen     map[Triple]struct{}
	prefixes map[string]string
}

// NewGraph creates an empty graph with the default prefixes.
func NewGraph() *Graph {
	return &Graph{
		seen:     make(map[Triple]struct{}),
		prefixes: defaultPrefixes(),
	}
}

// defaultPrefixes returns the standard namespace prefixes for RDF export.
func defaultPrefixes() map[string]string {
	return map[string]string{
		"rdf":  trm.RDFNamespace,
		"rdfs": trm.RDFSNamespace,
		"xsd":  trm.XSDNamespace,
		"skos": trm.SKOSNamespace,
		"trm":  trm.Namespace,
	}
}

// SetPrefix sets a namespace prefix.
func (g *Graph) SetPrefix(prefix, iri string) {
	g.prefixes[prefix] = iri
}

// Prefixes returns a copy of the prefix table.
func (g *Graph) Prefixes() map[string]string {
	out := make(map[string]string, len(g.prefixes))
	for k, v := range g.prefixes {
		out[k] = v
	}
	return out
}

// Add appends a triple. Duplicates are dropped, so the graph stays a set.
func (g *Graph) Add(subject, predicate string, object Term) {
	t := Triple{Subject: subject, Predicate: predicate, Object: object}
	if _, dup := g.seen[t]; dup {
		return
	}
	g.seen[t] = struct{}{}
	g.triples = append(g.triples, t)
}

// Triples returns the triples in insertion order.
func (g *Graph) Triples() []Triple {
	return g.triples
}

// Len returns the number of triples.
func (g *Graph) Len() int {
	return len(g.triples)
}

// Serialize writes the graph to w in the given format.
func Serialize(w io.Writer, g *Graph, format Format) error {
	switch format {
	case FormatTurtle:
		return writeTurtle(w, g)
	case FormatNTriples:
		return writeNTriples(w, g)
	case FormatJSONLD:
		return writeJSONLD(w, g)
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
}

// SerializeToString serializes the graph into a string.
func SerializeToString(g *Graph, format Format) (string, error) {
	var buf bytes.Buffer
	if err := Serialize(&buf, g, format); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// escapeString escapes special characters in strings for RDF serialization.
func escapeString(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "\"", "\\\"")
	s = strings.ReplaceAll(s, "\n", "\\n")
	s = strings.ReplaceAll(s, "\r", "\\r")
	s = strings.ReplaceAll(s, "\t", "\\t")
	return s
}

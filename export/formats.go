package export

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/ben-tinc/trm-preview/vocabulary/trm"
)

// FormatInfo provides metadata about an export format.
type FormatInfo struct {
	// Name is the format identifier.
	Name Format

	// MIMEType is the standard MIME type.
	MIMEType string

	// Extension is the file extension (with dot).
	Extension string

	// Description describes the format.
	Description string
}

// FormatRegistry contains metadata for all supported formats.
var FormatRegistry = map[Format]FormatInfo{
	FormatTurtle: {
		Name:        FormatTurtle,
		MIMEType:    "text/turtle",
		Extension:   ".ttl",
		Description: "Turtle - Terse RDF Triple Language",
	},
	FormatNTriples: {
		Name:        FormatNTriples,
		MIMEType:    "application/n-triples",
		Extension:   ".nt",
		Description: "N-Triples - Line-based RDF format",
	},
	FormatJSONLD: {
		Name:        FormatJSONLD,
		MIMEType:    "application/ld+json",
		Extension:   ".jsonld",
		Description: "JSON-LD - JSON for Linked Data",
	},
}

// GetFormatInfo returns metadata for a format.
func GetFormatInfo(format Format) (FormatInfo, bool) {
	info, ok := FormatRegistry[format]
	return info, ok
}

// TurtleWriter writes RDF in Turtle format.
type TurtleWriter struct {
	prefixes map[string]string
	sb       strings.Builder
}

// NewTurtleWriter creates a new Turtle writer with the given prefixes.
func NewTurtleWriter(prefixes map[string]string) *TurtleWriter {
	if prefixes == nil {
		prefixes = defaultPrefixes()
	}
	return &TurtleWriter{prefixes: prefixes}
}

// WritePrefixes writes prefix declarations.
func (w *TurtleWriter) WritePrefixes() {
	for _, prefix := range sortedKeys(w.prefixes) {
		w.sb.WriteString(fmt.Sprintf("@prefix %s: <%s> .\n", prefix, w.prefixes[prefix]))
	}
	w.sb.WriteString("\n")
}

// WriteSubject starts a new subject block.
func (w *TurtleWriter) WriteSubject(iri string) {
	w.sb.WriteString(w.iri(iri))
	w.sb.WriteString("\n")
}

// WritePredicate writes a predicate-object pair.
func (w *TurtleWriter) WritePredicate(predicateIRI string, object Term, last bool) {
	terminator := " ;"
	if last {
		terminator = " ."
	}
	pred := w.iri(predicateIRI)
	if predicateIRI == trm.RDFType {
		pred = "a"
	}
	w.sb.WriteString(fmt.Sprintf("    %s %s%s\n", pred, w.term(object), terminator))
}

// WriteBlank writes a blank line for readability.
func (w *TurtleWriter) WriteBlank() {
	w.sb.WriteString("\n")
}

// String returns the accumulated Turtle output.
func (w *TurtleWriter) String() string {
	return w.sb.String()
}

func (w *TurtleWriter) iri(iri string) string {
	if c, ok := compactIRI(w.prefixes, iri); ok {
		return c
	}
	return "<" + iri + ">"
}

func (w *TurtleWriter) term(t Term) string {
	if t.Kind == KindIRI {
		return w.iri(t.Value)
	}
	s := `"` + escapeString(t.Value) + `"`
	switch {
	case t.Language != "":
		s += "@" + t.Language
	case t.Datatype != "":
		s += "^^" + w.iri(t.Datatype)
	}
	return s
}

func writeTurtle(out io.Writer, g *Graph) error {
	w := NewTurtleWriter(g.Prefixes())
	w.WritePrefixes()

	subjects, bySubject := groupBySubject(g.Triples())
	for i, subject := range subjects {
		if i > 0 {
			w.WriteBlank()
		}
		w.WriteSubject(subject)
		triples := bySubject[subject]
		for j, t := range triples {
			w.WritePredicate(t.Predicate, t.Object, j == len(triples)-1)
		}
	}

	_, err := io.WriteString(out, w.String())
	return err
}

// NTriplesWriter writes RDF in N-Triples format.
type NTriplesWriter struct {
	sb strings.Builder
}

// NewNTriplesWriter creates a new N-Triples writer.
func NewNTriplesWriter() *NTriplesWriter {
	return &NTriplesWriter{}
}

// WriteTriple writes a single triple.
func (w *NTriplesWriter) WriteTriple(subject, predicate string, object Term) {
	w.sb.WriteString(fmt.Sprintf("<%s> <%s> %s .\n", subject, predicate, formatObjectNTriples(object)))
}

// String returns the accumulated N-Triples output.
func (w *NTriplesWriter) String() string {
	return w.sb.String()
}

func formatObjectNTriples(t Term) string {
	if t.Kind == KindIRI {
		return "<" + t.Value + ">"
	}
	s := `"` + escapeString(t.Value) + `"`
	switch {
	case t.Language != "":
		s += "@" + t.Language
	case t.Datatype != "":
		s += "^^<" + t.Datatype + ">"
	}
	return s
}

func writeNTriples(out io.Writer, g *Graph) error {
	w := NewNTriplesWriter()
	for _, t := range g.Triples() {
		w.WriteTriple(t.Subject, t.Predicate, t.Object)
	}
	_, err := io.WriteString(out, w.String())
	return err
}

// JSONLDDocument represents a JSON-LD document structure.
type JSONLDDocument struct {
	Context map[string]any `json:"@context"`
	Graph   []JSONLDNode   `json:"@graph"`
}

// JSONLDNode represents a node in a JSON-LD graph.
type JSONLDNode struct {
	ID         string         `json:"@id"`
	Type       []string       `json:"@type,omitempty"`
	Properties map[string]any `json:"-"`
}

// MarshalJSON implements custom JSON marshaling for JSONLDNode.
func (n JSONLDNode) MarshalJSON() ([]byte, error) {
	m := make(map[string]any, len(n.Properties)+2)
	m["@id"] = n.ID
	if len(n.Type) > 0 {
		m["@type"] = n.Type
	}
	for k, v := range n.Properties {
		m[k] = v
	}
	return json.Marshal(m)
}

// JSONLDWriter writes RDF in JSON-LD format.
type JSONLDWriter struct {
	prefixes map[string]string
	doc      JSONLDDocument
}

// NewJSONLDWriter creates a new JSON-LD writer whose @context declares the
// given prefixes.
func NewJSONLDWriter(prefixes map[string]string) *JSONLDWriter {
	if prefixes == nil {
		prefixes = defaultPrefixes()
	}
	w := &JSONLDWriter{
		prefixes: prefixes,
		doc: JSONLDDocument{
			Context: make(map[string]any, len(prefixes)),
			Graph:   make([]JSONLDNode, 0),
		},
	}
	for k, v := range prefixes {
		w.doc.Context[k] = v
	}
	return w
}

// AddNode adds a subject and its triples to the graph as one node.
func (w *JSONLDWriter) AddNode(id string, triples []Triple) {
	node := JSONLDNode{
		ID:         id,
		Properties: make(map[string]any),
	}
	for _, t := range triples {
		if t.Predicate == trm.RDFType && t.Object.Kind == KindIRI {
			node.Type = append(node.Type, w.compact(t.Object.Value))
			continue
		}
		key := w.compact(t.Predicate)
		values, _ := node.Properties[key].([]map[string]string)
		node.Properties[key] = append(values, w.value(t.Object))
	}
	w.doc.Graph = append(w.doc.Graph, node)
}

// Bytes returns the indented JSON-LD output.
func (w *JSONLDWriter) Bytes() ([]byte, error) {
	return json.MarshalIndent(w.doc, "", "  ")
}

func (w *JSONLDWriter) compact(iri string) string {
	if c, ok := compactIRI(w.prefixes, iri); ok {
		return c
	}
	return iri
}

func (w *JSONLDWriter) value(t Term) map[string]string {
	if t.Kind == KindIRI {
		return map[string]string{"@id": t.Value}
	}
	v := map[string]string{"@value": t.Value}
	switch {
	case t.Language != "":
		v["@language"] = t.Language
	case t.Datatype != "":
		v["@type"] = w.compact(t.Datatype)
	}
	return v
}

func writeJSONLD(out io.Writer, g *Graph) error {
	w := NewJSONLDWriter(g.Prefixes())
	subjects, bySubject := groupBySubject(g.Triples())
	for _, subject := range subjects {
		w.AddNode(subject, bySubject[subject])
	}
	data, err := w.Bytes()
	if err != nil {
		return fmt.Errorf("marshal json-ld: %w", err)
	}
	data = append(data, '\n')
	_, err = out.Write(data)
	return err
}

// groupBySubject returns subjects in order of first appearance together with
// their triples in insertion order.
func groupBySubject(triples []Triple) ([]string, map[string][]Triple) {
	var subjects []string
	bySubject := make(map[string][]Triple)
	for _, t := range triples {
		if _, seen := bySubject[t.Subject]; !seen {
			subjects = append(subjects, t.Subject)
		}
		bySubject[t.Subject] = append(bySubject[t.Subject], t)
	}
	return subjects, bySubject
}

// compactIRI rewrites iri as prefix:local using the longest matching namespace.
// IRIs whose local part is not a plain name are left alone.
func compactIRI(prefixes map[string]string, iri string) (string, bool) {
	best, bestNS := "", ""
	for _, prefix := range sortedKeys(prefixes) {
		ns := prefixes[prefix]
		if ns != "" && strings.HasPrefix(iri, ns) && len(ns) > len(bestNS) {
			best, bestNS = prefix, ns
		}
	}
	if bestNS == "" {
		return "", false
	}
	local := strings.TrimPrefix(iri, bestNS)
	if !isLocalName(local) {
		return "", false
	}
	return best + ":" + local, true
}

func isLocalName(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r == '_':
		case i > 0 && (r >= '0' && r <= '9' || r == '-'):
		default:
			return false
		}
	}
	return true
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

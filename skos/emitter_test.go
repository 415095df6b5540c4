package skos

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ben-tinc/trm-preview/config"
	"github.com/ben-tinc/trm-preview/enrich"
	"github.com/ben-tinc/trm-preview/export"
	"github.com/ben-tinc/trm-preview/table"
	"github.com/ben-tinc/trm-preview/vocabulary/trm"
)

const (
	prefLabel = "http://www.w3.org/2004/02/skos/core#prefLabel"
	altLabel  = "http://www.w3.org/2004/02/skos/core#altLabel"
	broader   = "http://www.w3.org/2004/02/skos/core#broader"
)

func newTestEmitter() (*Emitter, *bytes.Buffer) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return NewEmitter(config.DefaultConfig().Scheme, logger), &buf
}

// objects returns the objects of all triples matching subject and predicate.
func objects(g *export.Graph, subject, predicate string) []export.Term {
	var out []export.Term
	for _, t := range g.Triples() {
		if t.Subject == subject && t.Predicate == predicate {
			out = append(out, t.Object)
		}
	}
	return out
}

func TestEmit_Scheme(t *testing.T) {
	e, _ := newTestEmitter()
	g := e.Emit(nil)

	scheme := "https://w3id.org/TRM/conceptSchemes/TRMBase"
	assert.Equal(t, 3, g.Len())
	assert.Equal(t, []export.Term{export.IRI(trm.ClassConceptScheme)}, objects(g, scheme, trm.RDFType))
	assert.Equal(t, []export.Term{export.LangLiteral("Thesaurus of Religious Metaphors", "en")}, objects(g, scheme, prefLabel))
	assert.Equal(t, []export.Term{export.LangLiteral("TRM", "en")}, objects(g, scheme, altLabel))
}

func TestEmit_Concept(t *testing.T) {
	e, _ := newTestEmitter()
	records := []enrich.Record{
		{Identifier: "10", Signature: "01", Label: "The world", AlternatePath: "01.02n"},
		{Identifier: "11", Signature: "0102", Label: "Heaven", AlternatePath: "nan", Broader: "10"},
	}

	g := e.Emit(records)

	root := "https://w3id.org/TRM/concepts/10/"
	child := "https://w3id.org/TRM/concepts/11/"

	assert.Equal(t, []export.Term{export.IRI(trm.ClassConcept)}, objects(g, root, trm.RDFType))
	assert.Equal(t, []export.Term{export.LangLiteral("The world", "en")}, objects(g, root, prefLabel))
	assert.Equal(t, []export.Term{
		export.TypedLiteral("01", trm.DatatypeTCPath),
		export.TypedLiteral("01.02n", trm.DatatypeHTEPath),
	}, objects(g, root, trm.SkosNotation))
	assert.Empty(t, objects(g, root, broader))

	// The placeholder alternate path yields no HTEPath notation.
	assert.Equal(t, []export.Term{export.TypedLiteral("0102", trm.DatatypeTCPath)}, objects(g, child, trm.SkosNotation))
	assert.Equal(t, []export.Term{export.IRI(root)}, objects(g, child, broader))
}

func TestEmit_EmptyFields(t *testing.T) {
	e, buf := newTestEmitter()
	g := e.Emit([]enrich.Record{{Identifier: "500001"}})

	c := "https://w3id.org/TRM/concepts/500001/"
	assert.Empty(t, objects(g, c, prefLabel))
	assert.Equal(t, []export.Term{export.TypedLiteral("", trm.DatatypeTCPath)}, objects(g, c, trm.SkosNotation))
	assert.Contains(t, buf.String(), "Concepts without preferred label")
}

func TestEmit_ConfiguredScheme(t *testing.T) {
	scheme := config.SchemeConfig{
		IRI:           "http://example.org/scheme",
		ConceptPrefix: "http://example.org/c/",
		PrefLabel:     "Example",
		Language:      "de",
	}
	g := NewEmitter(scheme, nil).Emit([]enrich.Record{{Identifier: "7", Label: "Sieben"}})

	assert.Equal(t, []export.Term{export.LangLiteral("Example", "de")}, objects(g, scheme.IRI, prefLabel))
	assert.Empty(t, objects(g, scheme.IRI, altLabel))
	assert.Equal(t, []export.Term{export.LangLiteral("Sieben", "de")}, objects(g, "http://example.org/c/7/", prefLabel))
}

// Every broader object is itself an emitted concept.
func TestEmit_BroaderTargetsExist(t *testing.T) {
	tbl := table.New(
		[]string{"catid", "AS1", "S2", "S3", "label"},
		[][]string{
			{"1", "01", "", "", "root"},
			{"2", "01", "02", "", "child"},
			{"", "01", "02", "03", "grandchild"},
			{"4", "01", "09", "03", "orphan"},
		},
	)
	records, err := enrich.Load(tbl, enrich.Columns{
		CategoryID: "catid",
		Primary:    []string{"AS1", "S2", "S3"},
		Label:      "label",
	})
	require.NoError(t, err)

	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))
	res, err := enrich.NewEnricher(enrich.NewCounter(500000), nil, logger).Enrich(records)
	require.NoError(t, err)

	e, _ := newTestEmitter()
	g := e.Emit(res.Records)

	concepts := make(map[string]bool)
	for _, tr := range g.Triples() {
		if tr.Predicate == trm.RDFType && tr.Object == export.IRI(trm.ClassConcept) {
			concepts[tr.Subject] = true
		}
	}
	assert.Len(t, concepts, 4)

	var links int
	for _, tr := range g.Triples() {
		if tr.Predicate == broader {
			links++
			assert.True(t, concepts[tr.Object.Value], "dangling broader %s", tr.Object.Value)
		}
	}
	assert.Equal(t, 3, links)
	assert.Contains(t, objects(g, "https://w3id.org/TRM/concepts/500001/", broader), export.IRI("https://w3id.org/TRM/concepts/2/"))
}

func TestEmit_Turtle(t *testing.T) {
	e, _ := newTestEmitter()
	g := e.Emit([]enrich.Record{{Identifier: "10", Signature: "01", Label: "The world"}})

	out, err := export.SerializeToString(g, export.FormatTurtle)
	require.NoError(t, err)
	assert.Contains(t, out, "<https://w3id.org/TRM/concepts/10/>\n    a skos:Concept ;")
	assert.Contains(t, out, `skos:notation "01"^^trm:TCPath .`)
}

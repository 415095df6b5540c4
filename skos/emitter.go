// Package skos emits enriched thesaurus records as a SKOS concept scheme.
package skos

import (
	"log/slog"

	"github.com/ben-tinc/trm-preview/config"
	"github.com/ben-tinc/trm-preview/enrich"
	"github.com/ben-tinc/trm-preview/export"
	"github.com/ben-tinc/trm-preview/vocabulary/trm"
)

// MissingPathPlaceholder marks an alternate path that was never filled in
// upstream. Such paths get no HTEPath notation.
const MissingPathPlaceholder = "nan"

// Emitter converts records into SKOS statements.
type Emitter struct {
	scheme config.SchemeConfig
	logger *slog.Logger
}

// NewEmitter creates an emitter for the given scheme settings.
func NewEmitter(scheme config.SchemeConfig, logger *slog.Logger) *Emitter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Emitter{
		scheme: scheme,
		logger: logger,
	}
}

// ConceptIRI returns the concept IRI for an identifier.
func (e *Emitter) ConceptIRI(id string) string {
	return trm.ConceptIRI(e.scheme.ConceptPrefix, id)
}

// Emit builds the scheme node followed by one concept per record, in record order.
func (e *Emitter) Emit(records []enrich.Record) *export.Graph {
	g := export.NewGraph()
	e.emitScheme(g)

	var unlabeled int
	for i := range records {
		if !e.emitConcept(g, &records[i]) {
			unlabeled++
		}
	}

	if unlabeled > 0 {
		e.logger.Warn("Concepts without preferred label", "count", unlabeled)
	}
	e.logger.Debug("Emitted concept scheme",
		"scheme", e.schemeIRI(),
		"concepts", len(records),
		"triples", g.Len())

	return g
}

func (e *Emitter) schemeIRI() string {
	if e.scheme.IRI == "" {
		return trm.SchemeBase
	}
	return e.scheme.IRI
}

func (e *Emitter) emitScheme(g *export.Graph) {
	s := e.schemeIRI()
	g.Add(s, trm.PredicateIRI(trm.EntityType), export.IRI(trm.ClassConceptScheme))
	if e.scheme.PrefLabel != "" {
		g.Add(s, trm.PredicateIRI(trm.LabelPreferred), export.LangLiteral(e.scheme.PrefLabel, e.scheme.Language))
	}
	if e.scheme.AltLabel != "" {
		g.Add(s, trm.PredicateIRI(trm.LabelAlternate), export.LangLiteral(e.scheme.AltLabel, e.scheme.Language))
	}
}

// emitConcept reports whether the record carried a label.
func (e *Emitter) emitConcept(g *export.Graph, r *enrich.Record) bool {
	c := e.ConceptIRI(r.Identifier)
	g.Add(c, trm.PredicateIRI(trm.EntityType), export.IRI(trm.ClassConcept))

	labeled := r.Label != ""
	if labeled {
		g.Add(c, trm.PredicateIRI(trm.LabelPreferred), export.LangLiteral(r.Label, e.scheme.Language))
	}

	notation := trm.PredicateIRI(trm.HierarchyNotation)
	g.Add(c, notation, export.TypedLiteral(r.Signature, trm.DatatypeTCPath))
	if r.AlternatePath != "" && r.AlternatePath != MissingPathPlaceholder {
		g.Add(c, notation, export.TypedLiteral(r.AlternatePath, trm.DatatypeHTEPath))
	}

	if r.Broader != "" {
		g.Add(c, trm.PredicateIRI(trm.HierarchyBroader), export.IRI(e.ConceptIRI(r.Broader)))
	}
	return labeled
}

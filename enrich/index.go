package enrich

import (
	"fmt"
	"strings"
)

// AnomalyKind classifies a recoverable data problem.
type AnomalyKind string

const (
	// AnomalyMissingAncestor means a path implies an ancestor signature no record has.
	AnomalyMissingAncestor AnomalyKind = "missing_ancestor"

	// AnomalySignatureCollision means two records share a signature; the first wins.
	AnomalySignatureCollision AnomalyKind = "signature_collision"
)

// Anomaly is a data problem that was recovered from locally.
type Anomaly struct {
	Kind AnomalyKind

	// Position and Identifier name the record the anomaly was found on.
	Position   int
	Identifier string

	// Signature is the ancestor signature that was missing, or the shared
	// signature of a collision.
	Signature string

	// Path is the truncated path that implied the missing ancestor.
	Path string

	// FirstPosition is the record that keeps a colliding signature.
	FirstPosition int
}

// String renders the anomaly as a one-line message.
func (a Anomaly) String() string {
	switch a.Kind {
	case AnomalyMissingAncestor:
		return fmt.Sprintf("concept path %q suggests that %q should exist, but it doesn't", a.Path, a.Signature)
	case AnomalySignatureCollision:
		return fmt.Sprintf("signature %q of row %d already belongs to row %d", a.Signature, a.Position, a.FirstPosition)
	default:
		return string(a.Kind)
	}
}

// SignatureIndex maps a signature to the first record carrying it.
// It is read-only once built.
type SignatureIndex struct {
	bySignature map[string]*Record
	collisions  []Anomaly
}

// NewSignatureIndex indexes records in table order. Records with an empty
// signature are skipped.
func NewSignatureIndex(records []Record) *SignatureIndex {
	ix := &SignatureIndex{
		bySignature: make(map[string]*Record, len(records)),
	}
	for i := range records {
		r := &records[i]
		if r.Signature == "" {
			continue
		}
		if first, ok := ix.bySignature[r.Signature]; ok {
			ix.collisions = append(ix.collisions, Anomaly{
				Kind:          AnomalySignatureCollision,
				Position:      r.Position,
				Identifier:    r.Identifier,
				Signature:     r.Signature,
				FirstPosition: first.Position,
			})
			continue
		}
		ix.bySignature[r.Signature] = r
	}
	return ix
}

// Lookup returns the record owning signature.
func (ix *SignatureIndex) Lookup(signature string) (*Record, bool) {
	r, ok := ix.bySignature[signature]
	return r, ok
}

// Len returns the number of distinct signatures.
func (ix *SignatureIndex) Len() int {
	return len(ix.bySignature)
}

// Collisions returns the signature collisions found while indexing.
func (ix *SignatureIndex) Collisions() []Anomaly {
	return ix.collisions
}

// ResolveParent finds the nearest existing ancestor of r.
//
// The last path segment is dropped and the remaining prefix looked up; on a
// miss one more segment is dropped, down to a single segment. Every miss is
// returned as an anomaly, deepest truncation first. The returned identifier
// is empty when no ancestor exists or r has depth one or less.
func (ix *SignatureIndex) ResolveParent(r *Record) (string, []Anomaly) {
	path := r.Segments()

	var misses []Anomaly
	for len(path) > 1 {
		leaf := path[len(path)-1]
		path = path[:len(path)-1]
		sig := strings.Join(path, "")

		if parent, ok := ix.Lookup(sig); ok {
			return parent.Identifier, misses
		}
		misses = append(misses, Anomaly{
			Kind:       AnomalyMissingAncestor,
			Position:   r.Position,
			Identifier: r.Identifier,
			Signature:  sig,
			Path:       sig + leaf,
		})
	}
	return "", misses
}

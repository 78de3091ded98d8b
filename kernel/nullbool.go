package kernel

import (
	"github.com/Irfan-Ullah-cs/jsonsubschema-with-semantic-check/canon"
	"github.com/Irfan-Ullah-cs/jsonsubschema-with-semantic-check/semantic"
)

// nullDomain and booleanDomain enumerate the (tiny, closed) value domains
// for Null and Boolean, needed to check an unconstrained atom's enum
// subsumption against a narrower one (spec §4.D rule 4: an atom's enum is a
// subset-of-domain restriction, never an addition).
var (
	nullDomain    = []any{nil}
	booleanDomain = []any{true, false}
)

// nullBoolSubtype decides Subtype for Null and Boolean atoms: both domains
// are closed and tiny, so the only constraint an atom can carry is Enum
// (since these base types have no Shape field), making the decision a plain
// enum-subset check against a's admitted values.
func nullBoolSubtype(a, b canon.Atom) semantic.Verdict {
	domain := nullDomain
	if a.Base == canon.Boolean {
		domain = booleanDomain
	}
	return verdictOf(enumSubset(a.Enum, b.Enum, domain))
}

package kernel

import (
	"github.com/Irfan-Ullah-cs/jsonsubschema-with-semantic-check/canon"
	"github.com/Irfan-Ullah-cs/jsonsubschema-with-semantic-check/interval"
	"github.com/Irfan-Ullah-cs/jsonsubschema-with-semantic-check/semantic"
)

// numericSubtype decides Subtype for Integer/Number atoms (spec §4.B),
// delegating the interval/multipleOf/integrality reasoning to
// interval.Subtype — which already encodes the Integer <: Number refinement
// (an Integer constraint always has Integer=true, and interval.Subtype
// rejects c2.Integer && !c1.Integer) — then layering the enum check on top.
func numericSubtype(a, b canon.Atom) semantic.Verdict {
	if !interval.Subtype(*a.Numeric, *b.Numeric) {
		return semantic.No
	}
	if a.Numeric.Empty() {
		return semantic.Yes
	}
	return verdictOf(enumSubsetNumeric(a, b))
}

// enumSubsetNumeric checks a's enum (or, absent one, its whole interval via
// b's own enum membership test) against b's enum.
func enumSubsetNumeric(a, b canon.Atom) bool {
	if b.Enum == nil {
		return true
	}
	if a.Enum == nil {
		// a admits a whole (non-empty) interval but b restricts to discrete
		// values: an infinite set can never be a subset of a finite one.
		return false
	}
	for _, v := range a.Enum {
		ok, err := canon.EnumContains(b.Enum, v)
		if err != nil || !ok {
			return false
		}
	}
	return true
}

// Package kernel implements the per-base-type subtype/meet/join kernels
// (spec §4.E): one decision procedure per base type, each consulting
// component A (regexlang) or B (interval) where relevant. Meet and Join at
// the atom level are already implemented in canon (so the canonicalizer can
// fold `allOf`/`anyOf` without a circular import); this package owns only
// the structural Subtype decision, dispatched per base type, and exposes
// canon's Meet/Join under the names the lattice driver expects.
package kernel

import (
	"github.com/Irfan-Ullah-cs/jsonsubschema-with-semantic-check/canon"
	"github.com/Irfan-Ullah-cs/jsonsubschema-with-semantic-check/semantic"
)

// Meet and Join are the atom-disjunction-level lattice operations, carried
// over from canon (component D already builds them to resolve `allOf`).
var (
	Meet = canon.Meet
	Join = canon.Join
)

// Subtype decides whether atom a is a subtype of atom b, structurally
// (never consulting a semantic resolver — that check belongs to
// SchemaSubtype/the lattice driver, spec §4.E "Top-level subtype rule").
// Array and Object recurse into nested schemas using the null resolver and
// a fresh cycle guard; callers that need semantic-aware recursion (or
// cycle-sharing across a larger query) should use SchemaSubtype directly.
// Returns Unknown only for the negated-opaque cases spec §4.D rule 8 and §9
// call out as undecidable by structural fallback alone.
func Subtype(a, b canon.Atom) semantic.Verdict {
	if !baseCompatible(a.Base, b.Base) {
		return semantic.No
	}
	return atomSubtypeRecursive(a, b, semantic.NullResolver{}, map[pairKey]bool{})
}

// baseCompatible reports whether a's base type can possibly be a subtype of
// b's, honoring the Integer <: Number refinement (spec §3).
func baseCompatible(a, b canon.BaseType) bool {
	if a == b {
		return true
	}
	return a == canon.Integer && b == canon.Number
}

// negatedSubtype handles the opaque fallback for atoms `not` could not
// represent exactly. Only the structural cases spec §4.E lists are
// resolved; anything else is Unknown, which the façade converts to `false`
// for the boolean API (spec §7).
func negatedSubtype(a, b canon.Atom) semantic.Verdict {
	if a.Negated && b.Negated && a.Base == b.Base {
		// Same opaque shape: trivially reflexive.
		if sameEnum(a.Enum, b.Enum) {
			return semantic.Yes
		}
	}
	if a.Negated && !b.Negated && isUnconstrainedForBase(b) {
		// Anything negated-opaque of this base type is still within the
		// unconstrained schema for that base type.
		return semantic.Yes
	}
	return semantic.Unknown
}

func isUnconstrainedForBase(a canon.Atom) bool {
	top := canon.TopOfType(a.Base)
	return sameEnum(a.Enum, nil) && shapeEquivalentToTop(a, top)
}

func shapeEquivalentToTop(a, top canon.Atom) bool {
	switch a.Base {
	case canon.Null, canon.Boolean:
		return true
	case canon.Integer, canon.Number:
		return numericSubtype(top, a) == semantic.Yes
	case canon.String:
		return stringSubtype(top, a) == semantic.Yes
	case canon.Array:
		return arraySubtypeR(top, a, semantic.NullResolver{}, map[pairKey]bool{}) == semantic.Yes
	case canon.Object:
		return objectSubtypeR(top, a, semantic.NullResolver{}, map[pairKey]bool{}) == semantic.Yes
	}
	return false
}

func sameEnum(a, b []any) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		ok, err := canon.EnumContains([]any{b[i]}, a[i])
		if err != nil || !ok {
			return false
		}
	}
	return true
}

// enumSubset reports whether every value admitted by aEnum (or, if aEnum is
// nil, every value in domain) is contained in bEnum (nil meaning "accepts
// everything").
func enumSubset(aEnum, bEnum, domain []any) bool {
	if bEnum == nil {
		return true
	}
	values := aEnum
	if values == nil {
		values = domain
	}
	for _, v := range values {
		ok, err := canon.EnumContains(bEnum, v)
		if err != nil || !ok {
			return false
		}
	}
	return true
}

func verdictOf(b bool) semantic.Verdict {
	if b {
		return semantic.Yes
	}
	return semantic.No
}

// joinMaxInfAware combines two -1-means-infinity upper bounds the way an
// enclosing interval must: if either side is unbounded, so is the join.
func joinMaxInfAware(a, b int) int {
	if a == -1 || b == -1 {
		return -1
	}
	if a > b {
		return a
	}
	return b
}

// joinEnumStructural computes the enum restriction for the join of two
// atoms (spec §4.E, String/Array/Object Join): since join is a least upper
// bound, a side with no enum restriction already accepts every value its
// (now possibly widened) shape admits, so the enum restriction is dropped
// entirely rather than narrowed — only when BOTH sides restrict to an enum
// does the join still restrict, to the union of the two value sets.
func joinEnumStructural(a, b []any) []any {
	if a == nil || b == nil {
		return nil
	}
	out := append([]any{}, a...)
	for _, v := range b {
		ok, err := canon.EnumContains(out, v)
		if err == nil && ok {
			continue
		}
		out = append(out, v)
	}
	return out
}

// Package lattice implements the top-level lattice driver (spec §4.E
// "Top-level subtype rule", component F): dispatching the per-type kernels
// (component E) across the atoms of two canonical schema disjunctions, and
// coalescing the result of Join so that same-base-type atoms that turn out
// to be non-disjoint are merged rather than left as redundant duplicates
// (spec §3 invariant 2).
//
// The atom-dispatch and cycle-guarded recursion itself lives in
// kernel.SchemaSubtype (see that package's doc comment for why); this
// package is the thin, resolver-aware entry point the façade (component G)
// calls, plus Meet/Join/coalescing.
package lattice

import (
	"github.com/Irfan-Ullah-cs/jsonsubschema-with-semantic-check/canon"
	"github.com/Irfan-Ullah-cs/jsonsubschema-with-semantic-check/interval"
	"github.com/Irfan-Ullah-cs/jsonsubschema-with-semantic-check/kernel"
	"github.com/Irfan-Ullah-cs/jsonsubschema-with-semantic-check/semantic"
)

// Subtype decides AnyOf(a) <: AnyOf(b), consulting resolver for every
// same-base-type atom pair's `stype` compatibility (spec §4.E). A nil
// resolver defaults to semantic.NullResolver{}.
func Subtype(a, b *canon.Schema, resolver semantic.Resolver) semantic.Verdict {
	if resolver == nil {
		resolver = semantic.NullResolver{}
	}
	return kernel.SchemaSubtype(a, b, resolver)
}

// Equivalent derives mutual subtyping (spec §8 property 7).
func Equivalent(a, b *canon.Schema, resolver semantic.Resolver) semantic.Verdict {
	return Subtype(a, b, resolver).And(Subtype(b, a, resolver))
}

// Meet computes the greatest schema accepted by both a and b. The
// structural part is exactly canon.Meet's pairwise same-base-type atom
// intersection (spec §4.E "Meet at the top level distributes"); resolver is
// threaded through so that atoms with differing-but-related `stype`s meet
// to the narrower concept (spec SPEC_FULL §4 item 2) instead of an
// arbitrary pick. A nil resolver defaults to semantic.NullResolver{}.
func Meet(a, b *canon.Schema, resolver semantic.Resolver) *canon.Schema {
	if resolver == nil {
		resolver = semantic.NullResolver{}
	}
	return canon.Meet(a, b, resolver)
}

// Join computes the least schema accepted by either a or b, then coalesces
// same-base-type atoms that are not actually disjoint (spec §3 invariant 2;
// §4.B "Join ... when disjoint, join returns the AnyOf of both atoms rather
// than over-approximating").
func Join(a, b *canon.Schema) *canon.Schema {
	raw := canon.Join(a, b)
	return Coalesce(raw)
}

// Coalesce merges redundant or mergeable atoms within a single Schema's
// disjunction. Two atoms of the same base type are merged when one is a
// structural subtype of the other (the narrower one is redundant), or via
// the base type's own Join (spec §4.E): for Integer/Number, when their
// intervals are not disjoint, interval.Join's enclosing envelope replaces
// both (this is safe only because Join is never asked to preserve
// meet-style exactness: the envelope may admit values neither original
// atom did, which is acceptable for a *join*, the least upper bound, not a
// meet); for String/Array/Object, kernel.JoinString/JoinArray/JoinObject
// compute the enclosing shape the same way (length/pattern union, per-
// position union, per-name union).
func Coalesce(s *canon.Schema) *canon.Schema {
	if s.IsBottom() {
		return s
	}
	out := make([]canon.Atom, 0, len(s.Atoms))
	for _, a := range s.Atoms {
		merged := false
		for i, existing := range out {
			if m, ok := tryMerge(existing, a); ok {
				out[i] = m
				merged = true
				break
			}
		}
		if !merged {
			out = append(out, a)
		}
	}
	return &canon.Schema{Atoms: out}
}

func tryMerge(a, b canon.Atom) (canon.Atom, bool) {
	if a.Base != b.Base || a.Negated || b.Negated || a.SemanticType != b.SemanticType {
		return canon.Atom{}, false
	}
	if kernel.Subtype(b, a) == semantic.Yes {
		return a, true
	}
	if kernel.Subtype(a, b) == semantic.Yes {
		return b, true
	}
	switch a.Base {
	case canon.Integer, canon.Number:
		if a.Enum != nil || b.Enum != nil {
			return canon.Atom{}, false
		}
		if disjointIntervals(*a.Numeric, *b.Numeric) {
			return canon.Atom{}, false
		}
		joined := interval.Join(*a.Numeric, *b.Numeric)
		return canon.Atom{Base: a.Base, SemanticType: a.SemanticType, Numeric: &joined}, true
	case canon.String:
		// Unlike the numeric case, String/Array/Object atoms are merged with
		// no disjointness guard. The merged atom encloses both inputs but can
		// admit values neither did: the pattern is the exact language union,
		// yet the length bounds are widened independently of it.
		return kernel.JoinString(a, b), true
	case canon.Array:
		return kernel.JoinArray(a, b), true
	case canon.Object:
		return kernel.JoinObject(a, b), true
	}
	return canon.Atom{}, false
}

func disjointIntervals(a, b interval.Constraint) bool {
	meet := interval.Meet(a, b)
	return meet.Empty()
}

package kernel

import (
	"github.com/Irfan-Ullah-cs/jsonsubschema-with-semantic-check/canon"
	"github.com/Irfan-Ullah-cs/jsonsubschema-with-semantic-check/semantic"
)

// SchemaSubtype decides AnyOf(a) <: AnyOf(b) (spec §4.E "Top-level subtype
// rule"): for every atom in a there must be a same-base-type atom in b that
// it is a structural subtype of (via this package's per-type kernels) and
// whose semantic type it is a subconcept of (via resolver).
//
// This lives in kernel rather than a separate driver package because the
// Array and Object kernels must recurse into nested Schemas (Items,
// Properties, Additional) the same way, and a split package would create an
// import cycle (the driver needs kernel's atom decisions; kernel needs the
// driver's schema-level recursion). The lattice package layers semantic
// coalescing and the public memoized entry point on top of this function.
//
// Cyclic schemas (self-referential via canon's $ref tie-the-knot pointer
// construction) are handled coinductively (spec §9): a pair already being
// proved is assumed true on revisit.
func SchemaSubtype(a, b *canon.Schema, r semantic.Resolver) semantic.Verdict {
	if r == nil {
		r = semantic.NullResolver{}
	}
	return schemaSubtype(a, b, r, map[pairKey]bool{})
}

type pairKey struct{ a, b *canon.Schema }

func schemaSubtype(a, b *canon.Schema, r semantic.Resolver, visited map[pairKey]bool) semantic.Verdict {
	if a.IsBottom() {
		return semantic.Yes
	}
	if b.IsBottom() {
		return verdictOf(a.IsBottom())
	}
	key := pairKey{a, b}
	if visited[key] {
		return semantic.Yes
	}
	visited[key] = true

	overall := semantic.Yes
	for _, ai := range a.Atoms {
		best := semantic.No
		for _, bj := range b.Atoms {
			if !baseCompatible(ai.Base, bj.Base) {
				continue
			}
			v := atomSubtypeRecursive(ai, bj, r, visited)
			v = v.And(semanticVerdict(ai.SemanticType, bj.SemanticType, r))
			best = best.Or(v)
			if best == semantic.Yes {
				break
			}
		}
		overall = overall.And(best)
	}
	return overall
}

// atomSubtypeRecursive dispatches to the per-type kernel, threading the
// visited set through so Array/Object recursion into nested schemas shares
// the same cycle guard.
func atomSubtypeRecursive(a, b canon.Atom, r semantic.Resolver, visited map[pairKey]bool) semantic.Verdict {
	if a.Negated || b.Negated {
		return negatedSubtype(a, b)
	}
	switch b.Base {
	case canon.Null, canon.Boolean:
		return nullBoolSubtype(a, b)
	case canon.Integer, canon.Number:
		return numericSubtype(a, b)
	case canon.String:
		return stringSubtype(a, b)
	case canon.Array:
		return arraySubtypeR(a, b, r, visited)
	case canon.Object:
		return objectSubtypeR(a, b, r, visited)
	}
	return semantic.Unknown
}

// semanticVerdict implements the semantic half of the top-level rule:
// absence of stype on b is the top concept (always Yes); absence on a
// against a present b is not a subtype (No).
func semanticVerdict(a, b string, r semantic.Resolver) semantic.Verdict {
	if b == "" {
		return semantic.Yes
	}
	if a == "" {
		return semantic.No
	}
	na, err := r.Normalize(a)
	if err != nil {
		return semantic.Unknown
	}
	nb, err := r.Normalize(b)
	if err != nil {
		return semantic.Unknown
	}
	if na == nb {
		return semantic.Yes
	}
	return r.IsSubconcept(na, nb)
}

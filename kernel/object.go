package kernel

import (
	"github.com/Irfan-Ullah-cs/jsonsubschema-with-semantic-check/canon"
	"github.com/Irfan-Ullah-cs/jsonsubschema-with-semantic-check/interval"
	"github.com/Irfan-Ullah-cs/jsonsubschema-with-semantic-check/regexlang"
	"github.com/Irfan-Ullah-cs/jsonsubschema-with-semantic-check/semantic"
)

func propCountConstraint(o *canon.ObjectShape) interval.Constraint {
	max := interval.PosInf()
	if o.MaxProperties >= 0 {
		max = interval.Closed(float64(o.MaxProperties))
	}
	return interval.Constraint{Min: interval.Closed(float64(o.MinProperties)), Max: max, Integer: true}
}

func objectAdditionalOf(o *canon.ObjectShape) *canon.Schema {
	if o.AdditionalForbidden {
		return canon.Bottom()
	}
	if o.Additional != nil {
		return o.Additional
	}
	return canon.Top()
}

// objectSubtypeR decides Subtype for Object atoms per spec §4.E: required
// superset, property-count interval subset, property-name closure (every
// name/pattern A declares must resolve, on B's side, to a schema A's
// corresponding schema is a subtype of), and an additional-properties
// check after accounting for B's declared names.
func objectSubtypeR(a, b canon.Atom, r semantic.Resolver, visited map[pairKey]bool) semantic.Verdict {
	os, bos := a.Obj, b.Obj

	for name := range bos.Required {
		if !os.Required[name] {
			return semantic.No
		}
	}
	if !interval.Subtype(propCountConstraint(os), propCountConstraint(bos)) {
		return semantic.No
	}

	verdict := semantic.Yes

	for _, name := range sortedNames(os.Properties) {
		target, ok := matchingOnB(bos, name, r)
		if !ok {
			return semantic.No
		}
		verdict = verdict.And(schemaSubtype(os.Properties[name], target, r, visited))
		if verdict == semantic.No {
			return semantic.No
		}
	}

	for _, pat := range sortedNames(os.PatternProperties) {
		target, ok := matchingPatternOnB(os, bos, pat, r)
		if !ok {
			return semantic.No
		}
		verdict = verdict.And(schemaSubtype(os.PatternProperties[pat], target, r, visited))
		if verdict == semantic.No {
			return semantic.No
		}
	}

	if bos.AdditionalForbidden {
		if !os.AdditionalForbidden && !objectAdditionalOf(os).IsBottom() {
			return semantic.No
		}
	} else {
		verdict = verdict.And(schemaSubtype(objectAdditionalOf(os), objectAdditionalOf(bos), r, visited))
	}

	return verdict.And(verdictOf(enumSubsetStructural(a, b)))
}

func sortedNames[V any](m map[string]V) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	// Deterministic order keeps kernel decisions independent of Go's random
	// map iteration, matching spec §5's "property iteration order does not
	// affect the answer" — but the shape being compared is order-
	// independent by construction, so a stable sort is purely cosmetic here
	// and avoids nondeterministic test flakiness.
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j] < out[j-1]; j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}

// JoinObject computes the enclosing Object atom accepted by either a or b
// (spec §4.E "Object kernel: Join: intersection of required, join of
// overlapping property schemas, join of additional, enclose size
// intervals"): a name is only guaranteed present when both sides require
// it, and a property declared explicitly on one side only is joined
// against the other side's matching pattern/additional schema (via
// canon.MatchingAdditional) rather than dropped, since the result must
// still accept values satisfying only one of a or b.
func JoinObject(a, b canon.Atom) canon.Atom {
	return canon.Atom{
		Base:         canon.Object,
		SemanticType: a.SemanticType,
		Enum:         joinEnumStructural(a.Enum, b.Enum),
		Obj:          joinObjectShape(a.Obj, b.Obj),
	}
}

func joinObjectShape(a, b *canon.ObjectShape) *canon.ObjectShape {
	minProps := a.MinProperties
	if b.MinProperties < minProps {
		minProps = b.MinProperties
	}
	maxProps := joinMaxInfAware(a.MaxProperties, b.MaxProperties)

	required := map[string]bool{}
	for k := range a.Required {
		if b.Required[k] {
			required[k] = true
		}
	}

	names := map[string]bool{}
	for k := range a.Properties {
		names[k] = true
	}
	for k := range b.Properties {
		names[k] = true
	}
	props := map[string]*canon.Schema{}
	for _, k := range sortedNames(names) {
		pa, okA := a.Properties[k]
		pb, okB := b.Properties[k]
		switch {
		case okA && okB:
			props[k] = canon.Join(pa, pb)
		case okA:
			props[k] = canon.Join(pa, canon.MatchingAdditional(b, k))
		case okB:
			props[k] = canon.Join(canon.MatchingAdditional(a, k), pb)
		}
	}

	patterns := map[string]*canon.Schema{}
	for k, v := range a.PatternProperties {
		patterns[k] = v
	}
	for k, v := range b.PatternProperties {
		if existing, ok := patterns[k]; ok {
			patterns[k] = canon.Join(existing, v)
		} else {
			patterns[k] = v
		}
	}

	additional := canon.Join(objectAdditionalOf(a), objectAdditionalOf(b))
	forbidden := a.AdditionalForbidden && b.AdditionalForbidden

	return &canon.ObjectShape{
		MinProperties:       minProps,
		MaxProperties:       maxProps,
		Properties:          props,
		PatternProperties:   patterns,
		Additional:          additional,
		AdditionalForbidden: forbidden,
		Required:            required,
	}
}

// matchingOnB resolves the schema B assigns to a concrete property name:
// an explicit B.properties entry takes precedence; otherwise every
// patternProperties entry whose regex matches name is met together; B's
// additional schema applies only when no pattern matches; ok is false only
// when B forbids the name outright (AdditionalForbidden with no
// explicit/pattern match).
func matchingOnB(bos *canon.ObjectShape, name string, resolver semantic.Resolver) (*canon.Schema, bool) {
	if s, ok := bos.Properties[name]; ok {
		return s, true
	}
	result := canon.Top()
	matched := false
	for pat, s := range bos.PatternProperties {
		p, err := bos.CompiledPattern(pat)
		if err != nil {
			continue
		}
		if p.Match(name) {
			result = canon.Meet(result, s, resolver)
			matched = true
		}
	}
	if matched {
		return result, true
	}
	if bos.AdditionalForbidden {
		return nil, false
	}
	return objectAdditionalOf(bos), true
}

// matchingPatternOnB resolves the schema B assigns to every name matched by
// A's patternProperties entry pat: it meets the schemas of every B pattern
// whose language overlaps pat (a non-empty intersection, via
// regexlang.IntersectionEmpty), since the full set of names pat admits
// cannot be enumerated; B's additional schema applies only when no B
// pattern overlaps pat.
func matchingPatternOnB(os, bos *canon.ObjectShape, pat string, resolver semantic.Resolver) (*canon.Schema, bool) {
	aPattern, err := os.CompiledPattern(pat)
	if err != nil {
		return nil, false
	}
	result := canon.Top()
	matched := false
	for bpat, s := range bos.PatternProperties {
		bPattern, err := bos.CompiledPattern(bpat)
		if err != nil {
			continue
		}
		if !regexlang.IntersectionEmpty(aPattern, bPattern) {
			result = canon.Meet(result, s, resolver)
			matched = true
		}
	}
	if matched {
		return result, true
	}
	if bos.AdditionalForbidden {
		return nil, false
	}
	return objectAdditionalOf(bos), true
}

package kernel

import (
	"github.com/Irfan-Ullah-cs/jsonsubschema-with-semantic-check/canon"
	"github.com/Irfan-Ullah-cs/jsonsubschema-with-semantic-check/interval"
	"github.com/Irfan-Ullah-cs/jsonsubschema-with-semantic-check/regexlang"
	"github.com/Irfan-Ullah-cs/jsonsubschema-with-semantic-check/semantic"
)

// lengthConstraint reinterprets a String atom's minLength/maxLength as an
// Integer interval.Constraint, reusing component B's bound-comparison logic
// instead of writing a second length-subset routine.
func lengthConstraint(s *canon.StringShape) interval.Constraint {
	max := interval.PosInf()
	if s.MaxLength >= 0 {
		max = interval.Closed(float64(s.MaxLength))
	}
	return interval.Constraint{
		Min:     interval.Closed(float64(s.MinLength)),
		Max:     max,
		Integer: true,
	}
}

// matchAll is the pattern every unconstrained String atom implicitly
// carries (a nil Pattern means "no pattern constraint", i.e. Σ*).
var matchAll = mustCompileMatchAll()

func mustCompileMatchAll() *regexlang.Pattern {
	p, err := regexlang.Compile(".*")
	if err != nil {
		panic("kernel: failed to compile match-all fallback pattern: " + err.Error())
	}
	return p
}

func patternOf(s *canon.StringShape) *regexlang.Pattern {
	if s.Pattern == nil {
		return matchAll
	}
	return s.Pattern
}

// stringSubtype decides Subtype for String atoms (spec §4.A, §4.D): the
// length interval must be a subset, the pattern language must be a subset
// (via the component A DFA containment check), and any enum must be a
// subset.
func stringSubtype(a, b canon.Atom) semantic.Verdict {
	if !interval.Subtype(lengthConstraint(a.Str), lengthConstraint(b.Str)) {
		return semantic.No
	}
	if !regexlang.Subtype(patternOf(a.Str), patternOf(b.Str)) {
		return semantic.No
	}
	return verdictOf(enumSubsetString(a, b))
}

// JoinString computes the enclosing String atom accepted by either a or b
// (spec §4.E "String kernel: Join takes the enclosing length interval and
// the language union"): the length bounds widen to cover both ranges, and
// the pattern becomes the DFA union via regexlang.JoinPattern — unless
// either side is already unconstrained (Σ*, a nil Pattern), in which case
// the union is Σ* too and carrying a pattern at all would be misleading.
func JoinString(a, b canon.Atom) canon.Atom {
	minLen := a.Str.MinLength
	if b.Str.MinLength < minLen {
		minLen = b.Str.MinLength
	}
	maxLen := joinMaxInfAware(a.Str.MaxLength, b.Str.MaxLength)

	var pattern *regexlang.Pattern
	if a.Str.Pattern != nil && b.Str.Pattern != nil {
		pattern = regexlang.JoinPattern(a.Str.Pattern, b.Str.Pattern)
	}

	return canon.Atom{
		Base:         canon.String,
		SemanticType: a.SemanticType,
		Enum:         joinEnumStructural(a.Enum, b.Enum),
		Str:          &canon.StringShape{MinLength: minLen, MaxLength: maxLen, Pattern: pattern},
	}
}

func enumSubsetString(a, b canon.Atom) bool {
	if b.Enum == nil {
		return true
	}
	if a.Enum == nil {
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

package canon

import (
	"github.com/Irfan-Ullah-cs/jsonsubschema-with-semantic-check/interval"
	"github.com/Irfan-Ullah-cs/jsonsubschema-with-semantic-check/regexlang"
)

// Complement computes the schema accepted by every value s does not accept
// (spec §4.D rule 8: `not S` is complement w.r.t. Top). Complement is
// computed base-type by base-type; where a kernel cannot represent the
// complement exactly (multipleOf, patternProperties, nested array/object
// shapes), the produced atom is tagged Negated and treated opaquely by the
// kernels (spec §9 "not across regex").
//
// Atoms of the same base type are assumed coalesced to at most one
// representative per type before complementing; if s still carries more
// than one atom of some base type, that type's complement conservatively
// falls back to an opaque Negated atom rather than risk an unsound
// approximation from ignoring the extra disjuncts.
func Complement(s *Schema) *Schema {
	var atoms []Atom
	for _, t := range AllBaseTypes {
		group := s.AtomsOfBase(t)
		switch len(group) {
		case 0:
			atoms = append(atoms, TopOfType(t))
		case 1:
			atoms = append(atoms, complementAtom(group[0])...)
		default:
			atoms = append(atoms, Atom{Base: t, Negated: true})
		}
	}
	return &Schema{Atoms: atoms}
}

func complementAtom(a Atom) []Atom {
	if a.Negated {
		// Complement of an already-opaque atom is opaque too; double
		// negation isn't simplified away because the original positive
		// shape was already lost.
		return []Atom{{Base: a.Base, Negated: true, SemanticType: a.SemanticType}}
	}
	if isUnconstrainedAtom(a) {
		return nil // complement of "accepts everything of this type" is empty
	}
	if a.Enum != nil {
		// Complement of an enum-restricted atom within its type: still
		// opaque (pointwise exclusion rather than a structural shape), but
		// the driver's enum-pointwise check at subtype time handles it.
		return []Atom{{Base: a.Base, Negated: true, SemanticType: a.SemanticType, Enum: a.Enum}}
	}
	switch a.Base {
	case Null, Boolean:
		return nil // no constraints beyond enum, handled above
	case Integer, Number:
		return complementNumeric(a)
	case String:
		return complementString(a)
	default:
		return []Atom{{Base: a.Base, Negated: true, SemanticType: a.SemanticType}}
	}
}

func isUnconstrainedAtom(a Atom) bool {
	if a.Enum != nil {
		return false
	}
	switch a.Base {
	case Null, Boolean:
		return true
	case Integer, Number:
		return a.Numeric.Min.Inf && a.Numeric.Min.Negative && a.Numeric.Max.Inf && !a.Numeric.Max.Negative && a.Numeric.MultipleOf == nil
	case String:
		return a.Str.MinLength == 0 && a.Str.MaxLength == -1 && a.Str.Pattern == nil
	case Array:
		return isTopArrayShape(a.Arr)
	case Object:
		return isTopObjectShape(a.Obj)
	}
	return false
}

// complementNumeric handles the interval-only case exactly (two atoms for
// an open middle range); when multipleOf is present the exact complement
// is not a single interval, so the atom is tagged opaque (spec §9).
func complementNumeric(a Atom) []Atom {
	if a.Numeric.MultipleOf != nil {
		return []Atom{{Base: a.Base, Negated: true, SemanticType: a.SemanticType}}
	}
	var out []Atom
	if !(a.Numeric.Min.Inf && a.Numeric.Min.Negative) {
		below := interval.Constraint{
			Min:     interval.NegInf(),
			Max:     interval.Bound{Value: a.Numeric.Min.Value, Open: !a.Numeric.Min.Open},
			Integer: a.Numeric.Integer,
		}
		out = append(out, Atom{Base: a.Base, SemanticType: a.SemanticType, Numeric: &below})
	}
	if !(a.Numeric.Max.Inf && !a.Numeric.Max.Negative) {
		above := interval.Constraint{
			Min:     interval.Bound{Value: a.Numeric.Max.Value, Open: !a.Numeric.Max.Open},
			Max:     interval.PosInf(),
			Integer: a.Numeric.Integer,
		}
		out = append(out, Atom{Base: a.Base, SemanticType: a.SemanticType, Numeric: &above})
	}
	return out
}

// complementString is exact: De Morgan over the two independent facets
// (length interval, pattern) gives (length-complement, any pattern) union
// (full length range, pattern-complement).
func complementString(a Atom) []Atom {
	var out []Atom
	lengthCon := interval.Constraint{
		Min:     interval.Closed(float64(a.Str.MinLength)),
		Max:     interval.Bound{Value: float64(maxLenAsFloat(a.Str.MaxLength)), Inf: a.Str.MaxLength == -1, Negative: false},
		Integer: true,
	}
	for _, lenComp := range complementNumeric(Atom{Base: Integer, Numeric: &lengthCon}) {
		out = append(out, Atom{
			Base:         String,
			SemanticType: a.SemanticType,
			Str:          &StringShape{MinLength: boundToMinLen(lenComp.Numeric.Min), MaxLength: boundToMaxLen(lenComp.Numeric.Max)},
		})
	}
	if a.Str.Pattern != nil {
		out = append(out, Atom{
			Base:         String,
			SemanticType: a.SemanticType,
			Str:          &StringShape{MinLength: 0, MaxLength: -1, Pattern: regexlang.ComplementPattern(a.Str.Pattern)},
		})
	}
	return out
}

func maxLenAsFloat(maxLength int) float64 {
	if maxLength == -1 {
		return 0
	}
	return float64(maxLength)
}

func boundToMinLen(b interval.Bound) int {
	if b.Inf {
		return 0
	}
	v := int(b.Value)
	if b.Open {
		v++
	}
	if v < 0 {
		return 0
	}
	return v
}

func boundToMaxLen(b interval.Bound) int {
	if b.Inf {
		return -1
	}
	v := int(b.Value)
	if b.Open {
		v--
	}
	if v < 0 {
		return 0
	}
	return v
}

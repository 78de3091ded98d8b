// Package canon implements the canonicalizer (spec §4.D) and the canonical
// schema data model (spec §3): a canonical schema is a disjunction (AnyOf)
// of typed atoms, each atom carrying a base type, an optional semantic
// type, per-type constraints, an optional enum restriction, and a negated
// bit for the cases `not` cannot represent exactly.
//
// The shape of Canonicalize mirrors the teacher's schemaprofile.Normalizer:
// a $ref-aware recursive walk over map[string]any with a cycle-tracking
// stack, producing a fresh immutable value rather than mutating the input.
package canon

import (
	"github.com/Irfan-Ullah-cs/jsonsubschema-with-semantic-check/interval"
	"github.com/Irfan-Ullah-cs/jsonsubschema-with-semantic-check/regexlang"
)

// BaseType is one member of the closed base-type set (spec §3).
type BaseType int

const (
	Null BaseType = iota
	Boolean
	Integer
	Number
	String
	Array
	Object
)

func (t BaseType) String() string {
	switch t {
	case Null:
		return "null"
	case Boolean:
		return "boolean"
	case Integer:
		return "integer"
	case Number:
		return "number"
	case String:
		return "string"
	case Array:
		return "array"
	case Object:
		return "object"
	default:
		return "unknown"
	}
}

// AllBaseTypes lists the closed set in a stable order.
var AllBaseTypes = []BaseType{Null, Boolean, Integer, Number, String, Array, Object}

// StringShape is the String atom's per-type constraint (spec §3).
type StringShape struct {
	MinLength int
	MaxLength int // -1 means +infinity
	Pattern   *regexlang.Pattern
}

// ArrayShape is the Array atom's per-type constraint. Either Items is set
// (single element schema applied to every position) or Tuple is set (a
// prefix tuple followed by Additional for positions >= len(Tuple)).
type ArrayShape struct {
	MinItems    int
	MaxItems    int // -1 means +infinity
	UniqueItems bool
	Items       *Schema   // single-items case
	Tuple       []*Schema // tuple case
	Additional  *Schema   // tuple case: schema for positions >= len(Tuple); nil means Top
}

// IsTuple reports whether this shape uses the prefix-tuple form.
func (a *ArrayShape) IsTuple() bool { return a.Tuple != nil }

// ObjectShape is the Object atom's per-type constraint.
type ObjectShape struct {
	MinProperties       int
	MaxProperties       int // -1 means +infinity
	Properties          map[string]*Schema
	PatternProperties   map[string]*Schema // key: regex source
	patternCompiled     map[string]*regexlang.Pattern
	Additional          *Schema // nil means Top (true); see AdditionalForbidden
	AdditionalForbidden bool
	Required            map[string]bool
}

// CompiledPattern returns (compiling and caching on first use) the regexlang
// Pattern for a patternProperties key.
func (o *ObjectShape) CompiledPattern(src string) (*regexlang.Pattern, error) {
	if o.patternCompiled == nil {
		o.patternCompiled = map[string]*regexlang.Pattern{}
	}
	if p, ok := o.patternCompiled[src]; ok {
		return p, nil
	}
	p, err := regexlang.Compile(src)
	if err != nil {
		return nil, err
	}
	o.patternCompiled[src] = p
	return p, nil
}

// Atom is a single-base-type constraint bundle (spec GLOSSARY).
type Atom struct {
	Base         BaseType
	SemanticType string // "" means absent
	Enum         []any  // nil means no enum restriction
	Negated      bool

	Numeric *interval.Constraint // Integer, Number
	Str     *StringShape         // String
	Arr     *ArrayShape          // Array
	Obj     *ObjectShape         // Object
}

// Schema is a canonical schema: a disjunction (AnyOf) of atoms. An empty
// Atoms slice is Bottom.
type Schema struct {
	Atoms []Atom
}

// AtomsOfBase returns the atoms in s whose Base equals t.
func (s *Schema) AtomsOfBase(t BaseType) []Atom {
	var out []Atom
	for _, a := range s.Atoms {
		if a.Base == t {
			out = append(out, a)
		}
	}
	return out
}

// Single wraps one atom as a one-disjunct canonical schema.
func Single(a Atom) *Schema { return &Schema{Atoms: []Atom{a}} }

var bottomSchema = &Schema{}

// Bottom is the unique unsatisfiable canonical schema.
func Bottom() *Schema { return bottomSchema }

// IsBottom reports whether s accepts no value.
func (s *Schema) IsBottom() bool { return s == nil || len(s.Atoms) == 0 }

var topSchema = buildTop()

// Top is the canonical schema accepting every JSON value: one
// no-constraint atom per base type (spec §3, invariant 7). Array and
// Object atoms at Top recursively nest Top itself (every item/property of
// an unconstrained array/object is itself unconstrained), so the value is
// built by tying the knot through a pre-allocated pointer rather than
// recursive calls, which would never terminate.
func Top() *Schema { return topSchema }

func buildTop() *Schema {
	s := &Schema{}
	s.Atoms = []Atom{
		{Base: Null},
		{Base: Boolean},
		{Base: Integer, Numeric: ptr(interval.Top(true))},
		{Base: Number, Numeric: ptr(interval.Top(false))},
		{Base: String, Str: &StringShape{MaxLength: -1}},
		{Base: Array, Arr: &ArrayShape{MaxItems: -1, Items: s}},
		{Base: Object, Obj: &ObjectShape{MaxProperties: -1, Additional: s}},
	}
	return s
}

func ptr[T any](v T) *T { return &v }

// TopOfType returns the unconstrained atom for a single base type.
func TopOfType(t BaseType) Atom {
	for _, a := range Top().Atoms {
		if a.Base == t {
			return a
		}
	}
	panic("canon: unknown base type")
}

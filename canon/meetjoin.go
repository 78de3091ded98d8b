package canon

import (
	"math"

	"github.com/Irfan-Ullah-cs/jsonsubschema-with-semantic-check/interval"
	"github.com/Irfan-Ullah-cs/jsonsubschema-with-semantic-check/regexlang"
	"github.com/Irfan-Ullah-cs/jsonsubschema-with-semantic-check/semantic"
)

// Meet computes the intersection of two canonical schemas: the greatest
// schema accepted by both (spec §4.E, "Meet at the top level distributes").
// It is used both by the canonicalizer (to fold `allOf` branches together)
// and by the lattice driver (component F) to implement the public `meet`
// operation. resolver decides which of two differing `stype`s the result
// atom carries (the narrower concept, spec SPEC_FULL §4 item 2); a nil
// resolver defaults to semantic.NullResolver{}.
func Meet(a, b *Schema, resolver semantic.Resolver) *Schema {
	if resolver == nil {
		resolver = semantic.NullResolver{}
	}
	if a.IsBottom() || b.IsBottom() {
		return Bottom()
	}
	var atoms []Atom
	for _, x := range a.Atoms {
		for _, y := range b.Atoms {
			if x.Base != y.Base {
				continue
			}
			if m, ok := meetAtoms(x, y, resolver); ok {
				atoms = append(atoms, m)
			}
		}
	}
	return &Schema{Atoms: atoms}
}

// Join computes the union of two canonical schemas. Per spec §4.B/§9, Join
// does not attempt to coalesce overlapping atoms into a single tighter
// shape when that would lose precision (e.g. disjoint numeric ranges) —
// atoms are simply concatenated, which is a valid (if not maximally
// minimal) AnyOf: every subtype/meet/join consumer iterates over all
// disjuncts, so an uncoalesced union is exact, only less compact.
func Join(a, b *Schema) *Schema {
	return &Schema{Atoms: append(append([]Atom{}, a.Atoms...), b.Atoms...)}
}

// meetSemantic picks the stype the meet of two atoms carries: the narrower
// of the two concepts, since meet is the greatest lower bound and a value
// satisfying the narrower concept necessarily satisfies the broader one
// (spec SPEC_FULL §4 item 2). When the two concepts are incomparable under
// resolver, the stype is dropped entirely rather than arbitrarily favoring
// one side — the structural meet still holds, it simply carries no stype
// the caller could rely on.
func meetSemantic(a, b string, resolver semantic.Resolver) string {
	if a == "" {
		return b
	}
	if b == "" {
		return a
	}
	if a == b {
		return a
	}
	if resolver.IsSubconcept(a, b) == semantic.Yes {
		return a
	}
	if resolver.IsSubconcept(b, a) == semantic.Yes {
		return b
	}
	return ""
}

// meetAtoms intersects two same-base-type atoms, returning (atom, false)
// when the intersection is empty (Bottom) so the caller can drop it from
// the resulting disjunction.
func meetAtoms(a, b Atom, resolver semantic.Resolver) (Atom, bool) {
	if a.Base != b.Base {
		return Atom{}, false
	}
	if a.Negated || b.Negated {
		// Conservative: intersecting with an opaque negated atom stays
		// opaque rather than risk an unsound precise combination (spec §9,
		// "not across regex").
		return Atom{Base: a.Base, Negated: true, SemanticType: meetSemantic(a.SemanticType, b.SemanticType, resolver)}, true
	}
	sem := meetSemantic(a.SemanticType, b.SemanticType, resolver)
	switch a.Base {
	case Null, Boolean:
		enum, ok := meetEnumRaw(a.Enum, b.Enum)
		if !ok {
			return Atom{}, false
		}
		return Atom{Base: a.Base, SemanticType: sem, Enum: enum}, true

	case Integer, Number:
		con := interval.Meet(*a.Numeric, *b.Numeric)
		if con.Empty() {
			return Atom{}, false
		}
		enum, ok := meetEnumNumeric(a.Enum, b.Enum, con)
		if !ok {
			return Atom{}, false
		}
		return Atom{Base: a.Base, SemanticType: sem, Enum: enum, Numeric: &con}, true

	case String:
		shape, ok := meetStringShape(a.Str, b.Str)
		if !ok {
			return Atom{}, false
		}
		enum, ok := meetEnumString(a.Enum, b.Enum, shape)
		if !ok {
			return Atom{}, false
		}
		return Atom{Base: String, SemanticType: sem, Enum: enum, Str: shape}, true

	case Array:
		shape, ok := meetArrayShape(a.Arr, b.Arr, resolver)
		if !ok {
			return Atom{}, false
		}
		enum, ok := meetEnumStructural(a.Enum, b.Enum, isTopArrayShape(a.Arr), isTopArrayShape(b.Arr))
		if !ok {
			return Atom{}, false
		}
		return Atom{Base: Array, SemanticType: sem, Enum: enum, Arr: shape}, true

	case Object:
		shape, ok := meetObjectShape(a.Obj, b.Obj, resolver)
		if !ok {
			return Atom{}, false
		}
		enum, ok := meetEnumStructural(a.Enum, b.Enum, isTopObjectShape(a.Obj), isTopObjectShape(b.Obj))
		if !ok {
			return Atom{}, false
		}
		return Atom{Base: Object, SemanticType: sem, Enum: enum, Obj: shape}, true
	}
	return Atom{}, false
}

// meetEnumRaw intersects two enum value sets by canonical-JSON equality.
// nil means "no enum restriction" (the unconstrained top of that facet).
func meetEnumRaw(a, b []any) ([]any, bool) {
	if a == nil {
		return b, true
	}
	if b == nil {
		return a, true
	}
	var out []any
	for _, v := range a {
		ok, err := enumContains(b, v)
		if err == nil && ok {
			out = append(out, v)
		}
	}
	if len(out) == 0 {
		return nil, false
	}
	return out, true
}

func meetEnumNumeric(a, b []any, con interval.Constraint) ([]any, bool) {
	switch {
	case a == nil && b == nil:
		return nil, true
	case a != nil && b != nil:
		return meetEnumRaw(a, b)
	default:
		src := a
		if src == nil {
			src = b
		}
		var out []any
		for _, v := range src {
			if numericValueInConstraint(v, con) {
				out = append(out, v)
			}
		}
		if len(out) == 0 {
			return nil, false
		}
		return out, true
	}
}

func numericValueInConstraint(v any, con interval.Constraint) bool {
	f, err := toFloat64(v)
	if err != nil {
		return false
	}
	if con.Integer && f != math.Trunc(f) {
		return false
	}
	if !con.Min.Inf {
		if con.Min.Open && f <= con.Min.Value {
			return false
		}
		if !con.Min.Open && f < con.Min.Value {
			return false
		}
	} else if !con.Min.Negative {
		return false // +Inf lower bound admits nothing
	}
	if !con.Max.Inf {
		if con.Max.Open && f >= con.Max.Value {
			return false
		}
		if !con.Max.Open && f > con.Max.Value {
			return false
		}
	} else if con.Max.Negative {
		return false // -Inf upper bound admits nothing
	}
	if con.MultipleOf != nil {
		m, _ := con.MultipleOf.Float64()
		if m != 0 {
			q := f / m
			if math.Abs(q-math.Round(q)) > 1e-9 {
				return false
			}
		}
	}
	return true
}

func meetEnumString(a, b []any, shape *StringShape) ([]any, bool) {
	switch {
	case a == nil && b == nil:
		return nil, true
	case a != nil && b != nil:
		return meetEnumRaw(a, b)
	default:
		src := a
		if src == nil {
			src = b
		}
		var out []any
		for _, v := range src {
			if stringValueInShape(v, shape) {
				out = append(out, v)
			}
		}
		if len(out) == 0 {
			return nil, false
		}
		return out, true
	}
}

func stringValueInShape(v any, shape *StringShape) bool {
	s, ok := v.(string)
	if !ok {
		return false
	}
	n := len([]rune(s))
	if n < shape.MinLength {
		return false
	}
	if shape.MaxLength >= 0 && n > shape.MaxLength {
		return false
	}
	if shape.Pattern != nil && !shape.Pattern.Match(s) {
		return false
	}
	return true
}

// meetEnumStructural handles Array/Object enum intersection. Checking an
// arbitrary literal array/object value against a structural shape is
// general JSON instance validation, out of scope (spec §1 Non-goals), so
// when only one side carries an enum this only passes it through when the
// other side's shape is the unconstrained Top-of-type (an exact case, not
// an approximation); otherwise it conservatively drops to Bottom, which is
// always a sound (if incomplete) meet per spec §7's documented fallback.
func meetEnumStructural(a, b []any, aIsTop, bIsTop bool) ([]any, bool) {
	switch {
	case a == nil && b == nil:
		return nil, true
	case a != nil && b != nil:
		return meetEnumRaw(a, b)
	case a != nil:
		if bIsTop {
			return a, true
		}
		return nil, false
	default:
		if aIsTop {
			return b, true
		}
		return nil, false
	}
}

func isTopArrayShape(s *ArrayShape) bool {
	if s == nil {
		return true
	}
	return s.MinItems == 0 && s.MaxItems == -1 && !s.UniqueItems && !s.IsTuple() && isTopSchema(s.Items)
}

func isTopObjectShape(s *ObjectShape) bool {
	if s == nil {
		return true
	}
	return s.MinProperties == 0 && s.MaxProperties == -1 && len(s.Properties) == 0 &&
		len(s.PatternProperties) == 0 && len(s.Required) == 0 && !s.AdditionalForbidden &&
		isTopSchema(s.Additional)
}

func isTopSchema(s *Schema) bool {
	return s == Top() || s == nil
}

func meetStringShape(a, b *StringShape) (*StringShape, bool) {
	min := a.MinLength
	if b.MinLength > min {
		min = b.MinLength
	}
	max := minInfAware(a.MaxLength, b.MaxLength)
	if max != -1 && min > max {
		return nil, false
	}
	pattern := a.Pattern
	switch {
	case a.Pattern == nil:
		pattern = b.Pattern
	case b.Pattern == nil:
		pattern = a.Pattern
	default:
		merged := regexlang.MeetPattern(a.Pattern, b.Pattern)
		if merged.Empty() {
			return nil, false
		}
		pattern = merged
	}
	return &StringShape{MinLength: min, MaxLength: max, Pattern: pattern}, true
}

func minInfAware(a, b int) int {
	if a == -1 {
		return b
	}
	if b == -1 {
		return a
	}
	if a < b {
		return a
	}
	return b
}

func maxInfAware(a, b int) int {
	if a == -1 || b == -1 {
		return -1
	}
	if a > b {
		return a
	}
	return b
}

func meetArrayShape(a, b *ArrayShape, resolver semantic.Resolver) (*ArrayShape, bool) {
	minItems := a.MinItems
	if b.MinItems > minItems {
		minItems = b.MinItems
	}
	maxItems := minInfAware(a.MaxItems, b.MaxItems)
	if maxItems != -1 && minItems > maxItems {
		return nil, false
	}
	unique := a.UniqueItems || b.UniqueItems

	switch {
	case !a.IsTuple() && !b.IsTuple():
		items := Meet(a.Items, b.Items, resolver)
		return &ArrayShape{MinItems: minItems, MaxItems: maxItems, UniqueItems: unique, Items: items}, true
	case a.IsTuple() && !b.IsTuple():
		return meetTupleAndItems(a, b.Items, minItems, maxItems, unique, resolver)
	case !a.IsTuple() && b.IsTuple():
		return meetTupleAndItems(b, a.Items, minItems, maxItems, unique, resolver)
	default:
		n := len(a.Tuple)
		if len(b.Tuple) > n {
			n = len(b.Tuple)
		}
		tuple := make([]*Schema, 0, n)
		for i := 0; i < n; i++ {
			ta := tupleAt(a, i)
			tb := tupleAt(b, i)
			tuple = append(tuple, Meet(ta, tb, resolver))
		}
		add := Meet(a.Additional, b.Additional, resolver)
		return &ArrayShape{MinItems: minItems, MaxItems: maxItems, UniqueItems: unique, Tuple: tuple, Additional: add}, true
	}
}

func tupleAt(s *ArrayShape, i int) *Schema {
	if i < len(s.Tuple) {
		return s.Tuple[i]
	}
	return s.Additional
}

func meetTupleAndItems(tupleShape *ArrayShape, items *Schema, minItems, maxItems int, unique bool, resolver semantic.Resolver) (*ArrayShape, bool) {
	tuple := make([]*Schema, 0, len(tupleShape.Tuple))
	for _, t := range tupleShape.Tuple {
		tuple = append(tuple, Meet(t, items, resolver))
	}
	add := Meet(tupleShape.Additional, items, resolver)
	return &ArrayShape{MinItems: minItems, MaxItems: maxItems, UniqueItems: unique, Tuple: tuple, Additional: add}, true
}

func meetObjectShape(a, b *ObjectShape, resolver semantic.Resolver) (*ObjectShape, bool) {
	minProps := a.MinProperties
	if b.MinProperties > minProps {
		minProps = b.MinProperties
	}
	maxProps := minInfAware(a.MaxProperties, b.MaxProperties)
	if maxProps != -1 && minProps > maxProps {
		return nil, false
	}

	required := map[string]bool{}
	for k := range a.Required {
		required[k] = true
	}
	for k := range b.Required {
		required[k] = true
	}

	props := map[string]*Schema{}
	names := map[string]bool{}
	for k := range a.Properties {
		names[k] = true
	}
	for k := range b.Properties {
		names[k] = true
	}
	for _, k := range sortedKeys(names) {
		pa, okA := a.Properties[k]
		pb, okB := b.Properties[k]
		switch {
		case okA && okB:
			props[k] = Meet(pa, pb, resolver)
		case okA:
			props[k] = Meet(pa, matchingAdditional(b, k), resolver)
		case okB:
			props[k] = Meet(matchingAdditional(a, k), pb, resolver)
		}
	}

	patterns := map[string]*Schema{}
	for k, v := range a.PatternProperties {
		patterns[k] = v
	}
	for k, v := range b.PatternProperties {
		if existing, ok := patterns[k]; ok {
			patterns[k] = Meet(existing, v, resolver)
		} else {
			patterns[k] = v
		}
	}

	additional := Meet(a.Additional, b.Additional, resolver)
	forbidden := a.AdditionalForbidden || b.AdditionalForbidden

	return &ObjectShape{
		MinProperties:       minProps,
		MaxProperties:       maxProps,
		Properties:          props,
		PatternProperties:   patterns,
		Additional:          additional,
		AdditionalForbidden: forbidden,
		Required:            required,
	}, true
}

// MatchingAdditional returns the schema that side applies to a property
// name it did not declare explicitly: a matching patternProperties entry if
// one exists, else its additional schema. Exported for reuse by the kernel
// package's Join (component E), which needs the same fallback when joining
// a property one side declares explicitly against a side that only
// constrains it through patternProperties/additionalProperties.
func MatchingAdditional(s *ObjectShape, name string) *Schema {
	return matchingAdditional(s, name)
}

func matchingAdditional(s *ObjectShape, name string) *Schema {
	for _, pat := range sortedKeys(s.PatternProperties) {
		p, err := s.CompiledPattern(pat)
		if err != nil {
			continue
		}
		if p.Match(name) {
			return s.PatternProperties[pat]
		}
	}
	if s.Additional != nil {
		return s.Additional
	}
	return Top()
}

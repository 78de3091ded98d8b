package canon

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Irfan-Ullah-cs/jsonsubschema-with-semantic-check/interval"
	"github.com/Irfan-Ullah-cs/jsonsubschema-with-semantic-check/regexlang"
	"github.com/Irfan-Ullah-cs/jsonsubschema-with-semantic-check/semantic"
)

// Canonicalizer normalizes a raw JSON Schema document into a canonical
// Schema (spec §4.D). It is not safe for concurrent use; construct one per
// top-level Canonicalize call, mirroring the teacher's schemaprofile.Normalizer.
type Canonicalizer struct {
	// Root is the document $ref fragments resolve against (typically the
	// same document being canonicalized, so "#/$defs/..." works).
	Root any
	// Resolver normalizes stype IRIs as they are encountered. A nil
	// Resolver leaves stype values untouched (they are still compared for
	// equality downstream, just never compactly expanded).
	Resolver semantic.Resolver

	building map[string]*Schema
}

// New constructs a Canonicalizer rooted at root (the full decoded document
// containing any $defs/definitions that local $ref fragments resolve
// against).
func New(root any, resolver semantic.Resolver) *Canonicalizer {
	return &Canonicalizer{Root: root, Resolver: resolver}
}

// Canonicalize normalizes raw into a canonical Schema.
func (c *Canonicalizer) Canonicalize(raw any) (*Schema, error) {
	c.building = map[string]*Schema{}
	return c.canon(raw, "")
}

func (c *Canonicalizer) canon(raw any, path string) (*Schema, error) {
	switch v := raw.(type) {
	case nil:
		return Top(), nil
	case bool:
		if v {
			return Top(), nil
		}
		return Bottom(), nil
	case map[string]any:
		return c.canonMap(v, path)
	default:
		return nil, &SchemaError{Path: path, Message: fmt.Sprintf("schema must be an object or boolean, got %T", raw)}
	}
}

func (c *Canonicalizer) canonMap(schema map[string]any, path string) (*Schema, error) {
	if ref, ok := schema["$ref"].(string); ok && strings.TrimSpace(ref) != "" {
		return c.canonRef(ref, path)
	}

	result, err := c.canonTypeAndConstraints(schema, path)
	if err != nil {
		return nil, err
	}

	if values, ok := extractEnum(schema); ok {
		es, err := c.canonEnum(values, path)
		if err != nil {
			return nil, err
		}
		result = Meet(result, es, c.Resolver)
	}

	if allOf, ok := schema["allOf"]; ok {
		arr, ok2 := asSlice(allOf)
		if !ok2 {
			return nil, &SchemaError{Path: path, Message: "allOf must be an array"}
		}
		for i, m := range arr {
			sub, err := c.canon(m, ptrJoin(path, fmt.Sprintf("allOf[%d]", i)))
			if err != nil {
				return nil, err
			}
			result = Meet(result, sub, c.Resolver)
		}
	}

	if anyOf, ok := schema["anyOf"]; ok {
		u, err := c.canonUnion(anyOf, path, "anyOf")
		if err != nil {
			return nil, err
		}
		result = Meet(result, u, c.Resolver)
	}

	if oneOf, ok := schema["oneOf"]; ok {
		// Conservative anyOf semantics (spec §4.D rule 7 / §9): subtyping
		// never relies on exactly-one exclusivity.
		u, err := c.canonUnion(oneOf, path, "oneOf")
		if err != nil {
			return nil, err
		}
		result = Meet(result, u, c.Resolver)
	}

	if notV, ok := schema["not"]; ok {
		sub, err := c.canon(notV, ptrJoin(path, "not"))
		if err != nil {
			return nil, err
		}
		result = Meet(result, Complement(sub), c.Resolver)
	}

	return result, nil
}

func (c *Canonicalizer) canonUnion(raw any, path, key string) (*Schema, error) {
	arr, ok := asSlice(raw)
	if !ok {
		return nil, &SchemaError{Path: path, Message: key + " must be an array"}
	}
	var atoms []Atom
	for i, m := range arr {
		sub, err := c.canon(m, ptrJoin(path, fmt.Sprintf("%s[%d]", key, i)))
		if err != nil {
			return nil, err
		}
		atoms = append(atoms, sub.Atoms...)
	}
	return &Schema{Atoms: atoms}, nil
}

func (c *Canonicalizer) canonRef(ref string, path string) (*Schema, error) {
	if !strings.HasPrefix(ref, "#") {
		return nil, &RefError{Path: path, Ref: ref, Err: errors.New("only local fragment $ref is supported (no networked fetching, spec §1 Non-goals)")}
	}
	fragment := strings.TrimPrefix(ref, "#")
	key := "#" + fragment
	if node, ok := c.building[key]; ok {
		return node, nil
	}
	node := &Schema{}
	c.building[key] = node

	resolved, err := resolveJSONPointer(c.Root, fragment)
	if err != nil {
		delete(c.building, key)
		return nil, &RefError{Path: path, Ref: ref, Err: err}
	}
	sub, err := c.canon(resolved, path)
	if err != nil {
		delete(c.building, key)
		return nil, err
	}
	*node = *sub
	return node, nil
}

// extractEnum reports the value set from `const` (singleton) or `enum`, if
// either keyword is present.
func extractEnum(schema map[string]any) ([]any, bool) {
	if v, ok := schema["const"]; ok {
		return []any{v}, true
	}
	if v, ok := schema["enum"]; ok {
		if arr, ok2 := asSlice(v); ok2 {
			return arr, true
		}
	}
	return nil, false
}

func (c *Canonicalizer) canonEnum(values []any, path string) (*Schema, error) {
	var atoms []Atom
	for _, v := range values {
		switch x := v.(type) {
		case nil:
			atoms = append(atoms, Atom{Base: Null, Enum: []any{v}})
		case bool:
			atoms = append(atoms, Atom{Base: Boolean, Enum: []any{v}})
		case string:
			atoms = append(atoms, Atom{Base: String, Enum: []any{v}, Str: &StringShape{MaxLength: -1}})
		case []any:
			atoms = append(atoms, Atom{Base: Array, Enum: []any{v}, Arr: &ArrayShape{MaxItems: -1, Items: Top()}})
		case map[string]any:
			atoms = append(atoms, Atom{Base: Object, Enum: []any{v}, Obj: &ObjectShape{MaxProperties: -1, Additional: Top(), Required: map[string]bool{}}})
		default:
			isInt, err := isIntegralNumber(x)
			if err != nil {
				return nil, &SchemaError{Path: ptrJoin(path, "enum"), Message: fmt.Sprintf("unsupported enum value type %T", v)}
			}
			numTop := interval.Top(false)
			atoms = append(atoms, Atom{Base: Number, Enum: []any{v}, Numeric: &numTop})
			if isInt {
				intTop := interval.Top(true)
				atoms = append(atoms, Atom{Base: Integer, Enum: []any{v}, Numeric: &intTop})
			}
		}
	}
	return &Schema{Atoms: atoms}, nil
}

// canonTypeAndConstraints builds one atom per candidate base type (the
// explicit `type` list, or every base type when `type` is absent — spec
// §4.D rules 2-3), attaching per-type keywords and the (possibly resolver-
// normalized) `stype` annotation to each.
func (c *Canonicalizer) canonTypeAndConstraints(schema map[string]any, path string) (*Schema, error) {
	types, explicit, err := parseTypeKeyword(schema["type"], path)
	if err != nil {
		return nil, err
	}
	if !explicit {
		types = AllBaseTypes
	}

	stype, err := c.resolveStype(schema, path)
	if err != nil {
		return nil, err
	}

	atoms := make([]Atom, 0, len(types))
	for _, t := range types {
		atom, err := c.buildAtom(t, schema, path)
		if err != nil {
			return nil, err
		}
		atom.SemanticType = stype
		atoms = append(atoms, atom)
	}
	return &Schema{Atoms: atoms}, nil
}

func (c *Canonicalizer) resolveStype(schema map[string]any, path string) (string, error) {
	raw, ok := schema["stype"]
	if !ok {
		return "", nil
	}
	s, ok := raw.(string)
	if !ok {
		return "", &SchemaError{Path: ptrJoin(path, "stype"), Message: "stype must be a string"}
	}
	if c.Resolver == nil {
		return s, nil
	}
	norm, err := c.Resolver.Normalize(s)
	if err != nil {
		return "", &SchemaError{Path: ptrJoin(path, "stype"), Message: err.Error()}
	}
	return norm, nil
}

func parseTypeKeyword(raw any, path string) ([]BaseType, bool, error) {
	if raw == nil {
		return nil, false, nil
	}
	switch x := raw.(type) {
	case string:
		t, err := parseBaseTypeName(x, path)
		if err != nil {
			return nil, false, err
		}
		return []BaseType{t}, true, nil
	case []any:
		seen := map[BaseType]bool{}
		var out []BaseType
		for _, item := range x {
			s, ok := item.(string)
			if !ok {
				return nil, false, &SchemaError{Path: ptrJoin(path, "type"), Message: "type array must contain only strings"}
			}
			t, err := parseBaseTypeName(s, path)
			if err != nil {
				return nil, false, err
			}
			if !seen[t] {
				seen[t] = true
				out = append(out, t)
			}
		}
		return out, true, nil
	default:
		return nil, false, &SchemaError{Path: ptrJoin(path, "type"), Message: "type must be a string or array of strings"}
	}
}

func parseBaseTypeName(s string, path string) (BaseType, error) {
	switch s {
	case "null":
		return Null, nil
	case "boolean":
		return Boolean, nil
	case "integer":
		return Integer, nil
	case "number":
		return Number, nil
	case "string":
		return String, nil
	case "array":
		return Array, nil
	case "object":
		return Object, nil
	default:
		return 0, &SchemaError{Path: ptrJoin(path, "type"), Message: fmt.Sprintf("unknown type %q", s)}
	}
}

func (c *Canonicalizer) buildAtom(t BaseType, schema map[string]any, path string) (Atom, error) {
	switch t {
	case Null, Boolean:
		return Atom{Base: t}, nil
	case Integer, Number:
		return c.buildNumeric(t, schema, path)
	case String:
		return c.buildString(schema, path)
	case Array:
		return c.buildArray(schema, path)
	case Object:
		return c.buildObject(schema, path)
	}
	return Atom{}, &SchemaError{Path: path, Message: "unreachable base type"}
}

func (c *Canonicalizer) buildNumeric(t BaseType, schema map[string]any, path string) (Atom, error) {
	con := interval.Top(t == Integer)
	if minV, ok := schema["minimum"]; ok {
		f, err := toFloat64(minV)
		if err != nil {
			return Atom{}, &SchemaError{Path: ptrJoin(path, "minimum"), Message: err.Error()}
		}
		con.Min = interval.Bound{Value: f, Open: asBool(schema["exclusiveMinimum"])}
	}
	if maxV, ok := schema["maximum"]; ok {
		f, err := toFloat64(maxV)
		if err != nil {
			return Atom{}, &SchemaError{Path: ptrJoin(path, "maximum"), Message: err.Error()}
		}
		con.Max = interval.Bound{Value: f, Open: asBool(schema["exclusiveMaximum"])}
	}
	if mo, ok := schema["multipleOf"]; ok {
		r, err := toRat(mo)
		if err != nil {
			return Atom{}, &SchemaError{Path: ptrJoin(path, "multipleOf"), Message: err.Error()}
		}
		con.MultipleOf = r
	}
	return Atom{Base: t, Numeric: &con}, nil
}

func (c *Canonicalizer) buildString(schema map[string]any, path string) (Atom, error) {
	shape := &StringShape{MaxLength: -1}
	if v, ok := schema["minLength"]; ok {
		n, err := toInt(v)
		if err != nil {
			return Atom{}, &SchemaError{Path: ptrJoin(path, "minLength"), Message: err.Error()}
		}
		shape.MinLength = n
	}
	if v, ok := schema["maxLength"]; ok {
		n, err := toInt(v)
		if err != nil {
			return Atom{}, &SchemaError{Path: ptrJoin(path, "maxLength"), Message: err.Error()}
		}
		shape.MaxLength = n
	}
	if v, ok := schema["pattern"]; ok {
		s, ok2 := v.(string)
		if !ok2 {
			return Atom{}, &SchemaError{Path: ptrJoin(path, "pattern"), Message: "pattern must be a string"}
		}
		p, err := regexlang.Compile(s)
		if err != nil {
			return Atom{}, &UnsupportedError{Path: ptrJoin(path, "pattern"), Reason: err.Error()}
		}
		shape.Pattern = p
	}
	return Atom{Base: String, Str: shape}, nil
}

func (c *Canonicalizer) buildArray(schema map[string]any, path string) (Atom, error) {
	shape := &ArrayShape{MaxItems: -1}
	if v, ok := schema["minItems"]; ok {
		n, err := toInt(v)
		if err != nil {
			return Atom{}, &SchemaError{Path: ptrJoin(path, "minItems"), Message: err.Error()}
		}
		shape.MinItems = n
	}
	if v, ok := schema["maxItems"]; ok {
		n, err := toInt(v)
		if err != nil {
			return Atom{}, &SchemaError{Path: ptrJoin(path, "maxItems"), Message: err.Error()}
		}
		shape.MaxItems = n
	}
	shape.UniqueItems = asBool(schema["uniqueItems"])

	items, hasItems := schema["items"]
	if !hasItems {
		shape.Items = Top()
		return Atom{Base: Array, Arr: shape}, nil
	}
	switch iv := items.(type) {
	case []any:
		tuple := make([]*Schema, 0, len(iv))
		for i, m := range iv {
			s, err := c.canon(m, ptrJoin(path, fmt.Sprintf("items[%d]", i)))
			if err != nil {
				return Atom{}, err
			}
			tuple = append(tuple, s)
		}
		shape.Tuple = tuple
		shape.Additional = Top()
		if ai, ok := schema["additionalItems"]; ok {
			s, err := c.canon(ai, ptrJoin(path, "additionalItems"))
			if err != nil {
				return Atom{}, err
			}
			shape.Additional = s
		}
	case map[string]any:
		s, err := c.canon(iv, ptrJoin(path, "items"))
		if err != nil {
			return Atom{}, err
		}
		shape.Items = s
	case bool:
		if iv {
			shape.Items = Top()
		} else {
			shape.Items = Bottom()
		}
	case nil:
		shape.Items = Top()
	default:
		return Atom{}, &SchemaError{Path: ptrJoin(path, "items"), Message: "items must be object, array, or boolean"}
	}
	return Atom{Base: Array, Arr: shape}, nil
}

func (c *Canonicalizer) buildObject(schema map[string]any, path string) (Atom, error) {
	shape := &ObjectShape{
		MaxProperties:     -1,
		Properties:        map[string]*Schema{},
		PatternProperties: map[string]*Schema{},
		Required:          map[string]bool{},
		Additional:        Top(),
	}
	if v, ok := schema["minProperties"]; ok {
		n, err := toInt(v)
		if err != nil {
			return Atom{}, &SchemaError{Path: ptrJoin(path, "minProperties"), Message: err.Error()}
		}
		shape.MinProperties = n
	}
	if v, ok := schema["maxProperties"]; ok {
		n, err := toInt(v)
		if err != nil {
			return Atom{}, &SchemaError{Path: ptrJoin(path, "maxProperties"), Message: err.Error()}
		}
		shape.MaxProperties = n
	}
	if v, ok := schema["required"]; ok {
		arr, ok2 := asSlice(v)
		if !ok2 {
			return Atom{}, &SchemaError{Path: ptrJoin(path, "required"), Message: "required must be an array"}
		}
		for _, it := range arr {
			s, ok3 := it.(string)
			if !ok3 {
				return Atom{}, &SchemaError{Path: ptrJoin(path, "required"), Message: "required must contain only strings"}
			}
			shape.Required[s] = true
		}
	}
	if v, ok := schema["properties"]; ok {
		m, ok2 := asMap(v)
		if !ok2 {
			return Atom{}, &SchemaError{Path: ptrJoin(path, "properties"), Message: "properties must be an object"}
		}
		for _, k := range sortedKeys(m) {
			sub, err := c.canon(m[k], ptrJoin(path, fmt.Sprintf("properties[%q]", k)))
			if err != nil {
				return Atom{}, err
			}
			shape.Properties[k] = sub
		}
	}
	if v, ok := schema["patternProperties"]; ok {
		m, ok2 := asMap(v)
		if !ok2 {
			return Atom{}, &SchemaError{Path: ptrJoin(path, "patternProperties"), Message: "patternProperties must be an object"}
		}
		for _, k := range sortedKeys(m) {
			if _, err := regexlang.Compile(k); err != nil {
				return Atom{}, &UnsupportedError{Path: ptrJoin(path, "patternProperties"), Reason: err.Error()}
			}
			sub, err := c.canon(m[k], ptrJoin(path, fmt.Sprintf("patternProperties[%q]", k)))
			if err != nil {
				return Atom{}, err
			}
			shape.PatternProperties[k] = sub
		}
	}
	if v, ok := schema["additionalProperties"]; ok {
		switch x := v.(type) {
		case bool:
			if x {
				shape.Additional = Top()
			} else {
				shape.Additional = Bottom()
				shape.AdditionalForbidden = true
			}
		case map[string]any:
			sub, err := c.canon(x, ptrJoin(path, "additionalProperties"))
			if err != nil {
				return Atom{}, err
			}
			shape.Additional = sub
		default:
			return Atom{}, &SchemaError{Path: ptrJoin(path, "additionalProperties"), Message: "additionalProperties must be boolean or object"}
		}
	}
	return Atom{Base: Object, Obj: shape}, nil
}

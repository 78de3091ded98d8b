package canon

import "testing"

func decode(t *testing.T, m map[string]any) *Schema {
	t.Helper()
	c := New(m, nil)
	s, err := c.Canonicalize(m)
	if err != nil {
		t.Fatalf("canonicalize: %v", err)
	}
	return s
}

func TestCanonicalize_TypeArrayExpandsDisjunction(t *testing.T) {
	s := decode(t, map[string]any{"type": []any{"integer", "string"}})
	if len(s.Atoms) != 2 {
		t.Fatalf("expected 2 atoms, got %d", len(s.Atoms))
	}
	var sawInt, sawStr bool
	for _, a := range s.Atoms {
		switch a.Base {
		case Integer:
			sawInt = true
		case String:
			sawStr = true
		}
	}
	if !sawInt || !sawStr {
		t.Fatalf("expected integer and string atoms, got %+v", s.Atoms)
	}
}

func TestCanonicalize_MissingTypeIsUnconstrained(t *testing.T) {
	s := decode(t, map[string]any{})
	if len(s.Atoms) != len(AllBaseTypes) {
		t.Fatalf("expected one atom per base type, got %d", len(s.Atoms))
	}
}

func TestCanonicalize_NumericBounds(t *testing.T) {
	s := decode(t, map[string]any{"type": "number", "minimum": 0.0, "maximum": 100.0})
	if len(s.Atoms) != 1 {
		t.Fatalf("expected 1 atom, got %d", len(s.Atoms))
	}
	a := s.Atoms[0]
	if a.Base != Number || a.Numeric.Min.Value != 0 || a.Numeric.Max.Value != 100 {
		t.Fatalf("unexpected atom: %+v", a)
	}
}

func TestCanonicalize_AllOfIntersectsBounds(t *testing.T) {
	s := decode(t, map[string]any{
		"allOf": []any{
			map[string]any{"type": "number", "minimum": 0.0, "maximum": 100.0},
			map[string]any{"type": "number", "minimum": 50.0, "maximum": 200.0},
		},
	})
	if len(s.Atoms) != 1 {
		t.Fatalf("expected 1 atom after allOf intersection, got %d: %+v", len(s.Atoms), s.Atoms)
	}
	a := s.Atoms[0]
	if a.Numeric.Min.Value != 50 || a.Numeric.Max.Value != 100 {
		t.Fatalf("unexpected intersected bounds: %+v", a.Numeric)
	}
}

func TestCanonicalize_EnumInfersBaseType(t *testing.T) {
	s := decode(t, map[string]any{"enum": []any{"a", 1.0, true, nil}})
	bases := map[BaseType]bool{}
	for _, a := range s.Atoms {
		bases[a.Base] = true
	}
	for _, want := range []BaseType{String, Number, Integer, Boolean, Null} {
		if !bases[want] {
			t.Fatalf("expected enum to produce a %v atom, got %+v", want, s.Atoms)
		}
	}
}

func TestCanonicalize_RefCycleTerminates(t *testing.T) {
	doc := map[string]any{
		"$defs": map[string]any{
			"Tree": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"children": map[string]any{
						"type":  "array",
						"items": map[string]any{"$ref": "#/$defs/Tree"},
					},
				},
			},
		},
		"$ref": "#/$defs/Tree",
	}
	c := New(doc, nil)
	s, err := c.Canonicalize(doc)
	if err != nil {
		t.Fatalf("canonicalize: %v", err)
	}
	objAtoms := s.AtomsOfBase(Object)
	if len(objAtoms) != 1 {
		t.Fatalf("expected 1 object atom, got %d", len(objAtoms))
	}
	childrenSchema := objAtoms[0].Obj.Properties["children"]
	arrAtoms := childrenSchema.AtomsOfBase(Array)
	if len(arrAtoms) != 1 {
		t.Fatalf("expected 1 array atom for children, got %d", len(arrAtoms))
	}
	// The items schema must cycle back to the same object shape (pointer
	// identity preserved by the ref tie-the-knot construction).
	itemsObjAtoms := arrAtoms[0].Arr.Items.AtomsOfBase(Object)
	if len(itemsObjAtoms) != 1 {
		t.Fatalf("expected cyclic items to resolve to an object atom, got %d", len(itemsObjAtoms))
	}
}

func TestMeet_DisjointNumericRangesIsBottom(t *testing.T) {
	a := decode(t, map[string]any{"type": "number", "maximum": 0.0})
	b := decode(t, map[string]any{"type": "number", "minimum": 10.0})
	m := Meet(a, b, nil)
	if !m.IsBottom() {
		t.Fatalf("expected disjoint ranges to meet to Bottom, got %+v", m.Atoms)
	}
}

func TestComplement_NumericInterval(t *testing.T) {
	s := decode(t, map[string]any{"type": "number", "minimum": 0.0, "maximum": 10.0})
	c := Complement(s)
	numAtoms := c.AtomsOfBase(Number)
	if len(numAtoms) != 2 {
		t.Fatalf("expected 2 complement atoms (below and above), got %d", len(numAtoms))
	}
	if len(c.AtomsOfBase(Null)) != 1 {
		t.Fatalf("expected complement to include all of Null (not constrained by original)")
	}
}

func TestComplement_DoubleComplementRetainsStringAtom(t *testing.T) {
	s := decode(t, map[string]any{"type": "string", "minLength": 2, "maxLength": 5})
	cc := Complement(Complement(s))
	strAtoms := cc.AtomsOfBase(String)
	if len(strAtoms) == 0 {
		t.Fatalf("expected double complement to retain a string atom")
	}
}

func TestTop_IsSelfReferentialWithoutInfiniteRecursion(t *testing.T) {
	top := Top()
	arrAtoms := top.AtomsOfBase(Array)
	if arrAtoms[0].Arr.Items != top {
		t.Fatalf("expected Top's array items to be Top itself")
	}
}

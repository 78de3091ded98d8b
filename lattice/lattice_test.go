package lattice

import (
	"testing"

	"github.com/Irfan-Ullah-cs/jsonsubschema-with-semantic-check/canon"
	"github.com/Irfan-Ullah-cs/jsonsubschema-with-semantic-check/semantic"
)

func canonOf(t *testing.T, m map[string]any) *canon.Schema {
	t.Helper()
	s, err := canon.New(m, nil).Canonicalize(m)
	if err != nil {
		t.Fatalf("canonicalize: %v", err)
	}
	return s
}

func TestSubtype_ReflexivityAndTopBottom(t *testing.T) {
	s := canonOf(t, map[string]any{"type": "string", "minLength": 3.0})
	if Subtype(s, s, nil) != semantic.Yes {
		t.Fatalf("expected reflexivity")
	}
	if Subtype(canon.Bottom(), s, nil) != semantic.Yes {
		t.Fatalf("expected Bottom <: s")
	}
	if Subtype(s, canon.Top(), nil) != semantic.Yes {
		t.Fatalf("expected s <: Top")
	}
}

func TestMeet_LowerBound(t *testing.T) {
	a := canonOf(t, map[string]any{"type": "number", "minimum": 0.0, "maximum": 100.0})
	b := canonOf(t, map[string]any{"type": "number", "minimum": 50.0, "maximum": 200.0})
	m := Meet(a, b, nil)
	if Subtype(m, a, nil) != semantic.Yes || Subtype(m, b, nil) != semantic.Yes {
		t.Fatalf("expected meet(a,b) <: a and meet(a,b) <: b")
	}
}

func TestJoin_UpperBoundAndCoalescing(t *testing.T) {
	a := canonOf(t, map[string]any{"type": "number", "minimum": 0.0, "maximum": 50.0})
	b := canonOf(t, map[string]any{"type": "number", "minimum": 25.0, "maximum": 100.0})
	j := Join(a, b)
	if Subtype(a, j, nil) != semantic.Yes || Subtype(b, j, nil) != semantic.Yes {
		t.Fatalf("expected a <: join(a,b) and b <: join(a,b)")
	}
	if len(j.AtomsOfBase(canon.Number)) != 1 {
		t.Fatalf("expected overlapping numeric ranges to coalesce into one atom, got %d", len(j.AtomsOfBase(canon.Number)))
	}
}

func TestJoin_DisjointRangesStayDisjoint(t *testing.T) {
	a := canonOf(t, map[string]any{"type": "number", "maximum": 0.0})
	b := canonOf(t, map[string]any{"type": "number", "minimum": 10.0})
	j := Join(a, b)
	if len(j.AtomsOfBase(canon.Number)) != 2 {
		t.Fatalf("expected disjoint numeric ranges to remain as 2 atoms, got %d", len(j.AtomsOfBase(canon.Number)))
	}
}

func TestJoin_OverlappingStringsCoalesceViaKernelJoin(t *testing.T) {
	a := canonOf(t, map[string]any{"type": "string", "minLength": 2.0, "maxLength": 5.0})
	b := canonOf(t, map[string]any{"type": "string", "minLength": 4.0, "maxLength": 8.0})
	j := Join(a, b)
	if len(j.AtomsOfBase(canon.String)) != 1 {
		t.Fatalf("expected overlapping string length ranges to coalesce into one atom via JoinString, got %d", len(j.AtomsOfBase(canon.String)))
	}
	if Subtype(a, j, nil) != semantic.Yes || Subtype(b, j, nil) != semantic.Yes {
		t.Fatalf("expected a <: join(a,b) and b <: join(a,b)")
	}
}

func TestJoin_OverlappingObjectsCoalesceViaKernelJoin(t *testing.T) {
	a := canonOf(t, map[string]any{
		"type":       "object",
		"properties": map[string]any{"x": map[string]any{"type": "integer"}},
		"required":   []any{"x"},
	})
	b := canonOf(t, map[string]any{
		"type":       "object",
		"properties": map[string]any{"x": map[string]any{"type": "integer"}, "y": map[string]any{"type": "string"}},
	})
	j := Join(a, b)
	if len(j.AtomsOfBase(canon.Object)) != 1 {
		t.Fatalf("expected overlapping object shapes to coalesce into one atom via JoinObject, got %d", len(j.AtomsOfBase(canon.Object)))
	}
	if Subtype(a, j, nil) != semantic.Yes || Subtype(b, j, nil) != semantic.Yes {
		t.Fatalf("expected a <: join(a,b) and b <: join(a,b)")
	}
}

func TestSubtype_SemanticMonotonicity(t *testing.T) {
	g := semantic.NewGraph()
	if err := g.AddBroader("quantitykind:ThermodynamicTemperature", "quantitykind:Temperature"); err != nil {
		t.Fatalf("AddBroader: %v", err)
	}
	a := canonOf(t, map[string]any{"type": "number", "stype": "quantitykind:ThermodynamicTemperature"})
	b := canonOf(t, map[string]any{"type": "number", "stype": "quantitykind:Temperature"})
	if Subtype(a, b, g) != semantic.Yes {
		t.Fatalf("expected narrower concept to be a subtype of its broader concept")
	}
	if Subtype(b, a, g) == semantic.Yes {
		t.Fatalf("expected reverse not to hold")
	}
}

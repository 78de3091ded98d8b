package jsonsubschema

import (
	"testing"

	"github.com/Irfan-Ullah-cs/jsonsubschema-with-semantic-check/semantic"
)

func TestIsSubschema_S1_IntegerIntoIntegerOrString(t *testing.T) {
	a := map[string]any{"type": "integer"}
	b := map[string]any{"type": []any{"integer", "string"}}
	ok, err := IsSubschema(a, b, nil)
	if err != nil {
		t.Fatalf("IsSubschema: %v", err)
	}
	if !ok {
		t.Fatalf("expected integer <: [integer,string]")
	}
}

func TestIsSubschema_S3_RegexEquivalence(t *testing.T) {
	a := map[string]any{"type": "string", "pattern": "^a(b|c)$"}
	b := map[string]any{"type": "string", "pattern": "^a[bc]$"}
	ok, err := IsEquivalent(a, b, nil)
	if err != nil {
		t.Fatalf("IsEquivalent: %v", err)
	}
	if !ok {
		t.Fatalf("expected the two patterns to be language-equivalent")
	}
}

func TestMeet_LowerBoundProperty(t *testing.T) {
	a := map[string]any{"type": "number", "minimum": 0.0, "maximum": 100.0}
	b := map[string]any{"type": "number", "minimum": 50.0, "maximum": 200.0}
	m, err := Meet(a, b, nil)
	if err != nil {
		t.Fatalf("Meet: %v", err)
	}
	holds1, err := IsSubschema(m, a, nil)
	if err != nil {
		t.Fatalf("IsSubschema(meet,a): %v", err)
	}
	holds2, err := IsSubschema(m, b, nil)
	if err != nil {
		t.Fatalf("IsSubschema(meet,b): %v", err)
	}
	if !holds1 || !holds2 {
		t.Fatalf("expected meet(a,b) <: a and meet(a,b) <: b")
	}
}

func TestIsSubschema_UnresolvedRefSurfacesAsError(t *testing.T) {
	a := map[string]any{"$ref": "https://example.com/external.json"}
	b := map[string]any{"type": "object"}
	_, err := IsSubschema(a, b, nil)
	if err == nil {
		t.Fatalf("expected an error for an unresolvable external $ref")
	}
	var unresolved *UnresolvedReference
	if !asUnresolvedReference(err, &unresolved) {
		t.Fatalf("expected *UnresolvedReference, got %T: %v", err, err)
	}
}

func asUnresolvedReference(err error, target **UnresolvedReference) bool {
	if ur, ok := err.(*UnresolvedReference); ok {
		*target = ur
		return true
	}
	return false
}

func TestSchemaSubtype_S6_SemanticMonotonicity(t *testing.T) {
	g := semantic.NewGraph()
	if err := g.AddBroader("quantitykind:ThermodynamicTemperature", "quantitykind:Temperature"); err != nil {
		t.Fatalf("AddBroader: %v", err)
	}
	a := map[string]any{"type": "number", "stype": "quantitykind:ThermodynamicTemperature"}
	b := map[string]any{"type": "number", "stype": "quantitykind:Temperature"}
	ok, err := IsSubschema(a, b, g)
	if err != nil {
		t.Fatalf("IsSubschema: %v", err)
	}
	if !ok {
		t.Fatalf("expected narrower concept to be a subtype of its broader concept")
	}
	ok, err = IsSubschema(b, a, g)
	if err != nil {
		t.Fatalf("IsSubschema reverse: %v", err)
	}
	if ok {
		t.Fatalf("expected reverse not to hold")
	}
}

func TestResultSemanticType_MeetTakesNarrower(t *testing.T) {
	g := semantic.NewGraph()
	if err := g.AddBroader("quantitykind:ThermodynamicTemperature", "quantitykind:Temperature"); err != nil {
		t.Fatalf("AddBroader: %v", err)
	}
	got := resultSemanticType("meet", "quantitykind:ThermodynamicTemperature", "quantitykind:Temperature", g)
	want, _ := g.Normalize("quantitykind:ThermodynamicTemperature")
	if got != want {
		t.Fatalf("expected meet's result stype to be the narrower concept, got %q want %q", got, want)
	}
}

func TestResultSemanticType_IncomparableIsAbsent(t *testing.T) {
	g := semantic.NewGraph()
	got := resultSemanticType("meet", "ex:Foo", "ex:Bar", g)
	if got != "" {
		t.Fatalf("expected incomparable concepts to produce no result stype, got %q", got)
	}
}

func TestMeet_NarrowerConceptWins(t *testing.T) {
	g := semantic.NewGraph()
	if err := g.AddBroader("quantitykind:ThermodynamicTemperature", "quantitykind:Temperature"); err != nil {
		t.Fatalf("AddBroader: %v", err)
	}
	a := map[string]any{"type": "number", "stype": "quantitykind:Temperature"}
	b := map[string]any{"type": "number", "stype": "quantitykind:ThermodynamicTemperature"}
	m, err := Meet(a, b, g)
	if err != nil {
		t.Fatalf("Meet: %v", err)
	}
	if len(m.Atoms) != 1 {
		t.Fatalf("expected single-atom meet result, got %d atoms", len(m.Atoms))
	}
	want, _ := g.Normalize("quantitykind:ThermodynamicTemperature")
	if got := m.Atoms[0].SemanticType; got != want {
		t.Fatalf("expected meet to carry the narrower stype, got %q want %q", got, want)
	}
	ok, err := IsSubschema(m, b, g)
	if err != nil {
		t.Fatalf("IsSubschema: %v", err)
	}
	if !ok {
		t.Fatalf("expected meet(A,B) <: B (meet lower bound)")
	}
}

func TestJoin_BroaderConceptWins(t *testing.T) {
	g := semantic.NewGraph()
	if err := g.AddBroader("quantitykind:ThermodynamicTemperature", "quantitykind:Temperature"); err != nil {
		t.Fatalf("AddBroader: %v", err)
	}
	a := map[string]any{"type": "number", "stype": "quantitykind:Temperature"}
	b := map[string]any{"type": "number", "stype": "quantitykind:ThermodynamicTemperature"}
	j, err := Join(a, b, g)
	if err != nil {
		t.Fatalf("Join: %v", err)
	}
	if len(j.Atoms) != 1 {
		t.Fatalf("expected single-atom join result, got %d atoms", len(j.Atoms))
	}
	want, _ := g.Normalize("quantitykind:Temperature")
	if got := j.Atoms[0].SemanticType; got != want {
		t.Fatalf("expected join to carry the broader stype, got %q want %q", got, want)
	}
}

func TestMeet_IsMemoized(t *testing.T) {
	a := map[string]any{"type": "number", "minimum": 0.0, "maximum": 100.0}
	b := map[string]any{"type": "number", "minimum": 50.0, "maximum": 200.0}

	m, err := Meet(a, b, nil)
	if err != nil {
		t.Fatalf("Meet: %v", err)
	}
	key := cacheKeyFor("meet", a, b, defaultResolver(nil))
	cached, ok := meetCache.Load(key)
	if !ok {
		t.Fatalf("expected Meet to populate meetCache under its cache key")
	}
	if cached.(*Schema) != m {
		t.Fatalf("expected the cached result to be the same Schema Meet returned")
	}

	again, err := Meet(a, b, nil)
	if err != nil {
		t.Fatalf("Meet (second call): %v", err)
	}
	if again != m {
		t.Fatalf("expected a second identical Meet call to return the cached result, not recompute")
	}
}

func TestJoin_IsMemoized(t *testing.T) {
	a := map[string]any{"type": "number", "minimum": 0.0, "maximum": 50.0}
	b := map[string]any{"type": "number", "minimum": 25.0, "maximum": 100.0}

	j, err := Join(a, b, nil)
	if err != nil {
		t.Fatalf("Join: %v", err)
	}
	key := cacheKeyFor("join", a, b, defaultResolver(nil))
	cached, ok := joinCache.Load(key)
	if !ok {
		t.Fatalf("expected Join to populate joinCache under its cache key")
	}
	if cached.(*Schema) != j {
		t.Fatalf("expected the cached result to be the same Schema Join returned")
	}
}

func TestMeet_IncompatibleStypesShortCircuitsToBottom(t *testing.T) {
	a := map[string]any{"type": "number", "stype": "ex:Foo"}
	b := map[string]any{"type": "number", "stype": "ex:Bar"}
	m, err := Meet(a, b, nil)
	if err != nil {
		t.Fatalf("Meet: %v", err)
	}
	if !m.IsBottom() {
		t.Fatalf("expected meet of incompatible stypes under the null resolver to be Bottom")
	}
}

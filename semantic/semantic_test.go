package semantic

import "testing"

func TestNullResolver_IdentityOnly(t *testing.T) {
	var r NullResolver
	if v := r.IsSubconcept("ex:A", "ex:A"); v != Yes {
		t.Fatalf("expected identical concepts Yes, got %v", v)
	}
	if v := r.IsSubconcept("ex:A", "ex:B"); v != No {
		t.Fatalf("expected unrelated concepts No, got %v", v)
	}
	if v := r.Equivalent("ex:A", "ex:B"); v != No {
		t.Fatalf("expected unrelated concepts No, got %v", v)
	}
}

func TestGraph_TransitiveSubsumption(t *testing.T) {
	g := NewGraph()
	g.AddPrefixes(map[string]string{"ex": "http://example.org/"})
	if err := g.AddBroader("ex:Celsius", "ex:Temperature"); err != nil {
		t.Fatalf("add broader: %v", err)
	}
	if err := g.AddBroader("ex:Temperature", "ex:PhysicalQuantity"); err != nil {
		t.Fatalf("add broader: %v", err)
	}
	if v := g.IsSubconcept("ex:Celsius", "ex:PhysicalQuantity"); v != Yes {
		t.Fatalf("expected transitive subsumption Yes, got %v", v)
	}
	if v := g.IsSubconcept("ex:PhysicalQuantity", "ex:Celsius"); v != No {
		t.Fatalf("expected reverse direction No, got %v", v)
	}
}

func TestGraph_UnknownConceptIsUnknown(t *testing.T) {
	g := NewGraph()
	if err := g.AddBroader("ex:A", "ex:B"); err != nil {
		t.Fatalf("add broader: %v", err)
	}
	if v := g.IsSubconcept("ex:Z", "ex:A"); v != Unknown {
		t.Fatalf("expected unknown concept to yield Unknown, got %v", v)
	}
}

func TestGraph_Equivalent(t *testing.T) {
	g := NewGraph()
	if v := g.Equivalent("ex:A", "ex:A"); v != Yes {
		t.Fatalf("expected self-equivalence, got %v", v)
	}
}

func TestGraph_CyclicGraphDoesNotLoop(t *testing.T) {
	g := NewGraph()
	if err := g.AddBroader("ex:A", "ex:B"); err != nil {
		t.Fatalf("add broader: %v", err)
	}
	if err := g.AddBroader("ex:B", "ex:A"); err != nil {
		t.Fatalf("add broader: %v", err)
	}
	if v := g.IsSubconcept("ex:A", "ex:B"); v != Yes {
		t.Fatalf("expected cyclic concepts to be mutually subsuming, got %v", v)
	}
}

func TestVerdict_KleeneLogic(t *testing.T) {
	if Yes.And(Unknown) != Unknown {
		t.Fatalf("Yes AND Unknown should be Unknown")
	}
	if No.And(Unknown) != No {
		t.Fatalf("No AND Unknown should be No")
	}
	if Yes.Or(Unknown) != Yes {
		t.Fatalf("Yes OR Unknown should be Yes")
	}
	if No.Or(Unknown) != Unknown {
		t.Fatalf("No OR Unknown should be Unknown")
	}
}

package config

import "testing"

func TestDefaults(t *testing.T) {
	Reset()
	if Debug() {
		t.Fatalf("expected debug to default to false")
	}
	if WarnUninhabited() {
		t.Fatalf("expected warn-uninhabited to default to false")
	}
	if !SemanticReasoningEnabled() {
		t.Fatalf("expected semantic reasoning to default to enabled")
	}
}

func TestSetters(t *testing.T) {
	Reset()
	SetDebug(true)
	SetWarnUninhabited(true)
	SetSemanticReasoning(false)
	if !Debug() || !WarnUninhabited() || SemanticReasoningEnabled() {
		t.Fatalf("setters did not take effect")
	}
	Reset()
}

func TestLoadOntologySourceYAML(t *testing.T) {
	Reset()
	data := []byte("prefix: ex\nnamespace: http://example.org/\nedges:\n  - narrower: ex:Celsius\n    broader: ex:Temperature\n")
	if err := LoadOntologySourceYAML(data); err != nil {
		t.Fatalf("LoadOntologySourceYAML: %v", err)
	}
	sources := OntologySources()
	if len(sources) != 1 {
		t.Fatalf("expected 1 ontology source, got %d", len(sources))
	}
	if sources[0].Prefix != "ex" {
		t.Fatalf("expected prefix ex, got %q", sources[0].Prefix)
	}
	if len(sources[0].Edges) != 1 || sources[0].Edges[0].Narrower != "ex:Celsius" {
		t.Fatalf("unexpected edges: %+v", sources[0].Edges)
	}
	Reset()
}

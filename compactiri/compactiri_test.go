package compactiri

import "testing"

func TestParse_CompactNotation(t *testing.T) {
	tok, err := Parse("quantitykind:Temperature")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if tok.Prefix != "quantitykind" || tok.Local != "Temperature" {
		t.Fatalf("unexpected token: %#v", tok)
	}
	if !tok.IsCompact() {
		t.Fatalf("expected compact token")
	}
}

func TestParse_FullIRIPassesThrough(t *testing.T) {
	tok, err := Parse("http://qudt.org/vocab/quantitykind/Temperature")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if tok.IsCompact() {
		t.Fatalf("expected non-compact token")
	}
}

func TestParse_RejectsInvalid(t *testing.T) {
	cases := []string{"", " ", "noColon", ":missingPrefix", "bad prefix:local"}
	for _, c := range cases {
		if _, err := Parse(c); err == nil {
			t.Fatalf("expected error for %q", c)
		}
	}
}

func TestExpand_KnownPrefix(t *testing.T) {
	iri, err := Expand("quantitykind:Temperature", DefaultPrefixes())
	if err != nil {
		t.Fatalf("expand: %v", err)
	}
	if iri != "http://qudt.org/vocab/quantitykind/Temperature" {
		t.Fatalf("unexpected iri: %q", iri)
	}
}

func TestExpand_UnknownPrefixPassesThroughRaw(t *testing.T) {
	iri, err := Expand("custom:Thing", DefaultPrefixes())
	if err != nil {
		t.Fatalf("expand: %v", err)
	}
	if iri != "custom:Thing" {
		t.Fatalf("unexpected iri: %q", iri)
	}
}

func TestMerge(t *testing.T) {
	base := DefaultPrefixes()
	extra := PrefixMap{"ex": "http://overridden.example/", "custom": "http://custom.example/"}
	merged := Merge(base, extra)
	if merged["ex"] != "http://overridden.example/" {
		t.Fatalf("expected override")
	}
	if merged["custom"] != "http://custom.example/" {
		t.Fatalf("expected addition")
	}
	if merged["skos"] != base["skos"] {
		t.Fatalf("expected base prefix preserved")
	}
}

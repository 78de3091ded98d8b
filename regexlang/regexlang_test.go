package regexlang

import "testing"

func TestEquivalent_AlternationVsCharClass(t *testing.T) {
	p, err := Compile("^a(b|c)$")
	if err != nil {
		t.Fatalf("compile p: %v", err)
	}
	q, err := Compile("^a[bc]$")
	if err != nil {
		t.Fatalf("compile q: %v", err)
	}
	if !Equivalent(p, q) {
		t.Fatalf("expected ^a(b|c)$ equivalent to ^a[bc]$")
	}
}

func TestSubtype_NarrowerAlternationIsSubtype(t *testing.T) {
	p, err := Compile("^ab$")
	if err != nil {
		t.Fatalf("compile p: %v", err)
	}
	q, err := Compile("^a(b|c)$")
	if err != nil {
		t.Fatalf("compile q: %v", err)
	}
	if !Subtype(p, q) {
		t.Fatalf("expected ^ab$ <: ^a(b|c)$")
	}
	if Subtype(q, p) {
		t.Fatalf("expected ^a(b|c)$ not<: ^ab$")
	}
}

func TestUnanchored_SubstringSemantics(t *testing.T) {
	p, err := Compile("abc")
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	anchored, err := Compile("^abc$")
	if err != nil {
		t.Fatalf("compile anchored: %v", err)
	}
	if !Subtype(anchored, p) {
		t.Fatalf("expected exact match to be subset of substring match")
	}
	if Subtype(p, anchored) {
		t.Fatalf("expected substring match not subset of exact match")
	}
}

func TestIntersectionEmpty_DisjointPatterns(t *testing.T) {
	p, err := Compile("^a+$")
	if err != nil {
		t.Fatalf("compile p: %v", err)
	}
	q, err := Compile("^b+$")
	if err != nil {
		t.Fatalf("compile q: %v", err)
	}
	if !IntersectionEmpty(p, q) {
		t.Fatalf("expected ^a+$ and ^b+$ to be disjoint")
	}
}

func TestMeetPattern_Overlap(t *testing.T) {
	p, err := Compile("^[a-m]+$")
	if err != nil {
		t.Fatalf("compile p: %v", err)
	}
	q, err := Compile("^[g-z]+$")
	if err != nil {
		t.Fatalf("compile q: %v", err)
	}
	meet := MeetPattern(p, q)
	if meet.Empty() {
		t.Fatalf("expected nonempty overlap [g-m]+")
	}
	narrower, err := Compile("^[g-m]+$")
	if err != nil {
		t.Fatalf("compile narrower: %v", err)
	}
	if !Equivalent(meet, narrower) {
		t.Fatalf("expected meet of [a-m]+ and [g-z]+ to equal [g-m]+")
	}
}

func TestCompile_RejectsBackreference(t *testing.T) {
	if _, err := Compile(`(a)\1`); err == nil {
		t.Fatalf("expected backreference to be unsupported")
	}
}

func TestCompile_CaseFold(t *testing.T) {
	p, err := Compile("(?i)^abc$")
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	q, err := Compile("^[Aa][Bb][Cc]$")
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if !Equivalent(p, q) {
		t.Fatalf("expected case-insensitive abc to equal explicit char classes")
	}
}

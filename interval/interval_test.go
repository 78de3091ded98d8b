package interval

import (
	"math/big"
	"testing"
)

func TestSubtype_BasicRange(t *testing.T) {
	a := Constraint{Min: Closed(0), Max: Closed(100)}
	b := Constraint{Min: Closed(-1), Max: Closed(101)}
	if !Subtype(a, b) {
		t.Fatalf("expected [0,100] <: [-1,101]")
	}
	if Subtype(b, a) {
		t.Fatalf("expected [-1,101] not<: [0,100]")
	}
}

func TestSubtype_IntegerRefinesNumber(t *testing.T) {
	i := Constraint{Min: NegInf(), Max: PosInf(), Integer: true}
	n := Constraint{Min: NegInf(), Max: PosInf(), Integer: false}
	if !Subtype(i, n) {
		t.Fatalf("expected Integer <: Number")
	}
	if Subtype(n, i) {
		t.Fatalf("expected Number not<: Integer")
	}
}

func TestSubtype_OpenVsClosedEndpoints(t *testing.T) {
	strict := Constraint{Min: OpenB(0), Max: Closed(10)}
	inclusive := Constraint{Min: Closed(0), Max: Closed(10)}
	if !Subtype(strict, inclusive) {
		t.Fatalf("expected (0,10] <: [0,10]")
	}
	if Subtype(inclusive, strict) {
		t.Fatalf("expected [0,10] not<: (0,10]")
	}
}

func TestEmpty_InvertedBounds(t *testing.T) {
	c := Constraint{Min: Closed(10), Max: Closed(0)}
	if !c.Empty() {
		t.Fatalf("expected [10,0] to be empty")
	}
}

func TestEmpty_OpenSingletonRange(t *testing.T) {
	c := Constraint{Min: OpenB(5), Max: OpenB(5)}
	if !c.Empty() {
		t.Fatalf("expected (5,5) to be empty")
	}
}

func TestEmpty_IntegerNoMultipleInRange(t *testing.T) {
	m := big.NewRat(4, 1)
	c := Constraint{Min: Closed(1), Max: Closed(3), Integer: true, MultipleOf: m}
	if !c.Empty() {
		t.Fatalf("expected no multiple of 4 in [1,3]")
	}
}

func TestMeet_IntersectsIntervals(t *testing.T) {
	a := Constraint{Min: Closed(0), Max: Closed(10)}
	b := Constraint{Min: Closed(5), Max: Closed(20)}
	m := Meet(a, b)
	if m.Min.Value != 5 || m.Max.Value != 10 {
		t.Fatalf("unexpected meet: %+v", m)
	}
}

func TestDisjoint(t *testing.T) {
	a := Constraint{Min: Closed(0), Max: Closed(1)}
	b := Constraint{Min: Closed(2), Max: Closed(3)}
	if !Disjoint(a, b) {
		t.Fatalf("expected [0,1] and [2,3] disjoint")
	}
}

func TestSubtype_MultipleOfDivisibility(t *testing.T) {
	four := big.NewRat(4, 1)
	two := big.NewRat(2, 1)
	a := Constraint{Min: NegInf(), Max: PosInf(), MultipleOf: four}
	b := Constraint{Min: NegInf(), Max: PosInf(), MultipleOf: two}
	if !Subtype(a, b) {
		t.Fatalf("expected multiples of 4 <: multiples of 2")
	}
	if Subtype(b, a) {
		t.Fatalf("expected multiples of 2 not<: multiples of 4")
	}
}

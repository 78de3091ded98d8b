// Package interval implements the numeric-interval engine (spec §4.B): the
// subtype/meet/join/emptiness reasoning over Integer/Number constraints —
// a bound pair plus an optional multipleOf and an integrality bit.
//
// The bound-comparison logic (lowerLessOrEqual/upperGreaterOrEqual and their
// duals) is adapted from the teacher's directional min/max comparisons in
// schemaprofile/compat.go (lowerBoundLessOrEqual, upperBoundGreaterOrEqual,
// etc.); here they are generalized from a one-directional
// "input/output compatible" check into a genuine two-sided subtype relation,
// and extended with multipleOf and integrality per spec §4.B.
package interval

import (
	"math"
	"math/big"
)

// Bound is one endpoint of an interval. Infinite bounds carry Inf=true and
// an arbitrary Value (ignored).
type Bound struct {
	Value    float64
	Open     bool // exclusive
	Inf      bool
	Negative bool // only meaningful when Inf is true: -Inf vs +Inf
}

// NegInf and PosInf construct unbounded endpoints.
func NegInf() Bound { return Bound{Inf: true, Negative: true} }
func PosInf() Bound { return Bound{Inf: true, Negative: false} }

// Closed and Open construct finite endpoints.
func Closed(v float64) Bound { return Bound{Value: v} }
func OpenB(v float64) Bound  { return Bound{Value: v, Open: true} }

// Constraint models one Integer/Number atom's numeric shape (spec §3).
type Constraint struct {
	Min Bound
	Max Bound
	// MultipleOf is nil when unconstrained; otherwise a positive rational.
	MultipleOf *big.Rat
	// Integer marks this as an Integer atom (refinement of Number, spec §3).
	Integer bool
}

// Top is the unconstrained numeric constraint.
func Top(integer bool) Constraint {
	return Constraint{Min: NegInf(), Max: PosInf(), Integer: integer}
}

// lowerLessOrEqual reports whether lower bound a <= lower bound b (a admits
// everything b admits and possibly more at the low end).
func lowerLessOrEqual(a, b Bound) bool {
	if a.Inf && a.Negative {
		return true
	}
	if b.Inf && b.Negative {
		return a.Inf && a.Negative
	}
	if a.Inf && !a.Negative { // a = +Inf, only <= b if b is also +Inf (impossible, handled above)
		return false
	}
	if b.Inf && !b.Negative {
		return true
	}
	if a.Value != b.Value {
		return a.Value < b.Value
	}
	// Equal values: an open (exclusive) lower bound is stricter (higher).
	if a.Open && !b.Open {
		return false
	}
	return true
}

// upperGreaterOrEqual reports whether upper bound a >= upper bound b.
func upperGreaterOrEqual(a, b Bound) bool {
	if a.Inf && !a.Negative {
		return true
	}
	if b.Inf && !b.Negative {
		return a.Inf && !a.Negative
	}
	if a.Inf && a.Negative {
		return false
	}
	if b.Inf && b.Negative {
		return true
	}
	if a.Value != b.Value {
		return a.Value > b.Value
	}
	if a.Open && !b.Open {
		return false
	}
	return true
}

func lowerGreaterOrEqual(a, b Bound) bool { return lowerLessOrEqual(b, a) }
func upperLessOrEqual(a, b Bound) bool    { return upperGreaterOrEqual(b, a) }

// IntervalSubset reports whether [minA,maxA] ⊆ [minB,maxB].
func IntervalSubset(a, b Constraint) bool {
	return lowerGreaterOrEqual(a.Min, b.Min) && upperLessOrEqual(a.Max, b.Max)
}

// divides reports whether b divides a exactly (a is a multiple of b), for
// positive rationals.
func divides(a, b *big.Rat) bool {
	if b == nil {
		return true // everything is a multiple of "unconstrained"
	}
	if a == nil {
		// a accepts every multiple; b constrains more, so a is NOT a subset
		// unless b also accepts everything (a==nil captured above).
		return false
	}
	q := new(big.Rat).Quo(a, b)
	return q.IsInt()
}

func lcm(a, b *big.Rat) *big.Rat {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	// lcm(p/q, r/s) = lcm(p*s, r*q) / (q*s) reduced; for our purposes we only
	// need a value that both a and b divide, which lcm(numerators)/gcd(denominators)
	// does not generally give, so instead compute via cross "lcm of rationals":
	// lcm(a,b) = a*b / gcd(a,b), defined over rationals the same way as integers
	// once scaled to a common denominator.
	ad := new(big.Int).Set(a.Denom())
	bd := new(big.Int).Set(b.Denom())
	cd := new(big.Int).Mul(ad, bd)
	an := new(big.Int).Mul(a.Num(), bd)
	bn := new(big.Int).Mul(b.Num(), ad)
	g := new(big.Int).GCD(nil, nil, an, bn)
	if g.Sign() == 0 {
		return big.NewRat(0, 1)
	}
	l := new(big.Int).Div(new(big.Int).Mul(an, bn), g)
	return new(big.Rat).SetFrac(l, cd)
}

// Empty reports whether the constraint accepts no value at all: an
// empty interval, or (when Integer) no integer multiple of MultipleOf lies
// within the interval.
func (c Constraint) Empty() bool {
	if !lowerLessOrEqual(c.Min, c.Max) {
		return true
	}
	if c.Min.Value == c.Max.Value && !c.Min.Inf && !c.Max.Inf && (c.Min.Open || c.Max.Open) {
		return true
	}
	if c.Integer {
		lo, loOK := integerCeil(c.Min)
		hi, hiOK := integerFloor(c.Max)
		if !loOK || !hiOK {
			return false
		}
		if lo.Cmp(hi) > 0 {
			return true
		}
		if c.MultipleOf != nil {
			return !hasMultipleInRange(c.MultipleOf, lo, hi)
		}
		return false
	}
	return false
}

func integerCeil(b Bound) (*big.Int, bool) {
	if b.Inf && b.Negative {
		return nil, false // unbounded below; caller must not rely on a concrete value
	}
	if b.Inf {
		return nil, false
	}
	v := math.Ceil(b.Value)
	if b.Open && v == b.Value {
		v++
	}
	return big.NewInt(int64(v)), true
}

func integerFloor(b Bound) (*big.Int, bool) {
	if b.Inf {
		return nil, false
	}
	v := math.Floor(b.Value)
	if b.Open && v == b.Value {
		v--
	}
	return big.NewInt(int64(v)), true
}

func hasMultipleInRange(m *big.Rat, lo, hi *big.Int) bool {
	// With m = p/q in lowest terms, the integers that are multiples of m are
	// exactly the multiples of p, so only the numerator matters.
	mi := m.Num()
	// smallest multiple of mi that is >= lo
	q := new(big.Int)
	r := new(big.Int)
	q.QuoRem(lo, mi, r)
	if r.Sign() != 0 {
		if lo.Sign() >= 0 {
			q.Add(q, big.NewInt(1))
		}
	}
	cand := new(big.Int).Mul(q, mi)
	return cand.Cmp(hi) <= 0 && cand.Cmp(lo) >= 0
}

// Subtype implements spec §4.B: C1 <: C2 iff interval(C1) ⊆ interval(C2),
// multiple_of(C2) divides multiple_of(C1), and integrality of C2 implies
// integrality of C1 (Integer <: Number).
func Subtype(c1, c2 Constraint) bool {
	if c1.Empty() {
		return true
	}
	if c2.Integer && !c1.Integer {
		return false
	}
	if !IntervalSubset(c1, c2) {
		return false
	}
	if c2.MultipleOf != nil && !divides(c1.MultipleOf, c2.MultipleOf) {
		return false
	}
	return true
}

func minBound(a, b Bound) Bound {
	if lowerLessOrEqual(a, b) {
		return b
	}
	return a
}

func maxBoundOf(a, b Bound) Bound {
	if lowerLessOrEqual(a, b) {
		return a
	}
	return b
}

func upperMin(a, b Bound) Bound {
	if upperLessOrEqual(a, b) {
		return a
	}
	return b
}

func upperMax(a, b Bound) Bound {
	if upperLessOrEqual(a, b) {
		return b
	}
	return a
}

// Meet intersects two constraints: tighter interval, lcm of multipleOf, OR
// of integrality.
func Meet(a, b Constraint) Constraint {
	return Constraint{
		Min:        minBound(a.Min, b.Min),
		Max:        upperMin(a.Max, b.Max),
		MultipleOf: lcm(a.MultipleOf, b.MultipleOf),
		Integer:    a.Integer || b.Integer,
	}
}

// Join computes the smallest enclosing constraint. Per spec §4.B, when the
// two intervals are disjoint the driver (not this function) is responsible
// for preserving the AnyOf rather than over-approximating; Join always
// returns the enclosing envelope and leaves disjointness detection to the
// caller via Disjoint.
func Join(a, b Constraint) Constraint {
	return Constraint{
		Min:        maxBoundOf(a.Min, b.Min),
		Max:        upperMax(a.Max, b.Max),
		MultipleOf: gcdRat(a.MultipleOf, b.MultipleOf),
		Integer:    a.Integer && b.Integer,
	}
}

func gcdRat(a, b *big.Rat) *big.Rat {
	if a == nil || b == nil {
		return nil
	}
	ad := new(big.Int).Set(a.Denom())
	bd := new(big.Int).Set(b.Denom())
	cd := new(big.Int).Mul(ad, bd)
	an := new(big.Int).Mul(a.Num(), bd)
	bn := new(big.Int).Mul(b.Num(), ad)
	g := new(big.Int).GCD(nil, nil, new(big.Int).Abs(an), new(big.Int).Abs(bn))
	return new(big.Rat).SetFrac(g, cd)
}

// Disjoint reports whether a and b share no value (used by the driver to
// decide whether Join must fall back to preserving an AnyOf, spec §4.B).
func Disjoint(a, b Constraint) bool {
	return Meet(a, b).Empty()
}

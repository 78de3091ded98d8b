// Package regexlang implements the restricted string-pattern engine (spec
// §4.A): compiling a JSON Schema "pattern" regular expression into a
// deterministic finite automaton over a symbolic rune alphabet, and deciding
// containment/intersection/union/equivalence between two compiled patterns.
//
// The dialect is the subset of Perl-compatible syntax that Go's own
// regexp/syntax package can parse: literals, character classes, anchors,
// concatenation, alternation, and the star/plus/quest/repeat quantifiers.
// Lookaround and backreferences are not part of that subset (regexp/syntax
// rejects them at parse time), and capturing groups are accepted but treated
// as plain grouping since only the matched language matters here, never
// submatches.
package regexlang

import (
	"fmt"
	"regexp/syntax"
)

// ErrUnsupported is returned (wrapped with context) when a pattern uses a
// construct outside the engine's dialect (spec §7, error kind Unsupported).
type ErrUnsupported struct {
	Pattern string
	Reason  string
}

func (e *ErrUnsupported) Error() string {
	return fmt.Sprintf("regexlang: unsupported pattern %q: %s", e.Pattern, e.Reason)
}

// Pattern is a compiled regular expression, represented internally as a
// total DFA over a symbolic alphabet so that containment and boolean
// combination can be decided exactly rather than heuristically.
type Pattern struct {
	Source string
	dfa    *DFA
}

// Compile parses and compiles src into a Pattern. src is treated as
// unanchored-by-default per JSON Schema "pattern" semantics (substring
// match), matching the ECMA 262 convention that govers JSON Schema
// Draft-04 patterns: ^ and $ anchor explicitly when present.
func Compile(src string) (*Pattern, error) {
	re, err := syntax.Parse(src, syntax.Perl)
	if err != nil {
		return nil, &ErrUnsupported{Pattern: src, Reason: err.Error()}
	}
	re = re.Simplify()

	b := &builder{n: newNFA()}
	// JSON Schema patterns are implicitly substring matches unless anchored;
	// model that by wrapping with Σ* on either side where the pattern did
	// not itself anchor with ^/$. The parsed tree retains OpBeginText/
	// OpEndText nodes when ^/$ were present, so detect those by re-parsing
	// with anchors stripped is unnecessary: regexp/syntax already encodes
	// anchors as explicit ops we can check for.
	anchoredStart, anchoredEnd := hasAnchors(re)

	frag := b.buildFragment(re)
	if b.unsup {
		return nil, &ErrUnsupported{Pattern: src, Reason: b.unsupWhy}
	}

	start, end := frag.start, frag.accept
	if !anchoredStart {
		dotStar := b.star(b.buildFragment(&syntax.Regexp{Op: syntax.OpAnyChar}))
		wrapped := b.concat(dotStar, fragment{start, end})
		start = wrapped.start
		end = wrapped.accept
	}
	if !anchoredEnd {
		dotStar := b.star(b.buildFragment(&syntax.Regexp{Op: syntax.OpAnyChar}))
		wrapped := b.concat(fragment{start, end}, dotStar)
		start, end = wrapped.start, wrapped.accept
	}
	b.n.start = start
	b.n.accept = end

	return &Pattern{Source: src, dfa: determinize(b.n)}, nil
}

// hasAnchors reports whether re begins with ^ (BeginText/BeginLine) and/or
// ends with $ (EndText/EndLine), looking through the outermost Concat.
func hasAnchors(re *syntax.Regexp) (start, end bool) {
	parts := []*syntax.Regexp{re}
	if re.Op == syntax.OpConcat {
		parts = re.Sub
	}
	if len(parts) == 0 {
		return false, false
	}
	first := parts[0]
	last := parts[len(parts)-1]
	start = first.Op == syntax.OpBeginText || first.Op == syntax.OpBeginLine
	end = last.Op == syntax.OpEndText || last.Op == syntax.OpEndLine
	return start, end
}

// Subtype reports whether every string matched by p is also matched by q:
// L(p) ⊆ L(q), decided exactly via DFA product construction (spec §4.A).
func Subtype(p, q *Pattern) bool {
	diff := Intersect(p.dfa, Complement(q.dfa))
	return diff.Empty()
}

// Equivalent reports whether p and q accept exactly the same language.
func Equivalent(p, q *Pattern) bool {
	return Subtype(p, q) && Subtype(q, p)
}

// IntersectionEmpty reports whether L(p) ∩ L(q) = ∅, i.e. no string matches
// both patterns (used by the kernel to test whether two patternProperties
// keys can match the same property name).
func IntersectionEmpty(p, q *Pattern) bool {
	return Intersect(p.dfa, q.dfa).Empty()
}

// MeetPattern returns a Pattern accepting L(p) ∩ L(q). Its Source is the
// descriptive label "(p)&(q)", not a compilable regex: reconstructing a
// minimal regex from a DFA is not needed by the lattice driver (spec's
// canonical form carries the automaton, not a string).
func MeetPattern(p, q *Pattern) *Pattern {
	return &Pattern{Source: "(" + p.Source + ")&(" + q.Source + ")", dfa: Intersect(p.dfa, q.dfa)}
}

// JoinPattern returns a Pattern accepting L(p) ∪ L(q).
func JoinPattern(p, q *Pattern) *Pattern {
	return &Pattern{Source: "(" + p.Source + ")|(" + q.Source + ")", dfa: Union(p.dfa, q.dfa)}
}

// Empty reports whether p matches no string at all.
func (p *Pattern) Empty() bool { return p.dfa.Empty() }

// ComplementPattern returns a Pattern matching every string p does not
// match, relative to Σ* — exact, since complementation of a total DFA is
// just flipping its accept set (spec §9, "not across regex").
func ComplementPattern(p *Pattern) *Pattern {
	return &Pattern{Source: "~(" + p.Source + ")", dfa: Complement(p.dfa)}
}

// Match reports whether s satisfies p under JSON Schema "pattern" semantics
// (ECMA 262 substring search unless p was anchored with ^/$). Used to check
// enum/const literal values against a String atom's pattern.
func (p *Pattern) Match(s string) bool {
	st := 0
	for _, r := range s {
		sym := symbolFor(p.dfa.alphabet, r)
		if sym < 0 {
			return false
		}
		st = p.dfa.trans[st][sym]
	}
	return p.dfa.accept[st]
}

// Package jsonsubschema is the public façade (spec §4.G, component G):
// is_subschema, meet, join, is_equivalent, resolver injection, and the
// memoization cache keyed by structural hash and resolver identity (spec
// §4.G, §9 "Caching").
package jsonsubschema

import (
	"errors"
	"fmt"
	"io"
	"reflect"
	"sync"

	"github.com/cespare/xxhash/v2"

	"github.com/Irfan-Ullah-cs/jsonsubschema-with-semantic-check/canon"
	"github.com/Irfan-Ullah-cs/jsonsubschema-with-semantic-check/canonicaljson"
	"github.com/Irfan-Ullah-cs/jsonsubschema-with-semantic-check/internal/config"
	"github.com/Irfan-Ullah-cs/jsonsubschema-with-semantic-check/internal/metaschema"
	"github.com/Irfan-Ullah-cs/jsonsubschema-with-semantic-check/internal/obslog"
	"github.com/Irfan-Ullah-cs/jsonsubschema-with-semantic-check/lattice"
	"github.com/Irfan-Ullah-cs/jsonsubschema-with-semantic-check/regexlang"
	"github.com/Irfan-Ullah-cs/jsonsubschema-with-semantic-check/semantic"
)

// Schema is the canonical schema type exposed to callers that want to
// inspect or reuse a meet/join result without re-canonicalizing it.
type Schema = canon.Schema

// SetDebug mirrors the original's config.set_debug(enabled): routes
// internal/obslog tracing to w, or disables it when w is nil.
func SetDebug(w io.Writer) { obslog.SetDebug(w) }

// SetSemanticReasoning toggles semantic reasoning (SPEC_FULL §2.3),
// mirroring config.ENABLE_SEMANTIC_REASONING: when disabled, the façade
// skips the stype preflight and uses the null resolver in place of the one
// passed in.
func SetSemanticReasoning(v bool) { config.SetSemanticReasoning(v) }

// IsSubschema reports whether s1 <: s2 under resolver (nil defaults to the
// null resolver). Unknown resolver verdicts are conservatively converted to
// false (spec §7); use Explain to see the tri-valued structural result.
func IsSubschema(s1, s2 any, resolver semantic.Resolver) (bool, error) {
	e, err := Explain(s1, s2, resolver)
	if err != nil {
		return false, err
	}
	return e.Holds, nil
}

// IsEquivalent derives mutual subtyping (spec §8 property 7).
func IsEquivalent(s1, s2 any, resolver semantic.Resolver) (bool, error) {
	ab, err := IsSubschema(s1, s2, resolver)
	if err != nil {
		return false, err
	}
	if !ab {
		return false, nil
	}
	ba, err := IsSubschema(s2, s1, resolver)
	if err != nil {
		return false, err
	}
	return ba, nil
}

// Meet computes the canonical greatest-lower-bound schema of s1 and s2. When
// semantic reasoning is enabled and the root-level `stype`s are provably
// incompatible, this short-circuits to Bottom before canonicalization is
// even attempted (SPEC_FULL §4 item 3, mirroring the original's
// `api.meet` fast path).
func Meet(s1, s2 any, resolver semantic.Resolver) (*Schema, error) {
	resolver = defaultResolver(resolver)

	key := cacheKeyFor("meet", s1, s2, resolver)
	if cached, ok := meetCache.Load(key); ok {
		return cached.(*Schema), nil
	}

	if config.SemanticReasoningEnabled() && rootStypesIncompatible(s1, s2, resolver) {
		meetCache.Store(key, canon.Bottom())
		return canon.Bottom(), nil
	}

	c1, err := canonicalizeRoot(s1, resolver)
	if err != nil {
		return nil, err
	}
	c2, err := canonicalizeRoot(s2, resolver)
	if err != nil {
		return nil, err
	}
	result := lattice.Meet(c1, c2, resolver)
	applyResultSemanticType("meet", result, c1, c2, resolver)
	meetCache.Store(key, result)
	return result, nil
}

// rootStypesIncompatible reports whether s1 and s2 are raw documents whose
// root-level stypes are each provably not a subconcept of the other.
func rootStypesIncompatible(s1, s2 any, resolver semantic.Resolver) bool {
	am, aok := s1.(map[string]any)
	bm, bok := s2.(map[string]any)
	if !aok || !bok {
		return false
	}
	return nodeSemanticVerdict(am, bm, resolver) == semantic.No && nodeSemanticVerdict(bm, am, resolver) == semantic.No
}

// Join computes the canonical least-upper-bound schema of s1 and s2.
func Join(s1, s2 any, resolver semantic.Resolver) (*Schema, error) {
	resolver = defaultResolver(resolver)

	key := cacheKeyFor("join", s1, s2, resolver)
	if cached, ok := joinCache.Load(key); ok {
		return cached.(*Schema), nil
	}

	c1, err := canonicalizeRoot(s1, resolver)
	if err != nil {
		return nil, err
	}
	c2, err := canonicalizeRoot(s2, resolver)
	if err != nil {
		return nil, err
	}
	// Relabel both single-atom operands with the broader concept so the
	// coalescing pass, which only merges atoms of equal stype, can merge them.
	if st := resultSemanticType("join", rootSemanticType(c1), rootSemanticType(c2), resolver); st != "" {
		c1 = canon.Single(c1.Atoms[0])
		c1.Atoms[0].SemanticType = st
		c2 = canon.Single(c2.Atoms[0])
		c2.Atoms[0].SemanticType = st
	}
	result := lattice.Join(c1, c2)
	applyResultSemanticType("join", result, c1, c2, resolver)
	joinCache.Store(key, result)
	return result, nil
}

// applyResultSemanticType stamps the meet/join's result stype (SPEC_FULL §4
// item 2: narrower for meet, broader for join, absent if incomparable) onto
// a single-atom result. canon.Meet already picks the narrower stype per
// atom pair internally (see meetSemantic); this additionally covers Join,
// which never merges atoms of differing stype on its own, and serves as the
// façade-level authority for the common single-atom-per-side case this
// operates on.
func applyResultSemanticType(kind string, result, c1, c2 *canon.Schema, resolver semantic.Resolver) {
	if len(result.Atoms) != 1 {
		return
	}
	a := rootSemanticType(c1)
	b := rootSemanticType(c2)
	if st := resultSemanticType(kind, a, b, resolver); st != "" {
		result.Atoms[0].SemanticType = st
	}
}

// rootSemanticType returns the stype of a canonicalized schema's sole atom,
// or "" if the schema is not a single atom (a disjunction of several atoms
// has no single root stype to report).
func rootSemanticType(s *canon.Schema) string {
	if len(s.Atoms) != 1 {
		return ""
	}
	return s.Atoms[0].SemanticType
}

// Explanation is the structured trace of an IsSubschema query (SPEC_FULL §4
// item 1, adapted from the original's api.debug_subschema_check): useful
// for CLI --explain output and for tests that want to see the
// canonicalized operands rather than just the final boolean.
type Explanation struct {
	SemanticPreflight semantic.Verdict
	CanonicalLHS      *Schema
	CanonicalRHS      *Schema
	StructuralVerdict semantic.Verdict
	Holds             bool
}

// Explain performs the same steps as IsSubschema but returns the
// intermediate trace instead of collapsing it to a bool.
func Explain(s1, s2 any, resolver semantic.Resolver) (*Explanation, error) {
	resolver = defaultResolver(resolver)

	key := cacheKeyFor("subschema", s1, s2, resolver)
	if cached, ok := explainCache.Load(key); ok {
		return cached.(*Explanation), nil
	}

	pre := semantic.Unknown
	if config.SemanticReasoningEnabled() {
		pre = semanticPreflight(s1, s2, resolver)
		if pre == semantic.No {
			e := &Explanation{SemanticPreflight: pre, Holds: false}
			explainCache.Store(key, e)
			return e, nil
		}
	}

	c1, err := canonicalizeRoot(s1, resolver)
	if err != nil {
		return nil, err
	}
	c2, err := canonicalizeRoot(s2, resolver)
	if err != nil {
		return nil, err
	}
	verdict := lattice.Subtype(c1, c2, resolver)
	if verdict == semantic.Unknown {
		obslog.ResolverUnknown(describeRoot(s1), describeRoot(s2))
	}

	e := &Explanation{
		SemanticPreflight: pre,
		CanonicalLHS:      c1,
		CanonicalRHS:      c2,
		StructuralVerdict: verdict,
		Holds:             verdict == semantic.Yes,
	}
	explainCache.Store(key, e)
	return e, nil
}

func defaultResolver(r semantic.Resolver) semantic.Resolver {
	if r == nil || !config.SemanticReasoningEnabled() {
		return semantic.NullResolver{}
	}
	return r
}

func canonicalizeRoot(doc any, resolver semantic.Resolver) (*canon.Schema, error) {
	if s, ok := doc.(*canon.Schema); ok {
		return s, nil // already canonical, e.g. a Meet/Join result
	}
	if err := metaschema.ValidateDocument(doc); err != nil {
		return nil, &InvalidSchema{Err: err}
	}
	s, err := canon.New(doc, resolver).Canonicalize(doc)
	if err != nil {
		return nil, wrapCanonError(err)
	}
	obslog.Canonicalize("<root>", len(s.Atoms))
	return s, nil
}

func wrapCanonError(err error) error {
	var refErr *canon.RefError
	if errors.As(err, &refErr) {
		return &UnresolvedReference{Path: refErr.Path, Ref: refErr.Ref, Err: refErr.Err}
	}
	var unsupErr *canon.UnsupportedError
	if errors.As(err, &unsupErr) {
		return &Unsupported{Path: unsupErr.Path, Reason: unsupErr.Reason}
	}
	var schemaErr *canon.SchemaError
	if errors.As(err, &schemaErr) {
		return &InvalidSchema{Path: schemaErr.Path, Err: errors.New(schemaErr.Message)}
	}
	var reErr *regexlang.ErrUnsupported
	if errors.As(err, &reErr) {
		return &Unsupported{Reason: reErr.Reason}
	}
	return &InvalidSchema{Err: err}
}

func describeRoot(doc any) string {
	if m, ok := doc.(map[string]any); ok {
		if s, ok := m["stype"].(string); ok {
			return s
		}
	}
	return "<root>"
}

// semanticPreflight walks the raw (pre-canonical) schema trees checking
// stype compatibility node-by-node (SPEC_FULL §4 item 4/3, adapted from
// the original's _check_nested_semantic_compatibility): it exists purely
// as an early-exit optimization returning semantic.No only when it can
// positively prove incompatibility, so it is sound to use as a fast path
// before the (slower, more principled) canonical-level check that
// lattice.Subtype performs. It never returns semantic.Yes: a structural
// check is still required to prove the subtype holds.
func semanticPreflight(a, b any, resolver semantic.Resolver) semantic.Verdict {
	am, aok := a.(map[string]any)
	bm, bok := b.(map[string]any)
	if !aok || !bok {
		return semantic.Unknown
	}
	if v := nodeSemanticVerdict(am, bm, resolver); v == semantic.No {
		return semantic.No
	}
	for _, key := range []string{"items", "additionalProperties"} {
		am2, aok := am[key].(map[string]any)
		bm2, bok := bm[key].(map[string]any)
		if aok && bok {
			if semanticPreflight(am2, bm2, resolver) == semantic.No {
				return semantic.No
			}
		}
	}
	ap, apok := am["properties"].(map[string]any)
	bp, bpok := bm["properties"].(map[string]any)
	if apok && bpok {
		for name, av := range ap {
			avm, ok := av.(map[string]any)
			if !ok {
				continue
			}
			bv, ok := bp[name]
			if !ok {
				continue
			}
			bvm, ok := bv.(map[string]any)
			if !ok {
				continue
			}
			if semanticPreflight(avm, bvm, resolver) == semantic.No {
				return semantic.No
			}
		}
	}
	return semantic.Unknown
}

func nodeSemanticVerdict(am, bm map[string]any, resolver semantic.Resolver) semantic.Verdict {
	as, _ := am["stype"].(string)
	bs, _ := bm["stype"].(string)
	if bs == "" || as == "" {
		return semantic.Unknown
	}
	na, err := resolver.Normalize(as)
	if err != nil {
		return semantic.Unknown
	}
	nb, err := resolver.Normalize(bs)
	if err != nil {
		return semantic.Unknown
	}
	if na == nb {
		return semantic.Unknown
	}
	return resolver.IsSubconcept(na, nb)
}

// resultSemanticType computes which stype the result of a meet/join
// carries (SPEC_FULL §4 item 2, adapted from the original's
// _determine_meet_semantic_type/_determine_join_semantic_type): narrower
// for meet, broader for join, absent if the two concepts are incomparable
// under resolver. A result schema that loses its stype this way is not
// thereby unconstrained — the structural meet/join still ran to
// completion; the stype is merely omitted from the result (see
// DESIGN.md).
func resultSemanticType(kind string, aStype, bStype string, resolver semantic.Resolver) string {
	if aStype == "" || bStype == "" {
		return ""
	}
	na, err := resolver.Normalize(aStype)
	if err != nil {
		return ""
	}
	nb, err := resolver.Normalize(bStype)
	if err != nil {
		return ""
	}
	if na == nb {
		return na
	}
	aSubB := resolver.IsSubconcept(na, nb)
	bSubA := resolver.IsSubconcept(nb, na)
	switch kind {
	case "meet":
		if aSubB == semantic.Yes {
			return na
		}
		if bSubA == semantic.Yes {
			return nb
		}
	case "join":
		if aSubB == semantic.Yes {
			return nb
		}
		if bSubA == semantic.Yes {
			return na
		}
	}
	return ""
}

// explainCache, meetCache, and joinCache back is_subschema/is_equivalent,
// meet, and join respectively: spec §4.G/§9 require all four façade
// operations to memoize "by structural hash of inputs and resolver
// identity" (cacheKeyFor), so each operation gets its own sync.Map keyed
// the same way rather than sharing one cache across differently-shaped
// result types.
var (
	explainCache sync.Map // cacheKey -> *Explanation
	meetCache    sync.Map // cacheKey -> *Schema
	joinCache    sync.Map // cacheKey -> *Schema
)

type cacheKey struct {
	hash       uint64
	queryKind  string
	resolverID string
	// lhs/rhs key already-canonical operands by identity: a canonical
	// schema may be cyclic, so it is never serialized for the hash.
	lhs, rhs *canon.Schema
}

func cacheKeyFor(queryKind string, s1, s2 any, resolver semantic.Resolver) cacheKey {
	lhs, _ := s1.(*canon.Schema)
	rhs, _ := s2.(*canon.Schema)
	h := xxhash.New()
	for i, s := range []any{s1, s2} {
		if i == 1 {
			h.Write([]byte{0})
		}
		if _, ok := s.(*canon.Schema); ok {
			continue
		}
		if b, err := canonicaljson.Marshal(s); err == nil {
			h.Write(b)
		}
	}
	return cacheKey{hash: h.Sum64(), queryKind: queryKind, resolverID: resolverIdentity(resolver), lhs: lhs, rhs: rhs}
}

// resolverIdentity derives a cache-invalidation key from the resolver's
// identity (spec §9 "Caching": "invalidation is by resolver identity, so
// loading a new ontology yields a new resolver and a fresh cache"). Value
// resolvers with no state (like NullResolver) are deliberately identified
// by type alone, since any two instances behave identically; pointer
// resolvers (like *semantic.Graph) are identified by address so that
// loading a new ontology graph — a new pointer — invalidates prior
// entries.
func resolverIdentity(r semantic.Resolver) string {
	v := reflect.ValueOf(r)
	switch v.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Chan, reflect.Func, reflect.UnsafePointer:
		return fmt.Sprintf("%T:%p", r, r)
	default:
		// Stateless value resolvers (e.g. NullResolver{}): every instance
		// behaves identically, so the type alone is a sufficient cache key.
		return fmt.Sprintf("%T", r)
	}
}

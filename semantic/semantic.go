// Package semantic implements the pluggable semantic/ontological subtype
// resolver (spec §4.C): the `stype` keyword annotates a schema atom with a
// concept IRI, and a Resolver decides subsumption between two concepts using
// a three-valued verdict so the lattice driver (component F) can fall back
// to purely structural reasoning when the resolver has no opinion.
//
// This is grounded on the original implementation's semantic_type.py, which
// builds a SKOS `broader`/`narrower` concept graph with rdflib and answers
// is_subtype_of via transitive closure. No RDF/Turtle library exists
// anywhere in the example pack, so Graph loads the same kind of
// concept graph from YAML instead (gopkg.in/yaml.v3, as used elsewhere in
// the pack for structured config), keeping the subsumption algorithm
// identical while swapping the serialization format.
package semantic

import (
	"fmt"

	"github.com/Irfan-Ullah-cs/jsonsubschema-with-semantic-check/compactiri"
)

// Verdict is the three-valued (Kleene) result of a semantic query (spec §7).
type Verdict int

const (
	Unknown Verdict = iota
	Yes
	No
)

func (v Verdict) String() string {
	switch v {
	case Yes:
		return "yes"
	case No:
		return "no"
	default:
		return "unknown"
	}
}

// And implements Kleene conjunction: Unknown is absorbing unless the other
// side is already No.
func (v Verdict) And(o Verdict) Verdict {
	if v == No || o == No {
		return No
	}
	if v == Unknown || o == Unknown {
		return Unknown
	}
	return Yes
}

// Or implements Kleene disjunction.
func (v Verdict) Or(o Verdict) Verdict {
	if v == Yes || o == Yes {
		return Yes
	}
	if v == Unknown || o == Unknown {
		return Unknown
	}
	return No
}

// Resolver answers subsumption queries between two ontology concepts named
// by (possibly compact) IRIs. Implementations must be safe for concurrent
// use (spec §5: the lattice driver may query a Resolver from multiple
// goroutines during a parallel fan-out).
type Resolver interface {
	// Normalize expands a possibly-compact IRI (e.g. "quantitykind:Temperature")
	// to its full form, using the resolver's own prefix table.
	Normalize(iri string) (string, error)

	// IsSubconcept reports whether concept `narrower` is the same as or a
	// transitive SKOS-narrower of `broader`.
	IsSubconcept(narrower, broader string) Verdict

	// Equivalent reports whether two concepts denote the same thing.
	Equivalent(a, b string) Verdict
}

// NullResolver is the default resolver: it returns No for any a != b and Yes
// for a == b (spec §4.C: "a null resolver ... returns No for any a != b, Yes
// for a == b"). With no ontology configured, two distinct concept IRIs are
// firmly unrelated rather than merely unknown — this preserves exact
// backward compatibility with purely-structural subtyping, since a
// structural-only system never had an "unknown" answer to give.
type NullResolver struct{}

func (NullResolver) Normalize(iri string) (string, error) { return iri, nil }

func (NullResolver) IsSubconcept(narrower, broader string) Verdict {
	if narrower == broader {
		return Yes
	}
	return No
}

func (NullResolver) Equivalent(a, b string) Verdict {
	if a == b {
		return Yes
	}
	return No
}

// Graph is an in-memory SKOS-style concept graph: each concept maps to its
// immediate broader concepts (i.e. edges point from a concept to its
// immediate parents, mirroring skos:broader).
type Graph struct {
	prefixes compactiri.PrefixMap
	broader  map[string][]string // concept -> direct parents
	closure  map[string]map[string]bool
}

// NewGraph builds an empty graph seeded with the default prefix table; call
// AddPrefixes and AddBroader to populate it, or load from YAML via Load.
func NewGraph() *Graph {
	return &Graph{
		prefixes: compactiri.DefaultPrefixes(),
		broader:  map[string][]string{},
	}
}

// AddPrefixes merges additional compact-IRI prefixes into the graph.
func (g *Graph) AddPrefixes(pm compactiri.PrefixMap) {
	g.prefixes = compactiri.Merge(g.prefixes, pm)
}

// AddBroader records that child is an immediate SKOS-narrower of parent
// (child broader parent), invalidating any previously computed closure.
func (g *Graph) AddBroader(child, parent string) error {
	cn, err := g.Normalize(child)
	if err != nil {
		return err
	}
	pn, err := g.Normalize(parent)
	if err != nil {
		return err
	}
	g.broader[cn] = append(g.broader[cn], pn)
	g.closure = nil
	return nil
}

func (g *Graph) Normalize(iri string) (string, error) {
	return compactiri.Expand(iri, g.prefixes)
}

// doc is the YAML shape a graph file is expected to follow:
//
//	prefixes:
//	  ex: "http://example.org/"
//	concepts:
//	  ex:Celsius:
//	    broader: [quantitykind:Temperature]
type doc struct {
	Prefixes map[string]string `yaml:"prefixes"`
	Concepts map[string]struct {
		Broader []string `yaml:"broader"`
	} `yaml:"concepts"`
}

// yamlUnmarshaler is satisfied by gopkg.in/yaml.v3's Unmarshal; declared as
// a function value so this package does not need to import yaml.v3 directly
// at the call site in Load, keeping the dependency import local to one file.
type yamlUnmarshaler func(data []byte, v any) error

// Load populates the graph from raw YAML bytes using the supplied unmarshal
// function (the caller, typically internal/cli, passes yaml.Unmarshal).
func (g *Graph) Load(data []byte, unmarshal yamlUnmarshaler) error {
	var d doc
	if err := unmarshal(data, &d); err != nil {
		return fmt.Errorf("semantic: parse ontology graph: %w", err)
	}
	g.AddPrefixes(compactiri.PrefixMap(d.Prefixes))
	for concept, rec := range d.Concepts {
		for _, parent := range rec.Broader {
			if err := g.AddBroader(concept, parent); err != nil {
				return fmt.Errorf("semantic: concept %q: %w", concept, err)
			}
		}
	}
	return nil
}

// ensureClosure computes the transitive reflexive closure of `broader` on
// first use and caches it; AddBroader/Load invalidate the cache.
func (g *Graph) ensureClosure() {
	if g.closure != nil {
		return
	}
	closure := make(map[string]map[string]bool, len(g.broader))
	var reach func(concept string) map[string]bool
	visiting := map[string]bool{}
	reach = func(concept string) map[string]bool {
		if c, ok := closure[concept]; ok {
			return c
		}
		set := map[string]bool{concept: true}
		if visiting[concept] {
			// Cycle in the concept graph: treat as mutually equivalent
			// rather than looping forever.
			return set
		}
		visiting[concept] = true
		for _, parent := range g.broader[concept] {
			for p := range reach(parent) {
				set[p] = true
			}
		}
		visiting[concept] = false
		closure[concept] = set
		return set
	}
	for concept := range g.broader {
		closure[concept] = reach(concept)
	}
	g.closure = closure
}

// IsSubconcept reports Yes if broader is reachable from narrower via zero or
// more `broader` edges, No if both concepts are known but unrelated, and
// Unknown if either concept is absent from the graph.
func (g *Graph) IsSubconcept(narrower, broader string) Verdict {
	g.ensureClosure()
	n, err := g.Normalize(narrower)
	if err != nil {
		return Unknown
	}
	b, err := g.Normalize(broader)
	if err != nil {
		return Unknown
	}
	if n == b {
		return Yes
	}
	set, ok := g.closure[n]
	if !ok {
		return Unknown
	}
	if set[b] {
		return Yes
	}
	if _, known := g.closure[b]; !known {
		return Unknown
	}
	return No
}

// Equivalent reports Yes iff each concept is a subconcept of the other.
func (g *Graph) Equivalent(a, b string) Verdict {
	return g.IsSubconcept(a, b).And(g.IsSubconcept(b, a))
}

var _ Resolver = (*Graph)(nil)
var _ Resolver = NullResolver{}

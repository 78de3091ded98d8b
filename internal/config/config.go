// Package config mirrors the original implementation's jsonsubschema/config.py
// module-level mutable namespace (see _examples/original_source — the
// Python original literally reassigns attributes on sys.modules[__name__]):
// a handful of global toggles behind setter functions rather than an
// options struct, since that is this codebase's own idiom for small global
// state, not something introduced by the teacher.
package config

import "gopkg.in/yaml.v3"

// Draft is fixed at Draft-04 per the original's hardcoded
// VALIDATOR = jsonschema.Draft4Validator; there is no setter because the
// dialect is not configurable (spec §6 "Schema dialect (input)").
const Draft = "draft-04"

var (
	debug             bool
	warnUninhabited   bool
	semanticReasoning = true
	ontologySources   []OntologySource
)

// OntologySource is one configured ontology-source YAML document (spec
// SPEC_FULL §2.3). This is not the shape semantic.Graph.Load reads (a
// prefixes table plus a concepts map of broader lists).
type OntologySource struct {
	Prefix    string `yaml:"prefix"`
	Namespace string `yaml:"namespace"`
	Edges     []struct {
		Narrower string `yaml:"narrower"`
		Broader  string `yaml:"broader"`
	} `yaml:"edges"`
}

// SetDebug records the debug flag reported by Debug, mirroring
// config.set_debug. It does not itself route internal/obslog tracing; that
// is switched by jsonsubschema.SetDebug.
func SetDebug(v bool) { debug = v }

// Debug reports the current debug flag.
func Debug() bool { return debug }

// SetWarnUninhabited records the flag reported by WarnUninhabited, mirroring
// the original's WARN_UNINHABITED_TYPES flag. No code in this module reads
// it, so setting it emits no warning about uninhabited (Bottom) atoms.
func SetWarnUninhabited(v bool) { warnUninhabited = v }

// WarnUninhabited reports the current flag.
func WarnUninhabited() bool { return warnUninhabited }

// SetSemanticReasoning toggles whether stype annotations are consulted at
// all; disabling it is equivalent to forcing the null resolver everywhere,
// mirroring the original's ENABLE_SEMANTIC_REASONING.
func SetSemanticReasoning(v bool) { semanticReasoning = v }

// SemanticReasoningEnabled reports the current flag.
func SemanticReasoningEnabled() bool { return semanticReasoning }

// AddOntologySource registers a parsed ontology source, appending to the
// list returned by OntologySources. No resolver in this module is built
// from that list; semantic.Graph is loaded through its own Load method.
func AddOntologySource(s OntologySource) { ontologySources = append(ontologySources, s) }

// OntologySources returns the currently registered sources.
func OntologySources() []OntologySource {
	out := make([]OntologySource, len(ontologySources))
	copy(out, ontologySources)
	return out
}

// LoadOntologySourceYAML parses one ontology-source YAML document and
// registers it via AddOntologySource.
func LoadOntologySourceYAML(data []byte) error {
	var s OntologySource
	if err := yaml.Unmarshal(data, &s); err != nil {
		return err
	}
	AddOntologySource(s)
	return nil
}

// Reset clears all global state back to defaults; used by tests that must
// not leak configuration between cases, since the package-level globals
// above are shared process-wide state by design (mirroring the original).
func Reset() {
	debug = false
	warnUninhabited = false
	semanticReasoning = true
	ontologySources = nil
}

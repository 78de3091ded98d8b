// Package compactiri parses and normalizes the `stype` annotation's compact
// prefixed-name notation (`prefix:localName`) into full IRIs, per spec §6.
package compactiri

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Token is a normalized semantic-type reference: either a full IRI or a
// `prefix:local` pair awaiting expansion against a PrefixMap.
type Token struct {
	// Prefix is empty when the original value was already a full IRI.
	Prefix string
	Local  string
	// Raw is the original, unexpanded value.
	Raw string
}

func (t Token) String() string {
	return t.Raw
}

// IsCompact reports whether the token used prefix:local notation rather than
// a bare IRI.
func (t Token) IsCompact() bool {
	return t.Prefix != ""
}

var tokenRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_.\-]*:[A-Za-z0-9_][A-Za-z0-9_.\-]*$`)

// Parse splits s into prefix/local if it matches the compact `prefix:local`
// grammar. Full IRIs (http://, https://, urn:) are returned unsplit.
func Parse(s string) (Token, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Token{}, errors.New("compactiri: empty")
	}
	if strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://") || strings.HasPrefix(s, "urn:") {
		return Token{Raw: s}, nil
	}
	if !tokenRe.MatchString(s) {
		return Token{}, fmt.Errorf("compactiri: invalid stype token %q", s)
	}
	i := strings.IndexByte(s, ':')
	return Token{Prefix: s[:i], Local: s[i+1:], Raw: s}, nil
}

// PrefixMap maps a short prefix (e.g. "quantitykind") to its IRI namespace.
type PrefixMap map[string]string

// DefaultPrefixes mirrors the prefixes the original implementation binds by
// default (see _examples/original_source/jsonsubschema/semantic_type.py).
func DefaultPrefixes() PrefixMap {
	return PrefixMap{
		"quantitykind": "http://qudt.org/vocab/quantitykind/",
		"qudt":         "http://qudt.org/schema/qudt/",
		"skos":         "http://www.w3.org/2004/02/skos/core#",
		"foaf":         "http://xmlns.com/foaf/0.1/",
		"ex":           "http://example.org/",
	}
}

// Expand normalizes a raw stype value to a full IRI using pm. Unknown
// prefixes are returned unexpanded (matching normalize_iri's fallback
// behavior in the original source).
func Expand(raw string, pm PrefixMap) (string, error) {
	tok, err := Parse(raw)
	if err != nil {
		return "", err
	}
	if !tok.IsCompact() {
		return tok.Raw, nil
	}
	if pm == nil {
		return tok.Raw, nil
	}
	if ns, ok := pm[tok.Prefix]; ok {
		return ns + tok.Local, nil
	}
	return tok.Raw, nil
}

// Merge returns a copy of pm with additional prefixes overlaid.
func Merge(pm PrefixMap, additional PrefixMap) PrefixMap {
	out := make(PrefixMap, len(pm)+len(additional))
	for k, v := range pm {
		out[k] = v
	}
	for k, v := range additional {
		out[k] = v
	}
	return out
}

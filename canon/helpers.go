package canon

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"math/big"
	"sort"
	"strconv"
	"strings"

	"github.com/Irfan-Ullah-cs/jsonsubschema-with-semantic-check/canonicaljson"
)

func pathOrRoot(path string) string {
	if path == "" {
		return "<root>"
	}
	return path
}

func ptrJoin(prefix, next string) string {
	if prefix == "" {
		return next
	}
	if next == "" {
		return prefix
	}
	if strings.HasPrefix(next, "[") || strings.HasPrefix(next, ".") {
		return prefix + next
	}
	return prefix + "." + next
}

func asMap(v any) (map[string]any, bool) {
	m, ok := v.(map[string]any)
	return m, ok
}

func asSlice(v any) ([]any, bool) {
	s, ok := v.([]any)
	return s, ok
}

func sortedKeys[V any](m map[string]V) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// canonicalString returns the RFC 8785 canonical JSON encoding of v, used
// for enum/const value equality and pointwise-containment checks.
func canonicalString(v any) (string, error) {
	b, err := canonicaljson.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// EnumContains reports whether value appears (by RFC 8785 canonical
// equality) in set; exported for reuse by the kernel package's pointwise
// enum-containment checks (spec §4.D rule 4).
func EnumContains(set []any, value any) (bool, error) {
	return enumContains(set, value)
}

// enumContains reports whether value appears (by canonical equality) in set.
func enumContains(set []any, value any) (bool, error) {
	vc, err := canonicalString(value)
	if err != nil {
		return false, err
	}
	for _, s := range set {
		sc, err := canonicalString(s)
		if err != nil {
			return false, err
		}
		if sc == vc {
			return true, nil
		}
	}
	return false, nil
}

func asBool(v any) bool {
	b, _ := v.(bool)
	return b
}

// toFloat64 converts a JSON numeric value (float64 or json.Number, the two
// shapes encoding/json produces) to float64.
func toFloat64(v any) (float64, error) {
	switch x := v.(type) {
	case float64:
		return x, nil
	case json.Number:
		return x.Float64()
	case int:
		return float64(x), nil
	default:
		return 0, fmt.Errorf("must be a number, got %T", v)
	}
}

func toInt(v any) (int, error) {
	f, err := toFloat64(v)
	if err != nil {
		return 0, err
	}
	return int(f), nil
}

// toRat converts a JSON numeric value to an exact rational, preferring
// json.Number's decimal string form (available when the caller decoded with
// UseNumber) to avoid float64 rounding on multipleOf constants like 0.01.
func toRat(v any) (*big.Rat, error) {
	switch x := v.(type) {
	case json.Number:
		r, ok := new(big.Rat).SetString(x.String())
		if !ok {
			return nil, fmt.Errorf("invalid numeric literal %q", x.String())
		}
		return r, nil
	case float64:
		return new(big.Rat).SetFloat64(x), nil
	default:
		return nil, fmt.Errorf("must be a number, got %T", v)
	}
}

// isIntegralNumber reports whether a JSON numeric value has no fractional
// part, used to decide whether an enum/const numeric value also qualifies
// as an Integer atom (spec §4.D rule 4).
func isIntegralNumber(v any) (bool, error) {
	f, err := toFloat64(v)
	if err != nil {
		return false, err
	}
	return f == math.Trunc(f), nil
}

// resolveJSONPointer walks doc per RFC 6901 using the fragment following '#'.
func resolveJSONPointer(doc any, fragment string) (any, error) {
	if fragment == "" {
		return doc, nil
	}
	if !strings.HasPrefix(fragment, "/") {
		return nil, errors.New("unsupported fragment (must be JSON Pointer)")
	}
	toks := strings.Split(fragment, "/")[1:]
	cur := doc
	for _, tok := range toks {
		tok = strings.ReplaceAll(tok, "~1", "/")
		tok = strings.ReplaceAll(tok, "~0", "~")
		switch x := cur.(type) {
		case map[string]any:
			nxt, ok := x[tok]
			if !ok {
				return nil, fmt.Errorf("pointer not found: %q", tok)
			}
			cur = nxt
		case []any:
			idx, err := strconv.Atoi(tok)
			if err != nil || idx < 0 || idx >= len(x) {
				return nil, fmt.Errorf("array index out of range: %q", tok)
			}
			cur = x[idx]
		default:
			return nil, errors.New("pointer traversed non-container")
		}
	}
	return cur, nil
}

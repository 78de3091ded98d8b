// Package metaschema validates that a raw input document is itself a
// structurally well-formed JSON Schema Draft-04 document — meta-schema
// conformance, never instance validation (an explicit Non-goal, spec.md
// §1). This mirrors the original implementation's hardcoded
// `VALIDATOR = jsonschema.Draft4Validator` (see
// _examples/original_source/jsonsubschema/config.py), using
// github.com/santhosh-tekuri/jsonschema/v5 (declared in
// _examples/lacquerai-lacquer/go.mod) in place of the Python original's
// jsonschema package.
package metaschema

import (
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

var (
	once     sync.Once
	compiled *jsonschema.Schema
	compErr  error
)

func draft4() (*jsonschema.Schema, error) {
	once.Do(func() {
		c := jsonschema.NewCompiler()
		c.Draft = jsonschema.Draft4
		compiled, compErr = c.Compile("http://json-schema.org/draft-04/schema#")
	})
	return compiled, compErr
}

// ValidateDocument reports whether doc (already decoded JSON, e.g.
// map[string]any/bool) conforms to the Draft-04 meta-schema. A non-nil
// error is the InvalidSchema-gate diagnostic the façade surfaces at its
// boundary, before any canonicalization is attempted.
func ValidateDocument(doc any) error {
	schema, err := draft4()
	if err != nil {
		return fmt.Errorf("metaschema: loading draft-04 meta-schema: %w", err)
	}
	if err := schema.Validate(doc); err != nil {
		return fmt.Errorf("metaschema: document is not a well-formed draft-04 schema: %w", err)
	}
	return nil
}

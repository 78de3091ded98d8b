package metaschema

import "testing"

func TestValidateDocument_WellFormedSchema(t *testing.T) {
	doc := map[string]any{
		"type":    "object",
		"minimum": 0,
	}
	if err := ValidateDocument(doc); err != nil {
		t.Fatalf("expected a well-formed draft-04 schema to validate, got %v", err)
	}
}

func TestValidateDocument_MalformedTypeRejected(t *testing.T) {
	doc := map[string]any{
		"type": 12345,
	}
	if err := ValidateDocument(doc); err == nil {
		t.Fatalf("expected a non-string/array type keyword to be rejected")
	}
}

package canon

import "fmt"

// SchemaError indicates structurally malformed input (spec §7 InvalidSchema).
type SchemaError struct {
	Path    string
	Message string
}

func (e *SchemaError) Error() string {
	if e == nil {
		return "schema error"
	}
	return fmt.Sprintf("schema error at %s: %s", pathOrRoot(e.Path), e.Message)
}

// RefError indicates a $ref that cannot be resolved (spec §7 UnresolvedReference).
type RefError struct {
	Path string
	Ref  string
	Err  error
}

func (e *RefError) Error() string {
	if e == nil {
		return "ref error"
	}
	return fmt.Sprintf("%s.$ref %q: %v", pathOrRoot(e.Path), e.Ref, e.Err)
}

func (e *RefError) Unwrap() error { return e.Err }

// UnsupportedError indicates a construct outside the supported dialect
// (spec §7 Unsupported), e.g. a regex the engine cannot compile.
type UnsupportedError struct {
	Path   string
	Reason string
}

func (e *UnsupportedError) Error() string {
	if e == nil {
		return "unsupported construct"
	}
	return fmt.Sprintf("unsupported construct at %s: %s", pathOrRoot(e.Path), e.Reason)
}

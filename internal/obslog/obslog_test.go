package obslog

import (
	"bytes"
	"strings"
	"testing"
)

func TestSetDebug_NilDisablesOutput(t *testing.T) {
	var buf bytes.Buffer
	SetDebug(&buf)
	Canonicalize("/items", 3)
	if buf.Len() == 0 {
		t.Fatalf("expected a log line once debug tracing is enabled")
	}
	SetDebug(nil)
	buf.Reset()
	Canonicalize("/items", 3)
	if buf.Len() != 0 {
		t.Fatalf("expected no output after disabling debug tracing, got %q", buf.String())
	}
}

func TestCanonicalize_LogsPathAndAtomCount(t *testing.T) {
	var buf bytes.Buffer
	SetDebug(&buf)
	defer SetDebug(nil)
	Canonicalize("/properties/x", 2)
	out := buf.String()
	if !strings.Contains(out, "/properties/x") || !strings.Contains(out, "canonicalize") {
		t.Fatalf("expected log line to mention path and event, got %q", out)
	}
}

func TestResolverUnknown_LogsWarning(t *testing.T) {
	var buf bytes.Buffer
	SetDebug(&buf)
	defer SetDebug(nil)
	ResolverUnknown("ex:A", "ex:B")
	out := buf.String()
	if !strings.Contains(out, "ex:A") || !strings.Contains(out, "ex:B") {
		t.Fatalf("expected log line to mention both concepts, got %q", out)
	}
}

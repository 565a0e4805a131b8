package diag_test

import (
	"bytes"
	"testing"

	"github.com/Stateford/aion-sub002/diag"
	"github.com/Stateford/aion-sub002/source"
)

func TestSinkEmitAndQuery(t *testing.T) {
	s := diag.NewSink(nil)
	s.Emit(diag.Diagnostic{Code: diag.CodeDuplicateModule, Severity: diag.Warning, Message: "dup"})
	s.Emit(diag.Diagnostic{Code: diag.CodeMissingTop, Severity: diag.Error, Message: "missing top"})

	if s.Count() != 2 {
		t.Fatalf("count = %d, want 2", s.Count())
	}
	if !s.HasErrors() {
		t.Fatal("expected HasErrors true")
	}
	all := s.All()
	if len(all) != 2 || all[1].Code != diag.CodeMissingTop {
		t.Fatalf("unexpected snapshot: %+v", all)
	}
}

func TestRenderJSONRoundTrips(t *testing.T) {
	items := []diag.Diagnostic{
		{Code: diag.CodeUnknownType, Severity: diag.Info, Message: "hi", Primary: source.Span{File: 1, Start: 2, End: 3}},
	}
	var buf bytes.Buffer
	if err := diag.RenderJSON(&buf, items); err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(buf.Bytes(), []byte(diag.CodeUnknownType)) {
		t.Fatalf("rendered JSON missing code: %s", buf.String())
	}
}

func TestRenderTerminalHandlesEmpty(t *testing.T) {
	var buf bytes.Buffer
	diag.RenderTerminal(&buf, nil, nil)
	if buf.Len() == 0 {
		t.Fatal("expected some output for empty diagnostics")
	}
}

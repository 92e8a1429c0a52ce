package ide

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"complexity/internal/analyzer"
)

func writeFrame(buf *bytes.Buffer, msg map[string]interface{}) {
	content, _ := json.Marshal(msg)
	fmt.Fprintf(buf, "Content-Length: %d\r\n\r\n", len(content))
	buf.Write(content)
}

func TestServerInitializeRespondsWithCapabilities(t *testing.T) {
	in := new(bytes.Buffer)
	out := new(bytes.Buffer)

	writeFrame(in, map[string]interface{}{
		"jsonrpc": "2.0", "id": 1, "method": "initialize", "params": map[string]interface{}{},
	})
	writeFrame(in, map[string]interface{}{"jsonrpc": "2.0", "method": "exit"})

	srv := NewServer(in, out, analyzer.NewSession(analyzer.DefaultOptions()))
	if err := srv.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	if !strings.Contains(out.String(), "hoverProvider") {
		t.Errorf("initialize response = %q, want it to advertise hoverProvider", out.String())
	}
}

func TestParseDocumentReturnsStatementsForValidSource(t *testing.T) {
	stmts, errs := parseDocument("fn add(a, b) {\n  return a + b\n}\n")
	if len(errs) != 0 {
		t.Fatalf("parseDocument() errors = %v, want none", errs)
	}
	if len(stmts) != 1 {
		t.Fatalf("parseDocument() returned %d statements, want 1", len(stmts))
	}
}

func TestMethodAtLinePicksClosestPrecedingMethod(t *testing.T) {
	doc := analyzer.DocumentResult{
		Methods: []analyzer.MethodResult{
			{MethodName: "a", FileLocation: analyzer.Location{Line: 1}},
			{MethodName: "b", FileLocation: analyzer.Location{Line: 10}},
		},
	}
	got := methodAtLine(doc, 12)
	if got == nil || got.MethodName != "b" {
		t.Errorf("methodAtLine(_, 12) = %+v, want method b", got)
	}
}

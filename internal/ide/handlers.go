package ide

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"complexity/internal/analyzer"
	"complexity/internal/lexer"
	"complexity/internal/parser"
)

type TextDocumentIdentifier struct {
	URI string `json:"uri"`
}

type Position struct {
	Line      int `json:"line"`
	Character int `json:"character"`
}

type Range struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

type DidOpenParams struct {
	TextDocument TextDocumentItem `json:"textDocument"`
}

type TextDocumentItem struct {
	URI        string `json:"uri"`
	LanguageID string `json:"languageId"`
	Version    int    `json:"version"`
	Text       string `json:"text"`
}

type DidChangeParams struct {
	TextDocument   VersionedTextDocumentIdentifier  `json:"textDocument"`
	ContentChanges []TextDocumentContentChangeEvent `json:"contentChanges"`
}

type VersionedTextDocumentIdentifier struct {
	URI     string `json:"uri"`
	Version int    `json:"version"`
}

type TextDocumentContentChangeEvent struct {
	Text string `json:"text"`
}

type DidCloseParams struct {
	TextDocument TextDocumentIdentifier `json:"textDocument"`
}

func (s *Server) handleDidOpen(ctx context.Context, msg *Message) error {
	var params DidOpenParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return err
	}

	doc := &Document{URI: params.TextDocument.URI, Content: params.TextDocument.Text, Version: params.TextDocument.Version}
	s.mu.Lock()
	s.docs[doc.URI] = doc
	s.mu.Unlock()

	return s.analyzeAndPublish(ctx, doc)
}

func (s *Server) handleDidChange(ctx context.Context, msg *Message) error {
	var params DidChangeParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return err
	}

	s.mu.Lock()
	doc, ok := s.docs[params.TextDocument.URI]
	if ok && len(params.ContentChanges) > 0 {
		doc.Content = params.ContentChanges[len(params.ContentChanges)-1].Text
		doc.Version = params.TextDocument.Version
	}
	s.mu.Unlock()

	if !ok {
		return nil
	}
	return s.analyzeAndPublish(ctx, doc)
}

func (s *Server) handleDidClose(msg *Message) error {
	var params DidCloseParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return err
	}

	s.mu.Lock()
	delete(s.docs, params.TextDocument.URI)
	s.mu.Unlock()

	return s.sendNotification("textDocument/publishDiagnostics", map[string]interface{}{
		"uri":         params.TextDocument.URI,
		"diagnostics": []interface{}{},
	})
}

// Diagnostic is an LSP diagnostic; an analyzer diagnostic surfaces as a
// warning and a review-flagged method result as information, rather than
// an error, since each is a hedge on the bound, not a parse failure.
type Diagnostic struct {
	Range    Range  `json:"range"`
	Severity int    `json:"severity"`
	Message  string `json:"message"`
	Source   string `json:"source"`
}

const (
	severityError   = 1
	severityWarning = 2
	severityInfo    = 3
)

// analyzeAndPublish re-parses a document, runs it through the analyzer,
// caches the DocumentResult for hover/documentSymbol, and publishes one
// diagnostic per parse error or, when the document parsed cleanly, one per
// analyzer diagnostic plus one per method flagged for review.
func (s *Server) analyzeAndPublish(ctx context.Context, doc *Document) error {
	program, parseErrs := parseDocument(doc.Content)

	var diagnostics []Diagnostic
	for _, err := range parseErrs {
		diagnostics = append(diagnostics, Diagnostic{
			Range:    zeroRange(),
			Severity: severityError,
			Message:  err.Error(),
			Source:   "complexity",
		})
	}

	if len(parseErrs) == 0 {
		result := s.session.AnalyzeDocument(ctx, doc.URI, program, nil, nil)
		s.mu.Lock()
		doc.LastAnalysis = result
		s.mu.Unlock()

		for _, d := range result.Diagnostics {
			diagnostics = append(diagnostics, Diagnostic{
				Range:    zeroRange(),
				Severity: severityWarning,
				Message:  d.Message,
				Source:   "complexity",
			})
		}
		for _, m := range result.Methods {
			if !m.RequiresReview {
				continue
			}
			diagnostics = append(diagnostics, Diagnostic{
				Range:    lineRange(m.FileLocation.Line),
				Severity: severityInfo,
				Message:  fmt.Sprintf("%s: %s (%s)", m.MethodName, m.TimeComplexity, m.ReviewReason),
				Source:   "complexity",
			})
		}
	}

	if diagnostics == nil {
		diagnostics = []Diagnostic{}
	}
	return s.sendNotification("textDocument/publishDiagnostics", map[string]interface{}{
		"uri":         doc.URI,
		"diagnostics": diagnostics,
	})
}

// parseDocument runs the scanner and parser over source, the same two
// steps every front end in this tree takes before touching an AST.
func parseDocument(source string) ([]parser.Stmt, []error) {
	scanner := lexer.NewScanner(source)
	tokens := scanner.ScanTokens()
	p := parser.NewParser(tokens)
	stmts := p.Parse()
	return stmts, p.Errors
}

func zeroRange() Range {
	return Range{Start: Position{Line: 0, Character: 0}, End: Position{Line: 0, Character: 1}}
}

func lineRange(line int) Range {
	if line > 0 {
		line--
	}
	return Range{Start: Position{Line: line, Character: 0}, End: Position{Line: line, Character: 200}}
}

// HoverParams/Hover mirror the minimal shape a hover response needs.
type HoverParams struct {
	TextDocument TextDocumentIdentifier `json:"textDocument"`
	Position     Position               `json:"position"`
}

type Hover struct {
	Contents MarkupContent `json:"contents"`
}

type MarkupContent struct {
	Kind  string `json:"kind"`
	Value string `json:"value"`
}

// handleHover reports the analyzed complexity of whichever method
// encloses the cursor's line, rather than a dictionary-style keyword
// lookup: the thing worth hovering over in this tool is a bound, not a
// grammar production.
func (s *Server) handleHover(msg *Message) error {
	var params HoverParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return s.sendError(msg.ID, -32602, "Invalid params")
	}

	s.mu.Lock()
	doc, ok := s.docs[params.TextDocument.URI]
	s.mu.Unlock()
	if !ok {
		return s.sendResponse(msg.ID, nil)
	}

	method := methodAtLine(doc.LastAnalysis, params.Position.Line+1)
	if method == nil {
		return s.sendResponse(msg.ID, nil)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "**%s** — `%s`\n\n", method.MethodName, method.TimeComplexity)
	fmt.Fprintf(&b, "confidence: %.0f%%\n\n%s", method.Confidence*100, method.Tooltip)
	if method.SpaceComplexity != "" {
		fmt.Fprintf(&b, "\n\nspace: `%s`", method.SpaceComplexity)
	}

	return s.sendResponse(msg.ID, Hover{Contents: MarkupContent{Kind: "markdown", Value: b.String()}})
}

func methodAtLine(doc analyzer.DocumentResult, line int) *analyzer.MethodResult {
	var best *analyzer.MethodResult
	for i := range doc.Methods {
		m := &doc.Methods[i]
		if m.FileLocation.Line <= line && (best == nil || m.FileLocation.Line > best.FileLocation.Line) {
			best = m
		}
	}
	return best
}

// DocumentSymbolParams/DocumentSymbol mirror the LSP shape, with Detail
// carrying the analyzed bound so an editor's outline view doubles as a
// complexity summary.
type DocumentSymbolParams struct {
	TextDocument TextDocumentIdentifier `json:"textDocument"`
}

type DocumentSymbol struct {
	Name           string `json:"name"`
	Detail         string `json:"detail"`
	Kind           int    `json:"kind"`
	Range          Range  `json:"range"`
	SelectionRange Range  `json:"selectionRange"`
}

const symbolKindFunction = 12

func (s *Server) handleDocumentSymbol(msg *Message) error {
	var params DocumentSymbolParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return s.sendError(msg.ID, -32602, "Invalid params")
	}

	s.mu.Lock()
	doc, ok := s.docs[params.TextDocument.URI]
	s.mu.Unlock()
	if !ok {
		return s.sendResponse(msg.ID, []DocumentSymbol{})
	}

	symbols := make([]DocumentSymbol, 0, len(doc.LastAnalysis.Methods))
	for _, m := range doc.LastAnalysis.Methods {
		r := lineRange(m.FileLocation.Line)
		symbols = append(symbols, DocumentSymbol{
			Name:           m.MethodName,
			Detail:         m.TimeComplexity,
			Kind:           symbolKindFunction,
			Range:          r,
			SelectionRange: r,
		})
	}
	return s.sendResponse(msg.ID, symbols)
}

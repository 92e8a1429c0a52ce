// Package ide exposes the complexity analyzer over JSON-RPC using the
// same framing an editor's language server speaks: Content-Length
// headers over stdio, one message per request/notification. The
// transport and dispatch loop below is carried over unchanged from the
// project's existing language tooling; only what a message causes to
// happen — diagnostics, hover, document symbols — now surfaces
// asymptotic bounds instead of language-server completions.
package ide

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"

	"complexity/internal/analyzer"
)

const protocolVersion = "2.0"

// Server is the JSON-RPC server wiring an analyzer.Session to stdio.
type Server struct {
	in      *bufio.Reader
	out     io.Writer
	mu      sync.Mutex
	docs    map[string]*Document
	running bool
	session *analyzer.Session
}

// Document is one open source file, plus the last DocumentResult computed
// for it so hover/documentSymbol requests don't re-run analysis.
type Document struct {
	URI       string
	Content   string
	Version   int
	LastAnalysis analyzer.DocumentResult
}

// NewServer builds a Server that analyzes documents with session.
func NewServer(in io.Reader, out io.Writer, session *analyzer.Session) *Server {
	return &Server{
		in:      bufio.NewReader(in),
		out:     out,
		docs:    make(map[string]*Document),
		session: session,
	}
}

// Start runs the server's read-dispatch loop until ctx is cancelled or
// the client sends "exit".
func (s *Server) Start(ctx context.Context) error {
	s.running = true

	for s.running {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
			if err := s.handleMessage(ctx); err != nil {
				if err == io.EOF {
					return nil
				}
				fmt.Fprintf(os.Stderr, "ide: %v\n", err)
			}
		}
	}
	return nil
}

func (s *Server) handleMessage(ctx context.Context) error {
	contentLength := 0
	for {
		line, err := s.in.ReadString('\n')
		if err != nil {
			return err
		}
		line = strings.TrimSpace(line)
		if line == "" {
			break
		}
		if strings.HasPrefix(line, "Content-Length:") {
			lengthStr := strings.TrimSpace(strings.TrimPrefix(line, "Content-Length:"))
			contentLength, err = strconv.Atoi(lengthStr)
			if err != nil {
				return fmt.Errorf("invalid Content-Length: %v", err)
			}
		}
	}

	if contentLength == 0 {
		return nil
	}

	content := make([]byte, contentLength)
	if _, err := io.ReadFull(s.in, content); err != nil {
		return err
	}

	var msg Message
	if err := json.Unmarshal(content, &msg); err != nil {
		return fmt.Errorf("failed to parse message: %v", err)
	}

	return s.dispatch(ctx, &msg)
}

// Message is one JSON-RPC request, response, or notification.
type Message struct {
	JSONRPC string           `json:"jsonrpc"`
	ID      *json.RawMessage `json:"id,omitempty"`
	Method  string           `json:"method,omitempty"`
	Params  json.RawMessage  `json:"params,omitempty"`
	Result  json.RawMessage  `json:"result,omitempty"`
	Error   *ResponseError   `json:"error,omitempty"`
}

// ResponseError is a JSON-RPC error object.
type ResponseError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (s *Server) dispatch(ctx context.Context, msg *Message) error {
	switch msg.Method {
	case "initialize":
		return s.handleInitialize(msg)
	case "initialized":
		return nil
	case "shutdown":
		return s.sendResponse(msg.ID, nil)
	case "exit":
		s.running = false
		return nil
	case "textDocument/didOpen":
		return s.handleDidOpen(ctx, msg)
	case "textDocument/didChange":
		return s.handleDidChange(ctx, msg)
	case "textDocument/didClose":
		return s.handleDidClose(msg)
	case "textDocument/hover":
		return s.handleHover(msg)
	case "textDocument/documentSymbol":
		return s.handleDocumentSymbol(msg)
	default:
		if msg.ID != nil {
			return s.sendError(msg.ID, -32601, "Method not found: "+msg.Method)
		}
		return nil
	}
}

func (s *Server) sendResponse(id *json.RawMessage, result interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writeMessage(map[string]interface{}{
		"jsonrpc": protocolVersion,
		"id":      id,
		"result":  result,
	})
}

func (s *Server) sendError(id *json.RawMessage, code int, message string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writeMessage(map[string]interface{}{
		"jsonrpc": protocolVersion,
		"id":      id,
		"error": map[string]interface{}{
			"code":    code,
			"message": message,
		},
	})
}

func (s *Server) sendNotification(method string, params interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writeMessage(map[string]interface{}{
		"jsonrpc": protocolVersion,
		"method":  method,
		"params":  params,
	})
}

func (s *Server) writeMessage(msg interface{}) error {
	content, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	header := fmt.Sprintf("Content-Length: %d\r\n\r\n", len(content))
	if _, err := s.out.Write([]byte(header)); err != nil {
		return err
	}
	_, err = s.out.Write(content)
	return err
}

// InitializeResult advertises the subset of capabilities this server
// actually implements: hover and document symbols, plus full-document
// sync so diagnostics can be recomputed after every change.
type InitializeResult struct {
	Capabilities ServerCapabilities `json:"capabilities"`
}

type ServerCapabilities struct {
	TextDocumentSync       int  `json:"textDocumentSync"`
	HoverProvider          bool `json:"hoverProvider"`
	DocumentSymbolProvider bool `json:"documentSymbolProvider"`
}

func (s *Server) handleInitialize(msg *Message) error {
	return s.sendResponse(msg.ID, InitializeResult{
		Capabilities: ServerCapabilities{
			TextDocumentSync:       1,
			HoverProvider:          true,
			DocumentSymbolProvider: true,
		},
	})
}

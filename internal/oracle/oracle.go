// Package oracle is the client for the optional external symbolic-math
// subprocess (spec §6 "Optional symbolic-math subprocess"): a JSON
// request over stdin, a JSON response over stdout, a hard 30s timeout,
// and a table-driven fallback on any failure so the core never blocks on
// it indefinitely.
package oracle

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"time"
)

// Request is the wire shape sent to the subprocess.
type Request struct {
	Type     string `json:"type"`
	G        string `json:"g"`
	P        string `json:"p"`
	Variable string `json:"variable"`
}

// Response is the wire shape read back from the subprocess.
type Response struct {
	Success                  bool   `json:"success"`
	IntegralClosedForm       string `json:"integral_closed_form"`
	IntegralAsymptotic       string `json:"integral_asymptotic"`
	FullSolutionAsymptotic   string `json:"full_solution_asymptotic"`
	SpecialFunction          string `json:"special_function"`
	Method                   string `json:"method"`
	Error                    string `json:"error"`
}

// Timeout is the hard per-call budget (spec §6: "Timeout 30 s; on any
// failure, the core proceeds with its table fallback").
const Timeout = 30 * time.Second

// Client evaluates a Request against some backing transport.
type Client interface {
	Evaluate(ctx context.Context, req Request) (Response, error)
}

// ProcessClient launches a subprocess once per call and speaks the
// stdin/stdout JSON protocol, mirroring the teacher's own os/exec usage
// in internal/ossec and internal/memory for spawning a one-shot external
// helper and reading its output.
type ProcessClient struct {
	Command string
	Args    []string
}

// NewProcessClient builds a subprocess oracle client for the given
// executable.
func NewProcessClient(command string, args ...string) *ProcessClient {
	return &ProcessClient{Command: command, Args: args}
}

// Evaluate runs the subprocess once, writing the JSON request to its
// stdin and parsing its stdout as a Response. A context past the 30s
// Timeout, a non-zero exit, or malformed JSON output all return an
// error — callers are expected to fall back to the stdlib/integral table
// on any of them (spec §6).
func (p *ProcessClient) Evaluate(ctx context.Context, req Request) (Response, error) {
	ctx, cancel := context.WithTimeout(ctx, Timeout)
	defer cancel()

	payload, err := json.Marshal(req)
	if err != nil {
		return Response{}, fmt.Errorf("oracle: marshal request: %w", err)
	}

	cmd := exec.CommandContext(ctx, p.Command, p.Args...)
	cmd.Stdin = bytes.NewReader(payload)
	var stdout bytes.Buffer
	cmd.Stdout = &stdout

	if err := cmd.Run(); err != nil {
		return Response{}, fmt.Errorf("oracle: subprocess failed: %w", err)
	}

	var resp Response
	if err := json.Unmarshal(stdout.Bytes(), &resp); err != nil {
		return Response{}, fmt.Errorf("oracle: malformed response: %w", err)
	}
	if !resp.Success {
		return resp, fmt.Errorf("oracle: %s", resp.Error)
	}
	return resp, nil
}

// EvaluateWithFallback runs client.Evaluate and, on any error (timeout,
// crash, malformed output, or an explicit failure response), returns
// ok=false so the caller can fall back to its own table-driven answer
// rather than propagating the failure.
func EvaluateWithFallback(ctx context.Context, client Client, req Request) (Response, bool) {
	if client == nil {
		return Response{}, false
	}
	resp, err := client.Evaluate(ctx, req)
	if err != nil {
		return Response{}, false
	}
	return resp, true
}

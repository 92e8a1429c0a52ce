package oracle

import (
	"context"
	"errors"
	"testing"
)

type fakeClient struct {
	resp Response
	err  error
}

func (f fakeClient) Evaluate(ctx context.Context, req Request) (Response, error) {
	return f.resp, f.err
}

func TestEvaluateWithFallbackSucceeds(t *testing.T) {
	client := fakeClient{resp: Response{Success: true, IntegralAsymptotic: "n log n"}}
	resp, ok := EvaluateWithFallback(context.Background(), client, Request{Type: "integral"})
	if !ok {
		t.Fatal("expected ok = true")
	}
	if resp.IntegralAsymptotic != "n log n" {
		t.Errorf("IntegralAsymptotic = %v, want n log n", resp.IntegralAsymptotic)
	}
}

func TestEvaluateWithFallbackOnError(t *testing.T) {
	client := fakeClient{err: errors.New("boom")}
	_, ok := EvaluateWithFallback(context.Background(), client, Request{Type: "integral"})
	if ok {
		t.Fatal("expected ok = false on client error")
	}
}

func TestEvaluateWithFallbackNilClient(t *testing.T) {
	_, ok := EvaluateWithFallback(context.Background(), nil, Request{Type: "integral"})
	if ok {
		t.Fatal("expected ok = false for a nil client")
	}
}

func TestProcessClientMissingBinaryReturnsError(t *testing.T) {
	client := NewProcessClient("a-binary-that-does-not-exist-on-this-system")
	_, err := client.Evaluate(context.Background(), Request{Type: "integral", G: "n", P: "1", Variable: "n"})
	if err == nil {
		t.Fatal("expected an error for a nonexistent subprocess binary")
	}
}

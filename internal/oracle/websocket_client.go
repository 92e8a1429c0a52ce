package oracle

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// WebSocketClient is an alternate transport for a long-lived symbolic-math
// oracle process reachable over a persistent WebSocket connection rather
// than a one-shot subprocess — useful when the oracle is a shared service
// rather than a local helper binary. Grounded on the teacher's own
// internal/network WebSocketConn/WebSocketServer pairing, adapted here to
// a request/response RPC pattern instead of a fire-and-forget message
// stream.
type WebSocketClient struct {
	URL string

	mu   sync.Mutex
	conn *websocket.Conn
}

// NewWebSocketClient builds a client that dials lazily on first use.
func NewWebSocketClient(url string) *WebSocketClient {
	return &WebSocketClient{URL: url}
}

func (c *WebSocketClient) dial() (*websocket.Conn, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn != nil {
		return c.conn, nil
	}
	dialer := websocket.DefaultDialer
	dialer.HandshakeTimeout = 10 * time.Second
	conn, _, err := dialer.Dial(c.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("oracle: websocket dial failed: %w", err)
	}
	c.conn = conn
	return conn, nil
}

// Evaluate sends one JSON request frame and waits for the matching JSON
// response frame, honoring the caller's context as a deadline.
func (c *WebSocketClient) Evaluate(ctx context.Context, req Request) (Response, error) {
	conn, err := c.dial()
	if err != nil {
		return Response{}, err
	}

	deadline, ok := ctx.Deadline()
	if !ok {
		deadline = time.Now().Add(Timeout)
	}
	if err := conn.SetWriteDeadline(deadline); err != nil {
		return Response{}, fmt.Errorf("oracle: set write deadline: %w", err)
	}
	if err := conn.WriteJSON(req); err != nil {
		return Response{}, fmt.Errorf("oracle: write request: %w", err)
	}

	if err := conn.SetReadDeadline(deadline); err != nil {
		return Response{}, fmt.Errorf("oracle: set read deadline: %w", err)
	}
	var resp Response
	if err := conn.ReadJSON(&resp); err != nil {
		return Response{}, fmt.Errorf("oracle: read response: %w", err)
	}
	if !resp.Success {
		return resp, fmt.Errorf("oracle: %s", resp.Error)
	}
	return resp, nil
}

// Close releases the underlying connection, if one was ever opened.
func (c *WebSocketClient) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn == nil {
		return nil
	}
	err := c.conn.Close()
	c.conn = nil
	return err
}

var _ Client = (*WebSocketClient)(nil)

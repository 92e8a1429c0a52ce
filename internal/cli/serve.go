package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"complexity/internal/analyzer"
	"complexity/internal/ide"
	"complexity/internal/oracle"
)

// serve runs the JSON-RPC server over stdio until the client sends
// "exit" or the process receives an interrupt/terminate signal.
func serve(sess *analyzer.Session) int {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	server := ide.NewServer(os.Stdin, os.Stdout, sess)
	if err := server.Start(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "complexity: serve: %v\n", err)
		return 1
	}
	return 0
}

// newOracleClient picks a transport for the optional symbolic-math oracle
// based on the URL scheme: ws:// and wss:// dial the long-lived
// WebSocketClient, anything else is treated as an executable path and
// wrapped in a one-shot ProcessClient, mirroring the two transports
// internal/oracle ships.
func newOracleClient(url string) oracle.Client {
	if strings.HasPrefix(url, "ws://") || strings.HasPrefix(url, "wss://") {
		return oracle.NewWebSocketClient(url)
	}
	return oracle.NewProcessClient(url)
}

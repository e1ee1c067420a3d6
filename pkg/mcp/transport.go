package mcp

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os/exec"
	"strconv"
	"sync"
)

// Transport defines the interface for MCP communication.
type Transport interface {
	// Send sends a request and waits for a response.
	Send(ctx context.Context, req Request) (Response, error)

	// Notify sends a notification (no response expected).
	Notify(ctx context.Context, notif Notification) error

	// Close closes the transport.
	Close() error
}

// StdioTransport runs a capability server as a child process and
// exchanges newline-delimited JSON-RPC messages over its stdio.
type StdioTransport struct {
	cmd    *exec.Cmd
	stdin  io.WriteCloser
	stdout io.ReadCloser
	reader *bufio.Reader

	mu     sync.Mutex
	closed bool
	nextID int

	pendingMu sync.Mutex
	pending   map[string]chan Response
}

// idKey canonicalizes a request ID for pending-map matching. IDs go
// out as Go ints but come back from json.Unmarshal as float64, so
// both forms must map to the same key.
func idKey(id any) string {
	switch v := id.(type) {
	case float64:
		if v == math.Trunc(v) {
			return strconv.FormatInt(int64(v), 10)
		}
		return strconv.FormatFloat(v, 'g', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}

// NewStdioTransport spawns the server process and begins reading
// responses from its stdout.
func NewStdioTransport(command string, args []string, env []string, workDir string) (*StdioTransport, error) {
	cmd := exec.Command(command, args...)
	cmd.Dir = workDir
	if len(env) > 0 {
		cmd.Env = env
	}

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("failed to get stdin pipe: %w", err)
	}

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		stdin.Close()
		return nil, fmt.Errorf("failed to get stdout pipe: %w", err)
	}

	if err := cmd.Start(); err != nil {
		stdin.Close()
		stdout.Close()
		return nil, fmt.Errorf("failed to start capability server: %w", err)
	}

	t := &StdioTransport{
		cmd:     cmd,
		stdin:   stdin,
		stdout:  stdout,
		reader:  bufio.NewReader(stdout),
		pending: make(map[string]chan Response),
		nextID:  1,
	}

	go t.readResponses()

	return t, nil
}

// Send sends a request and waits for the matching response.
func (t *StdioTransport) Send(ctx context.Context, req Request) (Response, error) {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return Response{}, fmt.Errorf("transport closed")
	}

	if req.ID == nil {
		req.ID = t.nextID
		t.nextID++
	}
	key := idKey(req.ID)

	respCh := make(chan Response, 1)
	t.pendingMu.Lock()
	t.pending[key] = respCh
	t.pendingMu.Unlock()

	data, err := json.Marshal(req)
	if err != nil {
		t.mu.Unlock()
		t.removePending(key)
		return Response{}, fmt.Errorf("failed to marshal request: %w", err)
	}

	_, err = t.stdin.Write(append(data, '\n'))
	t.mu.Unlock()

	if err != nil {
		t.removePending(key)
		return Response{}, fmt.Errorf("failed to send request: %w", err)
	}

	select {
	case resp := <-respCh:
		return resp, nil
	case <-ctx.Done():
		t.removePending(key)
		return Response{}, ctx.Err()
	}
}

// Notify sends a notification (no response expected).
func (t *StdioTransport) Notify(ctx context.Context, notif Notification) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return fmt.Errorf("transport closed")
	}

	data, err := json.Marshal(notif)
	if err != nil {
		return fmt.Errorf("failed to marshal notification: %w", err)
	}

	_, err = t.stdin.Write(append(data, '\n'))
	if err != nil {
		return fmt.Errorf("failed to send notification: %w", err)
	}

	return nil
}

// Close closes the transport and kills the server process.
func (t *StdioTransport) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return nil
	}
	t.closed = true

	t.stdin.Close()
	t.stdout.Close()

	if t.cmd.Process != nil {
		t.cmd.Process.Kill()
	}

	return t.cmd.Wait()
}

// readResponses reads responses from stdout and dispatches them to
// the pending request that matches by ID. Stray lines are dropped.
func (t *StdioTransport) readResponses() {
	for {
		line, err := t.reader.ReadBytes('\n')
		if err != nil {
			return
		}

		var resp Response
		if err := json.Unmarshal(line, &resp); err != nil {
			continue
		}

		key := idKey(resp.ID)
		t.pendingMu.Lock()
		ch, ok := t.pending[key]
		if ok {
			delete(t.pending, key)
		}
		t.pendingMu.Unlock()

		if ok && ch != nil {
			ch <- resp
			close(ch)
		}
	}
}

func (t *StdioTransport) removePending(key string) {
	t.pendingMu.Lock()
	delete(t.pending, key)
	t.pendingMu.Unlock()
}

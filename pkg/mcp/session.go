package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"queryloop/pkg/capability"
)

// Session brackets one agent run against a capability server. It
// owns the transport and client, fetches the capability catalog once
// during Start, and exposes invocation in catalog terms.
type Session struct {
	client  *Client
	catalog *capability.Catalog
	started bool
}

// NewSession wraps an existing client. The client may be
// uninitialized; Start performs the handshake.
func NewSession(client *Client) *Session {
	return &Session{client: client}
}

// Dial spawns the capability server over stdio and returns an
// unstarted session for it.
func Dial(command string, args []string, env []string, workDir string) (*Session, error) {
	transport, err := NewStdioTransport(command, args, env, workDir)
	if err != nil {
		return nil, err
	}
	return NewSession(NewClient(transport)), nil
}

// Start performs the handshake and fetches the capability catalog.
// The catalog is cached for the life of the session; servers that
// change their tool set mid-session are not supported.
func (s *Session) Start(ctx context.Context) error {
	if s.started {
		return nil
	}

	if err := s.client.Initialize(ctx); err != nil {
		return fmt.Errorf("session start: %w", err)
	}

	tools, err := s.client.ListTools(ctx)
	if err != nil {
		return fmt.Errorf("session start: %w", err)
	}

	descriptors := make([]capability.Descriptor, 0, len(tools))
	for _, tool := range tools {
		desc := capability.Descriptor{
			Name:        tool.Name,
			Description: tool.Description,
		}
		desc.Params, desc.SchemaErr = capability.ParseSchema(tool.InputSchema)
		descriptors = append(descriptors, desc)
	}

	s.catalog = capability.NewCatalog(descriptors)
	s.started = true
	return nil
}

// Catalog returns the capability catalog fetched during Start.
func (s *Session) Catalog() *capability.Catalog {
	return s.catalog
}

// ServerInfo returns the implementation info the server reported
// during the handshake.
func (s *Session) ServerInfo() Implementation {
	return s.client.ServerInfo()
}

// Invoke calls the named capability and returns its content items as
// an ordered list of strings. A result the server flags as an error
// is returned as an error carrying the joined content text.
func (s *Session) Invoke(ctx context.Context, name string, args map[string]any) ([]string, error) {
	if !s.started {
		return nil, errors.New("session not started")
	}

	result, err := s.client.CallTool(ctx, name, args)
	if err != nil {
		return nil, err
	}

	parts := contentStrings(result.Content)
	if result.IsError {
		return nil, fmt.Errorf("capability %s failed: %s", name, strings.Join(parts, "; "))
	}
	return parts, nil
}

// Close tears down the session and the server process.
func (s *Session) Close() error {
	return s.client.Close()
}

func contentStrings(items []ContentItem) []string {
	parts := make([]string, 0, len(items))
	for _, item := range items {
		if item.Type == "text" {
			parts = append(parts, item.Text)
			continue
		}
		parts = append(parts, fmt.Sprintf("%s content (%s)", item.Type, item.MimeType))
	}
	return parts
}

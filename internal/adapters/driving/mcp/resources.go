package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	// uriScheme is the custom URI scheme for sitegen resources.
	uriScheme = "sitegen://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "sessions",
		Name:        "sessions",
		Description: "All generation sessions, most recently updated first",
		MIMEType:    "application/json",
	}, s.handleSessionsResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "sessions/{sessionId}/files/{name}",
		Name:        "session-file",
		Description: "Content of a generated file",
		MIMEType:    "text/plain",
	}, s.handleFileResource)
}

// handleSessionsResource returns a summary of every session.
func (s *Server) handleSessionsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	sessions, err := s.ports.Conversation.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing sessions: %w", err)
	}

	type sessionInfo struct {
		ID      string `json:"id"`
		Title   string `json:"title"`
		DemoURL string `json:"demo_url,omitempty"`
		Files   int    `json:"files"`
		Updated string `json:"updated"`
	}

	infos := make([]sessionInfo, len(sessions))
	for i := range sessions {
		infos[i] = sessionInfo{
			ID:      sessions[i].ID,
			Title:   sessions[i].Title,
			DemoURL: sessions[i].DemoURL,
			Files:   len(sessions[i].Reconciliation.Files.Valid()),
			Updated: sessions[i].UpdatedAt.UTC().Format("2006-01-02T15:04:05Z"),
		}
	}

	data, err := json.MarshalIndent(infos, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling sessions: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// handleFileResource returns the content of one file of a session.
func (s *Server) handleFileResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	sessionID, name := extractFileRef(req.Params.URI)
	if sessionID == "" || name == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	files, err := s.ports.Conversation.Files(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("getting session files: %w", err)
	}

	for _, f := range files {
		if f.Name == name {
			return &mcp.ReadResourceResult{
				Contents: []*mcp.ResourceContents{{
					URI:      req.Params.URI,
					MIMEType: "text/plain",
					Text:     f.Content,
				}},
			}, nil
		}
	}
	return nil, mcp.ResourceNotFoundError(req.Params.URI)
}

// extractFileRef extracts the session ID and file name from a URI like
// sitegen://sessions/{sessionId}/files/{name}. The name may contain slashes.
func extractFileRef(uri string) (sessionID, name string) {
	const prefix = uriScheme + "sessions/"
	const sep = "/files/"

	if !strings.HasPrefix(uri, prefix) {
		return "", ""
	}

	rest := strings.TrimPrefix(uri, prefix)
	i := strings.Index(rest, sep)
	if i <= 0 {
		return "", ""
	}
	return rest[:i], rest[i+len(sep):]
}

package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/sitegen/internal/core/domain"
)

// SendPromptInput is the input schema for the send_prompt tool.
type SendPromptInput struct {
	SessionID string `json:"session_id,omitempty" jsonschema:"session to continue; a new session is started when empty"`
	Prompt    string `json:"prompt" jsonschema:"what to build or change"`
}

// SessionIDInput identifies a session.
type SessionIDInput struct {
	SessionID string `json:"session_id" jsonschema:"the session ID"`
}

// NewConversationInput is the input schema for the new_conversation tool.
type NewConversationInput struct {
	SessionID string `json:"session_id,omitempty" jsonschema:"session to reset; a new session is started when empty"`
}

// GetFileInput is the input schema for the get_file tool.
type GetFileInput struct {
	SessionID string `json:"session_id" jsonschema:"the session ID"`
	Name      string `json:"name" jsonschema:"the file name as listed by list_files"`
}

// SessionOutput summarises a session after a tool call.
type SessionOutput struct {
	SessionID      string       `json:"session_id"`
	ConversationID string       `json:"conversation_id,omitempty"`
	Title          string       `json:"title,omitempty"`
	DemoURL        string       `json:"demo_url,omitempty"`
	Status         string       `json:"status,omitempty"`
	Reply          string       `json:"reply,omitempty"`
	Files          []FileOutput `json:"files"`
}

// FileOutput describes a generated file without its content.
type FileOutput struct {
	Name string `json:"name"`
	Type string `json:"type"`
	Size int    `json:"size"`
}

// ListFilesOutput is the output schema for the list_files tool.
type ListFilesOutput struct {
	Files []FileOutput `json:"files"`
	Count int          `json:"count"`
}

// GetFileOutput is the output schema for the get_file tool.
type GetFileOutput struct {
	Name    string `json:"name"`
	Type    string `json:"type"`
	Size    int    `json:"size"`
	Content string `json:"content"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "send_prompt",
		Description: "Send a prompt to the website generator and return the updated session",
	}, s.handleSendPrompt)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "new_conversation",
		Description: "Start over: discard a session's conversation and files, or create a new session",
	}, s.handleNewConversation)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_files",
		Description: "List the generated files of a session",
	}, s.handleListFiles)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_file",
		Description: "Return the content of one generated file",
	}, s.handleGetFile)
}

// handleSendPrompt handles the send_prompt tool invocation.
func (s *Server) handleSendPrompt(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SendPromptInput,
) (*mcp.CallToolResult, SessionOutput, error) {
	sessionID := input.SessionID
	if sessionID == "" {
		session, err := s.ports.Conversation.Start(ctx)
		if err != nil {
			return nil, SessionOutput{}, fmt.Errorf("starting session: %w", err)
		}
		sessionID = session.ID
	}

	session, err := s.ports.Conversation.Send(ctx, sessionID, input.Prompt)
	if err != nil {
		return nil, SessionOutput{}, err
	}
	return nil, sessionOutput(session), nil
}

// handleNewConversation handles the new_conversation tool invocation.
func (s *Server) handleNewConversation(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input NewConversationInput,
) (*mcp.CallToolResult, SessionOutput, error) {
	var (
		session *domain.Session
		err     error
	)
	if input.SessionID == "" {
		session, err = s.ports.Conversation.Start(ctx)
	} else {
		session, err = s.ports.Conversation.Reset(ctx, input.SessionID)
	}
	if err != nil {
		return nil, SessionOutput{}, err
	}
	return nil, sessionOutput(session), nil
}

// handleListFiles handles the list_files tool invocation.
func (s *Server) handleListFiles(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SessionIDInput,
) (*mcp.CallToolResult, ListFilesOutput, error) {
	files, err := s.ports.Conversation.Files(ctx, input.SessionID)
	if err != nil {
		return nil, ListFilesOutput{}, err
	}
	out := fileOutputs(files)
	return nil, ListFilesOutput{Files: out, Count: len(out)}, nil
}

// handleGetFile handles the get_file tool invocation.
func (s *Server) handleGetFile(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input GetFileInput,
) (*mcp.CallToolResult, GetFileOutput, error) {
	files, err := s.ports.Conversation.Files(ctx, input.SessionID)
	if err != nil {
		return nil, GetFileOutput{}, err
	}
	for _, f := range files {
		if f.Name == input.Name {
			return nil, GetFileOutput{Name: f.Name, Type: f.Type, Size: f.Size, Content: f.Content}, nil
		}
	}
	return nil, GetFileOutput{}, fmt.Errorf("file %q: %w", input.Name, domain.ErrNotFound)
}

func sessionOutput(session *domain.Session) SessionOutput {
	out := SessionOutput{
		SessionID:      session.ID,
		ConversationID: session.ConversationID,
		Title:          session.Title,
		DemoURL:        session.DemoURL,
		Status:         session.Status,
		Files:          fileOutputs(session.Reconciliation.Files.Valid()),
	}
	for i := len(session.Transcript) - 1; i >= 0; i-- {
		if session.Transcript[i].Role == domain.RoleAssistant {
			out.Reply = session.Transcript[i].Content
			break
		}
	}
	return out
}

func fileOutputs(files []domain.CanonicalFile) []FileOutput {
	out := make([]FileOutput, len(files))
	for i, f := range files {
		out[i] = FileOutput{Name: f.Name, Type: f.Type, Size: f.Size}
	}
	return out
}

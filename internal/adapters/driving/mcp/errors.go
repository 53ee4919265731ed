// Package mcp provides an MCP (Model Context Protocol) server adapter for sitegen.
// It lets AI assistants drive website generation sessions: send prompts,
// start over, and read the generated files.
package mcp

import "errors"

// ErrMissingConversationService is returned when the conversation service is not provided.
var ErrMissingConversationService = errors.New("mcp: conversation service is required")

package mcp

import (
	"github.com/custodia-labs/sitegen/internal/core/ports/driving"
)

// Ports aggregates the driving ports the MCP server needs.
type Ports struct {
	// Conversation manages sessions and routes prompts.
	Conversation driving.ConversationService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil || p.Conversation == nil {
		return ErrMissingConversationService
	}
	return nil
}

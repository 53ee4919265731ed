// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// RelayService is stateless and forwards prompts to the generation service.
// ConversationService owns client-side sessions and runs file
// reconciliation through ReconcileService after every turn.
package services

// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - GenerationService: Calls the remote website-generation service
//   - FileNormaliser: Turns raw file records into canonical files
//   - ChatGateway: Reaches the relay, in-process or over HTTP
//   - SessionStore: Client-side session persistence
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
//   - ProjectExporter: Packages files for download. Without it, export is disabled.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or normaliser package
package driven

// Package domain defines the core business entities for sitegen.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - RawFileRecord: A file as emitted by the generation service, in any shape
//   - CanonicalFile: The normalised file used for display and download
//   - FileCollection: An ordered, name-unique set of canonical files
//   - ReconciliationState: The file collection plus the previous batch
//   - Chat: The reshaped result of one conversational turn
//   - Session: A client-side conversation with its transcript and files
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain

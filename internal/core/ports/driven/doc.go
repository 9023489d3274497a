// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - JournalStore: document/chunk/embedding persistence (SQLite)
//   - EmbeddingService: text to vector. Always available - the local
//     deterministic fallback stands in when no provider is configured.
//   - SettingsStore: application configuration persistence
//   - SessionVault: raw session file storage
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - LLMService: chat completion. Without it, the chat assistant is
//     disabled; indexing and search keep working.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven

// Package driving defines the interfaces through which the outside
// world drives the core (primary/inbound ports). The CLI, TUI and MCP
// adapters depend on these, never on concrete services.
package driving

// Package catalog provides read-only access to the bundled MCP server
// catalog and the grouped-server templates.
//
// Both documents ship inside the binary (versioned JSON, go:embed) and can be
// overridden with external files for testing or air-gapped setups. Documents
// are loaded fresh on every access and definitions are never mutated after
// load; callers that need to modify a definition work on a [ServerDefinition.Clone].
package catalog

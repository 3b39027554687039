// Package workspace owns the two workspace-local JSON documents:
// the active MCP configuration (mcp.json) and the environment-variables
// document (mcp-env.json).
//
// The documents act as process-wide shared state with no in-memory cache,
// so access goes through the narrow [Store] interface; [FileStore] is the
// real implementation and [MemStore] the test fake.
//
// Writes to the MCP configuration replace the whole document atomically
// (temp file + rename) and are verified by reading the file back and
// comparing entry counts. Verification is detection-only: a mismatch is
// logged as a warning, never escalated to failure.
package workspace
